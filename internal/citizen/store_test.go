package citizen

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "scheme-finder/internal/common/errors"
	"scheme-finder/internal/common/logger"
	"scheme-finder/internal/models"
)

func setup(t *testing.T) (*ProfileStore, sqlmock.Sqlmock, *miniredis.Miniredis) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	return NewProfileStore(db, rdb, 10*time.Minute, logger.NewTestLogger(t)), mock, mr
}

func TestProfileStore_GetCachesDatabaseRow(t *testing.T) {
	store, mock, mr := setup(t)

	mock.ExpectQuery("FROM citizen_profiles WHERE id").
		WithArgs("c-42").
		WillReturnRows(sqlmock.NewRows([]string{"age", "gender", "education", "area", "state", "categories"}).
			AddRow(52, "Male", "Class 8", "Rural", "Punjab", "{Farmer,BPL}"))

	p, err := store.Get(context.Background(), "c-42")
	require.NoError(t, err)
	assert.Equal(t, models.UserProfile{
		Age: 52, Gender: models.GenderMale, Education: models.EducationClass8,
		Area: models.AreaRural, State: "Punjab", Categories: []string{"Farmer", "BPL"},
	}, *p)
	assert.True(t, mr.Exists("citizen:profile:c-42"))

	again, err := store.Get(context.Background(), "c-42")
	require.NoError(t, err)
	assert.Equal(t, p, again)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileStore_GetNotFound(t *testing.T) {
	store, mock, _ := setup(t)
	mock.ExpectQuery("FROM citizen_profiles").WillReturnError(sql.ErrNoRows)

	_, err := store.Get(context.Background(), "missing")
	var stdErr *apperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, apperrors.ErrCodeProfileNotFound, stdErr.Code)
}

func TestProfileStore_WithoutCache(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM citizen_profiles").
		WillReturnRows(sqlmock.NewRows([]string{"age", "gender", "education", "area", "state", "categories"}).
			AddRow(19, "Female", "Class 12", "Urban", "Kerala", "{Student}"))

	store := NewProfileStore(db, nil, 0, logger.NewNoOpLogger())
	p, err := store.Get(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, models.GenderFemale, p.Gender)
}

func TestProfileStore_SaveInvalidatesCache(t *testing.T) {
	store, mock, mr := setup(t)
	require.NoError(t, mr.Set("citizen:profile:c-7", `{"age":1}`))

	mock.ExpectExec("INSERT INTO citizen_profiles").
		WithArgs("c-7", 30, "Other", "Graduate", "Urban", "Delhi", `{"Youth"}`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Save(context.Background(), "c-7", models.UserProfile{
		Age: 30, Gender: models.GenderOther, Education: models.EducationGraduate,
		Area: models.AreaUrban, State: "Delhi", Categories: []string{"Youth"},
	})
	require.NoError(t, err)
	assert.False(t, mr.Exists("citizen:profile:c-7"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
