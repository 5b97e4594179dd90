// internal/workers/application/track-application/handler_test.go
package trackapplication

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "scheme-finder/internal/common/errors"
	"scheme-finder/internal/common/logger"
	"scheme-finder/internal/models"
	"scheme-finder/internal/tracker"
)

// ==========================
// Mock Tracker
// ==========================

type MockTracker struct {
	mock.Mock
}

func (m *MockTracker) Add(ctx context.Context, citizenID string, scheme models.SchemeRecommendation) (*models.TrackedApplication, bool, error) {
	args := m.Called(ctx, citizenID, scheme)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*models.TrackedApplication), args.Bool(1), args.Error(2)
}

func (m *MockTracker) Update(ctx context.Context, citizenID, id string, upd models.ApplicationUpdate) (*models.TrackedApplication, error) {
	args := m.Called(ctx, citizenID, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TrackedApplication), args.Error(1)
}

func (m *MockTracker) Remove(ctx context.Context, citizenID, id string) error {
	return m.Called(ctx, citizenID, id).Error(0)
}

func (m *MockTracker) List(ctx context.Context, citizenID string) ([]models.TrackedApplication, error) {
	args := m.Called(ctx, citizenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TrackedApplication), args.Error(1)
}

func (m *MockTracker) IsTracked(ctx context.Context, citizenID, schemeName string) (bool, error) {
	args := m.Called(ctx, citizenID, schemeName)
	return args.Bool(0), args.Error(1)
}

func requireCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()
	var stdErr *apperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, code, stdErr.Code)
}

var kisan = models.SchemeRecommendation{
	ID: "0", SchemeName: "PM-KISAN Samman Nidhi", State: "Punjab", ApplicationLink: "https://pmkisan.gov.in/",
}

// ==========================
// Tests
// ==========================

func TestHandler_Execute_Add(t *testing.T) {
	tests := []struct {
		name    string
		created bool
	}{
		{"new application", true},
		{"already tracked", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := &models.TrackedApplication{ID: "a-1", CitizenID: "c-1", SchemeName: kisan.SchemeName, Status: models.StatusApplied}
			m := new(MockTracker)
			m.On("Add", mock.Anything, "c-1", kisan).Return(app, tt.created, nil)

			h := NewHandler(LoadConfig(), m, logger.NewTestLogger(t))
			out, err := h.Execute(context.Background(), &Input{Action: "ADD", CitizenID: "c-1", Scheme: &kisan})
			require.NoError(t, err)
			assert.Equal(t, ActionAdd, out.Action)
			assert.Equal(t, app, out.Application)
			assert.Equal(t, tt.created, out.Created)
			assert.True(t, out.Tracked)
			m.AssertExpectations(t)
		})
	}
}

func TestHandler_Execute_Update(t *testing.T) {
	status := models.StatusApproved
	upd := models.ApplicationUpdate{Status: &status}
	app := &models.TrackedApplication{ID: "a-1", Status: models.StatusApproved}

	m := new(MockTracker)
	m.On("Update", mock.Anything, "c-1", "a-1", upd).Return(app, nil)

	h := NewHandler(LoadConfig(), m, logger.NewTestLogger(t))
	out, err := h.Execute(context.Background(), &Input{Action: ActionUpdate, CitizenID: "c-1", ApplicationID: "a-1", Update: &upd})
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, out.Application.Status)
}

func TestHandler_Execute_RemoveAndCheck(t *testing.T) {
	m := new(MockTracker)
	m.On("Remove", mock.Anything, "c-1", "a-1").Return(nil)
	m.On("IsTracked", mock.Anything, "c-1", kisan.SchemeName).Return(true, nil)

	h := NewHandler(LoadConfig(), m, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Action: ActionRemove, CitizenID: "c-1", ApplicationID: "a-1"})
	require.NoError(t, err)
	assert.False(t, out.Tracked)

	out, err = h.Execute(context.Background(), &Input{Action: ActionCheck, CitizenID: "c-1", Scheme: &kisan})
	require.NoError(t, err)
	assert.True(t, out.Tracked)
	m.AssertExpectations(t)
}

func TestHandler_Execute_Errors(t *testing.T) {
	m := new(MockTracker)
	m.On("Remove", mock.Anything, "c-1", "missing").Return(apperrors.NewApplicationNotFoundError("missing"))

	bad := models.ApplicationStatus("lost")
	m.On("Update", mock.Anything, "c-1", "a-1", mock.Anything).Return(nil, apperrors.NewInvalidStatusError(string(bad)))

	h := NewHandler(LoadConfig(), m, logger.NewTestLogger(t))

	tests := []struct {
		name  string
		input *Input
		code  apperrors.ErrorCode
	}{
		{"missing citizen", &Input{Action: ActionList}, apperrors.ErrCodeInvalidInput},
		{"unknown action", &Input{Action: "archive", CitizenID: "c-1"}, apperrors.ErrCodeInvalidInput},
		{"add without scheme", &Input{Action: ActionAdd, CitizenID: "c-1"}, apperrors.ErrCodeInvalidInput},
		{"update without body", &Input{Action: ActionUpdate, CitizenID: "c-1", ApplicationID: "a-1"}, apperrors.ErrCodeInvalidInput},
		{"check without name", &Input{Action: ActionCheck, CitizenID: "c-1"}, apperrors.ErrCodeInvalidInput},
		{"remove unknown", &Input{Action: ActionRemove, CitizenID: "c-1", ApplicationID: "missing"}, apperrors.ErrCodeApplicationNotFound},
		{"bad status", &Input{Action: ActionUpdate, CitizenID: "c-1", ApplicationID: "a-1",
			Update: &models.ApplicationUpdate{Status: &bad}}, apperrors.ErrCodeInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Execute(context.Background(), tt.input)
			requireCode(t, err, tt.code)
		})
	}
}

func TestHandler_Execute_ListFromRepository(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	applied := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "citizen_id", "scheme_name", "state", "application_link", "status",
		"applied_date", "last_updated", "application_number", "notes", "documents", "next_steps",
	}).
		AddRow("a-1", "c-1", "PM-KISAN Samman Nidhi", "Punjab", "https://pmkisan.gov.in/", "applied",
			applied, applied, "", "", "{}", "").
		AddRow("a-2", "c-1", "Ayushman Bharat", "All India", "https://pmjay.gov.in/", "approved",
			applied.Add(time.Hour), applied.Add(2*time.Hour), "AB-77", "", `{Aadhaar,"Ration Card"}`, "")
	sqlMock.ExpectQuery("FROM tracked_applications WHERE citizen_id = \\$1 ORDER BY applied_date").
		WithArgs("c-1").
		WillReturnRows(rows)

	repo := tracker.NewRepository(db, logger.NewTestLogger(t))
	h := NewHandler(LoadConfig(), repo, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Action: ActionList, CitizenID: "c-1"})
	require.NoError(t, err)
	require.Equal(t, 2, out.Total)
	assert.Equal(t, "a-1", out.Applications[0].ID)
	assert.Equal(t, []string{"Aadhaar", "Ration Card"}, out.Applications[1].Documents)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
