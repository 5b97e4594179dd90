// internal/workers/scheme/validate-profile/handler_test.go
package validateprofile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "scheme-finder/internal/common/errors"
	"scheme-finder/internal/common/logger"
	"scheme-finder/internal/common/validation"
	"scheme-finder/internal/models"
)

type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

func (tl *testLogger) WithError(err error) logger.Logger {
	return tl.WithFields(map[string]interface{}{"error": err})
}

func (tl *testLogger) With(fields map[string]interface{}) logger.Logger {
	return tl
}

type fakeSaver struct {
	saved map[string]models.UserProfile
	err   error
}

func (f *fakeSaver) Save(_ context.Context, id string, p models.UserProfile) error {
	if f.err != nil {
		return f.err
	}
	if f.saved == nil {
		f.saved = map[string]models.UserProfile{}
	}
	f.saved[id] = p
	return nil
}

func rawProfile() map[string]interface{} {
	return map[string]interface{}{
		"age":        float64(17),
		"gender":     "female",
		"education":  "class 10",
		"area":       "Rural",
		"state":      "bihar",
		"categories": []interface{}{"student", "Girl Child"},
	}
}

func requireValidationError(t *testing.T, err error) map[string]string {
	t.Helper()
	var stdErr *apperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	require.Equal(t, apperrors.ErrCodeProfileValidationFailed, stdErr.Code)
	fields, ok := stdErr.Metadata["fieldErrors"].(map[string]string)
	require.True(t, ok)
	return fields
}

func TestHandler_Execute_NormalizesAndPersists(t *testing.T) {
	saver := &fakeSaver{}
	h := NewHandler(LoadConfig(), saver, &testLogger{t: t})

	out, err := h.Execute(context.Background(), &Input{CitizenID: "c-1", Profile: rawProfile()})
	require.NoError(t, err)

	want := models.UserProfile{
		Age: 17, Gender: models.GenderFemale, Education: models.EducationClass10,
		Area: models.AreaRural, State: "Bihar", Categories: []string{"Student", "Girl Child"},
	}
	assert.True(t, out.ProfileValid)
	assert.True(t, out.Persisted)
	assert.Equal(t, want, out.Profile)
	assert.Equal(t, want, saver.saved["c-1"])
}

func TestHandler_Execute_NoCitizenID(t *testing.T) {
	saver := &fakeSaver{}
	h := NewHandler(LoadConfig(), saver, &testLogger{t: t})

	out, err := h.Execute(context.Background(), &Input{Profile: rawProfile()})
	require.NoError(t, err)
	assert.False(t, out.Persisted)
	assert.Empty(t, saver.saved)
}

func TestHandler_Execute_NilStore(t *testing.T) {
	h := NewHandler(LoadConfig(), nil, &testLogger{t: t})
	out, err := h.Execute(context.Background(), &Input{CitizenID: "c-1", Profile: rawProfile()})
	require.NoError(t, err)
	assert.False(t, out.Persisted)
}

func TestHandler_Execute_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p map[string]interface{})
		field  string
		msg    string
	}{
		{"age too high", func(p map[string]interface{}) { p["age"] = float64(120) }, "age", validation.MsgAge},
		{"unknown state", func(p map[string]interface{}) { p["state"] = "Gondor" }, "state", validation.MsgState},
		{"no categories", func(p map[string]interface{}) { p["categories"] = []interface{}{} }, "categories", validation.MsgCategories},
		{"missing gender", func(p map[string]interface{}) { delete(p, "gender") }, "gender", ""},
		{"age as text", func(p map[string]interface{}) { p["age"] = "seventeen" }, "age", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saver := &fakeSaver{}
			h := NewHandler(LoadConfig(), saver, &testLogger{t: t})
			p := rawProfile()
			tt.mutate(p)

			_, err := h.Execute(context.Background(), &Input{CitizenID: "c-1", Profile: p})
			fields := requireValidationError(t, err)
			require.Contains(t, fields, tt.field)
			if tt.msg != "" {
				assert.Equal(t, tt.msg, fields[tt.field])
			}
			assert.Empty(t, saver.saved)
		})
	}
}

func TestHandler_Execute_MissingProfile(t *testing.T) {
	h := NewHandler(LoadConfig(), nil, &testLogger{t: t})
	_, err := h.Execute(context.Background(), &Input{})
	fields := requireValidationError(t, err)
	assert.Contains(t, fields, "profile")
}

func TestHandler_Execute_SaveFails(t *testing.T) {
	h := NewHandler(LoadConfig(), &fakeSaver{err: errors.New("db down")}, &testLogger{t: t})
	_, err := h.Execute(context.Background(), &Input{CitizenID: "c-1", Profile: rawProfile()})
	assert.EqualError(t, err, "db down")
}
