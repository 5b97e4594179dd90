package predictor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheme-finder/internal/catalog"
	"scheme-finder/internal/common/config"
	apperrors "scheme-finder/internal/common/errors"
	"scheme-finder/internal/common/logger"
	"scheme-finder/internal/models"
)

func newTestClient(t *testing.T, timeout time.Duration, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(config.PredictorConfig{
		BaseURL: srv.URL + "/",
		Timeout: int(timeout / time.Millisecond),
	}, logger.NewTestLogger(t))
}

func requireCode(t *testing.T, err error, code apperrors.ErrorCode) *apperrors.StandardError {
	t.Helper()
	var stdErr *apperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, code, stdErr.Code)
	return stdErr
}

func TestClient_Predict(t *testing.T) {
	var got Request
	client := newTestClient(t, time.Second, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/predict", r.URL.Path)
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`[{"Scheme_Name":"PM Kisan"}]`))
	})

	profile := models.UserProfile{
		Age: 45, Gender: models.GenderMale, Education: models.EducationClass10,
		Area: models.AreaRural, State: "Punjab", Categories: []string{"Farmer"},
	}
	body, err := client.Predict(context.Background(), RequestFromProfile(profile))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"Scheme_Name":"PM Kisan"}]`, string(body))
	assert.Equal(t, Request{Age: 45, Gender: "Male", Education: "Class 10", Area: "Rural", State: "Punjab", Tags: []string{"Farmer"}}, got)
}

func TestClient_PredictBadStatus(t *testing.T) {
	client := newTestClient(t, time.Second, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("model warming up"))
	})

	_, err := client.Predict(context.Background(), Request{})
	stdErr := requireCode(t, err, apperrors.ErrCodePredictorBadResponse)
	assert.Equal(t, "API returned 503: model warming up", stdErr.Message)
	assert.Equal(t, http.StatusServiceUnavailable, stdErr.Metadata["status"])
	assert.True(t, stdErr.Retryable)
}

func TestClient_PredictTimeout(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, 30*time.Millisecond, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	_, err := client.Predict(context.Background(), Request{})
	stdErr := requireCode(t, err, apperrors.ErrCodePredictorTimeout)
	assert.Equal(t, "Request timeout - the API took too long to respond", stdErr.Message)
}

func TestClient_PredictUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(config.PredictorConfig{BaseURL: url, Timeout: 1000}, logger.NewNoOpLogger())
	_, err := client.Predict(context.Background(), Request{})
	stdErr := requireCode(t, err, apperrors.ErrCodePredictorUnavailable)
	assert.Equal(t, "Failed to connect to the recommendation service", stdErr.Message)
}

func TestClient_Recommend(t *testing.T) {
	client := newTestClient(t, time.Second, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"recommendations":[
			{"scheme_name":"Sukanya Samriddhi Yojana","state":"All India"},
			{"name":"Pradhan Mantri Kaushal Vikas Yojana","location":"Bihar","link":"pmkvy"},
			{"title":"Some Local Scheme","url":"https://local.example.gov.in/apply"}
		]}`))
	})

	recs, err := client.Recommend(context.Background(), models.UserProfile{Age: 30, Gender: models.GenderMale, State: "Bihar"}, catalog.Default())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, models.SchemeRecommendation{ID: "0", SchemeName: "Pradhan Mantri Kaushal Vikas Yojana", State: "Bihar", ApplicationLink: "https://pmkvyofficial.org"}, recs[0])
	assert.Equal(t, "https://local.example.gov.in/apply", recs[1].ApplicationLink)
	assert.Equal(t, UnknownState, recs[1].State)
}

func TestClient_RecommendMalformed(t *testing.T) {
	client := newTestClient(t, time.Second, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	})

	_, err := client.Recommend(context.Background(), models.UserProfile{}, nil)
	requireCode(t, err, apperrors.ErrCodePredictorBadResponse)
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(config.PredictorConfig{}, logger.NewNoOpLogger())
	assert.Equal(t, DefaultBaseURL+"/predict", c.endpoint)
	assert.Equal(t, DefaultTimeout, c.timeout)
	assert.Equal(t, DefaultUserAgent, c.userAgent)
}
