// test/e2e/e2e_test.go
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheme-finder/internal/api"
	"scheme-finder/internal/catalog"
	"scheme-finder/internal/common/config"
	"scheme-finder/internal/common/database"
	"scheme-finder/internal/common/logger"
	"scheme-finder/internal/matching"
	"scheme-finder/internal/models"
	"scheme-finder/internal/predictor"
	"scheme-finder/internal/tracker"

	sendrecs "scheme-finder/internal/workers/application/send-recommendations"
	trackapp "scheme-finder/internal/workers/application/track-application"
	fetchpred "scheme-finder/internal/workers/scheme/fetch-predictions"
	recommend "scheme-finder/internal/workers/scheme/recommend-schemes"
	validateprofile "scheme-finder/internal/workers/scheme/validate-profile"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type capturedEmail struct {
	to, subject, text, html string
}

type stubMailer struct {
	sent []capturedEmail
}

func (s *stubMailer) Send(_ context.Context, to, subject, text, html string) (string, error) {
	s.sent = append(s.sent, capturedEmail{to, subject, text, html})
	return "msg-1", nil
}

func predictorServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"recommendations":[
			{"Scheme_Name":"Beti Bachao Beti Padhao","State":"All India"},
			{"Scheme_Name":"Bihar Kaushal Yuva Program","State":"Bihar"}
		]}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// TestRecommendationFlow walks a citizen through the worker chain the BPMN
// process runs: validate, rank, shortlist, notify.
func TestRecommendationFlow(t *testing.T) {
	ctx := context.Background()
	log := logger.NewTestLogger(t)
	store := catalog.NewStaticStore(catalog.Default(), log)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	// 1. validate-profile
	validated, err := validateprofile.NewHandler(validateprofile.LoadConfig(), nil, log).
		Execute(ctx, &validateprofile.Input{Profile: map[string]interface{}{
			"age":        float64(19),
			"gender":     "female",
			"education":  "Class 12",
			"area":       "Rural",
			"state":      "Bihar",
			"categories": []interface{}{"student", "Girl Child"},
		}})
	require.NoError(t, err)
	require.True(t, validated.ProfileValid)
	profile := validated.Profile
	assert.Equal(t, models.GenderFemale, profile.Gender)
	assert.Equal(t, []string{"Student", "Girl Child"}, profile.Categories)

	// 2. recommend-schemes, twice to exercise the redis cache
	rec := recommend.NewHandler(recommend.LoadConfig(), store, nil, nil, rdb, log)
	first, err := rec.Execute(ctx, &recommend.Input{Profile: &profile})
	require.NoError(t, err)
	require.NotEmpty(t, first.Recommendations)
	assert.LessOrEqual(t, first.Total, matching.MaxRecommendations)
	assert.False(t, first.Cached)
	assert.Contains(t, ids(first.Recommendations), matching.BetiBachaoSchemeID)

	second, err := rec.Execute(ctx, &recommend.Input{Profile: &profile})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, ids(first.Recommendations), ids(second.Recommendations))

	// 3. fetch-predictions against a stand-in predictor
	client := predictor.NewClient(config.PredictorConfig{BaseURL: predictorServer(t).URL, Timeout: 2000}, log)
	predicted, err := fetchpred.NewHandler(fetchpred.LoadConfig(), client, store, log).
		Execute(ctx, &fetchpred.Input{Profile: profile})
	require.NoError(t, err)
	assert.Equal(t, fetchpred.SourcePredictor, predicted.Source)
	require.Len(t, predicted.Recommendations, 2)
	assert.Equal(t, "Beti Bachao Beti Padhao", predicted.Recommendations[0].SchemeName)
	assert.NotEmpty(t, predicted.Recommendations[0].ApplicationLink)

	// 4. send-recommendations by email only
	mailer := &stubMailer{}
	sendCfg := sendrecs.LoadConfig()
	sendCfg.SMSEnabled = false
	sent, err := sendrecs.NewHandler(sendCfg, mailer, nil, log).Execute(ctx, &sendrecs.Input{
		CitizenID:       "citizen-1",
		Email:           "asha@example.in",
		Recommendations: first.Recommendations,
	})
	require.NoError(t, err)
	assert.Equal(t, sendrecs.StatusSent, sent.Status)
	assert.Equal(t, []string{sendrecs.ChannelEmail}, sent.Channels)
	assert.Equal(t, first.Total, sent.SchemeCount)
	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0].text, first.Recommendations[0].Name)
}

// TestAPIMatchesWorker checks the HTTP endpoint and the worker rank the same
// profile identically.
func TestAPIMatchesWorker(t *testing.T) {
	log := logger.NewTestLogger(t)
	store := catalog.NewStaticStore(catalog.Default(), log)
	engine := matching.NewEngine()

	server := api.NewServer(api.Deps{Catalog: store, Engine: engine, Logger: log})

	body := `{"age":45,"gender":"Male","education":"Class 8","area":"Rural","state":"Punjab","categories":["Farmer"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success         bool                  `json:"success"`
		Recommendations []models.ScoredScheme `json:"recommendations"`
		Total           int                   `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	profile := models.UserProfile{
		Age: 45, Gender: models.GenderMale, Education: models.EducationClass8,
		Area: models.AreaRural, State: "Punjab", Categories: []string{"Farmer"},
	}
	out, err := recommend.NewHandler(recommend.LoadConfig(), store, engine, nil, nil, log).
		Execute(context.Background(), &recommend.Input{Profile: &profile})
	require.NoError(t, err)

	assert.Equal(t, out.Total, resp.Total)
	assert.Equal(t, ids(out.Recommendations), ids(resp.Recommendations))
	assert.Contains(t, ids(resp.Recommendations), "pm-kisan")
	assert.NotContains(t, ids(resp.Recommendations), matching.BetiBachaoSchemeID)
}

// TestTrackingAgainstPostgres needs a running database and is skipped
// unless E2E_POSTGRES is set.
func TestTrackingAgainstPostgres(t *testing.T) {
	if os.Getenv("E2E_POSTGRES") == "" {
		t.Skip("E2E_POSTGRES not set")
	}
	ctx := context.Background()

	cfg, err := config.Load()
	require.NoError(t, err)

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Close() })
	require.NoError(t, pg.Ping(ctx))
	require.NoError(t, database.EnsureSchema(ctx, pg.DB))

	log := logger.NewTestLogger(t)
	h := trackapp.NewHandler(trackapp.LoadConfig(), tracker.NewRepository(pg.DB, log), log)
	citizenID := "e2e-citizen"

	added, err := h.Execute(ctx, &trackapp.Input{
		Action:    "add",
		CitizenID: citizenID,
		Scheme:    &models.SchemeRecommendation{SchemeName: "PM-KISAN Samman Nidhi", State: "All India"},
	})
	require.NoError(t, err)
	require.NotNil(t, added.Application)
	t.Cleanup(func() {
		_, _ = h.Execute(ctx, &trackapp.Input{Action: "remove", CitizenID: citizenID, ApplicationID: added.Application.ID})
	})

	checked, err := h.Execute(ctx, &trackapp.Input{Action: "check", CitizenID: citizenID, SchemeName: "PM-KISAN Samman Nidhi"})
	require.NoError(t, err)
	assert.True(t, checked.Tracked)

	listed, err := h.Execute(ctx, &trackapp.Input{Action: "list", CitizenID: citizenID})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, listed.Total, 1)
}

func ids(list []models.ScoredScheme) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.ID
	}
	return out
}
