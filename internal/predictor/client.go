// Package predictor talks to the remote machine-learning scheme predictor and
// turns its loosely shaped output into citizen-facing recommendations.
package predictor

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"scheme-finder/internal/common/config"
	apperrors "scheme-finder/internal/common/errors"
	commonhttp "scheme-finder/internal/common/http"
	"scheme-finder/internal/common/logger"
	"scheme-finder/internal/common/metrics"
	"scheme-finder/internal/models"
)

const (
	DefaultBaseURL   = "https://govt-scheme-api-c8a1.onrender.com"
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "Government-Scheme-Finder/1.0"

	predictPath = "/predict"
)

// Request is the body the predictor expects. Tags are the citizen categories.
type Request struct {
	Age       int      `json:"age"`
	Gender    string   `json:"gender"`
	Education string   `json:"education"`
	Area      string   `json:"area"`
	State     string   `json:"state"`
	Tags      []string `json:"tags"`
}

func RequestFromProfile(p models.UserProfile) Request {
	tags := p.Categories
	if tags == nil {
		tags = []string{}
	}
	return Request{
		Age:       p.Age,
		Gender:    string(p.Gender),
		Education: string(p.Education),
		Area:      string(p.Area),
		State:     p.State,
		Tags:      tags,
	}
}

type Client struct {
	http      *commonhttp.Client
	endpoint  string
	userAgent string
	timeout   time.Duration
	logger    logger.Logger
}

func NewClient(cfg config.PredictorConfig, log logger.Logger) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Millisecond
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	return &Client{
		http:      commonhttp.NewClient(timeout),
		endpoint:  strings.TrimRight(base, "/") + predictPath,
		userAgent: ua,
		timeout:   timeout,
		logger:    log.WithFields(map[string]interface{}{"component": "predictor"}),
	}
}

// Predict posts req and returns the raw upstream body. Failures are
// *apperrors.StandardError with code PREDICTOR_TIMEOUT, PREDICTOR_UNAVAILABLE
// or PREDICTOR_BAD_RESPONSE.
func (c *Client) Predict(ctx context.Context, req Request) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.http.PostJSON(ctx, c.endpoint, map[string]string{"User-Agent": c.userAgent}, req)
	elapsed := time.Since(start)

	if err != nil {
		if isTimeout(err) {
			c.observe("timeout", elapsed)
			c.logger.Warn("Predictor timed out", map[string]interface{}{"timeout": c.timeout.String()})
			return nil, apperrors.NewPredictorTimeoutError(c.timeout)
		}
		c.observe("unavailable", elapsed)
		c.logger.Error("Predictor unreachable", map[string]interface{}{"error": err.Error()})
		return nil, apperrors.NewPredictorUnavailableError(err)
	}

	if !resp.OK() {
		c.observe("bad_response", elapsed)
		c.logger.Warn("Predictor returned error status", map[string]interface{}{
			"status": resp.StatusCode,
			"body":   string(resp.Body),
		})
		return nil, apperrors.NewPredictorBadResponseError(resp.StatusCode, string(resp.Body))
	}

	c.observe("ok", elapsed)
	c.logger.Debug("Predictor responded", map[string]interface{}{
		"status":   resp.StatusCode,
		"duration": elapsed.String(),
	})
	return resp.Body, nil
}

// Recommend queries the predictor for profile and shortlists the answer
// against catalog.
func (c *Client) Recommend(ctx context.Context, profile models.UserProfile, catalog []models.Scheme) ([]models.SchemeRecommendation, error) {
	body, err := c.Predict(ctx, RequestFromProfile(profile))
	if err != nil {
		return nil, err
	}
	items, err := ParseItems(body)
	if err != nil {
		return nil, apperrors.NewPredictorBadResponseError(http.StatusOK, err.Error())
	}
	return NewShortlister(catalog).Shortlist(profile, items), nil
}

func (c *Client) observe(outcome string, d time.Duration) {
	metrics.PredictorRequestDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
