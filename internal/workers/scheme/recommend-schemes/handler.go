// internal/workers/scheme/recommend-schemes/handler.go
package recommendschemes

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"

	"scheme-finder/internal/catalog"
	apperrors "scheme-finder/internal/common/errors"
	"scheme-finder/internal/common/logger"
	"scheme-finder/internal/common/metrics"
	"scheme-finder/internal/common/validation"
	"scheme-finder/internal/matching"
	"scheme-finder/internal/models"
)

const (
	TaskType = "recommend-schemes"
)

type ProfileGetter interface {
	Get(ctx context.Context, citizenID string) (*models.UserProfile, error)
}

type Handler struct {
	config     *Config
	catalog    *catalog.Store
	engine     *matching.Engine
	profiles   ProfileGetter
	redis      *redis.Client
	logger     logger.Logger
	errHandler *apperrors.ErrorHandler
}

// NewHandler wires the worker. A nil redis client disables result caching.
func NewHandler(config *Config, store *catalog.Store, engine *matching.Engine, profiles ProfileGetter, rdb *redis.Client, log logger.Logger) *Handler {
	if engine == nil {
		engine = matching.NewEngine()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		catalog:    store,
		engine:     engine,
		profiles:   profiles,
		redis:      rdb,
		logger:     log,
		errHandler: apperrors.NewErrorHandler(log),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.errHandler.HandleJobError(ctx, client, job, fmt.Errorf("parse input: %w", err))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.errHandler.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	profile, err := h.resolveProfile(ctx, input)
	if err != nil {
		return nil, err
	}

	snap := h.catalog.Current()
	if snap == nil {
		return nil, apperrors.NewCatalogEmptyError("store")
	}

	key := cacheKey(snap.Version, profile)
	if cached, ok := h.fromCache(ctx, key); ok {
		metrics.RecommendationsServed.WithLabelValues("worker", "hit").Inc()
		return h.output(snap, cached, true), nil
	}

	res := h.engine.Rank(profile, snap.Schemes())
	for _, rule := range res.Applied {
		metrics.OverridesApplied.WithLabelValues(rule).Inc()
	}
	for _, r := range res.Recommendations {
		metrics.MatchScores.Observe(float64(r.MatchScore))
	}
	metrics.RecommendationListSize.Observe(float64(len(res.Recommendations)))
	metrics.RecommendationsServed.WithLabelValues("worker", "miss").Inc()

	ranked := ranking{Recommendations: res.Recommendations, OverridesApplied: res.Applied}
	h.toCache(ctx, key, ranked)

	h.logger.Info("schemes ranked", map[string]interface{}{
		"citizenId":      input.CitizenID,
		"evaluated":      res.Evaluated,
		"eligible":       res.Eligible,
		"returned":       len(res.Recommendations),
		"catalogVersion": snap.Version,
	})
	return h.output(snap, ranked, false), nil
}

func (h *Handler) output(snap *catalog.Snapshot, r ranking, cached bool) *Output {
	applied := r.OverridesApplied
	if applied == nil {
		applied = []string{}
	}
	recs := r.Recommendations
	if recs == nil {
		recs = []models.ScoredScheme{}
	}
	return &Output{
		Recommendations:  recs,
		Total:            len(recs),
		CatalogVersion:   snap.Version,
		OverridesApplied: applied,
		Cached:           cached,
	}
}

func (h *Handler) resolveProfile(ctx context.Context, input *Input) (models.UserProfile, error) {
	var profile models.UserProfile
	switch {
	case input.Profile != nil:
		profile = *input.Profile
	case input.CitizenID != "" && h.profiles != nil:
		p, err := h.profiles.Get(ctx, input.CitizenID)
		if err != nil {
			return models.UserProfile{}, err
		}
		profile = *p
	default:
		return models.UserProfile{}, apperrors.NewProfileValidationError(map[string]string{"profile": "profile or citizenId is required"})
	}

	profile = validation.NormalizeProfile(profile)
	if res := validation.ValidateProfile(profile); !res.Valid {
		return models.UserProfile{}, apperrors.NewProfileValidationError(res.FieldErrors())
	}
	return profile, nil
}

func (h *Handler) fromCache(ctx context.Context, key string) (ranking, bool) {
	if h.redis == nil {
		return ranking{}, false
	}
	val, err := h.redis.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			h.logger.Warn("recommendation cache read failed", map[string]interface{}{"error": err.Error()})
		}
		return ranking{}, false
	}
	var r ranking
	if err := json.Unmarshal([]byte(val), &r); err != nil {
		return ranking{}, false
	}
	return r, true
}

func (h *Handler) toCache(ctx context.Context, key string, r ranking) {
	if h.redis == nil {
		return
	}
	data, err := json.Marshal(r)
	if err != nil {
		return
	}
	if err := h.redis.Set(ctx, key, data, h.config.CacheTTL).Err(); err != nil {
		h.logger.Warn("recommendation cache write failed", map[string]interface{}{"error": err.Error()})
	}
}

// cacheKey ties a cached ranking to both the profile and the catalog it was
// computed from, so a reload invalidates old entries implicitly.
func cacheKey(catalogVersion string, profile models.UserProfile) string {
	data, _ := json.Marshal(profile)
	sum := sha256.Sum256(data)
	return "recs:" + catalogVersion + ":" + hex.EncodeToString(sum[:8])
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
