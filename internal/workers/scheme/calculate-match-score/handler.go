// internal/workers/scheme/calculate-match-score/handler.go
package calculatematchscore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"scheme-finder/internal/catalog"
	apperrors "scheme-finder/internal/common/errors"
	"scheme-finder/internal/common/logger"
	"scheme-finder/internal/common/metrics"
	"scheme-finder/internal/matching"
	"scheme-finder/internal/models"
)

const (
	TaskType = "calculate-match-score"
)

type ProfileGetter interface {
	Get(ctx context.Context, citizenID string) (*models.UserProfile, error)
}

type Handler struct {
	config     *Config
	catalog    *catalog.Store
	profiles   ProfileGetter
	logger     logger.Logger
	errHandler *apperrors.ErrorHandler
}

func NewHandler(config *Config, store *catalog.Store, profiles ProfileGetter, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		catalog:    store,
		profiles:   profiles,
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
	scheme, err := h.resolveScheme(input)
	if err != nil {
		return nil, err
	}

	factors := matching.DefaultWeights.Breakdown(scheme, *profile)
	metrics.MatchScores.Observe(float64(factors.MatchScore))

	h.logger.Info("match score calculated", map[string]interface{}{
		"citizenId": input.CitizenID,
		"schemeId":  scheme.ID,
		"score":     factors.MatchScore,
		"vetoed":    factors.GenderVetoed,
	})

	return &Output{
		SchemeID:     scheme.ID,
		MatchScore:   factors.MatchScore,
		Recommended:  !factors.GenderVetoed && factors.MatchScore >= matching.MinMatchScore,
		MatchFactors: factors,
	}, nil
}

func (h *Handler) resolveProfile(ctx context.Context, input *Input) (*models.UserProfile, error) {
	if input.Profile != nil {
		return input.Profile, nil
	}
	if input.CitizenID == "" || h.profiles == nil {
		return nil, apperrors.NewProfileValidationError(map[string]string{"profile": "profile or citizenId is required"})
	}

	profile, err := h.profiles.Get(ctx, input.CitizenID)
	if err != nil {
		h.logger.Warn("failed to fetch citizen profile", map[string]interface{}{
			"citizenId": input.CitizenID,
			"error":     err.Error(),
		})
		return nil, err
	}
	return profile, nil
}

func (h *Handler) resolveScheme(input *Input) (models.Scheme, error) {
	if input.Scheme != nil {
		return *input.Scheme, nil
	}
	snap := h.catalog.Current()
	if snap == nil {
		return models.Scheme{}, apperrors.NewCatalogEmptyError("store")
	}
	scheme, ok := snap.Lookup(input.SchemeID)
	if !ok {
		return models.Scheme{}, apperrors.NewSchemeNotFoundError(input.SchemeID)
	}
	return scheme, nil
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
