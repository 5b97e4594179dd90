// internal/workers/scheme/fetch-predictions/handler.go
package fetchpredictions

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"scheme-finder/internal/catalog"
	apperrors "scheme-finder/internal/common/errors"
	"scheme-finder/internal/common/logger"
	"scheme-finder/internal/common/validation"
	"scheme-finder/internal/matching"
	"scheme-finder/internal/models"
	"scheme-finder/internal/predictor"
)

const (
	TaskType = "fetch-predictions"
)

type Predictor interface {
	Recommend(ctx context.Context, profile models.UserProfile, catalog []models.Scheme) ([]models.SchemeRecommendation, error)
}

type Handler struct {
	config     *Config
	predictor  Predictor
	catalog    *catalog.Store
	logger     logger.Logger
	errHandler *apperrors.ErrorHandler
}

func NewHandler(config *Config, p Predictor, store *catalog.Store, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		predictor:  p,
		catalog:    store,
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
	profile := validation.NormalizeProfile(input.Profile)
	if res := validation.ValidateProfile(profile); !res.Valid {
		return nil, apperrors.NewProfileValidationError(res.FieldErrors())
	}

	schemes := h.catalog.Current().Schemes()

	recs, err := h.predictor.Recommend(ctx, profile, schemes)
	if err == nil {
		h.logger.Info("predictions fetched", map[string]interface{}{
			"citizenId": input.CitizenID,
			"count":     len(recs),
		})
		return &Output{Recommendations: recs, Total: len(recs), Source: SourcePredictor}, nil
	}

	stdErr := apperrors.Normalize(err)
	if !h.config.FallbackToEngine || !unreachable(stdErr.Code) || len(schemes) == 0 {
		return nil, err
	}

	h.logger.Warn("predictor unreachable, falling back to rule engine", map[string]interface{}{
		"citizenId": input.CitizenID,
		"errorCode": string(stdErr.Code),
	})
	recs = fromEngine(profile, schemes)
	return &Output{Recommendations: recs, Total: len(recs), Source: SourceEngine}, nil
}

func unreachable(code apperrors.ErrorCode) bool {
	return code == apperrors.ErrCodePredictorTimeout || code == apperrors.ErrCodePredictorUnavailable
}

// fromEngine reshapes the local ranking into predictor-style entries.
func fromEngine(profile models.UserProfile, schemes []models.Scheme) []models.SchemeRecommendation {
	ranked := matching.Recommend(profile, schemes)
	if len(ranked) > predictor.MaxShortlist {
		ranked = ranked[:predictor.MaxShortlist]
	}

	out := make([]models.SchemeRecommendation, 0, len(ranked))
	for i, s := range ranked {
		out = append(out, models.SchemeRecommendation{
			ID:              strconv.Itoa(i),
			SchemeName:      s.Name,
			State:           s.State,
			ApplicationLink: s.ApplicationLink,
		})
	}
	return out
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
