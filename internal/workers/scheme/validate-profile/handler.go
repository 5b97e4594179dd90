// internal/workers/scheme/validate-profile/handler.go
package validateprofile

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "scheme-finder/internal/common/errors"
	"scheme-finder/internal/common/logger"
	"scheme-finder/internal/common/validation"
	"scheme-finder/internal/models"
)

const (
	TaskType = "validate-profile"
)

// ProfileSaver persists a normalized profile.
type ProfileSaver interface {
	Save(ctx context.Context, citizenID string, p models.UserProfile) error
}

type Handler struct {
	config     *Config
	profiles   ProfileSaver
	logger     logger.Logger
	errHandler *apperrors.ErrorHandler
}

// NewHandler accepts a nil profiles store, in which case nothing is persisted.
func NewHandler(config *Config, profiles ProfileSaver, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
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
	if input.Profile == nil {
		return nil, apperrors.NewProfileValidationError(map[string]string{"profile": "profile is required"})
	}

	profile, shape, err := validation.DecodeProfile(input.Profile)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if !shape.Valid {
		return nil, apperrors.NewProfileValidationError(shape.FieldErrors())
	}

	profile = validation.NormalizeProfile(profile)
	if res := validation.ValidateProfile(profile); !res.Valid {
		h.logger.Info("profile rejected", map[string]interface{}{
			"citizenId": input.CitizenID,
			"errors":    res.GetErrorMessages(),
		})
		return nil, apperrors.NewProfileValidationError(res.FieldErrors())
	}

	output := &Output{Profile: profile, ProfileValid: true}
	if h.config.Persist && h.profiles != nil && input.CitizenID != "" {
		if err := h.profiles.Save(ctx, input.CitizenID, profile); err != nil {
			return nil, err
		}
		output.Persisted = true
	}

	h.logger.Info("profile validated", map[string]interface{}{
		"citizenId": input.CitizenID,
		"persisted": output.Persisted,
	})
	return output, nil
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
