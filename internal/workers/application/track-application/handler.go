// internal/workers/application/track-application/handler.go
package trackapplication

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "scheme-finder/internal/common/errors"
	"scheme-finder/internal/common/logger"
	"scheme-finder/internal/models"
)

const (
	TaskType = "track-application"
)

// Tracker is the application store; *tracker.Repository implements it.
type Tracker interface {
	Add(ctx context.Context, citizenID string, scheme models.SchemeRecommendation) (*models.TrackedApplication, bool, error)
	Update(ctx context.Context, citizenID, id string, upd models.ApplicationUpdate) (*models.TrackedApplication, error)
	Remove(ctx context.Context, citizenID, id string) error
	List(ctx context.Context, citizenID string) ([]models.TrackedApplication, error)
	IsTracked(ctx context.Context, citizenID, schemeName string) (bool, error)
}

type Handler struct {
	config     *Config
	tracker    Tracker
	logger     logger.Logger
	errHandler *apperrors.ErrorHandler
}

func NewHandler(config *Config, tracker Tracker, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		tracker:    tracker,
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
	if strings.TrimSpace(input.CitizenID) == "" {
		return nil, apperrors.NewInvalidInputError("citizenId", "is required")
	}

	action := strings.ToLower(strings.TrimSpace(input.Action))
	out := &Output{Action: action}

	switch action {
	case ActionAdd:
		if input.Scheme == nil || strings.TrimSpace(input.Scheme.SchemeName) == "" {
			return nil, apperrors.NewInvalidInputError("scheme", "schemeName is required")
		}
		app, created, err := h.tracker.Add(ctx, input.CitizenID, *input.Scheme)
		if err != nil {
			return nil, err
		}
		out.Application, out.Created, out.Tracked = app, created, true

	case ActionUpdate:
		if input.ApplicationID == "" || input.Update == nil {
			return nil, apperrors.NewInvalidInputError("update", "applicationId and update are required")
		}
		app, err := h.tracker.Update(ctx, input.CitizenID, input.ApplicationID, *input.Update)
		if err != nil {
			return nil, err
		}
		out.Application, out.Tracked = app, true

	case ActionRemove:
		if input.ApplicationID == "" {
			return nil, apperrors.NewInvalidInputError("applicationId", "is required")
		}
		if err := h.tracker.Remove(ctx, input.CitizenID, input.ApplicationID); err != nil {
			return nil, err
		}

	case ActionList:
		apps, err := h.tracker.List(ctx, input.CitizenID)
		if err != nil {
			return nil, err
		}
		out.Applications, out.Total = apps, len(apps)

	case ActionCheck:
		name := input.SchemeName
		if name == "" && input.Scheme != nil {
			name = input.Scheme.SchemeName
		}
		if strings.TrimSpace(name) == "" {
			return nil, apperrors.NewInvalidInputError("schemeName", "is required")
		}
		tracked, err := h.tracker.IsTracked(ctx, input.CitizenID, name)
		if err != nil {
			return nil, err
		}
		out.Tracked = tracked

	default:
		return nil, apperrors.NewInvalidInputError("action", fmt.Sprintf("unsupported action %q", input.Action))
	}

	h.logger.Info("application tracker updated", map[string]interface{}{
		"citizenId": input.CitizenID,
		"action":    action,
		"created":   out.Created,
	})
	return out, nil
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
