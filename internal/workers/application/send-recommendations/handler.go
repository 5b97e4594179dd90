// internal/workers/application/send-recommendations/handler.go
package sendrecommendations

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	apperrors "scheme-finder/internal/common/errors"
	"scheme-finder/internal/common/logger"
	"scheme-finder/internal/common/validation"
	"scheme-finder/internal/report"
)

const (
	TaskType = "send-recommendations"
)

type EmailSender interface {
	Send(ctx context.Context, to, subject, text, html string) (string, error)
}

type SMSSender interface {
	Send(ctx context.Context, phone, message string) (string, error)
}

type Handler struct {
	config     *Config
	mailer     EmailSender
	texter     SMSSender
	logger     logger.Logger
	errHandler *apperrors.ErrorHandler
	now        func() time.Time
}

// NewHandler wires the worker. A nil sender disables its channel.
func NewHandler(config *Config, mailer EmailSender, texter SMSSender, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		mailer:     mailer,
		texter:     texter,
		logger:     log,
		errHandler: apperrors.NewErrorHandler(log),
		now:        time.Now,
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
	if input.Email != "" && !validation.ValidateEmail(input.Email) {
		return nil, apperrors.NewInvalidInputError("email", "invalid email address")
	}
	if input.Phone != "" && !validation.ValidatePhone(input.Phone) {
		return nil, apperrors.NewInvalidInputError("phone", "invalid phone number")
	}

	now := h.now().UTC()
	rep := report.FromRecommendations(input.Predictions, now)
	if len(input.Recommendations) > 0 {
		rep = report.FromScored(input.Recommendations, now)
	}

	out := &Output{
		NotificationID: uuid.New().String(),
		Status:         StatusDisabled,
		Channels:       []string{},
		SchemeCount:    rep.Total(),
		SentAt:         now.Format(time.RFC3339),
	}

	if h.config.EmailEnabled && h.mailer != nil && input.Email != "" {
		text, err := rep.Text()
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		html, err := rep.HTML()
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		msgID, err := h.mailer.Send(ctx, input.Email, rep.Title, text, html)
		if err != nil {
			return nil, apperrors.NewNotificationSendFailedError(ChannelEmail, err)
		}
		h.logger.Debug("report emailed", map[string]interface{}{"messageId": msgID})
		out.Channels = append(out.Channels, ChannelEmail)
	}

	// SMS is a courtesy summary; a failure here does not undo a sent email.
	if h.config.SMSEnabled && h.texter != nil && input.Phone != "" {
		if _, err := h.texter.Send(ctx, input.Phone, rep.Summary(h.config.SMSNames)); err != nil {
			if len(out.Channels) == 0 {
				return nil, apperrors.NewNotificationSendFailedError(ChannelSMS, err)
			}
			h.logger.Warn("sms summary failed", map[string]interface{}{
				"citizenId": input.CitizenID,
				"error":     err.Error(),
			})
		} else {
			out.Channels = append(out.Channels, ChannelSMS)
		}
	}

	if len(out.Channels) > 0 {
		out.Status = StatusSent
	}

	h.logger.Info("recommendations delivered", map[string]interface{}{
		"citizenId": input.CitizenID,
		"status":    out.Status,
		"channels":  out.Channels,
		"schemes":   out.SchemeCount,
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
