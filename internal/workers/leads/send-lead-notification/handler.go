// internal/workers/leads/send-lead-notification/handler.go
package sendleadnotification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	awsclient "ai-readiness-funnel/internal/common/aws"
	"ai-readiness-funnel/internal/common/errors"
	"ai-readiness-funnel/internal/common/logger"
	"ai-readiness-funnel/internal/leads"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "lead.notification.send"
)

type Mailer interface {
	SendEmail(ctx context.Context, msg awsclient.Email) (string, error)
}

type SMSSender interface {
	SendSMS(ctx context.Context, phone, message string) (string, error)
}

type Handler struct {
	config     *Config
	mailer     Mailer
	sms        SMSSender
	logger     logger.Logger
	errHandler *errors.ErrorHandler
}

// NewHandler accepts nil senders; the matching channel is then skipped.
func NewHandler(config *Config, mailer Mailer, sms SMSSender, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		mailer:     mailer,
		sms:        sms,
		logger:     log,
		errHandler: errors.NewErrorHandler(log),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		stdErr := errors.NewValidationError(fmt.Sprintf("parse input: %v", err))
		h.errHandler.HandleJobError(ctx, client, job, stdErr)
		return stdErr
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.errHandler.HandleJobError(ctx, client, job, err)
		return err
	}

	return h.completeJob(ctx, client, job, output)
}

// Execute emails the sales inbox and, for leads at or above the SMS
// threshold, texts the sales phone. Only an email failure fails the job, so a
// retry never sends a second text.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	fillFromUserInfo(input)
	if input.Priority == "" {
		input.Priority = leads.ClassifyPriority(input.MaturityLevel, input.Percentage)
	}
	if input.Source == "" {
		input.Source = leads.SourceContactForm
	}

	msg, err := render(input)
	if err != nil {
		return nil, errors.NewInternalError(fmt.Errorf("render notification: %w", err))
	}

	output := &Output{
		NotificationID: uuid.New().String(),
		Status:         StatusDisabled,
		SentAt:         time.Now().UTC().Format(time.RFC3339),
	}

	if h.config.EmailEnabled && h.mailer != nil && h.config.SalesEmail != "" {
		email := awsclient.Email{
			To:       []string{h.config.SalesEmail},
			Subject:  msg.Subject,
			TextBody: msg.Text,
			HTMLBody: msg.HTML,
		}
		if input.Email != "" {
			email.ReplyTo = []string{input.Email}
		}
		id, err := h.mailer.SendEmail(ctx, email)
		if err != nil {
			return nil, errors.NewNotificationSendFailedError("email", err)
		}
		output.EmailMessageID = id
		output.Status = StatusSent
	}

	if h.shouldText(input.Priority) {
		id, err := h.sms.SendSMS(ctx, h.config.SalesPhone, msg.SMS)
		if err != nil {
			h.logger.Warn("sms send failed", map[string]interface{}{
				"error":        err,
				"submissionId": input.SubmissionID,
			})
		} else {
			output.SMSMessageID = id
			output.Status = StatusSent
		}
	}

	h.logger.Info("lead notification processed", map[string]interface{}{
		"submissionId": input.SubmissionID,
		"priority":     input.Priority,
		"status":       output.Status,
		"sms":          output.SMSMessageID != "",
	})
	return output, nil
}

func (h *Handler) shouldText(priority string) bool {
	if !h.config.SMSEnabled || h.sms == nil || h.config.SalesPhone == "" {
		return false
	}
	threshold := h.config.SMSPriorityThreshold
	if threshold == "" {
		threshold = leads.PriorityHigh
	}
	return priorityRank(priority) >= priorityRank(threshold)
}

func priorityRank(priority string) int {
	switch priority {
	case leads.PriorityHigh:
		return 3
	case leads.PriorityMedium:
		return 2
	case leads.PriorityLow:
		return 1
	default:
		return 0
	}
}

func fillFromUserInfo(input *Input) {
	if input.UserInfo == nil {
		return
	}
	info := input.UserInfo.Normalize()
	if input.Name == "" {
		input.Name = info.Name
	}
	if input.Email == "" {
		input.Email = info.Email
	}
	if input.Company == "" {
		input.Company = info.Company
	}
	if input.Role == "" {
		input.Role = info.Role
	}
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return err
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return err
	}
	h.logger.Info("job completed successfully", map[string]interface{}{
		"jobKey": job.Key,
	})
	return nil
}
