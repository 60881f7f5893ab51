// internal/workers/leads/create-lead-record/handler.go
package createleadrecord

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"ai-readiness-funnel/internal/common/errors"
	"ai-readiness-funnel/internal/common/logger"
	"ai-readiness-funnel/internal/common/metrics"
	"ai-readiness-funnel/internal/leads"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "lead.record.create"
)

// LeadStore is the part of leads.Repository the worker writes through.
type LeadStore interface {
	Create(ctx context.Context, s *leads.ContactSubmission) error
}

type Handler struct {
	config     *Config
	store      LeadStore
	logger     logger.Logger
	errHandler *errors.ErrorHandler
}

func NewHandler(config *Config, store LeadStore, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		store:      store,
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
	input.RequestKey = fmt.Sprintf("job:%d", job.Key)

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.errHandler.HandleJobError(ctx, client, job, err)
		return err
	}

	return h.completeJob(ctx, client, job, output)
}

// Execute stores the lead. A duplicate is a business error and is not
// retried; a failed insert is. Running twice with the same key succeeds
// both times with the same submission.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	submission := toSubmission(input)
	if submission.Name == "" || submission.Email == "" || submission.Company == "" {
		return nil, errors.NewValidationError("name, email and company are required")
	}

	err := h.store.Create(ctx, submission)
	switch {
	case stderrors.Is(err, leads.ErrDuplicateSubmission):
		return nil, errors.NewDuplicateSubmissionError(err.Error())
	case err != nil:
		return nil, errors.NewDatabaseInsertFailedError(err)
	}

	metrics.ContactSubmissions.WithLabelValues(submission.Source, submission.Priority).Inc()
	h.logger.Info("lead record created", map[string]interface{}{
		"submissionId":  submission.ID,
		"source":        submission.Source,
		"priority":      submission.Priority,
		"maturityLevel": submission.MaturityLevel,
	})

	return &Output{
		SubmissionID: submission.ID,
		Priority:     submission.Priority,
		CreatedAt:    submission.CreatedAt.Format(time.RFC3339),
	}, nil
}

func toSubmission(input *Input) *leads.ContactSubmission {
	s := &leads.ContactSubmission{
		Name:          strings.TrimSpace(input.Name),
		Email:         strings.ToLower(strings.TrimSpace(input.Email)),
		Company:       strings.TrimSpace(input.Company),
		Role:          strings.TrimSpace(input.Role),
		Phone:         strings.TrimSpace(input.Phone),
		Message:       strings.TrimSpace(input.Message),
		Source:        input.Source,
		MaturityLevel: input.MaturityLevel,
		Percentage:    input.Percentage,
		Priority:      input.Priority,
	}
	switch {
	case input.AssessmentID != "":
		s.ID = leads.SubmissionID(input.AssessmentID)
	case input.RequestKey != "":
		s.ID = leads.SubmissionID(input.RequestKey)
	}
	if input.UserInfo != nil {
		info := input.UserInfo.Normalize()
		if s.Name == "" {
			s.Name = info.Name
		}
		if s.Email == "" {
			s.Email = strings.ToLower(info.Email)
		}
		if s.Company == "" {
			s.Company = info.Company
		}
		if s.Role == "" {
			s.Role = info.Role
		}
	}
	if s.Source == "" {
		s.Source = leads.SourceContactForm
		if s.Percentage != nil || s.MaturityLevel != "" {
			s.Source = leads.SourceAssessment
		}
	}
	if s.Priority == "" {
		s.Priority = leads.ClassifyPriority(s.MaturityLevel, s.Percentage)
	}
	return s
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
