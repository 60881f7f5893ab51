// internal/workers/crm/crm-lead-sync/handler.go
package crmleadsync

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"ai-readiness-funnel/internal/common/errors"
	commonhttp "ai-readiness-funnel/internal/common/http"
	"ai-readiness-funnel/internal/common/logger"
	"ai-readiness-funnel/internal/common/zoho"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "crm.lead.sync"
)

// CRM is the part of zoho.CRMClient the worker uses.
type CRM interface {
	FindLeadByEmail(ctx context.Context, email string) (*zoho.Lead, error)
	CreateLead(ctx context.Context, lead *zoho.Lead) (string, error)
	UpdateLead(ctx context.Context, leadID string, lead *zoho.Lead) error
}

type Handler struct {
	config     *Config
	crm        CRM
	logger     logger.Logger
	errHandler *errors.ErrorHandler
}

func NewHandler(config *Config, crm CRM, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		crm:        crm,
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

	variables, err := job.GetVariablesAsMap()
	if err != nil {
		stdErr := errors.NewValidationError(fmt.Sprintf("parse input: %v", err))
		h.errHandler.HandleJobError(ctx, client, job, stdErr)
		return stdErr
	}
	if result := inputSchema.Validate(variables); !result.Valid {
		stdErr := errors.NewValidationError(strings.Join(result.GetErrorMessages(), "; "))
		h.errHandler.HandleJobError(ctx, client, job, stdErr)
		return stdErr
	}

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

// Execute upserts the lead by email. Upstream 5xx and 429 responses and
// transport errors are retried; rejected records are not.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	lead := h.toLead(input)

	existing, err := h.crm.FindLeadByEmail(ctx, lead.Email)
	if err != nil {
		return nil, crmError(err)
	}

	output := &Output{SyncedAt: time.Now().UTC().Format(time.RFC3339)}
	if existing != nil {
		if err := h.crm.UpdateLead(ctx, existing.ID, lead); err != nil {
			return nil, crmError(err)
		}
		output.CRMLeadID = existing.ID
		output.CRMAction = ActionUpdated
	} else {
		id, err := h.crm.CreateLead(ctx, lead)
		if err != nil {
			return nil, crmError(err)
		}
		output.CRMLeadID = id
		output.CRMAction = ActionCreated
	}

	h.logger.Info("lead synced to CRM", map[string]interface{}{
		"submissionId": input.SubmissionID,
		"crmLeadId":    output.CRMLeadID,
		"action":       output.CRMAction,
	})
	return output, nil
}

func (h *Handler) toLead(input *Input) *zoho.Lead {
	first, last := splitName(input.Name)

	var desc []string
	if input.MaturityLevel != "" {
		line := "AI maturity: " + input.MaturityLevel
		if input.Percentage != nil {
			line += fmt.Sprintf(" (%.0f%%)", *input.Percentage)
		}
		desc = append(desc, line)
	}
	if input.Source != "" {
		desc = append(desc, "Funnel source: "+input.Source)
	}
	if input.Message != "" {
		desc = append(desc, input.Message)
	}

	return &zoho.Lead{
		FirstName:   first,
		LastName:    last,
		Email:       strings.ToLower(strings.TrimSpace(input.Email)),
		Company:     strings.TrimSpace(input.Company),
		Designation: input.Role,
		Phone:       input.Phone,
		Source:      h.config.LeadSource,
		Rating:      rating(input.Priority),
		Description: strings.Join(desc, "\n"),
	}
}

// splitName puts everything but the last word in the first name. Zoho
// requires a last name, so a single word goes there.
func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return "", parts[0]
	default:
		return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
	}
}

func rating(priority string) string {
	switch priority {
	case "high":
		return "Hot"
	case "medium":
		return "Warm"
	case "low":
		return "Cold"
	default:
		return ""
	}
}

func crmError(err error) error {
	stdErr := errors.NewCRMSyncFailedError(err)
	var statusErr *commonhttp.StatusError
	if stderrors.Is(err, zoho.ErrRecordRejected) ||
		(stderrors.As(err, &statusErr) && !statusErr.Retryable()) {
		stdErr.Retryable = false
	}
	return stdErr
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
