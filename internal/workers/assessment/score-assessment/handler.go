// internal/workers/assessment/score-assessment/handler.go
package scoreassessment

import (
	"context"
	"encoding/json"
	"fmt"

	"ai-readiness-funnel/internal/assessment"
	"ai-readiness-funnel/internal/common/errors"
	"ai-readiness-funnel/internal/common/logger"
	"ai-readiness-funnel/internal/leads"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "assessment.score"
)

type Handler struct {
	config     *Config
	catalog    *assessment.Catalog
	logger     logger.Logger
	errHandler *errors.ErrorHandler
}

// NewHandler scores against catalog, or the default catalog when nil.
func NewHandler(config *Config, catalog *assessment.Catalog, log logger.Logger) *Handler {
	if catalog == nil {
		catalog = assessment.DefaultCatalog()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		catalog:    catalog,
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

// Execute scores the answers. Unknown question IDs are ignored, so the only
// failure is a cancelled context.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewInternalError(err)
	}

	score := h.catalog.CalculateScore(input.Answers)
	pct := score.Percentage
	level := score.MaturityLevel.Level

	h.logger.Info("assessment scored", map[string]interface{}{
		"assessmentId":  input.AssessmentID,
		"answers":       len(input.Answers),
		"percentage":    pct,
		"maturityLevel": level,
	})

	return &Output{
		TotalScore:      score.Total,
		Percentage:      pct,
		MaturityLevel:   level,
		CategoryScores:  score.ByCategory,
		Recommendations: h.catalog.GetRecommendationsForScore(score),
		Priority:        leads.ClassifyPriority(level, &pct),
		Source:          leads.SourceAssessment,
	}, nil
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
