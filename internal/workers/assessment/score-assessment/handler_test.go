// internal/workers/assessment/score-assessment/handler_test.go
package scoreassessment

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ai-readiness-funnel/internal/assessment"
	"ai-readiness-funnel/internal/common/config"
	"ai-readiness-funnel/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(&Config{Timeout: 5 * time.Second}, nil, logger.NewTestLogger(t))
}

func allAnswersAt(index int) map[string]assessment.Answer {
	out := make(map[string]assessment.Answer)
	for _, q := range assessment.DefaultCatalog().Questions() {
		out[q.ID] = assessment.Answer{QuestionID: q.ID, Value: assessment.OptionValue(index)}
	}
	return out
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_TopAnswers(t *testing.T) {
	output, err := createTestHandler(t).Execute(context.Background(), &Input{
		AssessmentID: "a-1",
		Answers:      allAnswersAt(3),
	})

	require.NoError(t, err)
	assert.Equal(t, 120.0, output.TotalScore)
	assert.Equal(t, 100.0, output.Percentage)
	assert.Equal(t, assessment.LevelOptimizing, output.MaturityLevel)
	assert.Equal(t, "high", output.Priority)
	assert.Equal(t, "assessment", output.Source)
	assert.Len(t, output.CategoryScores, 6)
	assert.NotEmpty(t, output.Recommendations)
}

func TestHandler_Execute_NoAnswers(t *testing.T) {
	output, err := createTestHandler(t).Execute(context.Background(), &Input{})

	require.NoError(t, err)
	assert.Equal(t, 0.0, output.Percentage)
	assert.Equal(t, assessment.LevelExploring, output.MaturityLevel)
	assert.Equal(t, "low", output.Priority)
	// every category is weak, so each contributes its sentence
	assert.Len(t, output.Recommendations, 3+6)
}

func TestHandler_Execute_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	output, err := createTestHandler(t).Execute(ctx, &Input{Answers: allAnswersAt(2)})
	assert.Error(t, err)
	assert.Nil(t, output)
}

func TestInput_DecodesProcessVariables(t *testing.T) {
	vars := `{
		"assessmentId": "a-2",
		"answers": {
			"strategy-vision": {"questionId": "strategy-vision", "value": "3"},
			"data-quality": {"questionId": "data-quality", "value": 2}
		},
		"userInfo": {"name": "Ada", "email": "ada@example.com", "company": "AE"}
	}`

	var input Input
	require.NoError(t, json.Unmarshal([]byte(vars), &input))
	require.NotNil(t, input.UserInfo)
	assert.Equal(t, "Ada", input.UserInfo.Name)

	output, err := createTestHandler(t).Execute(context.Background(), &input)
	require.NoError(t, err)
	assert.Greater(t, output.TotalScore, 0.0)
}

func TestLoadConfig(t *testing.T) {
	assert.Equal(t, 2*time.Second, LoadConfig(config.WorkerConfig{Timeout: 2000}).Timeout)
	assert.Equal(t, 10*time.Second, LoadConfig(config.WorkerConfig{}).Timeout)
}
