// internal/workers/assessment/score-assessment/models.go
package scoreassessment

import "ai-readiness-funnel/internal/assessment"

type Input struct {
	AssessmentID string                       `json:"assessmentId"`
	Answers      map[string]assessment.Answer `json:"answers"`
	UserInfo     *assessment.UserInfo         `json:"userInfo,omitempty"`
}

type Output struct {
	TotalScore      float64                             `json:"totalScore"`
	Percentage      float64                             `json:"percentage"`
	MaturityLevel   string                              `json:"maturityLevel"`
	CategoryScores  map[string]assessment.CategoryScore `json:"categoryScores"`
	Recommendations []string                            `json:"recommendations"`
	Priority        string                              `json:"priority"`
	Source          string                              `json:"source"`
}
