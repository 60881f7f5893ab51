// internal/workers/leads/create-lead-record/models.go
package createleadrecord

import "ai-readiness-funnel/internal/assessment"

// Input accepts either flat contact fields or the userInfo object set by the
// assessment-completed process. Flat fields win.
//
// The stored row ID is derived from AssessmentID, or from RequestKey when no
// assessment is involved, so a retried job finds the row it already wrote.
type Input struct {
	AssessmentID  string               `json:"assessmentId"`
	RequestKey    string               `json:"-"`
	Name          string               `json:"name"`
	Email         string               `json:"email"`
	Company       string               `json:"company"`
	Role          string               `json:"role"`
	Phone         string               `json:"phone"`
	Message       string               `json:"message"`
	Source        string               `json:"source"`
	MaturityLevel string               `json:"maturityLevel"`
	Percentage    *float64             `json:"percentage"`
	Priority      string               `json:"priority"`
	UserInfo      *assessment.UserInfo `json:"userInfo,omitempty"`
}

type Output struct {
	SubmissionID string `json:"submissionId"`
	Priority     string `json:"priority"`
	CreatedAt    string `json:"createdAt"` // ISO 8601
}
