// internal/workers/crm/crm-lead-sync/models.go
package crmleadsync

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
)

type Input struct {
	SubmissionID  string   `json:"submissionId"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Company       string   `json:"company"`
	Role          string   `json:"role"`
	Phone         string   `json:"phone"`
	Message       string   `json:"message"`
	Source        string   `json:"source"`
	MaturityLevel string   `json:"maturityLevel"`
	Percentage    *float64 `json:"percentage"`
	Priority      string   `json:"priority"`
}

type Output struct {
	CRMLeadID string `json:"crmLeadId"`
	CRMAction string `json:"crmAction"`
	SyncedAt  string `json:"syncedAt"`
}
