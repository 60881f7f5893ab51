// internal/workers/leads/send-lead-notification/models.go
package sendleadnotification

import "ai-readiness-funnel/internal/assessment"

const (
	StatusSent     = "sent"
	StatusDisabled = "disabled"
)

type Input struct {
	SubmissionID    string               `json:"submissionId"`
	Name            string               `json:"name"`
	Email           string               `json:"email"`
	Company         string               `json:"company"`
	Role            string               `json:"role"`
	Phone           string               `json:"phone"`
	Message         string               `json:"message"`
	Source          string               `json:"source"`
	MaturityLevel   string               `json:"maturityLevel"`
	Percentage      *float64             `json:"percentage"`
	Priority        string               `json:"priority"`
	Recommendations []string             `json:"recommendations"`
	UserInfo        *assessment.UserInfo `json:"userInfo,omitempty"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	Status         string `json:"notificationStatus"`
	EmailMessageID string `json:"emailMessageId,omitempty"`
	SMSMessageID   string `json:"smsMessageId,omitempty"`
	SentAt         string `json:"sentAt"`
}
