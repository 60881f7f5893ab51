// Package leads stores and classifies contact submissions coming from the
// contact form and from completed assessments.
package leads

import (
	"time"

	"ai-readiness-funnel/internal/assessment"

	"github.com/google/uuid"
)

const (
	SourceContactForm = "contact-form"
	SourceAssessment  = "assessment"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

type ContactSubmission struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Company       string    `json:"company"`
	Role          string    `json:"role,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Message       string    `json:"message,omitempty"`
	Source        string    `json:"source"`
	MaturityLevel string    `json:"maturityLevel,omitempty"`
	Percentage    *float64  `json:"percentage,omitempty"`
	Priority      string    `json:"priority"`
	CreatedAt     time.Time `json:"createdAt"`
}

var submissionNamespace = uuid.MustParse("9b6f3c52-7a0e-4d8b-a4d1-3e2f5c7b9a10")

// SubmissionID derives a stable submission ID from a request key such as an
// assessment ID or a job key. Creating twice with the same ID stores one row.
func SubmissionID(key string) string {
	return uuid.NewSHA1(submissionNamespace, []byte(key)).String()
}

// FromAssessment builds the submission recorded when a wizard completes.
func FromAssessment(info assessment.UserInfo, score assessment.AssessmentScore) *ContactSubmission {
	pct := score.Percentage
	level := score.MaturityLevel.Level
	return &ContactSubmission{
		Name:          info.Name,
		Email:         info.Email,
		Company:       info.Company,
		Role:          info.Role,
		Source:        SourceAssessment,
		MaturityLevel: level,
		Percentage:    &pct,
		Priority:      ClassifyPriority(level, &pct),
	}
}

// FromContactForm builds a submission from a validated contact form.
func FromContactForm(form *ContactForm) *ContactSubmission {
	return &ContactSubmission{
		Name:     form.Name,
		Email:    form.Email,
		Company:  form.Company,
		Role:     form.Role,
		Phone:    form.Phone,
		Message:  form.Message,
		Source:   SourceContactForm,
		Priority: ClassifyPriority("", nil),
	}
}
