// internal/workers/crm/crm-lead-sync/handler_test.go
package crmleadsync

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"ai-readiness-funnel/internal/common/errors"
	commonhttp "ai-readiness-funnel/internal/common/http"
	"ai-readiness-funnel/internal/common/logger"
	"ai-readiness-funnel/internal/common/zoho"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeCRM struct {
	existing  *zoho.Lead
	created   *zoho.Lead
	updated   *zoho.Lead
	findErr   error
	createErr error
}

func (f *fakeCRM) FindLeadByEmail(_ context.Context, email string) (*zoho.Lead, error) {
	return f.existing, f.findErr
}

func (f *fakeCRM) CreateLead(_ context.Context, lead *zoho.Lead) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = lead
	return "zoho-100", nil
}

func (f *fakeCRM) UpdateLead(_ context.Context, id string, lead *zoho.Lead) error {
	f.updated = lead
	return nil
}

func createTestHandler(t *testing.T, crm CRM) *Handler {
	return NewHandler(&Config{Timeout: 5 * time.Second, LeadSource: "Website"}, crm, logger.NewTestLogger(t))
}

func createTestInput() *Input {
	pct := 47.0
	return &Input{
		SubmissionID:  "sub-1",
		Name:          "Ada King Lovelace",
		Email:         "ADA@example.com ",
		Company:       "Analytical Engines",
		Role:          "CTO",
		Source:        "assessment",
		MaturityLevel: "Operationalizing",
		Percentage:    &pct,
		Priority:      "medium",
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_CreatesLead(t *testing.T) {
	crm := &fakeCRM{}
	output, err := createTestHandler(t, crm).Execute(context.Background(), createTestInput())

	require.NoError(t, err)
	assert.Equal(t, "zoho-100", output.CRMLeadID)
	assert.Equal(t, ActionCreated, output.CRMAction)

	require.NotNil(t, crm.created)
	assert.Equal(t, "Ada King", crm.created.FirstName)
	assert.Equal(t, "Lovelace", crm.created.LastName)
	assert.Equal(t, "ada@example.com", crm.created.Email)
	assert.Equal(t, "CTO", crm.created.Designation)
	assert.Equal(t, "Warm", crm.created.Rating)
	assert.Equal(t, "Website", crm.created.Source)
	assert.Contains(t, crm.created.Description, "AI maturity: Operationalizing (47%)")
}

func TestHandler_Execute_UpdatesExistingLead(t *testing.T) {
	crm := &fakeCRM{existing: &zoho.Lead{ID: "zoho-7"}}
	output, err := createTestHandler(t, crm).Execute(context.Background(), createTestInput())

	require.NoError(t, err)
	assert.Equal(t, "zoho-7", output.CRMLeadID)
	assert.Equal(t, ActionUpdated, output.CRMAction)
	assert.NotNil(t, crm.updated)
	assert.Nil(t, crm.created)
}

func TestHandler_Execute_ErrorRetryability(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"transport", stderrors.New("dial tcp: connection refused"), true},
		{"server error", &commonhttp.StatusError{StatusCode: http.StatusBadGateway}, true},
		{"rate limited", &commonhttp.StatusError{StatusCode: http.StatusTooManyRequests}, true},
		{"bad request", &commonhttp.StatusError{StatusCode: http.StatusBadRequest}, false},
		{"rejected", fmt.Errorf("create lead: %w: missing", zoho.ErrRecordRejected), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			crm := &fakeCRM{createErr: tt.err}
			_, err := createTestHandler(t, crm).Execute(context.Background(), createTestInput())

			std := errors.Normalize(err)
			assert.Equal(t, errors.ErrCodeCRMSyncFailed, std.Code)
			assert.Equal(t, tt.retryable, std.Retryable)
			if !tt.retryable {
				assert.Equal(t, 0, errors.ConvertToBPMNError(std).Retries)
			}
		})
	}
}

func TestInputSchema(t *testing.T) {
	valid := inputSchema.Validate(map[string]interface{}{
		"name":         "Ada",
		"email":        "ada@example.com",
		"company":      "AE",
		"priority":     "high",
		"submissionId": "sub-1",
	})
	assert.True(t, valid.Valid)

	invalid := inputSchema.Validate(map[string]interface{}{
		"name":     "Ada",
		"email":    "nope",
		"priority": "urgent",
	})
	assert.False(t, invalid.Valid)
	assert.True(t, invalid.HasErrors("email"))
	assert.True(t, invalid.HasErrors("company"))
	assert.True(t, invalid.HasErrors("priority"))
}

func TestSplitName(t *testing.T) {
	first, last := splitName("Cher")
	assert.Equal(t, "", first)
	assert.Equal(t, "Cher", last)

	first, last = splitName("  Grace   Brewster Hopper ")
	assert.Equal(t, "Grace Brewster", first)
	assert.Equal(t, "Hopper", last)
}
