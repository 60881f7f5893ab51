// internal/workers/crm/crm-lead-sync/validation.go
package crmleadsync

import "ai-readiness-funnel/internal/common/validation"

func intPtr(i int) *int { return &i }

// inputSchema allows extra properties because the job carries every process
// variable in scope.
var inputSchema = validation.MustCompile(validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"name":     {Type: "string", MinLength: intPtr(1), MaxLength: intPtr(120)},
		"email":    {Type: "string", Format: "email"},
		"company":  {Type: "string", MinLength: intPtr(1), MaxLength: intPtr(200)},
		"role":     {Type: "string"},
		"phone":    {Type: "string"},
		"source":   {Type: "string", Enum: []string{"contact-form", "assessment"}},
		"priority": {Type: "string", Enum: []string{"high", "medium", "low"}},
	},
	Required:             []string{"name", "email", "company"},
	AdditionalProperties: true,
})
