package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func leadSchema() JSONSchema {
	return JSONSchema{
		Type: "object",
		Properties: map[string]Property{
			"email":    {Type: "string", Format: "email"},
			"company":  {Type: "string", MinLength: intPtr(1)},
			"priority": {Type: "string", Enum: []string{"high", "medium", "low"}},
		},
		Required: []string{"email", "company"},
	}
}

func TestValidateInput_Valid(t *testing.T) {
	result := ValidateInput(map[string]interface{}{
		"email":    "ada@example.com",
		"company":  "Analytical Engines",
		"priority": "high",
	}, leadSchema())

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateInput_Errors(t *testing.T) {
	result := ValidateInput(map[string]interface{}{
		"email":    "not-an-email",
		"priority": "urgent",
		"extra":    true,
	}, leadSchema())

	require.False(t, result.Valid)
	assert.True(t, result.HasErrors("company"))
	assert.True(t, result.HasErrors("email"))
	assert.True(t, result.HasErrors("priority"))
	assert.True(t, result.HasErrors("extra"))

	codes := map[string]string{}
	for _, e := range result.Errors {
		codes[e.Field] = e.Code
	}
	assert.Equal(t, "REQUIRED_FIELD_MISSING", codes["company"])
	assert.Equal(t, "INVALID_FORMAT", codes["email"])
	assert.Equal(t, "INVALID_ENUM_VALUE", codes["priority"])
	assert.Equal(t, "EXTRA_FIELD", codes["extra"])
	assert.Len(t, result.GetErrorMessages(), len(result.Errors))
}

func TestValidateEmailAndPhone(t *testing.T) {
	assert.True(t, ValidateEmail("ada@example.com"))
	assert.False(t, ValidateEmail("ada@"))
	assert.True(t, ValidatePhone("+44 20 7946 0958"))
	assert.False(t, ValidatePhone("12345"))
}
