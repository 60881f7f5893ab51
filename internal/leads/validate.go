package leads

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var ErrInvalidContact = errors.New("invalid contact submission")

// ContactForm is the body of POST /v1/contact.
type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Role    string `json:"role,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message,omitempty"`
}

const contactFormSchema = `{
	"type": "object",
	"required": ["name", "email", "company"],
	"properties": {
		"name":    {"type": "string", "minLength": 1, "maxLength": 120},
		"email":   {"type": "string", "format": "email", "maxLength": 254},
		"company": {"type": "string", "minLength": 1, "maxLength": 200},
		"role":    {"type": "string", "maxLength": 120},
		"phone":   {"type": "string", "maxLength": 40},
		"message": {"type": "string", "maxLength": 4000}
	}
}`

var contactSchema = mustSchema(contactFormSchema)

func mustSchema(s string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(fmt.Sprintf("leads: invalid contact schema: %v", err))
	}
	return schema
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed. It matches
// ErrInvalidContact with errors.Is.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return fmt.Sprintf("%s: %s", ErrInvalidContact, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidContact
}

// ValidateContact checks the raw body against the contact schema, then
// trims fields and requires name, email and company to be non-blank.
func ValidateContact(raw []byte) (*ContactForm, error) {
	result, err := contactSchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, &ValidationError{Fields: []FieldError{{Field: "body", Message: "must be a JSON object"}}}
	}
	if !result.Valid() {
		fields := make([]FieldError, 0, len(result.Errors()))
		for _, re := range result.Errors() {
			field := re.Field()
			if p, ok := re.Details()["property"].(string); ok && p != "" {
				field = p
			}
			fields = append(fields, FieldError{Field: field, Message: re.Description()})
		}
		sort.SliceStable(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
		return nil, &ValidationError{Fields: fields}
	}

	var form ContactForm
	if err := json.Unmarshal(raw, &form); err != nil {
		return nil, &ValidationError{Fields: []FieldError{{Field: "body", Message: err.Error()}}}
	}
	form = form.normalize()

	var missing []FieldError
	for _, f := range []struct{ name, value string }{
		{"name", form.Name},
		{"email", form.Email},
		{"company", form.Company},
	} {
		if f.value == "" {
			missing = append(missing, FieldError{Field: f.name, Message: "must not be blank"})
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}
	return &form, nil
}

func (f ContactForm) normalize() ContactForm {
	return ContactForm{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.ToLower(strings.TrimSpace(f.Email)),
		Company: strings.TrimSpace(f.Company),
		Role:    strings.TrimSpace(f.Role),
		Phone:   strings.TrimSpace(f.Phone),
		Message: strings.TrimSpace(f.Message),
	}
}
