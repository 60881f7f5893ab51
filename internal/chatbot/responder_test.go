package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponder_Reply(t *testing.T) {
	r := NewResponder()

	tests := []struct {
		name     string
		message  string
		wantLink string
	}{
		{"assessment keyword", "How do I take the Readiness test?", "/assessment"},
		{"pricing", "What does it COST?", "/contact"},
		{"case studies", "Do you have case studies?", "/case-studies"},
		{"first rule wins", "What does the assessment cost?", "/assessment"},
		{"services", "What services do you offer", "/services"},
		{"unknown", "qwerty", ""},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := r.Reply(tt.message)
			assert.NotEmpty(t, reply.Message)
			assert.Equal(t, tt.wantLink, reply.Link)
		})
	}
}

func TestResponder_DefaultReply(t *testing.T) {
	reply := NewResponder().Reply("zzz")
	assert.Equal(t, defaultMessage, reply.Message)
	assert.Equal(t, defaultSuggestions, reply.Suggestions)
}
