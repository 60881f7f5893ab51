// Package api serves the funnel's JSON HTTP API.
package api

import (
	"context"
	"net/http"

	"ai-readiness-funnel/internal/assessment"
	"ai-readiness-funnel/internal/chatbot"
	"ai-readiness-funnel/internal/common/camunda"
	"ai-readiness-funnel/internal/common/errors"
	"ai-readiness-funnel/internal/common/logger"
	"ai-readiness-funnel/internal/content"
	"ai-readiness-funnel/internal/leads"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// LeadStore is the part of leads.Repository the API uses.
type LeadStore interface {
	Create(ctx context.Context, s *leads.ContactSubmission) error
	List(ctx context.Context, limit int) ([]leads.ContactSubmission, error)
}

// Processes names the BPMN processes started by the API.
type Processes struct {
	AssessmentCompleted string
	LeadIntake          string
}

// Container holds all dependencies for the router. Starter may be nil when
// the workflow engine is disabled. Routes backed by a nil Sessions or Leads
// store answer 503.
type Container struct {
	Wizard         *assessment.Wizard
	Sessions       assessment.SessionStore
	Leads          LeadStore
	Searcher       content.Searcher
	Chat           *chatbot.Responder
	Starter        camunda.ProcessStarter
	Processes      Processes
	Checks         map[string]func(context.Context) error
	AllowedOrigins []string
	Logger         logger.Logger
}

// NewRouter creates the API router with all endpoints.
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	h := newHandler(c)
	r.Use(metricsMiddleware(h.logger))

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/ready", h.Ready).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/assessment/catalog", h.Catalog).Methods(http.MethodGet)
	v1.HandleFunc("/assessment/score", h.Score).Methods(http.MethodPost)

	sessions := func(fn http.HandlerFunc) http.HandlerFunc {
		return requires(h.sessions != nil, errors.New(errors.ErrCodeSessionStoreFailed, "Session storage is not configured", ""), fn)
	}
	v1.HandleFunc("/assessment/sessions", sessions(h.CreateSession)).Methods(http.MethodPost)
	v1.HandleFunc("/assessment/sessions/{id}", sessions(h.GetSession)).Methods(http.MethodGet)
	v1.HandleFunc("/assessment/sessions/{id}", sessions(h.DeleteSession)).Methods(http.MethodDelete)
	v1.HandleFunc("/assessment/sessions/{id}/contact", sessions(h.SubmitContact)).Methods(http.MethodPost)
	v1.HandleFunc("/assessment/sessions/{id}/answers/{questionId}", sessions(h.RecordAnswer)).Methods(http.MethodPut)
	v1.HandleFunc("/assessment/sessions/{id}/next", sessions(h.Next)).Methods(http.MethodPost)
	v1.HandleFunc("/assessment/sessions/{id}/previous", sessions(h.Previous)).Methods(http.MethodPost)
	v1.HandleFunc("/assessment/sessions/{id}/complete", sessions(h.Complete)).Methods(http.MethodPost)
	v1.HandleFunc("/assessment/sessions/{id}/results", sessions(h.Results)).Methods(http.MethodGet)

	leadStore := func(fn http.HandlerFunc) http.HandlerFunc {
		return requires(h.leads != nil, errors.New(errors.ErrCodeDatabaseConnectionFailed, "Lead storage is not configured", ""), fn)
	}
	v1.HandleFunc("/contact", leadStore(h.Contact)).Methods(http.MethodPost)
	v1.HandleFunc("/admin/submissions", leadStore(h.Submissions)).Methods(http.MethodGet)

	v1.HandleFunc("/search", h.Search).Methods(http.MethodGet)
	v1.HandleFunc("/chat", h.Chat).Methods(http.MethodPost)

	return corsMiddleware(c.AllowedOrigins)(r)
}
