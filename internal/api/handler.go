package api

import (
	"context"
	"net/http"
	"time"

	"ai-readiness-funnel/internal/assessment"
	"ai-readiness-funnel/internal/chatbot"
	"ai-readiness-funnel/internal/common/camunda"
	"ai-readiness-funnel/internal/common/logger"
	"ai-readiness-funnel/internal/common/metrics"
	"ai-readiness-funnel/internal/content"
)

const processStartTimeout = 5 * time.Second

type handler struct {
	wizard    *assessment.Wizard
	sessions  assessment.SessionStore
	leads     LeadStore
	searcher  content.Searcher
	chat      *chatbot.Responder
	starter   camunda.ProcessStarter
	processes Processes
	checks    map[string]func(context.Context) error
	logger    logger.Logger
}

func newHandler(c *Container) *handler {
	log := c.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	wizard := c.Wizard
	if wizard == nil {
		wizard = assessment.NewWizard(nil)
	}
	chat := c.Chat
	if chat == nil {
		chat = chatbot.NewResponder()
	}
	searcher := c.Searcher
	if searcher == nil {
		searcher = content.NewMemorySearcher(nil)
	}
	return &handler{
		wizard:    wizard,
		sessions:  c.Sessions,
		leads:     c.Leads,
		searcher:  searcher,
		chat:      chat,
		starter:   c.Starter,
		processes: c.Processes,
		checks:    c.Checks,
		logger:    log.WithFields(map[string]interface{}{"component": "api"}),
	}
}

// startProcess starts processID without failing the caller. It reports
// whether an instance was created.
func (h *handler) startProcess(ctx context.Context, processID string, variables interface{}) bool {
	if h.starter == nil || processID == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), processStartTimeout)
	defer cancel()

	key, err := h.starter.StartProcess(ctx, processID, variables)
	if err != nil {
		metrics.ProcessStartFailures.WithLabelValues(processID).Inc()
		h.logger.Warn("process start failed", map[string]interface{}{
			"processId": processID,
			"error":     err,
		})
		return false
	}
	h.logger.Info("process started", map[string]interface{}{
		"processId":          processID,
		"processInstanceKey": key,
	})
	return true
}

func (h *handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready runs every dependency check and answers 503 if any fails.
func (h *handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			status = http.StatusServiceUnavailable
			checks[name] = err.Error()
			continue
		}
		checks[name] = "ok"
	}

	state := "ready"
	if status != http.StatusOK {
		state = "not ready"
	}
	writeJSON(w, status, map[string]interface{}{
		"status": state,
		"checks": checks,
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
