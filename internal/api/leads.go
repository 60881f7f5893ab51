package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"ai-readiness-funnel/internal/common/errors"
	"ai-readiness-funnel/internal/common/metrics"
	"ai-readiness-funnel/internal/content"
	"ai-readiness-funnel/internal/leads"
)

const maxContactBody = 64 << 10

type chatRequest struct {
	Message string `json:"message"`
}

// Contact stores a contact form submission and starts lead intake.
func (h *handler) Contact(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxContactBody))
	if err != nil {
		writeError(w, errors.NewInvalidRequestError(err.Error()))
		return
	}

	form, err := leads.ValidateContact(raw)
	if err != nil {
		writeError(w, err)
		return
	}

	sub := leads.FromContactForm(form)
	if err := h.leads.Create(r.Context(), sub); err != nil {
		h.logger.Warn("contact submission rejected", map[string]interface{}{
			"source": sub.Source,
			"error":  err,
		})
		writeError(w, err)
		return
	}
	metrics.ContactSubmissions.WithLabelValues(sub.Source, sub.Priority).Inc()

	h.startProcess(r.Context(), h.processes.LeadIntake, map[string]interface{}{
		"submissionId": sub.ID,
		"name":         sub.Name,
		"email":        sub.Email,
		"company":      sub.Company,
		"role":         sub.Role,
		"phone":        sub.Phone,
		"message":      sub.Message,
		"source":       sub.Source,
		"priority":     sub.Priority,
	})

	writeJSON(w, http.StatusCreated, map[string]interface{}{"submission": sub})
}

// Submissions lists stored submissions, newest first.
func (h *handler) Submissions(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", leads.DefaultListLimit, leads.MaxListLimit)
	subs, err := h.leads.List(r.Context(), limit)
	if err != nil {
		h.logger.Error("list submissions failed", map[string]interface{}{"error": err})
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load submissions"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"submissions": subs})
}

func (h *handler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	limit := queryInt(r, "limit", content.DefaultLimit, content.MaxLimit)

	results, err := h.searcher.Search(r.Context(), query, limit)
	if err != nil {
		writeError(w, errors.New(errors.ErrCodeSearchQueryFailed, "Search failed", err.Error()))
		return
	}
	if results == nil {
		results = []content.Result{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"query":   query,
		"results": results,
	})
}

func (h *handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewInvalidRequestError(err.Error()))
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, errors.NewInvalidRequestError("message is required"))
		return
	}
	writeJSON(w, http.StatusOK, h.chat.Reply(req.Message))
}

// queryInt reads a positive integer parameter, falling back to def and
// capping at upper.
func queryInt(r *http.Request, key string, def, upper int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || v <= 0 {
		return def
	}
	return min(v, upper)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
