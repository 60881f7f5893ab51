package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"ai-readiness-funnel/internal/assessment"
	"ai-readiness-funnel/internal/common/errors"
	"ai-readiness-funnel/internal/common/metrics"
	"ai-readiness-funnel/internal/leads"

	"github.com/gorilla/mux"
)

type catalogResponse struct {
	Categories     []assessment.Category      `json:"categories"`
	Questions      []assessment.Question      `json:"questions"`
	MaturityLevels []assessment.MaturityLevel `json:"maturityLevels"`
}

type scoreRequest struct {
	Answers map[string]assessment.AnswerValue `json:"answers"`
}

type scoreResponse struct {
	Score           assessment.AssessmentScore `json:"score"`
	Recommendations []string                   `json:"recommendations"`
}

// sessionView is the wizard state plus what the current step needs to render.
type sessionView struct {
	*assessment.AssessmentState
	CurrentCategory *assessment.Category  `json:"currentCategory,omitempty"`
	Questions       []assessment.Question `json:"questions,omitempty"`
	StepComplete    bool                  `json:"stepComplete"`
}

type answerRequest struct {
	Value assessment.AnswerValue `json:"value"`
}

type resultsResponse struct {
	Score           assessment.AssessmentScore `json:"score"`
	Recommendations []string                   `json:"recommendations"`
	UserInfo        assessment.UserInfo        `json:"userInfo"`
}

func (h *handler) Catalog(w http.ResponseWriter, r *http.Request) {
	c := h.wizard.Catalog()
	writeJSON(w, http.StatusOK, catalogResponse{
		Categories:     c.Categories(),
		Questions:      c.Questions(),
		MaturityLevels: c.MaturityLevels(),
	})
}

// Score handles POST /v1/assessment/score without a session.
func (h *handler) Score(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewInvalidRequestError(err.Error()))
		return
	}

	answers := make(map[string]assessment.Answer, len(req.Answers))
	for id, v := range req.Answers {
		answers[id] = assessment.Answer{QuestionID: id, Value: v}
	}

	c := h.wizard.Catalog()
	score := c.CalculateScore(answers)
	writeJSON(w, http.StatusOK, scoreResponse{
		Score:           score,
		Recommendations: nonNil(c.GetRecommendationsForScore(score)),
	})
}

func (h *handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	state, err := h.sessions.Create(r.Context())
	if err != nil {
		writeError(w, errors.NewSessionStoreError(err))
		return
	}
	metrics.AssessmentsStarted.Inc()
	writeJSON(w, http.StatusCreated, h.view(state))
}

func (h *handler) GetSession(w http.ResponseWriter, r *http.Request) {
	state, err := h.loadSession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(state))
}

func (h *handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	err := h.sessions.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, storeError(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var info assessment.UserInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		writeError(w, errors.NewInvalidRequestError(err.Error()))
		return
	}
	h.transition(w, r, func(s *assessment.AssessmentState) error {
		return h.wizard.SubmitContact(s, info)
	})
}

func (h *handler) RecordAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewInvalidRequestError(err.Error()))
		return
	}
	questionID := mux.Vars(r)["questionId"]
	h.transition(w, r, func(s *assessment.AssessmentState) error {
		return h.wizard.RecordAnswer(s, questionID, req.Value)
	})
}

func (h *handler) Next(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.wizard.Next)
}

func (h *handler) Previous(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.wizard.Previous)
}

// Complete finishes the wizard, then hands the lead to the
// assessment-completed process. Without a running process the lead is
// stored here instead. A repeated or racing Complete gets
// ASSESSMENT_COMPLETE, so the process starts once per session.
func (h *handler) Complete(w http.ResponseWriter, r *http.Request) {
	state, ok := h.update(w, r, h.wizard.Complete)
	if !ok {
		return
	}

	score, recs, err := h.wizard.Results(state)
	if err != nil {
		writeError(w, err)
		return
	}
	metrics.AssessmentsCompleted.WithLabelValues(score.MaturityLevel.Level).Inc()
	metrics.AssessmentPercentage.Observe(score.Percentage)

	started := h.startProcess(r.Context(), h.processes.AssessmentCompleted, map[string]interface{}{
		"assessmentId": state.ID,
		"answers":      state.Answers,
		"userInfo":     state.UserInfo,
		"name":         state.UserInfo.Name,
		"email":        normalizeEmail(state.UserInfo.Email),
		"company":      state.UserInfo.Company,
		"role":         state.UserInfo.Role,
	})
	if !started {
		h.storeAssessmentLead(r.Context(), state, score)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session":         h.view(state),
		"score":           score,
		"recommendations": nonNil(recs),
	})
}

func (h *handler) Results(w http.ResponseWriter, r *http.Request) {
	state, err := h.loadSession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	score, recs, err := h.wizard.Results(state)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resultsResponse{
		Score:           score,
		Recommendations: nonNil(recs),
		UserInfo:        state.UserInfo,
	})
}

// transition applies fn to the stored session and writes the new view.
func (h *handler) transition(w http.ResponseWriter, r *http.Request, fn func(*assessment.AssessmentState) error) {
	if state, ok := h.update(w, r, fn); ok {
		writeJSON(w, http.StatusOK, h.view(state))
	}
}

// update applies fn through the store's optimistic update and writes the
// error response when it fails.
func (h *handler) update(w http.ResponseWriter, r *http.Request, fn func(*assessment.AssessmentState) error) (*assessment.AssessmentState, bool) {
	var stepErr error
	state, err := h.sessions.Update(r.Context(), mux.Vars(r)["id"], func(s *assessment.AssessmentState) error {
		stepErr = fn(s)
		return stepErr
	})
	if err != nil {
		if stepErr != nil {
			writeError(w, stepErr)
		} else {
			writeError(w, storeError(err))
		}
		return nil, false
	}
	return state, true
}

func (h *handler) loadSession(ctx context.Context, id string) (*assessment.AssessmentState, error) {
	state, err := h.sessions.Get(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	return state, nil
}

func storeError(err error) error {
	if stderrors.Is(err, assessment.ErrSessionNotFound) || stderrors.Is(err, assessment.ErrSessionConflict) {
		return err
	}
	return errors.NewSessionStoreError(err)
}

func (h *handler) storeAssessmentLead(ctx context.Context, state *assessment.AssessmentState, score assessment.AssessmentScore) {
	if h.leads == nil {
		return
	}
	sub := leads.FromAssessment(state.UserInfo, score)
	sub.ID = leads.SubmissionID(state.ID)
	sub.Email = normalizeEmail(sub.Email)
	if err := h.leads.Create(ctx, sub); err != nil {
		h.logger.Warn("assessment lead not stored", map[string]interface{}{
			"assessmentId": state.ID,
			"error":        err,
		})
		return
	}
	metrics.ContactSubmissions.WithLabelValues(sub.Source, sub.Priority).Inc()
}

func (h *handler) view(s *assessment.AssessmentState) sessionView {
	v := sessionView{AssessmentState: s, StepComplete: h.wizard.StepComplete(s)}
	if cat, ok := h.wizard.CurrentCategory(s); ok {
		v.CurrentCategory = &cat
		v.Questions = h.wizard.Catalog().QuestionsFor(cat.ID)
	}
	return v
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
