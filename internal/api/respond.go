package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"ai-readiness-funnel/internal/assessment"
	"ai-readiness-funnel/internal/common/errors"
	"ai-readiness-funnel/internal/leads"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string             `json:"code"`
	Message string             `json:"message"`
	Fields  []leads.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	std := toStandardError(err)
	body := errorBody{Error: errorDetail{Code: string(std.Code), Message: std.Message}}

	var verr *leads.ValidationError
	if stderrors.As(err, &verr) {
		body.Error.Fields = verr.Fields
	}
	writeJSON(w, std.HTTPStatus(), body)
}

// requires answers 503 from routes whose backing store is not configured.
func requires(configured bool, err *errors.StandardError, next http.HandlerFunc) http.HandlerFunc {
	if configured {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeError(w, err)
	}
}

// toStandardError maps domain sentinels onto API error codes. Anything
// unrecognised is an internal error.
func toStandardError(err error) *errors.StandardError {
	var std *errors.StandardError
	if stderrors.As(err, &std) {
		return std
	}

	switch {
	case stderrors.Is(err, assessment.ErrSessionNotFound):
		return errors.New(errors.ErrCodeSessionNotFound, "Assessment session not found", "")
	case stderrors.Is(err, assessment.ErrSessionConflict):
		return errors.New(errors.ErrCodeSessionConflict, "Assessment session was changed by another request, retry", "")
	case stderrors.Is(err, assessment.ErrContactIncomplete):
		return errors.New(errors.ErrCodeContactIncomplete, assessment.ErrContactIncomplete.Error(), "")
	case stderrors.Is(err, assessment.ErrUnknownQuestion):
		return errors.New(errors.ErrCodeUnknownQuestion, err.Error(), "")
	case stderrors.Is(err, assessment.ErrStepIncomplete):
		return errors.New(errors.ErrCodeStepIncomplete, assessment.ErrStepIncomplete.Error(), "")
	case stderrors.Is(err, assessment.ErrAssessmentComplete):
		return errors.New(errors.ErrCodeAssessmentComplete, assessment.ErrAssessmentComplete.Error(), "")
	case stderrors.Is(err, assessment.ErrNotComplete):
		return errors.New(errors.ErrCodeAssessmentNotComplete, assessment.ErrNotComplete.Error(), "")
	case stderrors.Is(err, assessment.ErrInvalidTransition):
		return errors.New(errors.ErrCodeInvalidTransition, err.Error(), "")
	case stderrors.Is(err, leads.ErrInvalidContact):
		return errors.NewValidationError(err.Error())
	case stderrors.Is(err, leads.ErrDuplicateSubmission):
		return errors.NewDuplicateSubmissionError(err.Error())
	case stderrors.Is(err, leads.ErrDatabaseInsert):
		return errors.NewDatabaseInsertFailedError(err)
	default:
		return errors.NewInternalError(err)
	}
}
