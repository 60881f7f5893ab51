// Package errors provides the standard error type shared by the HTTP API and
// the workflow job workers.
package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Request / business errors
const (
	ErrCodeInvalidRequest        ErrorCode = "INVALID_REQUEST"
	ErrCodeValidationFailed      ErrorCode = "VALIDATION_FAILED"
	ErrCodeContactIncomplete     ErrorCode = "CONTACT_INCOMPLETE"
	ErrCodeSessionNotFound       ErrorCode = "SESSION_NOT_FOUND"
	ErrCodeSubmissionNotFound    ErrorCode = "SUBMISSION_NOT_FOUND"
	ErrCodeUnknownQuestion       ErrorCode = "UNKNOWN_QUESTION"
	ErrCodeStepIncomplete        ErrorCode = "STEP_INCOMPLETE"
	ErrCodeInvalidTransition     ErrorCode = "INVALID_TRANSITION"
	ErrCodeAssessmentComplete    ErrorCode = "ASSESSMENT_COMPLETE"
	ErrCodeAssessmentNotComplete ErrorCode = "ASSESSMENT_NOT_COMPLETE"
	ErrCodeDuplicateSubmission   ErrorCode = "DUPLICATE_SUBMISSION"
	ErrCodeSessionConflict       ErrorCode = "SESSION_CONFLICT"
)

// Technical errors
const (
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeSessionStoreFailed       ErrorCode = "SESSION_STORE_FAILED"
	ErrCodeSearchQueryFailed        ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeNotificationSendFailed   ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeCRMSyncFailed            ErrorCode = "CRM_SYNC_FAILED"
	ErrCodeWorkflowUnavailable      ErrorCode = "WORKFLOW_UNAVAILABLE"
	ErrCodeWorkflowStartFailed      ErrorCode = "WORKFLOW_START_FAILED"
	ErrCodeProcessNotFound          ErrorCode = "PROCESS_NOT_FOUND"
	ErrCodeInternal                 ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error { return e.cause }

// Is matches another StandardError by code.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	return ok && t.Code == e.Code
}

// HTTPStatus is the response status for this error.
func (e *StandardError) HTTPStatus() int { return HTTPStatus(e.Code) }

// New creates an error whose retryability follows its code.
func New(code ErrorCode, message, details string) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: IsRetryableErrorCode(code),
		Timestamp: time.Now().UTC(),
	}
}

// Wrap is New with an underlying cause that stays reachable via errors.Is.
func Wrap(code ErrorCode, message string, cause error) *StandardError {
	e := New(code, message, "")
	if cause != nil {
		e.Details = cause.Error()
		e.cause = cause
	}
	return e
}

// ==========================
// BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// Constructors
// ==========================

func NewValidationError(details string) *StandardError {
	return New(ErrCodeValidationFailed, "Input validation failed", details)
}

func NewInvalidRequestError(details string) *StandardError {
	return New(ErrCodeInvalidRequest, "Malformed request", details)
}

func NewNotFoundError(code ErrorCode, resource, id string) *StandardError {
	return New(code, fmt.Sprintf("%s not found", resource), fmt.Sprintf("id: %s", id))
}

func NewDuplicateSubmissionError(details string) *StandardError {
	return New(ErrCodeDuplicateSubmission, "Submission already received today", details)
}

func NewDatabaseInsertFailedError(err error) *StandardError {
	return Wrap(ErrCodeDatabaseInsertFailed, "Database insert operation failed", err)
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return Wrap(ErrCodeDatabaseConnectionFailed, "Database connection error", err)
}

func NewSessionStoreError(err error) *StandardError {
	return Wrap(ErrCodeSessionStoreFailed, "Session storage unavailable", err)
}

func NewNotificationSendFailedError(channel string, err error) *StandardError {
	e := Wrap(ErrCodeNotificationSendFailed, "Notification delivery failed", err)
	e.Metadata = map[string]interface{}{"channel": channel}
	return e
}

func NewCRMSyncFailedError(err error) *StandardError {
	return Wrap(ErrCodeCRMSyncFailed, "CRM lead sync failed", err)
}

func NewInternalError(err error) *StandardError {
	return Wrap(ErrCodeInternal, "Unexpected error", err)
}

// ==========================
// Mapping tables
// ==========================

var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeValidationFailed:         "VALIDATION_FAILED",
	ErrCodeDuplicateSubmission:      "DUPLICATE_SUBMISSION",
	ErrCodeDatabaseInsertFailed:     "DATABASE_INSERT_FAILED",
	ErrCodeDatabaseConnectionFailed: "DATABASE_CONNECTION_FAILED",
	ErrCodeNotificationSendFailed:   "NOTIFICATION_SEND_FAILED",
	ErrCodeCRMSyncFailed:            "CRM_SYNC_FAILED",
}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeDatabaseInsertFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeCRMSyncFailed:
		return 3
	case ErrCodeSessionStoreFailed,
		ErrCodeSearchQueryFailed,
		ErrCodeWorkflowUnavailable:
		return 2
	default:
		return 0 // business errors are not retried
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// HTTPStatus maps an error code to the API response status.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidRequest, ErrCodeValidationFailed, ErrCodeContactIncomplete:
		return http.StatusBadRequest
	case ErrCodeSessionNotFound, ErrCodeSubmissionNotFound, ErrCodeUnknownQuestion:
		return http.StatusNotFound
	case ErrCodeStepIncomplete, ErrCodeInvalidTransition, ErrCodeAssessmentComplete,
		ErrCodeAssessmentNotComplete, ErrCodeDuplicateSubmission, ErrCodeSessionConflict:
		return http.StatusConflict
	case ErrCodeDatabaseConnectionFailed, ErrCodeSessionStoreFailed, ErrCodeWorkflowUnavailable:
		return http.StatusServiceUnavailable
	case ErrCodeSearchQueryFailed, ErrCodeCRMSyncFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "WORKFLOW") || strings.Contains(codeStr, "PROCESS"):
		return "WORKFLOW"
	case strings.Contains(codeStr, "CRM"):
		return "INTEGRATION"
	case strings.Contains(codeStr, "SESSION"), strings.Contains(codeStr, "ASSESSMENT"),
		strings.Contains(codeStr, "STEP"), strings.Contains(codeStr, "TRANSITION"):
		return "ASSESSMENT"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
