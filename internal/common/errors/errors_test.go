package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeValidationFailed, http.StatusBadRequest},
		{ErrCodeContactIncomplete, http.StatusBadRequest},
		{ErrCodeSessionNotFound, http.StatusNotFound},
		{ErrCodeUnknownQuestion, http.StatusNotFound},
		{ErrCodeStepIncomplete, http.StatusConflict},
		{ErrCodeInvalidTransition, http.StatusConflict},
		{ErrCodeAssessmentNotComplete, http.StatusConflict},
		{ErrCodeDuplicateSubmission, http.StatusConflict},
		{ErrCodeSessionStoreFailed, http.StatusServiceUnavailable},
		{ErrCodeDatabaseInsertFailed, http.StatusInternalServerError},
		{ErrorCode("SOMETHING_NEW"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.code), string(tt.code))
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := fmt.Errorf("saving: %w", NewSessionStoreError(cause))

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, &StandardError{Code: ErrCodeSessionStoreFailed})
	assert.NotErrorIs(t, err, &StandardError{Code: ErrCodeInternal})

	std := Normalize(err)
	assert.Equal(t, ErrCodeSessionStoreFailed, std.Code)
	assert.True(t, std.Retryable)
}

func TestNormalize_UnknownError(t *testing.T) {
	std := Normalize(stderrors.New("boom"))
	assert.Equal(t, ErrCodeInternal, std.Code)
	assert.Equal(t, "boom", std.Details)
	assert.False(t, std.Retryable)
}

func TestConvertToBPMNError(t *testing.T) {
	retryable := ConvertToBPMNError(NewDatabaseInsertFailedError(stderrors.New("timeout")))
	assert.Equal(t, "DATABASE_INSERT_FAILED", retryable.Code)
	assert.Equal(t, 3, retryable.Retries)

	business := ConvertToBPMNError(NewDuplicateSubmissionError("ada@example.com"))
	assert.Equal(t, "DUPLICATE_SUBMISSION", business.Code)
	assert.Equal(t, 0, business.Retries)
	assert.False(t, business.Retryable)

	vars := business.ToErrorVariables()
	assert.Equal(t, "DUPLICATE_SUBMISSION", vars["errorCode"])
	assert.Equal(t, "DUPLICATE_SUBMISSION", vars["originalErrorCode"])
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeDatabaseInsertFailed))
	assert.Equal(t, "INTEGRATION", GetErrorCategory(ErrCodeCRMSyncFailed))
	assert.Equal(t, "ASSESSMENT", GetErrorCategory(ErrCodeStepIncomplete))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeValidationFailed))
}
