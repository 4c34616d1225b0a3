package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRetryCount(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected int
	}{
		{ErrCodeApplicantValidationFailed, 0},
		{ErrCodeCategoryMappingFailed, 0},
		{ErrCodeFeatureSchemaMismatch, 0},
		{ErrCodeScalerDomainError, 0},
		{ErrCodePredictionFailed, 0},
		{ErrCodeArtifactLoadFailed, 0},
		{ErrCodeNotificationSendFailed, 3},
		{"UNKNOWN", 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, GetRetryCount(tt.code))
			assert.Equal(t, tt.expected > 0, IsRetryableErrorCode(tt.code))
		})
	}
}

func TestConvertToBPMNError(t *testing.T) {
	stdErr := NewCategoryMappingFailedError("person_home_ownership", "CASTLE", nil).
		WithMetadata("column", "person_home_ownership")

	bpmnErr := ConvertToBPMNError(stdErr)
	assert.Equal(t, "CATEGORY_MAPPING_FAILED", bpmnErr.Code)
	assert.False(t, bpmnErr.Retryable)
	assert.Equal(t, 0, bpmnErr.Retries)

	vars := bpmnErr.ToErrorVariables()
	assert.Equal(t, "CATEGORY_MAPPING_FAILED", vars["errorCode"])
	assert.Equal(t, "CATEGORY_MAPPING_FAILED", vars["originalErrorCode"])
	assert.Equal(t, "person_home_ownership", vars["column"])
	assert.Contains(t, vars, "timestamp")
}

func TestConvertToBPMNError_Retryable(t *testing.T) {
	bpmnErr := ConvertToBPMNError(NewNotificationSendFailedError("sns", fmt.Errorf("throttled")))
	assert.True(t, bpmnErr.Retryable)
	assert.Equal(t, 3, bpmnErr.Retries)
	assert.Contains(t, bpmnErr.Details, "sns")
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name       string
		err        *StandardError
		jobRetries int32
		expected   JobOutcome
	}{
		{"validation is thrown", NewApplicantValidationFailedError("age"), 3, OutcomeThrown},
		{"mapping is thrown", NewCategoryMappingFailedError("c", "v", nil), 3, OutcomeThrown},
		{"schema raises incident", NewFeatureSchemaMismatchError(fmt.Errorf("x")), 3, OutcomeIncident},
		{"prediction raises incident", NewPredictionFailedError(fmt.Errorf("x")), 3, OutcomeIncident},
		{"notification retried", NewNotificationSendFailedError("ses", fmt.Errorf("x")), 3, OutcomeRetried},
		{"notification out of retries", NewNotificationSendFailedError("ses", fmt.Errorf("x")), 0, OutcomeIncident},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Decide(tt.err, tt.jobRetries, 3))
		})
	}
}

func TestDecide_WorkerRetryCap(t *testing.T) {
	sendErr := NewNotificationSendFailedError("ses", fmt.Errorf("throttled"))

	assert.Equal(t, OutcomeIncident, Decide(sendErr, 3, 0))
	assert.Equal(t, OutcomeRetried, Decide(sendErr, 3, 1))

	assert.Equal(t, 0, RetryLimit(ErrCodeNotificationSendFailed, 0))
	assert.Equal(t, 1, RetryLimit(ErrCodeNotificationSendFailed, 1))
	assert.Equal(t, 3, RetryLimit(ErrCodeNotificationSendFailed, 10))
	assert.Equal(t, 0, RetryLimit(ErrCodePredictionFailed, 10))
}

func TestRetriesLeft(t *testing.T) {
	assert.Equal(t, int32(2), retriesLeft(5, 3))
	assert.Equal(t, int32(1), retriesLeft(2, 3))
	assert.Equal(t, int32(0), retriesLeft(1, 3))
}

func TestNormalize(t *testing.T) {
	cause := fmt.Errorf("model exploded")
	wrapped := fmt.Errorf("assess: %w", NewPredictionFailedError(cause))

	stdErr := Normalize(wrapped)
	require.NotNil(t, stdErr)
	assert.Equal(t, ErrCodePredictionFailed, stdErr.Code)
	assert.True(t, stderrors.Is(stdErr, cause))

	internal := Normalize(fmt.Errorf("plain"))
	assert.Equal(t, ErrCodeInternal, internal.Code)
	assert.Equal(t, "plain", internal.Details)
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeApplicantValidationFailed))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeCategoryMappingFailed))
	assert.Equal(t, "ARTIFACT", GetErrorCategory(ErrCodeFeatureSchemaMismatch))
	assert.Equal(t, "ARTIFACT", GetErrorCategory(ErrCodeArtifactLoadFailed))
	assert.Equal(t, "MODEL", GetErrorCategory(ErrCodePredictionFailed))
	assert.Equal(t, "NOTIFICATION", GetErrorCategory(ErrCodeNotificationSendFailed))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}
