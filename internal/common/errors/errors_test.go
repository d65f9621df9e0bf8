package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeOf_WrappedStandardError(t *testing.T) {
	base := NewApplicationNotFoundError("app-1")
	wrapped := fmt.Errorf("update: %w", base)

	assert.Equal(t, ErrCodeApplicationNotFound, CodeOf(wrapped))
	assert.True(t, HasCode(wrapped, ErrCodeApplicationNotFound))
	assert.False(t, HasCode(wrapped, ErrCodePersistFailed))
	assert.False(t, HasCode(nil, ErrCodeApplicationNotFound))
	assert.Equal(t, ErrorCode(""), CodeOf(stderrors.New("plain")))
}

func TestStandardError_UnwrapsCause(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := NewPersistFailedError(cause)

	assert.True(t, stderrors.Is(err, cause))
	assert.True(t, err.Retryable)
	assert.Contains(t, err.Error(), "PERSIST_FAILED")
}

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name            string
		err             *StandardError
		expectedRetries int
	}{
		{"retryable persist failure", NewPersistFailedError(stderrors.New("boom")), 3},
		{"retryable read failure", NewStorageReadFailedError("redis", stderrors.New("boom")), 3},
		{"business error", NewApplicationNotFoundError("x"), 0},
		{"validation error", NewApplicationValidationFailedError("jobTitle: required"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmnErr := ConvertToBPMNError(tt.err)
			assert.Equal(t, string(tt.err.Code), bpmnErr.Code)
			assert.Equal(t, tt.expectedRetries, bpmnErr.Retries)

			vars := bpmnErr.ToErrorVariables()
			assert.Equal(t, string(tt.err.Code), vars["originalErrorCode"])
			assert.Equal(t, tt.err.Retryable, vars["retryable"])
		})
	}
}

func TestConvertToBPMNError_CarriesMetadata(t *testing.T) {
	bpmnErr := ConvertToBPMNError(NewApplicationNotFoundError("app-9"))
	assert.Equal(t, "app-9", bpmnErr.ToErrorVariables()["applicationId"])
}

func TestNormalize(t *testing.T) {
	stdErr := NewInvalidWindowError(14)
	assert.Same(t, stdErr, Normalize(fmt.Errorf("wrap: %w", stdErr)))

	plain := Normalize(stderrors.New("kaboom"))
	require.NotNil(t, plain)
	assert.Equal(t, ErrCodeInternalError, plain.Code)
	assert.Equal(t, "kaboom", plain.Details)
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "STORAGE", GetErrorCategory(ErrCodePersistFailed))
	assert.Equal(t, "STORAGE", GetErrorCategory(ErrCodeStorageReadFailed))
	assert.Equal(t, "STORAGE", GetErrorCategory(ErrCodeStorageConnection))
	assert.Equal(t, "DATA", GetErrorCategory(ErrCodeMalformedPersistedData))
	assert.Equal(t, "DATA", GetErrorCategory(ErrCodeParseError))
	assert.Equal(t, "RECORD", GetErrorCategory(ErrCodeApplicationNotFound))
	assert.Equal(t, "RECORD", GetErrorCategory(ErrCodeDuplicateApplication))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidFilterFormat))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeConfirmationRequired))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternalError))
}
