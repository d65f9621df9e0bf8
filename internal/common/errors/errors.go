// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeMalformedPersistedData ErrorCode = "MALFORMED_PERSISTED_DATA"
	ErrCodeStorageReadFailed      ErrorCode = "STORAGE_READ_FAILED"
	ErrCodeStorageConnection      ErrorCode = "STORAGE_CONNECTION_FAILED"
	ErrCodePersistFailed          ErrorCode = "PERSIST_FAILED"

	ErrCodeApplicationNotFound         ErrorCode = "APPLICATION_NOT_FOUND"
	ErrCodeApplicationValidationFailed ErrorCode = "APPLICATION_VALIDATION_FAILED"
	ErrCodeApplicationIDImmutable      ErrorCode = "APPLICATION_ID_IMMUTABLE"
	ErrCodeDuplicateApplication        ErrorCode = "DUPLICATE_APPLICATION"
	ErrCodeConfirmationRequired        ErrorCode = "CONFIRMATION_REQUIRED"

	ErrCodeInvalidFilterFormat ErrorCode = "INVALID_FILTER_FORMAT"
	ErrCodeInvalidWindow       ErrorCode = "INVALID_WINDOW"

	ErrCodeParseError    ErrorCode = "PARSE_ERROR"
	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause, if any.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
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

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
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
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewMalformedPersistedDataError reports a stored blob that is not a valid record array.
func NewMalformedPersistedDataError(details string, cause error) *StandardError {
	return newError(ErrCodeMalformedPersistedData, "Persisted applications could not be decoded", details, false, cause)
}

// NewStorageReadFailedError creates a retryable backend read error.
func NewStorageReadFailedError(backend string, err error) *StandardError {
	return newError(ErrCodeStorageReadFailed, "Reading persisted applications failed",
		fmt.Sprintf("backend: %s, error: %v", backend, err), true, err)
}

// NewStorageConnectionError creates a retryable backend connection error.
func NewStorageConnectionError(backend string, err error) *StandardError {
	return newError(ErrCodeStorageConnection, "Storage backend unreachable",
		fmt.Sprintf("backend: %s, error: %v", backend, err), true, err)
}

// NewPersistFailedError creates a retryable persistence error.
func NewPersistFailedError(err error) *StandardError {
	return newError(ErrCodePersistFailed, "Persisting applications failed", err.Error(), true, err)
}

// NewApplicationNotFoundError reports an unknown application id.
func NewApplicationNotFoundError(id string) *StandardError {
	e := newError(ErrCodeApplicationNotFound, "Application not found", fmt.Sprintf("applicationId: %s", id), false, nil)
	e.Metadata = map[string]interface{}{"applicationId": id}
	return e
}

// NewApplicationValidationFailedError creates a non-retryable validation error.
func NewApplicationValidationFailedError(details string) *StandardError {
	return newError(ErrCodeApplicationValidationFailed, "Application data validation failed", details, false, nil)
}

// NewApplicationIDImmutableError reports an update that tried to change a record id.
func NewApplicationIDImmutableError(id, attempted string) *StandardError {
	return newError(ErrCodeApplicationIDImmutable, "Application id cannot be changed",
		fmt.Sprintf("applicationId: %s, submitted id: %s", id, attempted), false, nil)
}

// NewDuplicateApplicationError reports a create with an id already in the collection.
func NewDuplicateApplicationError(id string) *StandardError {
	return newError(ErrCodeDuplicateApplication, "Application already exists",
		fmt.Sprintf("applicationId: %s", id), false, nil)
}

// NewConfirmationRequiredError reports a destructive call without confirmation.
func NewConfirmationRequiredError(operation string) *StandardError {
	return newError(ErrCodeConfirmationRequired, "Operation requires confirmation",
		fmt.Sprintf("operation: %s", operation), false, nil)
}

// NewInvalidFilterFormatError creates a non-retryable filter error.
func NewInvalidFilterFormatError(details string) *StandardError {
	return newError(ErrCodeInvalidFilterFormat, "Invalid filter parameters", details, false, nil)
}

// NewInvalidWindowError reports an unsupported histogram window.
func NewInvalidWindowError(days int) *StandardError {
	return newError(ErrCodeInvalidWindow, "Unsupported activity window",
		fmt.Sprintf("days: %d", days), false, nil)
}

// NewParseError reports job variables that could not be decoded.
func NewParseError(err error) *StandardError {
	return newError(ErrCodeParseError, "Failed to parse job variables", err.Error(), false, err)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodePersistFailed,
		ErrCodeStorageReadFailed,
		ErrCodeStorageConnection:
		return 3
	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           string(stdErr.Code),
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// AsStandard extracts the first StandardError in err's chain.
func AsStandard(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// CodeOf returns the code of the first StandardError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	if stdErr, ok := AsStandard(err); ok {
		return stdErr.Code
	}
	return ""
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "MALFORMED") || strings.Contains(codeStr, "PARSE"):
		return "DATA"
	case strings.Contains(codeStr, "STORAGE") || strings.Contains(codeStr, "PERSIST"):
		return "STORAGE"
	case strings.Contains(codeStr, "NOT_FOUND") || strings.Contains(codeStr, "DUPLICATE") || strings.Contains(codeStr, "IMMUTABLE"):
		return "RECORD"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "CONFIRMATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
