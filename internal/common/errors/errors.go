// internal/common/errors/errors.go
// Package errors provides standardized error handling for the enhancement pipeline.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeFrameworkNotFound         ErrorCode = "FRAMEWORK_NOT_FOUND"
	ErrCodeFrameworkValidationFailed ErrorCode = "FRAMEWORK_VALIDATION_FAILED"
	ErrCodeFrameworkStoreFailed      ErrorCode = "FRAMEWORK_STORE_FAILED"

	ErrCodeModelUnavailable     ErrorCode = "MODEL_UNAVAILABLE"
	ErrCodeModelTimeout         ErrorCode = "MODEL_TIMEOUT"
	ErrCodeModelUnauthenticated ErrorCode = "MODEL_UNAUTHENTICATED"
	ErrCodeModelQualityRejected ErrorCode = "MODEL_QUALITY_REJECTED"

	ErrCodeTemplateFillFailed ErrorCode = "TEMPLATE_FILL_FAILED"
	ErrCodeInvalidRequest     ErrorCode = "INVALID_REQUEST"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// HTTPStatus maps an error code to the status returned by the transport.
// Only framework lookup and request validation failures surface to callers;
// every model-side code degrades inside the pipeline and never reaches here
// under normal operation.
func (e *StandardError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeFrameworkNotFound:
		return http.StatusNotFound
	case ErrCodeFrameworkValidationFailed, ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case ErrCodeModelTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// ==========================
// Constructors
// ==========================

func NewFrameworkNotFoundError(id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeFrameworkNotFound,
		Message:   fmt.Sprintf("framework %q not found", id),
		Retryable: false,
		Metadata:  map[string]interface{}{"frameworkId": id},
		Timestamp: time.Now(),
	}
}

func NewFrameworkValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeFrameworkValidationFailed,
		Message:   "framework definition failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now(),
	}
}

func NewFrameworkStoreError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeFrameworkStoreFailed,
		Message:   "framework store operation failed",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now(),
	}
}

func NewTemplateFillError(placeholder string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTemplateFillFailed,
		Message:   fmt.Sprintf("no field for placeholder {%s}", placeholder),
		Retryable: false,
		Timestamp: time.Now(),
	}
}

func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "invalid request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now(),
	}
}

// AsStandardError unwraps err into a *StandardError if it carries one.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}
