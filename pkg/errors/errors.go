package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	CodeAPIError   = "API_ERROR"
	CodeValidation = "VALIDATION_ERROR"
	CodeService    = "SERVICE_ERROR"
	CodeRejected   = "REQUEST_REJECTED"
)

// ErrRequestRejected is returned when the request service refuses to create a
// movie request. It is distinct from transport and decode failures.
var ErrRequestRejected = stderrors.New("movie request rejected")

// ErrCircuitOpen is returned while an upstream is considered unavailable.
var ErrCircuitOpen = stderrors.New("circuit breaker open")

type BotError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *BotError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *BotError) Unwrap() error {
	return e.Cause
}

// APIError describes a failed call against an external HTTP API.
type APIError struct {
	*BotError
}

func NewAPIError(message string, statusCode int, context map[string]any) *APIError {
	return &APIError{
		BotError: &BotError{
			Message:    message,
			Code:       CodeAPIError,
			StatusCode: statusCode,
			Context:    context,
		},
	}
}

// WithCause keeps the *APIError type when chaining.
func (e *APIError) WithCause(cause error) *APIError {
	e.Cause = cause
	return e
}

// NewRejectedError wraps ErrRequestRejected with the upstream status and reason.
func NewRejectedError(reason string, statusCode int) *APIError {
	return &APIError{
		BotError: &BotError{
			Message:    reason,
			Code:       CodeRejected,
			StatusCode: statusCode,
			Cause:      ErrRequestRejected,
		},
	}
}

type ValidationError struct {
	*BotError
	Field string
	Value interface{}
}

func NewValidationError(message, field string, value interface{}) *ValidationError {
	return &ValidationError{
		BotError: &BotError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: 400,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

type ServiceError struct {
	*BotError
	Service   string
	Operation string
}

func NewServiceError(message, service, operation string, cause error) *ServiceError {
	return &ServiceError{
		BotError: &BotError{
			Message:    message,
			Code:       CodeService,
			StatusCode: 500,
			Context: map[string]any{
				"service":   service,
				"operation": operation,
			},
			Cause: cause,
		},
		Service:   service,
		Operation: operation,
	}
}

// IsRejected reports whether err carries ErrRequestRejected.
func IsRejected(err error) bool {
	return stderrors.Is(err, ErrRequestRejected)
}

// Is and As re-export the standard helpers so callers need a single import.
func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target any) bool { return stderrors.As(err, target) }
