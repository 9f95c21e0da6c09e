// Package errors carries the application error type shared by services and handlers.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies an AppError
type ErrorCode string

const (
	ErrCodeInvalidInput    ErrorCode = "INVALID_INPUT"
	ErrCodeMissingField    ErrorCode = "MISSING_FIELD"
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrCodeAPIRateLimit    ErrorCode = "API_RATE_LIMIT"
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE"
	ErrCodeAPITimeout      ErrorCode = "API_TIMEOUT"
	ErrCodeServiceDown     ErrorCode = "SERVICE_DOWN"
	ErrCodeInternal        ErrorCode = "INTERNAL"
)

var statusByCode = map[ErrorCode]int{
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeMissingField:    http.StatusBadRequest,
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeAPIRateLimit:    http.StatusTooManyRequests,
	ErrCodeExternalService: http.StatusBadGateway,
	ErrCodeAPITimeout:      http.StatusGatewayTimeout,
	ErrCodeServiceDown:     http.StatusServiceUnavailable,
}

// AppError is an error with a user-facing Message and a mapped HTTP status.
// Message is what clients see; Cause stays in logs.
type AppError struct {
	Code    ErrorCode         `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
	Cause   error             `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil && e.Cause.Error() != e.Message {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetail attaches a key/value for logging
func (e *AppError) WithDetail(key, value string) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying cause
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// GetHTTPCode returns the status mapped to the error code
func (e *AppError) GetHTTPCode() int {
	if status, ok := statusByCode[e.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// New creates an AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap creates an AppError around cause
func Wrap(cause error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause}
}

// MissingFieldError reports an absent or blank required input
func MissingFieldError(field string) *AppError {
	return New(ErrCodeMissingField, fmt.Sprintf("required field '%s' is missing", field)).
		WithDetail("field", field)
}

// ExternalServiceError surfaces a failing dependency. The cause text becomes the
// message so callers see what the service said.
func ExternalServiceError(service string, cause error) *AppError {
	message := service + " failed"
	if cause != nil {
		message = cause.Error()
	}
	return Wrap(cause, ErrCodeExternalService, message).WithDetail("service", service)
}

// TimeoutError reports an operation that ran past its budget
func TimeoutError(operation, timeout string) *AppError {
	return New(ErrCodeAPITimeout, fmt.Sprintf("operation '%s' timed out after %s", operation, timeout)).
		WithDetail("operation", operation)
}

// RateLimitError reports a rejected request
func RateLimitError(resource, limit string) *AppError {
	return New(ErrCodeAPIRateLimit, fmt.Sprintf("rate limit exceeded for '%s': %s", resource, limit)).
		WithDetail("resource", resource)
}

// Internal hides cause behind message
func Internal(message string, cause error) *AppError {
	return Wrap(cause, ErrCodeInternal, message)
}

// As returns the first AppError in err's chain
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is reports whether err carries code
func Is(err error, code ErrorCode) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

// GetCode returns err's code, INTERNAL for foreign errors
func GetCode(err error) ErrorCode {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return ErrCodeInternal
}

// GetHTTPCode returns err's mapped status, 500 for foreign errors
func GetHTTPCode(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.GetHTTPCode()
	}
	return http.StatusInternalServerError
}

// Message returns what a client should be shown for err
func Message(err error) string {
	if err == nil {
		return ""
	}
	if appErr, ok := As(err); ok {
		return appErr.Message
	}
	return err.Error()
}
