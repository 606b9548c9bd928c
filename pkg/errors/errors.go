package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details"`
	RequestID *string     `json:"requestId"`
	Status    int         `json:"-"`
	Err       error       `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrInvalidInput       = New("INVALID_INPUT", http.StatusBadRequest, "invalid input")
	ErrInvalidJSON        = New("INVALID_JSON", http.StatusBadRequest, "malformed JSON payload")
	ErrInputTooLarge      = New("INPUT_TOO_LARGE", http.StatusRequestEntityTooLarge, "input exceeds maximum length")
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid password")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "password required or session expired")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "professor role required")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrRateLimited        = New("RATE_LIMITED", http.StatusTooManyRequests, "too many requests, retry later")
	ErrAuthNotConfigured  = New("AUTH_NOT_CONFIGURED", http.StatusInternalServerError, "authentication is not configured on the server")
	ErrMissingAPIKey      = New("MISSING_API_KEY", http.StatusInternalServerError, "missing OpenAI API key on server")
	ErrStorage            = New("STORAGE_ERROR", http.StatusBadGateway, "storage backend unavailable")
	ErrUpstream           = New("UPSTREAM_ERROR", http.StatusBadGateway, "upstream request failed")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "unexpected server error")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// WithDetails returns a copy of the error carrying structured details.
func WithDetails(err *Error, details interface{}) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	clone.Details = details
	return &clone
}
