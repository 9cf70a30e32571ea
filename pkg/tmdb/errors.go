package tmdb

import (
	"errors"
	"fmt"
)

// Error is returned for every failure the client itself detects.
// Transport failures (network errors, context cancellation) are never
// wrapped in an Error; they reach the caller unchanged.
type Error struct {
	Type       string
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	msg := e.Type
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (caused by: %v)", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches on Type so the package sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Type == e.Type
}

// Error type constants
const (
	ErrorTypeMalformedResponse = "MALFORMED_RESPONSE"
	ErrorTypeNotFound          = "NOT_FOUND"
	ErrorTypeRequestFailed     = "REQUEST_FAILED"
	ErrorTypeInvalidSizeToken  = "INVALID_SIZE_TOKEN"
	ErrorTypeInvalidArgument   = "INVALID_ARGUMENT"
)

// Sentinels for errors.Is.
var (
	ErrMalformedResponse = &Error{Type: ErrorTypeMalformedResponse}
	ErrNotFound          = &Error{Type: ErrorTypeNotFound}
	ErrRequestFailed     = &Error{Type: ErrorTypeRequestFailed}
	ErrInvalidSizeToken  = &Error{Type: ErrorTypeInvalidSizeToken}
	ErrInvalidArgument   = &Error{Type: ErrorTypeInvalidArgument}
)

// NewMalformedResponseError reports decoded data that breaks the field contract.
func NewMalformedResponseError(message string, cause error) *Error {
	return &Error{Type: ErrorTypeMalformedResponse, Message: message, Cause: cause}
}

// NewNotFoundError reports a 404 from the service.
func NewNotFoundError(path, statusMessage string) *Error {
	msg := path
	if statusMessage != "" {
		msg = fmt.Sprintf("%s: %s", path, statusMessage)
	}
	return &Error{Type: ErrorTypeNotFound, Message: msg, StatusCode: 404}
}

// NewRequestFailedError reports any other non-success status.
func NewRequestFailedError(path string, statusCode int, statusMessage string) *Error {
	msg := path
	if statusMessage != "" {
		msg = fmt.Sprintf("%s: %s", path, statusMessage)
	}
	return &Error{Type: ErrorTypeRequestFailed, Message: msg, StatusCode: statusCode}
}

// NewInvalidSizeTokenError reports an image size missing from the configuration.
func NewInvalidSizeTokenError(size string) *Error {
	return &Error{Type: ErrorTypeInvalidSizeToken, Message: fmt.Sprintf("size %q is not configured", size)}
}

// NewInvalidArgumentError reports a caller-side precondition violation.
func NewInvalidArgumentError(message string) *Error {
	return &Error{Type: ErrorTypeInvalidArgument, Message: message}
}

// StatusCode returns the HTTP status carried by err, if any.
func StatusCode(err error) (int, bool) {
	var e *Error
	if errors.As(err, &e) && e.StatusCode != 0 {
		return e.StatusCode, true
	}
	return 0, false
}
