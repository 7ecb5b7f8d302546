// Package apperror defines the error kinds surfaced by the task API and
// their mapping to HTTP status codes.
package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an error for translation into an HTTP response
type Kind int

const (
	Unknown Kind = iota
	NotFound
	ValidationFailed
	UploadFailed
	Unauthorized
	TooLarge
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case ValidationFailed:
		return "validation_failed"
	case UploadFailed:
		return "upload_failed"
	case Unauthorized:
		return "unauthorized"
	case TooLarge:
		return "too_large"
	default:
		return "unknown"
	}
}

// Status returns the HTTP status code for the kind
func (k Kind) Status() int {
	switch k {
	case NotFound:
		return http.StatusNotFound
	case ValidationFailed:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case TooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// Error is an error with a kind, a client-facing message and an optional cause
type Error struct {
	Kind    Kind
	Message string
	Details []string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an error of the given kind carrying err as its cause
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// NewNotFound creates a NotFound error
func NewNotFound(message string) *Error {
	return New(NotFound, message)
}

// NewValidation creates a ValidationFailed error with per-field details
func NewValidation(message string, details ...string) *Error {
	return &Error{Kind: ValidationFailed, Message: message, Details: details}
}

// KindOf returns the kind of the first *Error in err's chain, or Unknown
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Unknown
}

// IsNotFound reports whether err is a NotFound error
func IsNotFound(err error) bool {
	return KindOf(err) == NotFound
}
