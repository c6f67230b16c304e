// Package apperr classifies failures so the HTTP layer can map them to status codes.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated covers missing, expired or malformed credentials.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden covers valid callers lacking the role or cooperative ownership.
	ErrForbidden = errors.New("forbidden")
	// ErrValidation covers requests that cannot be applied as sent.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound covers identifiers with no matching record.
	ErrNotFound = errors.New("not found")
)

// Error carries a caller-facing message alongside its kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Unauthenticated builds an ErrUnauthenticated error.
func Unauthenticated(format string, args ...any) error {
	return newError(ErrUnauthenticated, format, args...)
}

// Forbidden builds an ErrForbidden error.
func Forbidden(format string, args ...any) error {
	return newError(ErrForbidden, format, args...)
}

// Validation builds an ErrValidation error.
func Validation(format string, args ...any) error {
	return newError(ErrValidation, format, args...)
}

// NotFound builds an ErrNotFound error.
func NotFound(format string, args ...any) error {
	return newError(ErrNotFound, format, args...)
}

// Message returns the caller-facing message of err, or fallback when err is not classified.
func Message(err error, fallback string) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return fallback
}
