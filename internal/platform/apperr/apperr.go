// Package apperr defines the error taxonomy shared by all modules. Handlers
// map an error's Kind to an HTTP status at the boundary; services return
// apperr values (or wrap storage errors into Internal) and never touch HTTP.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for boundary translation.
type Kind int

const (
	// Internal is an unexpected storage or infrastructure failure.
	Internal Kind = iota
	// Validation is missing or malformed input.
	Validation
	// BusinessRule is a violated domain rule (empty cart, insufficient stock,
	// duplicate email).
	BusinessRule
	// AuthFailure is bad credentials, a missing/invalid token, or an
	// insufficient role.
	AuthFailure
	// NotFound is a missing entity by id.
	NotFound
)

// Error carries a Kind alongside a user-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error // wrapped cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an error of the given kind with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying cause.
func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the Kind from err, defaulting to Internal for errors that
// did not originate in this taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// MessageOf returns the user-facing message for err. Non-taxonomy errors get a
// generic message so storage details never leak to clients.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
