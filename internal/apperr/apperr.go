// Package apperr defines the closed error taxonomy the panel reports to
// users: validation, not-found, conflict and transport failures. Callers
// classify with errors.Is against the kind sentinels and display the
// flattened message.
package apperr

import (
	"errors"
)

// Kind sentinels. Every error produced by the panel unwraps to exactly one
// of these.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrTransport  = errors.New("transport error")
)

// Well-known domain errors. Messages are user-facing banner text.
var (
	ErrInvalidCredentials = New(ErrNotFound, "Invalid email or password")
	ErrEmailTaken         = New(ErrConflict, "User with this email already exists")
	ErrAlreadyEnrolled    = New(ErrConflict, "Already enrolled in this course")
)

// Error pairs a kind sentinel with a human-readable message.
type Error struct {
	kind error
	msg  string
}

// New builds an Error of the given kind.
func New(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string { return e.msg }

// Unwrap exposes the kind for errors.Is.
func (e *Error) Unwrap() error { return e.kind }

// Message flattens any error into banner text. Unknown errors get a
// generic message so internals never leak to the page.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.msg
	}
	if err != nil {
		return "Something went wrong. Please try again."
	}
	return ""
}
