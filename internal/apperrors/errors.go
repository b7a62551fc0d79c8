// Package apperrors defines the error taxonomy shared by the store and the
// service layer. Handlers translate these into HTTP status codes; nothing in
// here knows about HTTP.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks lookups of ids that do not resolve.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateApplication marks a second application for the same
	// (job, developer) pair while the first one is still pending or accepted.
	ErrDuplicateApplication = errors.New("an active application for this job already exists")

	// ErrJobNotOpen marks apply/accept attempts against a job that already
	// left the open state.
	ErrJobNotOpen = errors.New("job is not open")

	// ErrNoAcceptedApplication marks a completion attempt on a job without
	// an accepted application.
	ErrNoAcceptedApplication = errors.New("job has no accepted application")

	// ErrInvalidTransition marks a status change the state machine forbids.
	ErrInvalidTransition = errors.New("illegal status transition")

	// ErrForbidden marks an operation the acting user's role or ownership
	// does not allow.
	ErrForbidden = errors.New("operation not permitted for this user")

	// ErrUnauthenticated marks requests without a usable identity.
	ErrUnauthenticated = errors.New("authentication required")
)

// ValidationError reports a malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validation builds a *ValidationError.
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
