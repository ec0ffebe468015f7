package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a referenced id or code does not resolve
	// to an existing, non-soft-deleted entity.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned on uniqueness or exclusivity violations
	// (duplicate centre name/address, duplicate location code, asset
	// already allocated).
	ErrConflict = errors.New("conflict")
	// ErrPreconditionFailed is returned when an operation is valid in
	// isolation but the target state disallows it (inactive centre,
	// location occupied by an active asset).
	ErrPreconditionFailed = errors.New("precondition failed")
	// ErrIdentifierCollision is returned when identifier generation
	// collided; the whole operation may be retried.
	ErrIdentifierCollision = errors.New("identifier collision")
	// ErrTransactionFailure is returned when the store could not commit.
	// No partial effect is ever observable; the caller may retry.
	ErrTransactionFailure = errors.New("transaction failure")
)

// Validation carries every violated rule from a factory or patch
// re-validation, not just the first one.
type Validation struct {
	Violations []string
}

func (e *Validation) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// NewValidation returns nil when no rules were violated.
func NewValidation(violations []string) error {
	if len(violations) == 0 {
		return nil
	}
	return &Validation{Violations: violations}
}

// AsValidation unwraps a *Validation from err, or nil.
func AsValidation(err error) *Validation {
	var v *Validation
	if errors.As(err, &v) {
		return v
	}
	return nil
}

func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrNotFound}, args...)...)
}

func Conflictf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrConflict}, args...)...)
}

func PreconditionFailedf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrPreconditionFailed}, args...)...)
}
