package services

import (
	"errors"
	"fmt"
)

// ValidationError means caller input broke a precondition. Always
// recoverable: nothing was persisted.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

func validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// DanglingReferenceError means a persisted plate component points at
// an ingredient that no longer exists. Surfaced on load, never
// silently dropped.
type DanglingReferenceError struct {
	PlateID      uint
	IngredientID uint
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("plate %d references deleted ingredient %d", e.PlateID, e.IngredientID)
}

// PersistenceFailure wraps a storage error unchanged. No retries
// happen below this point; the caller decides what to do.
type PersistenceFailure struct {
	Op  string
	Err error
}

func (e *PersistenceFailure) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *PersistenceFailure) Unwrap() error { return e.Err }

func persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceFailure{Op: op, Err: err}
}
