package database

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no record has the requested id
	ErrNotFound = errors.New("record not found")

	// ErrUnknownCollection is returned for a collection with no mapping
	ErrUnknownCollection = errors.New("unknown collection")

	// ErrUnknownField is returned when a field has no column mapping
	ErrUnknownField = errors.New("unknown field")

	// ErrNoFields is returned for an update that carries nothing to write
	ErrNoFields = errors.New("no fields to write")

	// ErrConflict is returned when a write violates a unique constraint
	ErrConflict = errors.New("record already exists")
)

// ConflictError reports a unique constraint violation. Field is the
// canonical field name when the adapter could resolve it.
type ConflictError struct {
	Collection string
	Field      string
	Err        error
}

func (e *ConflictError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", e.Collection, ErrConflict)
	}
	return fmt.Sprintf("%s %s: %v", e.Collection, e.Field, ErrConflict)
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// BackendError wraps a failure of the underlying database. It is always
// distinct from ErrNotFound so an empty listing is never confused with an outage.
type BackendError struct {
	Op         string
	Collection string
	Err        error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("record store %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err means the record does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict reports whether err is a unique constraint violation
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsBackendFailure reports whether err came from the database itself
func IsBackendFailure(err error) bool {
	var be *BackendError
	return errors.As(err, &be)
}
