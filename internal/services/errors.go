package services

import (
	"errors"
	"fmt"

	"github.com/staydesk/backoffice-api/internal/database"
	"github.com/staydesk/backoffice-api/pkg/validator"
)

// ValidationError reports request fields that failed validation
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError creates a single-field validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	return "validation failed: " + validator.Summary(e.Fields)
}

// conflictAsValidation turns a unique constraint violation into a
// validation error on the offending field. Other errors pass through.
func conflictAsValidation(err error, field string) error {
	var conflict *database.ConflictError
	if !errors.As(err, &conflict) {
		return err
	}
	if conflict.Field != "" {
		field = conflict.Field
	}
	return NewValidationError(field, "already exists")
}

// RecordFailure describes why one record of a batch was not created
type RecordFailure struct {
	Index  int               `json:"index"`
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// PartialFailureError is returned by batch creates when at least one record
// failed. The records that were created are returned alongside it.
type PartialFailureError struct {
	Total    int
	Failures []RecordFailure
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%d of %d records failed", len(e.Failures), e.Total)
}
