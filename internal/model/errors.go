package model

import (
	"errors"
	"strings"
)

var (
	ErrConflict         = errors.New("already exists")
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("not the author")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError describes malformed or missing input
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(e.Details, "; ")
}

// NewValidationError returns a ValidationError with the given details
func NewValidationError(details ...string) *ValidationError {
	return &ValidationError{Details: details}
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
