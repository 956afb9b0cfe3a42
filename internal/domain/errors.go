package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation signals a client input error.
	ErrValidation = errors.New("validation failed")
	// ErrEmptyText signals an empty review text at the inference boundary.
	// It is a validation error.
	ErrEmptyText error = &ValidationError{Message: "no review text provided"}
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrProductNotFound signals a missing product. It is an ErrNotFound.
	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)
	// ErrInternal signals a server-side failure that is not the caller's fault.
	ErrInternal = errors.New("internal error")
)

// ValidationError wraps a field-level message so that errors.Is(err, ErrValidation) holds.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a validation error for a single field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a client input error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
