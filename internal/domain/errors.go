package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")

	// ErrDictionaryNotReady is returned while no dictionary has been loaded yet.
	ErrDictionaryNotReady = errors.New("dictionary not ready")
	// ErrDictionaryUnavailable is the cause matched by every LoadError.
	ErrDictionaryUnavailable = errors.New("dictionary unavailable")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// LoadError reports that the dictionary source could not be read.
// Source names the location (path or URL) that failed.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("load dictionary: %v", e.Err)
	}
	return fmt.Sprintf("load dictionary %s: %v", e.Source, e.Err)
}

// Unwrap exposes both the cause and ErrDictionaryUnavailable to errors.Is.
func (e *LoadError) Unwrap() []error {
	return []error{ErrDictionaryUnavailable, e.Err}
}

// NewLoadError wraps err as a LoadError for source.
func NewLoadError(source string, err error) *LoadError {
	return &LoadError{Source: source, Err: err}
}
