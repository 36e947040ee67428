package service

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned when a required external capability is
	// unavailable or misconfigured (e.g., missing API credentials).
	// Configuration errors are never retried and must surface distinctly
	// so callers can render a remediation message.
	ErrConfiguration = errors.New("configuration error")
	// ErrNotFound is returned when an expected input resource is absent.
	ErrNotFound = errors.New("not found")
	// ErrExternalService is returned when an external service call fails.
	ErrExternalService = errors.New("external service error")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// RowError represents malformed input data at a specific row of a file.
// It always carries file and row context for diagnosability.
type RowError struct {
	File string
	Row  int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d in %s: %v", e.Row, e.File, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
