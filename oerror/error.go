package oerror

import (
	"errors"
	"fmt"
)

// ControllerError is returned for configuration and level data that cannot be used.
type ControllerError struct {
	Err string
	// Cause is the underlying error, if any.
	Cause error
}

// New creates a ControllerError from a format string. An error argument matched by a single %w is kept as
// the cause.
func New(format string, args ...interface{}) *ControllerError {
	wrapped := fmt.Errorf(format, args...)
	return &ControllerError{Err: wrapped.Error(), Cause: errors.Unwrap(wrapped)}
}

func (e *ControllerError) Error() string {
	return e.Err
}

// Unwrap returns the cause of the error.
func (e *ControllerError) Unwrap() error {
	return e.Cause
}
