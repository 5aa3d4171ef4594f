package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError represents a local validation failure. These block the
// action before any network call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for a specific field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// RemoteError represents a failure reported by the booking backend. It is
// surfaced to the user as-is and never retried automatically.
type RemoteError struct {
	Service    string
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s (status %d)", e.Service, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s returned status %d", e.Service, e.StatusCode)
}

// NewRemoteError creates an error for an upstream service response.
func NewRemoteError(service string, statusCode int, message string) *RemoteError {
	return &RemoteError{Service: service, StatusCode: statusCode, Message: message}
}
