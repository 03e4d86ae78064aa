package domain

import (
	"errors"
	"strings"
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrSessionNotFound    = errors.New("session not found")
)

// Task errors
var (
	ErrTaskNotFound = errors.New("task not found")
)

// ValidationError aggregates every violated rule for a request, not just
// the first one.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "validation error: " + strings.Join(e.Details, "; ")
}

// NewValidationError returns nil when no rules were violated.
func NewValidationError(details []string) error {
	if len(details) == 0 {
		return nil
	}
	return &ValidationError{Details: details}
}
