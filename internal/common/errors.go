// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Artifact errors.
	ErrArtifactLoad  = errors.New("artifact load failed")
	ErrEncoding      = errors.New("feature encoding failed")
	ErrShapeMismatch = errors.New("feature shape mismatch")

	// Input errors.
	ErrInvalidInput = errors.New("invalid input")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsRequestError reports whether err aborts a single prediction request
// without invalidating the loaded artifacts.
func IsRequestError(err error) bool {
	return errors.Is(err, ErrEncoding) ||
		errors.Is(err, ErrShapeMismatch) ||
		errors.Is(err, ErrInvalidInput)
}
