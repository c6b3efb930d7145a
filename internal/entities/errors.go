package entities

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by repositories and transports.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrStore      = errors.New("store error")

	// ErrNoStudySessions means the session table is empty. It is not a
	// missing-entity error and callers should not treat it as ErrNotFound.
	ErrNoStudySessions = errors.New("no study sessions found")
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ConflictError explains which standing invariant an operation would break.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) Unwrap() error { return ErrConflict }

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}
