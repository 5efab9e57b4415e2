/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when a lookup matches no stored row
	ErrNotFound = errors.New("row not found")

	// ErrUnsupported is returned when a backend declares a capability
	// but does not deliver it
	ErrUnsupported = errors.New("operation not supported")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// NotFoundError represents an error when a key matches no stored row
type NotFoundError struct {
	Storage string
	Key     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no row in %q for key %s", e.Storage, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// UnsupportedError represents an operation a backend declares but refuses
type UnsupportedError struct {
	Backend   string
	Operation string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s not supported by backend %q", e.Operation, e.Backend)
}

func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(storage, key string) error {
	return &NotFoundError{Storage: storage, Key: key}
}

// NewUnsupportedError creates a new UnsupportedError
func NewUnsupportedError(backend, operation string) error {
	return &UnsupportedError{Backend: backend, Operation: operation}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnsupported checks if an error is an unsupported-operation error
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupported)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
