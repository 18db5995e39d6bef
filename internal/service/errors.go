package service

import (
	"errors"
	"fmt"

	"github.com/AmarWhoo/cookboxd/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is; the API layer maps each to an HTTP
// status code.
var (
	// ErrNotFound indicates the requested resource does not exist (404).
	ErrNotFound = errors.New("resource not found")

	// ErrDuplicate indicates a uniqueness rule would be violated (400).
	ErrDuplicate = errors.New("resource already exists")

	// ErrBusinessRule indicates a rule beyond field validation refused the
	// operation, such as deleting a category that still has recipes (400).
	ErrBusinessRule = errors.New("business rule violated")

	// ErrUnauthenticated indicates the operation needs an authenticated actor (401).
	ErrUnauthenticated = errors.New("authentication required")

	// ErrInvalidCredentials is returned for every failed login (401).
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden indicates the actor may not perform the operation (403).
	ErrForbidden = errors.New("permission denied")
)

// Error is a service failure carrying a client-safe Message. Err holds the
// cause, normally one of the sentinels above.
type Error struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for Error.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new Error.
func NewError(operation, message string, err error) *Error {
	return &Error{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

func notFound(op, message string, cause error) error {
	if cause == nil {
		return NewError(op, message, ErrNotFound)
	}
	return NewError(op, message, fmt.Errorf("%w: %w", ErrNotFound, cause))
}

func duplicate(op, message string) error {
	return NewError(op, message, ErrDuplicate)
}

func forbidden(op, message string) error {
	return NewError(op, message, ErrForbidden)
}

func businessRule(op, message string) error {
	return NewError(op, message, ErrBusinessRule)
}

func unauthenticated(op string) error {
	return NewError(op, "Authentication required", ErrUnauthenticated)
}

// storeFailure wraps an unexpected store error. Not-found and duplicate store
// errors keep their meaning so a racing insert or delete still maps to the
// right status.
func storeFailure(op, message string, err error) error {
	switch {
	case store.IsNotFoundError(err):
		return NewError(op, message, fmt.Errorf("%w: %w", ErrNotFound, err))
	case store.IsDuplicateError(err):
		return NewError(op, message, fmt.Errorf("%w: %w", ErrDuplicate, err))
	}
	return NewError(op, message, err)
}
