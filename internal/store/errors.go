package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a uniqueness rule.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when the database rejects a row, for
	// example because a referenced row is missing.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrInUse is returned when a row cannot be deleted because other rows
	// still reference it.
	ErrInUse = errors.New("entity is still referenced")

	ErrUserNotFound       = fmt.Errorf("%w: user", ErrNotFound)
	ErrCategoryNotFound   = fmt.Errorf("%w: category", ErrNotFound)
	ErrRecipeNotFound     = fmt.Errorf("%w: recipe", ErrNotFound)
	ErrIngredientNotFound = fmt.Errorf("%w: ingredient", ErrNotFound)
	ErrCommentNotFound    = fmt.Errorf("%w: comment", ErrNotFound)

	ErrEmailExists        = fmt.Errorf("%w: email", ErrDuplicate)
	ErrUsernameExists     = fmt.Errorf("%w: username", ErrDuplicate)
	ErrCategoryNameExists = fmt.Errorf("%w: category name", ErrDuplicate)
)

// IsNotFoundError reports whether err is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError is a store failure annotated with the entity and operation.
type StoreError struct {
	Entity    string // e.g. "recipe"
	Operation string // e.g. "create"
	Message   string
	Err       error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation on %s failed: %s: %v", e.Operation, e.Entity, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
