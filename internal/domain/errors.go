package domain

import (
	"errors"
	"strconv"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when input fails field-level validation.
	// It is always wrapped by a *ValidationError carrying the user-facing message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an identifier is not a positive integer.
	ErrInvalidID = errors.New("invalid ID")
)

// ValidationError describes a single failed field rule. Message is safe to
// show to API clients.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for field with message.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// WithPrefix returns a copy whose message is prefixed, used to point at an
// element of a batch ("Ingredient #2: ...").
func (e *ValidationError) WithPrefix(prefix string) *ValidationError {
	return &ValidationError{Field: e.Field, Message: prefix + e.Message}
}

// InvalidIDError reports a malformed identifier for the named entity, e.g.
// "Invalid recipe ID". It matches both ErrValidation and ErrInvalidID.
type InvalidIDError struct {
	Entity string
}

func (e *InvalidIDError) Error() string {
	return "Invalid " + e.Entity + " ID"
}

// Is reports whether target is ErrInvalidID or ErrValidation.
func (e *InvalidIDError) Is(target error) bool {
	return target == ErrInvalidID || target == ErrValidation
}

// IsValidID reports whether id can identify a stored row.
func IsValidID(id int64) bool {
	return id > 0
}

// ParseID parses a path or query value as an entity id. Non-numeric input
// and values <= 0 are rejected with an InvalidIDError for entity.
func ParseID(raw, entity string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || !IsValidID(id) {
		return 0, &InvalidIDError{Entity: entity}
	}
	return id, nil
}

// RequireID returns an InvalidIDError for entity when id is not valid.
func RequireID(id int64, entity string) error {
	if !IsValidID(id) {
		return &InvalidIDError{Entity: entity}
	}
	return nil
}
