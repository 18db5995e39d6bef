package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/AmarWhoo/cookboxd/internal/api/shared"
	"github.com/AmarWhoo/cookboxd/internal/domain"
	"github.com/AmarWhoo/cookboxd/internal/service"
	"github.com/AmarWhoo/cookboxd/internal/service/auth"
	"github.com/AmarWhoo/cookboxd/internal/store"
	"github.com/go-playground/validator/v10"
)

const unexpectedErrorMessage = "An unexpected error occurred"

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	case err == nil:
		return http.StatusInternalServerError

	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrRevokedToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Bad request errors, duplicates included
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, service.ErrBusinessRule),
		errors.Is(err, service.ErrDuplicate),
		errors.Is(err, store.ErrDuplicate),
		errors.Is(err, shared.ErrEmptyBody),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the message that may be shown to clients for
// err. Only messages written for clients pass through; anything else gets a
// generic message.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return unexpectedErrorMessage
	}

	var (
		validationErr  *domain.ValidationError
		invalidIDErr   *domain.InvalidIDError
		serviceErr     *service.Error
		validationErrs validator.ValidationErrors
	)

	switch {
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.As(err, &invalidIDErr):
		return invalidIDErr.Error()
	case errors.As(err, &validationErrs):
		return SanitizeValidationError(validationErrs)
	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"
	}

	status := MapErrorToStatusCode(err)
	if errors.As(err, &serviceErr) && serviceErr.Message != "" && status != http.StatusInternalServerError {
		return serviceErr.Message
	}

	switch status {
	case http.StatusUnauthorized:
		if errors.Is(err, auth.ErrExpiredToken) {
			return "Token expired"
		}
		return "Authentication required"
	case http.StatusForbidden:
		return "Permission denied"
	case http.StatusNotFound:
		return "Resource not found"
	case http.StatusBadRequest:
		return "Invalid request"
	}
	return unexpectedErrorMessage
}

// HandleAPIError maps err to a status and client-safe message and writes the
// error response. Server errors are logged with the redacted detail.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)

	var opts []shared.ResponseOption
	if status == http.StatusForbidden {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

// SanitizeValidationError removes sensitive details from validator errors
// and returns a user-friendly message for the first failing field.
func SanitizeValidationError(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "Validation error"
	}
	fe := errs[0]
	field := strings.ToLower(fe.Field())
	if tag := getValidationTagMessage(fe.Tag()); tag != "" {
		return fmt.Sprintf("Invalid %s: %s", field, tag)
	}
	return fmt.Sprintf("Invalid %s", field)
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
