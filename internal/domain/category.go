package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	categoryNameMinLength = 2
	categoryNameMaxLength = 100
)

var categoryNamePattern = regexp.MustCompile(`^[a-zA-Z0-9\s\-]+$`)

// Category groups recipes. RecipeCount is populated by listing queries.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	RecipeCount int       `json:"recipe_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NormalizeCategoryName trims surrounding whitespace.
func NormalizeCategoryName(name string) string {
	return strings.TrimSpace(name)
}

// ValidateCategoryName checks presence, length (2-100) and charset.
func ValidateCategoryName(name string) error {
	n := length(name)
	switch {
	case isBlank(name):
		return NewValidationError("name", "Category name is required")
	case n < categoryNameMinLength:
		return NewValidationError("name", "Category name must be at least 2 characters long")
	case n > categoryNameMaxLength:
		return NewValidationError("name", "Category name cannot exceed 100 characters")
	case !categoryNamePattern.MatchString(name):
		return NewValidationError("name", "Category name can only contain letters, numbers, spaces, and hyphens")
	}
	return nil
}

// CategoryInUseMessage is the refusal returned when deleting a category that
// still has recipes.
func CategoryInUseMessage(recipeCount int) string {
	return fmt.Sprintf("Cannot delete category. It is being used by %d recipe(s)", recipeCount)
}
