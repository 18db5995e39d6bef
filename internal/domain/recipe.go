package domain

import (
	"strings"
	"time"
)

const (
	recipeTitleMinLength       = 3
	recipeTitleMaxLength       = 255
	recipeDescriptionMinLength = 10
	recipeImageURLMaxLength    = 500
)

// Recipe is a user-owned recipe. Username and CategoryName are read-model
// fields filled by joins.
type Recipe struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	CategoryID   *int64    `json:"category_id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description"`
	ImageURL     *string   `json:"image_url"`
	Username     string    `json:"username,omitempty"`
	CategoryName *string   `json:"category_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewRecipeInput carries the fields accepted when creating a recipe. UserID
// is always the acting user.
type NewRecipeInput struct {
	UserID      int64
	CategoryID  *int64
	Title       string
	Description string
	ImageURL    string
}

// Validate applies the create rules.
func (in NewRecipeInput) Validate() error {
	if in.UserID == 0 {
		return NewValidationError("user_id", "User ID is required")
	}
	if !IsValidID(in.UserID) {
		return NewValidationError("user_id", "Invalid user ID")
	}
	if isBlank(in.Title) {
		return NewValidationError("title", "Recipe title is required")
	}
	if err := ValidateRecipeTitle(in.Title); err != nil {
		return err
	}
	if err := ValidateRecipeDescription(in.Description); err != nil {
		return err
	}
	if err := ValidateImageURL(in.ImageURL); err != nil {
		return err
	}
	if in.CategoryID != nil && !IsValidID(*in.CategoryID) {
		return NewValidationError("category_id", "Invalid category ID")
	}
	return nil
}

// Recipe builds the entity to persist. Empty optional text becomes NULL.
func (in NewRecipeInput) Recipe() *Recipe {
	return &Recipe{
		UserID:      in.UserID,
		CategoryID:  in.CategoryID,
		Title:       strings.TrimSpace(in.Title),
		Description: nullableText(in.Description),
		ImageURL:    nullableText(in.ImageURL),
	}
}

// RecipeUpdate is a partial update; nil fields are left unchanged.
// ClearCategory detaches the recipe from its category.
type RecipeUpdate struct {
	Title         *string
	Description   *string
	ImageURL      *string
	CategoryID    *int64
	ClearCategory bool
}

// Empty reports whether the update changes nothing.
func (u RecipeUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.ImageURL == nil &&
		u.CategoryID == nil && !u.ClearCategory
}

// Validate format-checks every supplied field.
func (u RecipeUpdate) Validate() error {
	if u.Title != nil {
		if err := ValidateRecipeTitle(*u.Title); err != nil {
			return err
		}
	}
	if u.Description != nil {
		if err := ValidateRecipeDescription(*u.Description); err != nil {
			return err
		}
	}
	if u.ImageURL != nil {
		if err := ValidateImageURL(*u.ImageURL); err != nil {
			return err
		}
	}
	if u.CategoryID != nil && !IsValidID(*u.CategoryID) {
		return NewValidationError("category_id", "Invalid category ID")
	}
	return nil
}

// Apply copies supplied fields onto recipe.
func (u RecipeUpdate) Apply(recipe *Recipe) {
	if u.Title != nil {
		recipe.Title = strings.TrimSpace(*u.Title)
	}
	if u.Description != nil {
		recipe.Description = nullableText(*u.Description)
	}
	if u.ImageURL != nil {
		recipe.ImageURL = nullableText(*u.ImageURL)
	}
	switch {
	case u.ClearCategory:
		recipe.CategoryID = nil
	case u.CategoryID != nil:
		id := *u.CategoryID
		recipe.CategoryID = &id
	}
}

// ValidateRecipeTitle checks the title length (3-255).
func ValidateRecipeTitle(title string) error {
	n := length(strings.TrimSpace(title))
	if n < recipeTitleMinLength {
		return NewValidationError("title", "Recipe title must be at least 3 characters long")
	}
	if n > recipeTitleMaxLength {
		return NewValidationError("title", "Recipe title cannot exceed 255 characters")
	}
	return nil
}

// ValidateRecipeDescription requires at least 10 characters when non-empty.
func ValidateRecipeDescription(description string) error {
	d := strings.TrimSpace(description)
	if d != "" && length(d) < recipeDescriptionMinLength {
		return NewValidationError("description", "Recipe description must be at least 10 characters long")
	}
	return nil
}

// ValidateImageURL accepts an empty value or an absolute http(s) URL of at
// most 500 characters.
func ValidateImageURL(raw string) error {
	u := strings.TrimSpace(raw)
	if u == "" {
		return nil
	}
	if length(u) > recipeImageURLMaxLength {
		return NewValidationError("image_url", "Image URL is too long")
	}
	if err := fieldValidator.Var(u, "http_url"); err != nil {
		return NewValidationError("image_url", "Invalid image URL format")
	}
	return nil
}

func nullableText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
