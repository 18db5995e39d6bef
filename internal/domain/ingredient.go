package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	ingredientNameMaxLength     = 255
	ingredientQuantityMaxLength = 100
)

// Ingredient belongs to exactly one recipe.
type Ingredient struct {
	ID          int64     `json:"id"`
	RecipeID    int64     `json:"recipe_id"`
	Name        string    `json:"name"`
	Quantity    string    `json:"quantity"`
	RecipeTitle string    `json:"recipe_title,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// IngredientInput carries the fields of a new ingredient.
type IngredientInput struct {
	RecipeID int64
	Name     string
	Quantity string
}

// Validate applies the create rules.
func (in IngredientInput) Validate() error {
	if in.RecipeID == 0 {
		return NewValidationError("recipe_id", "Recipe ID is required")
	}
	if !IsValidID(in.RecipeID) {
		return NewValidationError("recipe_id", "Invalid recipe ID")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return NewValidationError("name", "Ingredient name is required")
	}
	if length(name) > ingredientNameMaxLength {
		return NewValidationError("name", "Ingredient name cannot exceed 255 characters")
	}
	quantity := strings.TrimSpace(in.Quantity)
	if quantity == "" {
		return NewValidationError("quantity", "Ingredient quantity is required")
	}
	if length(quantity) > ingredientQuantityMaxLength {
		return NewValidationError("quantity", "Ingredient quantity cannot exceed 100 characters")
	}
	return nil
}

// Ingredient builds the entity to persist.
func (in IngredientInput) Ingredient() *Ingredient {
	return &Ingredient{
		RecipeID: in.RecipeID,
		Name:     strings.TrimSpace(in.Name),
		Quantity: strings.TrimSpace(in.Quantity),
	}
}

// ValidateIngredientBatch validates every item of a batch for recipeID.
// Each item's RecipeID is overwritten with recipeID. The first failure is
// reported with its 1-based position.
func ValidateIngredientBatch(recipeID int64, items []IngredientInput) error {
	if len(items) == 0 {
		return NewValidationError("ingredients", "Ingredients array is required and cannot be empty")
	}
	for i := range items {
		items[i].RecipeID = recipeID
		if err := items[i].Validate(); err != nil {
			if ve, ok := err.(*ValidationError); ok {
				return ve.WithPrefix(fmt.Sprintf("Ingredient #%d: ", i+1))
			}
			return err
		}
	}
	return nil
}

// IngredientUpdate is a partial update; nil fields are left unchanged.
type IngredientUpdate struct {
	Name     *string
	Quantity *string
}

// Empty reports whether the update changes nothing.
func (u IngredientUpdate) Empty() bool {
	return u.Name == nil && u.Quantity == nil
}

// Validate checks supplied fields are non-empty and within length limits.
func (u IngredientUpdate) Validate() error {
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" {
			return NewValidationError("name", "Ingredient name cannot be empty")
		}
		if length(name) > ingredientNameMaxLength {
			return NewValidationError("name", "Ingredient name cannot exceed 255 characters")
		}
	}
	if u.Quantity != nil {
		quantity := strings.TrimSpace(*u.Quantity)
		if quantity == "" {
			return NewValidationError("quantity", "Ingredient quantity cannot be empty")
		}
		if length(quantity) > ingredientQuantityMaxLength {
			return NewValidationError("quantity", "Ingredient quantity cannot exceed 100 characters")
		}
	}
	return nil
}

// Apply copies supplied fields onto ingredient.
func (u IngredientUpdate) Apply(ingredient *Ingredient) {
	if u.Name != nil {
		ingredient.Name = strings.TrimSpace(*u.Name)
	}
	if u.Quantity != nil {
		ingredient.Quantity = strings.TrimSpace(*u.Quantity)
	}
}
