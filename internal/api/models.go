package api

import (
	"bytes"
	"encoding/json"

	"github.com/AmarWhoo/cookboxd/internal/domain"
)

// Common request/response structures. Identity fields such as user_id are
// never read from bodies; the acting user comes from the token.

// RegisterRequest defines the payload for the user registration endpoints.
// A supplied role is ignored; new accounts always get role "user".
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req RegisterRequest) input() domain.NewUserInput {
	return domain.NewUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}
}

// LoginRequest defines the payload for the login endpoints. The identifier is
// read from login, falling back to email and then username.
type LoginRequest struct {
	Login    string `json:"login"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Identifier returns the first non-empty of login, email and username.
func (req LoginRequest) Identifier() string {
	switch {
	case req.Login != "":
		return req.Login
	case req.Email != "":
		return req.Email
	default:
		return req.Username
	}
}

// UpdateUserRequest is a partial user update.
type UpdateUserRequest struct {
	Username *string      `json:"username"`
	Email    *string      `json:"email"`
	Role     *domain.Role `json:"role"`
}

func (req UpdateUserRequest) update() domain.UserUpdate {
	return domain.UserUpdate{Username: req.Username, Email: req.Email, Role: req.Role}
}

// ChangePasswordRequest defines the payload for POST /api/users/{id}/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// CategoryRequest is used for both category create and update.
type CategoryRequest struct {
	Name string `json:"name"`
}

// CreateRecipeRequest defines the payload for POST /api/recipes.
type CreateRecipeRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	CategoryID  *int64 `json:"category_id"`
}

func (req CreateRecipeRequest) input(actor domain.Actor) domain.NewRecipeInput {
	return domain.NewRecipeInput{
		UserID:      actor.UserID,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
}

// UpdateRecipeRequest is a partial recipe update. An explicit
// "category_id": null detaches the recipe from its category.
type UpdateRecipeRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	ImageURL    *string    `json:"image_url"`
	CategoryID  OptionalID `json:"category_id"`
}

func (req UpdateRecipeRequest) update() domain.RecipeUpdate {
	upd := domain.RecipeUpdate{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if req.CategoryID.Set {
		if req.CategoryID.Value == nil {
			upd.ClearCategory = true
		} else {
			upd.CategoryID = req.CategoryID.Value
		}
	}
	return upd
}

// OptionalID distinguishes an absent JSON field from an explicit null.
type OptionalID struct {
	Set   bool
	Value *int64
}

// UnmarshalJSON implements json.Unmarshaler. It is only called when the field
// is present.
func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}

// IngredientRequest is a single ingredient, standalone or inside a batch.
type IngredientRequest struct {
	RecipeID int64  `json:"recipe_id"`
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

func (req IngredientRequest) input() domain.IngredientInput {
	return domain.IngredientInput{RecipeID: req.RecipeID, Name: req.Name, Quantity: req.Quantity}
}

// BatchIngredientsRequest defines the payload for POST /api/ingredients/batch.
// Replace uses the same shape with the recipe taken from the path.
type BatchIngredientsRequest struct {
	RecipeID    int64               `json:"recipe_id"`
	Ingredients []IngredientRequest `json:"ingredients"`
}

func (req BatchIngredientsRequest) inputs() []domain.IngredientInput {
	items := make([]domain.IngredientInput, len(req.Ingredients))
	for i, ing := range req.Ingredients {
		items[i] = ing.input()
	}
	return items
}

// UpdateIngredientRequest is a partial ingredient update.
type UpdateIngredientRequest struct {
	Name     *string `json:"name"`
	Quantity *string `json:"quantity"`
}

// CommentRequest defines the payload for POST /api/comments.
type CommentRequest struct {
	RecipeID int64  `json:"recipe_id"`
	Content  string `json:"content"`
}

// UpdateCommentRequest defines the payload for PUT /api/comments/{id}.
type UpdateCommentRequest struct {
	Content string `json:"content"`
}

// SearchRequest carries the recipe search query string.
type SearchRequest struct {
	Query string `validate:"max=255"`
}

// CountResponse wraps count endpoints' data.
type CountResponse struct {
	Count int `json:"count"`
}

// APIInfo is returned by GET /.
type APIInfo struct {
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}
