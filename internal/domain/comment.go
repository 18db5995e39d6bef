package domain

import (
	"strings"
	"time"
)

const (
	commentMinLength = 3
	commentMaxLength = 2000
)

// Comment is a user's remark on a recipe. Content is stored trimmed.
type Comment struct {
	ID          int64     `json:"id"`
	RecipeID    int64     `json:"recipe_id"`
	UserID      int64     `json:"user_id"`
	Content     string    `json:"content"`
	Username    string    `json:"username,omitempty"`
	RecipeTitle string    `json:"recipe_title,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewCommentInput carries the fields of a new comment. UserID is always the
// acting user.
type NewCommentInput struct {
	RecipeID int64
	UserID   int64
	Content  string
}

// Validate applies the create rules.
func (in NewCommentInput) Validate() error {
	if in.RecipeID == 0 {
		return NewValidationError("recipe_id", "Recipe ID is required")
	}
	if !IsValidID(in.RecipeID) {
		return NewValidationError("recipe_id", "Invalid recipe ID")
	}
	if in.UserID == 0 {
		return NewValidationError("user_id", "User ID is required")
	}
	if !IsValidID(in.UserID) {
		return NewValidationError("user_id", "Invalid user ID")
	}
	return ValidateCommentContent(in.Content)
}

// Comment builds the entity to persist.
func (in NewCommentInput) Comment() *Comment {
	return &Comment{
		RecipeID: in.RecipeID,
		UserID:   in.UserID,
		Content:  strings.TrimSpace(in.Content),
	}
}

// ValidateCommentContent checks the trimmed content is 3-2000 characters.
func ValidateCommentContent(content string) error {
	c := strings.TrimSpace(content)
	n := length(c)
	switch {
	case n == 0:
		return NewValidationError("content", "Comment content is required")
	case n < commentMinLength:
		return NewValidationError("content", "Comment must be at least 3 characters long")
	case n > commentMaxLength:
		return NewValidationError("content", "Comment cannot exceed 2000 characters")
	}
	return nil
}
