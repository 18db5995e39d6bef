package store

import (
	"context"
	"database/sql"

	"github.com/AmarWhoo/cookboxd/internal/domain"
)

// CommentStore defines the interface for comment persistence. Listing
// methods fill Username and RecipeTitle.
type CommentStore interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)

	// List returns the newest comments first.
	List(ctx context.Context, limit, offset int) ([]*domain.Comment, error)

	// ListByRecipe returns a recipe's comments oldest first.
	ListByRecipe(ctx context.Context, recipeID int64) ([]*domain.Comment, error)

	// ListByUser returns a user's comments newest first.
	ListByUser(ctx context.Context, userID int64) ([]*domain.Comment, error)

	CountByRecipe(ctx context.Context, recipeID int64) (int, error)
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id int64) error
	DeleteByRecipe(ctx context.Context, recipeID int64) (int64, error)
	DeleteByUser(ctx context.Context, userID int64) (int64, error)

	WithTx(tx *sql.Tx) CommentStore
}
