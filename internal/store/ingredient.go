package store

import (
	"context"
	"database/sql"

	"github.com/AmarWhoo/cookboxd/internal/domain"
)

// IngredientStore defines the interface for ingredient persistence.
type IngredientStore interface {
	Create(ctx context.Context, ingredient *domain.Ingredient) error

	// CreateMany inserts every ingredient. Callers wanting all-or-nothing
	// semantics run it on a store bound to a transaction.
	CreateMany(ctx context.Context, ingredients []*domain.Ingredient) error

	GetByID(ctx context.Context, id int64) (*domain.Ingredient, error)

	// List returns all ingredients ordered by recipe then id, with RecipeTitle.
	List(ctx context.Context) ([]*domain.Ingredient, error)

	ListByRecipe(ctx context.Context, recipeID int64) ([]*domain.Ingredient, error)
	CountByRecipe(ctx context.Context, recipeID int64) (int, error)
	Update(ctx context.Context, ingredient *domain.Ingredient) error
	Delete(ctx context.Context, id int64) error

	// DeleteByRecipe removes every ingredient of the recipe and reports how many.
	DeleteByRecipe(ctx context.Context, recipeID int64) (int64, error)

	WithTx(tx *sql.Tx) IngredientStore
}
