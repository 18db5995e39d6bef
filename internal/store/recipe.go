package store

import (
	"context"
	"database/sql"

	"github.com/AmarWhoo/cookboxd/internal/domain"
)

// RecipeStore defines the interface for recipe persistence. Listing methods
// return newest first and fill Username and CategoryName.
type RecipeStore interface {
	Create(ctx context.Context, recipe *domain.Recipe) error
	GetByID(ctx context.Context, id int64) (*domain.Recipe, error)
	List(ctx context.Context) ([]*domain.Recipe, error)
	ListPage(ctx context.Context, limit, offset int) ([]*domain.Recipe, error)
	Count(ctx context.Context) (int, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Recipe, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]*domain.Recipe, error)

	// SearchByTitle matches titles containing query, case-insensitively.
	SearchByTitle(ctx context.Context, query string) ([]*domain.Recipe, error)

	Update(ctx context.Context, recipe *domain.Recipe) error

	// Delete removes the recipe; its ingredients and comments go with it.
	Delete(ctx context.Context, id int64) error

	WithTx(tx *sql.Tx) RecipeStore
}
