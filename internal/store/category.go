package store

import (
	"context"
	"database/sql"

	"github.com/AmarWhoo/cookboxd/internal/domain"
)

// CategoryStore defines the interface for category persistence.
type CategoryStore interface {
	// Create returns ErrCategoryNameExists on a unique violation.
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)

	// List returns all categories ordered by name with their recipe counts.
	List(ctx context.Context) ([]*domain.Category, error)

	Update(ctx context.Context, category *domain.Category) error

	// Delete returns ErrInUse if recipes still reference the category.
	Delete(ctx context.Context, id int64) error

	NameExists(ctx context.Context, name string, excludeID int64) (bool, error)
	RecipeCount(ctx context.Context, id int64) (int, error)

	WithTx(tx *sql.Tx) CategoryStore
}
