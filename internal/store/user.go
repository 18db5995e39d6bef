package store

import (
	"context"
	"database/sql"

	"github.com/AmarWhoo/cookboxd/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create inserts user and fills its ID and timestamps.
	// Returns ErrEmailExists or ErrUsernameExists on a unique violation.
	Create(ctx context.Context, user *domain.User) error

	// GetByID returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// List returns all users ordered by id.
	List(ctx context.Context) ([]*domain.User, error)

	// Update writes username, email and role.
	Update(ctx context.Context, user *domain.User) error

	UpdatePassword(ctx context.Context, id int64, passwordHash string) error

	// Delete removes the user; recipes and comments go with it.
	Delete(ctx context.Context, id int64) error

	// EmailExists reports whether another user (id != excludeID) has email.
	// Pass 0 as excludeID when creating.
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)

	// UsernameExists reports whether another user (id != excludeID) has username.
	UsernameExists(ctx context.Context, username string, excludeID int64) (bool, error)

	// WithTx returns a UserStore bound to tx.
	WithTx(tx *sql.Tx) UserStore
}
