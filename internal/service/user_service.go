package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/AmarWhoo/cookboxd/internal/domain"
	"github.com/AmarWhoo/cookboxd/internal/platform/logger"
	"github.com/AmarWhoo/cookboxd/internal/platform/metrics"
	"github.com/AmarWhoo/cookboxd/internal/service/auth"
	"github.com/AmarWhoo/cookboxd/internal/store"
)

// UserService manages user accounts after registration.
type UserService interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// List returns every user. Admin only.
	List(ctx context.Context, actor domain.Actor) ([]*domain.User, error)

	// Update applies a partial update. Users may update themselves; admins
	// may update anyone and are the only ones allowed to change a role.
	Update(ctx context.Context, actor domain.Actor, id int64, upd domain.UserUpdate) (*domain.User, error)

	// ChangePassword replaces the password. A user changing their own
	// password must supply the current one.
	ChangePassword(ctx context.Context, actor domain.Actor, id int64, currentPassword, newPassword string) error

	// Delete removes the user along with their recipes and comments.
	Delete(ctx context.Context, actor domain.Actor, id int64) error
}

type userServiceImpl struct {
	users    store.UserStore
	hasher   auth.PasswordHasher
	verifier auth.PasswordVerifier
	logger   *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(
	users store.UserStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) (UserService, error) {
	switch {
	case users == nil:
		return nil, errors.New("users store cannot be nil")
	case hasher == nil:
		return nil, errors.New("password hasher cannot be nil")
	case verifier == nil:
		return nil, errors.New("password verifier cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		users:    users,
		hasher:   hasher,
		verifier: verifier,
		logger:   logger.With(slog.String("component", "user_service")),
	}, nil
}

func (s *userServiceImpl) load(ctx context.Context, op string, id int64) (*domain.User, error) {
	if err := domain.RequireID(id, "user"); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, notFound(op, "User not found", err)
		}
		return nil, storeFailure(op, "Failed to load user", err)
	}
	return user, nil
}

// GetByID implements UserService.GetByID
func (s *userServiceImpl) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.load(ctx, "user.get", id)
}

// List implements UserService.List
func (s *userServiceImpl) List(ctx context.Context, actor domain.Actor) ([]*domain.User, error) {
	const op = "user.list"
	if err := requireRole(op, actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, storeFailure(op, "Failed to list users", err)
	}
	return users, nil
}

// Update implements UserService.Update
func (s *userServiceImpl) Update(
	ctx context.Context,
	actor domain.Actor,
	id int64,
	upd domain.UserUpdate,
) (*domain.User, error) {
	const op = "user.update"
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.RequireID(id, "user"); err != nil {
		return nil, err
	}
	if err := requireOwnerOrAdmin(op, actor, id, "You do not have permission to update this user"); err != nil {
		return nil, err
	}
	if upd.Role != nil && !actor.IsAdmin() {
		metrics.RecordDenied(op)
		return nil, forbidden(op, "Only administrators can change roles")
	}

	user, err := s.load(ctx, op, id)
	if err != nil {
		return nil, err
	}

	upd.Normalize()
	if err := upd.Validate(); err != nil {
		return nil, err
	}
	if upd.Empty() {
		return user, nil
	}

	if upd.Email != nil && *upd.Email != user.Email {
		taken, err := s.users.EmailExists(ctx, *upd.Email, id)
		if err != nil {
			return nil, storeFailure(op, "Failed to update user", err)
		}
		if taken {
			return nil, duplicate(op, "Email address is already in use")
		}
	}
	if upd.Username != nil && *upd.Username != user.Username {
		taken, err := s.users.UsernameExists(ctx, *upd.Username, id)
		if err != nil {
			return nil, storeFailure(op, "Failed to update user", err)
		}
		if taken {
			return nil, duplicate(op, "Username is already taken")
		}
	}

	upd.Apply(user)
	if err := s.users.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, store.ErrEmailExists):
			return nil, duplicate(op, "Email address is already in use")
		case errors.Is(err, store.ErrUsernameExists):
			return nil, duplicate(op, "Username is already taken")
		}
		return nil, storeFailure(op, "Failed to update user", err)
	}

	log.Info("user updated",
		slog.Int64("user_id", id),
		slog.Int64("actor_id", actor.UserID))
	return user, nil
}

// ChangePassword implements UserService.ChangePassword
func (s *userServiceImpl) ChangePassword(
	ctx context.Context,
	actor domain.Actor,
	id int64,
	currentPassword, newPassword string,
) error {
	const op = "user.change_password"
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.RequireID(id, "user"); err != nil {
		return err
	}
	if err := requireOwnerOrAdmin(op, actor, id, "You do not have permission to change this password"); err != nil {
		return err
	}

	user, err := s.load(ctx, op, id)
	if err != nil {
		return err
	}

	if actor.Owns(id) {
		if currentPassword == "" {
			return domain.NewValidationError("current_password", "Current password is required")
		}
		if err := s.verifier.Compare(user.PasswordHash, currentPassword); err != nil {
			return businessRule(op, "Current password is incorrect")
		}
	}
	if newPassword == "" {
		return domain.NewValidationError("new_password", "Password is required")
	}
	if err := domain.ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return NewError(op, "Failed to change password", err)
	}
	if err := s.users.UpdatePassword(ctx, id, hash); err != nil {
		return storeFailure(op, "Failed to change password", err)
	}

	log.Info("password changed", slog.Int64("user_id", id))
	return nil
}

// Delete implements UserService.Delete
func (s *userServiceImpl) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	const op = "user.delete"
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.RequireID(id, "user"); err != nil {
		return err
	}
	if err := requireOwnerOrAdmin(op, actor, id, "You do not have permission to delete this user"); err != nil {
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return notFound(op, "User not found", err)
		}
		return storeFailure(op, "Failed to delete user", err)
	}
	metrics.RecordDeleted("user", 1)

	log.Info("user deleted",
		slog.Int64("user_id", id),
		slog.Int64("actor_id", actor.UserID))
	return nil
}
