package mocks

import (
	"context"

	"github.com/AmarWhoo/cookboxd/internal/domain"
	"github.com/AmarWhoo/cookboxd/internal/service"
)

// MockUserService implements service.UserService for testing
type MockUserService struct {
	GetByIDFn        func(ctx context.Context, id int64) (*domain.User, error)
	ListFn           func(ctx context.Context, actor domain.Actor) ([]*domain.User, error)
	UpdateFn         func(ctx context.Context, actor domain.Actor, id int64, upd domain.UserUpdate) (*domain.User, error)
	ChangePasswordFn func(ctx context.Context, actor domain.Actor, id int64, current, next string) error
	DeleteFn         func(ctx context.Context, actor domain.Actor, id int64) error
}

var _ service.UserService = (*MockUserService)(nil)

// GetByID implements service.UserService
func (m *MockUserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return &domain.User{ID: id}, nil
}

// List implements service.UserService
func (m *MockUserService) List(ctx context.Context, actor domain.Actor) ([]*domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, actor)
	}
	return []*domain.User{}, nil
}

// Update implements service.UserService
func (m *MockUserService) Update(
	ctx context.Context,
	actor domain.Actor,
	id int64,
	upd domain.UserUpdate,
) (*domain.User, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, actor, id, upd)
	}
	return &domain.User{ID: id}, nil
}

// ChangePassword implements service.UserService
func (m *MockUserService) ChangePassword(
	ctx context.Context,
	actor domain.Actor,
	id int64,
	current, next string,
) error {
	if m.ChangePasswordFn != nil {
		return m.ChangePasswordFn(ctx, actor, id, current, next)
	}
	return nil
}

// Delete implements service.UserService
func (m *MockUserService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, actor, id)
	}
	return nil
}
