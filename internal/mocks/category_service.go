package mocks

import (
	"context"

	"github.com/AmarWhoo/cookboxd/internal/domain"
	"github.com/AmarWhoo/cookboxd/internal/service"
)

// MockCategoryService implements service.CategoryService for testing
type MockCategoryService struct {
	CreateFn      func(ctx context.Context, actor domain.Actor, name string) (*domain.Category, error)
	GetFn         func(ctx context.Context, id int64) (*domain.Category, error)
	GetByNameFn   func(ctx context.Context, name string) (*domain.Category, error)
	ListFn        func(ctx context.Context) ([]*domain.Category, error)
	UpdateFn      func(ctx context.Context, actor domain.Actor, id int64, name string) (*domain.Category, error)
	DeleteFn      func(ctx context.Context, actor domain.Actor, id int64) error
	RecipeCountFn func(ctx context.Context, id int64) (int, error)
}

var _ service.CategoryService = (*MockCategoryService)(nil)

// Create implements service.CategoryService
func (m *MockCategoryService) Create(ctx context.Context, actor domain.Actor, name string) (*domain.Category, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, actor, name)
	}
	return &domain.Category{ID: 1, Name: name}, nil
}

// Get implements service.CategoryService
func (m *MockCategoryService) Get(ctx context.Context, id int64) (*domain.Category, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return &domain.Category{ID: id}, nil
}

// GetByName implements service.CategoryService
func (m *MockCategoryService) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	if m.GetByNameFn != nil {
		return m.GetByNameFn(ctx, name)
	}
	return &domain.Category{ID: 1, Name: name}, nil
}

// List implements service.CategoryService
func (m *MockCategoryService) List(ctx context.Context) ([]*domain.Category, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return []*domain.Category{}, nil
}

// Update implements service.CategoryService
func (m *MockCategoryService) Update(
	ctx context.Context,
	actor domain.Actor,
	id int64,
	name string,
) (*domain.Category, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, actor, id, name)
	}
	return &domain.Category{ID: id, Name: name}, nil
}

// Delete implements service.CategoryService
func (m *MockCategoryService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, actor, id)
	}
	return nil
}

// RecipeCount implements service.CategoryService
func (m *MockCategoryService) RecipeCount(ctx context.Context, id int64) (int, error) {
	if m.RecipeCountFn != nil {
		return m.RecipeCountFn(ctx, id)
	}
	return 0, nil
}
