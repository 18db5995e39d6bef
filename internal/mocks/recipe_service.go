package mocks

import (
	"context"

	"github.com/AmarWhoo/cookboxd/internal/domain"
	"github.com/AmarWhoo/cookboxd/internal/service"
)

// MockRecipeService implements service.RecipeService for testing
type MockRecipeService struct {
	CreateFn         func(ctx context.Context, actor domain.Actor, in domain.NewRecipeInput) (*domain.Recipe, error)
	GetFn            func(ctx context.Context, id int64) (*domain.Recipe, error)
	ListFn           func(ctx context.Context) ([]*domain.Recipe, error)
	ListPageFn       func(ctx context.Context, page domain.PageRequest) ([]*domain.Recipe, domain.Pagination, error)
	SearchFn         func(ctx context.Context, query string) ([]*domain.Recipe, error)
	ListByUserFn     func(ctx context.Context, userID int64) ([]*domain.Recipe, error)
	ListByCategoryFn func(ctx context.Context, categoryID int64) ([]*domain.Recipe, error)
	UpdateFn         func(ctx context.Context, actor domain.Actor, id int64, upd domain.RecipeUpdate) (*domain.Recipe, error)
	DeleteFn         func(ctx context.Context, actor domain.Actor, id int64) error
}

var _ service.RecipeService = (*MockRecipeService)(nil)

// Create implements service.RecipeService
func (m *MockRecipeService) Create(
	ctx context.Context,
	actor domain.Actor,
	in domain.NewRecipeInput,
) (*domain.Recipe, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, actor, in)
	}
	return &domain.Recipe{ID: 1, UserID: actor.UserID, Title: in.Title}, nil
}

// Get implements service.RecipeService
func (m *MockRecipeService) Get(ctx context.Context, id int64) (*domain.Recipe, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return &domain.Recipe{ID: id}, nil
}

// List implements service.RecipeService
func (m *MockRecipeService) List(ctx context.Context) ([]*domain.Recipe, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return []*domain.Recipe{}, nil
}

// ListPage implements service.RecipeService
func (m *MockRecipeService) ListPage(
	ctx context.Context,
	page domain.PageRequest,
) ([]*domain.Recipe, domain.Pagination, error) {
	if m.ListPageFn != nil {
		return m.ListPageFn(ctx, page)
	}
	return []*domain.Recipe{}, page.Paginate(0), nil
}

// Search implements service.RecipeService
func (m *MockRecipeService) Search(ctx context.Context, query string) ([]*domain.Recipe, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, query)
	}
	return []*domain.Recipe{}, nil
}

// ListByUser implements service.RecipeService
func (m *MockRecipeService) ListByUser(ctx context.Context, userID int64) ([]*domain.Recipe, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return []*domain.Recipe{}, nil
}

// ListByCategory implements service.RecipeService
func (m *MockRecipeService) ListByCategory(ctx context.Context, categoryID int64) ([]*domain.Recipe, error) {
	if m.ListByCategoryFn != nil {
		return m.ListByCategoryFn(ctx, categoryID)
	}
	return []*domain.Recipe{}, nil
}

// Update implements service.RecipeService
func (m *MockRecipeService) Update(
	ctx context.Context,
	actor domain.Actor,
	id int64,
	upd domain.RecipeUpdate,
) (*domain.Recipe, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, actor, id, upd)
	}
	return &domain.Recipe{ID: id}, nil
}

// Delete implements service.RecipeService
func (m *MockRecipeService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, actor, id)
	}
	return nil
}
