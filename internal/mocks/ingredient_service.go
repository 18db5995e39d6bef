package mocks

import (
	"context"

	"github.com/AmarWhoo/cookboxd/internal/domain"
	"github.com/AmarWhoo/cookboxd/internal/service"
)

// MockIngredientService implements service.IngredientService for testing
type MockIngredientService struct {
	CreateFn         func(ctx context.Context, actor domain.Actor, in domain.IngredientInput) (*domain.Ingredient, error)
	CreateManyFn     func(ctx context.Context, actor domain.Actor, recipeID int64, items []domain.IngredientInput) ([]*domain.Ingredient, error)
	ReplaceFn        func(ctx context.Context, actor domain.Actor, recipeID int64, items []domain.IngredientInput) ([]*domain.Ingredient, error)
	GetFn            func(ctx context.Context, id int64) (*domain.Ingredient, error)
	ListFn           func(ctx context.Context) ([]*domain.Ingredient, error)
	ListByRecipeFn   func(ctx context.Context, recipeID int64) ([]*domain.Ingredient, error)
	CountByRecipeFn  func(ctx context.Context, recipeID int64) (int, error)
	UpdateFn         func(ctx context.Context, actor domain.Actor, id int64, upd domain.IngredientUpdate) (*domain.Ingredient, error)
	DeleteFn         func(ctx context.Context, actor domain.Actor, id int64) error
	DeleteByRecipeFn func(ctx context.Context, actor domain.Actor, recipeID int64) (int64, error)
}

var _ service.IngredientService = (*MockIngredientService)(nil)

// Create implements service.IngredientService
func (m *MockIngredientService) Create(
	ctx context.Context,
	actor domain.Actor,
	in domain.IngredientInput,
) (*domain.Ingredient, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, actor, in)
	}
	return &domain.Ingredient{ID: 1, RecipeID: in.RecipeID, Name: in.Name, Quantity: in.Quantity}, nil
}

// CreateMany implements service.IngredientService
func (m *MockIngredientService) CreateMany(
	ctx context.Context,
	actor domain.Actor,
	recipeID int64,
	items []domain.IngredientInput,
) ([]*domain.Ingredient, error) {
	if m.CreateManyFn != nil {
		return m.CreateManyFn(ctx, actor, recipeID, items)
	}
	return []*domain.Ingredient{}, nil
}

// Replace implements service.IngredientService
func (m *MockIngredientService) Replace(
	ctx context.Context,
	actor domain.Actor,
	recipeID int64,
	items []domain.IngredientInput,
) ([]*domain.Ingredient, error) {
	if m.ReplaceFn != nil {
		return m.ReplaceFn(ctx, actor, recipeID, items)
	}
	return []*domain.Ingredient{}, nil
}

// Get implements service.IngredientService
func (m *MockIngredientService) Get(ctx context.Context, id int64) (*domain.Ingredient, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return &domain.Ingredient{ID: id}, nil
}

// List implements service.IngredientService
func (m *MockIngredientService) List(ctx context.Context) ([]*domain.Ingredient, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return []*domain.Ingredient{}, nil
}

// ListByRecipe implements service.IngredientService
func (m *MockIngredientService) ListByRecipe(ctx context.Context, recipeID int64) ([]*domain.Ingredient, error) {
	if m.ListByRecipeFn != nil {
		return m.ListByRecipeFn(ctx, recipeID)
	}
	return []*domain.Ingredient{}, nil
}

// CountByRecipe implements service.IngredientService
func (m *MockIngredientService) CountByRecipe(ctx context.Context, recipeID int64) (int, error) {
	if m.CountByRecipeFn != nil {
		return m.CountByRecipeFn(ctx, recipeID)
	}
	return 0, nil
}

// Update implements service.IngredientService
func (m *MockIngredientService) Update(
	ctx context.Context,
	actor domain.Actor,
	id int64,
	upd domain.IngredientUpdate,
) (*domain.Ingredient, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, actor, id, upd)
	}
	return &domain.Ingredient{ID: id}, nil
}

// Delete implements service.IngredientService
func (m *MockIngredientService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, actor, id)
	}
	return nil
}

// DeleteByRecipe implements service.IngredientService
func (m *MockIngredientService) DeleteByRecipe(ctx context.Context, actor domain.Actor, recipeID int64) (int64, error) {
	if m.DeleteByRecipeFn != nil {
		return m.DeleteByRecipeFn(ctx, actor, recipeID)
	}
	return 0, nil
}
