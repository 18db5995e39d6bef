package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/AmarWhoo/cookboxd/internal/domain"
	"github.com/AmarWhoo/cookboxd/internal/platform/logger"
	"github.com/AmarWhoo/cookboxd/internal/platform/metrics"
	"github.com/AmarWhoo/cookboxd/internal/store"
)

// CategoryService manages recipe categories. Mutations are admin only.
type CategoryService interface {
	Create(ctx context.Context, actor domain.Actor, name string) (*domain.Category, error)
	Get(ctx context.Context, id int64) (*domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	Update(ctx context.Context, actor domain.Actor, id int64, name string) (*domain.Category, error)

	// Delete refuses while any recipe still uses the category.
	Delete(ctx context.Context, actor domain.Actor, id int64) error

	RecipeCount(ctx context.Context, id int64) (int, error)
}

type categoryServiceImpl struct {
	categories store.CategoryStore
	logger     *slog.Logger
}

// NewCategoryService creates a CategoryService.
func NewCategoryService(categories store.CategoryStore, logger *slog.Logger) (CategoryService, error) {
	if categories == nil {
		return nil, errors.New("categories store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &categoryServiceImpl{
		categories: categories,
		logger:     logger.With(slog.String("component", "category_service")),
	}, nil
}

// Create implements CategoryService.Create
func (s *categoryServiceImpl) Create(ctx context.Context, actor domain.Actor, name string) (*domain.Category, error) {
	const op = "category.create"
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := requireRole(op, actor, domain.RoleAdmin); err != nil {
		return nil, err
	}

	name = domain.NormalizeCategoryName(name)
	if err := domain.ValidateCategoryName(name); err != nil {
		return nil, err
	}

	taken, err := s.categories.NameExists(ctx, name, 0)
	if err != nil {
		return nil, storeFailure(op, "Failed to create category", err)
	}
	if taken {
		return nil, duplicate(op, "Category name already exists")
	}

	category := &domain.Category{Name: name}
	if err := s.categories.Create(ctx, category); err != nil {
		if store.IsDuplicateError(err) {
			return nil, duplicate(op, "Category name already exists")
		}
		return nil, storeFailure(op, "Failed to create category", err)
	}
	metrics.RecordCreated("category", 1)

	log.Info("category created", slog.Int64("category_id", category.ID))
	return category, nil
}

// Get implements CategoryService.Get
func (s *categoryServiceImpl) Get(ctx context.Context, id int64) (*domain.Category, error) {
	if err := domain.RequireID(id, "category"); err != nil {
		return nil, err
	}
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, notFound("category.get", "Category not found", err)
		}
		return nil, storeFailure("category.get", "Failed to load category", err)
	}
	return category, nil
}

// GetByName implements CategoryService.GetByName
func (s *categoryServiceImpl) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	category, err := s.categories.GetByName(ctx, domain.NormalizeCategoryName(name))
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, notFound("category.get_by_name", "Category not found", err)
		}
		return nil, storeFailure("category.get_by_name", "Failed to load category", err)
	}
	return category, nil
}

// List implements CategoryService.List
func (s *categoryServiceImpl) List(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, storeFailure("category.list", "Failed to list categories", err)
	}
	return categories, nil
}

// Update implements CategoryService.Update
func (s *categoryServiceImpl) Update(
	ctx context.Context,
	actor domain.Actor,
	id int64,
	name string,
) (*domain.Category, error) {
	const op = "category.update"
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := requireRole(op, actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	name = domain.NormalizeCategoryName(name)
	if err := domain.ValidateCategoryName(name); err != nil {
		return nil, err
	}
	if name == category.Name {
		return category, nil
	}

	taken, err := s.categories.NameExists(ctx, name, id)
	if err != nil {
		return nil, storeFailure(op, "Failed to update category", err)
	}
	if taken {
		return nil, duplicate(op, "Category name already exists")
	}

	category.Name = name
	if err := s.categories.Update(ctx, category); err != nil {
		if store.IsDuplicateError(err) {
			return nil, duplicate(op, "Category name already exists")
		}
		if store.IsNotFoundError(err) {
			return nil, notFound(op, "Category not found", err)
		}
		return nil, storeFailure(op, "Failed to update category", err)
	}

	log.Info("category updated", slog.Int64("category_id", id))
	return category, nil
}

// Delete implements CategoryService.Delete
func (s *categoryServiceImpl) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	const op = "category.delete"
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := requireRole(op, actor, domain.RoleAdmin); err != nil {
		return err
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	n, err := s.categories.RecipeCount(ctx, id)
	if err != nil {
		return storeFailure(op, "Failed to delete category", err)
	}
	if n > 0 {
		return businessRule(op, domain.CategoryInUseMessage(n))
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, store.ErrInUse):
			// A recipe was attached between the count and the delete.
			n, _ = s.categories.RecipeCount(ctx, id)
			return businessRule(op, domain.CategoryInUseMessage(max(n, 1)))
		case store.IsNotFoundError(err):
			return notFound(op, "Category not found", err)
		}
		return storeFailure(op, "Failed to delete category", err)
	}
	metrics.RecordDeleted("category", 1)

	log.Info("category deleted", slog.Int64("category_id", id))
	return nil
}

// RecipeCount implements CategoryService.RecipeCount
func (s *categoryServiceImpl) RecipeCount(ctx context.Context, id int64) (int, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return 0, err
	}
	n, err := s.categories.RecipeCount(ctx, id)
	if err != nil {
		return 0, storeFailure("category.recipe_count", "Failed to count recipes", err)
	}
	return n, nil
}
