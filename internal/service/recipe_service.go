package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/AmarWhoo/cookboxd/internal/domain"
	"github.com/AmarWhoo/cookboxd/internal/platform/logger"
	"github.com/AmarWhoo/cookboxd/internal/platform/metrics"
	"github.com/AmarWhoo/cookboxd/internal/store"
)

// minSearchLength is the shortest trimmed query SearchByTitle will run.
const minSearchLength = 2

// RecipeService manages recipes.
type RecipeService interface {
	// Create stores a recipe owned by the actor. Any user_id supplied by the
	// client is ignored.
	Create(ctx context.Context, actor domain.Actor, in domain.NewRecipeInput) (*domain.Recipe, error)

	Get(ctx context.Context, id int64) (*domain.Recipe, error)
	List(ctx context.Context) ([]*domain.Recipe, error)
	ListPage(ctx context.Context, page domain.PageRequest) ([]*domain.Recipe, domain.Pagination, error)

	// Search matches titles case-insensitively. Queries shorter than two
	// characters after trimming return an empty list.
	Search(ctx context.Context, query string) ([]*domain.Recipe, error)

	ListByUser(ctx context.Context, userID int64) ([]*domain.Recipe, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]*domain.Recipe, error)

	// Update and Delete are limited to the owner or an admin.
	Update(ctx context.Context, actor domain.Actor, id int64, upd domain.RecipeUpdate) (*domain.Recipe, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
}

type recipeServiceImpl struct {
	recipes    store.RecipeStore
	categories store.CategoryStore
	logger     *slog.Logger
}

// NewRecipeService creates a RecipeService.
func NewRecipeService(
	recipes store.RecipeStore,
	categories store.CategoryStore,
	logger *slog.Logger,
) (RecipeService, error) {
	switch {
	case recipes == nil:
		return nil, errors.New("recipes store cannot be nil")
	case categories == nil:
		return nil, errors.New("categories store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &recipeServiceImpl{
		recipes:    recipes,
		categories: categories,
		logger:     logger.With(slog.String("component", "recipe_service")),
	}, nil
}

// checkCategory verifies that a referenced category exists.
func (s *recipeServiceImpl) checkCategory(ctx context.Context, op string, categoryID *int64) error {
	if categoryID == nil {
		return nil
	}
	if _, err := s.categories.GetByID(ctx, *categoryID); err != nil {
		if store.IsNotFoundError(err) {
			return domain.NewValidationError("category_id", "Category not found")
		}
		return storeFailure(op, "Failed to load category", err)
	}
	return nil
}

// Create implements RecipeService.Create
func (s *recipeServiceImpl) Create(
	ctx context.Context,
	actor domain.Actor,
	in domain.NewRecipeInput,
) (*domain.Recipe, error) {
	const op = "recipe.create"
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := requireRole(op, actor, domain.RoleUser, domain.RoleAdmin); err != nil {
		return nil, err
	}
	in.UserID = actor.UserID
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, op, in.CategoryID); err != nil {
		return nil, err
	}

	recipe := in.Recipe()
	if err := s.recipes.Create(ctx, recipe); err != nil {
		if errors.Is(err, store.ErrInvalidEntity) {
			return nil, domain.NewValidationError("category_id", "Category not found")
		}
		return nil, storeFailure(op, "Failed to create recipe", err)
	}
	metrics.RecordCreated("recipe", 1)
	log.Info("recipe created",
		slog.Int64("recipe_id", recipe.ID),
		slog.Int64("user_id", recipe.UserID))

	return s.Get(ctx, recipe.ID)
}

// Get implements RecipeService.Get
func (s *recipeServiceImpl) Get(ctx context.Context, id int64) (*domain.Recipe, error) {
	if err := domain.RequireID(id, "recipe"); err != nil {
		return nil, err
	}
	recipe, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, notFound("recipe.get", "Recipe not found", err)
		}
		return nil, storeFailure("recipe.get", "Failed to load recipe", err)
	}
	return recipe, nil
}

// List implements RecipeService.List
func (s *recipeServiceImpl) List(ctx context.Context) ([]*domain.Recipe, error) {
	recipes, err := s.recipes.List(ctx)
	if err != nil {
		return nil, storeFailure("recipe.list", "Failed to list recipes", err)
	}
	return recipes, nil
}

// ListPage implements RecipeService.ListPage
func (s *recipeServiceImpl) ListPage(
	ctx context.Context,
	page domain.PageRequest,
) ([]*domain.Recipe, domain.Pagination, error) {
	const op = "recipe.list_page"

	total, err := s.recipes.Count(ctx)
	if err != nil {
		return nil, domain.Pagination{}, storeFailure(op, "Failed to list recipes", err)
	}
	recipes, err := s.recipes.ListPage(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, domain.Pagination{}, storeFailure(op, "Failed to list recipes", err)
	}
	return recipes, page.Paginate(total), nil
}

// Search implements RecipeService.Search
func (s *recipeServiceImpl) Search(ctx context.Context, query string) ([]*domain.Recipe, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minSearchLength {
		return []*domain.Recipe{}, nil
	}
	recipes, err := s.recipes.SearchByTitle(ctx, query)
	if err != nil {
		return nil, storeFailure("recipe.search", "Failed to search recipes", err)
	}
	return recipes, nil
}

// ListByUser implements RecipeService.ListByUser
func (s *recipeServiceImpl) ListByUser(ctx context.Context, userID int64) ([]*domain.Recipe, error) {
	if err := domain.RequireID(userID, "user"); err != nil {
		return nil, err
	}
	recipes, err := s.recipes.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeFailure("recipe.list_by_user", "Failed to list recipes", err)
	}
	return recipes, nil
}

// ListByCategory implements RecipeService.ListByCategory
func (s *recipeServiceImpl) ListByCategory(ctx context.Context, categoryID int64) ([]*domain.Recipe, error) {
	if err := domain.RequireID(categoryID, "category"); err != nil {
		return nil, err
	}
	recipes, err := s.recipes.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, storeFailure("recipe.list_by_category", "Failed to list recipes", err)
	}
	return recipes, nil
}

// Update implements RecipeService.Update
// Ownership is checked before the payload so a foreign recipe is refused
// whatever the request contains.
func (s *recipeServiceImpl) Update(
	ctx context.Context,
	actor domain.Actor,
	id int64,
	upd domain.RecipeUpdate,
) (*domain.Recipe, error) {
	const op = "recipe.update"
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := requireActor(op, actor); err != nil {
		return nil, err
	}
	recipe, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwnerOrAdmin(op, actor, recipe.UserID, "You do not have permission to edit this recipe"); err != nil {
		return nil, err
	}

	if err := upd.Validate(); err != nil {
		return nil, err
	}
	if upd.Empty() {
		return recipe, nil
	}
	if !upd.ClearCategory {
		if err := s.checkCategory(ctx, op, upd.CategoryID); err != nil {
			return nil, err
		}
	}

	upd.Apply(recipe)
	if err := s.recipes.Update(ctx, recipe); err != nil {
		if errors.Is(err, store.ErrInvalidEntity) {
			return nil, domain.NewValidationError("category_id", "Category not found")
		}
		if store.IsNotFoundError(err) {
			return nil, notFound(op, "Recipe not found", err)
		}
		return nil, storeFailure(op, "Failed to update recipe", err)
	}

	log.Info("recipe updated",
		slog.Int64("recipe_id", id),
		slog.Int64("actor_id", actor.UserID))
	return s.Get(ctx, id)
}

// Delete implements RecipeService.Delete
func (s *recipeServiceImpl) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	const op = "recipe.delete"
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := requireActor(op, actor); err != nil {
		return err
	}
	recipe, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwnerOrAdmin(op, actor, recipe.UserID, "You do not have permission to delete this recipe"); err != nil {
		return err
	}

	if err := s.recipes.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return notFound(op, "Recipe not found", err)
		}
		return storeFailure(op, "Failed to delete recipe", err)
	}
	metrics.RecordDeleted("recipe", 1)

	log.Info("recipe deleted",
		slog.Int64("recipe_id", id),
		slog.Int64("actor_id", actor.UserID))
	return nil
}
