package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/AmarWhoo/cookboxd/internal/domain"
	"github.com/AmarWhoo/cookboxd/internal/platform/logger"
	"github.com/AmarWhoo/cookboxd/internal/platform/metrics"
	"github.com/AmarWhoo/cookboxd/internal/store"
)

const ingredientPermissionMessage = "You do not have permission to modify ingredients of this recipe"

// IngredientService manages recipe ingredients. Mutations are limited to the
// owner of the parent recipe or an admin.
type IngredientService interface {
	Create(ctx context.Context, actor domain.Actor, in domain.IngredientInput) (*domain.Ingredient, error)

	// CreateMany adds every item or none of them.
	CreateMany(ctx context.Context, actor domain.Actor, recipeID int64, items []domain.IngredientInput) ([]*domain.Ingredient, error)

	// Replace deletes the recipe's ingredients and inserts items in one transaction.
	Replace(ctx context.Context, actor domain.Actor, recipeID int64, items []domain.IngredientInput) ([]*domain.Ingredient, error)

	Get(ctx context.Context, id int64) (*domain.Ingredient, error)
	List(ctx context.Context) ([]*domain.Ingredient, error)
	ListByRecipe(ctx context.Context, recipeID int64) ([]*domain.Ingredient, error)
	CountByRecipe(ctx context.Context, recipeID int64) (int, error)
	Update(ctx context.Context, actor domain.Actor, id int64, upd domain.IngredientUpdate) (*domain.Ingredient, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
	DeleteByRecipe(ctx context.Context, actor domain.Actor, recipeID int64) (int64, error)
}

type ingredientServiceImpl struct {
	ingredients store.IngredientStore
	recipes     store.RecipeStore
	tx          store.Transactor
	logger      *slog.Logger
}

// NewIngredientService creates an IngredientService.
func NewIngredientService(
	ingredients store.IngredientStore,
	recipes store.RecipeStore,
	tx store.Transactor,
	logger *slog.Logger,
) (IngredientService, error) {
	switch {
	case ingredients == nil:
		return nil, errors.New("ingredients store cannot be nil")
	case recipes == nil:
		return nil, errors.New("recipes store cannot be nil")
	case tx == nil:
		return nil, errors.New("transactor cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ingredientServiceImpl{
		ingredients: ingredients,
		recipes:     recipes,
		tx:          tx,
		logger:      logger.With(slog.String("component", "ingredient_service")),
	}, nil
}

// authorizeRecipe loads the parent recipe and checks the actor may modify it.
func (s *ingredientServiceImpl) authorizeRecipe(
	ctx context.Context,
	op string,
	actor domain.Actor,
	recipeID int64,
) (*domain.Recipe, error) {
	if err := requireActor(op, actor); err != nil {
		return nil, err
	}
	if err := domain.RequireID(recipeID, "recipe"); err != nil {
		return nil, err
	}
	recipe, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, notFound(op, "Recipe not found", err)
		}
		return nil, storeFailure(op, "Failed to load recipe", err)
	}
	if err := requireOwnerOrAdmin(op, actor, recipe.UserID, ingredientPermissionMessage); err != nil {
		return nil, err
	}
	return recipe, nil
}

// Create implements IngredientService.Create
func (s *ingredientServiceImpl) Create(
	ctx context.Context,
	actor domain.Actor,
	in domain.IngredientInput,
) (*domain.Ingredient, error) {
	const op = "ingredient.create"

	if err := requireActor(op, actor); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.authorizeRecipe(ctx, op, actor, in.RecipeID); err != nil {
		return nil, err
	}

	ingredient := in.Ingredient()
	if err := s.ingredients.Create(ctx, ingredient); err != nil {
		if errors.Is(err, store.ErrInvalidEntity) {
			return nil, notFound(op, "Recipe not found", err)
		}
		return nil, storeFailure(op, "Failed to add ingredient", err)
	}
	metrics.RecordCreated("ingredient", 1)

	return s.Get(ctx, ingredient.ID)
}

// CreateMany implements IngredientService.CreateMany
func (s *ingredientServiceImpl) CreateMany(
	ctx context.Context,
	actor domain.Actor,
	recipeID int64,
	items []domain.IngredientInput,
) ([]*domain.Ingredient, error) {
	return s.writeBatch(ctx, "ingredient.create_many", actor, recipeID, items, false)
}

// Replace implements IngredientService.Replace
func (s *ingredientServiceImpl) Replace(
	ctx context.Context,
	actor domain.Actor,
	recipeID int64,
	items []domain.IngredientInput,
) ([]*domain.Ingredient, error) {
	return s.writeBatch(ctx, "ingredient.replace", actor, recipeID, items, true)
}

// writeBatch validates every item before touching the store, then inserts
// them (after deleting existing rows when replace is set) in a single
// transaction.
func (s *ingredientServiceImpl) writeBatch(
	ctx context.Context,
	op string,
	actor domain.Actor,
	recipeID int64,
	items []domain.IngredientInput,
	replace bool,
) ([]*domain.Ingredient, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	recipe, err := s.authorizeRecipe(ctx, op, actor, recipeID)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateIngredientBatch(recipe.ID, items); err != nil {
		return nil, err
	}

	ingredients := make([]*domain.Ingredient, len(items))
	for i, item := range items {
		ingredients[i] = item.Ingredient()
	}

	var removed int64
	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txIngredients := s.ingredients.WithTx(tx)
		if replace {
			n, err := txIngredients.DeleteByRecipe(ctx, recipe.ID)
			if err != nil {
				return err
			}
			removed = n
		}
		return txIngredients.CreateMany(ctx, ingredients)
	})
	if err != nil {
		message := "Failed to add ingredients"
		if replace {
			message = "Failed to replace ingredients"
		}
		log.Error("ingredient batch rolled back",
			slog.String("error", err.Error()),
			slog.Int64("recipe_id", recipe.ID),
			slog.Int("count", len(items)))
		return nil, storeFailure(op, message, err)
	}

	metrics.RecordCreated("ingredient", len(ingredients))
	if removed > 0 {
		metrics.RecordDeleted("ingredient", removed)
	}
	log.Info("ingredient batch written",
		slog.Int64("recipe_id", recipe.ID),
		slog.Int("count", len(ingredients)),
		slog.Bool("replace", replace))

	return s.ListByRecipe(ctx, recipe.ID)
}

// Get implements IngredientService.Get
func (s *ingredientServiceImpl) Get(ctx context.Context, id int64) (*domain.Ingredient, error) {
	if err := domain.RequireID(id, "ingredient"); err != nil {
		return nil, err
	}
	ingredient, err := s.ingredients.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, notFound("ingredient.get", "Ingredient not found", err)
		}
		return nil, storeFailure("ingredient.get", "Failed to load ingredient", err)
	}
	return ingredient, nil
}

// List implements IngredientService.List
func (s *ingredientServiceImpl) List(ctx context.Context) ([]*domain.Ingredient, error) {
	ingredients, err := s.ingredients.List(ctx)
	if err != nil {
		return nil, storeFailure("ingredient.list", "Failed to list ingredients", err)
	}
	return ingredients, nil
}

// ListByRecipe implements IngredientService.ListByRecipe
func (s *ingredientServiceImpl) ListByRecipe(ctx context.Context, recipeID int64) ([]*domain.Ingredient, error) {
	if err := domain.RequireID(recipeID, "recipe"); err != nil {
		return nil, err
	}
	ingredients, err := s.ingredients.ListByRecipe(ctx, recipeID)
	if err != nil {
		return nil, storeFailure("ingredient.list_by_recipe", "Failed to list ingredients", err)
	}
	return ingredients, nil
}

// CountByRecipe implements IngredientService.CountByRecipe
func (s *ingredientServiceImpl) CountByRecipe(ctx context.Context, recipeID int64) (int, error) {
	if err := domain.RequireID(recipeID, "recipe"); err != nil {
		return 0, err
	}
	n, err := s.ingredients.CountByRecipe(ctx, recipeID)
	if err != nil {
		return 0, storeFailure("ingredient.count_by_recipe", "Failed to count ingredients", err)
	}
	return n, nil
}

// Update implements IngredientService.Update
func (s *ingredientServiceImpl) Update(
	ctx context.Context,
	actor domain.Actor,
	id int64,
	upd domain.IngredientUpdate,
) (*domain.Ingredient, error) {
	const op = "ingredient.update"

	if err := requireActor(op, actor); err != nil {
		return nil, err
	}
	ingredient, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizeRecipe(ctx, op, actor, ingredient.RecipeID); err != nil {
		return nil, err
	}
	if err := upd.Validate(); err != nil {
		return nil, err
	}
	if upd.Empty() {
		return ingredient, nil
	}

	upd.Apply(ingredient)
	if err := s.ingredients.Update(ctx, ingredient); err != nil {
		if store.IsNotFoundError(err) {
			return nil, notFound(op, "Ingredient not found", err)
		}
		return nil, storeFailure(op, "Failed to update ingredient", err)
	}
	return ingredient, nil
}

// Delete implements IngredientService.Delete
func (s *ingredientServiceImpl) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	const op = "ingredient.delete"

	if err := requireActor(op, actor); err != nil {
		return err
	}
	ingredient, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.authorizeRecipe(ctx, op, actor, ingredient.RecipeID); err != nil {
		return err
	}

	if err := s.ingredients.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return notFound(op, "Ingredient not found", err)
		}
		return storeFailure(op, "Failed to delete ingredient", err)
	}
	metrics.RecordDeleted("ingredient", 1)
	return nil
}

// DeleteByRecipe implements IngredientService.DeleteByRecipe
func (s *ingredientServiceImpl) DeleteByRecipe(ctx context.Context, actor domain.Actor, recipeID int64) (int64, error) {
	const op = "ingredient.delete_by_recipe"

	if _, err := s.authorizeRecipe(ctx, op, actor, recipeID); err != nil {
		return 0, err
	}
	n, err := s.ingredients.DeleteByRecipe(ctx, recipeID)
	if err != nil {
		return 0, storeFailure(op, "Failed to delete ingredients", err)
	}
	metrics.RecordDeleted("ingredient", n)

	logger.FromContextOrDefault(ctx, s.logger).Info("recipe ingredients deleted",
		slog.Int64("recipe_id", recipeID),
		slog.Int64("count", n))
	return n, nil
}
