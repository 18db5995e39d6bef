package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/AmarWhoo/cookboxd/internal/domain"
	"github.com/AmarWhoo/cookboxd/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngredientCreateBatch(t *testing.T) {
	t.Parallel()

	svc := newTestServices()
	var gotRecipe int64
	var gotItems []domain.IngredientInput
	svc.ingredients.CreateManyFn = func(_ context.Context, _ domain.Actor, recipeID int64, items []domain.IngredientInput) ([]*domain.Ingredient, error) {
		gotRecipe = recipeID
		gotItems = items
		out := make([]*domain.Ingredient, len(items))
		for i, it := range items {
			out[i] = &domain.Ingredient{ID: int64(i + 1), RecipeID: recipeID, Name: it.Name, Quantity: it.Quantity}
		}
		return out, nil
	}

	w, env := do(t, svc.router(t), http.MethodPost, "/api/ingredients/batch", "user:3", map[string]any{
		"recipe_id": 12,
		"ingredients": []map[string]any{
			{"name": "Eggs", "quantity": "4"},
			{"name": "Tomatoes", "quantity": "400 g"},
		},
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "2 ingredients added successfully", env.Message)
	assert.Equal(t, int64(12), gotRecipe)
	require.Len(t, gotItems, 2)
	assert.Equal(t, "Tomatoes", gotItems[1].Name)
}

func TestIngredientCreateBatch_ItemError(t *testing.T) {
	t.Parallel()

	svc := newTestServices()
	svc.ingredients.CreateManyFn = func(context.Context, domain.Actor, int64, []domain.IngredientInput) ([]*domain.Ingredient, error) {
		return nil, domain.NewValidationError("quantity", "Ingredient quantity is required").WithPrefix("Ingredient #3: ")
	}

	w, env := do(t, svc.router(t), http.MethodPost, "/api/ingredients/batch", "user:3",
		map[string]any{"recipe_id": 12, "ingredients": []map[string]any{{"name": "a"}}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Ingredient #3: Ingredient quantity is required", env.Message)
}

func TestIngredientReplace_UsesPathRecipe(t *testing.T) {
	t.Parallel()

	svc := newTestServices()
	var gotRecipe int64
	svc.ingredients.ReplaceFn = func(_ context.Context, _ domain.Actor, recipeID int64, items []domain.IngredientInput) ([]*domain.Ingredient, error) {
		gotRecipe = recipeID
		return []*domain.Ingredient{}, nil
	}

	w, env := do(t, svc.router(t), http.MethodPut, "/api/ingredients/recipe/8/replace", "user:3",
		map[string]any{"recipe_id": 99, "ingredients": []map[string]any{{"name": "Salt", "quantity": "1 tsp"}}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Recipe ingredients replaced successfully", env.Message)
	assert.Equal(t, int64(8), gotRecipe)
}

func TestIngredientCount(t *testing.T) {
	t.Parallel()

	svc := newTestServices()
	svc.ingredients.CountByRecipeFn = func(context.Context, int64) (int, error) { return 6, nil }

	w, env := do(t, svc.router(t), http.MethodGet, "/api/ingredients/recipe/8/count", "user:3", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":6}`, string(env.Data))
}

func TestIngredientDelete_Forbidden(t *testing.T) {
	t.Parallel()

	svc := newTestServices()
	svc.ingredients.DeleteFn = func(context.Context, domain.Actor, int64) error {
		return service.NewError("ingredient.Delete",
			"You do not have permission to modify ingredients of this recipe", service.ErrForbidden)
	}

	w, env := do(t, svc.router(t), http.MethodDelete, "/api/ingredients/4", "user:3", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "You do not have permission to modify ingredients of this recipe", env.Message)
}
