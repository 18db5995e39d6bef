package service

import (
	"context"
	"testing"

	"github.com/AmarWhoo/cookboxd/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ingredientItems(names ...string) []domain.IngredientInput {
	items := make([]domain.IngredientInput, len(names))
	for i, name := range names {
		items[i] = domain.IngredientInput{Name: name, Quantity: "1 cup"}
	}
	return items
}

func TestIngredientService_CreateMany(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("adds every item", func(t *testing.T) {
		env := newTestEnv(t)
		anna := env.seedUser(t, "anna", domain.RoleUser)
		recipe := env.seedRecipe(t, anna, "Pancakes", nil)

		created, err := env.ingredients.CreateMany(ctx, anna, recipe.ID, ingredientItems("flour", "milk", "eggs"))
		require.NoError(t, err)
		require.Len(t, created, 3)
		assert.Equal(t, "flour", created[0].Name)
		assert.Equal(t, recipe.ID, created[2].RecipeID)
	})

	t.Run("one invalid item persists nothing", func(t *testing.T) {
		env := newTestEnv(t)
		anna := env.seedUser(t, "anna", domain.RoleUser)
		recipe := env.seedRecipe(t, anna, "Pancakes", nil)

		items := ingredientItems("flour", "milk", "eggs", "sugar", "salt")
		items[2].Quantity = "  "

		_, err := env.ingredients.CreateMany(ctx, anna, recipe.ID, items)
		requireValidation(t, err, "Ingredient #3: Ingredient quantity is required")

		n, err := env.ingredients.CountByRecipe(ctx, recipe.ID)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("a failed insert rolls back the batch", func(t *testing.T) {
		env := newTestEnv(t)
		anna := env.seedUser(t, "anna", domain.RoleUser)
		recipe := env.seedRecipe(t, anna, "Pancakes", nil)
		env.ingStore.failOnCreate = 4

		_, err := env.ingredients.CreateMany(ctx, anna, recipe.ID, ingredientItems("flour", "milk", "eggs", "sugar", "salt"))
		require.Error(t, err)
		assert.ErrorIs(t, err, errSimulatedInsert)

		n, err := env.ingredients.CountByRecipe(ctx, recipe.ID)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("empty batch", func(t *testing.T) {
		env := newTestEnv(t)
		anna := env.seedUser(t, "anna", domain.RoleUser)
		recipe := env.seedRecipe(t, anna, "Pancakes", nil)

		_, err := env.ingredients.CreateMany(ctx, anna, recipe.ID, nil)
		requireValidation(t, err, "Ingredients array is required and cannot be empty")
	})

	t.Run("only the recipe owner or an admin", func(t *testing.T) {
		env := newTestEnv(t)
		anna := env.seedUser(t, "anna", domain.RoleUser)
		bob := env.seedUser(t, "bob", domain.RoleUser)
		admin := env.seedUser(t, "admin", domain.RoleAdmin)
		recipe := env.seedRecipe(t, anna, "Pancakes", nil)

		_, err := env.ingredients.CreateMany(ctx, bob, recipe.ID, ingredientItems("flour"))
		requireServiceError(t, err, ErrForbidden, ingredientPermissionMessage)

		_, err = env.ingredients.CreateMany(ctx, admin, recipe.ID, ingredientItems("flour"))
		require.NoError(t, err)
	})

	t.Run("missing recipe", func(t *testing.T) {
		env := newTestEnv(t)
		anna := env.seedUser(t, "anna", domain.RoleUser)

		_, err := env.ingredients.CreateMany(ctx, anna, 404, ingredientItems("flour"))
		requireServiceError(t, err, ErrNotFound, "Recipe not found")
	})
}

func TestIngredientService_Replace(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv(t)
	anna := env.seedUser(t, "anna", domain.RoleUser)
	recipe := env.seedRecipe(t, anna, "Pancakes", nil)

	_, err := env.ingredients.CreateMany(ctx, anna, recipe.ID, ingredientItems("flour", "milk"))
	require.NoError(t, err)

	replaced, err := env.ingredients.Replace(ctx, anna, recipe.ID, ingredientItems("oat flour", "oat milk", "banana"))
	require.NoError(t, err)
	require.Len(t, replaced, 3)
	assert.Equal(t, "oat flour", replaced[0].Name)

	// A failing replacement keeps the previous ingredients.
	env.ingStore.failOnCreate = env.ingStore.creates + 2
	_, err = env.ingredients.Replace(ctx, anna, recipe.ID, ingredientItems("rice", "water"))
	require.Error(t, err)

	current, err := env.ingredients.ListByRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	require.Len(t, current, 3)
	assert.Equal(t, "oat flour", current[0].Name)
}

func TestIngredientService_UpdateDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv(t)
	anna := env.seedUser(t, "anna", domain.RoleUser)
	bob := env.seedUser(t, "bob", domain.RoleUser)
	recipe := env.seedRecipe(t, anna, "Pancakes", nil)

	ing, err := env.ingredients.Create(ctx, anna, domain.IngredientInput{RecipeID: recipe.ID, Name: "flour", Quantity: "2 cups"})
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", ing.RecipeTitle)

	_, err = env.ingredients.Update(ctx, bob, ing.ID, domain.IngredientUpdate{Quantity: strPtr("3 cups")})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := env.ingredients.Update(ctx, anna, ing.ID, domain.IngredientUpdate{Quantity: strPtr(" 3 cups ")})
	require.NoError(t, err)
	assert.Equal(t, "3 cups", updated.Quantity)
	assert.Equal(t, "flour", updated.Name)

	_, err = env.ingredients.Update(ctx, anna, ing.ID, domain.IngredientUpdate{Name: strPtr("")})
	requireValidation(t, err, "Ingredient name cannot be empty")

	assert.ErrorIs(t, env.ingredients.Delete(ctx, bob, ing.ID), ErrForbidden)
	require.NoError(t, env.ingredients.Delete(ctx, anna, ing.ID))

	_, err = env.ingredients.Get(ctx, ing.ID)
	requireServiceError(t, err, ErrNotFound, "Ingredient not found")

	_, err = env.ingredients.CreateMany(ctx, anna, recipe.ID, ingredientItems("a", "b"))
	require.NoError(t, err)
	n, err := env.ingredients.DeleteByRecipe(ctx, anna, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
