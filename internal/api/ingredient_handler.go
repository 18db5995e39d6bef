package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/AmarWhoo/cookboxd/internal/api/shared"
	"github.com/AmarWhoo/cookboxd/internal/domain"
	"github.com/AmarWhoo/cookboxd/internal/platform/logger"
	"github.com/AmarWhoo/cookboxd/internal/service"
)

// IngredientHandler handles ingredient requests.
type IngredientHandler struct {
	ingredients service.IngredientService
	logger      *slog.Logger
}

// NewIngredientHandler creates a new IngredientHandler
func NewIngredientHandler(ingredients service.IngredientService, logger *slog.Logger) *IngredientHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for IngredientHandler")
	}

	return &IngredientHandler{
		ingredients: ingredients,
		logger:      logger.With(slog.String("component", "ingredient_handler")),
	}
}

// Create handles POST /api/ingredients.
func (h *IngredientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req IngredientRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ingredient, err := h.ingredients.Create(r.Context(), shared.ActorFromContext(r.Context()), req.input())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusCreated, "Ingredient added successfully", ingredient)
}

// CreateBatch handles POST /api/ingredients/batch. Either every ingredient
// is stored or none is.
func (h *IngredientHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req BatchIngredientsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	actor := shared.ActorFromContext(r.Context())
	ingredients, err := h.ingredients.CreateMany(r.Context(), actor, req.RecipeID, req.inputs())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Info("ingredients added",
		slog.Int64("recipe_id", req.RecipeID),
		slog.Int("count", len(req.Ingredients)))
	shared.RespondSuccess(w, r, http.StatusCreated,
		fmt.Sprintf("%d ingredients added successfully", len(req.Ingredients)), ingredients)
}

// Replace handles PUT /api/ingredients/recipe/{id}/replace.
func (h *IngredientHandler) Replace(w http.ResponseWriter, r *http.Request) {
	recipeID, err := pathID(r, "id", "recipe")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req BatchIngredientsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ingredients, err := h.ingredients.Replace(r.Context(), shared.ActorFromContext(r.Context()), recipeID, req.inputs())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, "Recipe ingredients replaced successfully", ingredients)
}

// List handles GET /api/ingredients.
func (h *IngredientHandler) List(w http.ResponseWriter, r *http.Request) {
	ingredients, err := h.ingredients.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, "", ingredients)
}

// Get handles GET /api/ingredients/{id}.
func (h *IngredientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "ingredient")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	ingredient, err := h.ingredients.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, "", ingredient)
}

// ListByRecipe handles GET /api/ingredients/recipe/{id}.
func (h *IngredientHandler) ListByRecipe(w http.ResponseWriter, r *http.Request) {
	recipeID, err := pathID(r, "id", "recipe")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	ingredients, err := h.ingredients.ListByRecipe(r.Context(), recipeID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, "", ingredients)
}

// CountByRecipe handles GET /api/ingredients/recipe/{id}/count.
func (h *IngredientHandler) CountByRecipe(w http.ResponseWriter, r *http.Request) {
	recipeID, err := pathID(r, "id", "recipe")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	count, err := h.ingredients.CountByRecipe(r.Context(), recipeID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, "", CountResponse{Count: count})
}

// Update handles PUT /api/ingredients/{id}.
func (h *IngredientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "ingredient")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req UpdateIngredientRequest
	if !decodeBody(w, r, &req) {
		return
	}

	upd := domain.IngredientUpdate{Name: req.Name, Quantity: req.Quantity}
	ingredient, err := h.ingredients.Update(r.Context(), shared.ActorFromContext(r.Context()), id, upd)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, "Ingredient updated successfully", ingredient)
}

// Delete handles DELETE /api/ingredients/{id}.
func (h *IngredientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "ingredient")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.ingredients.Delete(r.Context(), shared.ActorFromContext(r.Context()), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, "Ingredient deleted successfully", nil)
}

// DeleteByRecipe handles DELETE /api/ingredients/recipe/{id}.
func (h *IngredientHandler) DeleteByRecipe(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	recipeID, err := pathID(r, "id", "recipe")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	n, err := h.ingredients.DeleteByRecipe(r.Context(), shared.ActorFromContext(r.Context()), recipeID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Info("recipe ingredients deleted", slog.Int64("recipe_id", recipeID), slog.Int64("count", n))
	shared.RespondSuccess(w, r, http.StatusOK, "All ingredients deleted successfully", nil)
}
