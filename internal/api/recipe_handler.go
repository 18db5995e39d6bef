package api

import (
	"log/slog"
	"net/http"

	"github.com/AmarWhoo/cookboxd/internal/api/shared"
	"github.com/AmarWhoo/cookboxd/internal/domain"
	"github.com/AmarWhoo/cookboxd/internal/platform/logger"
	"github.com/AmarWhoo/cookboxd/internal/service"
)

// RecipeHandler handles recipe requests.
type RecipeHandler struct {
	recipes service.RecipeService
	logger  *slog.Logger
}

// NewRecipeHandler creates a new RecipeHandler
func NewRecipeHandler(recipes service.RecipeService, logger *slog.Logger) *RecipeHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for RecipeHandler")
	}

	return &RecipeHandler{
		recipes: recipes,
		logger:  logger.With(slog.String("component", "recipe_handler")),
	}
}

// Create handles POST /api/recipes. The owner is the authenticated user.
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateRecipeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	actor := shared.ActorFromContext(r.Context())
	recipe, err := h.recipes.Create(r.Context(), actor, req.input(actor))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Info("recipe created", slog.Int64("recipe_id", recipe.ID))
	shared.RespondSuccess(w, r, http.StatusCreated, "Recipe created successfully", recipe)
}

// List handles GET /api/recipes. With page or per_page present the listing
// is paginated; otherwise every recipe is returned.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	if page, ok := pageRequest(r, domain.DefaultRecipesPerPage); ok {
		recipes, pagination, err := h.recipes.ListPage(r.Context(), page)
		if err != nil {
			HandleAPIError(w, r, err)
			return
		}
		shared.RespondWithPagination(w, r, recipes, pagination)
		return
	}

	recipes, err := h.recipes.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, "", recipes)
}

// Search handles GET /api/recipes/search?q=.
func (h *RecipeHandler) Search(w http.ResponseWriter, r *http.Request) {
	req := SearchRequest{Query: r.URL.Query().Get("q")}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	recipes, err := h.recipes.Search(r.Context(), req.Query)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, "", recipes)
}

// Get handles GET /api/recipes/{id}.
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "recipe")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	recipe, err := h.recipes.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, "", recipe)
}

// ListByUser handles GET /api/recipes/user/{id}.
func (h *RecipeHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id", "user")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	recipes, err := h.recipes.ListByUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, "", recipes)
}

// ListByCategory handles GET /api/recipes/category/{id}.
func (h *RecipeHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r, "id", "category")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	recipes, err := h.recipes.ListByCategory(r.Context(), categoryID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, "", recipes)
}

// Update handles PUT /api/recipes/{id}.
func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "recipe")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req UpdateRecipeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	recipe, err := h.recipes.Update(r.Context(), shared.ActorFromContext(r.Context()), id, req.update())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, "Recipe updated successfully", recipe)
}

// Delete handles DELETE /api/recipes/{id}.
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := pathID(r, "id", "recipe")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.recipes.Delete(r.Context(), shared.ActorFromContext(r.Context()), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Info("recipe deleted", slog.Int64("recipe_id", id))
	shared.RespondSuccess(w, r, http.StatusOK, "Recipe deleted successfully", nil)
}
