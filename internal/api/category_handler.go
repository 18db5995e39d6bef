package api

import (
	"log/slog"
	"net/http"

	"github.com/AmarWhoo/cookboxd/internal/api/shared"
	"github.com/AmarWhoo/cookboxd/internal/platform/logger"
	"github.com/AmarWhoo/cookboxd/internal/service"
)

// CategoryHandler handles category requests.
type CategoryHandler struct {
	categories service.CategoryService
	logger     *slog.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categories service.CategoryService, logger *slog.Logger) *CategoryHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CategoryHandler")
	}

	return &CategoryHandler{
		categories: categories,
		logger:     logger.With(slog.String("component", "category_handler")),
	}
}

// Create handles POST /api/categories.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	category, err := h.categories.Create(r.Context(), shared.ActorFromContext(r.Context()), req.Name)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Info("category created", slog.Int64("category_id", category.ID))
	shared.RespondSuccess(w, r, http.StatusCreated, "Category created successfully", category)
}

// List handles GET /api/categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, "", categories)
}

// Get handles GET /api/categories/{id}.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "category")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	category, err := h.categories.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, "", category)
}

// RecipeCount handles GET /api/categories/{id}/count.
func (h *CategoryHandler) RecipeCount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "category")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	count, err := h.categories.RecipeCount(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, "", CountResponse{Count: count})
}

// Update handles PUT /api/categories/{id}.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "category")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req CategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	category, err := h.categories.Update(r.Context(), shared.ActorFromContext(r.Context()), id, req.Name)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, "Category updated successfully", category)
}

// Delete handles DELETE /api/categories/{id}.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := pathID(r, "id", "category")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.categories.Delete(r.Context(), shared.ActorFromContext(r.Context()), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Info("category deleted", slog.Int64("category_id", id))
	shared.RespondSuccess(w, r, http.StatusOK, "Category deleted successfully", nil)
}
