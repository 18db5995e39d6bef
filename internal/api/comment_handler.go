package api

import (
	"log/slog"
	"net/http"

	"github.com/AmarWhoo/cookboxd/internal/api/shared"
	"github.com/AmarWhoo/cookboxd/internal/domain"
	"github.com/AmarWhoo/cookboxd/internal/platform/logger"
	"github.com/AmarWhoo/cookboxd/internal/service"
)

// CommentHandler handles comment requests.
type CommentHandler struct {
	comments service.CommentService
	logger   *slog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(comments service.CommentService, logger *slog.Logger) *CommentHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CommentHandler")
	}

	return &CommentHandler{
		comments: comments,
		logger:   logger.With(slog.String("component", "comment_handler")),
	}
}

// Create handles POST /api/comments. The author is the authenticated user.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CommentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	actor := shared.ActorFromContext(r.Context())
	in := domain.NewCommentInput{RecipeID: req.RecipeID, UserID: actor.UserID, Content: req.Content}
	comment, err := h.comments.Create(r.Context(), actor, in)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusCreated, "Comment posted successfully", comment)
}

// ListRecent handles GET /api/comments, newest first. Without page or
// per_page the first page of the default size is returned.
func (h *CommentHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	page, ok := pageRequest(r, domain.DefaultCommentsPerPage)
	if !ok {
		page = domain.NewPageRequest(1, domain.DefaultCommentsPerPage, domain.DefaultCommentsPerPage)
	}

	comments, pagination, err := h.comments.ListRecent(r.Context(), page)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithPagination(w, r, comments, pagination)
}

// Get handles GET /api/comments/{id}.
func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "comment")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	comment, err := h.comments.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, "", comment)
}

// ListByRecipe handles GET /api/comments/recipe/{id}, oldest first.
func (h *CommentHandler) ListByRecipe(w http.ResponseWriter, r *http.Request) {
	recipeID, err := pathID(r, "id", "recipe")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	comments, err := h.comments.ListByRecipe(r.Context(), recipeID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, "", comments)
}

// CountByRecipe handles GET /api/comments/recipe/{id}/count.
func (h *CommentHandler) CountByRecipe(w http.ResponseWriter, r *http.Request) {
	recipeID, err := pathID(r, "id", "recipe")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	count, err := h.comments.CountByRecipe(r.Context(), recipeID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, "", CountResponse{Count: count})
}

// ListByUser handles GET /api/comments/user/{id}.
func (h *CommentHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id", "user")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	comments, err := h.comments.ListByUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, "", comments)
}

// Update handles PUT /api/comments/{id}.
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "comment")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req UpdateCommentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	comment, err := h.comments.Update(r.Context(), shared.ActorFromContext(r.Context()), id, req.Content)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, "Comment updated successfully", comment)
}

// Delete handles DELETE /api/comments/{id}.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "comment")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.comments.Delete(r.Context(), shared.ActorFromContext(r.Context()), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, "Comment deleted successfully", nil)
}

// DeleteByRecipe handles DELETE /api/comments/recipe/{id}.
func (h *CommentHandler) DeleteByRecipe(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	recipeID, err := pathID(r, "id", "recipe")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	n, err := h.comments.DeleteByRecipe(r.Context(), shared.ActorFromContext(r.Context()), recipeID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Info("recipe comments deleted", slog.Int64("recipe_id", recipeID), slog.Int64("count", n))
	shared.RespondSuccess(w, r, http.StatusOK, "All comments deleted successfully", nil)
}

// DeleteByUser handles DELETE /api/comments/user/{id}.
func (h *CommentHandler) DeleteByUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, err := pathID(r, "id", "user")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	n, err := h.comments.DeleteByUser(r.Context(), shared.ActorFromContext(r.Context()), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Info("user comments deleted", slog.Int64("user_id", userID), slog.Int64("count", n))
	shared.RespondSuccess(w, r, http.StatusOK, "All user comments deleted successfully", nil)
}
