package api

import (
	"log/slog"
	"net/http"

	"github.com/AmarWhoo/cookboxd/internal/api/shared"
	"github.com/AmarWhoo/cookboxd/internal/platform/logger"
	"github.com/AmarWhoo/cookboxd/internal/service"
)

// UserHandler handles user account requests.
type UserHandler struct {
	users  service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UserHandler")
	}

	return &UserHandler{
		users:  users,
		logger: logger.With(slog.String("component", "user_handler")),
	}
}

// List handles GET /api/users (admin only).
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context(), shared.ActorFromContext(r.Context()))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, "", users)
}

// Get handles GET /api/users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "user")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, "", user)
}

// Update handles PUT /api/users/{id}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "user")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req UpdateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.users.Update(r.Context(), shared.ActorFromContext(r.Context()), id, req.update())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, "User updated successfully", user)
}

// ChangePassword handles POST /api/users/{id}/password.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := pathID(r, "id", "user")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req ChangePasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	actor := shared.ActorFromContext(r.Context())
	if err := h.users.ChangePassword(r.Context(), actor, id, req.CurrentPassword, req.NewPassword); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Info("password changed", slog.Int64("user_id", id), slog.Int64("actor_id", actor.UserID))
	shared.RespondSuccess(w, r, http.StatusOK, "Password changed successfully", nil)
}

// Delete handles DELETE /api/users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := pathID(r, "id", "user")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	actor := shared.ActorFromContext(r.Context())
	if err := h.users.Delete(r.Context(), actor, id); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Info("user deleted", slog.Int64("user_id", id), slog.Int64("actor_id", actor.UserID))
	shared.RespondSuccess(w, r, http.StatusOK, "User deleted successfully", nil)
}
