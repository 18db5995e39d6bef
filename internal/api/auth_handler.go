package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/AmarWhoo/cookboxd/internal/api/shared"
	"github.com/AmarWhoo/cookboxd/internal/platform/logger"
	"github.com/AmarWhoo/cookboxd/internal/service"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	authService service.AuthService
	userService service.UserService
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	authService service.AuthService,
	userService service.UserService,
	logger *slog.Logger,
) *AuthHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AuthHandler")
	}

	return &AuthHandler{
		authService: authService,
		userService: userService,
		logger:      logger.With(slog.String("component", "auth_handler")),
	}
}

// decodeBody decodes the JSON request body into v, writing a 400 response
// and returning false when it cannot.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	err := shared.DecodeJSON(w, r, v)
	if err == nil {
		return true
	}
	if errors.Is(err, shared.ErrEmptyBody) {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Request body is required", err)
		return false
	}
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
	return false
}

// Register handles POST /api/auth/register and /api/users/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.authService.Register(r.Context(), req.input())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Info("user registered", slog.Int64("user_id", result.User.ID))
	shared.RespondSuccess(w, r, http.StatusCreated, "User registered successfully", result)
}

// Login handles POST /api/auth/login and /api/users/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.authService.Login(r.Context(), req.Identifier(), req.Password)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("user logged in", slog.Int64("user_id", result.User.ID))
	shared.RespondSuccess(w, r, http.StatusOK, "Login successful", result)
}

// Logout handles POST /api/auth/logout by revoking the presented token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := shared.ClaimsFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.authService.Logout(r.Context(), claims); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, "Logout successful", nil)
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	actor := shared.ActorFromContext(r.Context())
	if !actor.Authenticated() {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.userService.GetByID(r.Context(), actor.UserID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, "", user)
}
