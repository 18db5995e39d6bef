package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/AmarWhoo/cookboxd/internal/api/shared"
	"github.com/AmarWhoo/cookboxd/internal/domain"
	"github.com/AmarWhoo/cookboxd/internal/platform/logger"
	"github.com/AmarWhoo/cookboxd/internal/platform/metrics"
	"github.com/AmarWhoo/cookboxd/internal/redact"
	"github.com/AmarWhoo/cookboxd/internal/service/auth"
)

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
	revoker    auth.TokenRevoker
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
// A nil revoker disables the revocation check.
func NewAuthMiddleware(jwtService auth.JWTService, revoker auth.TokenRevoker) *AuthMiddleware {
	if revoker == nil {
		revoker = auth.NoopRevoker{}
	}
	return &AuthMiddleware{
		jwtService: jwtService,
		revoker:    revoker,
	}
}

// Authenticate validates the bearer token from the Authorization header and
// stores its claims in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenNotYetValid):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				logger.FromContext(r.Context()).Error("failed to validate token",
					"error", redact.Error(err))
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		if claims.ID != "" {
			revoked, err := m.revoker.IsRevoked(r.Context(), claims.ID)
			if err != nil {
				logger.FromContext(r.Context()).Error("failed to check token revocation",
					"error", redact.Error(err))
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
				return
			}
			if revoked {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token has been revoked")
				return
			}
		}

		log := logger.FromContext(r.Context()).With("user_id", claims.UserID)
		ctx := logger.WithLogger(shared.WithClaims(r.Context(), claims), log)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole rejects requests whose actor does not hold role. It must run
// after Authenticate.
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return RequireAnyRole(role)
}

// RequireAnyRole rejects requests whose actor holds none of roles: 401 when
// the request is unauthenticated, 403 otherwise.
func RequireAnyRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := shared.ActorFromContext(r.Context())
			if !actor.Authenticated() {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
				return
			}
			if !actor.HasRole(roles...) {
				metrics.RecordDenied("role")
				shared.RespondWithError(w, r, http.StatusForbidden, "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
