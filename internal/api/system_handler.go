package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/AmarWhoo/cookboxd/internal/api/shared"
	"github.com/AmarWhoo/cookboxd/internal/platform/logger"
	"github.com/AmarWhoo/cookboxd/internal/redact"
)

const healthCheckTimeout = 2 * time.Second

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// SystemHandler serves the API info and health endpoints.
type SystemHandler struct {
	db      Pinger
	version string
	logger  *slog.Logger
}

// NewSystemHandler creates a SystemHandler. db may be nil, in which case the
// health check only reports that the process is serving.
func NewSystemHandler(db Pinger, version string, logger *slog.Logger) *SystemHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SystemHandler")
	}
	return &SystemHandler{
		db:      db,
		version: version,
		logger:  logger.With(slog.String("component", "system_handler")),
	}
}

// Info handles GET /.
func (h *SystemHandler) Info(w http.ResponseWriter, r *http.Request) {
	shared.RespondSuccess(w, r, http.StatusOK, "Cookboxd API", APIInfo{
		Name:    "cookboxd",
		Version: h.version,
		Endpoints: []string{
			"/api/auth",
			"/api/users",
			"/api/categories",
			"/api/recipes",
			"/api/ingredients",
			"/api/comments",
		},
	})
}

// Health handles GET /health.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			logger.FromContextOrDefault(r.Context(), h.logger).Error("health check failed",
				"error", redact.Error(err))
			shared.RespondWithError(w, r, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
	}
	shared.RespondSuccess(w, r, http.StatusOK, "OK", nil)
}
