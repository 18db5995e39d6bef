package middleware

import (
	"context"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/AmarWhoo/cookboxd/internal/api/shared"
	"github.com/AmarWhoo/cookboxd/internal/platform/logger"
	"github.com/AmarWhoo/cookboxd/internal/platform/metrics"
	"github.com/AmarWhoo/cookboxd/internal/redact"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// LoginLimiter counts login attempts per key within a window.
type LoginLimiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
	Reset(ctx context.Context, key string) error
}

// LoginRateLimit limits login attempts per client IP. A successful login
// clears the counter. When the limiter itself fails the attempt is let
// through and the failure logged.
func LoginRateLimit(limiter LoginLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromContext(r.Context())
			key := clientIP(r)

			allowed, retryAfter, err := limiter.Allow(r.Context(), key)
			if err != nil {
				log.Warn("login rate limiter unavailable", "error", redact.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				metrics.RecordLogin(metrics.LoginRateLimited)
				w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(retryAfter)))
				shared.RespondWithErrorAndLog(w, r, http.StatusTooManyRequests,
					"Too many login attempts. Please try again later.", nil)
				return
			}

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			if ww.Status() == http.StatusOK {
				if err := limiter.Reset(r.Context(), key); err != nil {
					log.Warn("failed to reset login attempts", "error", redact.Error(err))
				}
			}
		})
	}
}

func retryAfterSeconds(d time.Duration) int {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}

// clientIP returns the request's remote host. chi's RealIP middleware has
// already replaced RemoteAddr when proxy headers are present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
