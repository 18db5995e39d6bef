// Package metrics defines the Prometheus metrics exported by the API. All
// metrics register with the default registry when the package loads.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cookboxd"

// HTTPRequestsTotal counts handled requests.
// Labels:
//   - method: HTTP method
//   - route: chi route pattern (e.g. "/api/recipes/{id}"), never the raw path
//   - status: response status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests, by method, route and status.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration measures handler latency.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP request handling.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "rate_limited"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// EntitiesCreatedTotal counts created records.
// Label:
//   - entity: "user", "category", "recipe", "ingredient" or "comment"
var EntitiesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entities_created_total",
		Help:      "Total number of records created, by entity.",
	},
	[]string{"entity"},
)

// EntitiesDeletedTotal counts deleted records, cascades excluded.
var EntitiesDeletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entities_deleted_total",
		Help:      "Total number of records deleted directly, by entity.",
	},
	[]string{"entity"},
)

// AuthorizationDeniedTotal counts requests refused for lack of ownership or role.
var AuthorizationDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_denied_total",
		Help:      "Total number of operations refused by ownership or role checks.",
	},
	[]string{"operation"},
)

// Login results
const (
	LoginSuccess            = "success"
	LoginInvalidCredentials = "invalid_credentials"
	LoginRateLimited        = "rate_limited"
)

// RecordCreated increments the created counter for entity by n.
func RecordCreated(entity string, n int) {
	EntitiesCreatedTotal.WithLabelValues(entity).Add(float64(n))
}

// RecordDeleted increments the deleted counter for entity by n.
func RecordDeleted(entity string, n int64) {
	EntitiesDeletedTotal.WithLabelValues(entity).Add(float64(n))
}

// RecordDenied increments the authorization-denied counter for operation.
func RecordDenied(operation string) {
	AuthorizationDeniedTotal.WithLabelValues(operation).Inc()
}

// RecordLogin increments the login counter for result.
func RecordLogin(result string) {
	LoginAttemptsTotal.WithLabelValues(result).Inc()
}
