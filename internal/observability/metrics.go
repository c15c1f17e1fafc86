package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks page-data server request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "app_imbecis_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// ActiveConnections tracks in-flight page-data requests
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_imbecis_active_connections",
			Help: "Number of active connections",
		},
	)

	// APIRequests counts backend calls by operation and outcome kind
	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_imbecis_api_requests_total",
			Help: "Number of backend API calls by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	// APIRequestDuration tracks backend call latency
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "app_imbecis_api_request_duration_seconds",
			Help:    "Duration of backend API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// SessionTokenUpdates counts csrf-token captures from responses
	SessionTokenUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_imbecis_session_token_updates_total",
			Help: "Number of session token updates by source operation",
		},
		[]string{"operation", "present"},
	)

	// NotificationsPushed counts user-facing notifications by type
	NotificationsPushed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_imbecis_notifications_pushed_total",
			Help: "Number of notifications pushed by type",
		},
		[]string{"type"},
	)

	// CircuitBreakerState is 0 closed, 1 half-open, 2 open
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_imbecis_circuit_breaker_state",
			Help: "Backend circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)

	// CircuitBreakerTransitions counts state transitions
	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_imbecis_circuit_breaker_transitions_total",
			Help: "Number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// RateLimitRejections counts page-data requests refused by the limiter
	RateLimitRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "app_imbecis_rate_limit_rejections_total",
			Help: "Number of requests rejected by the rate limiter",
		},
	)
)
