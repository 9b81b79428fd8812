package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker/v2"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidtube_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vidtube_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	ToggleTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidtube_toggle_total",
			Help: "Toggle operations by edge kind and outcome",
		},
		[]string{"kind", "outcome"}, // outcome: created, removed
	)

	MediaOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidtube_media_operations_total",
			Help: "Media store operations by result",
		},
		[]string{"operation", "result"},
	)

	CompensationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vidtube_compensation_failures_total",
			Help: "Uploaded assets that could not be deleted after a failed insert",
		},
	)

	FlowBlocked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidtube_flow_blocked_total",
			Help: "Requests rejected by flow control",
		},
		[]string{"resource"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vidtube_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

func BreakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
