package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the API. Each instance owns its
// registry so tests can build as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorCount      *prometheus.CounterVec
	lifecycleEvents *prometheus.CounterVec
	policyRejects   *prometheus.CounterVec
}

// NewMetrics registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		requestCount: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "happyfarm_http_requests_total",
			Help: "HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "happyfarm_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"route", "method"}),
		errorCount: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "happyfarm_http_errors_total",
			Help: "Error responses by route, method and error code",
		}, []string{"route", "method", "code"}),
		lifecycleEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "happyfarm_animal_lifecycle_events_total",
			Help: "Successful animal lifecycle transitions by event and species",
		}, []string{"event", "species"}),
		policyRejects: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "happyfarm_animal_policy_rejections_total",
			Help: "Lifecycle operations rejected by the policy, by operation and reason",
		}, []string{"operation", "reason"}),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestCount.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	m.errorCount.WithLabelValues(route, method, code).Inc()
}

// RecordLifecycle counts a successful create/feed/groom/sacrifice.
func (m *Metrics) RecordLifecycle(event, species string) {
	if m == nil {
		return
	}
	m.lifecycleEvents.WithLabelValues(event, species).Inc()
}

// RecordPolicyRejection counts an operation refused by the lifecycle policy.
func (m *Metrics) RecordPolicyRejection(operation, reason string) {
	if m == nil {
		return
	}
	m.policyRejects.WithLabelValues(operation, reason).Inc()
}
