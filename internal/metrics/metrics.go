package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// Backend request metrics
	backendRequestsTotal    *prometheus.CounterVec
	backendRequestDuration  *prometheus.HistogramVec
	backendRequestsInFlight prometheus.Gauge

	// Business metrics
	storeLoads   *prometheus.CounterVec
	patternTests *prometheus.CounterVec
	diagnostics  *prometheus.CounterVec
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		backendRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backend_requests_total",
				Help: "Total number of backend API requests",
			},
			[]string{"method", "path", "status"},
		),

		backendRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "backend_request_duration_seconds",
				Help:    "Backend API request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		backendRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "backend_requests_in_flight",
				Help: "Number of backend API requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.backendRequestsTotal)
	reg.MustRegister(r.backendRequestDuration)
	reg.MustRegister(r.backendRequestsInFlight)

	// Business metrics
	r.storeLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tbot_store_loads_total",
			Help: "Total number of store resource loads",
		},
		[]string{"resource", "status"},
	)
	r.patternTests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tbot_pattern_tests_total",
			Help: "Total number of pattern test runs",
		},
		[]string{"status"},
	)
	r.diagnostics = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tbot_diagnostics_total",
			Help: "Total number of diagnostic operations",
		},
		[]string{"op", "status"},
	)

	reg.MustRegister(r.storeLoads)
	reg.MustRegister(r.patternTests)
	reg.MustRegister(r.diagnostics)

	return r
}

// RecordRequest records metrics for one backend request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.backendRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.backendRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.backendRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.backendRequestsInFlight.Dec()
}

// RecordStoreLoad records one store resource load.
func (r *Registry) RecordStoreLoad(resource, status string) {
	r.storeLoads.WithLabelValues(resource, status).Inc()
}

// RecordPatternTest records one pattern test run.
func (r *Registry) RecordPatternTest(status string) {
	r.patternTests.WithLabelValues(status).Inc()
}

// RecordDiagnostic records one diagnostic operation.
func (r *Registry) RecordDiagnostic(op, status string) {
	r.diagnostics.WithLabelValues(op, status).Inc()
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	case status <= 0:
		return "error"
	default:
		return "1xx"
	}
}
