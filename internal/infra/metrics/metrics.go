package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	Registry *prometheus.Registry

	StoreOpDuration *prometheus.HistogramVec
	StoreErrors     *prometheus.CounterVec
	Resolutions     *prometheus.CounterVec
	Submissions     *prometheus.CounterVec
}

// New creates all metrics on a private registry, so several instances can
// coexist in one process (tests, CLI).
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		Registry: registry,
		StoreOpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "addrcard_store_operation_duration_ms",
			Help:    "Latency of record store operations in milliseconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100},
		}, []string{"driver", "op"}),
		StoreErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "addrcard_store_errors_total",
			Help: "Record store operations that failed with an I/O error",
		}, []string{"driver", "op"}),
		Resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "addrcard_payload_resolutions_total",
			Help: "Stored record classifications by status",
		}, []string{"status"}),
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "addrcard_address_submissions_total",
			Help: "Address submissions by outcome",
		}, []string{"outcome"}),
	}
}

// ObserveStoreOp records the latency of one store operation
func (m *Metrics) ObserveStoreOp(driver, op string, millis float64, failed bool) {
	m.StoreOpDuration.WithLabelValues(driver, op).Observe(millis)
	if failed {
		m.StoreErrors.WithLabelValues(driver, op).Inc()
	}
}

// IncResolution counts one payload classification
func (m *Metrics) IncResolution(status string) {
	m.Resolutions.WithLabelValues(status).Inc()
}

// IncSubmission counts one submit outcome ("saved", "invalid", "failed")
func (m *Metrics) IncSubmission(outcome string) {
	m.Submissions.WithLabelValues(outcome).Inc()
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
