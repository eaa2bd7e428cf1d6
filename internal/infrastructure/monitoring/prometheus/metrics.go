// Package prometheus wires LeaseIQ's operational metrics onto a dedicated
// Prometheus registry so that tests can register collectors without colliding
// with the global default registry.
package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Default histogram buckets.
var (
	DefaultHTTPDurationBuckets     = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultAnalysisDurationBuckets = []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10, 30}
)

// Metrics holds every metric the service emits.  One instance is created at
// startup and injected into the layers that observe it.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP layer
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPActiveRequests  prometheus.Gauge

	// Pipeline
	UploadsTotal     *prometheus.CounterVec
	AnalysesTotal    *prometheus.CounterVec
	AnalysisDuration *prometheus.HistogramVec

	// Infrastructure
	CacheHitsTotal       prometheus.Counter
	CacheMissesTotal     prometheus.Counter
	EventsPublishedTotal *prometheus.CounterVec
	EventsConsumedTotal  *prometheus.CounterVec
}

// NewMetrics registers all service metrics under the given namespace on a
// fresh registry (plus the standard process and Go runtime collectors) and
// returns the populated Metrics.
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)

	m := &Metrics{
		registry: reg,

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests served.",
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   DefaultHTTPDurationBuckets,
		}, []string{"method", "path"}),

		HTTPActiveRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_active_requests",
			Help:      "In-flight HTTP requests.",
		}),

		UploadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Uploaded lease documents by outcome.",
		}, []string{"status"}),

		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Completed lease analyses by outcome.",
		}, []string{"status"}),

		AnalysisDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "End-to-end lease analysis duration.",
			Buckets:   DefaultAnalysisDurationBuckets,
		}, []string{"trigger"}),

		CacheHitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_cache_hits_total",
			Help:      "Report cache hits.",
		}),

		CacheMissesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_cache_misses_total",
			Help:      "Report cache misses.",
		}),

		EventsPublishedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Kafka events published by topic.",
		}, []string{"topic"}),

		EventsConsumedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_consumed_total",
			Help:      "Kafka events consumed by topic and outcome.",
		}, []string{"topic", "status"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPActiveRequests,
		m.UploadsTotal,
		m.AnalysesTotal,
		m.AnalysisDuration,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.EventsPublishedTotal,
		m.EventsConsumedTotal,
	)

	return m
}

// Handler returns the /metrics endpoint handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for callers that need to register
// additional collectors (tests, future subsystems).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
