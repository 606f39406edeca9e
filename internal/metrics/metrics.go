// Package metrics defines the Prometheus collectors for the HTTP surface and
// the recipe generation pipeline, and exposes a scrape handler.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Generation sources
const (
	SourceProvider = "provider"
	SourceFallback = "fallback"
)

// Fallback reasons
const (
	ReasonProviderUnavailable = "provider_unavailable"
	ReasonMalformedResponse   = "malformed_response"
)

// Metrics holds all Prometheus collectors for the service.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	GenerationsTotal    *prometheus.CounterVec
	FallbacksTotal      *prometheus.CounterVec
	ProviderAttempts    *prometheus.CounterVec
	PersistFailures     prometheus.Counter
}

// New creates and registers all collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, route, and status.",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"method", "route"},
		),
		GenerationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recipe_generations_total",
				Help: "Recipe batches returned to callers by source (provider, fallback).",
			},
			[]string{"source"},
		),
		FallbacksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recipe_fallbacks_total",
				Help: "Fallback batches served by reason.",
			},
			[]string{"reason"},
		),
		ProviderAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "generation_provider_attempts_total",
				Help: "Calls to the generation provider by outcome (ok, retryable, failed).",
			},
			[]string{"outcome"},
		),
		PersistFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "recipe_persist_failures_total",
				Help: "Recipe rows that failed to write to the datastore.",
			},
		),
	}

	m.registry.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.GenerationsTotal,
		m.FallbacksTotal,
		m.ProviderAttempts,
		m.PersistFailures,
	)

	return m
}

// Handler returns the scrape endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
