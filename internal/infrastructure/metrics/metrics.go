// Package metrics exposes Prometheus collectors for the aggregation service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all collectors registered for the service.
type Metrics struct {
	SearchesTotal  prometheus.Counter
	CacheHitsTotal prometheus.Counter

	ProviderErrors     *prometheus.CounterVec
	ProviderRetries    *prometheus.CounterVec
	ProviderLatency    *prometheus.HistogramVec
	CircuitTransitions *prometheus.CounterVec

	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestsTotal   *prometheus.CounterVec

	Registry *prometheus.Registry
}

// New creates all collectors and registers them on the given registry.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		SearchesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "flight_searches_total",
			Help: "Total number of incoming flight search requests",
		}),
		CacheHitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "flight_cache_hits_total",
			Help: "Number of cache hits for search results",
		}),
		ProviderErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "provider_errors_total",
			Help: "Errors returned by each supplier",
		}, []string{"provider"},
		),
		ProviderRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "provider_retries_total",
			Help: "Retry attempts made against each supplier",
		}, []string{"provider"},
		),
		ProviderLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "provider_latency_seconds",
				Help:    "Latency between aggregator and supplier",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"},
		),
		CircuitTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "circuit_transitions_total",
			Help: "Circuit breaker state transitions per supplier",
		}, []string{"provider", "state"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latencies",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		Registry: reg,
	}

	reg.MustRegister(
		m.SearchesTotal,
		m.CacheHitsTotal,
		m.ProviderErrors,
		m.ProviderRetries,
		m.ProviderLatency,
		m.CircuitTransitions,
		m.HTTPRequestDuration,
		m.HTTPRequestsTotal,
	)

	return m
}

// Nop returns a Metrics instance backed by a throwaway registry.
// Useful in tests where collector output is irrelevant.
func Nop() *Metrics {
	return New(prometheus.NewRegistry())
}

func (m *Metrics) IncSearches()  { m.SearchesTotal.Inc() }
func (m *Metrics) IncCacheHits() { m.CacheHitsTotal.Inc() }

func (m *Metrics) IncProviderFailure(provider string) {
	m.ProviderErrors.WithLabelValues(provider).Inc()
}

func (m *Metrics) IncProviderRetry(provider string) {
	m.ProviderRetries.WithLabelValues(provider).Inc()
}

func (m *Metrics) ObserveProviderLatency(provider string, seconds float64) {
	m.ProviderLatency.WithLabelValues(provider).Observe(seconds)
}

func (m *Metrics) IncCircuitTransition(provider, state string) {
	m.CircuitTransitions.WithLabelValues(provider, state).Inc()
}

func (m *Metrics) ObserveHTTPRequestDuration(method, path, status string, seconds float64) {
	m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(seconds)
}

func (m *Metrics) IncHTTPRequestsTotal(method, path, status string) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
