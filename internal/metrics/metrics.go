// Package metrics exposes the renderer's Prometheus collectors. A nil
// *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Request outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
	OutcomeFallback = "fallback"
	OutcomeCached   = "cached"
)

type Metrics struct {
	registry           *prometheus.Registry
	requests           *prometheus.CounterVec
	renderDuration     *prometheus.HistogramVec
	cacheHits          prometheus.Counter
	previewUnavailable prometheus.Counter
}

// New registers the renderer collectors, plus Go and process collectors, on a
// fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "renderer_requests_total",
			Help: "Render and preview requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		renderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "renderer_render_duration_seconds",
			Help:    "Time spent producing a render response.",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 20, 30},
		}, []string{"source"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "renderer_cache_hits_total",
			Help: "Render responses served from the cache.",
		}),
		previewUnavailable: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "renderer_preview_unavailable_total",
			Help: "Responses returned with an empty PDF data URI.",
		}),
	}
	reg.MustRegister(
		m.requests, m.renderDuration, m.cacheHits, m.previewUnavailable,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObserveRequest(endpoint, outcome string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(endpoint, outcome).Inc()
}

// ObserveRender records how long a response took; source is "latexmk" or "preview".
func (m *Metrics) ObserveRender(source string, d time.Duration) {
	if m == nil {
		return
	}
	m.renderDuration.WithLabelValues(source).Observe(d.Seconds())
}

func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

func (m *Metrics) PreviewUnavailable() {
	if m == nil {
		return
	}
	m.previewUnavailable.Inc()
}

// Gatherer returns the registry backing these collectors.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	if m == nil {
		return prometheus.NewRegistry()
	}
	return m.registry
}

// Handler serves the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Gatherer(), promhttp.HandlerOpts{})
}
