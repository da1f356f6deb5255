package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Render modes used as label values.
const (
	ModeMarkup = "markup"
	ModeText   = "text"
)

// Metrics records render and session activity.
type Metrics struct {
	registry *prometheus.Registry

	renders  *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
	segments prometheus.Histogram
	sessions *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with Go runtime
// collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "typeset_renders_total",
				Help: "Total number of rendered trees",
			},
			[]string{"mode"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "typeset_render_failures_total",
				Help: "Total number of renders that failed",
			},
			[]string{"mode"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "typeset_render_duration_seconds",
				Help:    "Duration of renders",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"mode"},
		),
		segments: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "typeset_render_segments",
				Help:    "Top-level chain length of rendered trees",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
		sessions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "typeset_session_operations_total",
				Help: "Total number of session operations",
			},
			[]string{"op"},
		),
	}
	m.registry.MustRegister(
		m.renders, m.failures, m.duration, m.segments, m.sessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRender records one render of a chain of n segments.
func (m *Metrics) ObserveRender(mode string, n int, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(mode).Inc()
	m.duration.WithLabelValues(mode).Observe(elapsed.Seconds())
	m.segments.Observe(float64(n))
	if err != nil {
		m.failures.WithLabelValues(mode).Inc()
	}
}

// ObserveSession counts one session operation, e.g. "load" or "save".
func (m *Metrics) ObserveSession(op string) {
	if m == nil {
		return
	}
	m.sessions.WithLabelValues(op).Inc()
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
