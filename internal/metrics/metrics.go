package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	authEvents      *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	auditDropped    prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		authEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bookmylook_auth",
				Name:      "events_total",
				Help:      "Authentication flow outcomes",
			},
			[]string{"flow", "outcome"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "bookmylook_auth",
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests",
				Buckets:   []float64{.005, .01, .05, .1, .25, .5, 1, 2},
			},
			[]string{"method", "route", "status"},
		),
		auditDropped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "bookmylook_auth",
				Name:      "audit_events_dropped_total",
				Help:      "Audit events dropped because the queue was full or closed",
			},
		),
	}

	reg.MustRegister(
		m.authEvents,
		m.requestDuration,
		m.auditDropped,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) AuthEvent(flow, outcome string) {
	m.authEvents.WithLabelValues(flow, outcome).Inc()
}

func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.requestDuration.
		WithLabelValues(method, route, strconv.Itoa(status)).
		Observe(d.Seconds())
}

func (m *Metrics) AuditDropped() {
	m.auditDropped.Inc()
}

func (m *Metrics) AuthEvents() *prometheus.CounterVec {
	return m.authEvents
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
