package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can build as many as they like.
// Every method is safe on a nil receiver.
type Metrics struct {
	registry *prometheus.Registry

	bookingDecisions *prometheus.CounterVec
	absenceDays      prometheus.Counter
	httpDuration     *prometheus.HistogramVec
	httpRequests     *prometheus.CounterVec
}

func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		bookingDecisions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_decisions_total",
			Help:      "Booking requests by decision outcome (created or rejection code).",
		}, []string{"outcome"}),
		absenceDays: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "absence_days_blocked_total",
			Help:      "Calendar days blocked through the absence registrar.",
		}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

const OutcomeCreated = "created"

func (m *Metrics) ObserveDecision(outcome string) {
	if m == nil {
		return
	}
	m.bookingDecisions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveAbsenceDays(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.absenceDays.Add(float64(n))
}

func (m *Metrics) ObserveRequest(method, route, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
	m.httpRequests.WithLabelValues(method, route, status).Inc()
}
