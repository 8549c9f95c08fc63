// Package metrics owns the Prometheus collectors of the service.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "heavyrent"

type Metrics struct {
	registry        *prometheus.Registry
	bookingsCreated prometheus.Counter
	bookingRejected *prometheus.CounterVec
	payments        *prometheus.CounterVec
	transitions     *prometheus.CounterVec
	jobRuns         *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		bookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "Bookings successfully created.",
		}),
		bookingRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_rejections_total",
			Help:      "Booking attempts refused, by reason.",
		}, []string{"reason"}),
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_total",
			Help:      "Bank transfer payment events, by outcome.",
		}, []string{"outcome"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_transitions_total",
			Help:      "Booking status transitions, by target status.",
		}, []string{"status"}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "job_runs_total",
			Help:      "Scheduled job executions.",
		}, []string{"job", "result"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "code"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.bookingsCreated, m.bookingRejected, m.payments, m.transitions, m.jobRuns, m.httpDuration,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) BookingCreated() {
	if m == nil {
		return
	}
	m.bookingsCreated.Inc()
}

// BookingRejected takes "overlap", "unavailable" or "validation".
func (m *Metrics) BookingRejected(reason string) {
	if m == nil {
		return
	}
	m.bookingRejected.WithLabelValues(reason).Inc()
}

// Payment takes "submitted", "duplicate", "mismatch", "confirmed" or "rejected".
func (m *Metrics) Payment(outcome string) {
	if m == nil {
		return
	}
	m.payments.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Transition(status string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.transitions.WithLabelValues(status).Add(float64(n))
}

func (m *Metrics) JobRun(job string, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.jobRuns.WithLabelValues(job, result).Inc()
}

func (m *Metrics) ObserveHTTP(method, route string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(method, route, strconv.Itoa(code)).Observe(elapsed.Seconds())
}
