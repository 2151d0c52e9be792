package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application-level Prometheus metrics.
type Metrics struct {
	Registrations   *prometheus.CounterVec
	Lookups         *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New creates and registers all application metrics.
func New() *Metrics {
	return &Metrics{
		Registrations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "visitorid_registrations_total",
			Help: "Registration attempts by outcome",
		}, []string{"outcome"}), // outcome: "confirmed", "invalid", "ledger_error"

		Lookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "visitorid_lookups_total",
			Help: "Record lookups by key type and result",
		}, []string{"key", "result"}), // key: "address", "passport", "status"

		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "visitorid_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

// IncrementRegistration records a registration outcome.
func (m *Metrics) IncrementRegistration(outcome string) {
	if m != nil {
		m.Registrations.WithLabelValues(outcome).Inc()
	}
}

// IncrementLookup records a lookup by key type and result.
func (m *Metrics) IncrementLookup(key, result string) {
	if m != nil {
		m.Lookups.WithLabelValues(key, result).Inc()
	}
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(route, status string, d time.Duration) {
	if m != nil {
		m.RequestDuration.WithLabelValues(route, status).Observe(d.Seconds())
	}
}
