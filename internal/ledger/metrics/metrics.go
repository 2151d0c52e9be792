package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for ledger calls.
type Metrics struct {
	// Call latency by contract or node method
	CallLatency *prometheus.HistogramVec

	// Classified failures by op and reason
	Failures *prometheus.CounterVec

	// Transactions mined by receipt status
	Transactions *prometheus.CounterVec
}

// New creates a new Metrics instance registered with the default registry.
func New() *Metrics {
	return &Metrics{
		CallLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "visitorid_ledger_call_duration_seconds",
			Help:    "Duration of ledger calls by method",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"method"}),

		Failures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "visitorid_ledger_failures_total",
			Help: "Ledger failures by operation class and reason",
		}, []string{"op", "reason"}), // op: "connect", "read", "write"

		Transactions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "visitorid_ledger_transactions_total",
			Help: "Mined registration transactions by receipt status",
		}, []string{"status"}),
	}
}

// ObserveCall records the duration of a single ledger call.
func (m *Metrics) ObserveCall(method string, d time.Duration) {
	if m != nil {
		m.CallLatency.WithLabelValues(method).Observe(d.Seconds())
	}
}

// IncrementFailure records a classified failure.
func (m *Metrics) IncrementFailure(op, reason string) {
	if m != nil {
		m.Failures.WithLabelValues(op, reason).Inc()
	}
}

// IncrementTransaction records a mined transaction.
func (m *Metrics) IncrementTransaction(status string) {
	if m != nil {
		m.Transactions.WithLabelValues(status).Inc()
	}
}
