package audit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the audit write path.
type Metrics struct {
	Recorded            *prometheus.CounterVec
	Failures            prometheus.Counter
	CircuitDropped      prometheus.Counter
	CircuitBreakerState prometheus.Gauge
}

// NewMetrics registers the audit metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		Recorded: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "adequa_audit_records_total",
			Help: "Audit records persisted, by category",
		}, []string{"category"}),
		Failures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "adequa_audit_write_failures_total",
			Help: "Audit records that could not be persisted",
		}),
		CircuitDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "adequa_audit_circuit_dropped_total",
			Help: "Audit records dropped while the circuit breaker was open",
		}),
		CircuitBreakerState: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "adequa_audit_circuit_breaker_state",
			Help: "Audit store circuit breaker state (0=closed, 1=open)",
		}),
	}
}

func (m *Metrics) incRecorded(c Category) {
	if m == nil {
		return
	}
	m.Recorded.WithLabelValues(string(c)).Inc()
}

func (m *Metrics) incFailures() {
	if m == nil {
		return
	}
	m.Failures.Inc()
}

func (m *Metrics) incCircuitDropped() {
	if m == nil {
		return
	}
	m.CircuitDropped.Inc()
}

func (m *Metrics) setCircuitState(open bool) {
	if m == nil {
		return
	}
	if open {
		m.CircuitBreakerState.Set(1)
	} else {
		m.CircuitBreakerState.Set(0)
	}
}
