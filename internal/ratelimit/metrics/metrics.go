package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Checks      *prometheus.CounterVec
	Rejections  *prometheus.CounterVec
	StoreErrors prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		Checks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "adequa_ratelimit_checks_total",
			Help: "Total number of rate limit checks, by operation",
		}, []string{"operation"}),
		Rejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "adequa_ratelimit_rejections_total",
			Help: "Total number of calls rejected by the rate limiter, by operation",
		}, []string{"operation"}),
		StoreErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "adequa_ratelimit_store_errors_total",
			Help: "Counter store failures; the call fails with an internal error",
		}),
	}
}

func (m *Metrics) IncrementChecks(operation string) {
	if m == nil {
		return
	}
	m.Checks.WithLabelValues(operation).Inc()
}

func (m *Metrics) IncrementRejections(operation string) {
	if m == nil {
		return
	}
	m.Rejections.WithLabelValues(operation).Inc()
}

func (m *Metrics) IncrementStoreErrors() {
	if m == nil {
		return
	}
	m.StoreErrors.Inc()
}
