package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the assessment-level Prometheus metrics.
type Metrics struct {
	AnswerSetsSaved  prometheus.Counter
	TasksDerived     *prometheus.CounterVec
	ComplianceScore  prometheus.Histogram
	CatalogFallbacks prometheus.Counter
}

// New creates and registers the assessment metrics.
func New() *Metrics {
	return &Metrics{
		AnswerSetsSaved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "adequa_answer_sets_saved_total",
			Help: "Total number of answer sets saved",
		}),
		TasksDerived: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "adequa_tasks_derived_total",
			Help: "Remediation tasks inserted, by derivation mode",
		}, []string{"mode"}),
		ComplianceScore: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "adequa_compliance_score",
			Help:    "Distribution of computed compliance scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		}),
		CatalogFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "adequa_catalog_fallbacks_total",
			Help: "Catalog requests served from the base catalog after a profile lookup failure",
		}),
	}
}

// IncrementAnswerSetsSaved records one saved answer set and its score.
func (m *Metrics) IncrementAnswerSetsSaved(score int) {
	if m == nil {
		return
	}
	m.AnswerSetsSaved.Inc()
	m.ComplianceScore.Observe(float64(score))
}

// AddTasksDerived records tasks inserted by one derivation.
func (m *Metrics) AddTasksDerived(mode string, n int) {
	if m == nil {
		return
	}
	m.TasksDerived.WithLabelValues(mode).Add(float64(n))
}

// IncrementCatalogFallbacks records a base-catalog fallback.
func (m *Metrics) IncrementCatalogFallbacks() {
	if m == nil {
		return
	}
	m.CatalogFallbacks.Inc()
}
