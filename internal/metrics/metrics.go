// Package metrics holds the Prometheus collectors for split calculations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Result labels for SplitCalculationsTotal.
const (
	ResultOK      = "ok"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

// SplitMetrics groups the collectors recorded by the split service.
// A nil *SplitMetrics is valid and records nothing.
type SplitMetrics struct {
	// CalculationsTotal counts calculations by split mode and outcome.
	CalculationsTotal *prometheus.CounterVec
	// Participants observes the number of participants per calculated bill.
	Participants prometheus.Histogram
	// ExportsTotal counts generated text summaries.
	ExportsTotal prometheus.Counter
}

// NewSplitMetrics creates the split collectors and registers them on reg.
// It panics if registration fails, like prometheus.MustRegister.
func NewSplitMetrics(namespace string, reg prometheus.Registerer) *SplitMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &SplitMetrics{
		CalculationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "split_calculations_total",
			Help:      "Count of bill split calculations by mode and result.",
		}, []string{"mode", "result"}),
		Participants: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "split_participants",
			Help:      "Number of participants per calculated bill.",
			Buckets:   []float64{2, 3, 4, 5, 6, 8, 10, 15, 20},
		}),
		ExportsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "split_exports_total",
			Help:      "Count of plain-text split summaries generated.",
		}),
	}

	reg.MustRegister(m.CalculationsTotal, m.Participants, m.ExportsTotal)
	return m
}

// ObserveCalculation records one calculation attempt.
func (m *SplitMetrics) ObserveCalculation(mode, result string, participants int) {
	if m == nil {
		return
	}
	m.CalculationsTotal.WithLabelValues(mode, result).Inc()
	if result == ResultOK {
		m.Participants.Observe(float64(participants))
	}
}

// ObserveExport records one generated text summary.
func (m *SplitMetrics) ObserveExport() {
	if m == nil {
		return
	}
	m.ExportsTotal.Inc()
}
