package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSplitMetrics("billsplit", reg)

	m.ObserveCalculation("equal", ResultOK, 3)
	m.ObserveCalculation("weighted", ResultOK, 2)
	m.ObserveCalculation("weighted", ResultError, 2)
	m.ObserveExport()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CalculationsTotal.WithLabelValues("equal", ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CalculationsTotal.WithLabelValues("weighted", ResultError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ExportsTotal))

	// Failed calculations are not observed in the participants histogram.
	families, err := reg.Gather()
	require.NoError(t, err)

	var samples uint64
	for _, mf := range families {
		if mf.GetName() == "billsplit_split_participants" {
			samples = mf.GetMetric()[0].GetHistogram().GetSampleCount()
		}
	}
	assert.Equal(t, uint64(2), samples)
}

func TestSplitMetrics_NilIsNoop(t *testing.T) {
	var m *SplitMetrics
	assert.NotPanics(t, func() {
		m.ObserveCalculation("equal", ResultOK, 2)
		m.ObserveExport()
	})
}
