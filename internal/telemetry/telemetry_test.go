package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestStepsTotalIncrements(t *testing.T) {
	before := testutil.ToFloat64(StepsTotal)
	StepsTotal.Inc()
	after := testutil.ToFloat64(StepsTotal)
	assert.Equal(t, before+1, after)
}

func TestTreeNodesGaugeSettable(t *testing.T) {
	TreeNodes.Set(1234)
	assert.Equal(t, float64(1234), testutil.ToFloat64(TreeNodes))
}

func TestAdaptiveDtGaugeSettable(t *testing.T) {
	AdaptiveDt.Set(0.005)
	assert.Equal(t, 0.005, testutil.ToFloat64(AdaptiveDt))
}

func TestSnapshotWritesTotalLabeled(t *testing.T) {
	SnapshotWritesTotal.WithLabelValues("success").Inc()
	assert.Equal(t, float64(1), testutil.ToFloat64(SnapshotWritesTotal.WithLabelValues("success")))
}

func TestStepDurationObserve(t *testing.T) {
	assert.NotPanics(t, func() {
		StepDuration.WithLabelValues("drift").Observe(0.002)
	})
}
