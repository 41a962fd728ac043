package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhaseCorrelator_InPhaseIsPositiveOne(t *testing.T) {
	var p = NewPhaseCorrelator(100)
	var complete bool
	for i := 0; i < 100; i++ {
		complete = p.Accumulate(0.5, 0.5)
	}
	assert.True(t, complete)
	assert.InDelta(t, 1.0, p.Correlation(), 1e-9)
}

func TestPhaseCorrelator_OutOfPhaseIsNegativeOne(t *testing.T) {
	var p = NewPhaseCorrelator(100)
	for i := 0; i < 100; i++ {
		p.Accumulate(0.5, -0.5)
	}
	assert.InDelta(t, -1.0, p.Correlation(), 1e-9)
}

func TestPhaseCorrelator_SilenceIsZeroSentinel(t *testing.T) {
	var p = NewPhaseCorrelator(100)
	for i := 0; i < 100; i++ {
		p.Accumulate(0, 0)
	}
	assert.Equal(t, 0.0, p.Correlation())
}

func TestPhaseCorrelator_WindowNotYetCompleteReportsFalse(t *testing.T) {
	var p = NewPhaseCorrelator(100)
	for i := 0; i < 50; i++ {
		assert.False(t, p.Accumulate(0.5, 0.5))
	}
}
