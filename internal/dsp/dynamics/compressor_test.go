package dynamics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompressor_NoReductionBelowThreshold(t *testing.T) {
	var c = NewCompressor(0.01, 0.1, 48000)
	c.Threshold = -6
	c.Ratio = 4

	var y float64
	for i := 0; i < 96000; i++ {
		y = c.Process(0.1) // well below -6dB
	}
	assert.InDelta(t, 0.1, y, 1e-6)
}

func TestCompressor_ReducesAboveThreshold(t *testing.T) {
	var c = NewCompressor(0.001, 0.05, 48000)
	c.Threshold = -20
	c.Ratio = 4

	var y float64
	for i := 0; i < 48000; i++ {
		y = c.Process(1.0)
	}
	assert.Less(t, math.Abs(y), 1.0)
	assert.Less(t, c.GainReductionDB(), 0.0)
}

func TestCompressor_ResetZeroesEnvelope(t *testing.T) {
	var c = NewCompressor(0.001, 0.05, 48000)
	c.Threshold = -40
	for i := 0; i < 1000; i++ {
		c.Process(1.0)
	}
	c.Reset()
	assert.Equal(t, 0.0, c.envelope)
}
