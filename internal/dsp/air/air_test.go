package air

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProtector_LeavesLowMidUntouched(t *testing.T) {
	var p = New(12000, 48000)
	var maxDiff = 0.0
	for i := 0; i < 4096; i++ {
		var x = 0.3 * math.Sin(2*math.Pi*200*float64(i)/48000)
		var y = p.Process(x)
		if i > 1024 {
			maxDiff = math.Max(maxDiff, math.Abs(x-y))
		}
	}
	assert.Less(t, maxDiff, 0.05)
}

func TestProtector_ClipsExtremeHighs(t *testing.T) {
	var p = New(12000, 48000)
	p.SetThreshold(0.5)
	var maxAbs = 0.0
	for i := 0; i < 4096; i++ {
		var x = 5.0 * math.Sin(2*math.Pi*15000*float64(i)/48000)
		var y = p.Process(x)
		maxAbs = math.Max(maxAbs, math.Abs(y))
	}
	assert.Less(t, maxAbs, 5.0, "soft-clipped high band should never reach the unclipped amplitude")
}

func TestProtector_BypassWhenDisabled(t *testing.T) {
	var p = New(12000, 48000)
	p.SetEnabled(false)
	assert.Equal(t, 0.5, p.Process(0.5))
}

func TestProtector_ThresholdClamped(t *testing.T) {
	var p = New(12000, 48000)
	p.SetThreshold(10)
	assert.Equal(t, 1.0, p.threshold)
	p.SetThreshold(0.1)
	assert.Equal(t, 0.5, p.threshold)
}
