package crossover

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTwoWay_LowPlusHighRecoversInputMagnitude(t *testing.T) {
	var c = NewTwoWay(1000, 48000)

	var maxDiff = 0.0
	for i := 0; i < 4096; i++ {
		var x = math.Sin(2 * math.Pi * 1000 * float64(i) / 48000)
		var low, high = c.Process(x)
		var sum = low + high
		if i > 512 {
			maxDiff = math.Max(maxDiff, math.Abs(math.Abs(sum)-math.Abs(x)))
		}
	}
	assert.Less(t, maxDiff, 0.05, "LR4 low+high should recombine to a flat (allpass) magnitude response")
}

func TestThreeWay_SplitsIntoThreeBands(t *testing.T) {
	var c = NewThreeWay(250, 2000, 48000)
	for i := 0; i < 1024; i++ {
		var low, mid, high = c.Process(math.Sin(2 * math.Pi * 100 * float64(i) / 48000))
		assert.False(t, math.IsNaN(low) || math.IsNaN(mid) || math.IsNaN(high))
	}
}

func TestTwoWay_ResetClearsState(t *testing.T) {
	var c = NewTwoWay(500, 48000)
	for i := 0; i < 100; i++ {
		c.Process(1.0)
	}
	c.Reset()
	var low, high = c.Process(0)
	assert.Equal(t, 0.0, low)
	assert.Equal(t, 0.0, high)
}
