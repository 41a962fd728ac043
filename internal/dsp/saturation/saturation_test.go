package saturation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaturator_ZeroMixIsTransparent(t *testing.T) {
	var s = New(48000)
	s.SetMix(0)

	// Mix ramps down from its 0.5 default with a 20ms time constant, so
	// measure only once it has settled (3072 samples is about 3.2 of them).
	var maxDiff = 0.0
	for i := 0; i < 4096; i++ {
		var x = 0.8 * math.Sin(2*math.Pi*1000*float64(i)/48000)
		var y = s.Process(x)
		if i > 3072 {
			maxDiff = math.Max(maxDiff, math.Abs(x-y))
		}
	}
	assert.Less(t, maxDiff, 0.01)
}

func TestSaturator_FullMixStaysBounded(t *testing.T) {
	var s = New(48000)
	s.SetMix(1)
	s.SetDrive(4)

	// Drive and mix ramp up from their 1.0/0.5 defaults over 20ms, so
	// measure only after the ramp, as the zero-mix test does.
	var maxAbs = 0.0
	for i := 0; i < 4096; i++ {
		var x = 3.0 * math.Sin(2*math.Pi*1000*float64(i)/48000)
		var y = s.Process(x)
		if i > 1024 {
			maxAbs = math.Max(maxAbs, math.Abs(y))
		}
	}
	assert.Less(t, maxAbs, 1.5, "tanh saturation should keep output well below raw input amplitude")
}

func TestSaturator_DriveMixClamped(t *testing.T) {
	var s = New(48000)
	s.SetDrive(100)
	s.SetMix(-1)
	for i := 0; i < 48000; i++ {
		s.drive.Next()
		s.mix.Next()
	}
	assert.InDelta(t, 4.0, s.drive.Current(), 1e-6)
	assert.InDelta(t, 0.0, s.mix.Current(), 1e-6)
}

func TestSaturator_ResetClearsDCBlocker(t *testing.T) {
	var s = New(48000)
	for i := 0; i < 1000; i++ {
		s.Process(1.0)
	}
	assert.NotPanics(t, func() { s.Reset() })
}
