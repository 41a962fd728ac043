package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestSVF_FlatAtZeroGain(t *testing.T) {
	var f = NewSVF(Bell, 1000, 0.707, 0, 48000)
	for i := 0; i < 2048; i++ {
		var x = math.Sin(2 * math.Pi * 1000 * float64(i) / 48000)
		var y = f.Process(x)
		if i > 256 {
			assert.InDelta(t, x, y, 0.05, "bell at 0dB should pass its center frequency near-flat once settled")
		}
	}
}

func TestSVF_ResetClearsStateNotCoefficients(t *testing.T) {
	var f = NewSVF(Lowpass, 500, 0.707, 0, 48000)
	for i := 0; i < 100; i++ {
		f.Process(1.0)
	}
	var before = f.g
	f.Reset()
	require.Equal(t, before, f.g)
	require.Equal(t, 0.0, f.s1)
	require.Equal(t, 0.0, f.s2)
}

func TestSVF_LowpassHighpassStayFinite(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		var fc = rapid.Float64Range(20, 19000).Draw(rt, "fc")
		var lp = NewSVF(Lowpass, fc, 0.707, 0, 48000)
		var hp = NewSVF(Highpass, fc, 0.707, 0, 48000)

		for i := 0; i < 512; i++ {
			var x = math.Sin(2 * math.Pi * 100 * float64(i) / 48000)
			var low = lp.Process(x)
			var high = hp.Process(x)
			assert.False(rt, math.IsNaN(low) || math.IsInf(low, 0))
			assert.False(rt, math.IsNaN(high) || math.IsInf(high, 0))
		}
	})
}

func TestSVF_ClampsDegenerateInputs(t *testing.T) {
	var f = NewSVF(Bell, 0, 0, 0, 48000)
	var y = f.Process(1.0)
	assert.False(t, math.IsNaN(y) || math.IsInf(y, 0))
}
