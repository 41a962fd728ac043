package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrestAnalyzer_SilenceIsSentinel(t *testing.T) {
	var c = NewCrestAnalyzer(DefaultWindowSamples)
	for i := 0; i < DefaultWindowSamples; i++ {
		c.ProcessSample(0, 0)
	}
	assert.Equal(t, silentCrestFactorDB, c.CrestFactor())
}

func TestCrestAnalyzer_SineHasLowCrestFactor(t *testing.T) {
	var c = NewCrestAnalyzer(DefaultWindowSamples)
	for i := 0; i < DefaultWindowSamples*3; i++ {
		var x = math.Sin(2 * math.Pi * 1000 * float64(i) / 48000)
		c.ProcessSample(x, x)
	}
	// A pure sine's crest factor is ~3dB; generous bound for the decaying
	// peak envelope and windowed RMS approximations here.
	assert.Less(t, c.CrestFactor(), 6.0)
}

func TestCrestAnalyzer_ResetClears(t *testing.T) {
	var c = NewCrestAnalyzer(100)
	for i := 0; i < 500; i++ {
		c.ProcessSample(1, 1)
	}
	c.Reset()
	assert.Equal(t, 0.0, c.peak)
	assert.Equal(t, 0.0, c.rmsSum)
}
