package stereo

import "github.com/soundworks/mastering/internal/dsp"

const monoBassQ = 0.707
const defaultCrossoverFreq = 140.0

// MonoBass is a standalone two-stage low-end mono collapse, simpler than
// Imager: only a lowpass branch is filtered explicitly, the high branch is
// recovered with the perfect-reconstruction identity high = input - low
// rather than a second filter. Below the crossover, left and right are
// summed to mono; above it, the original stereo image passes through
// untouched.
//
// MonoBass is a plain caller-owned value, not a process-wide singleton:
// construct one per signal path that needs it and let the caller manage
// its lifetime.
type MonoBass struct {
	lowpassL1, lowpassL2 *dsp.SVF
	lowpassR1, lowpassR2 *dsp.SVF
	freq, fs             float64
}

// NewMonoBass returns a mono-bass processor crossing over at 140Hz.
func NewMonoBass(fs float64) *MonoBass {
	var m = &MonoBass{freq: defaultCrossoverFreq, fs: fs}
	m.lowpassL1 = dsp.NewSVF(dsp.Lowpass, m.freq, monoBassQ, 0, fs)
	m.lowpassL2 = dsp.NewSVF(dsp.Lowpass, m.freq, monoBassQ, 0, fs)
	m.lowpassR1 = dsp.NewSVF(dsp.Lowpass, m.freq, monoBassQ, 0, fs)
	m.lowpassR2 = dsp.NewSVF(dsp.Lowpass, m.freq, monoBassQ, 0, fs)
	return m
}

// SetCrossoverFrequency moves the mono/stereo split point, 80-200Hz
// recommended.
func (m *MonoBass) SetCrossoverFrequency(freq float64) {
	m.freq = freq
	m.recompute()
}

// SetSampleRate recomputes all four lowpass stages for a new sample rate.
func (m *MonoBass) SetSampleRate(fs float64) {
	m.fs = fs
	m.recompute()
}

func (m *MonoBass) recompute() {
	m.lowpassL1.Coefficients(m.freq, monoBassQ, 0, m.fs)
	m.lowpassL2.Coefficients(m.freq, monoBassQ, 0, m.fs)
	m.lowpassR1.Coefficients(m.freq, monoBassQ, 0, m.fs)
	m.lowpassR2.Coefficients(m.freq, monoBassQ, 0, m.fs)
}

// ProcessStereo collapses the low end to mono in place.
func (m *MonoBass) ProcessStereo(left, right *float64) {
	var inL, inR = *left, *right

	var lowL = m.lowpassL2.Process(m.lowpassL1.Process(inL))
	var lowR = m.lowpassR2.Process(m.lowpassR1.Process(inR))

	var monoLow = (lowL + lowR) * 0.5

	var highL = inL - lowL
	var highR = inR - lowR

	*left = highL + monoLow
	*right = highR + monoLow
}

// Reset clears all four lowpass stages.
func (m *MonoBass) Reset() {
	m.lowpassL1.Reset()
	m.lowpassL2.Reset()
	m.lowpassR1.Reset()
	m.lowpassR2.Reset()
}
