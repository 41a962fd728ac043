// Package air implements the high-frequency "air band" protector: a soft
// clipper that only acts above the split frequency, so aggressively
// boosting the top EQ band doesn't fold into harsh square waves downstream.
package air

import "github.com/soundworks/mastering/internal/dsp"

const splitQ = 0.707

// Protector splits a signal at its crossover frequency and soft-clips only
// the high branch before recombining.
type Protector struct {
	highpass  *dsp.SVF
	lowpass   *dsp.SVF
	threshold float64
	enabled   bool
}

// New returns an enabled protector splitting at freq Hz, threshold 0.9.
func New(freq, fs float64) *Protector {
	var p = &Protector{threshold: 0.9, enabled: true}
	p.highpass = dsp.NewSVF(dsp.Highpass, freq, splitQ, 0, fs)
	p.lowpass = dsp.NewSVF(dsp.Lowpass, freq, splitQ, 0, fs)
	return p
}

// SetSampleRate recomputes the split filters for a new sample rate,
// keeping their current split frequency via the supplied freq.
func (p *Protector) SetSampleRate(freq, fs float64) {
	p.highpass.Coefficients(freq, splitQ, 0, fs)
	p.lowpass.Coefficients(freq, splitQ, 0, fs)
}

// SetEnabled bypasses the protector entirely when false.
func (p *Protector) SetEnabled(enabled bool) {
	p.enabled = enabled
}

// SetThreshold clamps and sets the soft-clip threshold, 0.5 to 1.0 linear.
func (p *Protector) SetThreshold(threshold float64) {
	if threshold < 0.5 {
		threshold = 0.5
	}
	if threshold > 1.0 {
		threshold = 1.0
	}
	p.threshold = threshold
}

// Process runs one sample through the protector.
func (p *Protector) Process(input float64) float64 {
	if !p.enabled {
		return input
	}

	var high = p.highpass.Process(input)
	var lowMid = p.lowpass.Process(input)
	var clipped = dsp.FastTanh(high/p.threshold) * p.threshold

	return lowMid + clipped
}

// Reset clears both split filters.
func (p *Protector) Reset() {
	p.highpass.Reset()
	p.lowpass.Reset()
}
