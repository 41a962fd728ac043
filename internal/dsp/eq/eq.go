// Package eq implements the seven-band parametric equalizer that sits near
// the front of the mastering chain.
package eq

import "github.com/soundworks/mastering/internal/dsp"

// BandCount is the number of fixed bell bands the equalizer exposes.
const BandCount = 7

// centerFreqs are the fixed mastering-grade band centers, low to high.
var centerFreqs = [BandCount]float64{40, 120, 350, 1000, 3500, 8000, 14000}

const bandQ = 0.707
const gainSmoothMillis = 20.0

// SevenBand is a cascade of seven bell filters at fixed center frequencies,
// each with an independently smoothed gain. Coefficients are recomputed
// every sample since the bell shape depends on gain as well as frequency.
type SevenBand struct {
	filters   [BandCount]*dsp.SVF
	smoothers [BandCount]*dsp.Smoother
	fs        float64
}

// New returns a flat (0dB) seven-band EQ for the given sample rate.
func New(fs float64) *SevenBand {
	var e = &SevenBand{fs: fs}
	for i := 0; i < BandCount; i++ {
		e.filters[i] = dsp.NewSVF(dsp.Bell, centerFreqs[i], bandQ, 0, fs)
		e.smoothers[i] = dsp.NewSmoother(gainSmoothMillis/1000, fs, 0)
	}
	return e
}

// SetSampleRate re-derives smoothing coefficients for a new sample rate.
// Filter coefficients follow automatically on the next Process call.
func (e *SevenBand) SetSampleRate(fs float64) {
	e.fs = fs
	for i := 0; i < BandCount; i++ {
		e.smoothers[i].SetSampleRate(fs)
	}
}

// SetBandGain retargets one band's gain in dB. Out-of-range band indices
// are ignored.
func (e *SevenBand) SetBandGain(band int, gainDB float64) {
	if band < 0 || band >= BandCount {
		return
	}
	e.smoothers[band].SetTarget(gainDB)
}

// SetAllGains retargets all seven bands at once.
func (e *SevenBand) SetAllGains(gains [BandCount]float64) {
	for i, g := range gains {
		e.SetBandGain(i, g)
	}
}

// Process runs one sample through all seven bands in series.
func (e *SevenBand) Process(input float64) float64 {
	var output = input
	for i := 0; i < BandCount; i++ {
		var gain = e.smoothers[i].Next()
		e.filters[i].Coefficients(centerFreqs[i], bandQ, gain, e.fs)
		output = e.filters[i].Process(output)
	}
	return output
}

// Reset clears filter integrator state. Smoothed gains are untouched.
func (e *SevenBand) Reset() {
	for i := 0; i < BandCount; i++ {
		e.filters[i].Reset()
	}
}
