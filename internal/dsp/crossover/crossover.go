// Package crossover splits a signal into frequency bands using cascaded
// Linkwitz-Riley filters, the topology the multiband compressor and the
// stereo imager build on.
package crossover

import "github.com/soundworks/mastering/internal/dsp"

// lrQ is the Q of each Butterworth stage; two cascaded stages at this Q
// give the flat-summing 4th-order Linkwitz-Riley response.
const lrQ = 0.707

// TwoWay is a single Linkwitz-Riley crossover point: a lowpass and a
// highpass branch, each a cascade of two Butterworth biquads.
type TwoWay struct {
	lowpass1, lowpass2   *dsp.SVF
	highpass1, highpass2 *dsp.SVF
	freq, fs             float64
}

// NewTwoWay returns a crossover split at freq Hz for sample rate fs.
func NewTwoWay(freq, fs float64) *TwoWay {
	var c = &TwoWay{freq: freq, fs: fs}
	c.lowpass1 = dsp.NewSVF(dsp.Lowpass, freq, lrQ, 0, fs)
	c.lowpass2 = dsp.NewSVF(dsp.Lowpass, freq, lrQ, 0, fs)
	c.highpass1 = dsp.NewSVF(dsp.Highpass, freq, lrQ, 0, fs)
	c.highpass2 = dsp.NewSVF(dsp.Highpass, freq, lrQ, 0, fs)
	return c
}

// SetSampleRate recomputes coefficients for a new sample rate.
func (c *TwoWay) SetSampleRate(fs float64) {
	c.fs = fs
	c.recompute()
}

// SetFrequency moves the crossover point.
func (c *TwoWay) SetFrequency(freq float64) {
	c.freq = freq
	c.recompute()
}

func (c *TwoWay) recompute() {
	c.lowpass1.Coefficients(c.freq, lrQ, 0, c.fs)
	c.lowpass2.Coefficients(c.freq, lrQ, 0, c.fs)
	c.highpass1.Coefficients(c.freq, lrQ, 0, c.fs)
	c.highpass2.Coefficients(c.freq, lrQ, 0, c.fs)
}

// Process splits one sample into low and high bands.
func (c *TwoWay) Process(input float64) (low, high float64) {
	low = c.lowpass2.Process(c.lowpass1.Process(input))
	high = c.highpass2.Process(c.highpass1.Process(input))
	return low, high
}

// Reset clears all four biquads' integrator state.
func (c *TwoWay) Reset() {
	c.lowpass1.Reset()
	c.lowpass2.Reset()
	c.highpass1.Reset()
	c.highpass2.Reset()
}

// ThreeWay chains two TwoWay crossovers to split a signal into low, mid,
// and high bands.
type ThreeWay struct {
	lowMid  *TwoWay
	midHigh *TwoWay
}

// NewThreeWay returns a three-band crossover with the given split points.
func NewThreeWay(lowMid, midHigh, fs float64) *ThreeWay {
	return &ThreeWay{
		lowMid:  NewTwoWay(lowMid, fs),
		midHigh: NewTwoWay(midHigh, fs),
	}
}

// SetSampleRate recomputes both crossover points for a new sample rate.
func (c *ThreeWay) SetSampleRate(fs float64) {
	c.lowMid.SetSampleRate(fs)
	c.midHigh.SetSampleRate(fs)
}

// SetFrequencies moves both crossover points.
func (c *ThreeWay) SetFrequencies(lowMid, midHigh float64) {
	c.lowMid.SetFrequency(lowMid)
	c.midHigh.SetFrequency(midHigh)
}

// Process splits one sample into low, mid, and high bands.
func (c *ThreeWay) Process(input float64) (low, mid, high float64) {
	low, midHigh := c.lowMid.Process(input)
	mid, high = c.midHigh.Process(midHigh)
	return low, mid, high
}

// Reset clears both crossover stages.
func (c *ThreeWay) Reset() {
	c.lowMid.Reset()
	c.midHigh.Reset()
}
