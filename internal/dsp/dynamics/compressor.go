// Package dynamics implements the feed-forward compressors in the
// mastering chain: the single-band building block, the three-band
// multiband compressor, and the sibilance-keyed de-esser.
package dynamics

import (
	"math"

	"github.com/soundworks/mastering/internal/dsp"
)

// Compressor is a single-band feed-forward compressor with independent
// attack and release envelope coefficients and a soft-knee-free ratio
// curve (gain reduction is linear in dB above threshold).
type Compressor struct {
	Threshold float64
	Ratio     float64

	attackCoeff  float64
	releaseCoeff float64
	envelope     float64
}

// NewCompressor returns a compressor at -20dB/4:1 with the given
// attack/release times in seconds at sample rate fs.
func NewCompressor(attackSeconds, releaseSeconds, fs float64) *Compressor {
	var c = &Compressor{Threshold: -20, Ratio: 4}
	c.SetAttack(attackSeconds, fs)
	c.SetRelease(releaseSeconds, fs)
	return c
}

// SetAttack sets the attack time constant in seconds at sample rate fs.
func (c *Compressor) SetAttack(attackSeconds, fs float64) {
	c.attackCoeff = math.Exp(-1.0 / (attackSeconds * fs))
}

// SetRelease sets the release time constant in seconds at sample rate fs.
func (c *Compressor) SetRelease(releaseSeconds, fs float64) {
	c.releaseCoeff = math.Exp(-1.0 / (releaseSeconds * fs))
}

// Process runs one sample through the compressor, keying off its own
// absolute value (no external sidechain).
func (c *Compressor) Process(input float64) float64 {
	var inputDB = dsp.LinearToDB(math.Abs(input))

	var reductionDB = 0.0
	if inputDB > c.Threshold {
		reductionDB = (inputDB - c.Threshold) * (1 - 1/c.Ratio)
	}

	var targetGain = dsp.DBToLinear(-reductionDB)
	var coeff = c.releaseCoeff
	if targetGain < c.envelope {
		coeff = c.attackCoeff
	}
	c.envelope = targetGain + coeff*(c.envelope-targetGain)

	return input * c.envelope
}

// GainReductionDB reports the compressor's current gain reduction, <= 0.
func (c *Compressor) GainReductionDB() float64 {
	return dsp.LinearToDB(c.envelope)
}

// Reset zeroes the envelope follower.
func (c *Compressor) Reset() {
	c.envelope = 0
}
