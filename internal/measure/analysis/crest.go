// Package analysis implements the signal analyzers that sit alongside the
// processing chain rather than inside it: crest factor, phase correlation,
// and the mix-health report that summarizes them.
package analysis

import (
	"math"

	"github.com/soundworks/mastering/internal/dsp"
)

// DefaultWindowSamples is the crest-factor RMS window, 100ms at 48kHz.
const DefaultWindowSamples = 4800

const peakDecay = 0.999
const silentCrestFactorDB = 100.0

// CrestAnalyzer tracks peak and RMS level over a sliding window and
// derives the crest factor (peak/RMS, in dB) from them.
type CrestAnalyzer struct {
	rmsBuffer []float64
	rmsIndex  int
	rmsSum    float64
	peak      float64
}

// NewCrestAnalyzer returns an analyzer with an RMS window of windowSamples.
func NewCrestAnalyzer(windowSamples int) *CrestAnalyzer {
	return &CrestAnalyzer{rmsBuffer: make([]float64, windowSamples)}
}

// ProcessSample feeds one stereo frame into the peak and RMS trackers.
func (c *CrestAnalyzer) ProcessSample(left, right float64) {
	var peak = max(math.Abs(left), math.Abs(right))
	c.peak = max(c.peak*peakDecay, peak)

	var meanSquare = (left*left + right*right) / 2

	c.rmsSum -= c.rmsBuffer[c.rmsIndex]
	c.rmsBuffer[c.rmsIndex] = meanSquare
	c.rmsSum += meanSquare
	c.rmsIndex = (c.rmsIndex + 1) % len(c.rmsBuffer)
}

// CrestFactor returns peak/RMS in dB, or a 100dB sentinel under silence
// where RMS would otherwise blow the ratio up toward infinity.
func (c *CrestAnalyzer) CrestFactor() float64 {
	var rms = math.Sqrt(c.rmsSum / float64(len(c.rmsBuffer)))
	if rms < 1e-10 {
		return silentCrestFactorDB
	}
	return dsp.LinearToDB(c.peak / rms)
}

// Peak returns the decaying peak envelope in dB.
func (c *CrestAnalyzer) Peak() float64 {
	return dsp.LinearToDB(c.peak)
}

// RMS returns the windowed RMS level in dB.
func (c *CrestAnalyzer) RMS() float64 {
	return dsp.LinearToDB(math.Sqrt(c.rmsSum / float64(len(c.rmsBuffer))))
}

// Reset clears peak, RMS window, and running sum.
func (c *CrestAnalyzer) Reset() {
	for i := range c.rmsBuffer {
		c.rmsBuffer[i] = 0
	}
	c.rmsIndex = 0
	c.rmsSum = 0
	c.peak = 0
}
