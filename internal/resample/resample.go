// Package resample implements the standalone windowed-sinc sample-rate
// converter, independent of the mastering chain itself.
package resample

import (
	"math"

	"gonum.org/v1/gonum/dsp/window"
)

// SincTaps is the length of the windowed-sinc kernel.
const SincTaps = 128

// Converter holds a precomputed windowed-sinc kernel for fixed-ratio or
// arbitrary-ratio sample rate conversion.
type Converter struct {
	kernel [SincTaps]float64
}

// NewConverter builds a converter with its sinc kernel precomputed.
func NewConverter() *Converter {
	var c = &Converter{}
	c.generateKernel()
	return c
}

// kaiserBeta sets the Kaiser window's stopband attenuation, roughly 80dB,
// a reasonable default for sample-rate conversion.
const kaiserBeta = 8.0

// generateKernel windows a half-sample-spaced sinc with a Kaiser window.
func (c *Converter) generateKernel() {
	var sinc [SincTaps]float64
	for i := 0; i < SincTaps; i++ {
		var n = i - SincTaps/2
		var x = float64(n) * 0.5
		if x == 0 {
			sinc[i] = 1
		} else {
			sinc[i] = math.Sin(math.Pi*x) / (math.Pi * x)
		}
	}

	var windowed = window.Kaiser{Beta: kaiserBeta}.Transform(sinc[:])

	// Normalize to unity DC gain so a passthrough conversion neither
	// boosts nor attenuates; the raw half-spaced sinc sums to ~2.
	var sum float64
	for _, v := range windowed {
		sum += v
	}
	for i, v := range windowed {
		c.kernel[i] = v / sum
	}
}

// interpolate applies the kernel centered on the integer part of position.
// The fractional part of position is intentionally unused: this performs
// nearest-integer-indexed sinc interpolation, not true fractional-delay
// interpolation.
func (c *Converter) interpolate(samples []float64, position float64) float64 {
	var baseIndex = int(position)

	var sum float64
	for i := 0; i < SincTaps; i++ {
		var sampleIndex = baseIndex + i - SincTaps/2
		if sampleIndex >= 0 && sampleIndex < len(samples) {
			sum += samples[sampleIndex] * c.kernel[i]
		}
	}
	return sum
}

// Convert resamples input from inputRate to outputRate.
func (c *Converter) Convert(input []float64, inputRate, outputRate float64) []float64 {
	var ratio = outputRate / inputRate
	var outputLength = int(float64(len(input)) * ratio)
	var output = make([]float64, outputLength)

	for i := 0; i < outputLength; i++ {
		var inputPos = float64(i) / ratio
		output[i] = c.interpolate(input, inputPos)
	}

	return output
}
