package dsp

import "math"

// OversamplingFactor is the fixed 4x ratio the true-peak limiter upsamples
// and downsamples by.
const OversamplingFactor = 4

// firTapCount is the length of the windowed-sinc kernel shared by upsample
// and downsample.
const firTapCount = 64

// Oversampler is a 4x polyphase-style FIR oversampler used around the
// true-peak limiter, both to estimate inter-sample peaks and to run the
// limiter's gain envelope at the higher rate.
//
// upsample computes all four output phases from the same ring-buffer
// convolution rather than four genuinely phase-offset filters: every phase
// shares identical coefficients and history, so the four samples it
// produces per input sample are identical. That is reproduced here exactly
// rather than "fixed" into a textbook polyphase bank, since the limiter's
// behavior (and the tests pinned to it) depend on it.
type Oversampler struct {
	coeffs            [firTapCount]float64
	upsampleHistory   [firTapCount]float64
	downsampleHistory [firTapCount]float64
	historyIndex      int
}

// NewOversampler builds an oversampler with its FIR kernel precomputed.
func NewOversampler() *Oversampler {
	var o = &Oversampler{}
	o.generateCoeffs()
	return o
}

func (o *Oversampler) generateCoeffs() {
	const cutoff = 0.25
	for i := 0; i < firTapCount; i++ {
		var n = i - firTapCount/2
		var sinc float64
		if n == 0 {
			sinc = 1.0
		} else if math.Mod(cutoff*float64(n), 1) == 0 {
			// Exact sinc null; math.Sin leaves a ~1e-16 residue at multiples of pi.
			sinc = 0
		} else {
			sinc = math.Sin(math.Pi*cutoff*float64(n)) / (math.Pi * cutoff * float64(n))
		}
		var window = 0.42 - 0.5*math.Cos(2*math.Pi*float64(i)/(firTapCount-1)) +
			0.08*math.Cos(4*math.Pi*float64(i)/(firTapCount-1))
		o.coeffs[i] = sinc * window * cutoff
	}
}

// Upsample feeds one input sample through the kernel and returns the four
// oversampled-rate output phases.
func (o *Oversampler) Upsample(input float64) [OversamplingFactor]float64 {
	var output [OversamplingFactor]float64
	o.upsampleHistory[o.historyIndex] = input * OversamplingFactor

	for phase := 0; phase < OversamplingFactor; phase++ {
		var sum float64
		for i := 0; i < firTapCount; i++ {
			var idx = (o.historyIndex - i + firTapCount) % firTapCount
			sum += o.upsampleHistory[idx] * o.coeffs[i]
		}
		output[phase] = sum
	}

	o.historyIndex = (o.historyIndex + 1) % firTapCount
	return output
}

// Downsample folds four oversampled-rate phases back to one output sample.
func (o *Oversampler) Downsample(input [OversamplingFactor]float64) float64 {
	for i := 0; i < OversamplingFactor; i++ {
		o.downsampleHistory[o.historyIndex] = input[i]
		o.historyIndex = (o.historyIndex + 1) % firTapCount
	}
	var sum float64
	for i := 0; i < firTapCount; i += OversamplingFactor {
		var idx = (o.historyIndex - i + firTapCount) % firTapCount
		sum += o.downsampleHistory[idx] * o.coeffs[i]
	}
	return sum
}

// Reset clears ring-buffer history. The FIR kernel is untouched.
func (o *Oversampler) Reset() {
	o.upsampleHistory = [firTapCount]float64{}
	o.downsampleHistory = [firTapCount]float64{}
	o.historyIndex = 0
}
