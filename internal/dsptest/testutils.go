// Package dsptest holds signal generators shared across the project's
// test suites: sine, impulse, and noise, all deterministic given a seed.
package dsptest

import "math"

// Sine returns numSamples of a sine wave at freqHz, amplitude amp, sampled
// at fs.
func Sine(freqHz, amp, fs float64, numSamples int) []float64 {
	var out = make([]float64, numSamples)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*freqHz*float64(i)/fs)
	}
	return out
}

// Impulse returns numSamples with a single amp-valued sample at index 0
// and zeros elsewhere.
func Impulse(amp float64, numSamples int) []float64 {
	var out = make([]float64, numSamples)
	if numSamples > 0 {
		out[0] = amp
	}
	return out
}

// Square returns numSamples of a square wave at freqHz, amplitude amp,
// sampled at fs.
func Square(freqHz, amp, fs float64, numSamples int) []float64 {
	var out = make([]float64, numSamples)
	for i := range out {
		var phase = math.Mod(freqHz*float64(i)/fs, 1.0)
		if phase < 0.5 {
			out[i] = amp
		} else {
			out[i] = -amp
		}
	}
	return out
}

// Noise returns numSamples of deterministic pseudo-random noise in
// [-amp, amp], seeded so tests are reproducible without importing
// math/rand directly into every test file.
func Noise(amp float64, numSamples int, seed uint64) []float64 {
	var out = make([]float64, numSamples)
	var state = seed
	for i := range out {
		// xorshift64*, fast and adequate for test fixtures.
		state ^= state >> 12
		state ^= state << 25
		state ^= state >> 27
		var hashed = state * 2685821657736338717

		var unit = float64(hashed>>11) / float64(1<<53)
		out[i] = amp * (2*unit - 1)
	}
	return out
}

// Silence returns numSamples of zeros.
func Silence(numSamples int) []float64 {
	return make([]float64, numSamples)
}
