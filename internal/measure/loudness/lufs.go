// Package loudness implements EBU R128 / ITU-R BS.1770-4 style loudness
// metering: K-weighted momentary, short-term, and two-pass-gated
// integrated LUFS, plus loudness range.
package loudness

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/soundworks/mastering/internal/dsp"
)

const absoluteGateLUFS = -70.0
const relativeGateOffsetLU = -10.0
const silentLUFS = -70.0

const shortTermSeconds = 3.0
const momentarySeconds = 0.4

// Meter accumulates K-weighted mean-square power for a stereo signal and
// derives momentary, short-term, and gated-integrated loudness from it.
type Meter struct {
	preL, preR *dsp.SVF // 100Hz highpass stage of the K-weighting cascade
	rlbL, rlbR *dsp.SVF // 1kHz +4dB high-shelf stage of the K-weighting cascade

	integrated []float64 // every mean-square sample, for the two-pass gate
	shortTerm  []float64
	momentary  []float64
	shortIdx   int
	momIdx     int
}

// New returns a meter sized for sampleRate's short-term (3s) and
// momentary (400ms) windows.
func New(sampleRate float64) *Meter {
	var m = &Meter{
		preL: dsp.NewSVF(dsp.Highpass, 100, 0.707, 0, sampleRate),
		preR: dsp.NewSVF(dsp.Highpass, 100, 0.707, 0, sampleRate),
		rlbL: dsp.NewSVF(dsp.HighShelf, 1000, 0.707, 4, sampleRate),
		rlbR: dsp.NewSVF(dsp.HighShelf, 1000, 0.707, 4, sampleRate),
	}
	m.shortTerm = make([]float64, int(shortTermSeconds*sampleRate))
	m.momentary = make([]float64, int(momentarySeconds*sampleRate))
	return m
}

// SetSampleRate re-warps the K-weighting filters and resizes the
// short-term and momentary rings, clearing them. The integrated history
// is not sample-rate-sized and survives.
func (m *Meter) SetSampleRate(sampleRate float64) {
	m.preL.Coefficients(100, 0.707, 0, sampleRate)
	m.preR.Coefficients(100, 0.707, 0, sampleRate)
	m.rlbL.Coefficients(1000, 0.707, 4, sampleRate)
	m.rlbR.Coefficients(1000, 0.707, 4, sampleRate)
	m.shortTerm = make([]float64, int(shortTermSeconds*sampleRate))
	m.momentary = make([]float64, int(momentarySeconds*sampleRate))
	m.shortIdx, m.momIdx = 0, 0
}

// ProcessSample feeds one stereo frame into the K-weighting filters and
// every accumulation window.
func (m *Meter) ProcessSample(left, right float64) {
	var filteredL = m.rlbL.Process(m.preL.Process(left))
	var filteredR = m.rlbR.Process(m.preR.Process(right))

	var meanSquare = (filteredL*filteredL + filteredR*filteredR) / 2

	m.integrated = append(m.integrated, meanSquare)

	m.shortTerm[m.shortIdx] = meanSquare
	m.shortIdx = (m.shortIdx + 1) % len(m.shortTerm)

	m.momentary[m.momIdx] = meanSquare
	m.momIdx = (m.momIdx + 1) % len(m.momentary)
}

func lufsFromPower(meanSquare float64) float64 {
	return -0.691 + 10*math.Log10(math.Max(meanSquare, 1e-10))
}

// IntegratedLUFS returns the two-pass gated integrated loudness: the
// absolute gate (-70 LUFS) removes silence, then a relative gate 10LU
// below the absolute-gated mean removes quiet passages before the final
// mean is taken.
func (m *Meter) IntegratedLUFS() float64 {
	if len(m.integrated) == 0 {
		return silentLUFS
	}

	var gated []float64
	for _, ms := range m.integrated {
		if lufsFromPower(ms) > absoluteGateLUFS {
			gated = append(gated, ms)
		}
	}
	if len(gated) == 0 {
		return silentLUFS
	}

	var ungatedMean float64
	for _, ms := range gated {
		ungatedMean += ms
	}
	ungatedMean /= float64(len(gated))
	var relativeGate = lufsFromPower(ungatedMean) + relativeGateOffsetLU

	var final []float64
	for _, ms := range gated {
		if lufsFromPower(ms) > relativeGate {
			final = append(final, ms)
		}
	}
	if len(final) == 0 {
		return silentLUFS
	}

	var finalMean float64
	for _, ms := range final {
		finalMean += ms
	}
	finalMean /= float64(len(final))

	return lufsFromPower(finalMean)
}

// ShortTermLUFS returns loudness over the trailing 3-second window.
func (m *Meter) ShortTermLUFS() float64 {
	return lufsFromPower(mean(m.shortTerm))
}

// MomentaryLUFS returns loudness over the trailing 400ms window.
func (m *Meter) MomentaryLUFS() float64 {
	return lufsFromPower(mean(m.momentary))
}

func mean(buf []float64) float64 {
	var sum float64
	for _, v := range buf {
		sum += v
	}
	return sum / float64(len(buf))
}

// LRA returns the loudness range: the gap between the 95th and 10th
// percentile of gated per-sample LUFS values. Because it is taken over
// per-sample energies rather than 400ms blocks, it includes the spread of
// instantaneous power within each waveform cycle: a steady sine reads
// about 15dB.
func (m *Meter) LRA() float64 {
	if len(m.integrated) < 10 {
		return 0
	}

	var gatedLUFS []float64
	for _, ms := range m.integrated {
		var lufs = lufsFromPower(ms)
		if lufs > absoluteGateLUFS {
			gatedLUFS = append(gatedLUFS, lufs)
		}
	}
	if len(gatedLUFS) < 10 {
		return 0
	}

	sort.Float64s(gatedLUFS)

	var p10 = stat.Quantile(0.10, stat.Empirical, gatedLUFS, nil)
	var p95 = stat.Quantile(0.95, stat.Empirical, gatedLUFS, nil)

	return math.Max(0, p95-p10)
}

// Reset clears all accumulated history and K-weighting filter state.
func (m *Meter) Reset() {
	m.integrated = nil
	for i := range m.shortTerm {
		m.shortTerm[i] = 0
	}
	for i := range m.momentary {
		m.momentary[i] = 0
	}
	m.shortIdx, m.momIdx = 0, 0
	m.preL.Reset()
	m.preR.Reset()
	m.rlbL.Reset()
	m.rlbR.Reset()
}
