package analysis

import "math"

// CorrelationWindowSamples is how many frames accumulate between phase
// correlation updates, 100ms at 48kHz.
const CorrelationWindowSamples = 4800

// PhaseCorrelator accumulates ΣL², ΣR², ΣLR over a fixed window and
// reports the normalized correlation once the window fills: +1 is
// perfectly in phase, -1 is perfectly out of phase (mono-incompatible),
// 0 is uncorrelated.
type PhaseCorrelator struct {
	sumLL, sumRR, sumLR float64
	count               int
	windowSize          int
	correlation         float64
}

// NewPhaseCorrelator returns a correlator with the given accumulation
// window in samples.
func NewPhaseCorrelator(windowSize int) *PhaseCorrelator {
	return &PhaseCorrelator{windowSize: windowSize}
}

// Accumulate folds one stereo frame into the running sums. It reports
// whether the window just completed, in which case Correlation has been
// updated and the accumulators reset for the next window.
func (p *PhaseCorrelator) Accumulate(left, right float64) (windowComplete bool) {
	p.sumLL += left * left
	p.sumRR += right * right
	p.sumLR += left * right
	p.count++

	if p.count < p.windowSize {
		return false
	}

	var denominator = math.Sqrt(p.sumLL * p.sumRR)
	if denominator > 1e-10 {
		p.correlation = p.sumLR / denominator
	} else {
		p.correlation = 0
	}

	p.sumLL, p.sumRR, p.sumLR = 0, 0, 0
	p.count = 0
	return true
}

// Correlation returns the last completed window's phase correlation.
func (p *PhaseCorrelator) Correlation() float64 {
	return p.correlation
}

// Reset clears accumulators and the last reported correlation.
func (p *PhaseCorrelator) Reset() {
	p.sumLL, p.sumRR, p.sumLR = 0, 0, 0
	p.count = 0
	p.correlation = 0
}
