package dynamics

import "github.com/soundworks/mastering/internal/dsp/crossover"

// Per-band attack/release times, seconds. Lower bands react slower so bass
// transients aren't pumped by fast gain changes.
const (
	lowAttack, lowRelease   = 0.01, 0.1
	midAttack, midRelease   = 0.005, 0.08
	highAttack, highRelease = 0.003, 0.05
)

// lowMidSplit, midHighSplit are the fixed three-band crossover points.
const (
	lowMidSplit  = 250.0
	midHighSplit = 2000.0
)

// Multiband is a three-band stereo feed-forward compressor: each channel is
// split by its own crossover, compressed band-by-band, then summed back.
type Multiband struct {
	crossoverL, crossoverR *crossover.ThreeWay
	low, mid, high         *Compressor
	enabled                bool
}

// NewMultiband returns a disabled three-band compressor for sample rate fs.
func NewMultiband(fs float64) *Multiband {
	return &Multiband{
		crossoverL: crossover.NewThreeWay(lowMidSplit, midHighSplit, fs),
		crossoverR: crossover.NewThreeWay(lowMidSplit, midHighSplit, fs),
		low:        NewCompressor(lowAttack, lowRelease, fs),
		mid:        NewCompressor(midAttack, midRelease, fs),
		high:       NewCompressor(highAttack, highRelease, fs),
	}
}

// SetSampleRate recomputes the crossovers and envelope coefficients.
func (m *Multiband) SetSampleRate(fs float64) {
	m.crossoverL.SetSampleRate(fs)
	m.crossoverR.SetSampleRate(fs)
	m.low.SetAttack(lowAttack, fs)
	m.low.SetRelease(lowRelease, fs)
	m.mid.SetAttack(midAttack, fs)
	m.mid.SetRelease(midRelease, fs)
	m.high.SetAttack(highAttack, fs)
	m.high.SetRelease(highRelease, fs)
}

// SetEnabled bypasses the whole processor when false.
func (m *Multiband) SetEnabled(enabled bool) {
	m.enabled = enabled
}

// Enabled reports whether the compressor is currently active.
func (m *Multiband) Enabled() bool {
	return m.enabled
}

// SetLowBand sets the low band's threshold (dB) and ratio.
func (m *Multiband) SetLowBand(thresholdDB, ratio float64) {
	m.low.Threshold, m.low.Ratio = thresholdDB, ratio
}

// SetMidBand sets the mid band's threshold (dB) and ratio.
func (m *Multiband) SetMidBand(thresholdDB, ratio float64) {
	m.mid.Threshold, m.mid.Ratio = thresholdDB, ratio
}

// SetHighBand sets the high band's threshold (dB) and ratio.
func (m *Multiband) SetHighBand(thresholdDB, ratio float64) {
	m.high.Threshold, m.high.Ratio = thresholdDB, ratio
}

// ProcessStereo compresses one frame in place. A no-op while disabled.
func (m *Multiband) ProcessStereo(left, right *float64) {
	if !m.enabled {
		return
	}

	var lowL, midL, highL = m.crossoverL.Process(*left)
	var lowR, midR, highR = m.crossoverR.Process(*right)

	lowL, lowR = m.low.Process(lowL), m.low.Process(lowR)
	midL, midR = m.mid.Process(midL), m.mid.Process(midR)
	highL, highR = m.high.Process(highL), m.high.Process(highR)

	*left = lowL + midL + highL
	*right = lowR + midR + highR
}

// Reset clears both crossovers and all three band envelopes.
func (m *Multiband) Reset() {
	m.crossoverL.Reset()
	m.crossoverR.Reset()
	m.low.Reset()
	m.mid.Reset()
	m.high.Reset()
}
