package dynamics

import (
	"math"

	"github.com/soundworks/mastering/internal/dsp"
)

const sibilanceFreq = 10000.0
const sibilanceQ = 2.0
const deEsserAttack = 0.001
const deEsserRelease = 0.02

// DeEsser tames sibilance by bandpass-filtering the input to detect
// 8-12kHz energy, then applying broadband gain reduction keyed off that
// detector rather than the full-band signal.
type DeEsser struct {
	detector     *dsp.SVF
	threshold    float64
	ratio        float64
	attackCoeff  float64
	releaseCoeff float64
	envelope     float64
	enabled      bool
}

// NewDeEsser returns a disabled de-esser at -20dB threshold, 4:1 ratio.
func NewDeEsser(fs float64) *DeEsser {
	var d = &DeEsser{threshold: -20, ratio: 4, envelope: 1}
	d.detector = dsp.NewSVF(dsp.Bandpass, sibilanceFreq, sibilanceQ, 0, fs)
	d.SetSampleRate(fs)
	return d
}

// SetSampleRate recomputes the sibilance detector and envelope coefficients.
func (d *DeEsser) SetSampleRate(fs float64) {
	d.detector.Coefficients(sibilanceFreq, sibilanceQ, 0, fs)
	d.attackCoeff = math.Exp(-1.0 / (deEsserAttack * fs))
	d.releaseCoeff = math.Exp(-1.0 / (deEsserRelease * fs))
}

// SetEnabled turns de-essing on or off.
func (d *DeEsser) SetEnabled(enabled bool) {
	d.enabled = enabled
}

// SetThreshold sets the sibilance detection threshold in dB.
func (d *DeEsser) SetThreshold(thresholdDB float64) {
	d.threshold = thresholdDB
}

// SetRatio clamps and sets the compression ratio, 1 to 10.
func (d *DeEsser) SetRatio(ratio float64) {
	if ratio < 1 {
		ratio = 1
	}
	if ratio > 10 {
		ratio = 10
	}
	d.ratio = ratio
}

// Process runs one sample through the de-esser.
func (d *DeEsser) Process(input float64) float64 {
	if !d.enabled {
		return input
	}

	var sibilance = d.detector.Process(input)
	var sibilanceDB = dsp.LinearToDB(math.Abs(sibilance))

	var reductionDB = 0.0
	if sibilanceDB > d.threshold {
		reductionDB = (sibilanceDB - d.threshold) * (1 - 1/d.ratio)
	}

	var targetGain = dsp.DBToLinear(-reductionDB)
	var coeff = d.releaseCoeff
	if targetGain < d.envelope {
		coeff = d.attackCoeff
	}
	d.envelope = targetGain + coeff*(d.envelope-targetGain)

	return input * d.envelope
}

// GainReductionDB reports the de-esser's current gain reduction, <= 0.
func (d *DeEsser) GainReductionDB() float64 {
	return dsp.LinearToDB(d.envelope)
}

// Reset clears the sibilance detector and resets the envelope to unity.
func (d *DeEsser) Reset() {
	d.detector.Reset()
	d.envelope = 1
}
