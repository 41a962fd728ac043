// Package mastering implements a real-time stereo mastering chain: DC
// offset removal, input trim, a seven-band parametric EQ, air-band
// protection, a de-esser, a frequency-dependent stereo imager, a
// three-band multiband compressor, analog-style saturation, a true-peak
// limiter, and TPDF dithering, with EBU R128 loudness metering, crest
// factor, phase correlation, and mix-health reporting running alongside.
package mastering

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/soundworks/mastering/internal/automaster"
	"github.com/soundworks/mastering/internal/dsp"
	"github.com/soundworks/mastering/internal/dsp/air"
	"github.com/soundworks/mastering/internal/dsp/dynamics"
	"github.com/soundworks/mastering/internal/dsp/eq"
	"github.com/soundworks/mastering/internal/dsp/limiter"
	"github.com/soundworks/mastering/internal/dsp/saturation"
	"github.com/soundworks/mastering/internal/dsp/stereo"
	"github.com/soundworks/mastering/internal/measure/analysis"
	"github.com/soundworks/mastering/internal/measure/loudness"
)

// airProtectFreq is the fixed split point for the high-frequency air
// protector, below the Nyquist-adjacent region boosting the 14kHz EQ band
// could otherwise fold into harsh square waves.
const airProtectFreq = 12000.0

// dcInputCoeff is the highpass pole (~8Hz at 48kHz) used to remove steady-state DC
// bias from incoming audio, distinct from the saturator's own internal
// (faster) DC blocker.
const dcInputCoeff = 0.999

// inputGainSmoothMillis is the time constant for the input trim ramp.
const inputGainSmoothMillis = 20.0

// Engine is one stereo mastering chain instance. It owns all of its state;
// nothing here is process-wide, and multiple Engines may run independently
// in parallel. It is not safe for concurrent use by multiple goroutines.
type Engine struct {
	sampleRate float64

	dcFilterL, dcFilterR     *dsp.DCBlocker
	inputGain                *dsp.Smoother
	eqL, eqR                 *eq.SevenBand
	hfProtectL, hfProtectR   *air.Protector
	deEsserL, deEsserR       *dynamics.DeEsser
	multiband                *dynamics.Multiband
	imager                   *stereo.Imager
	saturationL, saturationR *saturation.Saturator
	limiter                  *limiter.Limiter
	ditherL, ditherR         *dsp.Dither

	lufsMeter     *loudness.Meter
	crestAnalyzer *analysis.CrestAnalyzer
	correlator    *analysis.PhaseCorrelator
	healthReport  analysis.MixHealthReport

	aiEnabled bool

	log *log.Logger
}

// New returns an engine configured for sampleRate, with every stage at its
// default (mostly transparent) settings.
func New(sampleRate float64) *Engine {
	var e = &Engine{
		sampleRate:    sampleRate,
		dcFilterL:     dsp.NewDCBlocker(dcInputCoeff),
		dcFilterR:     dsp.NewDCBlocker(dcInputCoeff),
		inputGain:     dsp.NewSmoother(inputGainSmoothMillis/1000, sampleRate, 0),
		eqL:           eq.New(sampleRate),
		eqR:           eq.New(sampleRate),
		hfProtectL:    air.New(airProtectFreq, sampleRate),
		hfProtectR:    air.New(airProtectFreq, sampleRate),
		deEsserL:      dynamics.NewDeEsser(sampleRate),
		deEsserR:      dynamics.NewDeEsser(sampleRate),
		multiband:     dynamics.NewMultiband(sampleRate),
		imager:        stereo.New(sampleRate),
		saturationL:   saturation.New(sampleRate),
		saturationR:   saturation.New(sampleRate),
		limiter:       limiter.New(sampleRate),
		ditherL:       dsp.NewDither(),
		ditherR:       dsp.NewDither(),
		lufsMeter:     loudness.New(sampleRate),
		crestAnalyzer: analysis.NewCrestAnalyzer(analysis.DefaultWindowSamples),
		correlator:    analysis.NewPhaseCorrelator(analysis.CorrelationWindowSamples),
		log:           log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false, Prefix: "mastering"}),
	}
	return e
}

// SetSampleRate re-derives every stage's coefficients and look-ahead/ring
// buffer sizes for a new sample rate.
func (e *Engine) SetSampleRate(sampleRate float64) {
	e.sampleRate = sampleRate
	e.eqL.SetSampleRate(sampleRate)
	e.eqR.SetSampleRate(sampleRate)
	e.hfProtectL.SetSampleRate(airProtectFreq, sampleRate)
	e.hfProtectR.SetSampleRate(airProtectFreq, sampleRate)
	e.deEsserL.SetSampleRate(sampleRate)
	e.deEsserR.SetSampleRate(sampleRate)
	e.multiband.SetSampleRate(sampleRate)
	e.imager.SetSampleRate(sampleRate)
	e.saturationL.SetSampleRate(sampleRate)
	e.saturationR.SetSampleRate(sampleRate)
	e.limiter.SetSampleRate(sampleRate)
	e.inputGain.SetSampleRate(sampleRate)
	e.lufsMeter.SetSampleRate(sampleRate)
	e.log.Debug("sample rate changed", "hz", sampleRate)
}

// SetDCOffsetFilterEnabled bypasses the input DC blocker on both channels.
func (e *Engine) SetDCOffsetFilterEnabled(enabled bool) {
	e.dcFilterL.SetEnabled(enabled)
	e.dcFilterR.SetEnabled(enabled)
}

// SetInputGain retargets input trim in dB.
func (e *Engine) SetInputGain(gainDB float64) {
	e.inputGain.SetTarget(gainDB)
}

// SetEQGain retargets one of the seven EQ bands (0-6) in dB.
func (e *Engine) SetEQGain(band int, gainDB float64) {
	e.eqL.SetBandGain(band, gainDB)
	e.eqR.SetBandGain(band, gainDB)
}

// SetAllEQGains retargets all seven EQ bands at once.
func (e *Engine) SetAllEQGains(gains [eq.BandCount]float64) {
	e.eqL.SetAllGains(gains)
	e.eqR.SetAllGains(gains)
}

// SetDeEsserEnabled turns de-essing on or off.
func (e *Engine) SetDeEsserEnabled(enabled bool) {
	e.deEsserL.SetEnabled(enabled)
	e.deEsserR.SetEnabled(enabled)
}

// SetDeEsserThreshold sets the sibilance detection threshold in dB.
func (e *Engine) SetDeEsserThreshold(thresholdDB float64) {
	e.deEsserL.SetThreshold(thresholdDB)
	e.deEsserR.SetThreshold(thresholdDB)
}

// SetDeEsserRatio sets the de-esser's compression ratio, 1 to 10.
func (e *Engine) SetDeEsserRatio(ratio float64) {
	e.deEsserL.SetRatio(ratio)
	e.deEsserR.SetRatio(ratio)
}

// SetMultibandEnabled bypasses the multiband compressor when false.
func (e *Engine) SetMultibandEnabled(enabled bool) {
	e.multiband.SetEnabled(enabled)
}

// SetMultibandLowBand sets the low band's threshold (dB) and ratio.
func (e *Engine) SetMultibandLowBand(thresholdDB, ratio float64) {
	e.multiband.SetLowBand(thresholdDB, ratio)
}

// SetMultibandMidBand sets the mid band's threshold (dB) and ratio.
func (e *Engine) SetMultibandMidBand(thresholdDB, ratio float64) {
	e.multiband.SetMidBand(thresholdDB, ratio)
}

// SetMultibandHighBand sets the high band's threshold (dB) and ratio.
func (e *Engine) SetMultibandHighBand(thresholdDB, ratio float64) {
	e.multiband.SetHighBand(thresholdDB, ratio)
}

// SetStereoWidth sets stereo width, 0 (mono) to 2 (double-wide).
func (e *Engine) SetStereoWidth(width float64) {
	e.imager.SetWidth(width)
}

// SetSaturationDrive sets saturation drive, 1 to 4.
func (e *Engine) SetSaturationDrive(drive float64) {
	e.saturationL.SetDrive(drive)
	e.saturationR.SetDrive(drive)
}

// SetSaturationMix sets saturation dry/wet mix, 0 to 1.
func (e *Engine) SetSaturationMix(mix float64) {
	e.saturationL.SetMix(mix)
	e.saturationR.SetMix(mix)
}

// SetLimiterThreshold sets the limiter ceiling in dBFS.
func (e *Engine) SetLimiterThreshold(thresholdDB float64) {
	e.limiter.SetThreshold(thresholdDB)
}

// SetLimiterRelease sets the limiter's envelope release time in seconds.
func (e *Engine) SetLimiterRelease(releaseSeconds float64) {
	e.limiter.SetRelease(releaseSeconds)
}

// SetLimiterSafeClipMode switches between transparent limiting and
// aggressive hard-clipping at the threshold.
func (e *Engine) SetLimiterSafeClipMode(enabled bool) {
	e.limiter.SetSafeClipMode(enabled)
}

// SetDitheringEnabled turns output dithering on or off.
func (e *Engine) SetDitheringEnabled(enabled bool) {
	e.ditherL.SetEnabled(enabled)
	e.ditherR.SetEnabled(enabled)
}

// SetDitheringBits sets the target bit depth, 8 to 24.
func (e *Engine) SetDitheringBits(bits int) {
	e.ditherL.SetTargetBits(bits)
	e.ditherR.SetTargetBits(bits)
}

// SetAIEnabled turns the crest-factor-driven auto-mastering policy on or off.
func (e *Engine) SetAIEnabled(enabled bool) {
	e.aiEnabled = enabled
}

// ProcessStereo runs one stereo frame through the full chain in place:
// DC-block, input gain, EQ, air protection, de-ess, stereo imaging,
// multiband compression, saturation, true-peak limiting, dithering, then
// metering. Metering never changes the signal; it only updates the
// engine's reported measurements.
func (e *Engine) ProcessStereo(left, right *float64) {
	*left = e.dcFilterL.Process(*left)
	*right = e.dcFilterR.Process(*right)

	var gainLinear = dsp.DBToLinear(e.inputGain.Next())
	*left *= gainLinear
	*right *= gainLinear

	*left = e.eqL.Process(*left)
	*right = e.eqR.Process(*right)

	*left = e.hfProtectL.Process(*left)
	*right = e.hfProtectR.Process(*right)

	*left = e.deEsserL.Process(*left)
	*right = e.deEsserR.Process(*right)

	e.imager.ProcessStereo(left, right)

	e.multiband.ProcessStereo(left, right)

	*left = e.saturationL.Process(*left)
	*right = e.saturationR.Process(*right)

	e.limiter.ProcessStereo(left, right)

	*left = e.ditherL.Process(*left)
	*right = e.ditherR.Process(*right)

	e.lufsMeter.ProcessSample(*left, *right)
	e.crestAnalyzer.ProcessSample(*left, *right)

	if e.correlator.Accumulate(*left, *right) {
		e.healthReport = analysis.Analyze(
			e.crestAnalyzer.Peak(),
			e.correlator.Correlation(),
			e.lufsMeter.IntegratedLUFS(),
		)

		if e.aiEnabled {
			e.applyAIPolicy()
		}
	}
}

// ProcessBuffer runs numSamples frames through ProcessStereo, reading and
// writing interleaved stereo pairs.
func (e *Engine) ProcessBuffer(in, out []float64, numSamples int) {
	for i := 0; i < numSamples; i++ {
		var left, right = in[i*2], in[i*2+1]
		e.ProcessStereo(&left, &right)
		out[i*2], out[i*2+1] = left, right
	}
}

func (e *Engine) applyAIPolicy() {
	var policy = automaster.SelectPolicy(e.crestAnalyzer.CrestFactor())

	e.multiband.SetEnabled(policy.Enabled)
	if !policy.Enabled {
		return
	}
	e.multiband.SetLowBand(policy.Low.ThresholdDB, policy.Low.Ratio)
	e.multiband.SetMidBand(policy.Mid.ThresholdDB, policy.Mid.Ratio)
	e.multiband.SetHighBand(policy.High.ThresholdDB, policy.High.Ratio)
}

// IntegratedLUFS returns the two-pass gated integrated loudness.
func (e *Engine) IntegratedLUFS() float64 { return e.lufsMeter.IntegratedLUFS() }

// ShortTermLUFS returns loudness over the trailing 3-second window.
func (e *Engine) ShortTermLUFS() float64 { return e.lufsMeter.ShortTermLUFS() }

// MomentaryLUFS returns loudness over the trailing 400ms window.
func (e *Engine) MomentaryLUFS() float64 { return e.lufsMeter.MomentaryLUFS() }

// LRA returns the loudness range statistic.
func (e *Engine) LRA() float64 { return e.lufsMeter.LRA() }

// PhaseCorrelation returns the last completed window's phase correlation.
func (e *Engine) PhaseCorrelation() float64 { return e.correlator.Correlation() }

// CrestFactor returns the current peak/RMS crest factor in dB.
func (e *Engine) CrestFactor() float64 { return e.crestAnalyzer.CrestFactor() }

// LimiterGainReduction returns the limiter's current gain reduction in dB.
func (e *Engine) LimiterGainReduction() float64 { return e.limiter.GainReductionDB() }

// PeakDB returns the current decaying peak level in dB.
func (e *Engine) PeakDB() float64 { return e.crestAnalyzer.Peak() }

// RMSDB returns the current windowed RMS level in dB.
func (e *Engine) RMSDB() float64 { return e.crestAnalyzer.RMS() }

// DeEsserGainReduction returns the de-esser's current gain reduction in dB.
func (e *Engine) DeEsserGainReduction() float64 { return e.deEsserL.GainReductionDB() }

// LatencySamples returns the limiter's look-ahead size in samples, the
// engine's total reported latency.
func (e *Engine) LatencySamples() int {
	return int(0.05 * e.sampleRate)
}

// MixHealthReport returns the most recently computed mix-health summary.
func (e *Engine) MixHealthReport() analysis.MixHealthReport {
	return e.healthReport
}

// Reset restores every stateful component to its initial condition.
// Filter coefficients are kept as they are, not zeroed; smoothed
// parameter targets survive the reset.
func (e *Engine) Reset() {
	e.dcFilterL.Reset()
	e.dcFilterR.Reset()
	e.eqL.Reset()
	e.eqR.Reset()
	e.hfProtectL.Reset()
	e.hfProtectR.Reset()
	e.deEsserL.Reset()
	e.deEsserR.Reset()
	e.multiband.Reset()
	e.imager.Reset()
	e.saturationL.Reset()
	e.saturationR.Reset()
	e.limiter.Reset()
	e.ditherL.Reset()
	e.ditherR.Reset()
	e.lufsMeter.Reset()
	e.crestAnalyzer.Reset()
	e.correlator.Reset()
	e.healthReport = analysis.MixHealthReport{}
	e.log.Debug("engine reset")
}
