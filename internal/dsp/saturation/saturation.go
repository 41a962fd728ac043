// Package saturation implements the analog-style tanh soft clipper that
// adds harmonic warmth before the limiter.
package saturation

import "github.com/soundworks/mastering/internal/dsp"

const driveMixSmoothMillis = 20.0
const dcBlockCoeff = 0.995

// Saturator drives a signal into tanh soft-clipping, then blends the
// saturated and dry signals by mix. Drive and mix are both smoothed to
// avoid zipper noise on parameter changes, and the saturated path is
// DC-blocked since asymmetric input biases tanh's output away from zero.
type Saturator struct {
	drive, mix *dsp.Smoother
	dcBlocker  *dsp.DCBlocker
}

// New returns a saturator at drive 1.0 (unity, no added drive) and mix 0.5.
func New(fs float64) *Saturator {
	var s = &Saturator{
		drive:     dsp.NewSmoother(driveMixSmoothMillis/1000, fs, 1.0),
		mix:       dsp.NewSmoother(driveMixSmoothMillis/1000, fs, 0.5),
		dcBlocker: dsp.NewDCBlocker(dcBlockCoeff),
	}
	return s
}

// SetSampleRate re-derives the drive and mix smoothing coefficients.
func (s *Saturator) SetSampleRate(fs float64) {
	s.drive.SetSampleRate(fs)
	s.mix.SetSampleRate(fs)
}

// SetDrive clamps and retargets drive amount, 1.0 to 4.0.
func (s *Saturator) SetDrive(drive float64) {
	if drive < 1 {
		drive = 1
	}
	if drive > 4 {
		drive = 4
	}
	s.drive.SetTarget(drive)
}

// SetMix clamps and retargets dry/wet mix, 0.0 (bypassed) to 1.0 (fully wet).
func (s *Saturator) SetMix(mix float64) {
	if mix < 0 {
		mix = 0
	}
	if mix > 1 {
		mix = 1
	}
	s.mix.SetTarget(mix)
}

// Process runs one sample through the saturator.
func (s *Saturator) Process(input float64) float64 {
	var drive = s.drive.Next()
	var mix = s.mix.Next()

	var driven = input * drive
	var saturated = dsp.FastTanh(driven) / drive
	var blocked = s.dcBlocker.Process(saturated)

	return input*(1-mix) + blocked*mix
}

// Reset clears the DC blocker. Smoothed parameters are untouched.
func (s *Saturator) Reset() {
	s.dcBlocker.Reset()
}
