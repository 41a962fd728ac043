package dsp

import "math"

// Smoother is a one-pole exponential parameter smoother: current converges
// monotonically toward target with time constant tau seconds.
type Smoother struct {
	target, current, coefficient float64
	fs                           float64
	tau                          float64
}

// NewSmoother builds a smoother with the given time constant, already
// settled at initial.
func NewSmoother(tauSeconds, fs, initial float64) *Smoother {
	var s = &Smoother{fs: fs, tau: tauSeconds, target: initial, current: initial}
	s.recompute()
	return s
}

func (s *Smoother) recompute() {
	s.coefficient = math.Exp(-1 / (s.tau * s.fs))
}

// SetSampleRate re-derives the smoothing coefficient after a sample-rate change.
func (s *Smoother) SetSampleRate(fs float64) {
	s.fs = fs
	s.recompute()
}

// SetTarget retargets the smoother without resetting current.
func (s *Smoother) SetTarget(target float64) {
	s.target = target
}

// Next advances the smoother by one sample and returns the new current value.
func (s *Smoother) Next() float64 {
	s.current = s.target + s.coefficient*(s.current-s.target)
	return s.current
}

// Current returns the smoothed value without advancing it.
func (s *Smoother) Current() float64 {
	return s.current
}

// Reset snaps current (and target) to v, discarding any in-flight ramp.
func (s *Smoother) Reset(v float64) {
	s.target = v
	s.current = v
}
