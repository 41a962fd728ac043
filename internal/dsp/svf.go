// Package dsp holds the leaf signal-processing primitives shared by every
// mid-level processor in the mastering chain: the zero-delay-feedback
// biquad, parameter smoothing, DC blocking, mid/side transform, the
// polyphase oversampler, and TPDF dithering.
package dsp

import "math"

// Role selects which of the seven SVF outputs Process returns.
type Role int

const (
	Lowpass Role = iota
	Highpass
	Bandpass
	Bell
	LowShelf
	HighShelf
	Notch
)

// SVF is a zero-delay-feedback state-variable filter using trapezoidal
// integration. Coefficients are a pure function of (fc, Q, gainDB, fs);
// Reset clears only the integrator state, never the coefficients.
type SVF struct {
	role Role

	// Integrator states.
	s1, s2 float64

	// Derived coefficients, recomputed by Coefficients.
	g, k       float64
	a1, a2, a3 float64
	m0, m1, m2 float64
}

// NewSVF returns a filter with the given role and coefficients already
// computed for (fc, q, gainDB, fs).
func NewSVF(role Role, fc, q, gainDB, fs float64) *SVF {
	var f = &SVF{role: role}
	f.Coefficients(fc, q, gainDB, fs)
	return f
}

// Coefficients recomputes g, k, and the mix weights for the filter's role.
// The pre-warp g = tan(pi*fc/fs) keeps the response analog-accurate near
// Nyquist, where the plain bilinear transform would otherwise compress it.
func (f *SVF) Coefficients(fc, q, gainDB, fs float64) {
	if fc <= 0 {
		fc = 1
	}
	if fc > fs*0.49 {
		fc = fs * 0.49
	}
	if q <= 0 {
		q = 0.01
	}

	var a = math.Pow(10, gainDB/20) // A, per the role table in terms of A and A^2

	f.g = math.Tan(math.Pi * fc / fs)
	f.k = 1 / q

	f.a1 = 1 / (1 + f.g*(f.g+f.k))
	f.a2 = f.g * f.a1
	f.a3 = f.g * f.a2

	var bigA = a * a

	switch f.role {
	case Lowpass:
		f.m0, f.m1, f.m2 = 0, 0, 1
	case Highpass:
		f.m0, f.m1, f.m2 = 1, -f.k, -1
	case Bandpass:
		f.m0, f.m1, f.m2 = 0, 1, 0
	case Bell:
		f.m0, f.m1, f.m2 = 1, f.k*(bigA-1), 0
	case LowShelf:
		f.m0, f.m1, f.m2 = 1, f.k*(a-1), bigA-1
	case HighShelf:
		f.m0, f.m1, f.m2 = bigA, f.k*(1-a)*a, 1-bigA
	case Notch:
		f.m0, f.m1, f.m2 = 1, -f.k, 0
	}
}

// Process runs one sample through the filter, updating integrator state.
func (f *SVF) Process(x float64) float64 {
	var v3 = x - f.s2
	var v1 = f.a1*f.s1 + f.a2*v3
	var v2 = f.s2 + f.a2*f.s1 + f.a3*v3

	f.s1 = 2*v1 - f.s1
	f.s2 = 2*v2 - f.s2

	return f.m0*x + f.m1*v1 + f.m2*v2
}

// Reset clears integrator state. Coefficients are untouched.
func (f *SVF) Reset() {
	f.s1, f.s2 = 0, 0
}
