// Package stereo implements frequency-dependent stereo field processing:
// a three-band imager that forces the low end to mono, and a standalone
// two-band mono-bass utility for simpler signal chains.
package stereo

import (
	"github.com/soundworks/mastering/internal/dsp"
	"github.com/soundworks/mastering/internal/dsp/crossover"
)

const (
	imagerLowMidSplit  = 250.0
	imagerMidHighSplit = 2000.0
	widthSmoothMillis  = 50.0
)

// Imager widens or narrows a stereo signal per frequency band: the low
// band is collapsed fully to mono regardless of width, the mid band only
// takes half of the requested width, and the high band takes it in full.
// Forcing the low band to mono keeps sub-bass phase-coherent on mono
// playback systems without touching the audible stereo image.
type Imager struct {
	crossoverL, crossoverR *crossover.ThreeWay
	width                  *dsp.Smoother
}

// New returns an imager at unity (1.0) width for sample rate fs.
func New(fs float64) *Imager {
	var i = &Imager{
		crossoverL: crossover.NewThreeWay(imagerLowMidSplit, imagerMidHighSplit, fs),
		crossoverR: crossover.NewThreeWay(imagerLowMidSplit, imagerMidHighSplit, fs),
		width:      dsp.NewSmoother(widthSmoothMillis/1000, fs, 1.0),
	}
	return i
}

// SetSampleRate recomputes the crossovers and width smoother.
func (i *Imager) SetSampleRate(fs float64) {
	i.crossoverL.SetSampleRate(fs)
	i.crossoverR.SetSampleRate(fs)
	i.width.SetSampleRate(fs)
}

// SetWidth clamps and retargets stereo width, 0 (mono) to 2 (double-wide).
func (i *Imager) SetWidth(width float64) {
	if width < 0 {
		width = 0
	}
	if width > 2 {
		width = 2
	}
	i.width.SetTarget(width)
}

// ProcessStereo widens or narrows one frame in place.
func (i *Imager) ProcessStereo(left, right *float64) {
	var width = i.width.Next()

	var lowL, midL, highL = i.crossoverL.Process(*left)
	var lowR, midR, highR = i.crossoverR.Process(*right)

	var lowMono = (lowL + lowR) / 2
	lowL, lowR = lowMono, lowMono

	var midM, midS = dsp.EncodeMS(midL, midR)
	midS *= 0.5 * width
	midL, midR = dsp.DecodeMS(midM, midS)

	var highM, highS = dsp.EncodeMS(highL, highR)
	highS *= width
	highL, highR = dsp.DecodeMS(highM, highS)

	*left = lowL + midL + highL
	*right = lowR + midR + highR
}

// Reset clears both channel crossovers. The width ramp is untouched.
func (i *Imager) Reset() {
	i.crossoverL.Reset()
	i.crossoverR.Reset()
}
