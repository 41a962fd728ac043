// Package limiter implements the true-peak, look-ahead brick-wall limiter
// that closes out the mastering chain.
package limiter

import (
	"math"

	"github.com/soundworks/mastering/internal/dsp"
)

// lookAheadSeconds is the look-ahead window; the ring buffer is sized to it
// at the current sample rate.
const lookAheadSeconds = 0.05

// Limiter is a stereo true-peak limiter. It oversamples both channels 4x to
// catch inter-sample peaks, derives a shared gain-reduction envelope from
// whichever channel peaks higher, applies it, and only then delays the
// already-limited output by the look-ahead window. The delay time-aligns
// the output; it does not let the envelope react before a peak arrives.
type Limiter struct {
	thresholdDB     float64
	thresholdLinear float64
	releaseSeconds  float64
	releaseCoeff    float64
	sampleRate      float64
	envelope        float64
	safeClip        bool

	oversamplerL *dsp.Oversampler
	oversamplerR *dsp.Oversampler

	lookAhead    [][2]float64
	lookAheadPos int
}

// New returns a limiter at -1dB threshold, 50ms release, transparent mode,
// sized for sampleRate.
func New(sampleRate float64) *Limiter {
	var l = &Limiter{
		sampleRate:   sampleRate,
		oversamplerL: dsp.NewOversampler(),
		oversamplerR: dsp.NewOversampler(),
	}
	l.SetThreshold(-1.0)
	l.SetRelease(0.05)
	l.resizeLookAhead()
	return l
}

func (l *Limiter) resizeLookAhead() {
	var size = int(lookAheadSeconds * l.sampleRate)
	if size < 1 {
		size = 1
	}
	l.lookAhead = make([][2]float64, size)
	l.lookAheadPos = 0
}

// SetSampleRate resizes the look-ahead buffer and release coefficient for a
// new sample rate.
func (l *Limiter) SetSampleRate(sampleRate float64) {
	l.sampleRate = sampleRate
	l.resizeLookAhead()
	l.SetRelease(l.releaseSeconds)
}

// SetThreshold sets the ceiling in dBFS.
func (l *Limiter) SetThreshold(thresholdDB float64) {
	l.thresholdDB = thresholdDB
	l.thresholdLinear = dsp.DBToLinear(thresholdDB)
}

// SetRelease sets the envelope release time in seconds.
func (l *Limiter) SetRelease(releaseSeconds float64) {
	l.releaseSeconds = releaseSeconds
	l.releaseCoeff = math.Exp(-1.0 / (releaseSeconds * l.sampleRate))
}

// SetSafeClipMode switches between transparent envelope limiting (false)
// and aggressive hard-clipping at the threshold (true).
func (l *Limiter) SetSafeClipMode(enabled bool) {
	l.safeClip = enabled
}

// GainReductionDB reports the limiter's current gain reduction in dB
// (always <= 0).
func (l *Limiter) GainReductionDB() float64 {
	return dsp.LinearToDB(l.envelope)
}

// ProcessStereo limits one frame in place.
func (l *Limiter) ProcessStereo(left, right *float64) {
	var upL = l.oversamplerL.Upsample(*left)
	var upR = l.oversamplerR.Upsample(*right)

	var truePeak float64
	for i := 0; i < dsp.OversamplingFactor; i++ {
		truePeak = math.Max(truePeak, math.Max(math.Abs(upL[i]), math.Abs(upR[i])))
	}

	var targetGain = 1.0
	if truePeak > l.thresholdLinear {
		targetGain = l.thresholdLinear / truePeak
	}
	l.envelope = math.Min(targetGain, l.envelope*l.releaseCoeff+targetGain*(1-l.releaseCoeff))

	var limitedL, limitedR [dsp.OversamplingFactor]float64
	if l.safeClip {
		for i := 0; i < dsp.OversamplingFactor; i++ {
			limitedL[i] = dsp.HardClip(upL[i], l.thresholdLinear)
			limitedR[i] = dsp.HardClip(upR[i], l.thresholdLinear)
		}
	} else {
		for i := 0; i < dsp.OversamplingFactor; i++ {
			limitedL[i] = upL[i] * l.envelope
			limitedR[i] = upR[i] * l.envelope
		}
	}

	var downL = l.oversamplerL.Downsample(limitedL)
	var downR = l.oversamplerR.Downsample(limitedR)

	l.lookAhead[l.lookAheadPos] = [2]float64{downL, downR}

	var readIndex = (l.lookAheadPos + 1) % len(l.lookAhead)
	*left = l.lookAhead[readIndex][0]
	*right = l.lookAhead[readIndex][1]

	l.lookAheadPos = (l.lookAheadPos + 1) % len(l.lookAhead)
}

// Reset clears envelope, look-ahead buffer, and oversampler state.
func (l *Limiter) Reset() {
	for i := range l.lookAhead {
		l.lookAhead[i] = [2]float64{}
	}
	l.lookAheadPos = 0
	l.envelope = 0
	l.oversamplerL.Reset()
	l.oversamplerR.Reset()
}
