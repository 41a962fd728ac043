package analysis

import "math"

// clipPeakThresholdDB flags a mix as clipping once true peak reaches this.
const clipPeakThresholdDB = -0.1

// narrowPhaseThreshold flags a mix as having phase issues below this
// correlation (too narrow, or partially out of phase).
const narrowPhaseThreshold = 0.3

// LUFS banding thresholds. Checked in this exact order: way-too-quiet,
// then too-quiet, then way-too-loud, then too-loud, else OK. A mix at
// exactly -8 LUFS reads "Too Loud", not "Way Too Loud", because the
// loud bands use a strict ">" comparison.
const (
	wayTooQuietLUFS = -30.0
	tooQuietLUFS    = -20.0
	wayTooLoudLUFS  = -8.0
	tooLoudLUFS     = -10.0
)

// MixHealthReport summarizes an analysis window: whether the signal is
// clipping, whether the stereo image has phase problems, and where the
// integrated loudness falls relative to streaming-platform targets.
type MixHealthReport struct {
	ClippingDetected bool
	PhaseIssues      bool
	LUFSWarning      string
	PeakDB           float64
	PhaseCorrelation float64
	IntegratedLUFS   float64
}

// Analyze derives a fresh report from the given measurements.
func Analyze(peakDB, phaseCorrelation, integratedLUFS float64) MixHealthReport {
	var report = MixHealthReport{
		PeakDB:           peakDB,
		PhaseCorrelation: phaseCorrelation,
		IntegratedLUFS:   integratedLUFS,
		ClippingDetected: peakDB >= clipPeakThresholdDB,
		PhaseIssues:      math.Abs(phaseCorrelation) < narrowPhaseThreshold,
	}

	switch {
	case integratedLUFS < wayTooQuietLUFS:
		report.LUFSWarning = "Way Too Quiet"
	case integratedLUFS < tooQuietLUFS:
		report.LUFSWarning = "Too Quiet"
	case integratedLUFS > wayTooLoudLUFS:
		report.LUFSWarning = "Way Too Loud"
	case integratedLUFS > tooLoudLUFS:
		report.LUFSWarning = "Too Loud"
	default:
		report.LUFSWarning = "OK"
	}

	return report
}
