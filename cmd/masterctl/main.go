// Command masterctl masters a stereo WAV file offline: it decodes the
// input, runs it through a mastering.Engine configured from a YAML preset
// and command-line overrides, writes the mastered WAV, and drops a
// timestamped loudness/mix-health report alongside it.
package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/lestrrat-go/strftime"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/soundworks/mastering"
	"github.com/soundworks/mastering/internal/dsp/eq"
	"github.com/soundworks/mastering/internal/resample"
)

// outputBitDepth is the PCM bit depth masterctl writes. The default dither
// depth (DefaultPreset's 16 bits) matches it; a preset or --dither-bits
// can set a different dither depth, and the output stays 16-bit.
const outputBitDepth = 16

func main() {
	var (
		inputPath    = pflag.StringP("input", "i", "", "Input WAV file (required).")
		outputPath   = pflag.StringP("output", "o", "", "Output WAV file (required).")
		presetPath   = pflag.StringP("preset", "p", "", "YAML preset file; flags below override it.")
		reportPath   = pflag.String("report-pattern", "masterctl-report-%Y%m%d-%H%M%S.yaml", "strftime pattern for the report filename.")
		inputGainDB  = pflag.Float64("input-gain", math.NaN(), "Override: input trim in dB.")
		eqGains      = pflag.Float64SliceP("eq", "e", nil, "Override: 7 comma-separated EQ band gains in dB (40,120,350,1000,3500,8000,14000Hz).")
		width        = pflag.Float64("width", math.NaN(), "Override: stereo width, 0 (mono) to 2 (double-wide).")
		limiterDB    = pflag.Float64("limiter-threshold", math.NaN(), "Override: limiter ceiling in dBFS.")
		safeClip     = pflag.Bool("safe-clip", false, "Use safe-clip limiting instead of transparent gain reduction.")
		ditherBits   = pflag.Int("dither-bits", 0, "Override: dither target bit depth, 8-24 (0 = use preset).")
		noDither     = pflag.Bool("no-dither", false, "Disable output dithering.")
		aiEnabled    = pflag.Bool("ai", false, "Enable crest-factor-driven auto-mastering.")
		resampleTo   = pflag.Float64("resample-to", 0, "Resample the input to this rate in Hz before mastering (0 = keep input rate).")
		quiet        = pflag.BoolP("quiet", "q", false, "Suppress progress logging.")
	)

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "masterctl masters a stereo WAV file offline.\n\n")
		fmt.Fprintf(os.Stderr, "Usage: masterctl -i in.wav -o out.wav [flags]\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	var logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false, Prefix: "masterctl"})
	if *quiet {
		logger.SetLevel(log.WarnLevel)
	}

	if *inputPath == "" || *outputPath == "" {
		pflag.Usage()
		os.Exit(2)
	}

	var preset, err = LoadPreset(*presetPath)
	if err != nil {
		logger.Fatal("loading preset", "err", err)
	}

	if !math.IsNaN(*inputGainDB) {
		preset.InputGainDB = *inputGainDB
	}
	if len(*eqGains) > 0 {
		for i := 0; i < eq.BandCount && i < len(*eqGains); i++ {
			preset.EQGainsDB[i] = (*eqGains)[i]
		}
	}
	if !math.IsNaN(*width) {
		preset.StereoWidth = *width
	}
	if !math.IsNaN(*limiterDB) {
		preset.LimiterThresholdDB = *limiterDB
	}
	if *safeClip {
		preset.SafeClipMode = true
	}
	if *ditherBits != 0 {
		preset.DitherBits = *ditherBits
		preset.DitherEnabled = true
	}
	if *noDither {
		preset.DitherEnabled = false
	}
	if *aiEnabled {
		preset.AIEnabled = true
	}

	left, right, sampleRate, err := readWAVStereo(*inputPath)
	if err != nil {
		logger.Fatal("reading input", "err", err)
	}
	logger.Info("loaded input", "file", *inputPath, "samples", len(left), "sampleRate", sampleRate)

	if *resampleTo > 0 && *resampleTo != sampleRate {
		var converter = resample.NewConverter()
		left = converter.Convert(left, sampleRate, *resampleTo)
		right = converter.Convert(right, sampleRate, *resampleTo)
		logger.Info("resampled input", "from", sampleRate, "to", *resampleTo, "samples", len(left))
		sampleRate = *resampleTo
	}

	var engine = mastering.New(sampleRate)
	applyPreset(engine, preset)

	var outLeft = make([]float64, len(left))
	var outRight = make([]float64, len(right))
	for i := range left {
		var l, r = left[i], right[i]
		engine.ProcessStereo(&l, &r)
		outLeft[i], outRight[i] = l, r
	}

	if err := writeWAVStereo(*outputPath, outLeft, outRight, sampleRate); err != nil {
		logger.Fatal("writing output", "err", err)
	}
	logger.Info("wrote output", "file", *outputPath, "latencySamples", engine.LatencySamples())

	if err := writeReport(*reportPath, engine); err != nil {
		logger.Warn("writing report", "err", err)
	}
}

func applyPreset(e *mastering.Engine, p Preset) {
	e.SetInputGain(p.InputGainDB)
	e.SetAllEQGains(p.EQGainsDB)
	e.SetDeEsserEnabled(p.DeEsserEnabled)
	e.SetDeEsserThreshold(p.DeEsserThreshold)
	e.SetDeEsserRatio(p.DeEsserRatio)
	e.SetMultibandEnabled(p.MultibandEnabled)
	e.SetMultibandLowBand(p.LowThresholdDB, p.LowRatio)
	e.SetMultibandMidBand(p.MidThresholdDB, p.MidRatio)
	e.SetMultibandHighBand(p.HighThresholdDB, p.HighRatio)
	e.SetStereoWidth(p.StereoWidth)
	e.SetSaturationDrive(p.SaturationDrive)
	e.SetSaturationMix(p.SaturationMix)
	e.SetLimiterThreshold(p.LimiterThresholdDB)
	e.SetLimiterRelease(p.LimiterReleaseSec)
	e.SetLimiterSafeClipMode(p.SafeClipMode)
	e.SetDitheringEnabled(p.DitherEnabled)
	e.SetDitheringBits(p.DitherBits)
	e.SetAIEnabled(p.AIEnabled)
}

// readWAVStereo decodes a WAV file to a pair of float64 channels in
// [-1, 1]. Mono input is duplicated to both channels.
func readWAVStereo(path string) (left, right []float64, sampleRate float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, 0, err
	}
	defer f.Close()

	var decoder = wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, nil, 0, fmt.Errorf("%s: not a valid WAV file", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, nil, 0, err
	}

	var channels = buf.Format.NumChannels
	if channels < 1 || channels > 2 {
		return nil, nil, 0, fmt.Errorf("%s: %d channels unsupported, only mono or stereo", path, channels)
	}

	var scale = math.Pow(2, float64(buf.SourceBitDepth-1))
	var numFrames = len(buf.Data) / channels
	left = make([]float64, numFrames)
	right = make([]float64, numFrames)

	for i := 0; i < numFrames; i++ {
		if channels == 1 {
			var v = float64(buf.Data[i]) / scale
			left[i], right[i] = v, v
		} else {
			left[i] = float64(buf.Data[i*2]) / scale
			right[i] = float64(buf.Data[i*2+1]) / scale
		}
	}

	return left, right, float64(buf.Format.SampleRate), nil
}

// writeWAVStereo encodes two float64 channels as an interleaved 16-bit
// stereo WAV file, clamping to the PCM range.
func writeWAVStereo(path string, left, right []float64, sampleRate float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var encoder = wav.NewEncoder(f, int(sampleRate), outputBitDepth, 2, 1)

	var scale = math.Pow(2, outputBitDepth-1) - 1
	var data = make([]int, len(left)*2)
	for i := range left {
		data[i*2] = clampInt(int(math.Round(left[i]*scale)), outputBitDepth)
		data[i*2+1] = clampInt(int(math.Round(right[i]*scale)), outputBitDepth)
	}

	var buf = &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: int(sampleRate)},
		Data:           data,
		SourceBitDepth: outputBitDepth,
	}
	if err := encoder.Write(buf); err != nil {
		return err
	}
	return encoder.Close()
}

func clampInt(v, bits int) int {
	var limit = 1<<(bits-1) - 1
	if v > limit {
		return limit
	}
	if v < -limit-1 {
		return -limit - 1
	}
	return v
}

// report is the YAML-serializable snapshot written alongside the output.
type report struct {
	GeneratedAt      string  `yaml:"generated_at"`
	IntegratedLUFS   float64 `yaml:"integrated_lufs"`
	LoudnessRangeLU  float64 `yaml:"loudness_range_lu"`
	PeakDB           float64 `yaml:"peak_db"`
	PhaseCorrelation float64 `yaml:"phase_correlation"`
	LimiterLatency   int     `yaml:"limiter_latency_samples"`
	ClippingDetected bool    `yaml:"clipping_detected"`
	PhaseIssues      bool    `yaml:"phase_issues"`
	LUFSWarning      string  `yaml:"lufs_warning"`
}

func writeReport(pattern string, e *mastering.Engine) error {
	name, err := strftime.Format(pattern, time.Now())
	if err != nil {
		return err
	}

	var health = e.MixHealthReport()
	var r = report{
		GeneratedAt:      time.Now().Format(time.RFC3339),
		IntegratedLUFS:   e.IntegratedLUFS(),
		LoudnessRangeLU:  e.LRA(),
		PeakDB:           e.PeakDB(),
		PhaseCorrelation: e.PhaseCorrelation(),
		LimiterLatency:   e.LatencySamples(),
		ClippingDetected: health.ClippingDetected,
		PhaseIssues:      health.PhaseIssues,
		LUFSWarning:      health.LUFSWarning,
	}

	data, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	return os.WriteFile(name, data, 0o644)
}
