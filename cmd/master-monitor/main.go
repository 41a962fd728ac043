// Command master-monitor runs the mastering chain live against the
// default system audio duplex device: whatever the input device hears is
// mastered and sent straight back out, with periodic loudness and
// mix-health logging. It is the one place in this module where the
// engine meets a real host audio driver, itself out of the engine's own
// scope.
package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gordonklaus/portaudio"
	"github.com/spf13/pflag"

	"github.com/soundworks/mastering"
	"github.com/soundworks/mastering/internal/dsp/stereo"
)

const framesPerBuffer = 256

func main() {
	var (
		sampleRate    = pflag.Float64("sample-rate", 48000, "Audio device sample rate.")
		limiterDB     = pflag.Float64("limiter-threshold", -1.0, "Limiter ceiling in dBFS.")
		width         = pflag.Float64("width", 1.0, "Stereo width, 0 (mono) to 2 (double-wide).")
		inputGainDB   = pflag.Float64("input-gain", 0.0, "Input trim in dB.")
		monoBassHz    = pflag.Float64("mono-bass", 0, "Collapse the monitor output below this frequency to mono, 80-200Hz (0 = off).")
		statusSeconds = pflag.Int("status-interval", 2, "Seconds between logged loudness/mix-health snapshots.")
	)
	pflag.Parse()

	var logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "master-monitor"})

	if err := portaudio.Initialize(); err != nil {
		logger.Fatal("initializing portaudio", "err", err)
	}
	defer portaudio.Terminate()

	var engine = mastering.New(*sampleRate)
	engine.SetLimiterThreshold(*limiterDB)
	engine.SetStereoWidth(*width)
	engine.SetInputGain(*inputGainDB)

	var monoBass *stereo.MonoBass
	if *monoBassHz > 0 {
		monoBass = stereo.NewMonoBass(*sampleRate)
		monoBass.SetCrossoverFrequency(*monoBassHz)
	}

	var callback = func(in, out [][]float32) {
		for i := range in[0] {
			var left, right = float64(in[0][i]), float64(in[1][i])
			engine.ProcessStereo(&left, &right)
			if monoBass != nil {
				monoBass.ProcessStereo(&left, &right)
			}
			out[0][i] = float32(left)
			out[1][i] = float32(right)
		}
	}

	stream, err := portaudio.OpenDefaultStream(2, 2, *sampleRate, framesPerBuffer, callback)
	if err != nil {
		logger.Fatal("opening duplex stream", "err", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		logger.Fatal("starting stream", "err", err)
	}
	defer stream.Stop()

	logger.Info("mastering chain live", "sampleRate", *sampleRate, "latencySamples", engine.LatencySamples())

	var ticker = time.NewTicker(time.Duration(*statusSeconds) * time.Second)
	defer ticker.Stop()

	var interrupt = make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			var health = engine.MixHealthReport()
			logger.Info("status",
				"integratedLUFS", engine.IntegratedLUFS(),
				"peakDB", engine.PeakDB(),
				"correlation", engine.PhaseCorrelation(),
				"lufsWarning", health.LUFSWarning,
				"clipping", health.ClippingDetected)
		case <-interrupt:
			logger.Info("shutting down")
			return
		}
	}
}
