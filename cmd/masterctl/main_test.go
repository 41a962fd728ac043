package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Smoke test: master a small generated WAV end to end through main(),
// then decode the result and check it is sane.
func Test_masterctl(t *testing.T) {
	var dir = t.TempDir()
	var inPath = filepath.Join(dir, "in.wav")
	var outPath = filepath.Join(dir, "out.wav")
	var reportPattern = filepath.Join(dir, "report.yaml")

	// Half a second of a hot 440Hz stereo sine at 48kHz.
	var left = make([]float64, 24000)
	var right = make([]float64, 24000)
	for i := range left {
		var x = 0.9 * math.Sin(2*math.Pi*440*float64(i)/48000)
		left[i], right[i] = x, x
	}
	require.NoError(t, writeWAVStereo(inPath, left, right, 48000))

	var oldArgs = os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{
		"masterctl",
		"--input", inPath,
		"--output", outPath,
		"--limiter-threshold", "-1",
		"--report-pattern", reportPattern,
		"--quiet",
	}

	main()

	outLeft, outRight, sampleRate, err := readWAVStereo(outPath)
	require.NoError(t, err)
	assert.Equal(t, 48000.0, sampleRate)
	assert.Equal(t, len(left), len(outLeft))
	assert.Equal(t, len(right), len(outRight))

	// The -1dB limiter ceiling holds, with a little slack for the 16-bit
	// PCM round trip.
	var ceiling = math.Pow(10, -1.0/20)
	for i := range outLeft {
		require.LessOrEqual(t, math.Abs(outLeft[i]), ceiling+0.05, "sample %d", i)
		require.LessOrEqual(t, math.Abs(outRight[i]), ceiling+0.05, "sample %d", i)
	}

	report, err := os.ReadFile(reportPattern)
	require.NoError(t, err)
	assert.Contains(t, string(report), "integrated_lufs")
	assert.Contains(t, string(report), "limiter_latency_samples: 2400")
}
