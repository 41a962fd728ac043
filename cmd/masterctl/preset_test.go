package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundworks/mastering"
)

// The engine's own construction defaults, which DefaultPreset claims to
// mirror. Keep in sync with mastering.New and its subsystem constructors.
func TestDefaultPreset_MirrorsEngineDefaults(t *testing.T) {
	var p = DefaultPreset()

	assert.Equal(t, 0.0, p.InputGainDB)
	assert.Equal(t, [7]float64{}, p.EQGainsDB)

	assert.False(t, p.DeEsserEnabled)
	assert.Equal(t, -20.0, p.DeEsserThreshold)
	assert.Equal(t, 4.0, p.DeEsserRatio)

	assert.False(t, p.MultibandEnabled)
	assert.Equal(t, -20.0, p.LowThresholdDB)
	assert.Equal(t, -20.0, p.MidThresholdDB)
	assert.Equal(t, -20.0, p.HighThresholdDB)
	assert.Equal(t, 4.0, p.LowRatio)
	assert.Equal(t, 4.0, p.MidRatio)
	assert.Equal(t, 4.0, p.HighRatio)

	assert.Equal(t, 1.0, p.StereoWidth)
	assert.Equal(t, 1.0, p.SaturationDrive)
	assert.Equal(t, 0.5, p.SaturationMix)

	assert.Equal(t, -1.0, p.LimiterThresholdDB)
	assert.Equal(t, 0.05, p.LimiterReleaseSec)
	assert.False(t, p.SafeClipMode)

	assert.False(t, p.DitherEnabled)
	assert.Equal(t, 16, p.DitherBits)

	assert.False(t, p.AIEnabled)
}

// Applying the default preset must be indistinguishable from not touching
// the engine at all: same settings in, sample-identical audio out.
func TestApplyPreset_DefaultIsTransparent(t *testing.T) {
	var fresh = mastering.New(48000)
	var preset = mastering.New(48000)
	applyPreset(preset, DefaultPreset())

	for i := 0; i < 20000; i++ {
		var x = 0.4 * math.Sin(2*math.Pi*440*float64(i)/48000)
		var fl, fr = x, x
		var pl, pr = x, x
		fresh.ProcessStereo(&fl, &fr)
		preset.ProcessStereo(&pl, &pr)
		require.Equal(t, fl, pl, "sample %d", i)
		require.Equal(t, fr, pr, "sample %d", i)
	}
}

func TestLoadPreset_EmptyPathReturnsDefaults(t *testing.T) {
	var p, err = LoadPreset("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPreset(), p)
}

// A preset file that only enables the multiband compressor must keep the
// default -20dB band thresholds rather than silently resetting them to
// 0dB, which would make the bands near-inert on real program material.
func TestLoadPreset_OmittedFieldsKeepDefaults(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "preset.yaml")
	require.NoError(t, os.WriteFile(path, []byte("multiband_enabled: true\nstereo_width: 1.5\n"), 0o644))

	var p, err = LoadPreset(path)
	require.NoError(t, err)

	assert.True(t, p.MultibandEnabled)
	assert.Equal(t, 1.5, p.StereoWidth)
	assert.Equal(t, -20.0, p.LowThresholdDB)
	assert.Equal(t, -20.0, p.MidThresholdDB)
	assert.Equal(t, -20.0, p.HighThresholdDB)
	assert.Equal(t, 4.0, p.LowRatio)
	assert.Equal(t, 16, p.DitherBits)
}

func TestLoadPreset_OverridesEveryField(t *testing.T) {
	var yaml = `
input_gain_db: 2
eq_gains_db: [1, 0, 0, 0, 0, 0, 3]
de_esser_enabled: true
de_esser_threshold_db: -30
de_esser_ratio: 6
low_threshold_db: -24
low_ratio: 3
limiter_threshold_db: -0.5
safe_clip_mode: true
dither_enabled: true
dither_bits: 20
ai_enabled: true
`
	var path = filepath.Join(t.TempDir(), "preset.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	var p, err = LoadPreset(path)
	require.NoError(t, err)

	assert.Equal(t, 2.0, p.InputGainDB)
	assert.Equal(t, [7]float64{1, 0, 0, 0, 0, 0, 3}, p.EQGainsDB)
	assert.True(t, p.DeEsserEnabled)
	assert.Equal(t, -30.0, p.DeEsserThreshold)
	assert.Equal(t, 6.0, p.DeEsserRatio)
	assert.Equal(t, -24.0, p.LowThresholdDB)
	assert.Equal(t, 3.0, p.LowRatio)
	assert.Equal(t, -20.0, p.MidThresholdDB, "omitted band keeps its default")
	assert.Equal(t, -0.5, p.LimiterThresholdDB)
	assert.True(t, p.SafeClipMode)
	assert.True(t, p.DitherEnabled)
	assert.Equal(t, 20, p.DitherBits)
	assert.True(t, p.AIEnabled)
}

func TestLoadPreset_MissingFileErrors(t *testing.T) {
	var _, err = LoadPreset(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadPreset_MalformedYAMLErrors(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stereo_width: [not a number\n"), 0o644))

	var _, err = LoadPreset(path)
	assert.Error(t, err)
}
