package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Preset holds every mastering.Engine parameter settable from a saved
// preset file. Fields the file omits keep their DefaultPreset values (see
// LoadPreset). A preset is applied before flags rather than after: flags
// on the command line win.
type Preset struct {
	InputGainDB float64    `yaml:"input_gain_db"`
	EQGainsDB   [7]float64 `yaml:"eq_gains_db"`

	DeEsserEnabled   bool    `yaml:"de_esser_enabled"`
	DeEsserThreshold float64 `yaml:"de_esser_threshold_db"`
	DeEsserRatio     float64 `yaml:"de_esser_ratio"`

	MultibandEnabled bool       `yaml:"multiband_enabled"`
	LowThresholdDB   float64    `yaml:"low_threshold_db"`
	LowRatio         float64    `yaml:"low_ratio"`
	MidThresholdDB   float64    `yaml:"mid_threshold_db"`
	MidRatio         float64    `yaml:"mid_ratio"`
	HighThresholdDB  float64    `yaml:"high_threshold_db"`
	HighRatio        float64    `yaml:"high_ratio"`

	StereoWidth float64 `yaml:"stereo_width"`

	SaturationDrive float64 `yaml:"saturation_drive"`
	SaturationMix   float64 `yaml:"saturation_mix"`

	LimiterThresholdDB float64 `yaml:"limiter_threshold_db"`
	LimiterReleaseSec  float64 `yaml:"limiter_release_sec"`
	SafeClipMode       bool    `yaml:"safe_clip_mode"`

	DitherEnabled bool `yaml:"dither_enabled"`
	DitherBits    int  `yaml:"dither_bits"`

	AIEnabled bool `yaml:"ai_enabled"`
}

// DefaultPreset mirrors mastering.New's own defaults, so loading no preset
// file at all behaves the same as loading this one.
func DefaultPreset() Preset {
	return Preset{
		LowThresholdDB:     -20,
		MidThresholdDB:     -20,
		HighThresholdDB:    -20,
		LowRatio:           4,
		MidRatio:           4,
		HighRatio:          4,
		DeEsserThreshold:   -20,
		DeEsserRatio:       4,
		StereoWidth:        1,
		SaturationDrive:    1,
		SaturationMix:      0.5,
		LimiterThresholdDB: -1,
		LimiterReleaseSec:  0.05,
		DitherBits:         16,
	}
}

// LoadPreset reads a YAML preset file, starting from DefaultPreset so any
// field the file omits keeps its engine-default value.
func LoadPreset(path string) (Preset, error) {
	var preset = DefaultPreset()
	if path == "" {
		return preset, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return preset, err
	}
	if err := yaml.Unmarshal(data, &preset); err != nil {
		return preset, err
	}
	return preset, nil
}
