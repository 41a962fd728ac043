// Package automaster implements the AI auto-mastering policy: a crest-
// factor-banded lookup table that drives the multiband compressor without
// user input, re-evaluated once per phase-correlation window.
package automaster

// BandSetting is one band's threshold (dB) and ratio.
type BandSetting struct {
	ThresholdDB float64
	Ratio       float64
}

// Policy is the multiband compressor configuration the auto-master chose
// for the current crest factor, or Enabled=false if the signal is already
// dense enough that multiband compression would do more harm than good.
type Policy struct {
	Enabled        bool
	Low, Mid, High BandSetting
}

// crest-factor band boundaries, dB. A high crest factor (big gap between
// peak and RMS) means a dynamic, uncompressed-sounding mix that benefits
// from more aggressive multiband gluing; a low crest factor means the mix
// is already dense and further compression would just pump it.
const (
	veryDynamicCrestDB = 15.0
	dynamicCrestDB     = 12.0
	moderateCrestDB    = 8.0
)

// silentCrestDB is the crest analyzer's silence sentinel. It lands above
// every policy boundary, so without an explicit check silence would read
// as "extremely dynamic" and trigger the most aggressive compression.
const silentCrestDB = 100.0

// SelectPolicy returns the multiband policy for the given crest factor, in dB.
func SelectPolicy(crestFactorDB float64) Policy {
	switch {
	case crestFactorDB >= silentCrestDB:
		return Policy{Enabled: false}
	case crestFactorDB > veryDynamicCrestDB:
		return Policy{
			Enabled: true,
			Low:     BandSetting{-24.0, 3.0},
			Mid:     BandSetting{-20.0, 3.5},
			High:    BandSetting{-18.0, 4.0},
		}
	case crestFactorDB > dynamicCrestDB:
		return Policy{
			Enabled: true,
			Low:     BandSetting{-20.0, 2.5},
			Mid:     BandSetting{-18.0, 3.0},
			High:    BandSetting{-16.0, 3.5},
		}
	case crestFactorDB > moderateCrestDB:
		return Policy{
			Enabled: true,
			Low:     BandSetting{-18.0, 2.0},
			Mid:     BandSetting{-16.0, 2.0},
			High:    BandSetting{-14.0, 2.5},
		}
	default:
		return Policy{Enabled: false}
	}
}
