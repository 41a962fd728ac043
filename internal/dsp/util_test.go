package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDBLinearRoundTrip(t *testing.T) {
	for _, db := range []float64{-60, -20, -6, -1, 0, 1, 6} {
		assert.InDelta(t, db, LinearToDB(DBToLinear(db)), 1e-9)
	}
}

func TestFastTanh_ClampsBeyondThree(t *testing.T) {
	assert.Equal(t, -1.0, FastTanh(-5))
	assert.Equal(t, 1.0, FastTanh(5))
}

func TestHardClip(t *testing.T) {
	assert.Equal(t, 0.5, HardClip(0.5, 1.0))
	assert.Equal(t, 1.0, HardClip(2.0, 1.0))
	assert.Equal(t, -1.0, HardClip(-2.0, 1.0))
}
