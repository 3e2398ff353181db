package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-filters/transform"
)

func TestVolumeCurve(t *testing.T) {
	points := volumeCurve(curveStep, curveMax)
	require.Len(t, points, 21)
	assert.Zero(t, points[0].multiplier)
	for i := 1; i < len(points); i++ {
		assert.Greater(t, points[i].multiplier, points[i-1].multiplier, "curve must be increasing at %v", points[i].volume)
	}
}

func TestCompareBackends_ReferenceIsExact(t *testing.T) {
	for _, r := range compareBackends(transform.Reference(), transform.Reference()) {
		assert.Zero(t, r.max, r.op)
		assert.Zero(t, r.mean, r.op)
	}
}

func TestTremoloSpectrum(t *testing.T) {
	carrier, sideband := tremoloSpectrum()
	assert.InDelta(t, 1-spectrumDepth, carrier, 1e-3)
	assert.InDelta(t, spectrumDepth/2, sideband, 1e-3)
}
