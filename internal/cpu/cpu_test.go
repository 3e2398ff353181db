package cpu

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectFeatures_Architecture(t *testing.T) {
	ResetDetection()
	defer ResetDetection()

	f := DetectFeatures()
	assert.Equal(t, runtime.GOARCH, f.Architecture)
	assert.Equal(t, f, DetectFeatures(), "detection must be cached")
}

func TestSetForcedFeatures(t *testing.T) {
	defer ResetDetection()

	SetForcedFeatures(Features{HasAVX2: true, Architecture: "amd64"})
	f := DetectFeatures()
	assert.True(t, f.HasAVX2)
	assert.True(t, f.HasVectorUnit())

	SetForcedFeatures(Features{HasAVX2: true, ForceGeneric: true})
	assert.False(t, DetectFeatures().HasVectorUnit())

	SetForcedFeatures(Features{})
	assert.False(t, DetectFeatures().HasVectorUnit())
}
