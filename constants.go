package audiofilter

import "math"

// Channel constants
const (
	stereoChannels = 2   // Channel count required by stereo filters
	maxChannels    = 256 // Maximum supported channel count
)

// Volume filter limits
const (
	minVolume     = 0.0
	maxVolume     = 5.0
	defaultVolume = 1.0

	// volumeIdentityTolerance is the distance from unity below which the
	// volume filter leaves samples untouched.
	volumeIdentityTolerance = 0.02
)

// Channel mix coefficient limits
const (
	minMixCoefficient = -1.0
	maxMixCoefficient = 1.0
)

// Tremolo defaults
const (
	defaultTremoloFrequency = 2.0
	defaultTremoloDepth     = 0.5
	maxTremoloDepth         = 1.0
)

// unbounded is the upper limit of parameters without a natural maximum.
const unbounded = math.MaxFloat32

// Converter filter defaults
const (
	defaultConverterBufferSize = 4096 // Samples per channel per downstream call
)

// Sample rate limits
const (
	minSampleRate = 1
	maxSampleRate = 1 << 20
)

// Version is the library version in MAJOR.MINOR.REVISION form.
const Version = "0.1.0"
