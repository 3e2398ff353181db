package transform

// Backend names.
const (
	// ScalarName is the name of the portable reference implementation.
	ScalarName = "scalar"

	// VectorName is the conventional name of the optimized counterpart.
	VectorName = "vector"
)

// EnvBackend names the environment variable read once at resolution time to
// override the backend choice.
const EnvBackend = "AUDIOFILTER_BACKEND"

// Sample range.
const (
	minSample = -1.0
	maxSample = 1.0
)

// Legacy volume curve constants. They reproduce the integer volume curve of
// the 16-bit PCM processor this transform replaces and must not be tuned.
const (
	// VolumeCurveKnee is the highest volume on the tangent curve.
	VolumeCurveKnee = 1.5

	// MultiplierScale is the fixed-point scale of VolumeMultiplier.
	MultiplierScale = 10000

	tangentSlope      = 0.79  // tan(volume * tangentSlope)
	linearRegimeGain  = 24612 // Linear regime: linearRegimeGain * percent / linearRegimeKnee
	linearRegimeKnee  = 150
	volumePercentUnit = 100
)

// Rotation gain mapping: sin in [-1, 1] maps to gain in [0, 1].
const (
	gainOffset  = 1
	gainDivisor = 2
)
