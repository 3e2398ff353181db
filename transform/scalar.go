package transform

import "math"

// Scalar is the portable reference implementation of every operation.
//
// Products that are summed are converted to float32 explicitly so the
// compiler cannot fuse them into FMA instructions; results are then
// identical on every architecture.
type Scalar struct{}

// Name implements Backend.
func (Scalar) Name() string { return ScalarName }

// VolumeMultiplier returns the fixed-point multiplier (scaled by 10000) for
// a volume in [0, 5]. Volumes up to 1.5 follow a tangent curve; above that
// the curve is linear so it does not approach the tangent's asymptote.
func VolumeMultiplier(volume float32) float32 {
	if volume <= VolumeCurveKnee {
		return float32(math.Tan(float64(volume*tangentSlope)) * MultiplierScale)
	}
	return linearRegimeGain * (volume * volumePercentUnit) / linearRegimeKnee
}

// Volume scales each sample by VolumeMultiplier(volume)/10000 and saturates
// the result to [-1, 1].
func (Scalar) Volume(buf []float32, offset, length int, volume float32) {
	multiplier := VolumeMultiplier(volume)
	win := buf[offset : offset+length]
	for i, s := range win {
		win[i] = Clamp(s * multiplier / MultiplierScale)
	}
}

// ChannelMix replaces each (l, r) pair with
// (ltl*l + rtl*r, ltr*l + rtr*r), both computed from the original pair and
// saturated to [-1, 1].
func (Scalar) ChannelMix(left, right []float32, offset, length int, ltl, ltr, rtl, rtr float32) {
	l := left[offset : offset+length]
	r := right[offset : offset+length]
	for i := range l {
		lv, rv := l[i], r[i]
		l[i] = Clamp(float32(ltl*lv) + float32(rtl*rv))
		r[i] = Clamp(float32(ltr*lv) + float32(rtr*rv))
	}
}

// Rotation multiplies left by (sin(x)+1)/2 and right by (1-sin(x))/2,
// advancing x by dI per sample. The gains are complementary and lie in
// [0, 1].
func (Scalar) Rotation(left, right []float32, offset, length int, x, dI float64) float64 {
	l := left[offset : offset+length]
	r := right[offset : offset+length]
	for i := range l {
		lg, rg := RotationGains(x)
		l[i] *= lg
		r[i] *= rg
		x += dI
	}
	return x
}

// RotationGains returns the left and right gains for angle x.
func RotationGains(x float64) (left, right float32) {
	s := math.Sin(x)
	return float32(s+gainOffset) / gainDivisor, float32(gainOffset-s) / gainDivisor
}

// Tremolo multiplies each sample by (1-depth) + depth*sin(phase), advancing
// phase by 2π*frequency/sampleRate per sample. Output is not clamped: for
// depth in [0, 1] the modulation never exceeds 1.
func (Scalar) Tremolo(buf []float32, offset, length, sampleRate int, frequency, depth float32, phase float64) float64 {
	step := TremoloStep(sampleRate, frequency)
	win := buf[offset : offset+length]
	for i := range win {
		win[i] *= TremoloGain(depth, phase)
		phase += step
	}
	return phase
}

// TremoloStep returns the per-sample phase increment.
func TremoloStep(sampleRate int, frequency float32) float64 {
	return 2 * math.Pi * float64(frequency) / float64(sampleRate)
}

// TremoloGain returns the modulation signal at phase.
func TremoloGain(depth float32, phase float64) float32 {
	return (1 - depth) + float32(depth*float32(math.Sin(phase)))
}

// Clamp saturates v to the sample range [-1, 1].
func Clamp(v float32) float32 {
	return max(minSample, min(maxSample, v))
}
