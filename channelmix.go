package audiofilter

import "github.com/tphakala/go-audio-filters/transform"

// MixMatrix holds the coefficients of a 2x2 stereo mix:
//
//	left'  = LeftToLeft*left  + RightToLeft*right
//	right' = LeftToRight*left + RightToRight*right
type MixMatrix struct {
	LeftToLeft   float32
	LeftToRight  float32
	RightToLeft  float32
	RightToRight float32
}

// Common mixes.
var (
	IdentityMix = MixMatrix{LeftToLeft: 1, RightToRight: 1}
	SwapMix     = MixMatrix{LeftToRight: 1, RightToLeft: 1}
	MonoMix     = MixMatrix{LeftToLeft: 0.5, LeftToRight: 0.5, RightToLeft: 0.5, RightToRight: 0.5}
)

// ChannelMixFilter blends the two channels of a stereo buffer. Coefficients
// lie in [-1, 1]; the default is the identity mix.
type ChannelMixFilter struct {
	lifecycle
	fns *transform.Functions

	leftToLeft   param
	leftToRight  param
	rightToLeft  param
	rightToRight param
}

// NewChannelMixFilter returns a channel mix filter with the identity mix.
func NewChannelMixFilter(opts ...Option) *ChannelMixFilter {
	coeff := func(name string, v float32) param {
		return param{name: name, lo: minMixCoefficient, hi: maxMixCoefficient, value: v}
	}
	return &ChannelMixFilter{
		fns:          functionsFor(opts),
		leftToLeft:   coeff("left-to-left", IdentityMix.LeftToLeft),
		leftToRight:  coeff("left-to-right", IdentityMix.LeftToRight),
		rightToLeft:  coeff("right-to-left", IdentityMix.RightToLeft),
		rightToRight: coeff("right-to-right", IdentityMix.RightToRight),
	}
}

// Mix returns the current coefficients.
func (f *ChannelMixFilter) Mix() MixMatrix {
	return MixMatrix{
		LeftToLeft:   f.leftToLeft.get(),
		LeftToRight:  f.leftToRight.get(),
		RightToLeft:  f.rightToLeft.get(),
		RightToRight: f.rightToRight.get(),
	}
}

// SetMix replaces all four coefficients. Either every coefficient is valid
// and all are stored, or none is.
func (f *ChannelMixFilter) SetMix(m MixMatrix) error {
	checks := []struct {
		p *param
		v float32
	}{
		{&f.leftToLeft, m.LeftToLeft},
		{&f.leftToRight, m.LeftToRight},
		{&f.rightToLeft, m.RightToLeft},
		{&f.rightToRight, m.RightToRight},
	}
	for _, c := range checks {
		if err := c.p.check(c.v); err != nil {
			return err
		}
	}
	for _, c := range checks {
		c.p.value = c.v
	}
	return nil
}

// LeftToLeft returns the share of the left input kept on the left output.
func (f *ChannelMixFilter) LeftToLeft() float32 { return f.leftToLeft.get() }

// LeftToRight returns the share of the left input sent to the right output.
func (f *ChannelMixFilter) LeftToRight() float32 { return f.leftToRight.get() }

// RightToLeft returns the share of the right input sent to the left output.
func (f *ChannelMixFilter) RightToLeft() float32 { return f.rightToLeft.get() }

// RightToRight returns the share of the right input kept on the right output.
func (f *ChannelMixFilter) RightToRight() float32 { return f.rightToRight.get() }

// SetLeftToLeft sets the left-to-left coefficient.
func (f *ChannelMixFilter) SetLeftToLeft(v float32) error { return f.leftToLeft.set(v) }

// SetLeftToRight sets the left-to-right coefficient.
func (f *ChannelMixFilter) SetLeftToRight(v float32) error { return f.leftToRight.set(v) }

// SetRightToLeft sets the right-to-left coefficient.
func (f *ChannelMixFilter) SetRightToLeft(v float32) error { return f.rightToLeft.set(v) }

// SetRightToRight sets the right-to-right coefficient.
func (f *ChannelMixFilter) SetRightToRight(v float32) error { return f.rightToRight.set(v) }

// UpdateLeftToLeft replaces the coefficient with fn(current).
func (f *ChannelMixFilter) UpdateLeftToLeft(fn func(float32) float32) error {
	return f.leftToLeft.update(fn)
}

// UpdateLeftToRight replaces the coefficient with fn(current).
func (f *ChannelMixFilter) UpdateLeftToRight(fn func(float32) float32) error {
	return f.leftToRight.update(fn)
}

// UpdateRightToLeft replaces the coefficient with fn(current).
func (f *ChannelMixFilter) UpdateRightToLeft(fn func(float32) float32) error {
	return f.rightToLeft.update(fn)
}

// UpdateRightToRight replaces the coefficient with fn(current).
func (f *ChannelMixFilter) UpdateRightToRight(fn func(float32) float32) error {
	return f.rightToRight.update(fn)
}

// Process implements Filter. The buffer must have exactly two channels. The
// identity mix is a no-op.
func (f *ChannelMixFilter) Process(input [][]float32, offset, length int) error {
	if err := checkStereo(input); err != nil {
		return err
	}
	if err := checkWindow(input, offset, length); err != nil {
		return err
	}

	m := f.Mix()
	if m == IdentityMix {
		return nil
	}
	f.fns.ChannelMix(input[0], input[1], offset, length,
		m.LeftToLeft, m.LeftToRight, m.RightToLeft, m.RightToRight)
	return nil
}
