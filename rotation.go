package audiofilter

import (
	"math"

	"github.com/tphakala/go-audio-filters/transform"
)

// RotationFilter pans a stereo signal around the listener: the left and
// right gains follow (sin(x)+1)/2 and (1-sin(x))/2 while x rotates at the
// configured speed. The angle carries over between buffers.
type RotationFilter struct {
	lifecycle
	fns        *transform.Functions
	sampleRate int
	rotationHz param
	dI         float64
	angle      float64
}

// NewRotationFilter returns a stopped rotation filter for sampleRate.
func NewRotationFilter(sampleRate int, opts ...Option) (*RotationFilter, error) {
	if err := checkSampleRate(sampleRate); err != nil {
		return nil, err
	}
	return &RotationFilter{
		fns:        functionsFor(opts),
		sampleRate: sampleRate,
		rotationHz: param{name: "rotation speed", lo: 0, hi: unbounded},
	}, nil
}

// RotationHz returns the rotation speed in full turns per second.
func (f *RotationFilter) RotationHz() float32 {
	return f.rotationHz.get()
}

// SetRotationHz sets the rotation speed. Negative or non-finite speeds are
// rejected with ErrInvalidParameter. The current angle is kept.
func (f *RotationFilter) SetRotationHz(hz float32) error {
	if err := f.rotationHz.set(hz); err != nil {
		return err
	}
	f.dI = 2 * math.Pi * float64(hz) / float64(f.sampleRate)
	return nil
}

// UpdateRotationHz replaces the speed with fn(current), validated like
// SetRotationHz.
func (f *RotationFilter) UpdateRotationHz(fn func(float32) float32) error {
	return f.SetRotationHz(fn(f.rotationHz.get()))
}

// Angle returns the current rotation angle in radians.
func (f *RotationFilter) Angle() float64 {
	return f.angle
}

// Reset returns the angle to zero.
func (f *RotationFilter) Reset() {
	f.angle = 0
}

// Process implements Filter. The buffer must have exactly two channels. A
// stopped rotation (0 Hz) is a no-op.
func (f *RotationFilter) Process(input [][]float32, offset, length int) error {
	if err := checkStereo(input); err != nil {
		return err
	}
	if err := checkWindow(input, offset, length); err != nil {
		return err
	}

	if f.rotationHz.get() == 0 {
		return nil
	}
	f.angle = f.fns.Rotation(input[0], input[1], offset, length, f.angle, f.dI)
	return nil
}
