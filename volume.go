package audiofilter

import (
	"math"

	"github.com/tphakala/go-audio-filters/transform"
)

// VolumeFilter scales amplitude with a multiplier in [0, 5]. 1.0 leaves the
// signal unmodified.
type VolumeFilter struct {
	lifecycle
	fns    *transform.Functions
	volume param
}

// NewVolumeFilter returns a volume filter at unity volume.
func NewVolumeFilter(opts ...Option) *VolumeFilter {
	return &VolumeFilter{
		fns: functionsFor(opts),
		volume: param{
			name:  "volume",
			lo:    minVolume,
			hi:    maxVolume,
			value: defaultVolume,
		},
	}
}

// Volume returns the volume multiplier.
func (f *VolumeFilter) Volume() float32 {
	return f.volume.get()
}

// SetVolume sets the volume multiplier. It returns ErrInvalidParameter
// outside [0, 5] and leaves the previous value in place.
func (f *VolumeFilter) SetVolume(volume float32) error {
	return f.volume.set(volume)
}

// UpdateVolume replaces the volume with fn(current), validated like
// SetVolume.
func (f *VolumeFilter) UpdateVolume(fn func(float32) float32) error {
	return f.volume.update(fn)
}

// Process implements Filter. Volumes within 0.02 of unity are a no-op.
func (f *VolumeFilter) Process(input [][]float32, offset, length int) error {
	if err := checkWindow(input, offset, length); err != nil {
		return err
	}

	volume := f.volume.get()
	if math.Abs(1-float64(volume)) < volumeIdentityTolerance {
		return nil
	}
	for _, samples := range input {
		f.fns.Volume(samples, offset, length, volume)
	}
	return nil
}
