package audiofilter

import (
	"fmt"

	"github.com/tphakala/go-audio-filters/internal/simdops"
)

// Common sample rates for convenience functions.
const (
	// RateCD is the CD quality sample rate (Red Book standard).
	RateCD = 44100

	// RateDAT is the DAT/DVD sample rate, also used by most streaming pipelines.
	RateDAT = 48000
)

// NewVolume returns a volume filter already set to volume.
func NewVolume(volume float32, opts ...Option) (*VolumeFilter, error) {
	f := NewVolumeFilter(opts...)
	if err := f.SetVolume(volume); err != nil {
		return nil, err
	}
	return f, nil
}

// NewTremolo returns a tremolo filter with the given frequency and depth.
func NewTremolo(sampleRate int, frequency, depth float32, opts ...Option) (*TremoloFilter, error) {
	f, err := NewTremoloFilter(sampleRate, opts...)
	if err != nil {
		return nil, err
	}
	if err := f.SetFrequency(frequency); err != nil {
		return nil, err
	}
	if err := f.SetDepth(depth); err != nil {
		return nil, err
	}
	return f, nil
}

// NewRotation returns a rotation filter turning at hz.
func NewRotation(sampleRate int, hz float32, opts ...Option) (*RotationFilter, error) {
	f, err := NewRotationFilter(sampleRate, opts...)
	if err != nil {
		return nil, err
	}
	if err := f.SetRotationHz(hz); err != nil {
		return nil, err
	}
	return f, nil
}

// Interleave writes planar channels into dst as [c0[0], c1[0], ..., c0[1], ...].
// It writes min(len(dst)/len(src), shortest channel) frames and returns the
// frame count.
func Interleave(dst []float32, src [][]float32) int {
	channels := len(src)
	if channels == 0 {
		return 0
	}
	frames := len(dst) / channels
	for _, ch := range src {
		frames = min(frames, len(ch))
	}

	if channels == stereoChannels {
		simdops.Float32Ops().Interleave2(dst[:frames*stereoChannels], src[0][:frames], src[1][:frames])
		return frames
	}
	for i := range frames {
		for ch := range channels {
			dst[i*channels+ch] = src[ch][i]
		}
	}
	return frames
}

// Deinterleave splits interleaved samples into the planar channels of dst
// and returns the number of frames written.
func Deinterleave(dst [][]float32, src []float32) int {
	channels := len(dst)
	if channels == 0 {
		return 0
	}
	frames := len(src) / channels
	for _, ch := range dst {
		frames = min(frames, len(ch))
	}

	if channels == stereoChannels {
		simdops.Float32Ops().Deinterleave2(dst[0][:frames], dst[1][:frames], src[:frames*stereoChannels])
		return frames
	}
	for i := range frames {
		for ch := range channels {
			dst[ch][i] = src[i*channels+ch]
		}
	}
	return frames
}

// ProcessInterleaved runs f over interleaved samples with the given channel
// count, converting through scratch planar buffers. scratch is reused when
// it has enough capacity and the possibly grown buffer is returned.
func ProcessInterleaved(f Filter, samples []float32, channels int, scratch [][]float32) ([][]float32, error) {
	if channels < 1 || channels > maxChannels {
		return scratch, fmt.Errorf("%w: channels must be 1-%d, got %d", ErrChannelCount, maxChannels, channels)
	}
	if len(samples)%channels != 0 {
		return scratch, fmt.Errorf("%w: %d samples do not divide into %d channels",
			ErrInvalidWindow, len(samples), channels)
	}

	frames := len(samples) / channels
	if len(scratch) != channels {
		scratch = make([][]float32, channels)
	}
	for ch := range scratch {
		if cap(scratch[ch]) < frames {
			scratch[ch] = make([]float32, frames)
		}
		scratch[ch] = scratch[ch][:frames]
	}

	Deinterleave(scratch, samples)
	if err := f.Process(scratch, 0, frames); err != nil {
		return scratch, err
	}
	Interleave(samples, scratch)
	return scratch, nil
}
