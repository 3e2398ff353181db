package audiofilter

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/tphakala/go-audio-filters/transform"
)

// Filter processes a window of a multi-channel buffer in place.
type Filter interface {
	// Process transforms input[ch][offset:offset+length] for every channel.
	// Windows must be delivered in stream order and must not overlap.
	Process(input [][]float32, offset, length int) error

	// SeekPerformed notifies the filter that playback was repositioned.
	SeekPerformed(requested, provided time.Duration)

	// Flush is called when no more input follows the current position.
	Flush() error

	// Close releases any resources held by the filter.
	Close() error
}

// Common errors returned by the filters.
var (
	// ErrInvalidParameter indicates a parameter outside its documented range.
	ErrInvalidParameter = errors.New("invalid filter parameter")

	// ErrInvalidWindow indicates an offset/length pair outside the buffer.
	ErrInvalidWindow = errors.New("invalid buffer window")

	// ErrChannelCount indicates a buffer with an unsupported channel count.
	ErrChannelCount = errors.New("unsupported channel count")

	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid filter configuration")
)

// Option configures a filter.
type Option func(*options)

type options struct {
	fns *transform.Functions
}

// WithFunctions pins a filter to a specific operation set instead of the
// process-wide default.
func WithFunctions(fns *transform.Functions) Option {
	return func(o *options) {
		o.fns = fns
	}
}

func functionsFor(opts []Option) *transform.Functions {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.fns == nil {
		return transform.Default()
	}
	return o.fns
}

// param is a validated scalar filter parameter.
type param struct {
	name        string
	lo, hi      float32
	loExclusive bool
	value       float32
}

func (p *param) get() float32 {
	return p.value
}

func (p *param) check(v float32) error {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidParameter, p.name, v)
	}
	if p.loExclusive && v <= p.lo {
		return fmt.Errorf("%w: %s must be > %v, got %v", ErrInvalidParameter, p.name, p.lo, v)
	}
	if v < p.lo {
		return fmt.Errorf("%w: %s must be >= %v, got %v", ErrInvalidParameter, p.name, p.lo, v)
	}
	if v > p.hi {
		return fmt.Errorf("%w: %s must be <= %v, got %v", ErrInvalidParameter, p.name, p.hi, v)
	}
	return nil
}

func (p *param) set(v float32) error {
	if err := p.check(v); err != nil {
		return err
	}
	p.value = v
	return nil
}

// update applies fn to the current value and validates the result exactly
// like set.
func (p *param) update(fn func(float32) float32) error {
	return p.set(fn(p.value))
}

// checkWindow validates that [offset, offset+length) lies inside every
// channel of input.
func checkWindow(input [][]float32, offset, length int) error {
	if offset < 0 || length < 0 {
		return fmt.Errorf("%w: offset %d, length %d", ErrInvalidWindow, offset, length)
	}
	end := offset + length
	for ch, samples := range input {
		if end > len(samples) {
			return fmt.Errorf("%w: window [%d, %d) exceeds channel %d length %d",
				ErrInvalidWindow, offset, end, ch, len(samples))
		}
	}
	return nil
}

func checkStereo(input [][]float32) error {
	if len(input) != stereoChannels {
		return fmt.Errorf("%w: need %d channels, got %d", ErrChannelCount, stereoChannels, len(input))
	}
	return nil
}

func checkSampleRate(sampleRate int) error {
	if sampleRate < minSampleRate || sampleRate > maxSampleRate {
		return fmt.Errorf("%w: sample rate %d out of range [%d, %d]",
			ErrInvalidParameter, sampleRate, minSampleRate, maxSampleRate)
	}
	return nil
}

// lifecycle implements the Filter hooks for filters whose state survives
// seeks. A rotation or tremolo keeps its phase across a seek: the
// modulation continues where it was rather than restarting.
type lifecycle struct{}

func (lifecycle) SeekPerformed(_, _ time.Duration) {}

func (lifecycle) Flush() error { return nil }

func (lifecycle) Close() error { return nil }
