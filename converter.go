package audiofilter

import (
	"errors"
	"fmt"
	"time"
)

// Converter transforms one channel from an input slice into an output
// slice. in and out may be the same slice with the same offset.
type Converter interface {
	Process(in []float32, inOffset int, out []float32, outOffset, length int)
	Close() error
}

// ConverterFilter adapts per-channel Converters to a Filter. Each channel
// gets its own converter from the factory.
//
// With a positive buffer size, the window is converted in chunks of at most
// bufferSize samples into buffers owned by the filter, and each chunk is
// passed to downstream. With bufferSize 0 the conversion happens in place
// and downstream receives the original window.
type ConverterFilter struct {
	converters []Converter
	downstream Filter
	segments   [][]float32
	bufferSize int
}

// NewConverterFilter returns a filter for channels channels. A negative
// bufferSize selects the default of 4096 samples. downstream may be nil.
func NewConverterFilter(factory func() Converter, downstream Filter, channels, bufferSize int) (*ConverterFilter, error) {
	if factory == nil {
		return nil, fmt.Errorf("%w: converter factory is nil", ErrInvalidConfig)
	}
	if channels < 1 || channels > maxChannels {
		return nil, fmt.Errorf("%w: channels must be 1-%d, got %d", ErrInvalidConfig, maxChannels, channels)
	}
	if bufferSize < 0 {
		bufferSize = defaultConverterBufferSize
	}

	f := &ConverterFilter{
		converters: make([]Converter, channels),
		downstream: downstream,
		bufferSize: bufferSize,
	}
	for ch := range f.converters {
		f.converters[ch] = factory()
	}
	if bufferSize > 0 {
		f.segments = make([][]float32, channels)
		for ch := range f.segments {
			f.segments[ch] = make([]float32, bufferSize)
		}
	}
	return f, nil
}

// Process implements Filter.
func (f *ConverterFilter) Process(input [][]float32, offset, length int) error {
	if len(input) != len(f.converters) {
		return fmt.Errorf("%w: filter has %d channels, got %d", ErrChannelCount, len(f.converters), len(input))
	}
	if err := checkWindow(input, offset, length); err != nil {
		return err
	}

	if f.segments == nil {
		for ch, c := range f.converters {
			c.Process(input[ch], offset, input[ch], offset, length)
		}
		return f.forward(input, offset, length)
	}

	for done := 0; done < length; {
		n := min(f.bufferSize, length-done)
		for ch, c := range f.converters {
			c.Process(input[ch], offset+done, f.segments[ch], 0, n)
		}
		if err := f.forward(f.segments, 0, n); err != nil {
			return err
		}
		done += n
	}
	return nil
}

func (f *ConverterFilter) forward(buf [][]float32, offset, length int) error {
	if f.downstream == nil {
		return nil
	}
	return f.downstream.Process(buf, offset, length)
}

// SeekPerformed implements Filter. It is forwarded to downstream.
func (f *ConverterFilter) SeekPerformed(requested, provided time.Duration) {
	if f.downstream != nil {
		f.downstream.SeekPerformed(requested, provided)
	}
}

// Flush implements Filter. It is forwarded to downstream.
func (f *ConverterFilter) Flush() error {
	if f.downstream == nil {
		return nil
	}
	return f.downstream.Flush()
}

// Close closes every converter. The downstream filter is left open; its
// owner closes it.
func (f *ConverterFilter) Close() error {
	var errs []error
	for _, c := range f.converters {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
