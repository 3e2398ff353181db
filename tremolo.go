package audiofilter

import "github.com/tphakala/go-audio-filters/transform"

// TremoloFilter modulates amplitude with a sine LFO. Frequency is in Hz and
// must be positive; depth lies in (0, 1]. The same phase drives every
// channel and carries over between buffers.
type TremoloFilter struct {
	lifecycle
	fns        *transform.Functions
	sampleRate int
	frequency  param
	depth      param
	phase      float64
}

// NewTremoloFilter returns a tremolo at 2 Hz with depth 0.5.
func NewTremoloFilter(sampleRate int, opts ...Option) (*TremoloFilter, error) {
	if err := checkSampleRate(sampleRate); err != nil {
		return nil, err
	}
	return &TremoloFilter{
		fns:        functionsFor(opts),
		sampleRate: sampleRate,
		frequency: param{
			name:        "frequency",
			lo:          0,
			loExclusive: true,
			hi:          unbounded,
			value:       defaultTremoloFrequency,
		},
		depth: param{
			name:        "depth",
			lo:          0,
			loExclusive: true,
			hi:          maxTremoloDepth,
			value:       defaultTremoloDepth,
		},
	}, nil
}

// Frequency returns the LFO frequency in Hz.
func (f *TremoloFilter) Frequency() float32 { return f.frequency.get() }

// SetFrequency sets the LFO frequency; it must be > 0.
func (f *TremoloFilter) SetFrequency(hz float32) error { return f.frequency.set(hz) }

// UpdateFrequency replaces the frequency with fn(current).
func (f *TremoloFilter) UpdateFrequency(fn func(float32) float32) error {
	return f.frequency.update(fn)
}

// Depth returns the modulation depth.
func (f *TremoloFilter) Depth() float32 { return f.depth.get() }

// SetDepth sets the modulation depth; it must lie in (0, 1].
func (f *TremoloFilter) SetDepth(depth float32) error { return f.depth.set(depth) }

// UpdateDepth replaces the depth with fn(current).
func (f *TremoloFilter) UpdateDepth(fn func(float32) float32) error {
	return f.depth.update(fn)
}

// Phase returns the LFO phase in radians.
func (f *TremoloFilter) Phase() float64 {
	return f.phase
}

// Reset returns the phase to zero.
func (f *TremoloFilter) Reset() {
	f.phase = 0
}

// Process implements Filter.
func (f *TremoloFilter) Process(input [][]float32, offset, length int) error {
	if err := checkWindow(input, offset, length); err != nil {
		return err
	}
	if len(input) == 0 {
		return nil
	}

	freq, depth := f.frequency.get(), f.depth.get()
	next := f.phase
	for _, samples := range input {
		next = f.fns.Tremolo(samples, offset, length, f.sampleRate, freq, depth, f.phase)
	}
	f.phase = next
	return nil
}
