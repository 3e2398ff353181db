package audiofilter

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-filters/internal/testutil"
)

// doubler writes 2*in into out.
type doubler struct {
	closeErr error
	closed   *int
}

func (d *doubler) Process(in []float32, inOffset int, out []float32, outOffset, length int) {
	for i := range length {
		out[outOffset+i] = 2 * in[inOffset+i]
	}
}

func (d *doubler) Close() error {
	if d.closed != nil {
		*d.closed++
	}
	return d.closeErr
}

// collector appends every window it receives.
type collector struct {
	lifecycle
	chunks  []int
	samples [][]float32
	flushes int
}

func (c *collector) Process(input [][]float32, offset, length int) error {
	c.chunks = append(c.chunks, length)
	if c.samples == nil {
		c.samples = make([][]float32, len(input))
	}
	for ch := range input {
		c.samples[ch] = append(c.samples[ch], input[ch][offset:offset+length]...)
	}
	return nil
}

func (c *collector) Flush() error {
	c.flushes++
	return nil
}

func TestNewConverterFilter_Validation(t *testing.T) {
	_, err := NewConverterFilter(nil, nil, 2, 0)
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewConverterFilter(func() Converter { return &doubler{} }, nil, 0, 0)
	require.ErrorIs(t, err, ErrInvalidConfig)

	f, err := NewConverterFilter(func() Converter { return &doubler{} }, nil, 1, -1)
	require.NoError(t, err)
	assert.Equal(t, defaultConverterBufferSize, f.bufferSize)
}

func TestConverterFilter_InPlace(t *testing.T) {
	down := &collector{}
	f, err := NewConverterFilter(func() Converter { return &doubler{} }, down, 2, 0)
	require.NoError(t, err)

	buf := [][]float32{{0.1, 0.2, 0.3, 0.4}, {-0.1, -0.2, -0.3, -0.4}}
	require.NoError(t, f.Process(buf, 1, 2))

	assert.Equal(t, []float32{0.1, 0.4, 0.6, 0.4}, buf[0])
	assert.Equal(t, []float32{-0.1, -0.4, -0.6, -0.4}, buf[1])
	assert.Equal(t, []int{2}, down.chunks)
}

func TestConverterFilter_Chunked(t *testing.T) {
	down := &collector{}
	f, err := NewConverterFilter(func() Converter { return &doubler{} }, down, 2, 64)
	require.NoError(t, err)

	buf := testutil.Stereo(300)
	orig := testutil.Clone(buf)
	require.NoError(t, f.Process(buf, 20, 150))

	assert.Equal(t, []int{64, 64, 22}, down.chunks)
	assert.Equal(t, orig, buf, "chunked conversion must not modify the input")
	for ch := range orig {
		require.Len(t, down.samples[ch], 150)
		for i, v := range down.samples[ch] {
			require.Equal(t, 2*orig[ch][20+i], v, "ch %d sample %d", ch, i)
		}
	}
}

func TestConverterFilter_ChannelMismatch(t *testing.T) {
	f, err := NewConverterFilter(func() Converter { return &doubler{} }, nil, 2, 0)
	require.NoError(t, err)

	err = f.Process([][]float32{make([]float32, 4)}, 0, 4)
	require.ErrorIs(t, err, ErrChannelCount)
}

func TestConverterFilter_Lifecycle(t *testing.T) {
	closed := 0
	boom := errors.New("boom")
	down := &collector{}
	f, err := NewConverterFilter(func() Converter { return &doubler{closed: &closed, closeErr: boom} }, down, 3, 0)
	require.NoError(t, err)

	f.SeekPerformed(time.Second, time.Second)
	require.NoError(t, f.Flush())
	assert.Equal(t, 1, down.flushes)

	err = f.Close()
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 3, closed)
}
