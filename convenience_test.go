package audiofilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-filters/internal/testutil"
)

func TestInterleave_Stereo(t *testing.T) {
	left := []float32{1, 2, 3}
	right := []float32{-1, -2, -3}
	dst := make([]float32, 6)

	n := Interleave(dst, [][]float32{left, right})
	assert.Equal(t, 3, n)
	assert.Equal(t, []float32{1, -1, 2, -2, 3, -3}, dst)
}

func TestInterleave_MultiChannelShortestWins(t *testing.T) {
	src := [][]float32{{1, 2, 3}, {4, 5}, {7, 8, 9}}
	dst := make([]float32, 9)

	n := Interleave(dst, src)
	assert.Equal(t, 2, n)
	assert.Equal(t, []float32{1, 4, 7, 2, 5, 8, 0, 0, 0}, dst)
}

func TestDeinterleave(t *testing.T) {
	dst := [][]float32{make([]float32, 3), make([]float32, 3)}

	n := Deinterleave(dst, []float32{1, -1, 2, -2, 3, -3})
	assert.Equal(t, 3, n)
	assert.Equal(t, []float32{1, 2, 3}, dst[0])
	assert.Equal(t, []float32{-1, -2, -3}, dst[1])

	assert.Zero(t, Deinterleave(nil, []float32{1}))
	assert.Zero(t, Interleave(nil, nil))
}

func TestDeinterleave_MultiChannel(t *testing.T) {
	dst := [][]float32{make([]float32, 2), make([]float32, 2), make([]float32, 2)}

	n := Deinterleave(dst, []float32{1, 2, 3, 4, 5, 6, 7})
	assert.Equal(t, 2, n)
	assert.Equal(t, [][]float32{{1, 4}, {2, 5}, {3, 6}}, dst)
}

func TestStereoInterleave_RoundTrip(t *testing.T) {
	src := testutil.Stereo(1000)
	inter := make([]float32, 2000)
	require.Equal(t, 1000, Interleave(inter, src))
	for i := range 1000 {
		require.Equal(t, src[0][i], inter[2*i])
		require.Equal(t, src[1][i], inter[2*i+1])
	}

	back := [][]float32{make([]float32, 1000), make([]float32, 1000)}
	require.Equal(t, 1000, Deinterleave(back, inter))
	assert.Equal(t, src, back)
}

func TestProcessInterleaved(t *testing.T) {
	mix := NewChannelMixFilter(reference())
	require.NoError(t, mix.SetMix(SwapMix))

	samples := []float32{0.1, 0.9, 0.2, 0.8}
	scratch, err := ProcessInterleaved(mix, samples, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.9, 0.1, 0.8, 0.2}, samples)

	// scratch is reused for an equal-sized call
	again, err := ProcessInterleaved(mix, samples, 2, scratch)
	require.NoError(t, err)
	assert.Same(t, &scratch[0][0], &again[0][0])
	assert.Equal(t, []float32{0.1, 0.9, 0.2, 0.8}, samples)
}

func TestProcessInterleaved_Errors(t *testing.T) {
	vol := NewVolumeFilter(reference())

	_, err := ProcessInterleaved(vol, make([]float32, 5), 2, nil)
	require.ErrorIs(t, err, ErrInvalidWindow)

	_, err = ProcessInterleaved(vol, make([]float32, 4), 0, nil)
	require.ErrorIs(t, err, ErrChannelCount)
}

func TestConvenienceConstructors_Validate(t *testing.T) {
	_, err := NewVolume(6)
	require.ErrorIs(t, err, ErrInvalidParameter)

	_, err = NewTremolo(RateCD, 0, 0.5, reference())
	require.ErrorIs(t, err, ErrInvalidParameter)

	_, err = NewTremolo(0, 1, 0.5, reference())
	require.ErrorIs(t, err, ErrInvalidParameter)

	_, err = NewRotation(RateCD, -2, reference())
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestVersion(t *testing.T) {
	assert.Regexp(t, `^\d+\.\d+\.\d+$`, Version)
}
