package audiofilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-filters/internal/testutil"
)

func TestChannelMixFilter_Defaults(t *testing.T) {
	f := NewChannelMixFilter(reference())
	assert.Equal(t, IdentityMix, f.Mix())

	buf := testutil.Stereo(32)
	want := testutil.Clone(buf)
	require.NoError(t, f.Process(buf, 0, 32))
	assert.Equal(t, want, buf)
}

func TestChannelMixFilter_Swap(t *testing.T) {
	f := NewChannelMixFilter(reference())
	require.NoError(t, f.SetMix(SwapMix))

	buf := testutil.Stereo(100)
	orig := testutil.Clone(buf)
	require.NoError(t, f.Process(buf, 0, 100))

	assert.Equal(t, orig[1], buf[0])
	assert.Equal(t, orig[0], buf[1])
}

func TestChannelMixFilter_MonoFold(t *testing.T) {
	f := NewChannelMixFilter(reference())
	require.NoError(t, f.SetMix(MonoMix))

	buf := testutil.Stereo(100)
	require.NoError(t, f.Process(buf, 0, 100))
	assert.Equal(t, buf[0], buf[1])
}

func TestChannelMixFilter_SettersValidate(t *testing.T) {
	f := NewChannelMixFilter(reference())

	require.NoError(t, f.SetLeftToRight(0.25))
	require.NoError(t, f.SetRightToLeft(-0.5))
	require.NoError(t, f.UpdateLeftToLeft(func(v float32) float32 { return v - 0.5 }))
	require.NoError(t, f.UpdateRightToRight(func(v float32) float32 { return -v }))
	assert.Equal(t, MixMatrix{0.5, 0.25, -0.5, -1}, f.Mix())

	require.ErrorIs(t, f.SetRightToRight(1.5), ErrInvalidParameter)
	require.ErrorIs(t, f.SetLeftToLeft(-2), ErrInvalidParameter)
	require.ErrorIs(t, f.UpdateLeftToRight(func(v float32) float32 { return v + 1 }), ErrInvalidParameter)
	require.ErrorIs(t, f.UpdateRightToLeft(func(v float32) float32 { return v * 3 }), ErrInvalidParameter)
	assert.Equal(t, MixMatrix{0.5, 0.25, -0.5, -1}, f.Mix())
	assert.Equal(t, float32(0.5), f.LeftToLeft())
	assert.Equal(t, float32(0.25), f.LeftToRight())
	assert.Equal(t, float32(-0.5), f.RightToLeft())
	assert.Equal(t, float32(-1), f.RightToRight())
}

func TestChannelMixFilter_SetMixIsAllOrNothing(t *testing.T) {
	f := NewChannelMixFilter(reference())
	err := f.SetMix(MixMatrix{LeftToLeft: 0.2, LeftToRight: 0.2, RightToLeft: 0.2, RightToRight: 9})

	require.ErrorIs(t, err, ErrInvalidParameter)
	assert.Equal(t, IdentityMix, f.Mix())
}

func TestChannelMixFilter_RequiresStereo(t *testing.T) {
	f := NewChannelMixFilter(reference())
	require.NoError(t, f.SetMix(SwapMix))

	err := f.Process([][]float32{make([]float32, 8)}, 0, 8)
	require.ErrorIs(t, err, ErrChannelCount)
}
