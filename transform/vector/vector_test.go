//go:build !purego

package vector

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-filters/internal/cpu"
	"github.com/tphakala/go-audio-filters/internal/testutil"
	"github.com/tphakala/go-audio-filters/transform"
)

// sizes straddle blockSize so partial blocks are covered.
var sizes = []int{1, 7, 64, blockSize - 1, blockSize, blockSize + 3, 3*blockSize + 17}

func newBackend(t *testing.T) *Backend {
	t.Helper()
	b, err := New(cpu.Features{HasSSE2: true, Architecture: "test"})
	require.NoError(t, err)
	return b
}

func TestNew_RequiresVectorUnit(t *testing.T) {
	_, err := New(cpu.Features{Architecture: "test"})
	require.ErrorIs(t, err, ErrNoVectorUnit)

	_, err = New(cpu.Features{HasAVX2: true, ForceGeneric: true})
	require.ErrorIs(t, err, ErrNoVectorUnit)
}

func TestBind_ProvidesEveryOperation(t *testing.T) {
	fns, err := transform.Bind(newBackend(t))
	require.NoError(t, err)
	assert.Equal(t, transform.VectorName, fns.Name())
	assert.Equal(t, []string{"Volume", "ChannelMix", "Rotation", "Tremolo"}, fns.Provided())
}

func TestRegistered(t *testing.T) {
	assert.Contains(t, transform.Names(), transform.VectorName)
}

func TestRegistered_FallsBackWithoutVectorUnit(t *testing.T) {
	cpu.SetForcedFeatures(cpu.Features{ForceGeneric: true})
	defer cpu.ResetDetection()

	_, err := transform.Lookup(transform.VectorName)
	require.ErrorIs(t, err, transform.ErrBackendNotFound)

	r := transform.NewRegistry()
	r.Register(transform.VectorName, func() (any, error) { return New(cpu.DetectFeatures()) })
	fns, err := r.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, transform.ScalarName, fns.Name())
}

func TestVolume_IdenticalToScalar(t *testing.T) {
	b := newBackend(t)
	var s transform.Scalar

	for _, n := range append(sizes, 4096) {
		for _, volume := range []float32{0, 0.3, 0.7, 1, 1.5, 2, 2.5, 4.2, 5} {
			want := testutil.Ramp(n + 6)
			got := testutil.Ramp(n + 6)

			s.Volume(want, 3, n, volume)
			b.Volume(got, 3, n, volume)

			assert.Equal(t, want, got, "n=%d volume=%v", n, volume)
			testutil.AssertAllInRange32(t, got, -1, 1, "n=%d volume=%v", n, volume)
		}
	}
}

func TestChannelMix_IdenticalToScalar(t *testing.T) {
	b := newBackend(t)
	var s transform.Scalar

	coeffs := [][4]float32{{1, 0, 0, 1}, {0, 1, 1, 0}, {0.5, 0.5, 0.5, 0.5}, {1, -0.3, 0.8, 1}}
	for _, n := range sizes {
		for _, c := range coeffs {
			want := testutil.Stereo(n + 10)
			got := testutil.Clone(want)

			s.ChannelMix(want[0], want[1], 5, n, c[0], c[1], c[2], c[3])
			b.ChannelMix(got[0], got[1], 5, n, c[0], c[1], c[2], c[3])

			assert.Equal(t, want, got, "n=%d coeffs=%v", n, c)
		}
	}
}

func TestRotation_IdenticalToScalar(t *testing.T) {
	b := newBackend(t)
	var s transform.Scalar

	for _, n := range sizes {
		want := testutil.Stereo(n)
		got := testutil.Clone(want)

		xs := s.Rotation(want[0], want[1], 0, n, 0.7, 0.001)
		xv := b.Rotation(got[0], got[1], 0, n, 0.7, 0.001)

		assert.Equal(t, xs, xv)
		assert.Equal(t, want, got, "n=%d", n)
	}
}

func TestTremolo_IdenticalToScalar(t *testing.T) {
	b := newBackend(t)
	var s transform.Scalar

	for _, n := range sizes {
		want := testutil.Sine(n+4, 220, 48000)
		got := append([]float32(nil), want...)

		ps := s.Tremolo(want, 2, n, 48000, 5, 0.7, 1.1)
		pv := b.Tremolo(got, 2, n, 48000, 5, 0.7, 1.1)

		assert.Equal(t, ps, pv)
		assert.Equal(t, want, got, "n=%d", n)
	}
}

func TestBackend_ConcurrentUse(t *testing.T) {
	b := newBackend(t)
	var s transform.Scalar

	want := testutil.Stereo(5000)
	s.Rotation(want[0], want[1], 0, 5000, 0, 0.002)

	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			got := testutil.Stereo(5000)
			b.Rotation(got[0], got[1], 0, 5000, 0, 0.002)
			assert.Equal(t, want, got)
		})
	}
	wg.Wait()
}

func BenchmarkVolume(b *testing.B) {
	be, err := New(cpu.Features{HasSSE2: true})
	require.NoError(b, err)
	buf := testutil.Ramp(4096)

	b.ReportAllocs()
	for b.Loop() {
		be.Volume(buf, 0, len(buf), 0.8)
	}
}

func BenchmarkTremolo(b *testing.B) {
	be, err := New(cpu.Features{HasSSE2: true})
	require.NoError(b, err)
	buf := testutil.Ramp(4096)
	var phase float64

	b.ReportAllocs()
	for b.Loop() {
		phase = be.Tremolo(buf, 0, len(buf), 48000, 4, 0.5, phase)
	}
}
