package simdops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tphakala/simd/f32"
)

func TestFloat32Ops_Kernels(t *testing.T) {
	ops := Float32Ops()
	a := []float32{0.5, -2, 3, 0.25}
	b := []float32{2, 0.5, -1, 4}
	dst := make([]float32, len(a))

	ops.Scale(dst, a, 2)
	assert.Equal(t, []float32{1, -4, 6, 0.5}, dst)

	ops.Mul(dst, a, b)
	assert.Equal(t, []float32{1, -1, -3, 1}, dst)

	ops.Add(dst, a, b)
	assert.Equal(t, []float32{2.5, -1.5, 2, 4.25}, dst)

	ops.Div(dst, a, b)
	assert.Equal(t, []float32{0.25, -4, -3, 0.0625}, dst)

	ops.Clamp(dst, a, -1, 1)
	assert.Equal(t, []float32{0.5, -1, 1, 0.25}, dst)

	inter := make([]float32, 2*len(a))
	ops.Interleave2(inter, a, b)
	assert.Equal(t, []float32{0.5, 2, -2, 0.5, 3, -1, 0.25, 4}, inter)

	left, right := make([]float32, len(a)), make([]float32, len(b))
	ops.Deinterleave2(left, right, inter)
	assert.Equal(t, a, left)
	assert.Equal(t, b, right)

	assert.NotEmpty(t, Info())
}

// BenchmarkDirectF32Scale measures direct SIMD call overhead.
func BenchmarkDirectF32Scale(b *testing.B) {
	a := make([]float32, 1024)
	for i := range a {
		a[i] = float32(i) * 0.001
	}

	b.ReportAllocs()
	for b.Loop() {
		f32.Scale(a, a, 0.999)
	}
}

// BenchmarkIndirectF32Scale measures indirect call through the Ops struct.
func BenchmarkIndirectF32Scale(b *testing.B) {
	ops := Float32Ops()
	a := make([]float32, 1024)
	for i := range a {
		a[i] = float32(i) * 0.001
	}

	b.ReportAllocs()
	for b.Loop() {
		ops.Scale(a, a, 0.999)
	}
}

// BenchmarkIndirectF32Mul measures the gain-application kernel.
func BenchmarkIndirectF32Mul(b *testing.B) {
	ops := Float32Ops()
	a := make([]float32, 1024)
	g := make([]float32, 1024)
	for i := range a {
		a[i] = float32(i) * 0.001
		g[i] = 1
	}

	b.ReportAllocs()
	for b.Loop() {
		ops.Mul(a, a, g)
	}
}
