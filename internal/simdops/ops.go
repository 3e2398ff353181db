// Package simdops provides the SIMD kernels used by the optimized transform
// backend. Kernels are held as function pointers so the backend binds them
// once and calls through a single indirection in hot paths.
//
// With Profile-Guided Optimization (Go 1.22+), function pointer calls in hot paths
// can be devirtualized and inlined, achieving near-zero overhead.
package simdops

import (
	"github.com/tphakala/simd/cpu"
	"github.com/tphakala/simd/f32"
)

// Ops provides SIMD-accelerated float32 operations.
type Ops struct {
	// Scale multiplies each element by scalar s: dst[i] = a[i] * s
	Scale func(dst, a []float32, s float32)

	// Mul multiplies element-wise: dst[i] = a[i] * b[i]
	Mul func(dst, a, b []float32)

	// Add adds element-wise: dst[i] = a[i] + b[i]
	Add func(dst, a, b []float32)

	// Div divides element-wise: dst[i] = a[i] / b[i]
	Div func(dst, a, b []float32)

	// Clamp saturates each element into [lo, hi].
	Clamp func(dst, a []float32, lo, hi float32)

	// Interleave2 interleaves two slices: dst[0]=a[0], dst[1]=b[0], dst[2]=a[1], ...
	Interleave2 func(dst, a, b []float32)

	// Deinterleave2 splits interleaved samples: a[i]=src[2i], b[i]=src[2i+1]
	Deinterleave2 func(a, b, src []float32)
}

var ops32 = Ops{
	Scale:         f32.Scale,
	Mul:           f32.Mul,
	Add:           f32.Add,
	Div:           f32.Div,
	Clamp:         f32.Clamp,
	Interleave2:   f32.Interleave2,
	Deinterleave2: f32.Deinterleave2,
}

// Float32Ops returns the float32 SIMD operations.
func Float32Ops() *Ops {
	return &ops32
}

// Info describes the instruction set the kernels dispatch to.
func Info() string {
	return cpu.Info()
}
