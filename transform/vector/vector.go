//go:build !purego

// Package vector provides the optimized transform backend. Importing it
// registers the backend under transform.VectorName; it is only constructed
// on CPUs with a SIMD unit the kernels in github.com/tphakala/simd use.
//
// Per-sample trigonometry (rotation gains, tremolo modulation) is still
// evaluated in scalar code; the vector kernels apply the gains. Every
// operation produces results identical to the scalar reference.
package vector

import (
	"errors"
	"fmt"
	"sync"

	"github.com/tphakala/go-audio-filters/internal/cpu"
	"github.com/tphakala/go-audio-filters/internal/simdops"
	"github.com/tphakala/go-audio-filters/transform"
)

// blockSize is the number of samples processed per scratch fill.
const blockSize = 1024

// ErrNoVectorUnit is returned by the factory on CPUs without SIMD support.
var ErrNoVectorUnit = errors.New("no SIMD unit available")

func init() {
	transform.Register(transform.VectorName, func() (any, error) {
		return New(cpu.DetectFeatures())
	})
}

type scratch struct {
	a, b, c [blockSize]float32
}

// Backend is the SIMD operation set. It is safe for concurrent use; scratch
// space comes from a pool.
type Backend struct {
	ops  *simdops.Ops
	pool sync.Pool

	// divisor holds MultiplierScale in every lane. Volume divides by it
	// rather than multiplying by its reciprocal so rounding matches the
	// reference.
	divisor [blockSize]float32
}

// New returns the vector backend, or ErrNoVectorUnit when features report no
// usable SIMD extension.
func New(features cpu.Features) (*Backend, error) {
	if !features.HasVectorUnit() {
		return nil, fmt.Errorf("%w on %s", ErrNoVectorUnit, features.Architecture)
	}
	b := &Backend{
		ops: simdops.Float32Ops(),
		pool: sync.Pool{
			New: func() any { return new(scratch) },
		},
	}
	for i := range b.divisor {
		b.divisor[i] = transform.MultiplierScale
	}
	return b, nil
}

// Name implements transform.Backend.
func (*Backend) Name() string { return transform.VectorName }

// Info describes the instruction set in use.
func (*Backend) Info() string { return simdops.Info() }

// Volume implements transform.Volumer.
func (b *Backend) Volume(buf []float32, offset, length int, volume float32) {
	multiplier := transform.VolumeMultiplier(volume)
	for start := offset; start < offset+length; start += blockSize {
		n := min(blockSize, offset+length-start)
		win := buf[start : start+n]
		b.ops.Scale(win, win, multiplier)
		b.ops.Div(win, win, b.divisor[:n])
		b.ops.Clamp(win, win, -1, 1)
	}
}

// ChannelMix implements transform.ChannelMixer.
func (b *Backend) ChannelMix(left, right []float32, offset, length int, ltl, ltr, rtl, rtr float32) {
	s := b.get()
	defer b.pool.Put(s)

	for start := offset; start < offset+length; start += blockSize {
		n := min(blockSize, offset+length-start)
		l := left[start : start+n]
		r := right[start : start+n]
		newL, tmp, newR := s.a[:n], s.b[:n], s.c[:n]

		b.ops.Scale(newL, l, ltl)
		b.ops.Scale(tmp, r, rtl)
		b.ops.Add(newL, newL, tmp)

		b.ops.Scale(newR, l, ltr)
		b.ops.Scale(tmp, r, rtr)
		b.ops.Add(newR, newR, tmp)

		b.ops.Clamp(l, newL, -1, 1)
		b.ops.Clamp(r, newR, -1, 1)
	}
}

// Rotation implements transform.Rotator.
func (b *Backend) Rotation(left, right []float32, offset, length int, x, dI float64) float64 {
	s := b.get()
	defer b.pool.Put(s)

	for start := offset; start < offset+length; start += blockSize {
		n := min(blockSize, offset+length-start)
		lg, rg := s.a[:n], s.b[:n]
		for i := range n {
			lg[i], rg[i] = transform.RotationGains(x)
			x += dI
		}
		l := left[start : start+n]
		r := right[start : start+n]
		b.ops.Mul(l, l, lg)
		b.ops.Mul(r, r, rg)
	}
	return x
}

// Tremolo implements transform.Tremoloer.
func (b *Backend) Tremolo(buf []float32, offset, length, sampleRate int, frequency, depth float32, phase float64) float64 {
	s := b.get()
	defer b.pool.Put(s)

	step := transform.TremoloStep(sampleRate, frequency)
	for start := offset; start < offset+length; start += blockSize {
		n := min(blockSize, offset+length-start)
		g := s.a[:n]
		for i := range n {
			g[i] = transform.TremoloGain(depth, phase)
			phase += step
		}
		win := buf[start : start+n]
		b.ops.Mul(win, win, g)
	}
	return phase
}

func (b *Backend) get() *scratch {
	s, ok := b.pool.Get().(*scratch)
	if !ok {
		return new(scratch)
	}
	return s
}
