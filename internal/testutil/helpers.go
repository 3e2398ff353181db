// Package testutil provides reusable test helpers and signal generators for
// the filter and transform tests.
package testutil

import (
	"fmt"
	"math"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"
)

// T is the subset of *testing.T the assertions use.
type T interface {
	assert.TestingT
	Helper()
}

// SampleTolerance is the default per-sample tolerance for float32 signals.
const SampleTolerance = 1e-6

// Ramp returns n samples rising linearly from -1 to 1 inclusive.
func Ramp(n int) []float32 {
	s := make([]float32, n)
	if n == 1 {
		return s
	}
	for i := range s {
		s[i] = float32(-1 + 2*float64(i)/float64(n-1))
	}
	return s
}

// Sine returns n samples of a unit-amplitude sine at freq Hz.
func Sine(n int, freq, sampleRate float64) []float32 {
	s := make([]float32, n)
	for i := range s {
		s[i] = float32(math.Sin(2 * math.Pi * freq * float64(i) / sampleRate))
	}
	return s
}

// Stereo returns two independent copies of a test signal: a sine on the left
// and a ramp on the right.
func Stereo(n int) [][]float32 {
	return [][]float32{Sine(n, 440, 44100), Ramp(n)}
}

// Clone deep-copies a multi-channel buffer.
func Clone(buf [][]float32) [][]float32 {
	out := make([][]float32, len(buf))
	for i, ch := range buf {
		out[i] = append([]float32(nil), ch...)
	}
	return out
}

// ToFloat64 widens a float32 slice.
func ToFloat64(s []float32) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = float64(v)
	}
	return out
}

// MaxAbsDiff returns the largest element-wise distance between a and b.
func MaxAbsDiff(a, b []float32) float64 {
	return floats.Distance(ToFloat64(a), ToFloat64(b), math.Inf(1))
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t T, s []float32, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		f := float64(v)
		if math.IsNaN(f) {
			return assert.Fail(t, fmt.Sprintf("found NaN: s[%d] is NaN", i), msgAndArgs...)
		}
		if math.IsInf(f, 0) {
			return assert.Fail(t, fmt.Sprintf("found Inf: s[%d] is %v", i, v), msgAndArgs...)
		}
	}
	return true
}

// AssertAllInRange32 verifies that all elements are within [min, max].
func AssertAllInRange32(t T, s []float32, minVal, maxVal float32, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, fmt.Sprintf("value out of range: s[%d]=%f is outside [%f, %f]",
				i, v, minVal, maxVal), msgAndArgs...)
		}
	}
	return true
}

// AssertInRange verifies that a value is within [min, max].
func AssertInRange(t T, value, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, fmt.Sprintf("value out of range: %f is outside [%f, %f]",
			value, minVal, maxVal), msgAndArgs...)
	}
	return true
}

// AssertClose verifies that two buffers agree element-wise within tolerance.
func AssertClose(t T, expected, actual []float32, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected), msgAndArgs...) {
		return false
	}
	d := MaxAbsDiff(expected, actual)
	if d <= tolerance {
		return true
	}
	return assert.Fail(t, fmt.Sprintf("max abs diff %e exceeds tolerance %e", d, tolerance), msgAndArgs...)
}
