// Package transform implements the in-place sample transforms applied by
// the audio filters (volume, channel mix, rotation and tremolo) and the
// registry that selects which implementation of them a process uses.
//
// The reference implementation is [Scalar]. Alternate backends register a
// [Factory] under a name; the value it returns must implement [Backend] and
// may implement any subset of [Volumer], [ChannelMixer], [Rotator] and
// [Tremoloer]. Operations a backend leaves out are served by the reference
// implementation, so an optimized backend only provides what it can do
// better. Embedding [Scalar] is the simplest way to inherit every default.
//
// # Backend selection
//
// [Default] resolves the backend once per process:
//
//  1. the name in the AUDIOFILTER_BACKEND environment variable, if set;
//  2. the optimized counterpart registered as "vector";
//  3. the scalar reference.
//
// A candidate that is not registered or fails to construct is skipped. A
// candidate that constructs but does not satisfy the operation-set contract
// is a programming error and aborts resolution with [ErrMalformedBackend].
//
// # Buffers
//
// Every operation works on the window [offset, offset+length) of the given
// slices and never touches samples outside it. Callers validate the window
// and the parameters; the operations do not check them.
package transform

import (
	"errors"
	"fmt"
	"reflect"
)

// Common errors returned by the registry.
var (
	// ErrMalformedBackend indicates a backend that constructs but does not
	// satisfy the operation-set contract.
	ErrMalformedBackend = errors.New("malformed transform backend")

	// ErrBackendNotFound indicates a backend that is not registered or could
	// not be constructed.
	ErrBackendNotFound = errors.New("transform backend not found")
)

// Backend is implemented by every operation set.
type Backend interface {
	// Name identifies the backend in diagnostics.
	Name() string
}

// Volumer scales amplitude along the legacy volume curve.
type Volumer interface {
	Volume(buf []float32, offset, length int, volume float32)
}

// ChannelMixer applies a 2x2 stereo mixing matrix.
type ChannelMixer interface {
	ChannelMix(left, right []float32, offset, length int, ltl, ltr, rtl, rtr float32)
}

// Rotator pans the stereo image around a rotating angle and returns the
// advanced angle.
type Rotator interface {
	Rotation(left, right []float32, offset, length int, x, dI float64) float64
}

// Tremoloer amplitude-modulates one channel and returns the advanced phase.
type Tremoloer interface {
	Tremolo(buf []float32, offset, length, sampleRate int, frequency, depth float32, phase float64) float64
}

// Functions is a resolved operation set. Each field is bound once, either to
// the backend's method or to the reference implementation, so calls cost a
// single indirect call. A Functions value is immutable after [Bind] and safe
// for concurrent use.
type Functions struct {
	name     string
	provided []string

	Volume     func(buf []float32, offset, length int, volume float32)
	ChannelMix func(left, right []float32, offset, length int, ltl, ltr, rtl, rtr float32)
	Rotation   func(left, right []float32, offset, length int, x, dI float64) float64
	Tremolo    func(buf []float32, offset, length, sampleRate int, frequency, depth float32, phase float64) float64
}

// Name returns the name of the backend the functions were bound from.
func (f *Functions) Name() string {
	return f.name
}

// Provided lists the operations the backend supplied itself, in the order
// Volume, ChannelMix, Rotation, Tremolo. Operations not listed fall back to
// the reference implementation.
func (f *Functions) Provided() []string {
	out := make([]string, len(f.provided))
	copy(out, f.provided)
	return out
}

// String implements fmt.Stringer.
func (f *Functions) String() string {
	return fmt.Sprintf("%s%v", f.name, f.provided)
}

// contract maps each operation name to the capability interface that
// declares it.
var contract = []struct {
	method string
	iface  reflect.Type
}{
	{"Volume", reflect.TypeFor[Volumer]()},
	{"ChannelMix", reflect.TypeFor[ChannelMixer]()},
	{"Rotation", reflect.TypeFor[Rotator]()},
	{"Tremolo", reflect.TypeFor[Tremoloer]()},
}

// Bind builds the operation set for backend v. Operations v does not
// implement are bound to the reference implementation.
//
// Bind returns ErrMalformedBackend when v does not implement [Backend], or
// when it has a method named after an operation whose signature differs
// from the capability interface.
func Bind(v any) (*Functions, error) {
	b, ok := v.(Backend)
	if !ok {
		return nil, fmt.Errorf("%w: %T does not implement transform.Backend", ErrMalformedBackend, v)
	}
	if err := checkShape(v); err != nil {
		return nil, err
	}

	fns := reference(b.Name())
	if op, ok := v.(Volumer); ok {
		fns.Volume = op.Volume
		fns.provided = append(fns.provided, "Volume")
	}
	if op, ok := v.(ChannelMixer); ok {
		fns.ChannelMix = op.ChannelMix
		fns.provided = append(fns.provided, "ChannelMix")
	}
	if op, ok := v.(Rotator); ok {
		fns.Rotation = op.Rotation
		fns.provided = append(fns.provided, "Rotation")
	}
	if op, ok := v.(Tremoloer); ok {
		fns.Tremolo = op.Tremolo
		fns.provided = append(fns.provided, "Tremolo")
	}
	return fns, nil
}

// checkShape rejects methods that carry an operation's name but not its
// signature; such a method would otherwise be silently ignored.
func checkShape(v any) error {
	rv := reflect.ValueOf(v)
	rt := rv.Type()
	for _, c := range contract {
		m := rv.MethodByName(c.method)
		if !m.IsValid() || rt.Implements(c.iface) {
			continue
		}
		want, _ := c.iface.MethodByName(c.method)
		return fmt.Errorf("%w: %T.%s has signature %s, want %s",
			ErrMalformedBackend, v, c.method, m.Type(), want.Type)
	}
	return nil
}

// reference returns an operation set bound entirely to the scalar
// implementation.
func reference(name string) *Functions {
	var s Scalar
	return &Functions{
		name:       name,
		Volume:     s.Volume,
		ChannelMix: s.ChannelMix,
		Rotation:   s.Rotation,
		Tremolo:    s.Tremolo,
	}
}

// Reference returns the scalar operation set.
func Reference() *Functions {
	fns := reference(ScalarName)
	fns.provided = []string{"Volume", "ChannelMix", "Rotation", "Tremolo"}
	return fns
}
