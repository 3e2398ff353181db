package transform

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"
)

// Factory constructs a backend. A Factory that returns an error, returns
// nil (including a typed nil pointer) or panics is treated as an
// unavailable backend.
type Factory func() (any, error)

// Registry maps backend names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns a registry holding only the scalar reference.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	r.Register(ScalarName, func() (any, error) { return Scalar{}, nil })
	return r
}

// Register makes a backend available under name. It panics if name is
// empty, f is nil, or name is already registered.
func (r *Registry) Register(name string, f Factory) {
	if name == "" {
		panic("transform: Register called with empty name")
	}
	if f == nil {
		panic("transform: Register factory is nil for " + name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.factories[name]; dup {
		panic("transform: Register called twice for " + name)
	}
	r.factories[name] = f
}

// Names returns the registered backend names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup constructs and binds the backend registered under name.
//
// It returns ErrBackendNotFound when name is not registered or its factory
// fails, and ErrMalformedBackend when the constructed value does not
// satisfy the operation-set contract.
func (r *Registry) Lookup(name string) (*Functions, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q is not registered", ErrBackendNotFound, name)
	}

	v, err := construct(name, f)
	if err != nil {
		return nil, err
	}
	return Bind(v)
}

func construct(name string, f Factory) (v any, err error) {
	defer func() {
		if p := recover(); p != nil {
			v, err = nil, fmt.Errorf("%w: %q: constructor panicked: %v", ErrBackendNotFound, name, p)
		}
	}()

	v, err = f()
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrBackendNotFound, name, err)
	}
	if isNil(v) {
		return nil, fmt.Errorf("%w: %q: constructor returned nil", ErrBackendNotFound, name)
	}
	return v, nil
}

// isNil reports whether v is nil or a typed nil of a nilable kind.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// Resolve picks the backend for this process: override when non-empty,
// then VectorName, then the scalar reference. Unavailable candidates are
// skipped; a malformed candidate stops resolution with its error.
func (r *Registry) Resolve(override string) (*Functions, error) {
	candidates := make([]string, 0, 2)
	if override != "" {
		candidates = append(candidates, override)
	}
	if override != VectorName {
		candidates = append(candidates, VectorName)
	}

	for _, name := range candidates {
		fns, err := r.Lookup(name)
		switch {
		case err == nil:
			logf("using backend %s", fns)
			return fns, nil
		case errors.Is(err, ErrMalformedBackend):
			return nil, err
		default:
			logf("skipping backend: %v", err)
		}
	}

	logf("using backend %s", ScalarName)
	return Reference(), nil
}

// MustResolve is like Resolve but panics on a malformed backend.
func (r *Registry) MustResolve(override string) *Functions {
	fns, err := r.Resolve(override)
	if err != nil {
		panic("transform: " + err.Error())
	}
	return fns
}

var (
	global = NewRegistry()

	defaultOnce sync.Once
	defaultFns  *Functions
	defaultErr  error

	logger atomic.Pointer[log.Logger]
)

func init() {
	logger.Store(log.New(io.Discard, "", 0))
}

// Register makes a backend available to the process-wide registry. Backends
// normally call it from init.
func Register(name string, f Factory) {
	global.Register(name, f)
}

// Lookup constructs the backend registered under name in the process-wide
// registry, bypassing the resolution order.
func Lookup(name string) (*Functions, error) {
	return global.Lookup(name)
}

// Names lists the backends in the process-wide registry.
func Names() []string {
	return global.Names()
}

// Default returns the process-wide operation set, resolving it on first
// call from the process-wide registry and the AUDIOFILTER_BACKEND
// environment variable. Later calls return the same value.
//
// Default panics when the resolved candidate is malformed: that is a build
// or deployment mistake and the process should not start with it. The
// failure is remembered, so every later call panics with the same error.
func Default() *Functions {
	defaultOnce.Do(func() {
		defaultFns, defaultErr = global.Resolve(os.Getenv(EnvBackend))
	})
	if defaultErr != nil {
		panic("transform: " + defaultErr.Error())
	}
	return defaultFns
}

// SetLogger directs registry diagnostics to l. A nil l discards them.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	logger.Store(l)
}

func logf(format string, args ...any) {
	logger.Load().Printf("transform: "+format, args...)
}
