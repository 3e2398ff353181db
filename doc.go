// Package audiofilter provides stateful audio filters that transform
// multi-channel float32 sample buffers in place: volume, channel mix, stereo
// rotation and tremolo.
//
// # Features
//
//   - Volume curve compatible with the legacy 16-bit PCM volume processor
//   - Arbitrary 2x2 stereo mixing (mono fold, widening, channel swap)
//   - Rotating stereo pan and tremolo with phase continuous across buffers
//   - Optional SIMD backend (github.com/tphakala/simd) selected once per process
//   - Volume and channel mix saturate to [-1, 1] rather than wrap
//
// # Quick Start
//
//	vol := audiofilter.NewVolumeFilter()
//	if err := vol.SetVolume(0.8); err != nil {
//	    log.Fatal(err)
//	}
//
//	// buf is [][]float32, one slice per channel
//	if err := vol.Process(buf, 0, len(buf[0])); err != nil {
//	    log.Fatal(err)
//	}
//
// Filters compose with [Chain]:
//
//	rot, _ := audiofilter.NewRotationFilter(48000)
//	_ = rot.SetRotationHz(0.2)
//	chain := audiofilter.NewChain(vol, rot)
//	_ = chain.Process(buf, 0, n)
//
// or are built from a [Config]:
//
//	cfg := audiofilter.DefaultConfig(48000, 2)
//	cfg.Volume = 1.2
//	cfg.TremoloDepth = 0.4
//	chain, err := audiofilter.NewChainFromConfig(cfg)
//
// # Buffers
//
// A buffer is a [][]float32 holding one slice per channel, processed over the
// window [offset, offset+length). Samples outside the window are never
// touched. Stereo filters require exactly two channels.
//
// # Backends
//
// The numeric work is delegated to a [transform.Functions] value resolved
// once per process by [transform.Default]. Set AUDIOFILTER_BACKEND=scalar to
// force the portable reference, or build with -tags purego to leave the SIMD
// backend out of the binary. Individual filters can be pinned to a backend
// with [WithFunctions].
//
// # Thread Safety
//
// A filter instance holds rolling state (phase, angle) and must be driven by
// one goroutine at a time, with windows delivered in stream order. Distinct
// filter instances may run concurrently; the shared backend is immutable.
package audiofilter
