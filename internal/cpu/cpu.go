// Package cpu reports the SIMD extensions available to the optimized
// transform backend. Detection runs once and is cached.
package cpu

import "sync"

// Features describes CPU capabilities relevant to backend selection.
type Features struct {
	HasSSE2 bool
	HasAVX  bool
	HasAVX2 bool
	HasNEON bool

	// ForceGeneric reports no SIMD support regardless of hardware.
	ForceGeneric bool

	// Architecture is runtime.GOARCH.
	Architecture string
}

var (
	detectedFeatures Features
	detectOnce       sync.Once
	detectMutex      sync.Mutex

	// forcedFeatures overrides hardware detection in tests.
	forcedFeatures *Features
	forcedMutex    sync.RWMutex
)

// DetectFeatures returns the CPU features of the current system.
// Safe for concurrent use.
func DetectFeatures() Features {
	forcedMutex.RLock()
	forced := forcedFeatures
	forcedMutex.RUnlock()

	if forced != nil {
		return *forced
	}

	detectMutex.Lock()
	detectOnce.Do(func() {
		detectedFeatures = detectFeaturesImpl()
	})
	features := detectedFeatures
	detectMutex.Unlock()

	return features
}

// HasVectorUnit reports whether f carries any SIMD extension the vector
// kernels accelerate.
func (f Features) HasVectorUnit() bool {
	if f.ForceGeneric {
		return false
	}
	return f.HasAVX2 || f.HasAVX || f.HasSSE2 || f.HasNEON
}

// SetForcedFeatures overrides CPU feature detection. Intended for tests.
func SetForcedFeatures(f Features) {
	forcedMutex.Lock()
	defer forcedMutex.Unlock()
	forced := f
	forcedFeatures = &forced
}

// ResetDetection clears forced features and the detection cache.
func ResetDetection() {
	forcedMutex.Lock()
	forcedFeatures = nil
	forcedMutex.Unlock()

	detectMutex.Lock()
	detectOnce = sync.Once{}
	detectedFeatures = Features{}
	detectMutex.Unlock()
}
