//go:build !purego

package audiofilter

// Link the SIMD backend so transform.Default can select it.
import _ "github.com/tphakala/go-audio-filters/transform/vector"
