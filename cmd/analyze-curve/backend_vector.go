//go:build !purego

package main

// Link the SIMD backend so it is compared against the reference.
import _ "github.com/tphakala/go-audio-filters/transform/vector"
