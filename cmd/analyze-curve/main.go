// Command analyze-curve prints the volume curve, compares every registered
// transform backend against the scalar reference, and measures the tremolo
// sidebands of a test tone.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/tphakala/go-audio-filters/internal/testutil"
	"github.com/tphakala/go-audio-filters/transform"
)

const (
	// Volume curve display
	curveStep = 0.25
	curveMax  = 5.0

	// Parity test signal
	paritySamples = 48000
	parityRate    = 48000

	// Tremolo spectrum test
	spectrumRate     = 8000
	spectrumCarrier  = 1000.0 // Hz, one bin per Hz at 1 s
	spectrumTremolo  = 4.0
	spectrumDepth    = 0.5
	spectrumBinWidth = 1.0
)

func main() {
	verbose := flag.Bool("v", false, "Log backend resolution")
	flag.Parse()

	if *verbose {
		transform.SetLogger(log.Default())
	}

	fmt.Println("=== Volume Curve ===")
	fmt.Printf("%8s %12s %10s\n", "volume", "multiplier", "gain")
	for _, p := range volumeCurve(curveStep, curveMax) {
		fmt.Printf("%8.2f %12.2f %10.5f\n", p.volume, p.multiplier, p.multiplier/transform.MultiplierScale)
	}
	below := transform.VolumeMultiplier(transform.VolumeCurveKnee)
	above := transform.VolumeMultiplier(math.Nextafter32(transform.VolumeCurveKnee, math.MaxFloat32))
	fmt.Printf("Knee at %.2f: %.2f -> %.2f (step %.2f)\n\n",
		transform.VolumeCurveKnee, below, above, above-below)

	fmt.Println("=== Backend Parity ===")
	fmt.Printf("Default: %s\n", transform.Default())
	for _, name := range transform.Names() {
		fns, err := transform.Lookup(name)
		if err != nil {
			fmt.Printf("%-8s unavailable: %v\n", name, err)
			continue
		}
		for _, r := range compareBackends(transform.Reference(), fns) {
			fmt.Printf("%-8s %-10s max %.3g mean %.3g stddev %.3g\n",
				name, r.op, r.max, r.mean, r.stddev)
		}
	}
	fmt.Println()

	fmt.Println("=== Tremolo Spectrum ===")
	carrier, sideband := tremoloSpectrum()
	fmt.Printf("Carrier %.0f Hz: %.4f (expected %.4f)\n", spectrumCarrier, carrier, 1-spectrumDepth)
	fmt.Printf("Sidebands +-%.0f Hz: %.4f (expected %.4f)\n", spectrumTremolo, sideband, spectrumDepth/2)
}

type curvePoint struct {
	volume     float32
	multiplier float32
}

func volumeCurve(step, maxVolume float32) []curvePoint {
	var points []curvePoint
	for v := float32(0); v <= maxVolume; v += step {
		points = append(points, curvePoint{volume: v, multiplier: transform.VolumeMultiplier(v)})
	}
	return points
}

type parityResult struct {
	op     string
	max    float64
	mean   float64
	stddev float64
}

// compareBackends runs every transform through both sets on the same input
// and reports the absolute differences.
func compareBackends(ref, fns *transform.Functions) []parityResult {
	src := testutil.Stereo(paritySamples)

	run := func(op string, apply func(f *transform.Functions, buf [][]float32)) parityResult {
		a, b := testutil.Clone(src), testutil.Clone(src)
		apply(ref, a)
		apply(fns, b)
		return diffStats(op, a, b)
	}

	return []parityResult{
		run("volume", func(f *transform.Functions, buf [][]float32) {
			f.Volume(buf[0], 0, paritySamples, 2.5)
			f.Volume(buf[1], 0, paritySamples, 0.7)
		}),
		run("mix", func(f *transform.Functions, buf [][]float32) {
			f.ChannelMix(buf[0], buf[1], 0, paritySamples, 0.6, 0.4, -0.3, 0.9)
		}),
		run("rotation", func(f *transform.Functions, buf [][]float32) {
			f.Rotation(buf[0], buf[1], 0, paritySamples, 0, 2*math.Pi*0.25/parityRate)
		}),
		run("tremolo", func(f *transform.Functions, buf [][]float32) {
			for _, ch := range buf {
				f.Tremolo(ch, 0, paritySamples, parityRate, 5, 0.8, 0)
			}
		}),
	}
}

func diffStats(op string, a, b [][]float32) parityResult {
	var diffs []float64
	for ch := range a {
		x, y := testutil.ToFloat64(a[ch]), testutil.ToFloat64(b[ch])
		floats.Sub(x, y)
		for i := range x {
			x[i] = math.Abs(x[i])
		}
		diffs = append(diffs, x...)
	}
	mean, stddev := stat.MeanStdDev(diffs, nil)
	return parityResult{op: op, max: floats.Max(diffs), mean: mean, stddev: stddev}
}

// tremoloSpectrum applies tremolo to a sine carrier and returns the carrier
// amplitude and the mean amplitude of the two modulation sidebands.
func tremoloSpectrum() (carrier, sideband float64) {
	buf := testutil.Sine(spectrumRate, spectrumCarrier, spectrumRate)
	transform.Reference().Tremolo(buf, 0, len(buf), spectrumRate, spectrumTremolo, spectrumDepth, 0)

	fft := fourier.NewFFT(len(buf))
	coeffs := fft.Coefficients(nil, testutil.ToFloat64(buf))
	amp := func(hz float64) float64 {
		bin := int(math.Round(hz / spectrumBinWidth))
		return 2 * cmplx.Abs(coeffs[bin]) / float64(len(buf))
	}

	carrier = amp(spectrumCarrier)
	sideband = (amp(spectrumCarrier-spectrumTremolo) + amp(spectrumCarrier+spectrumTremolo)) / 2
	return carrier, sideband
}
