// Command filter-wav runs audio through a chain of transforms and writes the
// result as a WAV file.
//
// Usage:
//
//	filter-wav -volume 0.5 input.wav output.wav
//	filter-wav -mix swap -rotation 0.2 song.mp3 out.wav
//	filter-wav -tremolo-depth 0.6 -tremolo-freq 4 -bits 24 song.ogg out.wav
//	AUDIOFILTER_BACKEND=scalar filter-wav -volume 2 in.wav out.wav
//
// WAV, MP3 and Ogg Vorbis inputs are recognized by file extension.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"time"

	audiofilter "github.com/tphakala/go-audio-filters"
	"github.com/tphakala/go-audio-filters/transform"
)

const (
	// Frames read per chunk.
	chunkFrames = 16384

	// Sample format constants
	bitsPerSample8  = 8
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// Conversion constants
	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	progressInterval = 10 // Print progress every N%
	percentScale     = 100

	// CLI defaults
	defaultBits     = 0 // keep input depth, at least 16
	minRequiredArgs = 2
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	volume := flag.Float64("volume", 1.0, "Volume multiplier in [0, 5]")
	mix := flag.String("mix", "identity", "Stereo mix preset: identity, swap, mono")
	rotation := flag.Float64("rotation", 0, "Rotation speed in Hz (stereo only)")
	tremoloFreq := flag.Float64("tremolo-freq", 2.0, "Tremolo frequency in Hz")
	tremoloDepth := flag.Float64("tremolo-depth", 0, "Tremolo depth in [0, 1], 0 disables")
	backend := flag.String("backend", "", "Force a transform backend by name (e.g. scalar, vector)")
	bits := flag.Int("bits", defaultBits, "Output bit depth: 16, 24 or 32")
	verbose := flag.Bool("v", false, "Verbose output")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file (for PGO)")
	version := flag.Bool("version", false, "Print the library version and exit")
	flag.Parse()

	if *version {
		fmt.Printf("filter-wav %s (backend %s)\n", audiofilter.Version, transform.Default())
		return nil
	}

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nRegistered backends: %s\n", strings.Join(transform.Names(), ", "))
		return fmt.Errorf("insufficient arguments")
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	if *verbose {
		transform.SetLogger(log.Default())
	}

	mixMatrix, err := parseMix(*mix)
	if err != nil {
		return err
	}

	inputPath := args[0]
	outputPath := args[1]

	opts := options{
		volume:       float32(*volume),
		mix:          mixMatrix,
		rotationHz:   float32(*rotation),
		tremoloFreq:  float32(*tremoloFreq),
		tremoloDepth: float32(*tremoloDepth),
		backend:      *backend,
		bits:         *bits,
		verbose:      *verbose,
	}

	if *verbose {
		log.Printf("Input: %s", inputPath)
		log.Printf("Output: %s", outputPath)
		log.Printf("Backend: %s", describeBackend(opts.backend))
	}

	start := time.Now()
	stats, err := filterFile(inputPath, outputPath, opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Filtered %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Printf("  %d Hz, %d channels, %d-bit output, %d filters\n",
		stats.sampleRate, stats.channels, stats.bitDepth, stats.filters)
	fmt.Printf("  %d frames, Duration: %.2fs, Speed: %.1fx realtime\n",
		stats.frames, elapsed.Seconds(),
		float64(stats.frames)/float64(stats.sampleRate)/elapsed.Seconds())

	return nil
}

// options holds the parsed command line.
type options struct {
	volume       float32
	mix          audiofilter.MixMatrix
	rotationHz   float32
	tremoloFreq  float32
	tremoloDepth float32
	backend      string
	bits         int
	verbose      bool
}

type filterStats struct {
	sampleRate int
	channels   int
	bitDepth   int
	filters    int
	frames     int64
}

func parseMix(name string) (audiofilter.MixMatrix, error) {
	switch strings.ToLower(name) {
	case "", "identity":
		return audiofilter.IdentityMix, nil
	case "swap":
		return audiofilter.SwapMix, nil
	case "mono":
		return audiofilter.MonoMix, nil
	default:
		return audiofilter.MixMatrix{}, fmt.Errorf("unknown mix preset %q", name)
	}
}

func describeBackend(name string) string {
	if name == "" {
		return transform.Default().String()
	}
	fns, err := transform.Lookup(name)
	if err != nil {
		return err.Error()
	}
	return fns.String()
}

// config maps the command line onto a chain configuration for the input format.
func (o options) config(sampleRate, channels int) audiofilter.Config {
	cfg := audiofilter.DefaultConfig(sampleRate, channels)
	cfg.Volume = o.volume
	cfg.Mix = o.mix
	cfg.RotationHz = o.rotationHz
	cfg.TremoloFrequency = o.tremoloFreq
	cfg.TremoloDepth = o.tremoloDepth
	cfg.Backend = o.backend
	return cfg
}

func filterFile(inputPath, outputPath string, opts options) (stats *filterStats, err error) {
	// 1. Open input
	src, err := openSource(inputPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	if opts.verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", src.SampleRate(), src.Channels(), src.BitDepth())
	}

	// 2. Build the chain
	chain, err := audiofilter.NewChainFromConfig(opts.config(src.SampleRate(), src.Channels()))
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := chain.Close(); err == nil {
			err = closeErr
		}
	}()

	// 3. Create output
	bitDepth := opts.bits
	if bitDepth == defaultBits {
		// 8-bit output is not supported; widen to 16.
		bitDepth = max(src.BitDepth(), bitsPerSample16)
	}
	output, err := createWAVOutput(outputPath, src.SampleRate(), bitDepth, src.Channels())
	if err != nil {
		return nil, err
	}
	// Close output, capturing close errors on success path (the encoder patches the header)
	defer func() {
		if closeErr := output.Close(); err == nil {
			err = closeErr
		}
	}()

	stats = &filterStats{
		sampleRate: src.SampleRate(),
		channels:   src.Channels(),
		bitDepth:   bitDepth,
		filters:    chain.Len(),
	}
	progress := newProgressTracker(src.TotalFrames(), opts.verbose)

	// 4. Main processing loop
	samples := make([]float32, chunkFrames*src.Channels())
	var planar [][]float32
	for {
		n, readErr := src.ReadSamples(samples)
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, fmt.Errorf("failed to read audio data: %w", readErr)
		}
		// Drop a trailing partial frame.
		n -= n % src.Channels()
		if n > 0 {
			planar, err = audiofilter.ProcessInterleaved(chain, samples[:n], src.Channels(), planar)
			if err != nil {
				return nil, err
			}
			if err := output.WriteSamples(samples[:n]); err != nil {
				return nil, fmt.Errorf("failed to write audio data: %w", err)
			}
			stats.frames += int64(n / src.Channels())
			progress.reportIfNeeded(stats.frames)
		}
		if readErr != nil || n == 0 {
			break
		}
	}

	if err := chain.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush filters: %w", err)
	}
	return stats, nil
}
