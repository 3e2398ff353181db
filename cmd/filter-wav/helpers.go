package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
)

// wavFormatPCM is the WAVE_FORMAT_PCM audio format tag.
const wavFormatPCM = 1

// mp3Channels is the channel count go-mp3 always decodes to.
const mp3Channels = 2

// mp3BytesPerSample is the size of one decoded go-mp3 sample (int16 LE).
const mp3BytesPerSample = 2

// unsigned8Midpoint is the zero level of unsigned 8-bit PCM.
const unsigned8Midpoint = 128

// source yields interleaved float32 samples in [-1, 1].
type source interface {
	SampleRate() int
	Channels() int
	BitDepth() int
	// TotalFrames is the frame count if known, otherwise 0.
	TotalFrames() int64
	// ReadSamples fills dst with interleaved samples and returns how many
	// were written. It returns io.EOF once the stream is exhausted.
	ReadSamples(dst []float32) (int, error)
	Close() error
}

var errUnsupportedFormat = errors.New("unsupported input format")

// openSource opens path with the decoder matching its extension.
func openSource(path string) (source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	var src source
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		src, err = newWAVSource(f)
	case ".mp3":
		src, err = newMP3Source(f)
	case ".ogg", ".oga":
		src, err = newOggSource(f)
	default:
		err = fmt.Errorf("%w: %s", errUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return src, nil
}

// wavSource decodes PCM WAV through go-audio/wav.
type wavSource struct {
	file     *os.File
	decoder  *wav.Decoder
	buf      *audio.IntBuffer
	bias     int // 8-bit PCM is unsigned and centred on 128
	invMax   float32
	rate     int
	channels int
	bitDepth int
	frames   int64
}

func newWAVSource(f *os.File) (*wavSource, error) {
	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", f.Name())
	}

	format := decoder.Format()
	bitDepth := int(decoder.BitDepth)

	bias, fullScale := 0, getMaxValue(bitDepth)
	if bitDepth == bitsPerSample8 {
		bias, fullScale = unsigned8Midpoint, unsigned8Midpoint
	}

	duration, err := decoder.Duration()
	if err != nil {
		duration = 0
	}

	return &wavSource{
		file:     f,
		decoder:  decoder,
		buf:      &audio.IntBuffer{Format: format, SourceBitDepth: bitDepth},
		bias:     bias,
		invMax:   float32(1.0 / fullScale),
		rate:     format.SampleRate,
		channels: format.NumChannels,
		bitDepth: bitDepth,
		frames:   int64(duration.Seconds() * float64(format.SampleRate)),
	}, nil
}

func (s *wavSource) SampleRate() int    { return s.rate }
func (s *wavSource) Channels() int      { return s.channels }
func (s *wavSource) BitDepth() int      { return s.bitDepth }
func (s *wavSource) TotalFrames() int64 { return s.frames }
func (s *wavSource) Close() error       { return s.file.Close() }

func (s *wavSource) ReadSamples(dst []float32) (int, error) {
	if cap(s.buf.Data) < len(dst) {
		s.buf.Data = make([]int, len(dst))
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.decoder.PCMBuffer(s.buf)
	for i, v := range s.buf.Data[:n] {
		dst[i] = float32(v-s.bias) * s.invMax
	}
	if err == nil && n == 0 {
		err = io.EOF
	}
	return n, err
}

// mp3Source decodes MP3 through go-mp3, which always produces 16-bit stereo.
type mp3Source struct {
	file    *os.File
	decoder *gomp3.Decoder
	buf     []byte
}

func newMP3Source(f *os.File) (*mp3Source, error) {
	decoder, err := gomp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("invalid MP3 file: %w", err)
	}
	return &mp3Source{file: f, decoder: decoder}, nil
}

func (s *mp3Source) SampleRate() int { return s.decoder.SampleRate() }
func (s *mp3Source) Channels() int   { return mp3Channels }
func (s *mp3Source) BitDepth() int   { return bitsPerSample16 }
func (s *mp3Source) Close() error    { return s.file.Close() }

func (s *mp3Source) TotalFrames() int64 {
	// Length is in bytes of decoded output, or negative when unknown.
	if l := s.decoder.Length(); l > 0 {
		return l / (mp3Channels * mp3BytesPerSample)
	}
	return 0
}

func (s *mp3Source) ReadSamples(dst []float32) (int, error) {
	need := len(dst) * mp3BytesPerSample
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	n, err := io.ReadFull(s.decoder, s.buf)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = io.EOF
	}
	samples := n / mp3BytesPerSample
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(s.buf[i*mp3BytesPerSample:]))
		dst[i] = float32(v) / (maxInt16 + 1)
	}
	return samples, err
}

// oggSource decodes Ogg Vorbis through oggvorbis, which yields float32 directly.
type oggSource struct {
	file   *os.File
	reader *oggvorbis.Reader
}

func newOggSource(f *os.File) (*oggSource, error) {
	reader, err := oggvorbis.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("invalid Ogg Vorbis file: %w", err)
	}
	return &oggSource{file: f, reader: reader}, nil
}

func (s *oggSource) SampleRate() int    { return s.reader.SampleRate() }
func (s *oggSource) Channels() int      { return s.reader.Channels() }
func (s *oggSource) BitDepth() int      { return bitsPerSample16 }
func (s *oggSource) TotalFrames() int64 { return s.reader.Length() }
func (s *oggSource) Close() error       { return s.file.Close() }

func (s *oggSource) ReadSamples(dst []float32) (int, error) {
	total := 0
	for total < len(dst) {
		n, err := s.reader.Read(dst[total:])
		total += n
		if err != nil {
			return total, err
		}
		if n == 0 {
			break
		}
	}
	return total, nil
}

// getMaxValue returns the full-scale integer value for a PCM bit depth.
func getMaxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// wavOutputWriter encodes float samples to PCM WAV through go-audio/wav.
type wavOutputWriter struct {
	file    *os.File
	encoder *wav.Encoder
	buf     *audio.IntBuffer
	maxVal  float64
}

// createWAVOutput creates the output file and encoder.
func createWAVOutput(path string, sampleRate, bitDepth, channels int) (*wavOutputWriter, error) {
	switch bitDepth {
	case bitsPerSample16, bitsPerSample24, bitsPerSample32:
	default:
		return nil, fmt.Errorf("unsupported output bit depth %d", bitDepth)
	}

	outputFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &wavOutputWriter{
		file:    outputFile,
		encoder: wav.NewEncoder(outputFile, sampleRate, bitDepth, channels, wavFormatPCM),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
		maxVal: getMaxValue(bitDepth),
	}, nil
}

// WriteSamples converts interleaved samples in [-1, 1] and encodes them.
func (w *wavOutputWriter) WriteSamples(samples []float32) error {
	if cap(w.buf.Data) < len(samples) {
		w.buf.Data = make([]int, len(samples))
	}
	w.buf.Data = w.buf.Data[:len(samples)]
	for i, s := range samples {
		w.buf.Data[i] = int(float64(max(-1, min(1, s))) * w.maxVal)
	}
	return w.encoder.Write(w.buf)
}

// Close finalizes the WAV header and closes the file.
func (w *wavOutputWriter) Close() error {
	if err := w.encoder.Close(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}

// progressTracker handles progress reporting.
type progressTracker struct {
	totalFrames  int64
	lastProgress int
	verbose      bool
}

func newProgressTracker(totalFrames int64, verbose bool) *progressTracker {
	return &progressTracker{
		totalFrames: totalFrames,
		verbose:     verbose,
	}
}

// reportIfNeeded reports progress if threshold crossed.
func (p *progressTracker) reportIfNeeded(currentFrames int64) {
	if !p.verbose || p.totalFrames == 0 {
		return
	}

	progress := int(float64(currentFrames) / float64(p.totalFrames) * percentScale)
	if progress >= p.lastProgress+progressInterval {
		log.Printf("Progress: %d%%", progress)
		p.lastProgress = progress
	}
}
