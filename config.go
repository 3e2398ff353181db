package audiofilter

import (
	"fmt"

	"github.com/tphakala/go-audio-filters/transform"
)

// Config describes a filter chain.
//
// Start from DefaultConfig: the zero value of Volume mutes the signal.
type Config struct {
	// SampleRate of the audio in Hz.
	SampleRate int

	// Channels is the number of audio channels. Mix and Rotation need 2.
	Channels int

	// Volume multiplier in [0, 5]. 1.0 disables the volume filter.
	Volume float32

	// Mix is the stereo mix matrix. IdentityMix disables it.
	Mix MixMatrix

	// RotationHz is the rotation speed. 0 disables rotation.
	RotationHz float32

	// TremoloFrequency in Hz, used when TremoloDepth > 0.
	TremoloFrequency float32

	// TremoloDepth in [0, 1]. 0 disables tremolo.
	TremoloDepth float32

	// Backend forces a registered transform backend by name. Empty uses
	// the process-wide default.
	Backend string
}

// DefaultConfig returns a configuration with every filter disabled.
func DefaultConfig(sampleRate, channels int) Config {
	return Config{
		SampleRate:       sampleRate,
		Channels:         channels,
		Volume:           defaultVolume,
		Mix:              IdentityMix,
		TremoloFrequency: defaultTremoloFrequency,
	}
}

// stereo reports whether the configuration enables a stereo-only filter.
func (c *Config) stereo() bool {
	return c.Mix != IdentityMix || c.RotationHz != 0
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := checkSampleRate(c.SampleRate); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Channels < 1 || c.Channels > maxChannels {
		return fmt.Errorf("%w: channels must be 1-%d, got %d", ErrInvalidConfig, maxChannels, c.Channels)
	}
	if c.stereo() && c.Channels != stereoChannels {
		return fmt.Errorf("%w: channel mix and rotation need %d channels, got %d",
			ErrInvalidConfig, stereoChannels, c.Channels)
	}
	if !(c.TremoloDepth >= 0) {
		return fmt.Errorf("%w: tremolo depth must be >= 0, got %v", ErrInvalidConfig, c.TremoloDepth)
	}

	// Build against the reference backend so validation never resolves the
	// process-wide default.
	if _, err := c.build(transform.Reference()); err != nil {
		return err
	}
	return nil
}

// NewChainFromConfig validates cfg and builds a chain of the enabled filters
// in the order volume, mix, rotation, tremolo.
func NewChainFromConfig(cfg Config) (*Chain, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var fns *transform.Functions
	if cfg.Backend != "" {
		var err error
		fns, err = transform.Lookup(cfg.Backend)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return cfg.build(fns)
}

func (c *Config) build(fns *transform.Functions) (*Chain, error) {
	var opts []Option
	if fns != nil {
		opts = append(opts, WithFunctions(fns))
	}
	wrap := func(err error) error {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	chain := NewChain()

	if c.Volume != defaultVolume {
		f, err := NewVolume(c.Volume, opts...)
		if err != nil {
			return nil, wrap(err)
		}
		chain.Append(f)
	}

	if c.Mix != IdentityMix {
		f := NewChannelMixFilter(opts...)
		if err := f.SetMix(c.Mix); err != nil {
			return nil, wrap(err)
		}
		chain.Append(f)
	}

	if c.RotationHz != 0 {
		f, err := NewRotation(c.SampleRate, c.RotationHz, opts...)
		if err != nil {
			return nil, wrap(err)
		}
		chain.Append(f)
	}

	if c.TremoloDepth > 0 {
		f, err := NewTremolo(c.SampleRate, c.TremoloFrequency, c.TremoloDepth, opts...)
		if err != nil {
			return nil, wrap(err)
		}
		chain.Append(f)
	}

	return chain, nil
}
