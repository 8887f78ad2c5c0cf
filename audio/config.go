package audio

import (
	"fmt"
	"time"

	"github.com/kbukum/voicecheck/util"
	"github.com/kbukum/voicecheck/validation"
)

const (
	DefaultMaxSize     = "10MB"
	DefaultMaxDuration = 60 * time.Second
)

// Config holds the payload limits enforced by Decoder.
type Config struct {
	// MaxSize is the largest decoded payload accepted, e.g. "10MB".
	MaxSize string `yaml:"max_size" mapstructure:"max_size"`
	// MaxDuration is the longest clip accepted, summed over MP3 frames.
	MaxDuration time.Duration `yaml:"max_duration" mapstructure:"max_duration"`
}

// ApplyDefaults fills empty fields.
func (c *Config) ApplyDefaults() {
	if c.MaxSize == "" {
		c.MaxSize = DefaultMaxSize
	}
	if c.MaxDuration <= 0 {
		c.MaxDuration = DefaultMaxDuration
	}
}

// Validate checks that the limits are usable.
func (c *Config) Validate() error {
	return validation.New().
		Min("audio.max_size", c.MaxSizeBytes(), 1).
		Custom(c.MaxDuration > 0, "audio.max_duration", fmt.Sprintf("must be positive (got: %s)", c.MaxDuration)).
		Err()
}

// MaxSizeBytes returns MaxSize in bytes, or -1 when it does not parse.
func (c *Config) MaxSizeBytes() int64 {
	return util.ParseSize(c.MaxSize, -1)
}
