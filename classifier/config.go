package classifier

import (
	"fmt"
	"time"

	"github.com/kbukum/voicecheck/security"
	"github.com/kbukum/voicecheck/validation"
)

const (
	BackendHeuristic = "heuristic"
	BackendRemote    = "remote"
)

// Config selects and tunes the classifier backend.
type Config struct {
	// Backend is the registered backend name (default "heuristic").
	Backend string `yaml:"backend" mapstructure:"backend"`
	// Timeout bounds a single Classify call (default 30s).
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// MaxConcurrent caps in-flight Classify calls (default 8).
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`
	// MaxWait is how long a request queues for a free slot (default 5s).
	MaxWait time.Duration `yaml:"max_wait" mapstructure:"max_wait"`
	// AnalysisWindow is how much audio the heuristic backend analyses (default 10s).
	AnalysisWindow time.Duration `yaml:"analysis_window" mapstructure:"analysis_window"`
	Remote         RemoteConfig  `yaml:"remote" mapstructure:"remote"`
}

// RemoteConfig points at an HTTP classification sidecar.
type RemoteConfig struct {
	URL     string        `yaml:"url" mapstructure:"url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// MaxFailures consecutive failures open the circuit for ResetTimeout.
	MaxFailures  int           `yaml:"max_failures" mapstructure:"max_failures"`
	ResetTimeout time.Duration `yaml:"reset_timeout" mapstructure:"reset_timeout"`
	// TLS applies to https URLs.
	TLS security.TLSConfig `yaml:"tls" mapstructure:"tls"`
}

// ApplyDefaults fills empty fields.
func (c *Config) ApplyDefaults() {
	if c.Backend == "" {
		c.Backend = BackendHeuristic
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = 8
	}
	if c.MaxWait <= 0 {
		c.MaxWait = 5 * time.Second
	}
	if c.AnalysisWindow <= 0 {
		c.AnalysisWindow = 10 * time.Second
	}
	if c.Remote.Timeout <= 0 {
		c.Remote.Timeout = c.Timeout
	}
	if c.Remote.MaxFailures <= 0 {
		c.Remote.MaxFailures = 5
	}
	if c.Remote.ResetTimeout <= 0 {
		c.Remote.ResetTimeout = 30 * time.Second
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	v := validation.New().
		Custom(c.Backend != BackendRemote || c.Remote.URL != "", "classifier.remote.url", "is required for the remote backend").
		Custom(c.Timeout > 0, "classifier.timeout", fmt.Sprintf("must be positive (got: %s)", c.Timeout)).
		Range("classifier.max_concurrent", int64(c.MaxConcurrent), 1, 1024)
	if err := c.Remote.TLS.Validate(); err != nil {
		v.AddError("classifier.remote.tls", err.Error())
	}
	return v.Err()
}
