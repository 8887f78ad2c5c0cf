package httpclient

import (
	"fmt"
	"time"

	"github.com/kbukum/voicecheck/resilience"
	"github.com/kbukum/voicecheck/security"
	"github.com/kbukum/voicecheck/version"
)

const defaultTimeout = 30 * time.Second

// Config configures an outbound client: the CLI talking to the service, or
// the service talking to a classifier sidecar.
type Config struct {
	// BaseURL is the base URL prepended to all request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout is the default request timeout. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Auth is applied to every request unless the request overrides it.
	Auth *AuthConfig `yaml:"-" mapstructure:"-"`

	// UserAgent identifies the caller. Defaults to voicecheck/<version>.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// TLS configures https targets. Nil uses the system roots.
	TLS *security.TLSConfig `yaml:"tls" mapstructure:"tls"`

	// CircuitBreaker configures circuit breaker behavior. Nil disables it.
	CircuitBreaker *resilience.CircuitBreakerConfig `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = "voicecheck/" + version.Version
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	return c.TLS.Validate()
}
