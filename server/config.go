package server

import (
	"fmt"

	"github.com/kbukum/voicecheck/server/middleware"
	"github.com/kbukum/voicecheck/util"
)

// DefaultPort is the port the service listens on when none is configured.
const DefaultPort = 8000

// Config holds HTTP server configuration.
type Config struct {
	Host         string                     `yaml:"host" mapstructure:"host"`
	Port         int                        `yaml:"port" mapstructure:"port"`
	ReadTimeout  int                        `yaml:"read_timeout" mapstructure:"read_timeout"`   // seconds
	WriteTimeout int                        `yaml:"write_timeout" mapstructure:"write_timeout"` // seconds
	IdleTimeout  int                        `yaml:"idle_timeout" mapstructure:"idle_timeout"`   // seconds
	MaxBodySize  string                     `yaml:"max_body_size" mapstructure:"max_body_size"` // e.g. "16MB"
	CORS         middleware.CORSConfig      `yaml:"cors" mapstructure:"cors"`
	RateLimit    middleware.RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// ApplyDefaults sets sensible default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 30
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 60
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 120
	}
	// Base64 inflates the 10MB audio limit by a third; leave room for the JSON around it.
	if c.MaxBodySize == "" {
		c.MaxBodySize = "16MB"
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
	if len(c.CORS.AllowedMethods) == 0 {
		c.CORS.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(c.CORS.AllowedHeaders) == 0 {
		c.CORS.AllowedHeaders = []string{"Origin", "Content-Type", "Accept", middleware.APIKeyHeader, middleware.RequestIDHeader}
	}
	if len(c.CORS.ExposedHeaders) == 0 {
		c.CORS.ExposedHeaders = []string{middleware.RequestIDHeader, "Retry-After"}
	}
	if c.CORS.MaxAge == 0 {
		c.CORS.MaxAge = 600
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535 (got: %d)", c.Port)
	}
	if c.ReadTimeout < 0 {
		return fmt.Errorf("server.read_timeout must be non-negative (got: %d)", c.ReadTimeout)
	}
	if c.WriteTimeout < 0 {
		return fmt.Errorf("server.write_timeout must be non-negative (got: %d)", c.WriteTimeout)
	}
	if c.IdleTimeout < 0 {
		return fmt.Errorf("server.idle_timeout must be non-negative (got: %d)", c.IdleTimeout)
	}
	if util.ParseSize(c.MaxBodySize, -1) <= 0 {
		return fmt.Errorf("server.max_body_size must be a positive size like 16MB (got: %q)", c.MaxBodySize)
	}
	if err := c.RateLimit.Validate(); err != nil {
		return fmt.Errorf("server.rate_limit: %w", err)
	}
	return nil
}
