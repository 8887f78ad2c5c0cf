package observability

import (
	"fmt"
	"time"
)

// Config selects the OTLP HTTP exporters.
type Config struct {
	// Endpoint is the OTLP HTTP host:port, e.g. "localhost:4318". Empty disables export.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	// Insecure disables TLS towards the collector.
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`
	// SampleRate is the trace sampling ratio in [0, 1] (default 1).
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
	// MetricInterval is the metric export period (default 15s).
	MetricInterval time.Duration `yaml:"metric_interval" mapstructure:"metric_interval"`
}

// Enabled reports whether exporters should be created.
func (c *Config) Enabled() bool { return c.Endpoint != "" }

// ApplyDefaults fills empty fields.
func (c *Config) ApplyDefaults() {
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.MetricInterval <= 0 {
		c.MetricInterval = 15 * time.Second
	}
}

// Tracer returns the exporter settings for InitTracer.
func (c *Config) Tracer(service, version, environment string) TracerConfig {
	return TracerConfig{
		ServiceName:    service,
		ServiceVersion: version,
		Environment:    environment,
		Endpoint:       c.Endpoint,
		Insecure:       c.Insecure,
		SampleRate:     c.SampleRate,
	}
}

// Meter returns the exporter settings for InitMeter.
func (c *Config) Meter(service, version, environment string) *MeterConfig {
	return &MeterConfig{
		ServiceName:    service,
		ServiceVersion: version,
		Environment:    environment,
		Endpoint:       c.Endpoint,
		Insecure:       c.Insecure,
		Interval:       c.MetricInterval,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("observability.sample_rate must be between 0 and 1 (got: %v)", c.SampleRate)
	}
	return nil
}
