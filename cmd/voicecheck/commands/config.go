package commands

import (
	"fmt"
	"strings"

	"github.com/kbukum/voicecheck/audio"
	"github.com/kbukum/voicecheck/classifier"
	"github.com/kbukum/voicecheck/config"
	"github.com/kbukum/voicecheck/detection"
	"github.com/kbukum/voicecheck/observability"
	"github.com/kbukum/voicecheck/server"
	"github.com/kbukum/voicecheck/version"
)

// AppConfig is the serve configuration. Every key can be set from the
// environment, e.g. API_KEY, SERVER_PORT or CLASSIFIER_BACKEND.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	// APIKey is the shared secret expected in x-api-key.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`

	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Audio         audio.Config         `yaml:"audio" mapstructure:"audio"`
	Detection     detection.Config     `yaml:"detection" mapstructure:"detection"`
	Classifier    classifier.Config    `yaml:"classifier" mapstructure:"classifier"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills empty fields across all sections.
func (c *AppConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = appName
	}
	if c.Version == "" {
		c.Version = version.Version
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Audio.ApplyDefaults()
	c.Classifier.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate refuses to serve without an API key.
func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("api_key is required (set API_KEY or api_key in config.yml)")
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Audio.Validate(); err != nil {
		return err
	}
	if err := c.Classifier.Validate(); err != nil {
		return err
	}
	return c.Observability.Validate()
}

// loadAppConfig reads config.yml and .env from the standard locations, or
// the explicit files when given.
func loadAppConfig(configFile, envFile string) (*AppConfig, error) {
	var opts []config.LoaderOption
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}

	var cfg AppConfig
	if err := config.LoadConfig(appName, &cfg, opts...); err != nil {
		return nil, err
	}
	return &cfg, nil
}
