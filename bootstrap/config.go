package bootstrap

import (
	"github.com/kbukum/voicecheck/config"
)

// Config is the constraint for application configuration types. Any struct
// that embeds config.ServiceConfig by value satisfies it through promoted
// methods, and may shadow ApplyDefaults and Validate to cover its own fields.
//
//	type AppConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Server server.Config `yaml:"server" mapstructure:"server"`
//	}
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
