// Package config loads service configuration from YAML files, .env files
// and environment variables using Viper and godotenv.
//
// Values resolve in this order, later sources winning:
//
//  1. config.yml (explicit path or the first one found in the search paths)
//  2. process environment
//  3. .env file (explicit path or the first one found)
//
// Environment variables bind to nested keys without a prefix: SERVER_PORT
// sets server.port and AUDIO_MAX_SIZE sets audio.max_size.
//
// # Usage
//
//	var cfg AppConfig
//	if err := config.LoadConfig("voicecheck", &cfg); err != nil {
//	    return err
//	}
package config
