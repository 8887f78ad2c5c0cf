package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileSystem abstracts the file operations the loader needs (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem on top of the OS.
type RealFileSystem struct{}

func (RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// Resolver finds config and env files for a service.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles contains the resolved config and env file paths.
// Empty means nothing was found.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles returns explicit paths when provided, otherwise the first
// match in the standard search locations.
func (r *Resolver) ResolveFiles(serviceName string, opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{
		ConfigFile: opts.ConfigFile,
		EnvFile:    opts.EnvFile,
	}
	if resolved.ConfigFile == "" {
		resolved.ConfigFile = r.firstExisting(searchDirs(serviceName), "config.yml")
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = r.firstExisting(searchDirs(serviceName), ".env."+serviceName, ".env")
	}
	return resolved
}

func (r *Resolver) firstExisting(dirs []string, names ...string) string {
	for _, name := range names {
		for _, dir := range dirs {
			path := filepath.Join(dir, name)
			if r.FileSystem.Exists(path) {
				return path
			}
		}
	}
	return ""
}

// searchDirs lists the directories probed for config files, nearest first.
func searchDirs(serviceName string) []string {
	return []string{
		".",
		filepath.Join("cmd", serviceName),
		"config",
		filepath.Join("..", "cmd", serviceName),
		filepath.Join("..", "config"),
		"..",
		filepath.Join("..", "..", "cmd", serviceName),
		filepath.Join("..", ".."),
	}
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string // explicit config file path (optional)
	EnvFile    string // explicit env file path (optional)
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// LoadConfig loads configuration for a service into cfg.
// Explicit files that do not exist are an error; searched files are optional.
func LoadConfig(serviceName string, cfg interface{}, opts ...LoaderOption) error {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = RealFileSystem{}
	}

	if lc.ConfigFile != "" && !lc.FileSystem.Exists(lc.ConfigFile) {
		return fmt.Errorf("config file %s not found", lc.ConfigFile)
	}
	if lc.EnvFile != "" && !lc.FileSystem.Exists(lc.EnvFile) {
		return fmt.Errorf("env file %s not found", lc.EnvFile)
	}

	resolver := &Resolver{FileSystem: lc.FileSystem}
	files := resolver.ResolveFiles(serviceName, lc)
	return load(serviceName, cfg, files, lc.FileSystem)
}

// LoadEnvFile loads a dotenv file into the process environment without
// overriding variables that are already set.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func load(serviceName string, cfg interface{}, files ResolvedFiles, fs FileSystem) error {
	v := viper.New()

	if files.ConfigFile != "" {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file %s: %w", files.ConfigFile, err)
		}
	}

	if files.EnvFile != "" {
		if err := fs.LoadEnv(files.EnvFile); err != nil {
			return fmt.Errorf("load env file %s: %w", files.EnvFile, err)
		}
	}
	bindEnv(v)

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config for service %s: %w", serviceName, err)
	}
	return nil
}

// bindEnv sets every environment variable under each nested key spelling it
// could stand for.
func bindEnv(v *viper.Viper) {
	for _, env := range os.Environ() {
		key, value, ok := strings.Cut(env, "=")
		if !ok || key == "" {
			continue
		}
		for _, variant := range envKeyVariants(key) {
			v.Set(variant, value)
		}
	}
}

// envKeyVariants maps an environment variable name to the viper keys it may
// address. Every split point becomes a nesting boundary:
//
//	AUDIO_MAX_SIZE -> [audio_max_size, audio.max_size, audio.max.size]
//	API_KEY        -> [api_key, api.key]
func envKeyVariants(envKey string) []string {
	lower := strings.ToLower(envKey)
	parts := strings.Split(lower, "_")
	if len(parts) == 1 {
		return []string{lower}
	}

	seen := make(map[string]bool)
	var variants []string
	add := func(k string) {
		if !seen[k] {
			seen[k] = true
			variants = append(variants, k)
		}
	}

	add(lower)
	for i := 1; i < len(parts); i++ {
		add(strings.Join(parts[:i], ".") + "." + strings.Join(parts[i:], "_"))
	}
	add(strings.Join(parts, "."))
	return variants
}
