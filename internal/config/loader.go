package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ConfigDir is the per-project directory holding config.yml.
const ConfigDir = ".skeleton"

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir    string
	configFile string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// NewFileLoader creates a loader that reads configFile instead of searching
// the root's .skeleton directory. A missing configFile is an error.
func NewFileLoader(rootDir, configFile string) Loader {
	return &loader{
		rootDir:    rootDir,
		configFile: configFile,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (SKELETON_*)
// 2. Config file (.skeleton/config.yml or .skeleton/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	// Configure viper
	v := viper.New()

	// An explicit file wins over the .skeleton search
	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(l.rootDir, ConfigDir))
	}

	// Enable environment variable overrides
	v.SetEnvPrefix("SKELETON")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., SKELETON_BATCH_WORKERS)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Bind environment variables to config keys
	v.BindEnv("skeleton.keep_constants")
	v.BindEnv("batch.workers")
	v.BindEnv("batch.output_dir")
	v.BindEnv("batch.suffix")
	v.BindEnv("watch.debounce_ms")

	// Set defaults in viper
	setDefaults(v)

	// Try to read config file
	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars.
		// An explicit file that is missing surfaces as a PathError instead.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into config struct
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate the configuration
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	// Skeleton defaults
	v.SetDefault("skeleton.keep_constants", defaults.Skeleton.KeepConstants)

	// Paths defaults
	v.SetDefault("paths.include", defaults.Paths.Include)
	v.SetDefault("paths.ignore", defaults.Paths.Ignore)

	// Batch defaults
	v.SetDefault("batch.workers", defaults.Batch.Workers)
	v.SetDefault("batch.output_dir", defaults.Batch.OutputDir)
	v.SetDefault("batch.suffix", defaults.Batch.Suffix)

	v.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMs)
}

// LoadConfig is a convenience function that creates a loader and loads config.
// It uses the current working directory as the root.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
