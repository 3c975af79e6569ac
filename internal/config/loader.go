package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	configFile string // explicit config file path, or empty
	homeDir    string // directory containing .obschunk/
}

// NewLoader creates a configuration loader. configFile, when non-empty,
// names an explicit config file; otherwise ~/.obschunk/config.yml is
// searched under homeDir.
func NewLoader(configFile, homeDir string) Loader {
	return &loader{
		configFile: configFile,
		homeDir:    homeDir,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (OBSCHUNK_*)
// 2. Config file (--config, or ~/.obschunk/config.yml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(l.homeDir, ".obschunk"))
	}

	// Enable environment variable overrides
	v.SetEnvPrefix("OBSCHUNK")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., OBSCHUNK_MATCH_PAYLOAD_KEY)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Bind environment variables to config keys
	v.BindEnv("scenes.dir")
	v.BindEnv("match.discriminator_key")
	v.BindEnv("match.plugin_suffix")
	v.BindEnv("match.payload_key")
	v.BindEnv("match.max_depth")
	v.BindEnv("watch.debounce_ms")
	v.BindEnv("log.level")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if l.configFile != "" {
			// An explicitly named config file must exist and parse.
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is acceptable - we'll use defaults + env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("scenes.dir", defaults.Scenes.Dir)
	v.SetDefault("scenes.include", defaults.Scenes.Include)
	v.SetDefault("scenes.ignore", defaults.Scenes.Ignore)

	v.SetDefault("match.discriminator_key", defaults.Match.DiscriminatorKey)
	v.SetDefault("match.plugin_suffix", defaults.Match.PluginSuffix)
	v.SetDefault("match.payload_key", defaults.Match.PayloadKey)
	v.SetDefault("match.max_depth", defaults.Match.MaxDepth)

	v.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMs)

	v.SetDefault("log.level", defaults.Log.Level)
}

// Load is a convenience function that creates a loader rooted at the
// user home directory. configFile, when non-empty, overrides the
// default search path.
func Load(configFile string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return NewLoader(configFile, home).Load()
}
