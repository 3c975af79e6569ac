package config

import (
	"github.com/RandomGgames/obschunk/internal/extract"
)

// Config represents the complete obschunk configuration.
// It can be loaded from ~/.obschunk/config.yml with environment
// variable overrides.
type Config struct {
	Scenes ScenesConfig `yaml:"scenes" mapstructure:"scenes"`
	Match  MatchConfig  `yaml:"match" mapstructure:"match"`
	Watch  WatchConfig  `yaml:"watch" mapstructure:"watch"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// ScenesConfig defines where scene collections live and which files
// count as collections.
type ScenesConfig struct {
	Dir     string   `yaml:"dir" mapstructure:"dir"`         // empty means the platform default OBS directory
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for collection file names
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to skip
}

// MatchConfig defines how a filter entry is recognized and which field
// is extracted from it.
type MatchConfig struct {
	DiscriminatorKey string `yaml:"discriminator_key" mapstructure:"discriminator_key"` // field identifying a filter entry
	PluginSuffix     string `yaml:"plugin_suffix" mapstructure:"plugin_suffix"`         // suffix the discriminator must end with
	PayloadKey       string `yaml:"payload_key" mapstructure:"payload_key"`             // sibling field holding the chunk data
	MaxDepth         int    `yaml:"max_depth" mapstructure:"max_depth"`                 // traversal depth guard
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms" mapstructure:"debounce_ms"` // quiet period before re-extracting
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"` // trace, debug, info, warn, error
}

// Default returns a configuration with sensible defaults. The match
// defaults target the ReaFIR standalone VST, which is what OBS noise
// suppression setups use.
func Default() *Config {
	return &Config{
		Scenes: ScenesConfig{
			Dir:     "",
			Include: []string{"*.json"},
			Ignore:  []string{"*.bak"},
		},
		Match: MatchConfig{
			DiscriminatorKey: "plugin_path",
			PluginSuffix:     "reafir_standalone.dll",
			PayloadKey:       "chunk_data",
			MaxDepth:         extract.DefaultMaxDepth,
		},
		Watch: WatchConfig{
			DebounceMs: 500,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
