package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
	"github.com/rs/zerolog"
)

var (
	// ErrEmptyMatchKey indicates a missing discriminator or payload key
	ErrEmptyMatchKey = errors.New("empty match key")

	// ErrInvalidMaxDepth indicates a non-positive traversal depth limit
	ErrInvalidMaxDepth = errors.New("invalid max depth")

	// ErrInvalidPattern indicates an uncompilable glob pattern
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrInvalidDebounce indicates a negative watch debounce
	ErrInvalidDebounce = errors.New("invalid debounce")

	// ErrInvalidLogLevel indicates an unknown log level name
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateScenes(&cfg.Scenes); err != nil {
		errs = append(errs, err)
	}

	if err := validateMatch(&cfg.Match); err != nil {
		errs = append(errs, err)
	}

	if cfg.Watch.DebounceMs < 0 {
		errs = append(errs, fmt.Errorf("%w: debounce_ms cannot be negative, got %d", ErrInvalidDebounce, cfg.Watch.DebounceMs))
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(cfg.Log.Level)); err != nil {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidLogLevel, cfg.Log.Level))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateScenes(cfg *ScenesConfig) error {
	var errs []error

	if len(cfg.Include) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one include pattern required", ErrInvalidPattern))
	}

	for _, pattern := range append(append([]string{}, cfg.Include...), cfg.Ignore...) {
		if _, err := glob.Compile(pattern); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateMatch(cfg *MatchConfig) error {
	var errs []error

	if strings.TrimSpace(cfg.DiscriminatorKey) == "" {
		errs = append(errs, fmt.Errorf("%w: discriminator_key is required", ErrEmptyMatchKey))
	}

	if strings.TrimSpace(cfg.PayloadKey) == "" {
		errs = append(errs, fmt.Errorf("%w: payload_key is required", ErrEmptyMatchKey))
	}

	if strings.TrimSpace(cfg.PluginSuffix) == "" {
		errs = append(errs, fmt.Errorf("%w: plugin_suffix is required", ErrEmptyMatchKey))
	}

	if cfg.MaxDepth <= 0 {
		errs = append(errs, fmt.Errorf("%w: max_depth must be positive, got %d", ErrInvalidMaxDepth, cfg.MaxDepth))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
