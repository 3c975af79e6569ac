// Package scenes discovers OBS scene-collection files on disk.
package scenes

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/gobwas/glob"
)

// Collection is one scene-collection file found in the scenes directory.
type Collection struct {
	Name string // file name without extension
	Path string // absolute path
}

// compiledPattern holds both the pattern string and compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Discovery lists scene-collection files matching configurable glob
// patterns.
type Discovery struct {
	dir     string
	include []compiledPattern
	ignore  []compiledPattern
}

// NewDiscovery creates a discovery instance for the given directory.
// include and ignore are glob patterns matched against file names
// (e.g. "*.json", "*.bak").
func NewDiscovery(dir string, include, ignore []string) (*Discovery, error) {
	d := &Discovery{dir: dir}

	for _, pattern := range include {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}
		d.include = append(d.include, compiledPattern{pattern: pattern, glob: g})
	}

	for _, pattern := range ignore {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		d.ignore = append(d.ignore, compiledPattern{pattern: pattern, glob: g})
	}

	return d, nil
}

// Discover returns the matching collections in the directory, sorted by
// file name. A missing directory is an error; a directory with no
// matching files yields an empty slice.
func (d *Discovery) Discover() ([]Collection, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenes directory: %w", err)
	}

	// os.ReadDir returns entries sorted by name, which keeps the
	// listing (and prompt numbering) stable across runs.
	collections := []Collection{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !d.matchesAny(name, d.include) {
			continue
		}
		if d.matchesAny(name, d.ignore) {
			continue
		}
		collections = append(collections, Collection{
			Name: strings.TrimSuffix(name, filepath.Ext(name)),
			Path: filepath.Join(d.dir, name),
		})
	}

	return collections, nil
}

func (d *Discovery) matchesAny(name string, patterns []compiledPattern) bool {
	for _, p := range patterns {
		if p.glob.Match(name) {
			return true
		}
	}
	return false
}

// DefaultDir returns the OBS scene-collection directory for this
// platform. OBS keeps collections under its per-user config tree.
func DefaultDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return "", errors.New("APPDATA is not set")
		}
		return filepath.Join(appData, "obs-studio", "basic", "scenes"), nil
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		return filepath.Join(home, "Library", "Application Support", "obs-studio", "basic", "scenes"), nil
	default:
		cfgDir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve config directory: %w", err)
		}
		return filepath.Join(cfgDir, "obs-studio", "basic", "scenes"), nil
	}
}
