// Package config loads the optional strlint.toml manifest. The file
// is discovered upward from the start directory so a repository-root
// config applies to every checked subtree.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file looked up in each directory.
const ManifestName = "strlint.toml"

type Config struct {
	Policy PolicyConfig `toml:"policy"`
	Output OutputConfig `toml:"output"`
	Cache  CacheConfig  `toml:"cache"`
}

type PolicyConfig struct {
	// Prefer: "literal" оставляет не-ASCII текст как есть (форма по
	// умолчанию), "escape" советует escape-форму даже для конформных
	// литералов.
	Prefer string `toml:"prefer"`
	// Extensions limits which files are scanned when a directory is
	// given; empty means every regular file.
	Extensions []string `toml:"extensions"`
}

type OutputConfig struct {
	Color          string `toml:"color"`  // auto|on|off
	Format         string `toml:"format"` // text|json|sarif
	MaxDiagnostics int    `toml:"max_diagnostics"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Default returns the configuration used when no manifest exists.
func Default() Config {
	return Config{
		Policy: PolicyConfig{Prefer: "literal"},
		Output: OutputConfig{
			Color:          "auto",
			Format:         "text",
			MaxDiagnostics: 100,
		},
		Cache: CacheConfig{Enabled: true},
	}
}

// Find walks upward from startDir looking for strlint.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads and validates a manifest, filling unset values with
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("policy", "prefer") {
		if cfg.Policy.Prefer != "literal" && cfg.Policy.Prefer != "escape" {
			return Config{}, fmt.Errorf("%s: [policy].prefer must be \"literal\" or \"escape\", got %q", path, cfg.Policy.Prefer)
		}
	}
	if meta.IsDefined("output", "color") {
		switch cfg.Output.Color {
		case "auto", "on", "off":
		default:
			return Config{}, fmt.Errorf("%s: [output].color must be auto, on or off, got %q", path, cfg.Output.Color)
		}
	}
	if meta.IsDefined("output", "format") {
		switch cfg.Output.Format {
		case "text", "json", "sarif":
		default:
			return Config{}, fmt.Errorf("%s: [output].format must be text, json or sarif, got %q", path, cfg.Output.Format)
		}
	}
	if cfg.Output.MaxDiagnostics <= 0 {
		return Config{}, fmt.Errorf("%s: [output].max_diagnostics must be positive", path)
	}
	return cfg, nil
}

// Discover loads the nearest manifest or the defaults when none is
// found.
func Discover(startDir string) (Config, string, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, "", err
	}
	return cfg, path, nil
}
