// Package config loads gitscope's optional TOML configuration.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds user-tunable settings.
type Config struct {
	// ShowNotes toggles the educational note line under the tree view.
	ShowNotes bool `toml:"show_notes"`
	// PreviewBytes caps how much of a payload the preview panes render.
	PreviewBytes int `toml:"preview_bytes"`
	// LogFile is where diagnostics go; empty disables logging.
	LogFile string `toml:"log_file"`
	// LogLevel is a zap level name (debug, info, warn, error).
	LogLevel string `toml:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		ShowNotes:    true,
		PreviewBytes: 64 * 1024,
		LogLevel:     "info",
	}
}

// Load reads the TOML file at path, applying defaults for absent keys.
// A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.PreviewBytes < 0 {
		return cfg, fmt.Errorf("config %s: preview_bytes must be >= 0", path)
	}
	return cfg, nil
}
