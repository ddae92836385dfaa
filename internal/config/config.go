// Package config holds the manager's runtime configuration: border
// appearance and the autostart program. The loaded value is owned by
// the dispatch goroutine; the three config commands mutate it there and
// nowhere else.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the config file is absent or leaves a field
// unset.
const (
	DefaultBorderWidth        uint32 = 2
	DefaultBorderColor        uint32 = 0xcccccc
	DefaultFocusedBorderColor uint32 = 0x00ccff
)

// Config is the runtime configuration. BorderWidth and the two colors
// are read whenever a window is mapped or refocused and updated by the
// SetBorder* commands.
type Config struct {
	BorderWidth        uint32 `yaml:"border_width"`
	BorderColor        uint32 `yaml:"border_color"`
	FocusedBorderColor uint32 `yaml:"focused_border_color"`

	// Autostart is the program executed once after the manager has
	// claimed the root window. Empty disables it.
	Autostart string `yaml:"autostart"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{
		BorderWidth:        DefaultBorderWidth,
		BorderColor:        DefaultBorderColor,
		FocusedBorderColor: DefaultFocusedBorderColor,
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.Autostart = filepath.Join(home, ".config", "floatwm", "autostart")
	}
	return cfg
}

// DefaultPath returns the expected config file location.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config dir: %w", err)
	}
	return filepath.Join(configDir, "floatwm", "config.yaml"), nil
}

// Load reads the config file from its default location. A missing file
// yields the defaults.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads a config file, overlaying it on the defaults.
// Unknown keys are an error so typos do not silently fall back to a
// default. A missing file is not an error.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var file struct {
		BorderWidth        *uint32 `yaml:"border_width"`
		BorderColor        *uint32 `yaml:"border_color"`
		FocusedBorderColor *uint32 `yaml:"focused_border_color"`
		Autostart          *string `yaml:"autostart"`
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if file.BorderWidth != nil {
		cfg.BorderWidth = *file.BorderWidth
	}
	if file.BorderColor != nil {
		cfg.BorderColor = *file.BorderColor
	}
	if file.FocusedBorderColor != nil {
		cfg.FocusedBorderColor = *file.FocusedBorderColor
	}
	if file.Autostart != nil {
		cfg.Autostart = *file.Autostart
	}
	return cfg, nil
}
