// Package config loads the optional ~/.config/gitpilot/config.toml file
// (SPEC_FULL.md's Configuration addition). Parsing the theme's hex colors
// and the installer script are explicitly out of scope; this package only
// loads the raw strings, and no other package reads Theme or Keybindings.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config is the full set of user-overridable settings.
type Config struct {
	Theme             map[string]string `toml:"theme"`
	Keybindings       map[string]string `toml:"keybindings"`
	ConfirmDestructive bool             `toml:"confirm_destructive"`
}

// ConfigError wraps a malformed config file (SPEC_FULL.md error taxonomy).
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string { return "config: " + e.Path + ": " + e.Err.Error() }
func (e *ConfigError) Unwrap() error { return e.Err }

// DefaultConfig is the built-in configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Theme:              map[string]string{},
		Keybindings:        map[string]string{},
		ConfirmDestructive: true,
	}
}

// DefaultPath returns ~/.config/gitpilot/config.toml, honoring XDG_CONFIG_HOME.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gitpilot", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "gitpilot", "config.toml")
	}
	return filepath.Join(home, ".config", "gitpilot", "config.toml")
}

// Load reads and parses path. A missing file is not an error — it returns
// DefaultConfig() unchanged, matching SPEC_FULL.md's config-defaulting
// property. A present-but-malformed file returns a *ConfigError.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, &ConfigError{Path: path, Err: errors.Wrap(err, "read")}
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return DefaultConfig(), &ConfigError{Path: path, Err: errors.Wrap(err, "parse")}
	}
	if cfg.Theme == nil {
		cfg.Theme = map[string]string{}
	}
	if cfg.Keybindings == nil {
		cfg.Keybindings = map[string]string{}
	}
	return cfg, nil
}
