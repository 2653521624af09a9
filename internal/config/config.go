// Package config provides configuration management for gatesim.
//
// The config file holds preferences only. Simulations, gates and history
// live in the storage backend it points at.
//
// Config file locations (priority order):
//  1. $GATESIM_CONFIG
//  2. ./gatesim.yaml
//  3. $XDG_CONFIG_HOME/gatesim/config.yaml
//  4. ~/.config/gatesim/config.yaml
//  5. /etc/gatesim/config.yaml
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	defaultDBPath     = "./gatesim.db"
	defaultOffset     = 50
	defaultScale      = 100
	defaultSimulation = "default"
	defaultFlagMarker = "-"
	defaultLogLevel   = "warn"
	currentVersion    = 1
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		// No config found - return defaults
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = currentVersion
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendSQLite
	}
	if c.Storage.Path == "" && c.Storage.Backend != BackendMemory {
		c.Storage.Path = defaultDBPath
	}
	if c.Canvas.Offset == 0 {
		c.Canvas.Offset = defaultOffset
	}
	if c.Canvas.Scale == [2]float64{} {
		c.Canvas.Scale = [2]float64{defaultScale, defaultScale}
	}
	if c.Simulation.DefaultName == "" {
		c.Simulation.DefaultName = defaultSimulation
	}
	if c.Commands.FlagMarker == "" {
		c.Commands.FlagMarker = defaultFlagMarker
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
}

// Validate checks the config for values no component can work with
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	summary := fmt.Sprintf("Storage: %s", c.Storage.Backend)
	if c.Storage.Path != "" {
		summary += fmt.Sprintf(" (%s)", c.Storage.Path)
	}
	summary += fmt.Sprintf("\nCanvas: offset %g, scale %gx%g\n", c.Canvas.Offset, c.Canvas.Scale[0], c.Canvas.Scale[1])
	summary += fmt.Sprintf("Default simulation: %s, flag marker: %q\n", c.Simulation.DefaultName, c.Commands.FlagMarker)
	if c.Templates.Library != "" {
		summary += fmt.Sprintf("Gate library: %s (watch: %t)\n", c.Templates.Library, c.Templates.Watch)
	}
	summary += fmt.Sprintf("Log level: %s", c.Log.Level)
	return summary
}
