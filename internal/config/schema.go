package config

// Config is the gatesim configuration file
type Config struct {
	Version    int              `yaml:"version"`
	Storage    StorageConfig    `yaml:"storage"`
	Canvas     CanvasConfig     `yaml:"canvas"`
	Simulation SimulationConfig `yaml:"simulation"`
	Commands   CommandsConfig   `yaml:"commands"`
	Templates  TemplatesConfig  `yaml:"templates"`
	Log        LogConfig        `yaml:"log"`
}

// Storage backends
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// StorageConfig selects where simulations, gates and history are kept
type StorageConfig struct {
	Backend string `yaml:"backend" validate:"oneof=sqlite badger memory"`
	// Path is the sqlite file or the badger directory
	Path string `yaml:"path" validate:"required_unless=Backend memory"`
}

// CanvasConfig controls placement of new gates
type CanvasConfig struct {
	Offset float64    `yaml:"offset" validate:"gt=0"`
	Scale  [2]float64 `yaml:"scale,flow"`
}

// SimulationConfig holds simulation defaults
type SimulationConfig struct {
	DefaultName string `yaml:"default_name" validate:"required"`
}

// CommandsConfig holds command line parsing settings
type CommandsConfig struct {
	FlagMarker string `yaml:"flag_marker" validate:"required"`
}

// TemplatesConfig controls the gate template library
type TemplatesConfig struct {
	// Library is a YAML file of gate templates imported on start
	Library string `yaml:"library,omitempty"`
	// Watch re-imports the library when the file changes
	Watch        bool  `yaml:"watch"`
	SeedBuiltins *bool `yaml:"seed_builtins,omitempty"`
}

// LogConfig controls logging
type LogConfig struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
	// File receives the log instead of stderr
	File string `yaml:"file,omitempty"`
}

// ShouldSeedBuiltins reports whether the built-in gates are stored on first
// start. Unset means yes.
func (t TemplatesConfig) ShouldSeedBuiltins() bool {
	return t.SeedBuiltins == nil || *t.SeedBuiltins
}
