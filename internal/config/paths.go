package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath is the environment variable for explicit config path
	EnvConfigPath = "GATESIM_CONFIG"
	// ConfigFileName is the config file name looked up in the working directory
	ConfigFileName = "gatesim.yaml"
	// ConfigDirName is the config directory name under XDG
	ConfigDirName = "gatesim"
)

// SearchPaths lists the candidate config files in priority order:
// 1. $GATESIM_CONFIG (explicit path)
// 2. ./gatesim.yaml (working directory)
// 3. $XDG_CONFIG_HOME/gatesim/config.yaml
// 4. ~/.config/gatesim/config.yaml
// 5. /etc/gatesim/config.yaml
func SearchPaths() []string {
	var paths []string
	if path := os.Getenv(EnvConfigPath); path != "" {
		paths = append(paths, path)
	}
	if abs, err := filepath.Abs(ConfigFileName); err == nil {
		paths = append(paths, abs)
	} else {
		paths = append(paths, ConfigFileName)
	}
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, ConfigDirName, "config.yaml"))
	}
	if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", ConfigDirName, "config.yaml"))
	}
	return append(paths, filepath.Join("/etc", ConfigDirName, "config.yaml"))
}

// FindConfigPath returns the first existing file from SearchPaths, or an
// empty string if there is none
func FindConfigPath() string {
	for _, path := range SearchPaths() {
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// Resolve loads the config at explicit when it is set, otherwise searches
// the standard locations
func Resolve(explicit string) (*Config, string, error) {
	if explicit != "" {
		return LoadFromPath(explicit)
	}
	return Load()
}

// DefaultConfigPath returns the preferred location for a new config file.
// Prefers XDG config home, falls back to working directory.
func DefaultConfigPath() string {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, ConfigDirName, "config.yaml")
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", ConfigDirName, "config.yaml")
	}
	return ConfigFileName
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir(configPath string) error {
	dir := filepath.Dir(configPath)
	return os.MkdirAll(dir, 0755)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
