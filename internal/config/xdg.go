// ABOUTME: XDG base directory lookups for data and config paths
// ABOUTME: Falls back to the conventional dotted home directories
package config

import (
	"os"
	"path/filepath"
)

// GetDataHome returns XDG_DATA_HOME, falling back to ~/.local/share.
func GetDataHome() string {
	return xdgDir("XDG_DATA_HOME", ".local", "share")
}

// GetConfigHome returns XDG_CONFIG_HOME, falling back to ~/.config.
func GetConfigHome() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

func xdgDir(env string, fallback ...string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	parts := append([]string{os.Getenv("HOME")}, fallback...)
	return filepath.Join(parts...)
}
