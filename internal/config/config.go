// ABOUTME: Daybook configuration loading
// ABOUTME: Reads ~/.config/daybook/config.toml with sensible defaults
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	DataDir      string `toml:"data_dir"`
	DigestDir    string `toml:"digest_dir"`
	DigestFormat string `toml:"digest_format"`
}

// Load reads the daybook config file, falling back to defaults for anything
// unset. A missing config file is not an error.
func Load() (*Config, error) {
	cfg := defaults()

	path := filepath.Join(GetConfigHome(), "daybook", "config.toml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaults().DataDir
	}
	if cfg.DigestFormat == "" {
		cfg.DigestFormat = "markdown"
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		DataDir:      filepath.Join(GetDataHome(), "daybook"),
		DigestFormat: "markdown",
	}
}

// DBPath returns the SQLite database path under the data directory.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "daybook.db")
}
