// Package config loads the optional minidb.toml session configuration.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultFile is the config file looked up when none is specified.
const DefaultFile = "minidb.toml"

// Config holds the session settings.
type Config struct {
	// StorePath is the directory of the embedded store.
	StorePath string `toml:"store_path"`
	// Prompt prefixes every message line and the input prompt.
	Prompt string `toml:"prompt"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		StorePath: "minidb-data",
		Prompt:    "minidb>",
	}
}

// Load reads path over the defaults. With required=false a missing file is
// not an error and the defaults apply; an explicitly requested file must
// exist.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	if _, err := toml.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("config: decode %q: %w", path, err)
	}
	if cfg.StorePath == "" {
		cfg.StorePath = Default().StorePath
	}
	if cfg.Prompt == "" {
		cfg.Prompt = Default().Prompt
	}
	return cfg, nil
}
