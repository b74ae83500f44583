package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the config file at path on top of the defaults. Used for
// hot reload; initial startup goes through viper so flags and
// environment variables participate.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path) //nolint:gosec // G304: path is the user's own config file
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
