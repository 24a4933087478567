package config

import (
	"errors"
	"fmt"
	"os"

	"preflight/pkg/logging"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where the operator may drop overrides. A missing
// file is not an error; built-in defaults apply.
const DefaultConfigPath = "/etc/preflight.yaml"

// LoadConfig loads configuration from the given path, layered over the
// built-in defaults. An empty path means DefaultConfigPath.
func LoadConfig(configPath string) (Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	config := GetDefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Debug("ConfigLoader", "No config file at %s, using defaults", configPath)
			return config, nil
		}
		return Config{}, fmt.Errorf("error reading config from %s: %w", configPath, err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		// config malformed
		return Config{}, fmt.Errorf("error loading config from %s: %w", configPath, err)
	}
	logging.Info("ConfigLoader", "Loaded configuration from %s", configPath)

	if err := Validate(config); err != nil {
		return Config{}, fmt.Errorf("invalid configuration in %s: %w", configPath, err)
	}
	return config, nil
}
