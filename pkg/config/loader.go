package config

import (
	"fmt"
	"os"

	"github.com/raywall/storefront/envloader"
	"gopkg.in/yaml.v3"
)

// Load builds the configuration from Defaults, the YAML file at path (skipped
// when path is empty) and the environment, then validates it.
func Load(path string) (*ServiceConfig, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := envloader.Load(cfg); err != nil {
		return nil, err
	}

	if err := NewValidator().Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
