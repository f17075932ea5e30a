package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a config file on top of Default(). It does not validate:
// prefix and roots are normally filled in later from the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	data, err = substituteEnvVars(data)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Option adjusts the configuration after the file is loaded and before the
// environment is read.
type Option func(*Config)

// WithControlVars renames the control variables. Empty names are ignored.
func WithControlVars(prefixVar, rootsVar string) Option {
	return func(c *Config) {
		if prefixVar != "" {
			c.PrefixVar = prefixVar
		}
		if rootsVar != "" {
			c.RootsVar = rootsVar
		}
	}
}

// Resolve builds the effective configuration: defaults, then the optional
// file at path, then opts, then the control variables found through lookup.
func Resolve(path string, lookup LookupFunc, opts ...Option) (*Config, error) {
	cfg := Default()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cfg.PrefixVar == "" {
		cfg.PrefixVar = DefaultPrefixVar
	}
	if cfg.RootsVar == "" {
		cfg.RootsVar = DefaultRootsVar
	}

	for _, opt := range opts {
		opt(cfg)
	}

	cfg.ApplyEnv(lookup)
	return cfg, nil
}
