package config

import (
	"errors"
	"fmt"
	"time"
)

// ConfigError reports a required setting that is missing.
type ConfigError struct {
	Setting string
	EnvVar  string
}

func (e *ConfigError) Error() string {
	if e.EnvVar == "" {
		return fmt.Sprintf("%s is not set", e.Setting)
	}
	return fmt.Sprintf("%s is not set (set %s)", e.Setting, e.EnvVar)
}

func (c *Config) Validate() error {
	var errs []error

	if c.Prefix == "" {
		errs = append(errs, &ConfigError{Setting: "prefix", EnvVar: c.PrefixVar})
	}

	if len(c.Roots) == 0 {
		errs = append(errs, &ConfigError{Setting: "roots", EnvVar: c.RootsVar})
	}

	if c.PrefixVar != "" && c.PrefixVar == c.RootsVar {
		errs = append(errs, fmt.Errorf("prefix_var and roots_var must differ, both are %s", c.PrefixVar))
	}

	if c.ErrorPolicy != PolicyFailFast && c.ErrorPolicy != PolicyCollect {
		errs = append(errs, fmt.Errorf("invalid error_policy: %s (valid: %s, %s)", c.ErrorPolicy, PolicyFailFast, PolicyCollect))
	}

	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}

	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err))
		} else if d < 0 {
			errs = append(errs, fmt.Errorf("timeout must not be negative, got %s", c.Timeout))
		}
	}

	if err := c.Preflight.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("preflight: %w", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	return errors.Join(errs...)
}

func (p *PreflightConfig) Validate() error {
	if p.MinFreeMB < 0 {
		return fmt.Errorf("min_free_mb must be non-negative, got %d", p.MinFreeMB)
	}
	return nil
}

func (l *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[l.Level] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", l.Level)
	}

	validFormats := map[string]bool{
		"json": true,
		"text": true,
	}
	if !validFormats[l.Format] {
		return fmt.Errorf("invalid log format: %s (valid: json, text)", l.Format)
	}

	return nil
}
