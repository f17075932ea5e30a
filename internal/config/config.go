package config

import "time"

type Config struct {
	// Prefix selects the substitutable variables. Usually supplied through
	// the environment variable named by PrefixVar.
	Prefix string `yaml:"prefix"`

	// Roots are the directory trees to rewrite. Usually supplied through the
	// environment variable named by RootsVar.
	Roots []string `yaml:"roots"`

	// Names of the control variables read from the environment.
	PrefixVar string `yaml:"prefix_var"`
	RootsVar  string `yaml:"roots_var"`

	// ErrorPolicy: fail_fast, collect
	ErrorPolicy string `yaml:"error_policy"`

	Workers int    `yaml:"workers"`
	Timeout string `yaml:"timeout"`
	DryRun  bool   `yaml:"dry_run"`

	Preflight PreflightConfig `yaml:"preflight"`
	Report    ReportConfig    `yaml:"report"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type PreflightConfig struct {
	// MinFreeMB is the free space required on each root's file system.
	// Zero disables the check.
	MinFreeMB int `yaml:"min_free_mb"`
}

type ReportConfig struct {
	File string `yaml:"file"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// RedactValues masks variable values in log output.
	RedactValues bool `yaml:"redact_values"`
}

const (
	PolicyFailFast = "fail_fast"
	PolicyCollect  = "collect"
)

// TimeoutDuration returns the parsed run timeout, or zero when none is set.
// Validate rejects unparseable values, so the error is dropped here.
func (c *Config) TimeoutDuration() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

func (c *Config) MinFreeBytes() uint64 {
	return uint64(c.Preflight.MinFreeMB) * 1024 * 1024
}
