package config

const (
	DefaultPrefixVar = "ENVSTAMP_PREFIX"
	DefaultRootsVar  = "ENVSTAMP_ROOTS"
)

func Default() *Config {
	return &Config{
		PrefixVar:   DefaultPrefixVar,
		RootsVar:    DefaultRootsVar,
		ErrorPolicy: PolicyFailFast,
		Workers:     1,
		Timeout:     "",
		DryRun:      false,
		Preflight: PreflightConfig{
			MinFreeMB: 0,
		},
		Logging: LoggingConfig{
			Level:        "info",
			Format:       "text",
			RedactValues: false,
		},
	}
}
