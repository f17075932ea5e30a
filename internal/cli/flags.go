package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/haskel/envstamp/internal/config"
	"github.com/haskel/envstamp/internal/logger"
	"github.com/haskel/envstamp/internal/preflight"
	"github.com/haskel/envstamp/internal/substitute"
)

// Flags shared by apply, check and config.
var (
	flagPrefix      string
	flagRoots       []string
	flagPrefixVar   string
	flagRootsVar    string
	flagErrorPolicy string
	flagWorkers     int
	flagTimeout     string
	flagDryRun      bool
	flagMinFreeMB   int
	flagReport      string
	flagRedact      bool
)

func addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&flagPrefix, "prefix", "", "variable prefix (overrides the prefix control variable)")
	f.StringSliceVar(&flagRoots, "root", nil, "root directory to rewrite, repeatable (overrides the roots control variable)")
	f.StringVar(&flagPrefixVar, "prefix-var", "", "name of the variable holding the prefix (default ENVSTAMP_PREFIX)")
	f.StringVar(&flagRootsVar, "roots-var", "", "name of the variable holding the roots (default ENVSTAMP_ROOTS)")
	f.StringVar(&flagErrorPolicy, "error-policy", "", "fail_fast or collect")
	f.IntVar(&flagWorkers, "workers", 0, "files processed concurrently")
	f.StringVar(&flagTimeout, "timeout", "", "abort the run after this duration, e.g. 30s")
	f.BoolVar(&flagDryRun, "dry-run", false, "report what would change without writing")
	f.IntVar(&flagMinFreeMB, "min-free-mb", 0, "required free space per root file system")
	f.StringVar(&flagReport, "report", "", "write a JSON run report to this path")
	f.BoolVar(&flagRedact, "redact", false, "mask variable values in logs")
}

// loadConfig resolves file, environment and flags, in that order of
// increasing precedence. It does not validate.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Resolve(cfgFile, lookupEnv, config.WithControlVars(flagPrefixVar, flagRootsVar))
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("prefix") {
		cfg.Prefix = flagPrefix
	}
	if flags.Changed("root") {
		cfg.Roots = flagRoots
	}
	if flags.Changed("error-policy") {
		cfg.ErrorPolicy = flagErrorPolicy
	}
	if flags.Changed("workers") {
		cfg.Workers = flagWorkers
	}
	if flags.Changed("timeout") {
		cfg.Timeout = flagTimeout
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = flagDryRun
	}
	if flags.Changed("min-free-mb") {
		cfg.Preflight.MinFreeMB = flagMinFreeMB
	}
	if flags.Changed("report") {
		cfg.Report.File = flagReport
	}
	if flags.Changed("redact") {
		cfg.Logging.RedactValues = flagRedact
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return logger.NewWithWriter(cmd.OutOrStdout(), logger.Options{
		Level:        cfg.Logging.Level,
		Format:       cfg.Logging.Format,
		RedactValues: cfg.Logging.RedactValues,
	})
}

func substituteOptions(cfg *config.Config, log *slog.Logger) substitute.Options {
	policy := substitute.FailFast
	if cfg.ErrorPolicy == config.PolicyCollect {
		policy = substitute.Collect
	}

	return substitute.Options{
		Prefix:  cfg.Prefix,
		Roots:   cfg.Roots,
		Policy:  policy,
		Workers: cfg.Workers,
		Timeout: cfg.TimeoutDuration(),
		DryRun:  cfg.DryRun,
		Checker: preflight.NewDiskSpace(cfg.MinFreeBytes(), log),
	}
}
