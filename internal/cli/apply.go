package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/haskel/envstamp/internal/config"
	"github.com/haskel/envstamp/internal/report"
	"github.com/haskel/envstamp/internal/substitute"
)

var applyCmd = &cobra.Command{
	Use:   "apply [flags] [-- command [args...]]",
	Short: "Replace placeholders, then optionally start the server",
	Long: `Replace every prefixed variable name found under the roots with its value.

When a command follows "--", envstamp replaces itself with that command, but
only after every file was processed successfully. A failed run never starts
the server.

Exit codes:
  0    Success
  74   I/O failure (directory, read, write, timeout)
  78   Configuration missing or invalid
  126  Command not executable
  127  Command not found`,
	Example: `  ENVSTAMP_PREFIX=VITE_ ENVSTAMP_ROOTS=/usr/share/nginx/html envstamp apply
  envstamp apply --prefix APP_ --root /site --root /admin
  envstamp apply -- nginx -g 'daemon off;'`,
	RunE: runApply,
}

func init() {
	addRunFlags(applyCmd)
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	command, err := trailingCommand(cmd, args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return configExitError(err)
	}
	if err := cfg.Validate(); err != nil {
		return configExitError(err)
	}

	log := newLogger(cmd, cfg)
	log.Info("envstamp starting",
		"version", Version,
		"config", cfgFile,
		"prefix", cfg.Prefix,
		"roots", cfg.Roots,
		"dry_run", cfg.DryRun,
	)

	res, runErr := substitute.New(substituteOptions(cfg, log), log).Run(cmd.Context())
	saveReport(cfg, res, runErr, log)

	if runErr != nil {
		log.Error("substitution failed", "error", runErr)
		return exitErrorFor(runErr)
	}

	if len(command) == 0 {
		return nil
	}

	log.Info("starting command", "command", command[0], "args", command[1:])
	return execCommand(command)
}

// trailingCommand returns the arguments after "--". Positional arguments
// before it are rejected so a mistyped flag is not run as a command.
func trailingCommand(cmd *cobra.Command, args []string) ([]string, error) {
	dash := cmd.ArgsLenAtDash()
	if dash == -1 {
		if len(args) > 0 {
			return nil, fmt.Errorf("unexpected arguments %q: put the command after --", args)
		}
		return nil, nil
	}
	if dash > 0 {
		return nil, fmt.Errorf("unexpected arguments %q before --", args[:dash])
	}
	return args[dash:], nil
}

func saveReport(cfg *config.Config, res *substitute.Result, runErr error, log *slog.Logger) {
	if cfg.Report.File == "" {
		return
	}
	if err := report.Save(cfg.Report.File, report.New(res, runErr, cfg.DryRun)); err != nil {
		log.Warn("failed to write run report", "path", cfg.Report.File, "error", err)
		return
	}
	log.Debug("wrote run report", "path", cfg.Report.File)
}
