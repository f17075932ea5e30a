package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haskel/envstamp/internal/report"
	"github.com/haskel/envstamp/internal/substitute"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "List files that still contain placeholders",
	Long: `Scan the roots without writing anything and list the files that still
contain a prefixed variable name.

Exit codes:
  0    No placeholders left
  1    At least one file still contains a placeholder
  74   I/O failure
  78   Configuration missing or invalid`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	addRunFlags(checkCmd)
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return configExitError(err)
	}
	cfg.DryRun = true
	if err := cfg.Validate(); err != nil {
		return configExitError(err)
	}

	log := newLogger(cmd, cfg)
	res, runErr := substitute.New(substituteOptions(cfg, log), log).Run(cmd.Context())
	saveReport(cfg, res, runErr, log)
	if runErr != nil {
		return exitErrorFor(runErr)
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		data, err := json.MarshalIndent(report.New(res, nil, true), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	} else {
		for _, path := range res.Pending {
			fmt.Fprintln(out, path)
		}
	}

	if len(res.Pending) > 0 {
		return &ExitError{
			Code:    exitPending,
			Message: fmt.Sprintf("envstamp: %d file(s) still contain placeholders", len(res.Pending)),
		}
	}
	return nil
}
