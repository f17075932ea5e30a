package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	jsonOut bool
	verbose bool

	// Version info (set from main)
	Version = "0.1.0"

	// lookupEnv reads control variables. Replaced in tests.
	lookupEnv = os.LookupEnv
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "envstamp",
	Short: "Inject runtime configuration into prebuilt static assets",
	Long: `envstamp replaces placeholder tokens in a built frontend with values from
the environment, once, at container start.

Every environment variable whose name starts with the configured prefix is
a substitution: each literal occurrence of the variable's name in any file
under the configured roots is replaced with the variable's value.

The prefix and roots are read from ENVSTAMP_PREFIX and ENVSTAMP_ROOTS unless
the control variables are renamed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}

// SetVersion sets the version for the CLI
func SetVersion(v string) {
	Version = v
	rootCmd.Version = v
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// IsJSON returns whether JSON output is enabled
func IsJSON() bool {
	return jsonOut
}

// IsVerbose returns whether verbose output is enabled
func IsVerbose() bool {
	return verbose
}
