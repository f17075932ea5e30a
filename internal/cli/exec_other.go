//go:build !unix

package cli

import (
	"errors"
	"os"
	"os/exec"
)

// execCommand runs args as a child process and exits with its status, for
// platforms without exec(2).
func execCommand(args []string) error {
	execCmd := exec.Command(args[0], args[1:]...)
	execCmd.Stdin = os.Stdin
	execCmd.Stdout = os.Stdout
	execCmd.Stderr = os.Stderr

	err := execCmd.Run()
	if err == nil {
		os.Exit(0)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.ExitCode())
	}
	if errors.Is(err, exec.ErrNotFound) {
		return &ExitError{Code: exitCommandNotFound, Message: "envstamp: " + args[0] + ": command not found", Err: err}
	}
	return &ExitError{Code: exitNotExecutable, Message: "envstamp: " + err.Error(), Err: err}
}
