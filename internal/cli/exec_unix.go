//go:build unix

package cli

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

// sysExec is replaced in tests.
var sysExec = syscall.Exec

// execCommand replaces the current process with args. It only returns on
// failure.
func execCommand(args []string) error {
	path, err := exec.LookPath(args[0])
	if err != nil {
		return &ExitError{
			Code:    exitCommandNotFound,
			Message: fmt.Sprintf("envstamp: %s: command not found", args[0]),
			Err:     err,
		}
	}

	if err := sysExec(path, args, os.Environ()); err != nil {
		return &ExitError{
			Code:    exitNotExecutable,
			Message: fmt.Sprintf("envstamp: exec %s: %v", path, err),
			Err:     err,
		}
	}

	return nil
}
