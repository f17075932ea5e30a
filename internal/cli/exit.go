package cli

import (
	"fmt"

	"github.com/haskel/envstamp/internal/substitute"
)

const (
	exitPending         = 1
	exitIOErr           = 74 // EX_IOERR from sysexits.h
	exitConfig          = 78 // EX_CONFIG from sysexits.h
	exitNotExecutable   = 126
	exitCommandNotFound = 127
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitErrorFor maps a run failure to its exit code. Configuration problems
// exit with EX_CONFIG, everything else with EX_IOERR.
func exitErrorFor(err error) *ExitError {
	code := exitIOErr
	if stage, ok := substitute.StageOf(err); ok && stage == substitute.StageConfig {
		code = exitConfig
	}
	return &ExitError{
		Code:    code,
		Message: fmt.Sprintf("envstamp: %v", err),
		Err:     err,
	}
}

func configExitError(err error) *ExitError {
	return &ExitError{
		Code:    exitConfig,
		Message: fmt.Sprintf("envstamp: configuration: %v", err),
		Err:     err,
	}
}
