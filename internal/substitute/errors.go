package substitute

import (
	"errors"
	"strings"
)

// Stage names the step of a run that failed.
type Stage string

const (
	StageConfig    Stage = "configuration"
	StageDirectory Stage = "directory access"
	StageRead      Stage = "file read"
	StageWrite     Stage = "file write"
	StageTimeout   Stage = "timeout"
	StageCanceled  Stage = "canceled"
)

// Error is returned by Run. Path is the offending file or root, Key the
// offending setting or variable, when known.
type Error struct {
	Stage Stage
	Path  string
	Key   string
	Err   error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Stage))
	if e.Key != "" {
		b.WriteString(" ")
		b.WriteString(e.Key)
	}
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StageOf returns the stage of the first *Error found in err's tree.
func StageOf(err error) (Stage, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}
