package logger

import (
	"io"
	"log/slog"
	"os"
)

// ValueKey is the attribute key under which substitution values are logged.
// It is masked when redaction is on.
const ValueKey = "value"

const redacted = "***"

type Options struct {
	Level        string
	Format       string
	RedactValues bool
}

func New(opts Options) *slog.Logger {
	return NewWithWriter(os.Stdout, opts)
}

func NewWithWriter(w io.Writer, opts Options) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{
		Level: parseLevel(opts.Level),
	}

	if opts.RedactValues {
		handlerOpts.ReplaceAttr = redactValue
	}

	var handler slog.Handler
	if opts.Format == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	return slog.New(handler)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func redactValue(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == ValueKey {
		return slog.String(ValueKey, redacted)
	}
	return a
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
