package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, Options{Level: "info", Format: "json"})

	log.Info("applying variable", "key", "APP_URL", ValueKey, "https://api.example.com")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected a JSON line, got %q: %v", buf.String(), err)
	}

	if line["value"] != "https://api.example.com" {
		t.Errorf("expected value to be logged verbatim, got %v", line["value"])
	}
}

func TestNewWithWriter_Level(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, Options{Level: "warn", Format: "text"})

	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn line missing: %s", out)
	}
}

func TestNewWithWriter_Redact(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, Options{Level: "info", Format: "text", RedactValues: true})

	log.Info("applying variable", "key", "APP_TOKEN", ValueKey, "s3cr3t")

	out := buf.String()
	if strings.Contains(out, "s3cr3t") {
		t.Errorf("value leaked into log output: %s", out)
	}
	if !strings.Contains(out, "value=***") {
		t.Errorf("expected masked value, got: %s", out)
	}
	if !strings.Contains(out, "key=APP_TOKEN") {
		t.Errorf("key should still be logged: %s", out)
	}
}
