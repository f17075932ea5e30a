package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/haskel/envstamp/internal/substitute"
)

func TestRootCmd_Subcommands(t *testing.T) {
	want := map[string]bool{"apply": false, "check": false, "config": false, "version": false}

	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}

	for name, found := range want {
		if !found {
			t.Errorf("subcommand %s not registered", name)
		}
	}
}

func TestRunFlags(t *testing.T) {
	flags := []string{
		"prefix", "root", "prefix-var", "roots-var", "error-policy",
		"workers", "timeout", "dry-run", "min-free-mb", "report", "redact",
	}

	for _, name := range flags {
		t.Run(name, func(t *testing.T) {
			if applyCmd.Flags().Lookup(name) == nil {
				t.Errorf("apply: flag %s should exist", name)
			}
			if checkCmd.Flags().Lookup(name) == nil {
				t.Errorf("check: flag %s should exist", name)
			}
		})
	}
}

func TestExitCodes(t *testing.T) {
	if exitIOErr != 74 {
		t.Errorf("exitIOErr should be 74, got %d", exitIOErr)
	}
	if exitConfig != 78 {
		t.Errorf("exitConfig should be 78, got %d", exitConfig)
	}
	if exitNotExecutable != 126 {
		t.Errorf("exitNotExecutable should be 126, got %d", exitNotExecutable)
	}
	if exitCommandNotFound != 127 {
		t.Errorf("exitCommandNotFound should be 127, got %d", exitCommandNotFound)
	}
}

func TestExitErrorFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"configuration", &substitute.Error{Stage: substitute.StageConfig, Key: "prefix"}, exitConfig},
		{"read", &substitute.Error{Stage: substitute.StageRead, Path: "/a"}, exitIOErr},
		{"write", &substitute.Error{Stage: substitute.StageWrite, Path: "/a"}, exitIOErr},
		{"timeout", &substitute.Error{Stage: substitute.StageTimeout}, exitIOErr},
		{"joined", errors.Join(&substitute.Error{Stage: substitute.StageRead}, &substitute.Error{Stage: substitute.StageWrite}), exitIOErr},
		{"untyped", errors.New("boom"), exitIOErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := exitErrorFor(tt.err)
			if got.Code != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, got.Code)
			}
			if !strings.HasPrefix(got.Message, "envstamp: ") {
				t.Errorf("unexpected message: %s", got.Message)
			}
			if !errors.Is(got, tt.err) {
				t.Error("exit error should wrap the run error")
			}
		})
	}
}

func TestIsJSON(t *testing.T) {
	jsonOut = false
	if IsJSON() {
		t.Error("expected false")
	}

	jsonOut = true
	if !IsJSON() {
		t.Error("expected true")
	}

	// Reset
	jsonOut = false
}

func TestIsVerbose(t *testing.T) {
	verbose = false
	if IsVerbose() {
		t.Error("expected false")
	}

	verbose = true
	if !IsVerbose() {
		t.Error("expected true")
	}

	// Reset
	verbose = false
}

func TestGetConfigFile(t *testing.T) {
	cfgFile = ""
	if GetConfigFile() != "" {
		t.Error("expected empty config file")
	}

	cfgFile = "/etc/envstamp.yaml"
	if GetConfigFile() != "/etc/envstamp.yaml" {
		t.Errorf("expected /etc/envstamp.yaml, got %s", GetConfigFile())
	}

	// Reset
	cfgFile = ""
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.2.3")

	if Version != "1.2.3" {
		t.Errorf("expected version 1.2.3, got %s", Version)
	}

	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(out) != "1.2.3" {
		t.Errorf("expected 1.2.3, got %q", out)
	}

	// Reset
	SetVersion("0.1.0")
}
