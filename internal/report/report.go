// Package report persists a summary of a substitution run as JSON, for
// operators who need to see after the fact what a container start did.
package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/haskel/envstamp/internal/substitute"
)

const currentVersion = 1

// Report is the on-disk form. Variable values are never included.
type Report struct {
	Version      int            `json:"version"`
	CreatedAt    time.Time      `json:"created_at"`
	Success      bool           `json:"success"`
	Error        string         `json:"error,omitempty"`
	Stage        string         `json:"stage,omitempty"`
	DryRun       bool           `json:"dry_run"`
	Prefix       string         `json:"prefix"`
	RootsScanned []string       `json:"roots_scanned"`
	RootsSkipped []string       `json:"roots_skipped,omitempty"`
	Keys         []string       `json:"keys"`
	PerKey       map[string]int `json:"replacements_per_key,omitempty"`
	Overlaps     []string       `json:"overlaps,omitempty"`
	FilesScanned int            `json:"files_scanned"`
	FilesChanged int            `json:"files_changed"`
	Replacements int            `json:"replacements"`
	Pending      []string       `json:"pending,omitempty"`
	DurationMS   int64          `json:"duration_ms"`
}

// New builds a report from a run's result and error.
func New(res *substitute.Result, runErr error, dryRun bool) *Report {
	r := &Report{
		Version:   currentVersion,
		CreatedAt: time.Now().UTC(),
		Success:   runErr == nil,
		DryRun:    dryRun,
	}

	if runErr != nil {
		r.Error = runErr.Error()
		if stage, ok := substitute.StageOf(runErr); ok {
			r.Stage = string(stage)
		}
	}

	if res == nil {
		return r
	}

	r.Prefix = res.Prefix
	r.RootsScanned = res.RootsScanned
	r.RootsSkipped = res.RootsSkipped
	r.Keys = res.Keys
	r.PerKey = res.PerKey
	r.FilesScanned = res.FilesScanned
	r.FilesChanged = res.FilesChanged
	r.Replacements = res.Replacements
	r.Pending = res.Pending
	r.DurationMS = res.Duration.Milliseconds()

	for _, o := range res.Overlaps {
		r.Overlaps = append(r.Overlaps, o.Key+" in "+o.Other)
	}
	sort.Strings(r.Overlaps)

	return r
}

// Save writes the report to path atomically, creating parent directories.
func Save(path string, r *Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tempPath := path + ".tmp"

	file, err := os.Create(tempPath)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r); err != nil {
		file.Close()
		os.Remove(tempPath)
		return err
	}

	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return err
	}

	// Atomic rename
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return err
	}

	return nil
}

// Load reads a report written by Save.
func Load(path string) (*Report, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var r Report
	if err := json.NewDecoder(file).Decode(&r); err != nil {
		return nil, err
	}
	return &r, nil
}
