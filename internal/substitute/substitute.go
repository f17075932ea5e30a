// Package substitute rewrites placeholder tokens in prebuilt static assets.
//
// Every environment variable whose name starts with the configured prefix is
// a substitution: each literal occurrence of the variable's name in any
// regular file under the configured roots is replaced with its value. The
// replacement is plain byte matching with no escaping or template grammar,
// so JS, HTML, CSS and anything else are treated alike.
//
// Keys that occur inside another key's name or value (APP_A and APP_AB) make
// the result depend on application order. Such configurations are
// unsupported; Run logs a warning for them but does not change behavior.
package substitute

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/haskel/envstamp/internal/fsutil"
	"github.com/haskel/envstamp/internal/logger"
)

// Policy decides what happens after a file fails.
type Policy int

const (
	// FailFast stops the run at the first failure.
	FailFast Policy = iota
	// Collect attempts every file and reports all failures together.
	Collect
)

// RootChecker vets an existing root before any of its files are rewritten.
type RootChecker interface {
	Check(root string) error
}

type Options struct {
	Prefix string
	Roots  []string

	// Environ is the environment snapshot to select pairs from, in
	// os.Environ form. Nil means os.Environ().
	Environ []string

	Policy  Policy
	Workers int
	Timeout time.Duration
	DryRun  bool

	// Checker is optional. It is not consulted in dry-run mode.
	Checker RootChecker
}

// Result summarizes a run. It is returned even when Run fails, describing
// the work done up to the failure.
type Result struct {
	Prefix       string
	RootsScanned []string
	RootsSkipped []string
	Keys         []string
	Overlaps     []Overlap

	FilesScanned int
	FilesChanged int
	Replacements int
	PerKey       map[string]int

	// Pending lists files that still contain a key. Only filled in dry-run
	// mode, where nothing is written.
	Pending []string

	Duration time.Duration
}

type Substitutor struct {
	opts   Options
	logger *slog.Logger

	mu  sync.Mutex
	res *Result
}

func New(opts Options, log *slog.Logger) *Substitutor {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Substitutor{opts: opts, logger: log}
}

// Run performs one substitution pass over all roots.
func (s *Substitutor) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	s.res = &Result{
		Prefix: s.opts.Prefix,
		PerKey: make(map[string]int),
	}
	defer func() {
		s.res.Duration = time.Since(start)
	}()

	if err := s.validate(); err != nil {
		return s.res, err
	}

	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	var errs []error
	roots, err := s.existingRoots()
	if err != nil {
		if s.opts.Policy == FailFast {
			return s.res, err
		}
		errs = append(errs, err)
	}

	environ := s.opts.Environ
	if environ == nil {
		environ = os.Environ()
	}

	pairs := Pairs(environ, s.opts.Prefix)
	if len(pairs) == 0 {
		s.logger.Warn("no variables match prefix, nothing to substitute", "prefix", s.opts.Prefix)
		return s.res, errors.Join(errs...)
	}

	s.logger.Info("found variables", "prefix", s.opts.Prefix, "count", len(pairs))
	for _, p := range pairs {
		s.res.Keys = append(s.res.Keys, p.Key)
		s.logger.Info("applying variable", "key", p.Key, logger.ValueKey, p.Value)
	}

	s.res.Overlaps = Overlaps(pairs)
	for _, o := range s.res.Overlaps {
		where := "name"
		if o.InValue {
			where = "value"
		}
		s.logger.Warn("key appears inside another variable, result depends on order",
			"key", o.Key,
			"other", o.Other,
			"in", where,
		)
	}

	for _, root := range roots {
		if err := s.runRoot(ctx, root, pairs); err != nil {
			if s.opts.Policy == FailFast {
				return s.res, err
			}
			errs = append(errs, err)
		}
	}

	sort.Strings(s.res.Pending)

	if err := errors.Join(errs...); err != nil {
		return s.res, err
	}

	s.logger.Info("substitution complete",
		"roots", len(s.res.RootsScanned),
		"files_scanned", s.res.FilesScanned,
		"files_changed", s.res.FilesChanged,
		"replacements", s.res.Replacements,
		"dry_run", s.opts.DryRun,
	)
	return s.res, nil
}

func (s *Substitutor) validate() error {
	if s.opts.Prefix == "" {
		return &Error{Stage: StageConfig, Key: "prefix", Err: errors.New("must not be empty")}
	}
	if len(s.opts.Roots) == 0 {
		return &Error{Stage: StageConfig, Key: "roots", Err: errors.New("at least one root is required")}
	}
	return nil
}

// existingRoots filters the configured roots down to directories that
// exist. Missing roots are skipped with a warning.
func (s *Substitutor) existingRoots() ([]string, error) {
	var roots []string
	var errs []error
	for _, root := range s.opts.Roots {
		ok, err := fsutil.IsDir(root)
		if err != nil {
			derr := &Error{Stage: StageDirectory, Path: root, Err: err}
			if s.opts.Policy == FailFast {
				return nil, derr
			}
			errs = append(errs, derr)
			continue
		}
		if !ok {
			s.logger.Warn("root does not exist or is not a directory, skipping", "root", root)
			s.res.RootsSkipped = append(s.res.RootsSkipped, root)
			continue
		}
		s.logger.Info("scanning root", "root", root)
		s.res.RootsScanned = append(s.res.RootsScanned, root)
		roots = append(roots, root)
	}
	return roots, errors.Join(errs...)
}

func (s *Substitutor) runRoot(ctx context.Context, root string, pairs []Pair) error {
	if s.opts.Checker != nil && !s.opts.DryRun {
		if err := s.opts.Checker.Check(root); err != nil {
			return &Error{Stage: StageDirectory, Path: root, Err: err}
		}
	}

	files, err := fsutil.RegularFiles(root)
	if err != nil {
		return &Error{Stage: StageDirectory, Path: root, Err: err}
	}
	s.logger.Debug("files found", "root", root, "count", len(files))

	if s.opts.Policy == FailFast {
		return s.failFast(ctx, files, pairs)
	}
	return s.collect(ctx, files, pairs)
}

// failFast processes files until the first error. Files not yet started
// when an error occurs are never opened.
func (s *Substitutor) failFast(ctx context.Context, files []string, pairs []Pair) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)

	var stopped error
	for _, path := range files {
		if err := gctx.Err(); err != nil {
			stopped = err
			break
		}
		path := path // per-iteration copy (go < 1.22 loop semantics)
		g.Go(func() error {
			return s.processFile(gctx, path, pairs)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	// The parent context expired while the remaining files were queued.
	if stopped != nil {
		return contextError(ctx.Err(), "")
	}
	return nil
}

// collect attempts every file and joins all failures. An expired context
// stops new files from starting and is reported once.
func (s *Substitutor) collect(ctx context.Context, files []string, pairs []Pair) error {
	var g errgroup.Group
	g.SetLimit(s.opts.Workers)

	var mu sync.Mutex
	var errs []error

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			mu.Lock()
			errs = append(errs, contextError(err, ""))
			mu.Unlock()
			break
		}
		path := path // per-iteration copy (go < 1.22 loop semantics)
		g.Go(func() error {
			if err := s.processFile(ctx, path, pairs); err != nil {
				s.logger.Error("file failed", "path", path, "error", err)
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}

	_ = g.Wait()
	return errors.Join(errs...)
}

func (s *Substitutor) processFile(ctx context.Context, path string, pairs []Pair) error {
	if err := ctx.Err(); err != nil {
		return contextError(err, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return &Error{Stage: StageRead, Path: path, Err: err}
	}

	out, counts := apply(data, pairs)

	s.mu.Lock()
	s.res.FilesScanned++
	s.mu.Unlock()

	if len(counts) == 0 {
		return nil
	}

	if s.opts.DryRun {
		s.logger.Info("would rewrite file", "path", path, "keys", len(counts))
		s.record(path, counts)
		return nil
	}

	if err := rewriteFile(path, out); err != nil {
		return &Error{Stage: StageWrite, Path: path, Err: err}
	}
	s.logger.Debug("rewrote file", "path", path, "keys", len(counts))
	s.record(path, counts)
	return nil
}

func (s *Substitutor) record(path string, counts map[string]int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.res.FilesChanged++
	for key, n := range counts {
		s.res.PerKey[key] += n
		s.res.Replacements += n
	}
	if s.opts.DryRun {
		s.res.Pending = append(s.res.Pending, path)
	}
}

func contextError(err error, path string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Stage: StageTimeout, Path: path, Err: err}
	}
	return &Error{Stage: StageCanceled, Path: path, Err: err}
}
