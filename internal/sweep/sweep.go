// Package sweep drives the full redundant-include detection cycle: baseline
// build, include enumeration, and one serialized trial per directive.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Sumatoshi-tech/incsweep/internal/diag"
	"github.com/Sumatoshi-tech/incsweep/internal/trial"
	"github.com/Sumatoshi-tech/incsweep/pkg/include"
	"github.com/Sumatoshi-tech/incsweep/pkg/textutil"
)

// ErrInvalidPath indicates the project path does not exist or is not a
// directory. No sweep starts and no partial report is produced.
var ErrInvalidPath = errors.New("project path does not exist or is not a directory")

// Stats summarizes one sweep run.
type Stats struct {
	FilesScanned  int           `json:"files_scanned" yaml:"files_scanned"`
	LinesScanned  int           `json:"lines_scanned" yaml:"lines_scanned"`
	IncludesTried int           `json:"includes_tried" yaml:"includes_tried"`
	Redundant     int           `json:"redundant" yaml:"redundant"`
	Indeterminate int           `json:"indeterminate" yaml:"indeterminate"`
	Builds        int           `json:"builds" yaml:"builds"`
	Baseline      int           `json:"baseline" yaml:"baseline"`
	Elapsed       time.Duration `json:"elapsed" yaml:"elapsed"`
}

// Result is the complete classification of every include discovered during a
// sweep, in discovery order. Filtering to redundant-only entries is the
// reporter's job, not the sweep's.
type Result struct {
	Root     string          `json:"root" yaml:"root"`
	Verdicts []trial.Verdict `json:"verdicts" yaml:"verdicts"`
	Stats    Stats           `json:"stats" yaml:"stats"`
}

// Sweeper runs sweeps. Trials are strictly serialized: every build measures
// the whole tree, so two concurrently mutated files would interact and break
// the single-baseline-state invariant.
type Sweeper struct {
	// Counter measures diagnostic counts. Required.
	Counter diag.Counter

	// Extensions recognized as C/C++ sources. Defaults to DefaultExtensions.
	Extensions []string

	// Progress receives human-readable progress lines. Nil disables them.
	Progress io.Writer
}

// Run executes a full sweep over the project rooted at path.
// Fatal conditions (invalid path, baseline build invocation failure, restore
// failure) return an error and no result; per-trial build failures are
// downgraded to indeterminate verdicts and the sweep continues.
func (s *Sweeper) Run(ctx context.Context, path string) (*Result, error) {
	startedAt := time.Now()

	root, err := validateRoot(path)
	if err != nil {
		return nil, err
	}

	s.progressf("checking baseline build in %s", root)

	baseline, err := s.Counter.Count(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("baseline build: %w", err)
	}

	s.progressf("baseline diagnostic count: %d", baseline)

	result := &Result{Root: root}
	result.Stats.Baseline = baseline
	result.Stats.Builds = 1

	records, err := s.discover(root, result)
	if err != nil {
		return nil, err
	}

	runner := &trial.Runner{Counter: s.Counter, Root: root, Baseline: baseline}

	for _, rec := range records {
		verdict, trialErr := runner.Run(ctx, rec)
		if trialErr != nil {
			return nil, fmt.Errorf("trial %s:%d (%s): %w", rec.File, rec.Line, rec.Name, trialErr)
		}

		result.Stats.Builds++
		result.Stats.IncludesTried++

		switch {
		case verdict.Indeterminate:
			result.Stats.Indeterminate++
			s.progressf("indeterminate %s:%d <%s> (build not measurable)", rec.File, rec.Line, rec.Name)
		case verdict.Redundant:
			result.Stats.Redundant++
			s.progressf("redundant %s:%d <%s>", rec.File, rec.Line, rec.Name)
		}

		result.Verdicts = append(result.Verdicts, verdict)
	}

	result.Stats.Elapsed = time.Since(startedAt)

	s.progressf("sweep finished: %d includes tried, %d redundant", result.Stats.IncludesTried, result.Stats.Redundant)

	return result, nil
}

// Discover enumerates include directives without running any build. It backs
// the dry-run listing and the sweep itself.
func (s *Sweeper) Discover(path string) ([]include.Record, error) {
	root, err := validateRoot(path)
	if err != nil {
		return nil, err
	}

	return s.discover(root, &Result{})
}

func (s *Sweeper) discover(root string, result *Result) ([]include.Record, error) {
	extensions := s.Extensions
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	files, err := EnumerateSources(root, extensions)
	if err != nil {
		return nil, err
	}

	var records []include.Record

	for _, file := range files {
		content, readErr := os.ReadFile(filepath.Join(root, file))
		if readErr != nil {
			return nil, fmt.Errorf("read %s: %w", file, readErr)
		}

		if textutil.IsBinary(content) {
			s.progressf("skipping binary file %s", file)

			continue
		}

		result.Stats.FilesScanned++
		result.Stats.LinesScanned += textutil.CountLines(content)

		stripped := textutil.StripComments(string(content))
		records = append(records, include.Locate(stripped, file)...)
	}

	s.progressf("discovered %d includes across %d files", len(records), result.Stats.FilesScanned)

	return records, nil
}

func validateRoot(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}

	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}

	return abs, nil
}

func (s *Sweeper) progressf(format string, args ...any) {
	if s.Progress == nil {
		return
	}

	_, _ = fmt.Fprintf(s.Progress, "progress: "+format+"\n", args...)
}
