// Package trial implements the remove-rebuild-measure-restore cycle for a
// single include directive.
package trial

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/Sumatoshi-tech/incsweep/internal/diag"
	"github.com/Sumatoshi-tech/incsweep/pkg/include"
)

// Sentinel errors for trial outcomes.
var (
	// ErrRestoreFailure indicates a mutated file could not be returned to its
	// original content. Every later measurement would compare against a
	// corrupted baseline, so this aborts the sweep.
	ErrRestoreFailure = errors.New("failed to restore file after trial")

	// ErrLineOutOfRange indicates the recorded directive line no longer
	// exists in the file.
	ErrLineOutOfRange = errors.New("include line out of range")
)

// fileMode is the permission used when the original mode cannot be read.
const fileMode fs.FileMode = 0o644

// Verdict is the classification of one include directive.
type Verdict struct {
	Include include.Record `json:"include" yaml:"include"`

	// Redundant is true when removing the directive leaves the diagnostic
	// count exactly equal to the baseline.
	Redundant bool `json:"redundant" yaml:"redundant"`

	// Count is the diagnostic count measured with the directive removed.
	// Zero and meaningless when Indeterminate is set.
	Count int `json:"count" yaml:"count"`

	// Indeterminate is true when the trial build could not be measured
	// (invocation failure or timeout). Such includes are conservatively
	// reported as not redundant.
	Indeterminate bool `json:"indeterminate" yaml:"indeterminate"`
}

// Runner executes trials for include records against a fixed baseline count.
// Record paths are resolved relative to Root; builds run with Root as the
// working directory. Trials must not run concurrently: each one mutates the
// shared tree and the baseline is only valid against an otherwise-pristine
// state.
type Runner struct {
	Counter  diag.Counter
	Root     string
	Baseline int
}

// Run performs one trial: retain the original file content, rewrite the file
// with the directive line removed, measure the diagnostic count, and restore
// the original content. Restoration happens on every exit path and is
// verified byte for byte; a restore failure overrides any other result.
func (r *Runner) Run(ctx context.Context, rec include.Record) (verdict Verdict, err error) {
	path := filepath.Join(r.Root, rec.File)

	original, readErr := os.ReadFile(path)
	if readErr != nil {
		return Verdict{}, fmt.Errorf("arm trial for %s: %w", rec.File, readErr)
	}

	perm := filePerm(path)

	mutated, removeErr := removeLine(original, rec.Line)
	if removeErr != nil {
		return Verdict{}, fmt.Errorf("mutate %s: %w", rec.File, removeErr)
	}

	defer func() {
		restoreErr := restoreFile(path, original, perm)
		if restoreErr != nil {
			err = restoreErr
		}
	}()

	writeErr := os.WriteFile(path, mutated, perm)
	if writeErr != nil {
		return Verdict{}, fmt.Errorf("mutate %s: %w", rec.File, writeErr)
	}

	count, countErr := r.Counter.Count(ctx, r.Root)
	if countErr != nil {
		if errors.Is(countErr, diag.ErrBuildInvocation) || errors.Is(countErr, diag.ErrBuildTimeout) {
			// Never claim redundancy under uncertainty: keep the verdict
			// conservative and let the sweep continue.
			return Verdict{Include: rec, Indeterminate: true}, nil
		}

		return Verdict{}, fmt.Errorf("measure %s:%d: %w", rec.File, rec.Line, countErr)
	}

	return Verdict{Include: rec, Redundant: count == r.Baseline, Count: count}, nil
}

// removeLine returns content with the 1-based line removed entirely,
// including its terminator. Diagnostics are compared by count, not by
// position, so the resulting line shift is harmless.
func removeLine(content []byte, line int) ([]byte, error) {
	if line < 1 {
		return nil, fmt.Errorf("%w: %d", ErrLineOutOfRange, line)
	}

	start := 0

	for n := 1; n < line; n++ {
		next := bytes.IndexByte(content[start:], '\n')
		if next < 0 {
			return nil, fmt.Errorf("%w: %d", ErrLineOutOfRange, line)
		}

		start += next + 1
	}

	if start >= len(content) {
		return nil, fmt.Errorf("%w: %d", ErrLineOutOfRange, line)
	}

	end := bytes.IndexByte(content[start:], '\n')
	if end < 0 {
		end = len(content)
	} else {
		end = start + end + 1
	}

	mutated := make([]byte, 0, len(content)-(end-start))
	mutated = append(mutated, content[:start]...)
	mutated = append(mutated, content[end:]...)

	return mutated, nil
}

// restoreFile writes original back to path and verifies the on-disk content
// matches byte for byte. Any failure is wrapped as ErrRestoreFailure.
func restoreFile(path string, original []byte, perm fs.FileMode) error {
	writeErr := os.WriteFile(path, original, perm)
	if writeErr != nil {
		return fmt.Errorf("%w: %s: %v", ErrRestoreFailure, path, writeErr)
	}

	current, readErr := os.ReadFile(path)
	if readErr != nil {
		return fmt.Errorf("%w: %s: %v", ErrRestoreFailure, path, readErr)
	}

	if !bytes.Equal(current, original) {
		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(string(original), string(current), false)

		return fmt.Errorf("%w: %s diverges from original:\n%s", ErrRestoreFailure, path, dmp.DiffPrettyText(diffs))
	}

	return nil
}

func filePerm(path string) fs.FileMode {
	info, err := os.Stat(path)
	if err != nil {
		return fileMode
	}

	return info.Mode().Perm()
}
