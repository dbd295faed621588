// Package diag runs the project build command and classifies its combined
// output into a diagnostic count.
package diag

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"runtime"
	"strings"
	"time"
)

// Sentinel errors for build invocation outcomes.
var (
	// ErrBuildInvocation indicates the build command could not be executed
	// at all (missing shell, missing binary). A non-zero exit with
	// diagnostics is not an invocation error.
	ErrBuildInvocation = errors.New("build command could not be executed")

	// ErrBuildTimeout indicates a build exceeded its configured deadline.
	ErrBuildTimeout = errors.New("build command timed out")
)

// Shell exit codes for "found but not executable" and "command not found".
// The shell reports these instead of failing to start, so they are folded
// into ErrBuildInvocation.
const (
	exitNotExecutable = 126
	exitNotFound      = 127
)

// diagnosticPattern matches a whole-word, case-insensitive "error" or
// "warning". Whole-word matching keeps identifiers like "warningless" from
// counting; not anchoring on ":" keeps the rule toolchain-agnostic.
var diagnosticPattern = regexp.MustCompile(`(?i)\b(error|warning)\b`)

// Counter measures the diagnostic count of one build of the tree rooted at
// dir. Implementations other than ShellCounter (structured JSON diagnostics,
// exit-code-only) can be substituted without touching the trial runner.
type Counter interface {
	Count(ctx context.Context, dir string) (int, error)
}

// ShellCounter executes a caller-supplied command string through the platform
// shell and counts diagnostic lines in the merged stdout+stderr output.
// Compilers disagree on which stream carries diagnostics, so both are read.
type ShellCounter struct {
	// Command is passed verbatim to the shell.
	Command string

	// Timeout bounds one build invocation. Zero means no deadline.
	Timeout time.Duration
}

// Count runs the build command with the working directory set to dir and
// returns the number of diagnostic lines in its output. A non-zero exit
// status is the normal failing-compile case being measured and is not an
// error; only failure to run the command or a deadline hit is.
func (c *ShellCounter) Count(ctx context.Context, dir string) (int, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	shell, flag := shellCommand()
	cmd := exec.CommandContext(ctx, shell, flag, c.Command)
	cmd.Dir = dir

	var output bytes.Buffer

	cmd.Stdout = &output
	cmd.Stderr = &output

	startErr := cmd.Start()
	if startErr != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrBuildInvocation, c.Command, startErr)
	}

	waitErr := cmd.Wait()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return 0, fmt.Errorf("%w after %s: %q", ErrBuildTimeout, c.Timeout, c.Command)
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return 0, fmt.Errorf("%w: %q: %v", ErrBuildInvocation, c.Command, waitErr)
		}

		code := exitErr.ExitCode()
		if code == exitNotExecutable || code == exitNotFound {
			return 0, fmt.Errorf("%w: %q: shell exit %d", ErrBuildInvocation, c.Command, code)
		}
	}

	return CountDiagnostics(output.String()), nil
}

// CountDiagnostics returns the number of lines in output classified as a
// compiler error or warning.
func CountDiagnostics(output string) int {
	count := 0

	for rest := output; rest != ""; {
		var line string
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			line, rest = rest[:i+1], rest[i+1:]
		} else {
			line, rest = rest, ""
		}

		if diagnosticPattern.MatchString(line) {
			count++
		}
	}

	return count
}

func shellCommand() (string, string) {
	if runtime.GOOS == "windows" {
		return "cmd", "/C"
	}

	return "/bin/sh", "-c"
}
