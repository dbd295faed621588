// Package commands implements CLI command handlers for incsweep.
package commands

import (
	"context"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/incsweep/internal/config"
	"github.com/Sumatoshi-tech/incsweep/internal/diag"
	"github.com/Sumatoshi-tech/incsweep/internal/report"
	"github.com/Sumatoshi-tech/incsweep/internal/sweep"
)

type sweepExecutor func(ctx context.Context, cfg *config.Config, progress, out io.Writer) error

// SweepCommand holds configuration and dependencies for the sweep command.
type SweepCommand struct {
	path         string
	buildCommand string
	format       string
	buildTimeout time.Duration
	extensions   []string
	all          bool
	noColor      bool
	silent       bool

	exec sweepExecutor
}

// NewSweepCommand creates the sweep command.
func NewSweepCommand() *cobra.Command {
	return newSweepCommandWithDeps(runSweep)
}

func newSweepCommandWithDeps(exec sweepExecutor) *cobra.Command {
	sc := &SweepCommand{exec: exec}

	cmd := &cobra.Command{
		Use:   "sweep [path]",
		Short: "Detect redundant include directives",
		Long: "Sweep establishes a diagnostic baseline, then removes each include\n" +
			"directive in turn, rebuilds, and reports the directives whose removal\n" +
			"leaves the diagnostic count unchanged. The tree is restored after\n" +
			"every trial; the project is never left modified.",
		Args: cobra.MaximumNArgs(1),
		RunE: sc.run,
	}

	cmd.Flags().StringVarP(&sc.path, "path", "p", ".", "Project root to sweep")
	cmd.Flags().StringVarP(&sc.buildCommand, "cmd", "c", "", "Build command executed in the project root (required)")
	cmd.Flags().StringVar(&sc.format, "format", config.DefaultFormat, "Output format: table, json, yaml")
	cmd.Flags().DurationVar(&sc.buildTimeout, "build-timeout", config.DefaultBuildTimeout, "Per-build timeout (0 = unbounded)")
	cmd.Flags().StringSliceVar(&sc.extensions, "extensions", nil, "File extensions recognized as C/C++ sources")
	cmd.Flags().BoolVar(&sc.all, "all", false, "Report non-redundant and indeterminate includes too")
	cmd.Flags().BoolVar(&sc.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&sc.silent, "silent", false, "Disable progress output")

	return cmd
}

func (sc *SweepCommand) run(cmd *cobra.Command, args []string) error {
	cfg, err := sc.resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	progress := cmd.ErrOrStderr()
	if cfg.Silent {
		progress = io.Discard
	}

	return sc.exec(cmd.Context(), cfg, progress, cmd.OutOrStdout())
}

// resolveConfig merges flags over the env/default layer. Only flags the user
// actually set override, so INCSWEEP_* environment variables still apply
// underneath.
func (sc *SweepCommand) resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	overrides := map[string]any{}
	flags := cmd.Flags()

	if flags.Changed("cmd") {
		overrides["build_command"] = sc.buildCommand
	}

	switch {
	case len(args) > 0:
		overrides["path"] = args[0]
	case flags.Changed("path"):
		overrides["path"] = sc.path
	}

	if flags.Changed("format") {
		overrides["format"] = sc.format
	}

	if flags.Changed("build-timeout") {
		overrides["build_timeout"] = sc.buildTimeout
	}

	if flags.Changed("extensions") {
		overrides["extensions"] = sc.extensions
	}

	if flags.Changed("all") {
		overrides["all"] = sc.all
	}

	if flags.Changed("no-color") {
		overrides["no_color"] = sc.noColor
	}

	if sc.silent || isQuiet(cmd) {
		overrides["silent"] = true
	}

	return config.Load(overrides)
}

func isQuiet(cmd *cobra.Command) bool {
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return false
	}

	return quiet
}

func runSweep(ctx context.Context, cfg *config.Config, progress, out io.Writer) error {
	counter := &diag.ShellCounter{Command: cfg.BuildCommand, Timeout: cfg.BuildTimeout}
	sweeper := &sweep.Sweeper{Counter: counter, Extensions: cfg.Extensions, Progress: progress}

	result, err := sweeper.Run(ctx, cfg.Path)
	if err != nil {
		return err
	}

	return report.Write(result, report.Options{Format: cfg.Format, All: cfg.All, NoColor: cfg.NoColor}, out)
}
