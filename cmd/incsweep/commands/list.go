package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/incsweep/internal/report"
	"github.com/Sumatoshi-tech/incsweep/internal/sweep"
	"github.com/Sumatoshi-tech/incsweep/pkg/include"
)

type listExecutor func(path string, extensions []string, progress io.Writer) ([]include.Record, error)

// ListCommand holds configuration and dependencies for the list command.
type ListCommand struct {
	path       string
	format     string
	extensions []string
	silent     bool

	exec listExecutor
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	return newListCommandWithDeps(discoverIncludes)
}

func newListCommandWithDeps(exec listExecutor) *cobra.Command {
	lc := &ListCommand{exec: exec}

	cmd := &cobra.Command{
		Use:   "list [path]",
		Short: "Enumerate include directives without building",
		Long: "List walks the project and prints every include directive a sweep\n" +
			"would trial, without running any build. Useful as a dry run.",
		Args: cobra.MaximumNArgs(1),
		RunE: lc.run,
	}

	cmd.Flags().StringVarP(&lc.path, "path", "p", ".", "Project root to scan")
	cmd.Flags().StringVar(&lc.format, "format", report.FormatTable, "Output format: table, json, yaml")
	cmd.Flags().StringSliceVar(&lc.extensions, "extensions", nil, "File extensions recognized as C/C++ sources")
	cmd.Flags().BoolVar(&lc.silent, "silent", false, "Disable progress output")

	return cmd
}

func (lc *ListCommand) run(cmd *cobra.Command, args []string) error {
	path := lc.path
	if len(args) > 0 {
		path = args[0]
	}

	progress := cmd.ErrOrStderr()
	if lc.silent || isQuiet(cmd) {
		progress = io.Discard
	}

	records, err := lc.exec(path, lc.extensions, progress)
	if err != nil {
		return err
	}

	return writeRecords(records, lc.format, cmd.OutOrStdout())
}

func writeRecords(records []include.Record, format string, writer io.Writer) error {
	switch format {
	case report.FormatTable:
		writeRecordTable(records, writer)

		return nil
	case report.FormatJSON:
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "  ")

		err := encoder.Encode(records)
		if err != nil {
			return fmt.Errorf("encode include list: %w", err)
		}

		return nil
	case report.FormatYAML:
		data, err := yaml.Marshal(records)
		if err != nil {
			return fmt.Errorf("encode include list: %w", err)
		}

		_, err = writer.Write(data)
		if err != nil {
			return fmt.Errorf("write include list: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%w: %s", report.ErrUnsupportedFormat, format)
	}
}

func writeRecordTable(records []include.Record, writer io.Writer) {
	if len(records) == 0 {
		_, _ = fmt.Fprintln(writer, "No include directives found.")

		return
	}

	tbl := table.NewWriter()
	tbl.SetOutputMirror(writer)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"#", "Include", "File", "Line"})

	for i, rec := range records {
		tbl.AppendRow(table.Row{i + 1, rec.Name, rec.File, rec.Line})
	}

	tbl.Render()
}

func discoverIncludes(path string, extensions []string, progress io.Writer) ([]include.Record, error) {
	sweeper := &sweep.Sweeper{Extensions: extensions, Progress: progress}

	return sweeper.Discover(path)
}
