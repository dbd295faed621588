// Package report renders sweep results as a table, JSON, or YAML.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/incsweep/internal/sweep"
	"github.com/Sumatoshi-tech/incsweep/internal/trial"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// ErrUnsupportedFormat indicates an unknown output format name.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// elapsedRounding keeps elapsed durations readable in reports.
const elapsedRounding = time.Millisecond

// Options controls report rendering.
type Options struct {
	// Format is one of FormatTable, FormatJSON, FormatYAML.
	Format string

	// All includes non-redundant and indeterminate verdicts in the output.
	// By default only redundant includes are listed.
	All bool

	// NoColor disables ANSI color in table output.
	NoColor bool
}

// Statuses shown in the table's status column and structured rows.
const (
	statusRedundant     = "redundant"
	statusNeeded        = "needed"
	statusIndeterminate = "indeterminate"
)

// Row is one include verdict in structured (JSON/YAML) output.
type Row struct {
	Include string `json:"include" yaml:"include"`
	File    string `json:"file" yaml:"file"`
	Line    int    `json:"line" yaml:"line"`
	Status  string `json:"status" yaml:"status"`
}

// document is the structured output envelope.
type document struct {
	Root     string      `json:"root" yaml:"root"`
	Includes []Row       `json:"includes" yaml:"includes"`
	Stats    statsOutput `json:"stats" yaml:"stats"`
}

type statsOutput struct {
	FilesScanned  int    `json:"files_scanned" yaml:"files_scanned"`
	LinesScanned  int    `json:"lines_scanned" yaml:"lines_scanned"`
	IncludesTried int    `json:"includes_tried" yaml:"includes_tried"`
	Redundant     int    `json:"redundant" yaml:"redundant"`
	Indeterminate int    `json:"indeterminate" yaml:"indeterminate"`
	Builds        int    `json:"builds" yaml:"builds"`
	Baseline      int    `json:"baseline" yaml:"baseline"`
	Elapsed       string `json:"elapsed" yaml:"elapsed"`
}

// Write renders result to writer in the requested format.
func Write(result *sweep.Result, opts Options, writer io.Writer) error {
	switch opts.Format {
	case FormatTable:
		return writeTable(result, opts, writer)
	case FormatJSON:
		return writeJSON(result, opts, writer)
	case FormatYAML:
		return writeYAML(result, opts, writer)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, opts.Format)
	}
}

func selectRows(result *sweep.Result, all bool) []Row {
	rows := make([]Row, 0, len(result.Verdicts))

	for _, verdict := range result.Verdicts {
		if !all && !verdict.Redundant {
			continue
		}

		rows = append(rows, Row{
			Include: verdict.Include.Name,
			File:    verdict.Include.File,
			Line:    verdict.Include.Line,
			Status:  verdictStatus(verdict),
		})
	}

	return rows
}

func verdictStatus(verdict trial.Verdict) string {
	switch {
	case verdict.Indeterminate:
		return statusIndeterminate
	case verdict.Redundant:
		return statusRedundant
	default:
		return statusNeeded
	}
}

func writeTable(result *sweep.Result, opts Options, writer io.Writer) error {
	rows := selectRows(result, opts.All)

	_, _ = fmt.Fprintf(writer, "Directory: %s\n\n", result.Root)

	if len(rows) == 0 {
		_, _ = fmt.Fprintln(writer, "No redundant includes found.")
	} else {
		tbl := table.NewWriter()
		tbl.SetOutputMirror(writer)
		tbl.SetStyle(table.StyleLight)

		header := table.Row{"#", "Include", "File", "Line"}
		if opts.All {
			header = append(header, "Status")
		}

		tbl.AppendHeader(header)

		for i, row := range rows {
			tableRow := table.Row{i + 1, row.Include, row.File, row.Line}
			if opts.All {
				tableRow = append(tableRow, colorizeStatus(row.Status, opts.NoColor))
			}

			tbl.AppendRow(tableRow)
		}

		tbl.Render()
	}

	stats := result.Stats

	_, _ = fmt.Fprintf(writer, "\nSwept %s includes across %s files (%s lines) with %s builds in %s.\n",
		humanize.Comma(int64(stats.IncludesTried)),
		humanize.Comma(int64(stats.FilesScanned)),
		humanize.Comma(int64(stats.LinesScanned)),
		humanize.Comma(int64(stats.Builds)),
		stats.Elapsed.Round(elapsedRounding),
	)

	if stats.Indeterminate > 0 {
		_, _ = fmt.Fprintf(writer, "%d includes could not be measured and were reported as needed.\n", stats.Indeterminate)
	}

	return nil
}

func writeJSON(result *sweep.Result, opts Options, writer io.Writer) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(buildDocument(result, opts))
	if err != nil {
		return fmt.Errorf("encode JSON report: %w", err)
	}

	return nil
}

func writeYAML(result *sweep.Result, opts Options, writer io.Writer) error {
	data, err := yaml.Marshal(buildDocument(result, opts))
	if err != nil {
		return fmt.Errorf("encode YAML report: %w", err)
	}

	_, err = writer.Write(data)
	if err != nil {
		return fmt.Errorf("write YAML report: %w", err)
	}

	return nil
}

func buildDocument(result *sweep.Result, opts Options) document {
	return document{
		Root:     result.Root,
		Includes: selectRows(result, opts.All),
		Stats: statsOutput{
			FilesScanned:  result.Stats.FilesScanned,
			LinesScanned:  result.Stats.LinesScanned,
			IncludesTried: result.Stats.IncludesTried,
			Redundant:     result.Stats.Redundant,
			Indeterminate: result.Stats.Indeterminate,
			Builds:        result.Stats.Builds,
			Baseline:      result.Stats.Baseline,
			Elapsed:       result.Stats.Elapsed.Round(elapsedRounding).String(),
		},
	}
}

func colorizeStatus(status string, noColor bool) string {
	if noColor {
		return status
	}

	switch status {
	case statusRedundant:
		return color.GreenString(status)
	case statusIndeterminate:
		return color.YellowString(status)
	default:
		return color.RedString(status)
	}
}
