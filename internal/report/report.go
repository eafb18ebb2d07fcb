// Package report renders run results as a table, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"sigs.k8s.io/yaml"

	"github.com/CoreMedia/joala-sub001/internal/runner"
	pkgstrings "github.com/CoreMedia/joala-sub001/pkg/strings"
)

// Format is an output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats lists the supported formats.
var Formats = []Format{FormatTable, FormatJSON, FormatYAML}

// ParseFormat validates an output format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported output format %q: must be one of table, json, yaml", s)
}

// Options controls rendering.
type Options struct {
	Format Format
	// Color enables ANSI colors in table output
	Color bool
}

// Write renders suite to w.
func Write(w io.Writer, suite *runner.SuiteResult, opts Options) error {
	switch opts.Format {
	case FormatJSON:
		data, err := json.MarshalIndent(suite, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode results as JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatYAML:
		data, err := yaml.Marshal(suite)
		if err != nil {
			return fmt.Errorf("failed to encode results as YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatTable, "":
		return writeTable(w, suite, opts.Color)
	}
	return fmt.Errorf("unsupported output format %q", opts.Format)
}

func writeTable(w io.Writer, suite *runner.SuiteResult, color bool) error {
	paint := func(c text.Colors, s string) string {
		if !color {
			return s
		}
		return c.Sprint(s)
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{
		paint(text.Colors{text.FgHiCyan}, "TARGET"),
		paint(text.Colors{text.FgHiCyan}, "CHECK"),
		paint(text.Colors{text.FgHiCyan}, "RESULT"),
		paint(text.Colors{text.FgHiCyan}, "DURATION"),
		paint(text.Colors{text.FgHiCyan}, "ATTEMPTS"),
		paint(text.Colors{text.FgHiCyan}, "DETAILS"),
	})

	for _, r := range suite.Results {
		attempts := "-"
		if r.Attempts > 0 {
			attempts = strconv.Itoa(r.Attempts)
		}
		details := r.Description
		if r.Error != "" {
			details = r.Error
		}
		t.AppendRow(table.Row{
			r.Name,
			string(r.Kind),
			paint(resultColors(r.Result), string(r.Result)),
			formatDuration(r.Duration),
			attempts,
			pkgstrings.TruncateDescription(details, pkgstrings.DefaultDescriptionMaxLen),
		})
	}

	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}

	summary := fmt.Sprintf("%d passed, %d failed, %d skipped, %d errors in %s (run %s)",
		suite.Passed, suite.Failed, suite.Skipped, suite.Errors, formatDuration(suite.Duration), suite.RunID)
	if _, err := fmt.Fprintln(w, paint(text.Colors{text.FgHiBlue}, summary)); err != nil {
		return err
	}

	for _, r := range suite.Results {
		if r.Result == runner.ResultPassed || r.Error == "" {
			continue
		}
		header := fmt.Sprintf("\n%s %s", paint(resultColors(r.Result), string(r.Result)), r.Name)
		if _, err := fmt.Fprintf(w, "%s\n%s\n", header, indent(r.Error)); err != nil {
			return err
		}
	}
	return nil
}

func resultColors(r runner.Result) text.Colors {
	switch r {
	case runner.ResultPassed:
		return text.Colors{text.FgGreen}
	case runner.ResultFailed:
		return text.Colors{text.FgRed, text.Bold}
	case runner.ResultSkipped:
		return text.Colors{text.FgYellow}
	default:
		return text.Colors{text.FgHiRed}
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return d.String()
	}
	return d.Round(time.Millisecond).String()
}

func indent(s string) string {
	return "  " + pkgstrings.Indent(s, "  ")
}
