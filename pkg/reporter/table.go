package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/gojslint/internal/ui/pretty"
	"github.com/yaklabco/gojslint/pkg/runner"
)

// defaultTermWidth is used when the writer is not a terminal.
const defaultTermWidth = 100

// TableReporter prints findings as a column-aligned table, either one
// table for the whole run or one per file.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a table reporter sized to the output terminal.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, colorEnabled, terminalWidth(opts.Writer)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. It returns the number of errors and
// warnings shown.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	files := r.relativeOutcomes(result.Files)
	r.reportFailures(files)

	problems := result.Stats.Findings.Errors + result.Stats.Findings.Warnings
	if problems == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw)
			fmt.Fprintln(r.bw, r.styles.Success.Render("All files passed!"))
			fmt.Fprintln(r.bw, r.styles.Dim.Render(r.formatter.FormatTableSummary(result.Stats, "")))
		}
		return 0, nil
	}

	if r.opts.PerFile {
		r.writePerFile(files)
	} else {
		fmt.Fprint(r.bw, r.formatter.FormatTable(&runner.Result{Files: files}))
	}

	if r.opts.ShowSummary {
		if r.opts.PerFile {
			fmt.Fprintln(r.bw)
			fmt.Fprintln(r.bw, r.styles.TableSeparator.Render(strings.Repeat("=", defaultTermWidth)))
			fmt.Fprintln(r.bw, r.styles.Bold.Render("Overall Summary"))
		}
		fmt.Fprintln(r.bw, r.formatter.FormatTableSummary(result.Stats, ""))
		if fixable := result.Stats.Findings.FixableErrors + result.Stats.Findings.FixableWarnings; fixable > 0 {
			fmt.Fprintln(r.bw)
			fmt.Fprintln(r.bw, r.styles.Dim.Render("Run with --fix to auto-repair fixable problems"))
		}
	}

	return problems, nil
}

func (r *TableReporter) writePerFile(files []runner.FileOutcome) {
	for _, file := range files {
		table := r.formatter.FormatFileTable(file)
		if table == "" {
			continue
		}
		fmt.Fprintln(r.bw)
		fmt.Fprintln(r.bw, r.styles.Bold.Render(file.Path))
		fmt.Fprint(r.bw, table)
	}
}

// reportFailures lists files that could not be linted; they have no rows.
func (r *TableReporter) reportFailures(files []runner.FileOutcome) {
	for _, file := range files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s %s\n", r.styles.Error.Render(file.Path+":"), file.Error)
		}
	}
}

// relativeOutcomes returns shallow copies of files with display paths.
func (r *TableReporter) relativeOutcomes(files []runner.FileOutcome) []runner.FileOutcome {
	out := make([]runner.FileOutcome, len(files))
	for i, file := range files {
		file.Path = displayPath(file.Path, r.opts.WorkingDir)
		out[i] = file
	}
	return out
}

// terminalWidth returns the column count of writer, or defaultTermWidth
// when it is not a terminal.
func terminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
