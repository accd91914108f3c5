package reporter

import (
	"bufio"
	"context"
	"fmt"
	"slices"

	"github.com/yaklabco/gojslint/internal/ui/pretty"
	"github.com/yaklabco/gojslint/pkg/runner"
	"github.com/yaklabco/gojslint/pkg/source"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
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

	var total int
	for _, file := range result.Files {
		total += r.reportFile(file)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// reportFile writes one file's findings and notes, returning the number of
// findings written.
func (r *TextReporter) reportFile(file runner.FileOutcome) int {
	path := displayPath(file.Path, r.opts.WorkingDir)

	if file.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
		)
		return 0
	}

	pr := file.Result
	if pr == nil || pr.FixReport == nil {
		return 0
	}

	r.writeNotes(path, file)

	if len(pr.Messages) == 0 {
		return 0
	}

	var text *source.Text
	if r.opts.ShowContext {
		text = source.New(path, pr.Output)
	}

	if r.opts.GroupByFile {
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(pr.Messages)))
	}
	for _, f := range pr.Messages {
		var sourceLine string
		if text != nil {
			sourceLine = string(text.LineContent(f.Line))
		}
		fmt.Fprint(r.bw, r.styles.FormatFinding(path, f, r.opts.ShowContext, sourceLine))
	}
	if r.opts.GroupByFile {
		fmt.Fprintln(r.bw)
	}

	return len(pr.Messages)
}

// writeNotes reports what happened to a file besides its findings.
func (r *TextReporter) writeNotes(path string, file runner.FileOutcome) {
	pr := file.Result

	if pr.Skipped {
		fmt.Fprintf(r.bw, "%s: %s\n", r.styles.FilePath.Render(path), r.styles.Warning.Render("skipped: "+pr.SkipReason))
	}
	if pr.Circular {
		fmt.Fprintf(r.bw, "%s: %s\n", r.styles.FilePath.Render(path),
			r.styles.Warning.Render(fmt.Sprintf("fixes stopped after %d passes: circular fixes detected", pr.Passes)))
	}

	ids := make([]string, 0, len(pr.RuleErrors))
	for id := range pr.RuleErrors {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		fmt.Fprintf(r.bw, "%s: %s\n", r.styles.FilePath.Render(path),
			r.styles.Error.Render(fmt.Sprintf("rule %s failed: %v", id, pr.RuleErrors[id])))
	}
}
