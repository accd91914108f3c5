package reporter

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/yaklabco/gojslint/internal/ui/pretty"
	"github.com/yaklabco/gojslint/pkg/fix"
	"github.com/yaklabco/gojslint/pkg/runner"
)

type colorFunc func(a ...any) string

// DiffReporter formats pending fixes as unified diffs in git style.
type DiffReporter struct {
	opts Options
	bw   *bufio.Writer

	bold  colorFunc
	cyan  colorFunc
	red   colorFunc
	green colorFunc
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	enabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	paint := func(attrs ...color.Attribute) colorFunc {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return &DiffReporter{
		opts:  opts,
		bw:    bufio.NewWriterSize(opts.Writer, bufWriterSize),
		bold:  paint(color.Bold),
		cyan:  paint(color.FgCyan),
		red:   paint(color.FgRed),
		green: paint(color.FgGreen),
	}
}

// Report implements Reporter. It returns the number of files with changes.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var filesWithDiffs int
	var totalAdditions, totalDeletions int

	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n", r.bold(file.Path), r.red(fmt.Sprintf("error: %v", file.Error)))
			continue
		}

		if file.Result == nil || file.Result.Diff == nil || !file.Result.Diff.HasChanges() {
			continue
		}

		filesWithDiffs++
		totalAdditions += file.Result.Diff.Additions
		totalDeletions += file.Result.Diff.Deletions
		r.writeDiff(file.Result.Diff)
	}

	if filesWithDiffs > 0 && r.opts.ShowSummary {
		r.writeSummary(filesWithDiffs, totalAdditions, totalDeletions)
	}

	return filesWithDiffs, nil
}

// writeDiff outputs a single file's diff.
func (r *DiffReporter) writeDiff(diff *fix.Diff) {
	path := filepath.ToSlash(displayPath(diff.Path, r.opts.WorkingDir))

	fmt.Fprintln(r.bw, r.bold(fmt.Sprintf("diff --git a/%s b/%s", path, path)))
	fmt.Fprintln(r.bw, r.red("--- a/"+path))
	fmt.Fprintln(r.bw, r.green("+++ b/"+path))

	for _, hunk := range diff.Hunks {
		fmt.Fprintln(r.bw, r.cyan(fmt.Sprintf("@@ -%d,%d +%d,%d @@",
			hunk.OriginalStart, hunk.OriginalCount, hunk.ModifiedStart, hunk.ModifiedCount)))

		for _, line := range hunk.Lines {
			switch line.Kind {
			case fix.DiffLineAdd:
				fmt.Fprintln(r.bw, r.green("+"+line.Content))
			case fix.DiffLineRemove:
				fmt.Fprintln(r.bw, r.red("-"+line.Content))
			case fix.DiffLineContext:
				fmt.Fprintln(r.bw, " "+line.Content)
			}
			if line.NoNewline {
				fmt.Fprintln(r.bw, `\ No newline at end of file`)
			}
		}
	}

	fmt.Fprintln(r.bw)
}

// writeSummary writes a git-style shortstat line.
func (r *DiffReporter) writeSummary(files, additions, deletions int) {
	parts := []string{fmt.Sprintf("%d %s changed", files, pretty.Plural(files, "file", "files"))}

	if additions > 0 {
		parts = append(parts, r.green(fmt.Sprintf("%d %s(+)", additions, pretty.Plural(additions, "insertion", "insertions"))))
	}
	if deletions > 0 {
		parts = append(parts, r.red(fmt.Sprintf("%d %s(-)", deletions, pretty.Plural(deletions, "deletion", "deletions"))))
	}

	fmt.Fprintln(r.bw, strings.Join(parts, ", "))
}
