package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/gojslint/internal/ui/pretty"
	"github.com/yaklabco/gojslint/pkg/analysis"
)

// Name column limits of the summary tables, in terminal cells.
const (
	maxRuleNameWidth = 28
	maxFilePathWidth = 58
	fixableCheck     = "✓"
)

// SummaryRenderer prints per-rule and per-file counts instead of
// individual findings.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if report.Totals.Problems == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render("No problems found"))
		return nil
	}

	sections := []func(){
		func() { r.renderRules(report.ByRule) },
		func() { r.renderFiles(report.ByFile) },
	}
	if r.opts.SummaryOrder == SummaryOrderFiles {
		sections[0], sections[1] = sections[1], sections[0]
	}
	for _, section := range sections {
		section()
	}

	r.renderTotals(report.Totals)
	return nil
}

// summaryRow is one line of a summary table with the counts that pick its
// color.
type summaryRow struct {
	cells            []string
	errors, warnings int
}

func (r *SummaryRenderer) renderRules(rules []analysis.RuleAnalysis) {
	if len(rules) == 0 {
		return
	}
	rows := make([]summaryRow, 0, len(rules))
	for _, rule := range rules {
		fixable := ""
		if rule.Fixable {
			fixable = fixableCheck
		}
		rows = append(rows, summaryRow{
			cells: []string{
				runewidth.Truncate(rule.RuleID, maxRuleNameWidth, "…"),
				strconv.Itoa(rule.Problems),
				strconv.Itoa(rule.Errors),
				strconv.Itoa(rule.Warnings),
				fixable,
			},
			errors:   rule.Errors,
			warnings: rule.Warnings,
		})
	}
	r.renderTable("Rules Summary", []string{"Rule", "Count", "Errors", "Warnings", "Fixable"}, rows)
}

func (r *SummaryRenderer) renderFiles(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}
	rows := make([]summaryRow, 0, len(files))
	for _, file := range files {
		path := file.Path
		if width := runewidth.StringWidth(path); width > maxFilePathWidth {
			path = runewidth.TruncateLeft(path, width-maxFilePathWidth+1, "…")
		}
		rows = append(rows, summaryRow{
			cells: []string{
				path,
				strconv.Itoa(file.Problems),
				strconv.Itoa(file.Errors),
				strconv.Itoa(file.Warnings),
				strconv.Itoa(file.Fixable),
			},
			errors:   file.Errors,
			warnings: file.Warnings,
		})
	}
	r.renderTable("Files Summary", []string{"File", "Count", "Errors", "Warnings", "Fixable"}, rows)
}

// renderTable prints a titled table. The name column is colored by the
// worst severity of its row; numbers are right-aligned.
func (r *SummaryRenderer) renderTable(title string, headers []string, rows []summaryRow) {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderLeft(false).
		BorderRight(false).
		BorderBottom(false).
		BorderColumn(false).
		BorderStyle(r.styles.TableSeparator).
		Headers(headers...)
	for _, row := range rows {
		tbl.Row(row.cells...)
	}

	tbl.StyleFunc(func(row, col int) lipgloss.Style {
		style := lipgloss.NewStyle()
		switch {
		case row == table.HeaderRow:
			style = r.styles.TableHeader
		case col == 0 && row >= 0 && row < len(rows):
			if rows[row].errors > 0 {
				style = r.styles.TableErrorRow
			} else if rows[row].warnings > 0 {
				style = r.styles.TableWarnRow
			}
		case col == len(headers)-1 && row >= 0:
			style = r.styles.Success
		}
		if col == 0 {
			return style.PaddingRight(2)
		}
		return style.PaddingLeft(2).Align(lipgloss.Right)
	})

	fmt.Fprintln(r.out, r.styles.Bold.Render(title))
	fmt.Fprintln(r.out, tbl.String())
	fmt.Fprintln(r.out)
}

func (r *SummaryRenderer) renderTotals(totals analysis.Totals) {
	count := func(n int, singular, plural string) string {
		return fmt.Sprintf("%d %s", n, pretty.Plural(n, singular, plural))
	}

	var severities []string
	if totals.Errors > 0 {
		severities = append(severities, r.styles.Error.Render(count(totals.Errors, "error", "errors")))
	}
	if totals.Warnings > 0 {
		severities = append(severities, r.styles.Warning.Render(count(totals.Warnings, "warning", "warnings")))
	}

	var line strings.Builder
	line.WriteString(r.styles.Bold.Render("Total: "))
	line.WriteString(count(totals.Problems, "problem", "problems"))
	if len(severities) > 0 {
		line.WriteString(" (" + strings.Join(severities, ", ") + ")")
	}
	line.WriteString(" in " + count(totals.FilesWithIssues, "file", "files"))
	if totals.Fixable > 0 {
		line.WriteString(", " + r.styles.Success.Render(fmt.Sprintf("%d fixable with --fix", totals.Fixable)))
	}
	if totals.Suppressed > 0 {
		line.WriteString(", " + r.styles.Dim.Render(fmt.Sprintf("%d suppressed", totals.Suppressed)))
	}
	fmt.Fprintln(r.out, line.String())
}
