package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/finding"
	"github.com/yaklabco/gojslint/pkg/runner"
)

const (
	fixableMark      = "+"
	ellipsis         = "..."
	cellPadding      = 2
	minFileWidth     = 16
	minMessageWidth  = 24
	defaultTermWidth = 100
)

// TableRow is one finding in the findings table.
type TableRow struct {
	File     string
	Location string
	Severity config.Severity
	Message  string
	RuleID   string
	Fixable  bool
}

// FindingToTableRow converts a finding of the file at path to a row.
func FindingToTableRow(path string, f finding.Finding) TableRow {
	return TableRow{
		File:     path,
		Location: fmt.Sprintf("%d:%d", f.Line, f.Column),
		Severity: f.Severity,
		Message:  f.Message,
		RuleID:   f.RuleID,
		Fixable:  f.HasFix(),
	}
}

// TableFormatter renders findings with lipgloss/table, fitted to the
// terminal width by truncating messages and then file paths.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a table formatter. A non-positive termWidth
// selects a default of 100 columns.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, colorEnabled: colorEnabled, termWidth: termWidth}
}

// FormatTable renders every file's findings in one table followed by a
// legend. The FILE cell is only filled on the first row of each file.
// Files without findings are omitted; with no findings at all the result
// is empty.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil {
		return ""
	}
	var rows []TableRow
	for _, file := range result.Files {
		rows = append(rows, fileRows(file)...)
	}
	if len(rows) == 0 {
		return ""
	}
	return t.render(rows, true) + "\n" + t.legend() + "\n"
}

// FormatFileTable renders one file's findings without the FILE column,
// followed by the file's counts.
func (t *TableFormatter) FormatFileTable(file runner.FileOutcome) string {
	rows := fileRows(file)
	if len(rows) == 0 {
		return ""
	}
	return t.render(rows, false) + "\n" + t.fileSummary(rows) + "\n"
}

// FormatTableSummary renders run totals on one line.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats, duration string) string {
	counts := stats.Findings
	parts := []string{fmt.Sprintf("%d %s checked", stats.FilesProcessed, Plural(stats.FilesProcessed, "file", "files"))}
	parts = append(parts, t.countParts(counts.Errors, counts.Warnings, counts.FixableErrors+counts.FixableWarnings)...)
	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}
	return " " + strings.Join(parts, " | ")
}

func (t *TableFormatter) render(rows []TableRow, withFile bool) string {
	headers := []string{"LOC", "SEVERITY", "MESSAGE", "RULE", ""}
	if withFile {
		headers = append([]string{"FILE"}, headers...)
	}
	fileWidth, messageWidth := t.fit(rows, headers, withFile)

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderStyle(t.styles.TableSeparator).
		Headers(headers...)

	previousFile := ""
	for _, row := range rows {
		fixable := ""
		if row.Fixable {
			fixable = fixableMark
		}
		cells := []string{
			row.Location,
			severityLabel(row.Severity),
			truncateString(row.Message, messageWidth),
			row.RuleID,
			fixable,
		}
		if withFile {
			file := ""
			if row.File != previousFile {
				file = truncateFilePath(row.File, fileWidth)
				previousFile = row.File
			}
			cells = append([]string{file}, cells...)
		}
		tbl.Row(cells...)
	}

	fixableCol := len(headers) - 1
	tbl.StyleFunc(func(row, col int) lipgloss.Style {
		var style lipgloss.Style
		switch {
		case row == table.HeaderRow:
			style = t.styles.TableHeader
		case row < 0 || row >= len(rows):
			style = lipgloss.NewStyle()
		case col == fixableCol:
			style = t.styles.TableFixable
		default:
			style = t.rowStyle(rows[row].Severity)
		}
		if col == fixableCol {
			return style
		}
		return style.PaddingRight(cellPadding)
	})

	return tbl.String()
}

// fit returns the FILE and MESSAGE column widths that keep the table
// within the terminal. Messages shrink first.
func (t *TableFormatter) fit(rows []TableRow, headers []string, withFile bool) (int, int) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		cells := []string{row.Location, severityLabel(row.Severity), row.Message, row.RuleID, fixableMark}
		if withFile {
			cells = append([]string{row.File}, cells...)
		}
		for i, cell := range cells {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	fileCol, messageCol := -1, 2
	if withFile {
		fileCol, messageCol = 0, 3
	}

	total := func() int {
		sum := 0
		for _, w := range widths {
			sum += w + cellPadding
		}
		return sum
	}
	if excess := total() - t.termWidth; excess > 0 {
		widths[messageCol] = max(minMessageWidth, widths[messageCol]-excess)
	}
	if excess := total() - t.termWidth; excess > 0 && fileCol >= 0 {
		widths[fileCol] = max(minFileWidth, widths[fileCol]-excess)
	}

	fileWidth := 0
	if fileCol >= 0 {
		fileWidth = widths[fileCol]
	}
	return fileWidth, widths[messageCol]
}

func (t *TableFormatter) rowStyle(severity config.Severity) lipgloss.Style {
	switch severity {
	case config.SeverityError:
		return t.styles.TableErrorRow
	case config.SeverityWarn:
		return t.styles.TableWarnRow
	default:
		return lipgloss.NewStyle()
	}
}

func (t *TableFormatter) legend() string {
	mark := fixableMark
	if t.colorEnabled {
		mark = t.styles.TableFixable.Render(fixableMark)
	}
	return t.styles.TableLegend.Render(" Legend: ") + mark + t.styles.TableLegend.Render(" = fixable with --fix")
}

func (t *TableFormatter) fileSummary(rows []TableRow) string {
	var errs, warnings, fixable int
	for _, row := range rows {
		switch row.Severity {
		case config.SeverityError:
			errs++
		case config.SeverityWarn:
			warnings++
		case config.SeverityOff:
		}
		if row.Fixable {
			fixable++
		}
	}
	return " " + strings.Join(t.countParts(errs, warnings, fixable), " | ")
}

func (t *TableFormatter) countParts(errs, warnings, fixable int) []string {
	var parts []string
	if errs > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d %s", errs, Plural(errs, "error", "errors"))))
	}
	if warnings > 0 {
		parts = append(parts, t.styles.Warning.Render(fmt.Sprintf("%d %s", warnings, Plural(warnings, "warning", "warnings"))))
	}
	if fixable > 0 {
		parts = append(parts, t.styles.TableFixable.Render(fmt.Sprintf("%d fixable", fixable)))
	}
	return parts
}

func fileRows(file runner.FileOutcome) []TableRow {
	if file.Result == nil || file.Result.FixReport == nil {
		return nil
	}
	rows := make([]TableRow, 0, len(file.Result.Messages))
	for _, f := range file.Result.Messages {
		rows = append(rows, FindingToTableRow(file.Path, f))
	}
	return rows
}

func severityLabel(sev config.Severity) string {
	if sev == config.SeverityWarn {
		return "warning"
	}
	return sev.String()
}

// truncateString shortens str to maxWidth cells, ending in "...".
func truncateString(str string, maxWidth int) string {
	if runewidth.StringWidth(str) <= maxWidth {
		return str
	}
	if maxWidth <= len(ellipsis) {
		return runewidth.Truncate(str, maxWidth, "")
	}
	return runewidth.Truncate(str, maxWidth, ellipsis)
}

// truncateFilePath shortens path to maxWidth cells, keeping the file name
// and replacing the leading directories with "...".
func truncateFilePath(path string, maxWidth int) string {
	width := runewidth.StringWidth(path)
	if width <= maxWidth {
		return path
	}
	if maxWidth <= len(ellipsis) {
		return runewidth.TruncateLeft(path, width-maxWidth, "")
	}
	return runewidth.TruncateLeft(path, width-maxWidth+len(ellipsis), ellipsis)
}
