package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gojslint/pkg/runner"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "12 problems (8 errors, 4 warnings) in 3 files, 6 fixable".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	counts := stats.Findings
	total := counts.Errors + counts.Warnings

	if total == 0 {
		msg := s.Success.Render("No problems found") + s.Dim.Render(fmt.Sprintf(" (%d %s checked)",
			stats.FilesProcessed, Plural(stats.FilesProcessed, "file", "files")))
		if stats.FilesModified > 0 {
			msg += ", " + s.Success.Render(fmt.Sprintf("%d %s fixed",
				stats.FilesModified, Plural(stats.FilesModified, "file", "files")))
		}
		return msg + "\n"
	}

	var severityParts []string
	if counts.Errors > 0 {
		severityParts = append(severityParts, s.Error.Render(fmt.Sprintf("%d %s", counts.Errors, Plural(counts.Errors, "error", "errors"))))
	}
	if counts.Warnings > 0 {
		severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d %s", counts.Warnings, Plural(counts.Warnings, "warning", "warnings"))))
	}

	parts := []string{
		fmt.Sprintf("%d %s (%s)", total, Plural(total, "problem", "problems"), strings.Join(severityParts, ", ")),
		fmt.Sprintf("in %d %s", stats.FilesWithIssues, Plural(stats.FilesWithIssues, "file", "files")),
	}

	if fixable := counts.FixableErrors + counts.FixableWarnings; fixable > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixable with --fix", fixable)))
	}

	if stats.FilesModified > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s fixed",
			stats.FilesModified, Plural(stats.FilesModified, "file", "files"))))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder
	counts := stats.Findings

	line := func(label string, value string) {
		builder.WriteString(fmt.Sprintf("  %-19s%s\n", label+":", value))
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	line("Files checked", s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)))
	if stats.FilesCached > 0 {
		line("Files cached", s.Dim.Render(strconv.Itoa(stats.FilesCached)))
	}
	if stats.FilesWithIssues > 0 {
		line("Files with issues", s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)))
	}
	if stats.FilesModified > 0 {
		line("Files modified", s.Success.Render(strconv.Itoa(stats.FilesModified)))
	}
	if stats.FilesErrored > 0 {
		line("Files errored", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}

	builder.WriteString("\n")

	line("Total problems", s.SummaryValue.Render(strconv.Itoa(counts.Errors+counts.Warnings)))
	if counts.Errors > 0 {
		line("  Errors", s.Error.Render(strconv.Itoa(counts.Errors)))
	}
	if counts.Warnings > 0 {
		line("  Warnings", s.Warning.Render(strconv.Itoa(counts.Warnings)))
	}
	if fixable := counts.FixableErrors + counts.FixableWarnings; fixable > 0 {
		line("  Fixable", s.Success.Render(strconv.Itoa(fixable)))
	}
	if stats.Suppressed > 0 {
		line("Suppressed", s.Dim.Render(strconv.Itoa(stats.Suppressed)))
	}
	if stats.RuleErrors > 0 {
		line("Rule failures", s.Failure.Render(strconv.Itoa(stats.RuleErrors)))
	}
	if stats.CircularFiles > 0 {
		line("Circular fixes", s.Warning.Render(strconv.Itoa(stats.CircularFiles)))
	}

	builder.WriteString("\n")

	switch {
	case counts.Errors > 0:
		builder.WriteString(s.Failure.Render("Lint failed with errors"))
	case counts.Warnings > 0:
		builder.WriteString(s.Warning.Render("Lint completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Lint passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
