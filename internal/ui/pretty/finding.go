package pretty

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/finding"
)

// contextIndent aligns source context under the finding line.
const contextIndent = "        "

// FormatFinding formats a single finding for terminal output:
//
//	path:line:col  severity  message  (rule-id)
//
// Structural findings without a rule omit the rule identifier.
func (s *Styles) FormatFinding(path string, f finding.Finding, showContext bool, sourceLine string) string {
	var builder strings.Builder

	location := s.FilePath.Render(path) + s.Location.Render(fmt.Sprintf(":%d:%d", f.Line, f.Column))

	builder.WriteString("  " + location + "  " + s.FormatSeverity(f.Severity) + "  " + s.Message.Render(f.Message))
	if f.RuleID != "" {
		builder.WriteString("  " + s.RuleID.Render("("+f.RuleID+")"))
	}
	builder.WriteString("\n")

	if showContext && sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, f.Column))
	}

	for _, suggestion := range f.Suggestions {
		builder.WriteString("    " + s.Dim.Render("Suggestion:") + " " +
			s.Suggestion.Render(suggestion.Desc) + "\n")
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	label := sev.String()
	if sev == config.SeverityWarn {
		label = "warning"
	}
	return s.Severity(sev).Render(label)
}

// FormatSourceContext formats the source line with a caret under the given
// 1-based byte column. Wide characters before the column widen the padding;
// tabs are kept so the caret lines up in any tab width.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	builder.WriteString(contextIndent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		builder.WriteString(contextIndent + caretPadding(line, column-1) + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// caretPadding returns the blank prefix covering the first n bytes of line.
func caretPadding(line string, n int) string {
	if n > len(line) {
		n = len(line)
	}
	var padding strings.Builder
	for _, r := range line[:n] {
		if r == '\t' {
			padding.WriteByte('\t')
			continue
		}
		padding.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return padding.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, problemCount int) string {
	header := s.FilePath.Render(path)
	if problemCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", problemCount, Plural(problemCount, "problem", "problems")))
	}
	return header
}

// Plural returns singular when n is one and plural otherwise.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
