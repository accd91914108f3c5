// Package pretty renders lint results for terminals with Lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/gojslint/pkg/config"
)

// Color modes accepted by IsColorEnabled.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ANSI palette indices.
const (
	colorRed    = lipgloss.Color("9")
	colorGreen  = lipgloss.Color("10")
	colorYellow = lipgloss.Color("11")
	colorGray   = lipgloss.Color("8")
	colorLight  = lipgloss.Color("7")
)

// Styles holds the renderers used by the text, table and summary output.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style

	FilePath   lipgloss.Style
	Location   lipgloss.Style
	RuleID     lipgloss.Style
	Message    lipgloss.Style
	Suggestion lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader    lipgloss.Style
	TableErrorRow  lipgloss.Style
	TableWarnRow   lipgloss.Style
	TableFixable   lipgloss.Style
	TableLegend    lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns colored styles, or plain ones when colorEnabled is false.
func NewStyles(colorEnabled bool) *Styles {
	base := lipgloss.NewStyle()
	fg := func(c lipgloss.Color) lipgloss.Style {
		if !colorEnabled {
			return base
		}
		return base.Foreground(c)
	}
	attr := func(s lipgloss.Style) lipgloss.Style {
		if !colorEnabled {
			return base
		}
		return s
	}

	return &Styles{
		Error:   attr(fg(colorRed).Bold(true)),
		Warning: attr(fg(colorYellow).Bold(true)),

		FilePath:   attr(base.Bold(true)),
		Location:   fg(colorGray),
		RuleID:     fg(colorGray),
		Message:    base,
		Suggestion: attr(fg(colorGreen).Italic(true)),
		SourceLine: fg(colorLight),
		Caret:      fg(colorRed),

		SummaryTitle: attr(base.Bold(true)),
		SummaryValue: base,
		Success:      attr(fg(colorGreen).Bold(true)),
		Failure:      attr(fg(colorRed).Bold(true)),

		TableHeader:    attr(fg(colorLight).Bold(true)),
		TableErrorRow:  fg(colorRed),
		TableWarnRow:   fg(colorYellow),
		TableFixable:   fg(colorGreen),
		TableLegend:    attr(fg(colorGray).Italic(true)),
		TableSeparator: fg(colorGray),

		Dim:  fg(colorGray),
		Bold: attr(base.Bold(true)),
	}
}

// Severity returns the style for a severity. Off renders dim.
func (s *Styles) Severity(sev config.Severity) lipgloss.Style {
	switch sev {
	case config.SeverityError:
		return s.Error
	case config.SeverityWarn:
		return s.Warning
	default:
		return s.Dim
	}
}

// IsColorEnabled resolves a color mode against the output writer.
//
// "always" and "never" are absolute. Any other mode behaves like "auto":
// NO_COLOR disables color, FORCE_COLOR enables it, and otherwise color is
// used only when writer is a terminal.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force := os.Getenv("FORCE_COLOR"); force != "" && force != "0" {
		return true
	}

	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
