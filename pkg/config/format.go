package config

import (
	"fmt"
	"strings"
)

// OutputFormat specifies the output format for findings.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// Formats returns every supported output format.
func Formats() []OutputFormat {
	return []OutputFormat{FormatText, FormatTable, FormatJSON, FormatSARIF, FormatDiff, FormatSummary}
}

// IsValid returns true if the format is supported.
func (f OutputFormat) IsValid() bool {
	for _, known := range Formats() {
		if f == known {
			return true
		}
	}
	return false
}

// String returns the format name.
func (f OutputFormat) String() string {
	return string(f)
}

// ParseOutputFormat parses a format name, case-insensitively.
func ParseOutputFormat(value string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(value)))
	if format == "" {
		return FormatText, nil
	}
	if !format.IsValid() {
		return "", fmt.Errorf("unknown output format %q", value)
	}
	return format, nil
}

// Fix types a rule can declare. Directive cleanup edits use FixTypeDirective.
const (
	FixTypeProblem    = "problem"
	FixTypeSuggestion = "suggestion"
	FixTypeLayout     = "layout"
	FixTypeDirective  = "directive"
)

// IsValidFixType reports whether name is a known fix type.
func IsValidFixType(name string) bool {
	switch name {
	case FixTypeProblem, FixTypeSuggestion, FixTypeLayout, FixTypeDirective:
		return true
	default:
		return false
	}
}
