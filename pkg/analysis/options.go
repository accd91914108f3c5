package analysis

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidSortField is returned by ParseSortField for unknown names.
var ErrInvalidSortField = errors.New("invalid sort field")

// SortField orders the ByFile and ByRule groups of a Report.
type SortField string

const (
	// SortByCount orders by problem count.
	SortByCount SortField = "count"
	// SortByAlpha orders by file path or rule id.
	SortByAlpha SortField = "alpha"
	// SortBySeverity puts groups with more errors first, then more warnings.
	SortBySeverity SortField = "severity"
)

// SortFields lists the accepted sort fields in help order.
func SortFields() []SortField {
	return []SortField{SortByCount, SortByAlpha, SortBySeverity}
}

// IsValid reports whether s is a known sort field.
func (s SortField) IsValid() bool {
	return slices.Contains(SortFields(), s)
}

// ParseSortField converts a flag value to a SortField. Empty means count.
func ParseSortField(value string) (SortField, error) {
	if value == "" {
		return SortByCount, nil
	}
	field := SortField(value)
	if !field.IsValid() {
		return "", fmt.Errorf("%w: %q (expected count, alpha or severity)", ErrInvalidSortField, value)
	}
	return field, nil
}

// DescendingByDefault reports the natural direction of s: counts and
// severities read best largest first, names in ascending order.
func (s SortField) DescendingByDefault() bool {
	return s != SortByAlpha
}

// Options configures Analyze.
type Options struct {
	// IncludeFindings fills Report.Findings.
	IncludeFindings bool

	IncludeByFile bool
	IncludeByRule bool

	SortBy   SortField
	SortDesc bool

	// WorkingDir makes file paths relative. Empty keeps them as given.
	WorkingDir string
}

// DefaultOptions includes every view, largest groups first.
func DefaultOptions() Options {
	return Options{
		IncludeFindings: true,
		IncludeByFile:   true,
		IncludeByRule:   true,
		SortBy:          SortByCount,
		SortDesc:        true,
	}
}
