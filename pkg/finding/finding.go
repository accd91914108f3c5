// Package finding defines the problem records produced by rules, directive
// processing and the parser, together with their JSON interchange form.
package finding

import (
	"sort"

	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/fix"
	"github.com/yaklabco/gojslint/pkg/source"
)

// SuppressionKindDirective marks a suppression caused by a directive comment.
const SuppressionKindDirective = "directive"

// Suggestion is an optional edit offered to the user. Suggestions are never
// applied automatically.
type Suggestion struct {
	Desc string
	Fix  fix.TextEdit
}

// Suppression records that one directive hid a finding.
type Suppression struct {
	Kind          string
	Justification string
}

// Finding is one problem instance. Values are treated as immutable: helpers
// that change a finding return a modified copy.
type Finding struct {
	// RuleID is the reporting rule. Empty means a structural problem
	// (parse error, directive report) with no rule.
	RuleID string

	Severity config.Severity
	Message  string

	// Line, Column, EndLine and EndColumn are 1-based. EndLine is 0 when
	// the finding has no end position.
	Line      int
	Column    int
	EndLine   int
	EndColumn int

	// NodeType is the kind of syntax node the finding is about, if any.
	NodeType string

	// Fatal marks a parse failure.
	Fatal bool

	Fix          *fix.TextEdit
	Suggestions  []Suggestion
	Suppressions []Suppression
}

// At returns a copy of f positioned at loc.
func (f Finding) At(loc source.Location) Finding {
	f.Line, f.Column = loc.Start.Line, loc.Start.Column
	f.EndLine, f.EndColumn = loc.End.Line, loc.End.Column
	return f
}

// Start returns the start position.
func (f Finding) Start() source.Position {
	return source.Position{Line: f.Line, Column: f.Column}
}

// HasFix returns true if the finding carries an autofix.
func (f Finding) HasFix() bool {
	return f.Fix != nil
}

// IsSuppressed returns true if at least one directive hid the finding.
func (f Finding) IsSuppressed() bool {
	return len(f.Suppressions) > 0
}

// WithoutFix returns a copy of f with its fix removed.
func (f Finding) WithoutFix() Finding {
	f.Fix = nil
	return f
}

// WithSuppressions returns a copy of f carrying the given suppressions.
func (f Finding) WithSuppressions(suppressions []Suppression) Finding {
	f.Suppressions = append([]Suppression(nil), suppressions...)
	return f
}

// Less orders findings by line, then column.
func Less(a, b Finding) bool {
	return a.Start().Before(b.Start())
}

// Sort orders findings by (line, column). Equal positions keep their order.
func Sort(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		return Less(findings[i], findings[j])
	})
}

// Counts tallies findings by severity.
type Counts struct {
	Errors          int
	Warnings        int
	Fatal           int
	FixableErrors   int
	FixableWarnings int
}

// Add accumulates another tally.
func (c *Counts) Add(other Counts) {
	c.Errors += other.Errors
	c.Warnings += other.Warnings
	c.Fatal += other.Fatal
	c.FixableErrors += other.FixableErrors
	c.FixableWarnings += other.FixableWarnings
}

// Count tallies the given findings.
func Count(findings []Finding) Counts {
	var counts Counts
	for _, f := range findings {
		switch f.Severity {
		case config.SeverityError:
			counts.Errors++
			if f.HasFix() {
				counts.FixableErrors++
			}
		case config.SeverityWarn:
			counts.Warnings++
			if f.HasFix() {
				counts.FixableWarnings++
			}
		case config.SeverityOff:
		}
		if f.Fatal {
			counts.Fatal++
		}
	}
	return counts
}
