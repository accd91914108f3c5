package lint

import (
	"github.com/yaklabco/gojslint/pkg/finding"
	"github.com/yaklabco/gojslint/pkg/fix"
)

// FixFilter decides whether the fix of a finding may be applied.
// A nil FixFilter disables fixing.
type FixFilter func(f finding.Finding) bool

// FixAll accepts every fix.
func FixAll(finding.Finding) bool {
	return true
}

// FixTypeFilter accepts fixes from rules of the given types. Findings
// without a rule (unused directive reports) have TypeDirective. With no
// types every fix is accepted.
func FixTypeFilter(registry *Registry, types []RuleType) FixFilter {
	if len(types) == 0 {
		return FixAll
	}
	allowed := make(map[RuleType]bool, len(types))
	for _, t := range types {
		allowed[t] = true
	}
	return func(f finding.Finding) bool {
		if f.RuleID == "" {
			return allowed[TypeDirective]
		}
		rule, ok := registry.Get(f.RuleID)
		return ok && allowed[rule.Type()]
	}
}

// FixResult is the outcome of one ApplyFixes call.
type FixResult struct {
	// Output is the text after fixing.
	Output []byte

	// Fixed is true if at least one fix was applied.
	Fixed bool

	// Remaining are the findings whose fix was not applied, in input order.
	Remaining []finding.Finding
}

// ApplyFixes applies the fixes of findings to text.
//
// Fixes accepted by filter are ordered by start offset (ties keep finding
// order) and applied greedily: a fix is taken iff it starts at or after the
// end of the last applied fix and its range is valid. Suggestions are never
// applied.
func ApplyFixes(text []byte, findings []finding.Finding, filter FixFilter) FixResult {
	if filter == nil {
		return FixResult{Output: text, Remaining: findings}
	}

	var candidates []fix.Candidate
	for i, f := range findings {
		if f.Fix == nil || !filter(f) {
			continue
		}
		candidates = append(candidates, fix.Candidate{Edit: *f.Fix, Owner: i})
	}

	applied := fix.Apply(text, candidates)

	fixedOwners := make(map[int]bool, len(applied.Applied))
	for _, c := range applied.Applied {
		fixedOwners[c.Owner] = true
	}

	remaining := make([]finding.Finding, 0, len(findings)-len(fixedOwners))
	for i, f := range findings {
		if !fixedOwners[i] {
			remaining = append(remaining, f)
		}
	}

	return FixResult{
		Output:    applied.Output,
		Fixed:     applied.Fixed,
		Remaining: remaining,
	}
}
