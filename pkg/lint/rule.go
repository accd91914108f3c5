// Package lint provides the rule engine, the fix cycle and the rule registry
// for gojslint.
package lint

import (
	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/finding"
)

// RuleType classifies what a rule's fixes change. It backs the fix-type filter.
type RuleType string

const (
	// TypeProblem rules find code that is wrong or likely to cause errors.
	TypeProblem RuleType = "problem"

	// TypeSuggestion rules propose a better way of writing working code.
	TypeSuggestion RuleType = "suggestion"

	// TypeLayout rules only care about whitespace, semicolons and formatting.
	TypeLayout RuleType = "layout"

	// TypeDirective marks the cleanup edits of unused directive comments.
	// No rule has this type.
	TypeDirective RuleType = "directive"
)

// ParseRuleType accepts the four fix types.
func ParseRuleType(value string) (RuleType, bool) {
	switch RuleType(value) {
	case TypeProblem, TypeSuggestion, TypeLayout, TypeDirective:
		return RuleType(value), true
	default:
		return "", false
	}
}

// Rule defines the interface that all lint rules must implement.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "no-alert").
	ID() string

	// Description returns a short description of what the rule checks.
	Description() string

	// Type returns the kind of change the rule's fixes make.
	Type() RuleType

	// DefaultEnabled returns whether the rule is enabled by default.
	DefaultEnabled() bool

	// DefaultSeverity returns the default severity for this rule.
	DefaultSeverity() config.Severity

	// Tags returns categorization tags for this rule.
	Tags() []string

	// CanFix returns whether this rule can auto-fix issues.
	CanFix() bool

	// Apply executes the rule against the given context and returns findings.
	//
	// Rules must:
	//   - Return one finding per violation, built with NewFinding.
	//   - Attach a fix only if CanFix() is true.
	//   - Respect context cancellation.
	//   - Return error only for internal failures, not violations.
	//
	// The engine overwrites RuleID and Severity on every returned finding.
	Apply(ctx *RuleContext) ([]finding.Finding, error)
}
