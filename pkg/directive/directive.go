// Package directive extracts suppression and inline-configuration
// directives from source comments.
package directive

import (
	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/finding"
)

// Kind identifies what a directive does.
type Kind uint8

const (
	// DisableAll turns off every rule until a matching enable.
	DisableAll Kind = iota + 1
	// DisableSome turns off the listed rules.
	DisableSome
	// EnableAll clears every active block disable.
	EnableAll
	// EnableSome re-enables the listed rules.
	EnableSome
	// DisableLine suppresses findings on the comment's own line.
	DisableLine
	// DisableNextLine suppresses findings on the line after the comment.
	DisableNextLine
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case DisableAll:
		return "disable-all"
	case DisableSome:
		return "disable"
	case EnableAll:
		return "enable-all"
	case EnableSome:
		return "enable"
	case DisableLine:
		return "disable-line"
	case DisableNextLine:
		return "disable-next-line"
	default:
		return "unknown"
	}
}

// IsLineScoped reports whether the directive applies to a single line.
func (k Kind) IsLineScoped() bool {
	return k == DisableLine || k == DisableNextLine
}

// IsDisable reports whether the directive suppresses findings.
func (k Kind) IsDisable() bool {
	return k == DisableAll || k == DisableSome || k.IsLineScoped()
}

// Directive is one parsed directive comment.
type Directive struct {
	Kind Kind

	// RuleIDs are the known rules the directive names. Empty means all rules.
	RuleIDs []string

	// ListedIDs is every identifier written in the comment, including
	// unknown ones, after de-duplication.
	ListedIDs []string

	// Keyword is the directive keyword as written, prefix included.
	Keyword string

	Comment ast.Comment

	// Line and Column locate the start of the comment (1-based).
	Line   int
	Column int

	// TargetLine is the line a line-scoped directive covers.
	TargetLine int

	Justification string
}

// AppliesToAll reports whether the directive names no specific rules.
func (d *Directive) AppliesToAll() bool {
	return len(d.RuleIDs) == 0
}

// Names reports whether the directive covers ruleID.
func (d *Directive) Names(ruleID string) bool {
	if d.AppliesToAll() {
		return true
	}
	for _, id := range d.RuleIDs {
		if id == ruleID {
			return true
		}
	}
	return false
}

// InlineRuleConfig is a rule setting made by a "rules" comment.
type InlineRuleConfig struct {
	RuleID string
	Config config.RuleConfig
	Line   int
	Column int
}

// Options controls directive parsing.
type Options struct {
	// AllowInlineConfig enables directive processing.
	AllowInlineConfig bool

	// WarnInlineConfig names the config that disabled inline
	// configuration. When set and AllowInlineConfig is false, each
	// directive comment yields a warning instead of being ignored silently.
	WarnInlineConfig string

	// Prefix is prepended to every keyword, such as "eslint-".
	Prefix string

	// KnownRule reports whether a rule exists. Nil accepts every id.
	KnownRule func(id string) bool
}

// Result is the outcome of parsing a file's comments.
type Result struct {
	Directives  []Directive
	Problems    []finding.Finding
	RuleConfigs []InlineRuleConfig
}
