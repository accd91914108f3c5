package lint

import (
	"slices"

	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/finding"
)

// RuleMeta is the static description of a rule.
type RuleMeta struct {
	ID          string
	Description string
	Type        RuleType
	Tags        []string
	Fixable     bool
}

// BaseRule answers every Rule method except Apply from a RuleMeta. Rules
// embed it and override DefaultEnabled or DefaultSeverity when the
// defaults (disabled, error) do not fit.
type BaseRule struct {
	meta RuleMeta
}

// NewBaseRule creates a BaseRule.
func NewBaseRule(id, desc string, ruleType RuleType, tags []string, fixable bool) BaseRule {
	return BaseRule{meta: RuleMeta{
		ID:          id,
		Description: desc,
		Type:        ruleType,
		Tags:        tags,
		Fixable:     fixable,
	}}
}

// Meta returns a copy of the rule's metadata.
func (r *BaseRule) Meta() RuleMeta {
	meta := r.meta
	meta.Tags = slices.Clone(meta.Tags)
	return meta
}

func (r *BaseRule) ID() string          { return r.meta.ID }
func (r *BaseRule) Description() string { return r.meta.Description }
func (r *BaseRule) Type() RuleType      { return r.meta.Type }
func (r *BaseRule) Tags() []string      { return r.meta.Tags }
func (r *BaseRule) CanFix() bool        { return r.meta.Fixable }

// DefaultEnabled is false: rules run only when configured, enabled by a
// pack, or overriding this method.
func (r *BaseRule) DefaultEnabled() bool { return false }

// DefaultSeverity is error.
func (r *BaseRule) DefaultSeverity() config.Severity { return config.SeverityError }

// Apply reports nothing.
func (r *BaseRule) Apply(*RuleContext) ([]finding.Finding, error) { return nil, nil }
