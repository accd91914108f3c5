package lint

import (
	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/directive"
)

// ResolvedRule pairs a Rule with its resolved configuration.
type ResolvedRule struct {
	// Rule is the underlying rule implementation.
	Rule Rule

	// Enabled indicates whether the rule should be run.
	Enabled bool

	// Severity is the resolved severity for findings from this rule.
	Severity config.Severity

	// AutoFix indicates whether the rule's fixes may be applied.
	AutoFix bool

	// Config is the rule-specific configuration (may be nil).
	Config *config.RuleConfig
}

// ResolveRules determines which rules to run based on the registry, the run
// configuration and the inline rule configuration of one file. Inline
// entries are applied in document order after the run configuration.
// Returns only enabled rules, sorted by ID.
func ResolveRules(
	registry *Registry,
	cfg *config.Config,
	inline []directive.InlineRuleConfig,
) []ResolvedRule {
	overrides := make(map[string]config.RuleConfig)
	if cfg != nil {
		for key, ruleCfg := range cfg.Rules {
			id, _, ok := registry.Resolve(key)
			if !ok {
				continue
			}
			existing, seen := overrides[id]
			if !seen {
				overrides[id] = ruleCfg
				continue
			}
			// A canonical ID wins over an alias for the same rule.
			if key == id {
				overrides[id] = existing.Merge(ruleCfg)
			} else {
				overrides[id] = ruleCfg.Merge(existing)
			}
		}
	}
	for _, entry := range inline {
		id, _, ok := registry.Resolve(entry.RuleID)
		if !ok {
			continue
		}
		overrides[id] = overrides[id].Merge(entry.Config)
	}

	var resolved []ResolvedRule
	for _, rule := range registry.Rules() {
		var ruleCfg *config.RuleConfig
		if rc, ok := overrides[rule.ID()]; ok {
			ruleCfg = &rc
		}
		rr := resolveRule(rule, ruleCfg)
		if rr.Enabled {
			resolved = append(resolved, rr)
		}
	}

	return resolved
}

// resolveRule resolves the configuration for a single rule.
func resolveRule(rule Rule, ruleCfg *config.RuleConfig) ResolvedRule {
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
		AutoFix:  rule.CanFix(),
		Config:   ruleCfg,
	}

	if ruleCfg == nil {
		return rr
	}

	if ruleCfg.Severity != nil {
		rr.Severity = *ruleCfg.Severity
		rr.Enabled = rr.Severity.Enabled()
	}
	if ruleCfg.AutoFix != nil {
		rr.AutoFix = *ruleCfg.AutoFix && rule.CanFix()
	}

	return rr
}
