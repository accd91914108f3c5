package lint

import (
	"context"

	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/source"
)

// RuleContext provides all context needed by a rule to perform linting.
//
// RuleContext stores context.Context as a field (Ctx) rather than passing it
// as a method parameter. It is a short-lived parameter object created per
// rule invocation; the Cancelled() helper exposes cancellation.
type RuleContext struct {
	// Ctx is the context for cancellation and timeouts.
	Ctx context.Context

	// Program is the parsed file.
	Program *ast.Program

	// Source is the text the program was parsed from (alias for Program.Source).
	Source *source.Text

	// Config is the run configuration.
	Config *config.Config

	// RuleConfig is the rule-specific configuration after inline overrides
	// (may be nil).
	RuleConfig *config.RuleConfig

	// Registry provides access to the rule registry.
	Registry *Registry

	// nodes is shared by every rule of one analysis pass.
	nodes *NodeCache
}

// NewRuleContext creates a RuleContext for the given program and configuration.
func NewRuleContext(
	ctx context.Context,
	prog *ast.Program,
	cfg *config.Config,
	ruleCfg *config.RuleConfig,
) *RuleContext {
	var src *source.Text
	if prog != nil {
		src = prog.Source
	}

	return &RuleContext{
		Ctx:        ctx,
		Program:    prog,
		Source:     src,
		Config:     cfg,
		RuleConfig: ruleCfg,
	}
}

// Cancelled returns true if the context has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}

// Nodes returns all nodes of the given kinds, building the node cache on
// first use. Do not mutate the returned slice.
func (rc *RuleContext) Nodes(kinds ...ast.NodeKind) []*ast.Node {
	if rc.nodes == nil {
		rc.nodes = newNodeCache()
	}
	if rc.Program != nil {
		rc.nodes.build(rc.Program.Node)
	}
	return rc.nodes.Nodes(kinds...)
}

// Option returns a rule-specific option value, or the default if not set.
func (rc *RuleContext) Option(key string, defaultValue any) any {
	if rc.RuleConfig == nil || rc.RuleConfig.Options == nil {
		return defaultValue
	}
	if v, ok := rc.RuleConfig.Options[key]; ok {
		return v
	}
	return defaultValue
}

// OptionInt returns a rule-specific integer option, or the default.
func (rc *RuleContext) OptionInt(key string, defaultValue int) int {
	v := rc.Option(key, defaultValue)
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	default:
		return defaultValue
	}
}

// OptionString returns a rule-specific string option, or the default.
func (rc *RuleContext) OptionString(key string, defaultValue string) string {
	v := rc.Option(key, defaultValue)
	if s, ok := v.(string); ok {
		return s
	}
	return defaultValue
}

// OptionBool returns a rule-specific boolean option, or the default.
func (rc *RuleContext) OptionBool(key string, defaultValue bool) bool {
	v := rc.Option(key, defaultValue)
	if b, ok := v.(bool); ok {
		return b
	}
	return defaultValue
}

// OptionStringSlice returns a rule-specific string slice option, or the default.
func (rc *RuleContext) OptionStringSlice(key string, defaultValue []string) []string {
	v := rc.Option(key, defaultValue)
	if slice, ok := v.([]string); ok {
		return slice
	}
	// Handle []any from YAML/TOML parsing
	if items, ok := v.([]any); ok {
		result := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
