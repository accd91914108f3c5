package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/directive"
)

func resolvedIDs(resolved []ResolvedRule) []string {
	ids := make([]string, len(resolved))
	for i, rr := range resolved {
		ids[i] = rr.Rule.ID()
	}
	return ids
}

func TestResolveRules_Defaults(t *testing.T) {
	t.Parallel()

	on := alertRule()
	on.enabled = true
	reg := newTestRegistry(on, semiRule())

	resolved := ResolveRules(reg, nil, nil)
	require.Len(t, resolved, 1)
	assert.Equal(t, "no-alert", resolved[0].Rule.ID())
	assert.Equal(t, config.SeverityError, resolved[0].Severity)
	assert.Nil(t, resolved[0].Config)
}

func TestResolveRules_ConfigSeverity(t *testing.T) {
	t.Parallel()

	on := alertRule()
	on.enabled = true
	reg := newTestRegistry(on, semiRule())

	cfg := config.NewConfig()
	cfg.SetRule("no-alert", config.SeverityOff)
	cfg.SetRule("semi", config.SeverityWarn)
	cfg.SetRule("unknown-rule", config.SeverityError)

	resolved := ResolveRules(reg, cfg, nil)
	require.Len(t, resolved, 1)
	assert.Equal(t, "semi", resolved[0].Rule.ID())
	assert.Equal(t, config.SeverityWarn, resolved[0].Severity)
	assert.True(t, resolved[0].AutoFix)
}

func TestResolveRules_AliasKeys(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(semiRule())
	reg.RegisterAlias("semicolon", "semi")

	cfg := config.NewConfig()
	cfg.Rules["semicolon"] = config.RuleConfig{
		Severity: config.SeverityWarn.Ptr(),
		Options:  map[string]any{"style": "never"},
	}
	cfg.Rules["semi"] = config.RuleConfig{Severity: config.SeverityError.Ptr()}

	resolved := ResolveRules(reg, cfg, nil)
	require.Len(t, resolved, 1)
	assert.Equal(t, config.SeverityError, resolved[0].Severity, "canonical key wins")
	require.NotNil(t, resolved[0].Config)
	assert.Equal(t, "never", resolved[0].Config.Options["style"], "alias options are kept")
}

func TestResolveRules_InlineOverrides(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(alertRule(), semiRule())
	cfg := enable(config.SeverityWarn, "semi")

	inline := []directive.InlineRuleConfig{
		{RuleID: "no-alert", Config: config.RuleConfig{Severity: config.SeverityWarn.Ptr()}},
		{RuleID: "semi", Config: config.RuleConfig{Options: map[string]any{"style": "never"}}},
		{RuleID: "no-alert", Config: config.RuleConfig{Severity: config.SeverityError.Ptr()}},
	}

	resolved := ResolveRules(reg, cfg, inline)
	require.Equal(t, []string{"no-alert", "semi"}, resolvedIDs(resolved))

	assert.Equal(t, config.SeverityError, resolved[0].Severity, "later inline entry wins")
	assert.Equal(t, config.SeverityWarn, resolved[1].Severity, "options-only entry keeps severity")
	assert.Equal(t, "never", resolved[1].Config.Options["style"])
}

func TestResolveRule_AutoFix(t *testing.T) {
	t.Parallel()

	disabled := false
	enabled := true

	tests := []struct {
		name    string
		rule    Rule
		cfg     *config.RuleConfig
		wantFix bool
	}{
		{name: "fixable default", rule: semiRule(), wantFix: true},
		{name: "not fixable", rule: alertRule(), wantFix: false},
		{name: "auto_fix false", rule: semiRule(), cfg: &config.RuleConfig{AutoFix: &disabled}, wantFix: false},
		{name: "auto_fix true on unfixable rule", rule: alertRule(), cfg: &config.RuleConfig{AutoFix: &enabled}, wantFix: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantFix, resolveRule(tt.rule, tt.cfg).AutoFix)
		})
	}
}
