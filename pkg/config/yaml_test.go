package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojslint/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies Rules map", func(t *testing.T) {
		t.Parallel()
		original := &config.Config{
			Rules: map[string]config.RuleConfig{
				"quotes": {
					Severity: config.SeverityError.Ptr(),
					Options:  map[string]any{"style": "double"},
				},
			},
		}

		clone := original.Clone()
		require.NotNil(t, clone)
		require.Contains(t, clone.Rules, "quotes")
		assert.Equal(t, config.SeverityError, *clone.Rules["quotes"].Severity)

		clone.Rules["quotes"] = config.RuleConfig{Severity: config.SeverityWarn.Ptr()}
		assert.Equal(t, config.SeverityError, *original.Rules["quotes"].Severity)
		assert.Equal(t, "double", original.Rules["quotes"].Options["style"])
	})

	t.Run("deep copies slices and pointers", func(t *testing.T) {
		t.Parallel()
		allow := false
		original := &config.Config{
			Ignore:                        []string{"dist/**"},
			AllowInlineConfig:             &allow,
			ReportUnusedDisableDirectives: config.SeverityWarn.Ptr(),
			FixTypes:                      []string{"layout"},
		}

		clone := original.Clone()
		clone.Ignore[0] = "changed"
		*clone.AllowInlineConfig = true
		*clone.ReportUnusedDisableDirectives = config.SeverityError
		clone.FixTypes[0] = "problem"

		assert.Equal(t, "dist/**", original.Ignore[0])
		assert.False(t, *original.AllowInlineConfig)
		assert.Equal(t, config.SeverityWarn, *original.ReportUnusedDisableDirectives)
		assert.Equal(t, "layout", original.FixTypes[0])
	})
}

func TestFromYAMLRuleForms(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromYAML([]byte(`
allow_inline_config: false
report_unused_disable_directives: error
directive_prefix: eslint-
rules:
  semi: error
  no-alert: 1
  eqeqeq: "off"
  quotes: [warn, {style: double}]
  eol-last:
    severity: warning
    auto_fix: false
`))
	require.NoError(t, err)

	assert.False(t, cfg.InlineConfigAllowed())
	assert.Equal(t, config.SeverityError, cfg.UnusedDirectiveSeverity())
	assert.Equal(t, "eslint-", cfg.DirectivePrefix)

	assert.Equal(t, config.SeverityError, *cfg.Rules["semi"].Severity)
	assert.Equal(t, config.SeverityWarn, *cfg.Rules["no-alert"].Severity)
	assert.Equal(t, config.SeverityOff, *cfg.Rules["eqeqeq"].Severity)

	quotes := cfg.Rules["quotes"]
	assert.Equal(t, config.SeverityWarn, *quotes.Severity)
	assert.Equal(t, map[string]any{"style": "double"}, quotes.Options)

	eolLast := cfg.Rules["eol-last"]
	assert.Equal(t, config.SeverityWarn, *eolLast.Severity)
	require.NotNil(t, eolLast.AutoFix)
	assert.False(t, *eolLast.AutoFix)
}

func TestFromYAMLInvalidSeverity(t *testing.T) {
	t.Parallel()

	_, err := config.FromYAML([]byte("rules:\n  semi: loud\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidSeverity)
}

func TestFromTOML(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromTOML([]byte(`
report_unused_disable_directives = "warn"
ignore = ["dist/**"]

[markdown]
enabled = true

[rules]
semi = "error"
no-alert = 2
quotes = ["warn", { style = "single" }]
`))
	require.NoError(t, err)

	assert.Equal(t, config.SeverityWarn, cfg.UnusedDirectiveSeverity())
	assert.True(t, cfg.InlineConfigAllowed())
	assert.True(t, cfg.Markdown.Enabled)
	assert.Equal(t, []string{"dist/**"}, cfg.Ignore)
	assert.Equal(t, config.SeverityError, *cfg.Rules["semi"].Severity)
	assert.Equal(t, config.SeverityError, *cfg.Rules["no-alert"].Severity)
	assert.Equal(t, "single", cfg.Rules["quotes"].Options["style"])
}

func TestConfigToYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.SetRule("semi", config.SeverityError)
	cfg.Rules["quotes"] = config.RuleConfig{
		Severity: config.SeverityWarn.Ptr(),
		Options:  map[string]any{"style": "double"},
	}

	data, err := cfg.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "semi: error")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, config.SeverityError, *parsed.Rules["semi"].Severity)
	assert.Equal(t, "double", parsed.Rules["quotes"].Options["style"])
	assert.Equal(t, cfg.Extensions, parsed.Extensions)
}

func TestGenerateTemplateParses(t *testing.T) {
	t.Parallel()

	rules := []config.RuleInfo{
		{ID: "semi", Description: "Require semicolons", Type: "layout", Severity: config.SeverityError, CanFix: true},
		{ID: "no-alert", Description: "Disallow alert", Type: "problem", Severity: config.SeverityWarn},
	}

	for _, format := range []string{"yaml", "toml"} {
		for _, full := range []bool{false, true} {
			data, err := config.GenerateTemplate(config.TemplateOptions{Full: full, Format: format, Rules: rules})
			require.NoError(t, err)

			var cfg *config.Config
			if format == "toml" {
				cfg, err = config.FromTOML(data)
			} else {
				cfg, err = config.FromYAML(data)
			}
			require.NoError(t, err, "format=%s full=%v", format, full)
			assert.NotEmpty(t, cfg.Rules)
		}
	}

	_, err := config.GenerateTemplate(config.TemplateOptions{Format: "xml"})
	require.Error(t, err)
}
