package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/lint"
	"github.com/yaklabco/gojslint/pkg/lint/rules"
)

func testRegistry() *lint.Registry {
	registry := lint.NewRegistry()
	rules.RegisterAll(registry)
	rules.RegisterLegacyAliases(registry)
	return registry
}

// isolated returns options that only see files under dir.
func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
		IgnoreESLint:       true,
		NonInteractive:     true,
		Registry:           testRegistry(),
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	cfg := result.Config
	assert.Equal(t, config.DefaultExtensions(), cfg.Extensions)
	assert.True(t, cfg.InlineConfigAllowed())
	assert.Equal(t, config.SeverityOff, cfg.UnusedDirectiveSeverity())
	assert.Equal(t, -1, cfg.MaxWarnings)
	assert.Empty(t, result.LoadedFrom)
}

func TestLoad_ProjectConfigYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gojslint.yml"), `
allow_inline_config: false
report_unused_disable_directives: warn
directive_prefix: eslint-
rules:
  semi: [error, {style: never}]
  no-alert: off
  eqeqeq:
    severity: warn
    auto_fix: false
`)

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)

	cfg := result.Config
	assert.False(t, cfg.InlineConfigAllowed())
	assert.Equal(t, config.SeverityWarn, cfg.UnusedDirectiveSeverity())
	assert.Equal(t, "eslint-", cfg.DirectivePrefix)

	require.Contains(t, cfg.Rules, "semi")
	assert.Equal(t, config.SeverityError, *cfg.Rules["semi"].Severity)
	assert.Equal(t, "never", cfg.Rules["semi"].Options["style"])
	assert.Equal(t, config.SeverityOff, *cfg.Rules["no-alert"].Severity)
	require.NotNil(t, cfg.Rules["eqeqeq"].AutoFix)
	assert.False(t, *cfg.Rules["eqeqeq"].AutoFix)

	assert.Equal(t, []string{filepath.Join(dir, ".gojslint.yml")}, result.LoadedFrom)
	assert.Equal(t, -1, cfg.MaxWarnings, "files never set max warnings")
}

func TestLoad_ProjectConfigTOML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gojslint.toml"), `
report_unused_disable_directives = "error"
ignore = ["dist/**"]

[rules]
semi = ["error", { style = "always" }]
quotes = "warn"
`)

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, config.SeverityError, cfg.UnusedDirectiveSeverity())
	assert.Equal(t, []string{"dist/**"}, cfg.Ignore)
	assert.Equal(t, "always", cfg.Rules["semi"].Options["style"])
	assert.Equal(t, config.SeverityWarn, *cfg.Rules["quotes"].Severity)
}

func TestLoad_SearchesUpward(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gojslint.yml"), "rules:\n  semi: warn\n")
	nested := filepath.Join(root, "src", "lib")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := Load(context.Background(), isolated(nested))
	require.NoError(t, err)
	assert.Equal(t, config.SeverityWarn, *result.Config.Rules["semi"].Severity)
}

func TestLoad_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gojslint.yml"), "rules:\n  semi: warn\n")
	repo := filepath.Join(root, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	result, err := Load(context.Background(), isolated(repo))
	require.NoError(t, err)
	assert.Empty(t, result.LoadedFrom)
}

func TestLoad_Precedence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gojslint.yml"), "rules:\n  semi: warn\n  quotes: warn\n")
	explicit := filepath.Join(dir, "ci.yml")
	writeFile(t, explicit, "rules:\n  quotes: error\n  no-var: error\n")

	opts := isolated(dir)
	opts.ExplicitPath = explicit
	opts.CLIConfig = &config.Config{
		MaxWarnings: 0,
		Rules:       map[string]config.RuleConfig{"no-var": {Severity: config.SeverityOff.Ptr()}},
	}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	rulesCfg := result.Config.Rules
	assert.Equal(t, config.SeverityWarn, *rulesCfg["semi"].Severity, "project only")
	assert.Equal(t, config.SeverityError, *rulesCfg["quotes"].Severity, "explicit beats project")
	assert.Equal(t, config.SeverityOff, *rulesCfg["no-var"].Severity, "flags beat files")
	assert.Equal(t, 0, result.Config.MaxWarnings)
	assert.Len(t, result.LoadedFrom, 2)
}

func TestLoad_NormalizesAliases(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gojslint.yml"), `
rules:
  no-trailing-whitespace: error
  strict-equality: warn
  eqeqeq: error
`)

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)

	rulesCfg := result.Config.Rules
	assert.NotContains(t, rulesCfg, "no-trailing-whitespace")
	assert.Equal(t, config.SeverityError, *rulesCfg["no-trailing-spaces"].Severity)
	assert.Equal(t, config.SeverityError, *rulesCfg["eqeqeq"].Severity, "canonical key wins")
	assert.Contains(t, strings.Join(result.Warnings, "\n"), `"strict-equality" and "eqeqeq"`)
}

func TestLoad_UnknownRuleWarns(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gojslint.yml"), "rules:\n  no-such-rule: error\n")

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], `unknown rule "no-such-rule"`)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{name: "bad severity", file: ".gojslint.yml", content: "rules:\n  semi: loud\n", wantErr: "invalid severity"},
		{name: "bad yaml", file: ".gojslint.yml", content: "rules: [\n", wantErr: "parse yaml"},
		{name: "bad toml", file: ".gojslint.toml", content: "rules = = 1\n", wantErr: "parse toml"},
		{name: "bad backup mode", file: ".gojslint.yml", content: "backups:\n  mode: cloud\n", wantErr: "invalid backup mode"},
		{name: "bad extension", file: ".gojslint.yml", content: "extensions: [js]\n", wantErr: "invalid extension"},
		{name: "bad glob", file: ".gojslint.yml", content: "ignore: [\"[a-\"]\n", wantErr: "invalid glob pattern"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, tt.file), tt.content)

			_, err := Load(context.Background(), isolated(dir))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_ValidationErrorType(t *testing.T) {
	t.Parallel()

	opts := isolated(t.TempDir())
	opts.CLIConfig = &config.Config{Format: "xml", MaxWarnings: -1}

	_, err := Load(context.Background(), opts)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "format", validationErr.Field)
}

func TestLoad_ESLintMigration(t *testing.T) {
	t.Parallel()

	t.Run("non-interactive warns", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ".eslintrc.json"), `{"rules": {"semi": "error"}}`)

		opts := isolated(dir)
		opts.IgnoreESLint = false

		result, err := Load(context.Background(), opts)
		require.NoError(t, err)
		assert.False(t, result.MigrationPerformed)
		assert.Contains(t, strings.Join(result.Warnings, "\n"), "run 'gojslint migrate'")
	})

	t.Run("accepted prompt writes config", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ".eslintrc.json"), `{"rules": {"semi": ["error", "never"]}}`)

		opts := isolated(dir)
		opts.IgnoreESLint = false
		opts.Prompt = func(string) (bool, error) { return true, nil }

		result, err := Load(context.Background(), opts)
		require.NoError(t, err)
		assert.True(t, result.MigrationPerformed)
		assert.FileExists(t, filepath.Join(dir, DefaultProjectConfig))
		assert.Equal(t, "never", result.Config.Rules["semi"].Options["style"])
	})

	t.Run("prompt error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ".eslintrc.json"), `{}`)

		opts := isolated(dir)
		opts.IgnoreESLint = false
		opts.Prompt = func(string) (bool, error) { return false, errors.New("closed") }

		_, err := Load(context.Background(), opts)
		require.Error(t, err)
	})

	t.Run("javascript config cannot migrate", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "eslint.config.js"), "export default [];\n")

		opts := isolated(dir)
		opts.IgnoreESLint = false

		result, err := Load(context.Background(), opts)
		require.NoError(t, err)
		assert.Contains(t, strings.Join(result.Warnings, "\n"), "cannot be converted automatically")
	})
}

func TestLoad_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(t.TempDir()))
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoadFromEnv(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"GOJSLINT_FIX":                              "true",
		"GOJSLINT_JOBS":                             "4",
		"GOJSLINT_FORMAT":                           "json",
		"GOJSLINT_IGNORE":                           "dist/**, build/**",
		"GOJSLINT_REPORT_UNUSED_DISABLE_DIRECTIVES": "error",
		"GOJSLINT_CACHE":                            "1",
		"GOJSLINT_MAX_WARNINGS":                     "10",
	}

	cfg := config.NewConfig()
	require.NoError(t, loadFromEnv(cfg, func(key string) string { return env[key] }))

	assert.True(t, cfg.Fix)
	assert.Equal(t, 4, cfg.Jobs)
	assert.Equal(t, config.FormatJSON, cfg.Format)
	assert.Equal(t, []string{"dist/**", "build/**"}, cfg.Ignore)
	assert.Equal(t, config.SeverityError, cfg.UnusedDirectiveSeverity())
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 10, cfg.MaxWarnings)
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "bool", key: "GOJSLINT_FIX", val: "maybe"},
		{name: "int", key: "GOJSLINT_JOBS", val: "many"},
		{name: "severity", key: "GOJSLINT_REPORT_UNUSED_DISABLE_DIRECTIVES", val: "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := loadFromEnv(config.NewConfig(), func(key string) string {
				if key == tt.key {
					return tt.val
				}
				return ""
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestGetEnvVarName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "GOJSLINT_CACHE_LOCATION", GetEnvVarName("cache.location"))
	assert.Empty(t, GetEnvVarName("nope"))
	assert.Len(t, ListEnvVars(), len(envMappings))
}

func TestMerge(t *testing.T) {
	t.Parallel()

	allow := false
	base := config.NewConfig()
	base.Rules["semi"] = config.RuleConfig{
		Severity: config.SeverityWarn.Ptr(),
		Options:  map[string]any{"style": "never"},
	}

	override := &config.Config{
		MaxWarnings:       -1,
		AllowInlineConfig: &allow,
		Ignore:            []string{"vendor/**"},
		Rules: map[string]config.RuleConfig{
			"semi":   {Severity: config.SeverityError.Ptr()},
			"quotes": {Severity: config.SeverityWarn.Ptr()},
		},
	}

	merged := MergeAll(base, override)

	assert.False(t, merged.InlineConfigAllowed())
	assert.Equal(t, []string{"vendor/**"}, merged.Ignore)
	assert.Equal(t, config.DefaultExtensions(), merged.Extensions, "nil slices keep the base")
	assert.Equal(t, -1, merged.MaxWarnings)
	assert.Equal(t, config.SeverityError, *merged.Rules["semi"].Severity)
	assert.Equal(t, "never", merged.Rules["semi"].Options["style"], "options survive a severity override")
	assert.Contains(t, merged.Rules, "quotes")
	assert.Nil(t, MergeAll())
}

func TestPromptYesNo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{input: "\n", want: true},
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: "n\n", want: false},
		{input: "nope\n", want: false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			t.Parallel()

			var out strings.Builder
			got, err := promptYesNo(strings.NewReader(tt.input), &out, "Convert?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Convert? [Y/n] ", out.String())
		})
	}
}
