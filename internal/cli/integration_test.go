package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojslint/internal/cli"
	"github.com/yaklabco/gojslint/pkg/reporter"
)

// missingSemicolon triggers semi on line 1 and no-alert on line 2.
const missingSemicolon = "var a = 1\nalert(a);\n"

type execResult struct {
	stdout string
	stderr string
	err    error
}

// execute runs the root command with config lookup disabled, so that files
// around the test binary do not leak into the run.
func execute(t *testing.T, stdin string, args ...string) execResult {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))

	if len(args) > 0 && args[0] == "lint" {
		args = append([]string{"lint", "--no-config-lookup", "--color", "never"}, args[1:]...)
	}
	cmd.SetArgs(args)

	err := cmd.Execute()
	return execResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeJS(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func decodeJSON(t *testing.T, out string) []reporter.JSONResult {
	t.Helper()
	var records []reporter.JSONResult
	require.NoError(t, json.Unmarshal([]byte(out), &records), out)
	return records
}

func TestIntegration_LintText(t *testing.T) {
	t.Parallel()

	path := writeJS(t, "app.js", missingSemicolon)

	res := execute(t, "", "lint", "--rule", "semi: error", "--rule", "no-alert: warn", path)

	require.ErrorIs(t, res.err, cli.ErrLintIssuesFound)
	assert.Equal(t, cli.ExitLintIssues, cli.ExitCode(res.err))
	assert.Contains(t, res.stdout, "Missing semicolon.")
	assert.Contains(t, res.stdout, "semi")
	assert.Contains(t, res.stdout, "Unexpected alert.")
}

func TestIntegration_CleanFile(t *testing.T) {
	t.Parallel()

	path := writeJS(t, "clean.js", "var a = 1;\n")

	res := execute(t, "", "lint", "--rule", "semi: error", path)
	require.NoError(t, res.err)
}

func TestIntegration_JSONFormat(t *testing.T) {
	t.Parallel()

	path := writeJS(t, "app.js", missingSemicolon)

	res := execute(t, "", "lint", "--format", "json", "--rule", "semi: error", path)
	require.ErrorIs(t, res.err, cli.ErrLintIssuesFound)

	records := decodeJSON(t, res.stdout)
	require.Len(t, records, 1)
	assert.Equal(t, path, records[0].FilePath)
	assert.Equal(t, 1, records[0].ErrorCount)
	assert.Equal(t, 1, records[0].FixableErrorCount)
	require.Len(t, records[0].Messages, 1)
	assert.Equal(t, "semi", records[0].Messages[0].RuleID)
	assert.Nil(t, records[0].Output)
}

func TestIntegration_Fix(t *testing.T) {
	t.Parallel()

	path := writeJS(t, "app.js", "var a = 1\nvar b = 2\n")

	res := execute(t, "", "lint", "--fix", "--rule", "semi: error", path)
	require.NoError(t, res.err)

	fixed, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "var a = 1;\nvar b = 2;\n", string(fixed))
}

func TestIntegration_FixDryRunLeavesFile(t *testing.T) {
	t.Parallel()

	path := writeJS(t, "app.js", "var a = 1\n")

	res := execute(t, "", "lint", "--fix-dry-run", "--format", "json", "--rule", "semi: error", path)
	require.NoError(t, res.err)

	records := decodeJSON(t, res.stdout)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].Output)
	assert.Equal(t, "var a = 1;\n", *records[0].Output)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "var a = 1\n", string(content))
}

func TestIntegration_FixTypeFilter(t *testing.T) {
	t.Parallel()

	path := writeJS(t, "app.js", "var a = 1\n")

	res := execute(t, "", "lint", "--fix", "--fix-type", "problem",
		"--rule", "semi: error", "--rule", "no-var: error", path)
	require.ErrorIs(t, res.err, cli.ErrLintIssuesFound)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "var a = 1\n", string(content), "layout and suggestion fixes are filtered out")
}

func TestIntegration_RuleOptions(t *testing.T) {
	t.Parallel()

	path := writeJS(t, "app.js", "var a = 1;\n")

	res := execute(t, "", "lint", "--rule", "semi: [error, {style: never}]", path)
	require.ErrorIs(t, res.err, cli.ErrLintIssuesFound)
	assert.Contains(t, res.stdout, "Extra semicolon.")
}

func TestIntegration_Quiet(t *testing.T) {
	t.Parallel()

	path := writeJS(t, "app.js", "alert(1);\n")

	res := execute(t, "", "lint", "--quiet", "--rule", "no-alert: warn", path)
	require.NoError(t, res.err)
	assert.NotContains(t, res.stdout, "Unexpected alert.")
}

func TestIntegration_MaxWarnings(t *testing.T) {
	t.Parallel()

	path := writeJS(t, "app.js", "alert(1);\n")

	res := execute(t, "", "lint", "--max-warnings", "0", "--rule", "no-alert: warn", path)
	require.ErrorIs(t, res.err, cli.ErrLintIssuesFound)
	assert.Contains(t, res.stderr, "too many warnings (maximum: 0)")

	res = execute(t, "", "lint", "--max-warnings", "1", "--rule", "no-alert: warn", path)
	require.NoError(t, res.err)
}

func TestIntegration_DirectiveSuppression(t *testing.T) {
	t.Parallel()

	path := writeJS(t, "app.js", "alert(1); // disable-line no-alert\n")

	res := execute(t, "", "lint", "--rule", "no-alert: error", path)
	require.NoError(t, res.err)

	res = execute(t, "", "lint", "--no-inline-config", "--rule", "no-alert: error", path)
	require.ErrorIs(t, res.err, cli.ErrLintIssuesFound)
}

func TestIntegration_UnusedDirective(t *testing.T) {
	t.Parallel()

	path := writeJS(t, "app.js", "var a = 1; // disable-line no-alert\n")

	res := execute(t, "", "lint", "--format", "json",
		"--report-unused-disable-directives", "error", "--rule", "no-alert: error", path)
	require.ErrorIs(t, res.err, cli.ErrLintIssuesFound)

	records := decodeJSON(t, res.stdout)
	require.Len(t, records, 1)
	require.Len(t, records[0].Messages, 1)
	assert.Empty(t, records[0].Messages[0].RuleID)
	assert.Contains(t, records[0].Messages[0].Message, "Unused")
}

func TestIntegration_Stdin(t *testing.T) {
	t.Parallel()

	res := execute(t, missingSemicolon, "lint", "--stdin", "--stdin-filename", "app.js",
		"--fix", "--format", "json", "--rule", "semi: error")
	require.NoError(t, res.err)

	records := decodeJSON(t, res.stdout)
	require.Len(t, records, 1)
	assert.Equal(t, "app.js", records[0].FilePath)
	require.NotNil(t, records[0].Output)
	assert.Equal(t, "var a = 1;\nalert(a);\n", *records[0].Output)
}

func TestIntegration_Markdown(t *testing.T) {
	t.Parallel()

	path := writeJS(t, "README.md", "# Demo\n\n```js\nvar a = 1\n```\n")

	res := execute(t, "", "lint", "--format", "json", "--rule", "semi: error", path)
	require.NoError(t, res.err, "markdown is skipped unless enabled")

	res = execute(t, "", "lint", "--markdown", "--format", "json", "--rule", "semi: error", path)
	require.ErrorIs(t, res.err, cli.ErrLintIssuesFound)

	records := decodeJSON(t, res.stdout)
	require.Len(t, records, 1)
	require.Len(t, records[0].Messages, 1)
	assert.Equal(t, 4, records[0].Messages[0].Line)
}

func TestIntegration_ConfigFile(t *testing.T) {
	t.Parallel()

	path := writeJS(t, "app.js", missingSemicolon)
	cfgPath := writeJS(t, ".gojslint.yml", "rules:\n  semi: error\n  no-alert: off\n")

	res := execute(t, "", "lint", "--config", cfgPath, "--format", "json", path)
	require.ErrorIs(t, res.err, cli.ErrLintIssuesFound)

	records := decodeJSON(t, res.stdout)
	require.Len(t, records[0].Messages, 1)
	assert.Equal(t, "semi", records[0].Messages[0].RuleID)
}

func TestIntegration_UsageErrors(t *testing.T) {
	t.Parallel()

	path := writeJS(t, "app.js", "var a = 1;\n")

	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown format", args: []string{"lint", "--format", "xml", path}},
		{name: "bad severity", args: []string{"lint", "--report-unused-disable-directives", "loud", path}},
		{name: "bad rule flag", args: []string{"lint", "--rule", "semi: [", path}},
		{name: "stdin filename without stdin", args: []string{"lint", "--stdin-filename", "a.js", path}},
		{name: "unknown flag", args: []string{"lint", "--no-such-flag", path}},
		{name: "bad summary sort", args: []string{"lint", "--format", "summary", "--summary-sort", "size", path}},
		{name: "bad summary order", args: []string{"lint", "--summary-order", "columns", path}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := execute(t, "", tt.args...)
			require.Error(t, res.err)
			assert.Equal(t, cli.ExitUsageError, cli.ExitCode(res.err), res.err.Error())
		})
	}
}

func TestIntegration_MissingPath(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "lint", filepath.Join(t.TempDir(), "missing.js"))
	require.Error(t, res.err)
	assert.Equal(t, cli.ExitInternalError, cli.ExitCode(res.err))
}

func TestIntegration_RulesCommand(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "rules", "--format", "json")
	require.NoError(t, res.err)

	var rules []map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &rules))

	byID := make(map[string]map[string]any, len(rules))
	for _, rule := range rules {
		byID[rule["id"].(string)] = rule
	}
	require.Contains(t, byID, "semi")
	assert.Equal(t, "layout", byID["semi"]["type"])
	assert.Equal(t, true, byID["semi"]["fixable"])
	assert.Equal(t, true, byID["no-debugger"]["enabled"])
	assert.Equal(t, []any{"strict-equality"}, byID["eqeqeq"]["aliases"])

	res = execute(t, "", "rules")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "no-trailing-spaces")
	assert.Contains(t, res.stdout, "aliases=no-trailing-whitespace")

	res = execute(t, "", "rules", "--packs")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "recommended")
	assert.Contains(t, res.stdout, "layout")
}

func TestIntegration_InitAndLint(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, ".gojslint.yml")

	res := execute(t, "", "init", "--pack", "layout", "--output", cfgPath)
	require.NoError(t, res.err)

	res = execute(t, "", "init", "--pack", "layout", "--output", cfgPath)
	require.Error(t, res.err, "existing file needs --force")

	jsPath := writeJS(t, "app.js", "var a = 1\n")
	res = execute(t, "", "lint", "--config", cfgPath, "--format", "json", jsPath)
	require.NoError(t, res.err, "layout pack rules are warnings")

	records := decodeJSON(t, res.stdout)
	require.Len(t, records[0].Messages, 1)
	assert.Equal(t, "semi", records[0].Messages[0].RuleID)
	assert.Equal(t, 1, records[0].WarningCount)
}

func TestIntegration_InitTemplates(t *testing.T) {
	t.Parallel()

	for _, format := range []string{"yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			t.Parallel()
			out := filepath.Join(t.TempDir(), "config."+format)

			res := execute(t, "", "init", "--full", "--format", format, "--output", out)
			require.NoError(t, res.err)

			content, err := os.ReadFile(out)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(content), "# gojslint configuration"))
		})
	}

	res := execute(t, "", "init", "--format", "json", "--output", filepath.Join(t.TempDir(), "x"))
	require.Error(t, res.err)
	assert.Equal(t, cli.ExitUsageError, cli.ExitCode(res.err))
}

func TestIntegration_Migrate(t *testing.T) {
	t.Parallel()

	eslintrc := writeJS(t, ".eslintrc.json", `{
		"extends": "eslint:recommended",
		"rules": {"semi": ["error", "never"], "no-undef": "error"}
	}`)
	out := filepath.Join(t.TempDir(), ".gojslint.yml")

	res := execute(t, "", "migrate", eslintrc, "--output", out)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "no-undef")

	jsPath := writeJS(t, "app.js", "var a = 1;\n")
	res = execute(t, "", "lint", "--config", out, "--format", "json", jsPath)
	require.ErrorIs(t, res.err, cli.ErrLintIssuesFound)

	records := decodeJSON(t, res.stdout)
	require.Len(t, records[0].Messages, 1)
	assert.Equal(t, "Extra semicolon.", records[0].Messages[0].Message)

	res = execute(t, "", "migrate", filepath.Join(t.TempDir(), "eslint.config.js"))
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "cannot be converted automatically")
}
