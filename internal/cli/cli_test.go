package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojslint/internal/cli"
	"github.com/yaklabco/gojslint/internal/configloader"
	"github.com/yaklabco/gojslint/pkg/finding"
	"github.com/yaklabco/gojslint/pkg/runner"
)

var testInfo = cli.BuildInfo{Version: "test-version", Commit: "test-commit", Date: "test-date"}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	require.NotNil(t, cmd)

	assert.Equal(t, "gojslint", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)

	for _, name := range []string{"lint", "rules", "init", "migrate", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		if !assert.NoError(t, err, "subcommand %q", name) {
			continue
		}
		assert.Equal(t, name, subCmd.Name())
	}
}

func TestLintCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	lintCmd, _, err := cmd.Find([]string{"lint"})
	require.NoError(t, err)

	expected := map[string]string{
		"fix":                              "false",
		"fix-dry-run":                      "false",
		"fix-type":                         "[]",
		"format":                           "text",
		"jobs":                             "0",
		"quiet":                            "false",
		"max-warnings":                     "-1",
		"no-inline-config":                 "false",
		"report-unused-disable-directives": "",
		"rule":                             "[]",
		"cache":                            "false",
		"stdin":                            "false",
		"stdin-filename":                   "",
		"markdown":                         "false",
		"summary-order":                    "rules",
		"summary-sort":                     "count",
	}
	for name, def := range expected {
		flag := lintCmd.Flags().Lookup(name)
		if !assert.NotNil(t, flag, "flag --%s", name) {
			continue
		}
		assert.Equal(t, def, flag.DefValue, "default of --%s", name)
	}

	assert.NotNil(t, lintCmd.InheritedFlags().Lookup("config"))
}

func TestRootHelp(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--help", "--color", "never"})

	require.NoError(t, cmd.Execute())

	out := stdout.String()
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "Commands:")
	assert.Contains(t, out, "migrate")
	assert.Contains(t, out, "Exit Codes:")
	assert.Contains(t, out, "--debug")
}

func TestLintHelp_NoExitCodes(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"lint", "--help"})

	require.NoError(t, cmd.Execute())

	out := stdout.String()
	assert.Contains(t, out, "--max-warnings")
	assert.Contains(t, out, "Global Flags:")
	assert.NotContains(t, out, "Exit Codes:")
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "version=test-version")
	assert.Contains(t, stdout.String(), "commit=test-commit")
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	result := func(stats runner.Stats) *runner.Result {
		return &runner.Result{Stats: stats}
	}

	tests := []struct {
		name        string
		result      *runner.Result
		maxWarnings int
		want        int
	}{
		{name: "nil result", result: nil, maxWarnings: -1, want: cli.ExitSuccess},
		{name: "clean", result: result(runner.Stats{}), maxWarnings: -1, want: cli.ExitSuccess},
		{
			name:        "errors",
			result:      result(runner.Stats{Findings: finding.Counts{Errors: 1}}),
			maxWarnings: -1,
			want:        cli.ExitLintIssues,
		},
		{
			name:        "warnings unlimited",
			result:      result(runner.Stats{Findings: finding.Counts{Warnings: 5}}),
			maxWarnings: -1,
			want:        cli.ExitSuccess,
		},
		{
			name:        "warnings at limit",
			result:      result(runner.Stats{Findings: finding.Counts{Warnings: 2}}),
			maxWarnings: 2,
			want:        cli.ExitSuccess,
		},
		{
			name:        "warnings over limit",
			result:      result(runner.Stats{Findings: finding.Counts{Warnings: 3}}),
			maxWarnings: 2,
			want:        cli.ExitLintIssues,
		},
		{
			name:        "file errors win",
			result:      result(runner.Stats{FilesErrored: 1, Findings: finding.Counts{Errors: 1}}),
			maxWarnings: -1,
			want:        cli.ExitInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCodeFromResult(tt.result, tt.maxWarnings))
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: cli.ExitSuccess},
		{name: "lint issues", err: cli.ErrLintIssuesFound, want: cli.ExitLintIssues},
		{name: "usage", err: fmt.Errorf("%w: bad flag", cli.ErrUsage), want: cli.ExitUsageError},
		{
			name: "validation error",
			err:  fmt.Errorf("load: %w", &configloader.ValidationError{Field: "jobs", Message: "bad"}),
			want: cli.ExitUsageError,
		},
		{name: "files failed", err: cli.ErrFilesFailed, want: cli.ExitInternalError},
		{name: "other", err: errors.New("boom"), want: cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}
