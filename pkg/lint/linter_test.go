package lint

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/finding"
	"github.com/yaklabco/gojslint/pkg/parser/js"
	"github.com/yaklabco/gojslint/pkg/source"
)

func TestLinter_AnalyzeDisableEnableAll(t *testing.T) {
	t.Parallel()

	linter := NewLinter(js.New(), newTestRegistry(alertRule()))
	code := "/*disable-all*/\nalert('x');\n/*enable-all*/\nalert('x');"

	report, err := linter.Analyze(context.Background(), []byte(code), Options{
		Config: enable(config.SeverityWarn, "no-alert"),
	})
	require.NoError(t, err)

	require.Len(t, report.Messages, 1)
	assert.Equal(t, 4, report.Messages[0].Line)
	assert.Equal(t, config.SeverityWarn, report.Messages[0].Severity)

	require.Len(t, report.SuppressedMessages, 1)
	suppressed := report.SuppressedMessages[0]
	assert.Equal(t, 2, suppressed.Line)
	assert.Equal(t, []finding.Suppression{{Kind: finding.SuppressionKindDirective}}, suppressed.Suppressions)
}

func TestLinter_AnalyzeAndFixSemi(t *testing.T) {
	t.Parallel()

	linter := NewLinter(js.New(), newTestRegistry(semiRule()))
	report, err := linter.AnalyzeAndFix(context.Background(), []byte("var a"), Options{
		Config: enable(config.SeverityError, "semi"),
		Fix:    FixAll,
	})
	require.NoError(t, err)

	assert.True(t, report.Fixed)
	assert.Equal(t, "var a;", string(report.Output))
	assert.Empty(t, report.Messages)
	assert.Equal(t, 2, report.Passes)
	assert.False(t, report.Circular)
}

func TestLinter_AnalyzeAndFixWithoutFilter(t *testing.T) {
	t.Parallel()

	linter := NewLinter(js.New(), newTestRegistry(semiRule()))
	report, err := linter.AnalyzeAndFix(context.Background(), []byte("var a"), Options{
		Config: enable(config.SeverityError, "semi"),
	})
	require.NoError(t, err)

	assert.False(t, report.Fixed)
	assert.Equal(t, "var a", string(report.Output))
	require.Len(t, report.Messages, 1)
	assert.True(t, report.Messages[0].HasFix(), "unapplied fixes are still reported")
	assert.Equal(t, 1, report.Passes)
}

func TestLinter_PassBudget(t *testing.T) {
	t.Parallel()

	linter := NewLinter(js.New(), newTestRegistry(appendNewlineRule()))
	opts := Options{
		Config: enable(config.SeverityError, "always-newline"),
		Fix:    FixAll,
	}

	report, err := linter.AnalyzeAndFix(context.Background(), []byte("a();"), opts)
	require.NoError(t, err)

	assert.True(t, report.Fixed)
	assert.Equal(t, DefaultMaxFixPasses, report.Passes)
	assert.Equal(t, "a();"+strings.Repeat("\n", DefaultMaxFixPasses), string(report.Output))
	require.NotEmpty(t, report.Messages, "the always-fixable finding is still present")
	assert.False(t, report.Circular)

	opts.MaxFixPasses = 3
	report, err = linter.AnalyzeAndFix(context.Background(), []byte("a();"), opts)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Passes)
	assert.Equal(t, "a();\n\n\n", string(report.Output))
}

func TestLinter_CircularFixes(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(renameRule("foo-to-bar", "foo", "bar"), renameRule("bar-to-foo", "bar", "foo"))
	linter := NewLinter(js.New(), reg)

	report, err := linter.AnalyzeAndFix(context.Background(), []byte("x = foo;\n"), Options{
		Config: enable(config.SeverityError, "foo-to-bar", "bar-to-foo"),
		Fix:    FixAll,
	})
	require.NoError(t, err)

	assert.True(t, report.Circular)
	assert.True(t, report.Fixed)
	assert.Equal(t, 2, report.Passes)
	assert.Equal(t, "x = foo;\n", string(report.Output))
	require.Len(t, report.Messages, 1)
	assert.Equal(t, "foo-to-bar", report.Messages[0].RuleID)
}

func TestLinter_ParseErrorStopsFixing(t *testing.T) {
	t.Parallel()

	linter := NewLinter(js.New(), newTestRegistry(semiRule()))
	report, err := linter.AnalyzeAndFix(context.Background(), []byte("var = ;"), Options{
		Config: enable(config.SeverityError, "semi"),
		Fix:    FixAll,
	})
	require.NoError(t, err)

	assert.False(t, report.Fixed)
	assert.Equal(t, "var = ;", string(report.Output))
	require.Len(t, report.Messages, 1)
	assert.True(t, report.Messages[0].Fatal)
	assert.Empty(t, report.Messages[0].RuleID)
	assert.Equal(t, config.SeverityError, report.Messages[0].Severity)
}

func TestLinter_BOMRestored(t *testing.T) {
	t.Parallel()

	linter := NewLinter(js.New(), newTestRegistry(semiRule()))
	input := source.BOM + "var a"

	report, err := linter.AnalyzeAndFix(context.Background(), []byte(input), Options{
		Config: enable(config.SeverityError, "semi"),
		Fix:    FixAll,
	})
	require.NoError(t, err)
	assert.Equal(t, source.BOM+"var a;", string(report.Output))

	analyzed, err := linter.Analyze(context.Background(), []byte(source.BOM+"foo()"), Options{
		Config: enable(config.SeverityError, "semi"),
	})
	require.NoError(t, err)
	require.Len(t, analyzed.Messages, 1)
	assert.Equal(t, 5, analyzed.Messages[0].Column, "columns do not count the BOM")
}

func TestLinter_FixTypeFilter(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(semiRule(), renameRule("rename", "foo", "bar"))
	linter := NewLinter(js.New(), reg)

	report, err := linter.AnalyzeAndFix(context.Background(), []byte("foo()\n"), Options{
		Config: enable(config.SeverityError, "semi", "rename"),
		Fix:    FixTypeFilter(reg, []RuleType{TypeLayout}),
	})
	require.NoError(t, err)

	assert.Equal(t, "foo();\n", string(report.Output))
	require.Len(t, report.Messages, 1)
	assert.Equal(t, "rename", report.Messages[0].RuleID)
}

func TestLinter_FixUnusedDirective(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(alertRule(), semiRule())
	linter := NewLinter(js.New(), reg)

	cfg := enable(config.SeverityError, "no-alert", "semi")
	cfg.ReportUnusedDisableDirectives = config.SeverityError.Ptr()

	report, err := linter.AnalyzeAndFix(context.Background(), []byte("/* disable no-alert, semi */\nfoo()\n"), Options{
		Config: cfg,
		Fix:    FixTypeFilter(reg, []RuleType{TypeDirective}),
	})
	require.NoError(t, err)

	// semi is used, so only no-alert is spliced out of the list.
	assert.Equal(t, "/* disable semi */\nfoo()\n", string(report.Output))
	assert.Empty(t, report.Messages)
	require.Len(t, report.SuppressedMessages, 1)
	assert.Equal(t, "semi", report.SuppressedMessages[0].RuleID)
}

func TestLinter_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	linter := NewLinter(js.New(), newTestRegistry(semiRule()))
	_, err := linter.AnalyzeAndFix(ctx, []byte("var a"), Options{Fix: FixAll})
	require.ErrorIs(t, err, context.Canceled)
}

func TestLinter_ConcurrentUse(t *testing.T) {
	t.Parallel()

	linter := NewLinter(js.New(), newTestRegistry(semiRule(), alertRule()))
	opts := Options{Config: enable(config.SeverityError, "semi", "no-alert"), Fix: FixAll}

	var wg sync.WaitGroup
	outputs := make([]string, 16)
	for i := range outputs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			report, err := linter.AnalyzeAndFix(context.Background(), []byte("alert(1)\nvar b"), opts)
			if err == nil {
				outputs[i] = string(report.Output)
			}
		}()
	}
	wg.Wait()

	for _, out := range outputs {
		assert.Equal(t, "alert(1);\nvar b;", out)
	}
}
