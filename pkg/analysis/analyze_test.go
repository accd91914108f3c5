package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/finding"
	"github.com/yaklabco/gojslint/pkg/fix"
	"github.com/yaklabco/gojslint/pkg/lint"
	"github.com/yaklabco/gojslint/pkg/runner"
)

func outcome(path string, messages ...finding.Finding) runner.FileOutcome {
	return runner.FileOutcome{
		Path: path,
		Result: &lint.PipelineResult{
			Path:      path,
			FixReport: &lint.FixReport{Messages: messages},
		},
	}
}

func fixable(f finding.Finding) finding.Finding {
	edit := fix.Insert(0, ";")
	f.Fix = &edit
	return f
}

func TestAnalyze_EmptyResult(t *testing.T) {
	t.Parallel()

	report := Analyze(&runner.Result{}, DefaultOptions())

	require.NotNil(t, report)
	assert.Equal(t, ReportVersion, report.Version)
	assert.Equal(t, 0, report.Totals.Problems)
	assert.Empty(t, report.Findings)
	assert.Empty(t, report.ByFile)
	assert.Empty(t, report.ByRule)
}

func TestAnalyze_NilResult(t *testing.T) {
	t.Parallel()

	report := Analyze(nil, DefaultOptions())

	require.NotNil(t, report)
	assert.False(t, report.Totals.HasIssues())
}

func TestAnalyze_CountsTotals(t *testing.T) {
	t.Parallel()

	withSuppressed := outcome("b.js", finding.Finding{RuleID: "no-alert", Severity: config.SeverityWarn})
	withSuppressed.Result.SuppressedMessages = []finding.Finding{{RuleID: "semi", Severity: config.SeverityError}}

	result := &runner.Result{Files: []runner.FileOutcome{
		outcome("a.js",
			fixable(finding.Finding{RuleID: "semi", Severity: config.SeverityError}),
			finding.Finding{RuleID: "semi", Severity: config.SeverityError},
			finding.Finding{Severity: config.SeverityError, Fatal: true, Message: "Parsing error: Unexpected token"},
		),
		withSuppressed,
		{Path: "broken.js", Error: errors.New("permission denied")},
	}}

	report := Analyze(result, DefaultOptions())

	assert.Equal(t, Totals{
		Files:           3,
		FilesWithIssues: 2,
		FilesErrored:    1,
		Problems:        4,
		Errors:          3,
		Warnings:        1,
		Fatal:           1,
		Fixable:         1,
		Suppressed:      1,
	}, report.Totals)
	require.Len(t, report.Findings, 4)
	assert.Equal(t, "a.js", report.Findings[0].FilePath)
	assert.Equal(t, "b.js", report.Findings[3].FilePath)
}

func TestAnalyze_GroupsByRule(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{
		outcome("file1.js",
			finding.Finding{RuleID: "no-alert", Severity: config.SeverityError},
			fixable(finding.Finding{RuleID: "semi", Severity: config.SeverityWarn}),
		),
		outcome("file2.js",
			fixable(finding.Finding{RuleID: "semi", Severity: config.SeverityWarn}),
			finding.Finding{Severity: config.SeverityWarn, Message: "Unused eslint-disable directive"},
		),
	}}

	report := Analyze(result, DefaultOptions())

	require.Len(t, report.ByRule, 3)

	assert.Equal(t, "semi", report.ByRule[0].RuleID)
	assert.Equal(t, 2, report.ByRule[0].Problems)
	assert.True(t, report.ByRule[0].Fixable)
	assert.Equal(t, []string{"file1.js", "file2.js"}, report.ByRule[0].Files)

	// Ties on count fall back to the name.
	assert.Equal(t, NoRule, report.ByRule[1].RuleID)
	assert.Equal(t, "no-alert", report.ByRule[2].RuleID)
	assert.False(t, report.ByRule[2].Fixable)
}

func TestAnalyze_GroupsByFile(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{
		outcome("a.js", finding.Finding{RuleID: "semi", Severity: config.SeverityError}),
		outcome("b.js",
			finding.Finding{RuleID: "semi", Severity: config.SeverityError},
			fixable(finding.Finding{RuleID: "quotes", Severity: config.SeverityWarn}),
			finding.Finding{RuleID: "no-var", Severity: config.SeverityWarn},
		),
		outcome("clean.js"),
	}}

	report := Analyze(result, DefaultOptions())

	require.Len(t, report.ByFile, 2)

	assert.Equal(t, FileAnalysis{
		Path:     "b.js",
		Problems: 3,
		Errors:   1,
		Warnings: 2,
		Fixable:  1,
		Rules:    []string{"no-var", "quotes", "semi"},
	}, report.ByFile[0])
	assert.Equal(t, "a.js", report.ByFile[1].Path)
}

func TestAnalyze_Sorting(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{
		outcome("z.js", finding.Finding{RuleID: "semi", Severity: config.SeverityError}),
		outcome("a.js",
			finding.Finding{RuleID: "semi", Severity: config.SeverityWarn},
			finding.Finding{RuleID: "semi", Severity: config.SeverityWarn},
		),
		outcome("m.js", finding.Finding{RuleID: "semi", Severity: config.SeverityWarn}),
	}}

	tests := []struct {
		name   string
		sortBy SortField
		desc   bool
		want   []string
	}{
		{name: "alpha", sortBy: SortByAlpha, want: []string{"a.js", "m.js", "z.js"}},
		{name: "count desc", sortBy: SortByCount, desc: true, want: []string{"a.js", "m.js", "z.js"}},
		{name: "count asc", sortBy: SortByCount, want: []string{"m.js", "z.js", "a.js"}},
		{name: "severity", sortBy: SortBySeverity, want: []string{"z.js", "a.js", "m.js"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := DefaultOptions()
			opts.SortBy = tt.sortBy
			opts.SortDesc = tt.desc

			report := Analyze(result, opts)

			paths := make([]string, 0, len(report.ByFile))
			for _, fa := range report.ByFile {
				paths = append(paths, fa.Path)
			}
			assert.Equal(t, tt.want, paths)
		})
	}
}

func TestAnalyze_RelativePaths(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{
		outcome("/work/src/app.js", finding.Finding{RuleID: "semi", Severity: config.SeverityError}),
	}}

	opts := DefaultOptions()
	opts.WorkingDir = "/work"

	report := Analyze(result, opts)

	require.Len(t, report.Findings, 1)
	assert.Equal(t, "src/app.js", report.Findings[0].FilePath)
	assert.Equal(t, "src/app.js", report.ByFile[0].Path)
}

func TestAnalyze_ExcludeViews(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{
		outcome("file.js", finding.Finding{RuleID: "semi", Severity: config.SeverityError}),
	}}

	opts := Options{
		IncludeFindings: false,
		IncludeByFile:   false,
		IncludeByRule:   true,
		SortBy:          SortByCount,
		SortDesc:        true,
	}

	report := Analyze(result, opts)

	assert.Empty(t, report.Findings, "findings should be excluded")
	assert.Empty(t, report.ByFile, "byFile should be excluded")
	assert.NotEmpty(t, report.ByRule, "byRule should be included")
	assert.Equal(t, 1, report.Totals.Problems, "totals always computed")
}
