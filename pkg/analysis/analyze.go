package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/finding"
	"github.com/yaklabco/gojslint/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// makeRelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func makeRelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

// ruleLabel returns the rule a finding is grouped under.
func ruleLabel(f finding.Finding) string {
	if f.RuleID == "" {
		return NoRule
	}
	return f.RuleID
}

// analysisContext holds temporary state during analysis.
type analysisContext struct {
	ruleMap   map[string]*RuleAnalysis
	fileMap   map[string]*FileAnalysis
	ruleFiles map[string]map[string]bool
	fileRules map[string]map[string]bool
}

func newAnalysisContext() *analysisContext {
	return &analysisContext{
		ruleMap:   make(map[string]*RuleAnalysis),
		fileMap:   make(map[string]*FileAnalysis),
		ruleFiles: make(map[string]map[string]bool),
		fileRules: make(map[string]map[string]bool),
	}
}

func (ctx *analysisContext) getOrCreateFileAnalysis(path string) *FileAnalysis {
	if _, ok := ctx.fileMap[path]; !ok {
		ctx.fileMap[path] = &FileAnalysis{Path: path}
		ctx.fileRules[path] = make(map[string]bool)
	}
	return ctx.fileMap[path]
}

func (ctx *analysisContext) getOrCreateRuleAnalysis(ruleID string) *RuleAnalysis {
	if _, ok := ctx.ruleMap[ruleID]; !ok {
		ctx.ruleMap[ruleID] = &RuleAnalysis{RuleID: ruleID}
		ctx.ruleFiles[ruleID] = make(map[string]bool)
	}
	return ctx.ruleMap[ruleID]
}

// add records one finding of the file at path.
func (ctx *analysisContext) add(path string, f finding.Finding, totals *Totals) {
	rule := ruleLabel(f)
	fa := ctx.getOrCreateFileAnalysis(path)
	ra := ctx.getOrCreateRuleAnalysis(rule)

	totals.Problems++
	fa.Problems++
	ra.Problems++

	switch f.Severity {
	case config.SeverityError:
		totals.Errors++
		fa.Errors++
		ra.Errors++
	case config.SeverityWarn:
		totals.Warnings++
		fa.Warnings++
		ra.Warnings++
	case config.SeverityOff:
	}
	if f.Fatal {
		totals.Fatal++
	}
	if f.HasFix() {
		totals.Fixable++
		fa.Fixable++
		ra.Fixable = true
	}

	ctx.fileRules[path][rule] = true
	ctx.ruleFiles[rule][path] = true
}

// buildByRule constructs the ByRule slice from accumulated data.
func (ctx *analysisContext) buildByRule(opts Options) []RuleAnalysis {
	result := make([]RuleAnalysis, 0, len(ctx.ruleMap))
	for ruleID, ra := range ctx.ruleMap {
		for f := range ctx.ruleFiles[ruleID] {
			ra.Files = append(ra.Files, f)
		}
		slices.Sort(ra.Files)
		result = append(result, *ra)
	}
	sortRuleAnalysis(result, opts.SortBy, opts.SortDesc)
	return result
}

// buildByFile constructs the ByFile slice from accumulated data.
func (ctx *analysisContext) buildByFile(opts Options) []FileAnalysis {
	var result []FileAnalysis
	for path, fa := range ctx.fileMap {
		if fa.Problems == 0 {
			continue
		}
		for r := range ctx.fileRules[path] {
			fa.Rules = append(fa.Rules, r)
		}
		slices.Sort(fa.Rules)
		result = append(result, *fa)
	}
	sortFileAnalysis(result, opts.SortBy, opts.SortDesc)
	return result
}

// Analyze transforms a runner.Result into a Report.
// It performs a single pass through the findings to compute all views.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}

	if result == nil {
		return report
	}

	ctx := newAnalysisContext()

	for _, file := range result.Files {
		report.Totals.Files++
		if file.Error != nil {
			report.Totals.FilesErrored++
			continue
		}
		if file.Result == nil || file.Result.FixReport == nil {
			continue
		}
		if len(file.Result.Messages) > 0 {
			report.Totals.FilesWithIssues++
		}
		report.Totals.Suppressed += len(file.Result.SuppressedMessages)

		displayPath := makeRelativePath(file.Path, opts.WorkingDir)
		for _, f := range file.Result.Messages {
			ctx.add(displayPath, f, &report.Totals)
			if opts.IncludeFindings {
				report.Findings = append(report.Findings, Entry{FilePath: displayPath, Finding: f})
			}
		}
	}

	if opts.IncludeByRule {
		report.ByRule = ctx.buildByRule(opts)
	}
	if opts.IncludeByFile {
		report.ByFile = ctx.buildByFile(opts)
	}

	return report
}

func sortRuleAnalysis(rules []RuleAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(rules, func(left, right RuleAnalysis) int {
		return compareGroups(sortBy, desc,
			left.RuleID, left.Problems, left.Errors, left.Warnings,
			right.RuleID, right.Problems, right.Errors, right.Warnings)
	})
}

func sortFileAnalysis(files []FileAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(files, func(left, right FileAnalysis) int {
		return compareGroups(sortBy, desc,
			left.Path, left.Problems, left.Errors, left.Warnings,
			right.Path, right.Problems, right.Errors, right.Warnings)
	})
}

// compareGroups orders two groups. Ties fall back to the name so output is
// stable across runs.
func compareGroups(sortBy SortField, desc bool,
	leftName string, leftProblems, leftErrors, leftWarnings int,
	rightName string, rightProblems, rightErrors, rightWarnings int,
) int {
	var result int
	switch sortBy {
	case SortByAlpha:
		// Alphabetical sorting is always ascending (A-Z)
	case SortBySeverity:
		// Errors first, then warnings (always descending by severity)
		result = cmp.Or(
			cmp.Compare(rightErrors, leftErrors),
			cmp.Compare(rightWarnings, leftWarnings),
			cmp.Compare(rightProblems, leftProblems),
		)
	default: // SortByCount
		result = cmp.Compare(leftProblems, rightProblems)
		if desc {
			result = -result
		}
	}
	return cmp.Or(result, cmp.Compare(leftName, rightName))
}
