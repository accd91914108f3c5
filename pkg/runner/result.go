package runner

import (
	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/finding"
	"github.com/yaklabco/gojslint/pkg/lint"
)

// FileOutcome is the result of one file.
type FileOutcome struct {
	Path string

	// Result is nil when Error is set.
	Result *lint.PipelineResult
	Error  error
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesSkipped    int
	FilesErrored    int
	FilesCached     int
	FilesWithIssues int
	FilesModified   int

	// Findings tallies reported findings by severity.
	Findings finding.Counts

	// Suppressed counts findings hidden by directives.
	Suppressed int

	// RuleErrors counts rules that failed while running.
	RuleErrors int

	// CircularFiles counts files whose fix cycle stopped on circular fixes.
	CircularFiles int
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per processed file, ordered by path.
	Files []FileOutcome

	Stats Stats
}

// HasFailures reports whether any error-severity finding was reported.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.Findings.Errors > 0
}

// HasIssues reports whether any finding was reported.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.Findings.Errors+r.Stats.Findings.Warnings > 0
}

// NewResult aggregates outcomes produced outside Run, such as linted stdin.
func NewResult(outcomes ...FileOutcome) *Result {
	result := &Result{Files: make([]FileOutcome, 0, len(outcomes))}
	result.Stats.FilesDiscovered = len(outcomes)
	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}
	return result
}

// ErrorsOnly returns a copy of r with warning findings removed and the
// stats recomputed. r is not modified.
func (r *Result) ErrorsOnly() *Result {
	if r == nil {
		return nil
	}

	out := &Result{Files: make([]FileOutcome, 0, len(r.Files))}
	out.Stats.FilesDiscovered = r.Stats.FilesDiscovered
	for _, outcome := range r.Files {
		if outcome.Result != nil && outcome.Result.FixReport != nil {
			pr := *outcome.Result
			report := *pr.FixReport
			report.Messages = errorFindings(report.Messages)
			pr.FixReport = &report
			outcome.Result = &pr
		}
		out.accumulate(outcome)
	}
	return out
}

func errorFindings(findings []finding.Finding) []finding.Finding {
	var kept []finding.Finding
	for _, f := range findings {
		if f.Severity == config.SeverityError {
			kept = append(kept, f)
		}
	}
	return kept
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	pr := outcome.Result
	if pr == nil {
		return
	}

	r.Stats.FilesProcessed++
	if pr.Skipped {
		r.Stats.FilesSkipped++
	}
	if pr.Written {
		r.Stats.FilesModified++
	}
	if pr.Cached {
		r.Stats.FilesCached++
	}
	if pr.FixReport == nil {
		return
	}

	if len(pr.Messages) > 0 {
		r.Stats.FilesWithIssues++
	}
	r.Stats.Findings.Add(finding.Count(pr.Messages))
	r.Stats.Suppressed += len(pr.SuppressedMessages)
	r.Stats.RuleErrors += len(pr.RuleErrors)
	if pr.Circular {
		r.Stats.CircularFiles++
	}
}
