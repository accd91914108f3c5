package analysis

import (
	"time"

	"github.com/yaklabco/gojslint/pkg/finding"
)

// NoRule labels findings that no rule reported: parse failures and
// directive problems.
const NoRule = "(no rule)"

// Report contains pre-computed views of lint results.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// Findings is the flat list for detailed output.
	Findings []Entry `json:"findings,omitempty"`

	// ByFile groups findings by file path.
	ByFile []FileAnalysis `json:"byFile,omitempty"`

	// ByRule groups findings by rule.
	ByRule []RuleAnalysis `json:"byRule,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// Entry is a single finding together with the file it was found in.
type Entry struct {
	FilePath string          `json:"filePath"`
	Finding  finding.Finding `json:"finding"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesErrored    int `json:"filesErrored"`
	Problems        int `json:"problems"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Fatal           int `json:"fatal"`
	Fixable         int `json:"fixable"`
	Suppressed      int `json:"suppressed"`
}

// HasIssues returns true if there are any problems.
func (t Totals) HasIssues() bool {
	return t.Problems > 0
}

// HasErrors returns true if there are any errors.
func (t Totals) HasErrors() bool {
	return t.Errors > 0
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Path     string   `json:"path"`
	Problems int      `json:"problems"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Fixable  int      `json:"fixable"`
	Rules    []string `json:"rules,omitempty"`
}

// RuleAnalysis contains aggregated data for a single rule.
type RuleAnalysis struct {
	RuleID   string   `json:"ruleId"`
	Problems int      `json:"problems"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Fixable  bool     `json:"fixable"`
	Files    []string `json:"files,omitempty"`
}
