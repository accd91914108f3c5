package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/url"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/finding"
	"github.com/yaklabco/gojslint/pkg/runner"
)

// SARIF version used by this reporter.
const sarifVersion = "2.1.0"

// SARIF schema URI.
const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool               SARIFTool                        `json:"tool"`
	Results            []SARIFResult                    `json:"results"`
	Invocations        []SARIFInvocation                `json:"invocations,omitempty"`
	OriginalURIBaseIDs map[string]SARIFArtifactLocation `json:"originalUriBaseIds,omitempty"`
}

// SARIFInvocation reports tool execution problems.
type SARIFInvocation struct {
	ExecutionSuccessful        bool                `json:"executionSuccessful"`
	ToolExecutionNotifications []SARIFNotification `json:"toolExecutionNotifications,omitempty"`
}

// SARIFNotification is a problem the tool met while running, such as a
// file that could not be read or a rule that failed.
type SARIFNotification struct {
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations,omitempty"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes a rule.
type SARIFRule struct {
	ID               string                `json:"id"`
	Name             string                `json:"name,omitempty"`
	ShortDescription *SARIFMultiformatText `json:"shortDescription,omitempty"`
	DefaultConfig    *SARIFRuleConfig     `json:"defaultConfiguration,omitempty"`
	Properties       map[string]any       `json:"properties,omitempty"`
}

// SARIFMultiformatText contains text in multiple formats.
type SARIFMultiformatText struct {
	Text string `json:"text"`
}

// SARIFRuleConfig contains rule configuration.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFResult represents a single finding.
type SARIFResult struct {
	RuleID    string          `json:"ruleId,omitempty"`
	RuleIndex *int            `json:"ruleIndex,omitempty"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
	Fixes     []SARIFFix      `json:"fixes,omitempty"`
}

// SARIFMessage contains the result message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation contains file path and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI       string `json:"uri"`
	URIBaseID string `json:"uriBaseId,omitempty"`
}

// SARIFRegion describes the affected text region.
type SARIFRegion struct {
	StartLine   int  `json:"startLine,omitempty"`
	StartColumn int  `json:"startColumn,omitempty"`
	EndLine     int  `json:"endLine,omitempty"`
	EndColumn   int  `json:"endColumn,omitempty"`
	ByteOffset  *int `json:"byteOffset,omitempty"`
	ByteLength  *int `json:"byteLength,omitempty"`
}

// SARIFFix represents a proposed fix.
type SARIFFix struct {
	Description     SARIFMessage          `json:"description"`
	ArtifactChanges []SARIFArtifactChange `json:"artifactChanges"`
}

// SARIFArtifactChange describes changes to a file.
type SARIFArtifactChange struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Replacements     []SARIFReplacement    `json:"replacements"`
}

// SARIFReplacement describes a text replacement.
type SARIFReplacement struct {
	DeletedRegion   SARIFRegion           `json:"deletedRegion"`
	InsertedContent *SARIFInsertedContent `json:"insertedContent,omitempty"`
}

// SARIFInsertedContent contains the replacement text.
type SARIFInsertedContent struct {
	Text string `json:"text"`
}

// SARIFReporter formats results as SARIF.
type SARIFReporter struct {
	opts Options
	out  io.Writer
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{
		opts: opts,
		out:  opts.Writer,
	}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.out)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}

	return len(output.Runs[0].Results), nil
}

// sarifBuilder accumulates one SARIF run.
type sarifBuilder struct {
	opts      Options
	run       *SARIFRun
	ruleIndex map[string]int
}

func (r *SARIFReporter) buildOutput(result *runner.Result) *SARIFOutput {
	output := &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs: []SARIFRun{{
			Tool: SARIFTool{
				Driver: SARIFDriver{
					Name:           "gojslint",
					Version:        r.opts.ToolVersion,
					InformationURI: "https://github.com/yaklabco/gojslint",
					Rules:          make([]SARIFRule, 0),
				},
			},
			Results: make([]SARIFResult, 0),
		}},
	}

	if r.opts.WorkingDir != "" {
		output.Runs[0].OriginalURIBaseIDs = map[string]SARIFArtifactLocation{
			srcRoot: {URI: fileURI(r.opts.WorkingDir)},
		}
	}

	if result == nil {
		return output
	}

	b := &sarifBuilder{opts: r.opts, run: &output.Runs[0], ruleIndex: make(map[string]int)}
	invocation := SARIFInvocation{ExecutionSuccessful: true}

	for _, file := range result.Files {
		location := b.artifact(file.Path)

		if file.Error != nil {
			invocation.ExecutionSuccessful = false
			invocation.ToolExecutionNotifications = append(invocation.ToolExecutionNotifications, SARIFNotification{
				Level:     "error",
				Message:   SARIFMessage{Text: file.Error.Error()},
				Locations: []SARIFLocation{{PhysicalLocation: SARIFPhysicalLocation{ArtifactLocation: location}}},
			})
			continue
		}
		if file.Result == nil || file.Result.FixReport == nil {
			continue
		}

		for _, id := range slices.Sorted(maps.Keys(file.Result.RuleErrors)) {
			err := file.Result.RuleErrors[id]
			invocation.ToolExecutionNotifications = append(invocation.ToolExecutionNotifications, SARIFNotification{
				Level:     "warning",
				Message:   SARIFMessage{Text: fmt.Sprintf("rule %s failed: %v", id, err)},
				Locations: []SARIFLocation{{PhysicalLocation: SARIFPhysicalLocation{ArtifactLocation: location}}},
			})
		}

		for _, f := range file.Result.Messages {
			b.run.Results = append(b.run.Results, b.result(location, f))
		}
	}

	if !invocation.ExecutionSuccessful || len(invocation.ToolExecutionNotifications) > 0 {
		output.Runs[0].Invocations = []SARIFInvocation{invocation}
	}

	return output
}

// srcRoot is the uriBaseId for paths relative to the working directory.
const srcRoot = "SRCROOT"

func (b *sarifBuilder) artifact(path string) SARIFArtifactLocation {
	rel := displayPath(path, b.opts.WorkingDir)
	if rel != path {
		return SARIFArtifactLocation{URI: filepath.ToSlash(rel), URIBaseID: srcRoot}
	}
	return SARIFArtifactLocation{URI: filepath.ToSlash(path)}
}

// rule registers the rule of f and returns its index.
func (b *sarifBuilder) rule(f finding.Finding) *int {
	if f.RuleID == "" {
		return nil
	}
	idx, ok := b.ruleIndex[f.RuleID]
	if !ok {
		rule := SARIFRule{ID: f.RuleID, Name: f.RuleID}
		if desc := b.opts.RuleDescriptions[f.RuleID]; desc != "" {
			rule.ShortDescription = &SARIFMultiformatText{Text: desc}
		}
		idx = len(b.run.Tool.Driver.Rules)
		b.run.Tool.Driver.Rules = append(b.run.Tool.Driver.Rules, rule)
		b.ruleIndex[f.RuleID] = idx
	}
	return &idx
}

func (b *sarifBuilder) result(location SARIFArtifactLocation, f finding.Finding) SARIFResult {
	region := SARIFRegion{StartLine: f.Line, StartColumn: f.Column}
	if f.EndLine > 0 {
		region.EndLine = f.EndLine
		region.EndColumn = f.EndColumn
	}

	res := SARIFResult{
		RuleID:    f.RuleID,
		RuleIndex: b.rule(f),
		Level:     severityToSARIFLevel(f.Severity),
		Message:   SARIFMessage{Text: f.Message},
		Locations: []SARIFLocation{{
			PhysicalLocation: SARIFPhysicalLocation{ArtifactLocation: location, Region: region},
		}},
	}

	if f.Fix != nil {
		res.Fixes = append(res.Fixes, sarifFix(location, "Apply the automatic fix.", f.Fix.StartOffset, f.Fix.EndOffset, f.Fix.NewText))
	}
	for _, s := range f.Suggestions {
		res.Fixes = append(res.Fixes, sarifFix(location, s.Desc, s.Fix.StartOffset, s.Fix.EndOffset, s.Fix.NewText))
	}

	return res
}

func sarifFix(location SARIFArtifactLocation, desc string, start, end int, text string) SARIFFix {
	length := end - start
	return SARIFFix{
		Description: SARIFMessage{Text: desc},
		ArtifactChanges: []SARIFArtifactChange{{
			ArtifactLocation: location,
			Replacements: []SARIFReplacement{{
				DeletedRegion:   SARIFRegion{ByteOffset: &start, ByteLength: &length},
				InsertedContent: &SARIFInsertedContent{Text: text},
			}},
		}},
	}
}

// fileURI returns a file:// URI for a directory, with a trailing slash.
func fileURI(dir string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(dir)}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// severityToSARIFLevel converts a severity to a SARIF level.
func severityToSARIFLevel(severity config.Severity) string {
	switch severity {
	case config.SeverityError:
		return "error"
	case config.SeverityWarn:
		return "warning"
	default:
		return "note"
	}
}
