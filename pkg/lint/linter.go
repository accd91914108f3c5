package lint

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yaklabco/gojslint/internal/logging"
	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/finding"
	"github.com/yaklabco/gojslint/pkg/source"
)

// DefaultMaxFixPasses is the maximum number of fix passes. Rules whose fixes
// keep producing new problems for each other stop here.
const DefaultMaxFixPasses = 10

// Options controls one Analyze or AnalyzeAndFix call.
type Options struct {
	// Path is informational; it is copied into the source text.
	Path string

	// Config is the run configuration. Nil uses rule defaults.
	Config *config.Config

	// NoInlineConfig ignores directive comments without warning.
	NoInlineConfig bool

	// Fix selects the fixes AnalyzeAndFix may apply. Nil disables fixing.
	Fix FixFilter

	// MaxFixPasses limits the fix cycle. Zero uses DefaultMaxFixPasses.
	MaxFixPasses int
}

// Report is the outcome of Analyze.
type Report struct {
	// Messages are the reported findings sorted by (line, column).
	Messages []finding.Finding

	// SuppressedMessages are the findings hidden by directives.
	SuppressedMessages []finding.Finding

	// RuleErrors holds rules that failed while running.
	RuleErrors map[string]error
}

// FixReport is the outcome of AnalyzeAndFix.
type FixReport struct {
	// Fixed is true if any fix was applied in any pass.
	Fixed bool

	// Output is the final text, with the input's BOM restored.
	Output []byte

	// Messages are the findings that remain in Output.
	Messages []finding.Finding

	// SuppressedMessages are the findings hidden by directives in Output.
	SuppressedMessages []finding.Finding

	// Passes is the number of analyze-and-fix passes that ran.
	Passes int

	// Circular is true if the cycle stopped because fixes undid each other.
	Circular bool

	// RuleErrors holds rules that failed during the last analysis.
	RuleErrors map[string]error
}

// Linter runs the analysis and the fix cycle. A Linter holds no per-call
// state and may be shared between goroutines.
type Linter struct {
	Engine *Engine
}

// NewLinter creates a Linter over the given parser and registry.
func NewLinter(parser Parser, registry *Registry) *Linter {
	return &Linter{Engine: NewEngine(parser, registry)}
}

// Analyze runs one analysis over text.
func (l *Linter) Analyze(ctx context.Context, text []byte, opts Options) (*Report, error) {
	src := source.New(opts.Path, text)

	result, err := l.Engine.Verify(ctx, src, opts)
	if err != nil {
		return nil, err
	}

	return &Report{
		Messages:           result.Findings,
		SuppressedMessages: result.Suppressed,
		RuleErrors:         result.RuleErrors,
	}, nil
}

// AnalyzeAndFix analyzes text and applies fixes until nothing changes.
//
// Each pass analyzes the current text and applies every fix selected by
// opts.Fix. The cycle ends when a pass applies nothing, when the text does
// not parse, when MaxFixPasses passes have run, or when a pass reproduces the
// text from two passes earlier. If the last pass changed the text, one more
// analysis produces the returned messages.
func (l *Linter) AnalyzeAndFix(ctx context.Context, text []byte, opts Options) (*FixReport, error) {
	logger := logging.FromContext(ctx)

	maxPasses := opts.MaxFixPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxFixPasses
	}

	original := source.New(opts.Path, text)
	current := original.Content
	var previous []byte

	report := &FixReport{}
	var result *FileResult
	var fixResult FixResult

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("fixing cancelled: %w", ctx.Err())
		default:
		}

		report.Passes++

		var err error
		result, err = l.Engine.Verify(ctx, source.New(opts.Path, current), opts)
		if err != nil {
			return nil, err
		}

		fixResult = ApplyFixes(current, result.Findings, opts.Fix)
		logger.Debug("fix pass",
			logging.FieldPass, report.Passes,
			logging.FieldApplied, len(result.Findings)-len(fixResult.Remaining),
		)

		if result.Fatal {
			fixResult = FixResult{Output: current, Remaining: result.Findings}
			break
		}

		report.Fixed = report.Fixed || fixResult.Fixed
		if previous != nil && fixResult.Fixed && bytes.Equal(fixResult.Output, previous) {
			report.Circular = true
			logger.Warn("circular fixes detected; conflicting rules are likely",
				logging.FieldPass, report.Passes,
			)
		}
		previous, current = current, fixResult.Output

		if !fixResult.Fixed || report.Circular || report.Passes >= maxPasses {
			break
		}
	}

	report.Messages = fixResult.Remaining
	report.SuppressedMessages = result.Suppressed
	report.RuleErrors = result.RuleErrors

	if fixResult.Fixed {
		final, err := l.Engine.Verify(ctx, source.New(opts.Path, current), opts)
		if err != nil {
			return nil, err
		}
		report.Messages = final.Findings
		report.SuppressedMessages = final.Suppressed
		report.RuleErrors = final.RuleErrors
	}

	report.Output = original.WithBOM(current)

	return report, nil
}
