package lint

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/gojslint/internal/logging"
	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/directive"
	"github.com/yaklabco/gojslint/pkg/finding"
	"github.com/yaklabco/gojslint/pkg/source"
	"github.com/yaklabco/gojslint/pkg/suppress"
)

// inlineConfigSource names where noInlineConfig came from in the warning
// emitted for ignored directive comments.
const inlineConfigSource = "your config"

// FileResult contains the results of one analysis pass over a text.
type FileResult struct {
	// Program is the parsed file, nil after a parse failure.
	Program *ast.Program

	// Findings are the reported findings sorted by position, including
	// directive problems and unused-directive reports.
	Findings []finding.Finding

	// Suppressed are the findings hidden by directives.
	Suppressed []finding.Finding

	// Fatal is true if parsing failed. Findings then holds a single
	// fatal finding.
	Fatal bool

	// RuleErrors contains any errors from rule execution.
	RuleErrors map[string]error
}

// HasIssues returns true if any findings were reported.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Findings) > 0
}

// IssueCount returns the number of reported findings.
func (fr *FileResult) IssueCount() int {
	return len(fr.Findings)
}

// FixableCount returns the number of reported findings with fixes.
func (fr *FileResult) FixableCount() int {
	count := 0
	for _, f := range fr.Findings {
		if f.HasFix() {
			count++
		}
	}
	return count
}

// Engine coordinates parsing, directive processing and rule execution for a
// single analysis pass.
type Engine struct {
	// Parser parses JavaScript source into a Program.
	Parser Parser

	// Registry holds all available rules.
	Registry *Registry
}

// NewEngine creates a new Engine with the given parser and registry.
func NewEngine(parser Parser, registry *Registry) *Engine {
	return &Engine{
		Parser:   parser,
		Registry: registry,
	}
}

// Verify parses src and runs the enabled rules over it. Findings are
// filtered through the file's directive comments.
//
// A syntax error is not an error: it produces a FileResult with a single
// fatal finding. Verify only fails on cancellation and on parser errors
// that carry no position.
func (e *Engine) Verify(ctx context.Context, src *source.Text, opts Options) (*FileResult, error) {
	logger := logging.FromContext(ctx)

	prog, err := e.Parser.Parse(ctx, src)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("linting cancelled: %w", ctxErr)
		}
		var posErr PositionedError
		if !errors.As(err, &posErr) {
			return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
		}
		logger.Debug("parse failed", logging.FieldError, err)
		return &FileResult{
			Findings:   []finding.Finding{parseFailure(posErr)},
			Fatal:      true,
			RuleErrors: make(map[string]error),
		}, nil
	}

	cfg := opts.Config
	directives := directive.Parse(prog.Comments, src, directiveOptions(cfg, opts.NoInlineConfig, e.Registry))
	resolved := ResolveRules(e.Registry, cfg, directives.RuleConfigs)

	result := &FileResult{
		Program:    prog,
		RuleErrors: make(map[string]error),
	}

	all := append([]finding.Finding(nil), directives.Problems...)
	nodes := newNodeCache()

	for _, rr := range resolved {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("linting cancelled: %w", ctx.Err())
		default:
		}

		ruleCtx := NewRuleContext(ctx, prog, cfg, rr.Config)
		ruleCtx.Registry = e.Registry
		ruleCtx.nodes = nodes

		found, err := rr.Rule.Apply(ruleCtx)
		if err != nil {
			logger.Debug("rule failed", logging.FieldRule, rr.Rule.ID(), logging.FieldError, err)
			result.RuleErrors[rr.Rule.ID()] = err
			continue
		}

		for _, f := range found {
			f.RuleID = rr.Rule.ID()
			f.Severity = rr.Severity
			if !rr.AutoFix {
				f = f.WithoutFix()
			}
			all = append(all, f)
		}
	}

	out := suppress.Apply(suppress.Input{
		Directives:   directives.Directives,
		Findings:     all,
		ReportUnused: cfg.UnusedDirectiveSeverity(),
		Source:       src,
	})
	result.Findings = out.Reported
	result.Suppressed = out.Suppressed

	return result, nil
}

// directiveOptions builds the directive parser options for one run.
// Inline configuration turned off on the command line is ignored silently;
// turned off in the configuration it produces a warning per directive.
func directiveOptions(cfg *config.Config, noInlineConfig bool, registry *Registry) directive.Options {
	opts := directive.Options{
		AllowInlineConfig: !noInlineConfig && cfg.InlineConfigAllowed(),
		KnownRule:         registry.Known,
	}
	if cfg != nil {
		opts.Prefix = cfg.DirectivePrefix
	}
	if !noInlineConfig && !cfg.InlineConfigAllowed() {
		opts.WarnInlineConfig = inlineConfigSource
	}
	return opts
}

// parseFailure is the single finding reported for a file that does not parse.
func parseFailure(err PositionedError) finding.Finding {
	pos := err.Pos()
	return finding.Finding{
		Severity: config.SeverityError,
		Message:  "Parsing error: " + err.Reason(),
		Line:     pos.Line,
		Column:   pos.Column,
		Fatal:    true,
	}
}
