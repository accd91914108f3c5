// Package suppress decides which findings are hidden by directive comments
// and reports directives that hid nothing.
package suppress

import (
	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/directive"
	"github.com/yaklabco/gojslint/pkg/finding"
	"github.com/yaklabco/gojslint/pkg/source"
)

// Input is everything needed to filter one file's findings.
type Input struct {
	Directives []directive.Directive
	Findings   []finding.Finding

	// ReportUnused is the severity of unused-directive reports. Off
	// disables them.
	ReportUnused config.Severity

	Source *source.Text
}

// Output partitions the findings.
type Output struct {
	// Reported holds unsuppressed findings plus unused-directive reports,
	// sorted by position.
	Reported []finding.Finding

	// Suppressed holds hidden findings, each with its suppressions.
	Suppressed []finding.Finding
}

// usageKey identifies a (directive, rule) pair. All-rules directives use
// an empty rule.
type usageKey struct {
	directive int
	ruleID    string
}

// run holds the bookkeeping of one Apply call.
type run struct {
	in      Input
	state   blockState
	used    map[usageKey]bool
	enabled map[usageKey]bool
}

// Apply filters findings through the directives.
func Apply(in Input) Output {
	r := &run{
		in:      in,
		used:    make(map[usageKey]bool),
		enabled: make(map[usageKey]bool),
	}

	findings := append([]finding.Finding(nil), in.Findings...)
	finding.Sort(findings)

	var blocks []int
	for idx, d := range in.Directives {
		if !d.Kind.IsLineScoped() {
			blocks = append(blocks, idx)
		}
	}

	var out Output
	next := 0
	for _, f := range findings {
		for next < len(blocks) && !f.Start().Before(r.position(blocks[next])) {
			r.step(blocks[next])
			next++
		}

		suppressions := r.match(f)
		if len(suppressions) == 0 {
			out.Reported = append(out.Reported, f)
			continue
		}
		out.Suppressed = append(out.Suppressed, f.WithSuppressions(suppressions))
	}
	for ; next < len(blocks); next++ {
		r.step(blocks[next])
	}

	if in.ReportUnused.Enabled() {
		out.Reported = append(out.Reported, r.unusedReports()...)
		finding.Sort(out.Reported)
	}

	return out
}

func (r *run) position(idx int) source.Position {
	d := &r.in.Directives[idx]
	return source.Position{Line: d.Line, Column: d.Column}
}

// step folds one block directive into the state.
func (r *run) step(idx int) {
	d := &r.in.Directives[idx]
	switch d.Kind {
	case directive.DisableAll, directive.DisableSome:
		r.state = r.state.disable(idx, d.RuleIDs)
	case directive.EnableAll:
		if !r.state.empty() {
			r.enabled[usageKey{directive: idx}] = true
		}
		r.state = r.state.enableAll()
	case directive.EnableSome:
		for _, id := range d.RuleIDs {
			if len(r.state.query(id)) > 0 {
				r.enabled[usageKey{directive: idx, ruleID: id}] = true
			}
			r.state = r.state.enable(id)
		}
	case directive.DisableLine, directive.DisableNextLine:
	}
}

// match collects the suppressions for f and credits the responsible
// directive.
//
// Every matching directive contributes a Suppression, but only one directive
// is marked used: the last matching block directive, or the last matching
// line directive when no block covers f. A line directive inside a disabled
// block therefore still lists its justification on f yet is reported unused,
// since removing it would not change what is reported.
func (r *run) match(f finding.Finding) []finding.Suppression {
	blockMatches := r.state.query(f.RuleID)

	var lineMatches []int
	for idx := range r.in.Directives {
		d := &r.in.Directives[idx]
		if d.Kind.IsLineScoped() && d.TargetLine == f.Line && d.Names(f.RuleID) {
			lineMatches = append(lineMatches, idx)
		}
	}

	if len(blockMatches) == 0 && len(lineMatches) == 0 {
		return nil
	}

	credited := 0
	if len(blockMatches) > 0 {
		credited = blockMatches[len(blockMatches)-1]
	} else {
		credited = lineMatches[len(lineMatches)-1]
	}
	r.used[r.key(credited, f.RuleID)] = true

	suppressions := make([]finding.Suppression, 0, len(blockMatches)+len(lineMatches))
	for _, idx := range append(blockMatches, lineMatches...) {
		suppressions = append(suppressions, finding.Suppression{
			Kind:          finding.SuppressionKindDirective,
			Justification: r.in.Directives[idx].Justification,
		})
	}
	return suppressions
}

func (r *run) key(idx int, ruleID string) usageKey {
	if r.in.Directives[idx].AppliesToAll() {
		return usageKey{directive: idx}
	}
	return usageKey{directive: idx, ruleID: ruleID}
}
