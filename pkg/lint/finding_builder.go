package lint

import (
	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/finding"
	"github.com/yaklabco/gojslint/pkg/fix"
	"github.com/yaklabco/gojslint/pkg/source"
)

// FindingBuilder helps construct Finding values.
type FindingBuilder struct {
	f finding.Finding
}

// NewFinding starts building a finding located at node.
func NewFinding(prog *ast.Program, node *ast.Node, message string) *FindingBuilder {
	b := &FindingBuilder{f: finding.Finding{Message: message}}
	if prog != nil && node != nil {
		b.f = b.f.At(prog.Location(node))
		b.f.NodeType = node.Type()
	}
	return b
}

// NewFindingAt starts building a finding at an explicit location.
func NewFindingAt(loc source.Location, message string) *FindingBuilder {
	return &FindingBuilder{f: finding.Finding{Message: message}.At(loc)}
}

// NewFindingAtRange starts building a finding covering a byte range.
func NewFindingAtRange(src *source.Text, r source.Range, message string) *FindingBuilder {
	return NewFindingAt(src.LocationOf(r), message)
}

// WithNodeType sets the node type reported alongside the finding.
func (b *FindingBuilder) WithNodeType(nodeType string) *FindingBuilder {
	b.f.NodeType = nodeType
	return b
}

// WithFix sets the autofix edit.
func (b *FindingBuilder) WithFix(edit fix.TextEdit) *FindingBuilder {
	b.f.Fix = &edit
	return b
}

// WithFixFrom merges the edits of an EditBuilder into a single fix.
// ESLint-style fixes are one contiguous replacement per finding, so several
// edits are collapsed into one edit spanning all of them.
func (b *FindingBuilder) WithFixFrom(builder *fix.EditBuilder, content []byte) *FindingBuilder {
	if builder == nil {
		return b
	}
	merged, err := builder.Merge(content)
	if err != nil {
		return b
	}
	return b.WithFix(merged)
}

// WithSuggestion adds a suggestion. Suggestions are never applied by the
// fix cycle.
func (b *FindingBuilder) WithSuggestion(desc string, edit fix.TextEdit) *FindingBuilder {
	b.f.Suggestions = append(b.f.Suggestions, finding.Suggestion{Desc: desc, Fix: edit})
	return b
}

// Build returns the constructed Finding.
func (b *FindingBuilder) Build() finding.Finding {
	return b.f
}
