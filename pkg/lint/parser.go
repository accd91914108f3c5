package lint

import (
	"context"

	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/source"
)

// Parser parses JavaScript source into a Program.
//
// The lint package defines this interface in the consumer package.
// Implementations (e.g., parser/js) provide the concrete parsing logic.
//
// Implementations must be:
//   - deterministic for a given source text,
//   - safe for concurrent use by multiple goroutines,
//   - side-effect free (no I/O, no global state mutation).
type Parser interface {
	// Parse converts source text into a fully-populated Program.
	//
	// The returned Program must satisfy:
	//   - prog.Source == src
	//   - prog.Node != nil && prog.Kind == ast.NodeProgram
	//   - Tokens and Comments are in source order
	//
	// On a syntax error Parse returns nil and an error. Errors that also
	// implement PositionedError are reported as a fatal finding at that
	// position; any other error aborts the analysis.
	Parse(ctx context.Context, src *source.Text) (*ast.Program, error)
}

// PositionedError is a parse failure that knows where it happened.
type PositionedError interface {
	error
	Pos() source.Position
	Reason() string
}
