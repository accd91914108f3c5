package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/gojslint/pkg/analysis"
	"github.com/yaklabco/gojslint/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// SummaryOrder controls which table the summary format prints first.
type SummaryOrder string

const (
	SummaryOrderRules SummaryOrder = "rules"
	SummaryOrderFiles SummaryOrder = "files"
)

// IsValid reports whether o is a known summary order.
func (o SummaryOrder) IsValid() bool {
	return o == SummaryOrderRules || o == SummaryOrderFiles
}

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format config.OutputFormat

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowContext includes the source line and a caret under each finding.
	ShowContext bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// GroupByFile groups findings by file (text format).
	GroupByFile bool

	// Compact uses compact/minified output where applicable.
	Compact bool

	// PerFile outputs a separate table for each file (table format only).
	PerFile bool

	// SummaryOrder controls the order of tables in summary output.
	SummaryOrder SummaryOrder

	// SummarySort orders the rows of the summary tables.
	SummarySort analysis.SortField

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string

	// ToolVersion is reported in SARIF output.
	ToolVersion string

	// RuleDescriptions maps rule IDs to one-line descriptions for SARIF
	// rule metadata.
	RuleDescriptions map[string]string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:       os.Stdout,
		ErrorWriter:  os.Stderr,
		Format:       config.FormatText,
		Color:        "auto",
		ShowContext:  true,
		ShowSummary:  true,
		GroupByFile:  true,
		Compact:      false,
		SummaryOrder: SummaryOrderRules,
		SummarySort:  analysis.SortByCount,
		ToolVersion:  "dev",
	}
}
