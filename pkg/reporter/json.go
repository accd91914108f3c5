package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gojslint/pkg/finding"
	"github.com/yaklabco/gojslint/pkg/runner"
)

// JSONResult is the per-file JSON record. Messages use the finding
// interchange form.
type JSONResult struct {
	FilePath            string            `json:"filePath"`
	Messages            []finding.Finding `json:"messages"`
	SuppressedMessages  []finding.Finding `json:"suppressedMessages"`
	ErrorCount          int               `json:"errorCount"`
	FatalErrorCount     int               `json:"fatalErrorCount"`
	WarningCount        int               `json:"warningCount"`
	FixableErrorCount   int               `json:"fixableErrorCount"`
	FixableWarningCount int               `json:"fixableWarningCount"`

	// Output is the fixed text, present only when fixes changed the file.
	Output *string `json:"output,omitempty"`

	// Error is set when the file could not be processed.
	Error string `json:"error,omitempty"`
}

// JSONReporter formats results as a JSON array with one record per file.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	records, total := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(records); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return total, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) ([]JSONResult, int) {
	records := make([]JSONResult, 0)
	if result == nil {
		return records, 0
	}

	var total int
	for _, file := range result.Files {
		record := JSONResult{
			FilePath:           file.Path,
			Messages:           []finding.Finding{},
			SuppressedMessages: []finding.Finding{},
		}

		if file.Error != nil {
			record.Error = file.Error.Error()
		}

		if pr := file.Result; pr != nil && pr.FixReport != nil {
			if len(pr.Messages) > 0 {
				record.Messages = pr.Messages
			}
			if len(pr.SuppressedMessages) > 0 {
				record.SuppressedMessages = pr.SuppressedMessages
			}

			counts := finding.Count(pr.Messages)
			record.ErrorCount = counts.Errors
			record.FatalErrorCount = counts.Fatal
			record.WarningCount = counts.Warnings
			record.FixableErrorCount = counts.FixableErrors
			record.FixableWarningCount = counts.FixableWarnings

			if pr.Modified {
				output := string(pr.ModifiedContent)
				record.Output = &output
			}
			total += len(pr.Messages)
		}

		records = append(records, record)
	}

	return records, total
}
