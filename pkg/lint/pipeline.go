package lint

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/yaklabco/gojslint/internal/logging"
	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/fix"
	"github.com/yaklabco/gojslint/pkg/fsutil"
)

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrParseFailure indicates a parser failure that is not a syntax error.
	ErrParseFailure = errors.New("parse failure")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")
)

// PipelineResult contains the result of processing a single file through the safety pipeline.
type PipelineResult struct {
	// FixReport contains the findings of the final text. Without fix mode
	// it is the single analysis of the original text.
	*FixReport

	// Path is the file path that was processed.
	Path string

	// OriginalInfo is the file state before processing.
	OriginalInfo *fsutil.FileInfo

	// Modified is true if the file content was changed.
	Modified bool

	// ModifiedContent is the new content after fixing (nil if not modified).
	ModifiedContent []byte

	// Diff is the unified diff for dry-run mode (nil if not in dry-run).
	Diff *fix.Diff

	// Skipped is true if the file was skipped (e.g., due to concurrent modification).
	Skipped bool

	// SkipReason explains why the file was skipped.
	SkipReason string

	// BackupCreated is true if a backup was created for this file.
	BackupCreated bool

	// Written is true if the file was written to disk.
	Written bool

	// Cached is true if the file was skipped because the cache knew it clean.
	Cached bool
}

// Summary returns a human-readable summary of the pipeline result.
func (pr *PipelineResult) Summary() string {
	if pr.Skipped {
		return "skipped: " + pr.SkipReason
	}
	if pr.Written {
		if pr.BackupCreated {
			return "fixed (backup created)"
		}
		return "fixed"
	}
	if pr.Modified {
		return "changes pending"
	}
	if pr.FixReport != nil && len(pr.Messages) > 0 {
		return "issues found"
	}
	return "ok"
}

// PipelineOptions controls safety pipeline behavior.
type PipelineOptions struct {
	// Fix enables auto-fix mode.
	Fix bool

	// FixTypes limits fixing to rules of the given types. Empty means all.
	FixTypes []RuleType

	// DryRun generates diffs without writing files.
	DryRun bool

	// NoInlineConfig ignores directive comments.
	NoInlineConfig bool

	// Backup configures backup behavior.
	Backup fsutil.BackupConfig

	// StrictRaceDetection uses hash comparison for modification detection.
	// When false, only mod time and size are checked.
	StrictRaceDetection bool

	// MaxFixPasses limits the number of fix iterations.
	// Set to 0 to use DefaultMaxFixPasses.
	MaxFixPasses int
}

// DefaultPipelineOptions returns sensible defaults.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Fix:                 false,
		DryRun:              false,
		Backup:              fsutil.DefaultBackupConfig(),
		StrictRaceDetection: true,
	}
}

// ResultCache remembers files that linted clean. *cache.Cache implements it.
type ResultCache interface {
	Lookup(path string, content []byte) bool
	Store(path string, content []byte)
	Forget(path string)
}

// Pipeline orchestrates the safe processing of a single file.
type Pipeline struct {
	// Linter runs the analysis and the fix cycle.
	Linter *Linter

	// Processors handle files that embed JavaScript. The first processor
	// that supports a path wins; other files are linted as JavaScript.
	Processors []Processor

	// FS is the filesystem files are read from and written to. Nil means
	// the operating system filesystem.
	FS afero.Fs

	// Cache, if set, lets ProcessFile skip files that linted clean with the
	// same content before. It is consulted only outside fix mode.
	Cache ResultCache
}

// NewPipeline creates a new safety pipeline with the given linter.
func NewPipeline(linter *Linter, processors ...Processor) *Pipeline {
	return &Pipeline{Linter: linter, Processors: processors}
}

// ProcessFile runs the full safety pipeline for a single file.
//
// The pipeline performs the following steps:
//  1. Read and hash the original file.
//  2. Run the fix cycle in memory (or a single analysis without fix mode).
//  3. Generate diff (if dry-run mode).
//  4. Check for concurrent modifications.
//  5. Create backup (if enabled).
//  6. Write the modified content atomically.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	// Step 1: Read and hash the original file.
	originalContent, info, err := fsutil.ReadFile(ctx, p.FS, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	if p.Cache != nil && !opts.Fix && p.Cache.Lookup(path, originalContent) {
		return &PipelineResult{
			FixReport:    &FixReport{Output: originalContent, RuleErrors: map[string]error{}},
			Path:         path,
			OriginalInfo: info,
			Cached:       true,
		}, nil
	}

	// Steps 2-3.
	result, err := p.ProcessContent(ctx, path, originalContent, cfg, opts)
	if err != nil {
		return nil, err
	}
	result.OriginalInfo = info
	p.remember(path, result)

	if !result.Modified || opts.DryRun {
		return result, nil
	}

	// Step 4: Check for concurrent modifications before writing.
	modified, err := p.checkModified(ctx, info, opts.StrictRaceDetection)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if modified {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	// Step 5: Create backup if enabled.
	if opts.Backup.Enabled {
		created, err := fsutil.CreateBackup(ctx, p.FS, path, opts.Backup)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = created
	}

	// Step 6: Write the modified content atomically.
	if err := fsutil.WriteAtomic(ctx, p.FS, path, result.ModifiedContent, info.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return result, nil
}

// remember stores clean results in the cache and evicts the rest. A cache
// hit carries no findings, so results with suppressed findings are not clean.
func (p *Pipeline) remember(path string, result *PipelineResult) {
	if p.Cache == nil {
		return
	}
	if len(result.Messages) == 0 && len(result.SuppressedMessages) == 0 &&
		len(result.RuleErrors) == 0 && !result.Modified {
		p.Cache.Store(path, result.Output)
		return
	}
	p.Cache.Forget(path)
}

// ProcessContent processes in-memory content without file I/O.
// This is useful for testing, for stdin input, or when content is already loaded.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	originalContent []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	ctx = logging.With(ctx, logging.FieldPath, path)

	lintOpts := Options{
		Path:           path,
		Config:         cfg,
		NoInlineConfig: opts.NoInlineConfig,
		MaxFixPasses:   opts.MaxFixPasses,
	}
	if opts.Fix {
		lintOpts.Fix = FixTypeFilter(p.Linter.Engine.Registry, opts.FixTypes)
	}

	var report *FixReport
	var err error
	if proc := p.processorFor(path); proc != nil {
		report, err = p.Linter.AnalyzeHost(ctx, originalContent, proc, lintOpts)
	} else {
		report, err = p.Linter.AnalyzeAndFix(ctx, originalContent, lintOpts)
	}
	if err != nil {
		return nil, err
	}

	result := &PipelineResult{
		FixReport: report,
		Path:      path,
	}

	if !report.Fixed || string(report.Output) == string(originalContent) {
		return result, nil
	}

	result.Modified = true
	result.ModifiedContent = report.Output

	if opts.DryRun {
		result.Diff = fix.GenerateDiff(path, originalContent, report.Output)
	}

	return result, nil
}

func (p *Pipeline) processorFor(path string) Processor {
	for _, proc := range p.Processors {
		if proc.Supports(path) {
			return proc
		}
	}
	return nil
}

// checkModified checks if a file has been modified since it was read.
func (p *Pipeline) checkModified(ctx context.Context, info *fsutil.FileInfo, strict bool) (bool, error) {
	var modified bool
	var err error

	if strict {
		modified, err = fsutil.CheckModified(ctx, p.FS, info)
	} else {
		modified, err = fsutil.CheckModifiedQuick(ctx, p.FS, info)
	}

	if err != nil {
		return false, fmt.Errorf("check modified: %w", err)
	}
	return modified, nil
}

// categorizeError wraps an error with the appropriate pipeline error type.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}

	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}

	return err
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrParseFailure) ||
		errors.Is(err, ErrWriteFailure)
}

// BackupConfigFromConfig creates an fsutil.BackupConfig from config.Config.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
}

// PipelineOptionsFromConfig creates PipelineOptions from config.Config.
// Unknown fix types are ignored; configloader validation rejects them earlier.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		return DefaultPipelineOptions()
	}
	opts := PipelineOptions{
		Fix:                 cfg.Fix || cfg.FixDryRun,
		DryRun:              cfg.FixDryRun,
		NoInlineConfig:      cfg.NoInlineConfig,
		Backup:              BackupConfigFromConfig(cfg),
		StrictRaceDetection: true,
	}
	for _, raw := range cfg.FixTypes {
		if t, ok := ParseRuleType(raw); ok {
			opts.FixTypes = append(opts.FixTypes, t)
		}
	}
	return opts
}
