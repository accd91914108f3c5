package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gojslint/internal/configloader"
	"github.com/yaklabco/gojslint/internal/logging"
	"github.com/yaklabco/gojslint/pkg/analysis"
	"github.com/yaklabco/gojslint/pkg/cache"
	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/lint"
	_ "github.com/yaklabco/gojslint/pkg/lint/rules" // Register built-in rules
	"github.com/yaklabco/gojslint/pkg/parser/js"
	"github.com/yaklabco/gojslint/pkg/processor/markdown"
	"github.com/yaklabco/gojslint/pkg/reporter"
	"github.com/yaklabco/gojslint/pkg/runner"
)

// defaultStdinFilename names stdin input in reports when --stdin-filename is unset.
const defaultStdinFilename = "<text>"

type lintFlags struct {
	format         string
	fixTypes       []string
	ignorePatterns []string
	extensions     []string
	rules          []string
	reportUnused   string
	cacheLocation  string
	stdin          bool
	stdinFilename  string
	noConfigLookup bool
	noContext      bool
	compact        bool
	perFile        bool
	summaryOrder   string
	summarySort    string
}

func newLintCommand(info BuildInfo) *cobra.Command {
	var cfg config.Config
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint JavaScript files",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, &cfg, flags, info)
		},
	}

	addLintFlags(cmd, &cfg, flags)

	return cmd
}

const lintLongDescription = `Lint JavaScript files for problems and style issues.

By default, lints all .js, .cjs and .mjs files in the current directory
and subdirectories, skipping node_modules and minified files. Specify
paths to lint specific files or directories.

Examples:
  gojslint lint                          # Lint current directory
  gojslint lint src/                     # Lint src directory
  gojslint lint app.js                   # Lint single file
  gojslint lint --fix                    # Lint and fix problems in place
  gojslint lint --fix-dry-run -f diff    # Show fixes without applying
  gojslint lint --fix --fix-type layout  # Only apply formatting fixes
  gojslint lint --rule 'semi: [error, never]'
  gojslint lint --format json            # ESLint-compatible JSON for CI
  gojslint lint --max-warnings 0         # Fail on any warning
  cat app.js | gojslint lint --stdin --stdin-filename app.js`

func runLint(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *lintFlags, info BuildInfo) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	if err := applyLintFlags(cmd, cliCfg, flags); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	registry := lint.DefaultRegistry
	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:          workDir,
		ExplicitPath:        configPath,
		IgnoreSystemConfig:  flags.noConfigLookup,
		IgnoreUserConfig:    flags.noConfigLookup,
		IgnoreProjectConfig: flags.noConfigLookup,
		IgnoreESLint:        flags.noConfigLookup,
		NonInteractive:      flags.stdin,
		Registry:            registry,
		CLIConfig:           cliCfg,
	})
	if err != nil {
		return fmt.Errorf("%w: load configuration: %w", ErrUsage, err)
	}
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldFix, cfg.Fix,
		logging.FieldDryRun, cfg.FixDryRun,
		logging.FieldJobs, cfg.Jobs,
	)

	pipeline := newPipeline(cfg, registry)

	resultCache, err := openCache(cfg, registry, workDir)
	if err != nil {
		return err
	}
	if resultCache != nil {
		pipeline.Cache = resultCache
	}

	var result *runner.Result
	if flags.stdin {
		result, err = lintStdin(ctx, cmd.InOrStdin(), pipeline, cfg, flags.stdinFilename)
	} else {
		result, err = lintPaths(ctx, pipeline, cfg, args, workDir, logger)
	}
	if err != nil {
		return err
	}

	if resultCache != nil {
		if err := resultCache.Save(ctx); err != nil {
			logger.Warn("could not save cache", logging.FieldPath, cfg.Cache.Location, logging.FieldError, err)
		}
	}

	if cfg.Quiet {
		result = result.ErrorsOnly()
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:           cmd.OutOrStdout(),
		ErrorWriter:      cmd.ErrOrStderr(),
		Format:           cfg.Format,
		Color:            colorMode,
		ShowContext:      !flags.noContext,
		ShowSummary:      true,
		GroupByFile:      true,
		Compact:          flags.compact,
		PerFile:          flags.perFile,
		SummaryOrder:     reporter.SummaryOrder(flags.summaryOrder),
		SummarySort:      analysis.SortField(flags.summarySort),
		WorkingDir:       workDir,
		ToolVersion:      info.Version,
		RuleDescriptions: ruleDescriptions(registry),
	})
	if err != nil {
		return fmt.Errorf("%w: create reporter: %w", ErrUsage, err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	switch ExitCodeFromResult(result, cfg.MaxWarnings) {
	case ExitSuccess:
		return nil
	case ExitInternalError:
		return ErrFilesFailed
	default:
		if !result.HasFailures() {
			fmt.Fprintf(cmd.ErrOrStderr(), "gojslint found too many warnings (maximum: %d).\n", cfg.MaxWarnings)
		}
		return ErrLintIssuesFound
	}
}

// applyLintFlags copies explicitly set flags into the CLI configuration layer.
// Unset flags stay zero so that they do not override file or env settings.
func applyLintFlags(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) error {
	changed := cmd.Flags().Changed

	if !reporter.SummaryOrder(flags.summaryOrder).IsValid() {
		return fmt.Errorf("invalid --summary-order %q (expected rules or files)", flags.summaryOrder)
	}
	if _, err := analysis.ParseSortField(flags.summarySort); err != nil {
		return fmt.Errorf("--summary-sort: %w", err)
	}

	if changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if changed("fix-type") {
		cfg.FixTypes = flags.fixTypes
	}
	if changed("ignore-pattern") {
		cfg.Ignore = flags.ignorePatterns
	}
	if changed("ext") {
		cfg.Extensions = normalizeExtensions(flags.extensions)
	}
	if changed("report-unused-disable-directives") {
		severity, err := config.ParseSeverity(flags.reportUnused)
		if err != nil {
			return fmt.Errorf("--report-unused-disable-directives: %w", err)
		}
		cfg.ReportUnusedDisableDirectives = &severity
	}
	if changed("cache-location") {
		cfg.Cache.Location = flags.cacheLocation
	}
	if len(flags.rules) > 0 {
		ruleCfgs, err := parseRuleFlags(flags.rules)
		if err != nil {
			return err
		}
		cfg.Rules = ruleCfgs
	}
	if flags.stdinFilename != "" && !flags.stdin {
		return errors.New("--stdin-filename requires --stdin")
	}

	return nil
}

// parseRuleFlags reads --rule values. Each value is the body of a YAML flow
// mapping, as in "semi: error" or "quotes: [warn, {style: double}]".
func parseRuleFlags(values []string) (map[string]config.RuleConfig, error) {
	out := make(map[string]config.RuleConfig)
	for _, value := range values {
		var raw map[string]any
		if err := yaml.Unmarshal([]byte("{"+value+"}"), &raw); err != nil {
			return nil, fmt.Errorf("--rule %q: %w", value, err)
		}
		for ruleID, ruleValue := range raw {
			rc, err := config.RuleConfigFromAny(ruleValue)
			if err != nil {
				return nil, fmt.Errorf("--rule %q: %s: %w", value, ruleID, err)
			}
			out[ruleID] = out[ruleID].Merge(rc)
		}
	}
	return out, nil
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		if ext != "" && ext[0] != '.' {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

// newPipeline builds the JavaScript linter and, when enabled, the Markdown
// processor for fenced code blocks.
func newPipeline(cfg *config.Config, registry *lint.Registry) *lint.Pipeline {
	linter := lint.NewLinter(js.New(), registry)
	if !cfg.Markdown.Enabled {
		return lint.NewPipeline(linter)
	}
	return lint.NewPipeline(linter, markdown.New(markdown.Options{
		Languages:       cfg.Markdown.Languages,
		DetectUnlabeled: true,
		Extensions:      markdown.DefaultExtensions,
	}))
}

// openCache opens the result cache when --cache is set. Fix runs never use
// the cache.
func openCache(cfg *config.Config, registry *lint.Registry, workDir string) (*cache.Cache, error) {
	if !cfg.Cache.Enabled || cfg.Fix || cfg.FixDryRun {
		return nil, nil //nolint:nilnil // No cache is a valid outcome.
	}

	location := cfg.Cache.Location
	if !filepath.IsAbs(location) {
		location = filepath.Join(workDir, location)
	}

	hash, err := cache.ConfigHash(cfg, registry.IDs())
	if err != nil {
		return nil, fmt.Errorf("hash configuration: %w", err)
	}

	resultCache, err := cache.Open(afero.NewOsFs(), location, hash)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return resultCache, nil
}

func lintPaths(
	ctx context.Context,
	pipeline *lint.Pipeline,
	cfg *config.Config,
	paths []string,
	workDir string,
	logger *log.Logger,
) (*runner.Result, error) {
	extensions := cfg.Extensions
	if cfg.Markdown.Enabled {
		extensions = append(slices.Clone(extensions), markdown.DefaultExtensions...)
	}

	opts := runner.Options{
		Paths:        paths,
		WorkingDir:   workDir,
		Extensions:   extensions,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Config:       cfg,
	}

	logger.Debug("starting lint run",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldJobs, opts.Jobs,
	)

	result, err := runner.New(pipeline).Run(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("lint run failed: %w", err)
	}
	return result, nil
}

// lintStdin lints text read from in. Fixes are never written anywhere; the
// fixed text is reported through the output of the json format.
func lintStdin(
	ctx context.Context,
	in io.Reader,
	pipeline *lint.Pipeline,
	cfg *config.Config,
	filename string,
) (*runner.Result, error) {
	content, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if filename == "" {
		filename = defaultStdinFilename
	}

	opts := lint.PipelineOptionsFromConfig(cfg)
	opts.DryRun = true

	pr, err := pipeline.ProcessContent(ctx, filename, content, cfg, opts)
	if err != nil {
		return runner.NewResult(runner.FileOutcome{Path: filename, Error: err}), nil
	}
	return runner.NewResult(runner.FileOutcome{Path: filename, Result: pr}), nil
}

func ruleDescriptions(registry *lint.Registry) map[string]string {
	rules := registry.Rules()
	out := make(map[string]string, len(rules))
	for _, rule := range rules {
		out[rule.ID()] = rule.Description()
	}
	return out
}

func addLintFlags(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) {
	cmd.Flags().BoolVar(&cfg.Fix, "fix", false, "automatically fix problems")
	cmd.Flags().BoolVar(&cfg.FixDryRun, "fix-dry-run", false, "compute fixes without writing files")
	cmd.Flags().StringSliceVar(&flags.fixTypes, "fix-type", nil,
		"fix types to apply: problem, suggestion, layout, directive")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "text",
		"output format: text, table, json, sarif, diff, summary")
	cmd.Flags().IntVarP(&cfg.Jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVarP(&cfg.Quiet, "quiet", "q", false, "report errors only")
	cmd.Flags().IntVar(&cfg.MaxWarnings, "max-warnings", -1,
		"number of warnings that triggers a failing exit code (-1 = unlimited)")
	cmd.Flags().BoolVar(&cfg.NoInlineConfig, "no-inline-config", false, "ignore directive comments")
	cmd.Flags().StringVar(&flags.reportUnused, "report-unused-disable-directives", "",
		"severity for directives that suppress nothing: off, warn, error")
	cmd.Flags().StringArrayVar(&flags.rules, "rule", nil,
		"rule configuration, e.g. 'semi: error' (repeatable)")
	cmd.Flags().StringSliceVar(&flags.ignorePatterns, "ignore-pattern", nil, "glob patterns of files to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "file extensions to lint, e.g. .js,.jsx")
	cmd.Flags().BoolVar(&cfg.Markdown.Enabled, "markdown", false, "lint JavaScript code blocks in Markdown files")
	cmd.Flags().BoolVar(&cfg.Cache.Enabled, "cache", false, "only lint changed files")
	cmd.Flags().StringVar(&flags.cacheLocation, "cache-location", "", "path to the cache file")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when fixing")
	cmd.Flags().BoolVar(&flags.stdin, "stdin", false, "lint code read from stdin")
	cmd.Flags().StringVar(&flags.stdinFilename, "stdin-filename", "", "file name used to report stdin input")
	cmd.Flags().BoolVar(&flags.noConfigLookup, "no-config-lookup", false,
		"ignore system, user, project and ESLint config files")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.perFile, "per-file", false, "output separate report for each file (table format)")
	cmd.Flags().StringVar(&flags.summaryOrder, "summary-order", "rules",
		"order of tables in summary output: rules, files")
	cmd.Flags().StringVar(&flags.summarySort, "summary-sort", string(analysis.SortByCount),
		"order of rows in summary output: count, alpha, severity")
}
