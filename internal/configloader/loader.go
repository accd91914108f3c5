// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support, validation, and ESLint config migration.
package configloader

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/gojslint/internal/logging"
	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/lint"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// DefaultProjectConfig is the file written by init and migrate.
const DefaultProjectConfig = ".gojslint.yml"

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// IgnoreESLint skips legacy ESLint config detection and migration.
	IgnoreESLint bool

	// NonInteractive disables interactive prompts (e.g., in CI).
	NonInteractive bool

	// Registry resolves rule aliases and validates rule IDs.
	// Nil means lint.DefaultRegistry.
	Registry *lint.Registry

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config

	// Prompt answers the migration question. Nil means stdin/stdout.
	Prompt func(question string) (bool, error)
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string

	// MigrationPerformed is true if an ESLint config was converted.
	MigrationPerformed bool
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (GOJSLINT_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.gojslint.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/gojslint/config.yml)
//  6. System config (/etc/gojslint/config.yml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)
	registry := opts.Registry
	if registry == nil {
		registry = lint.DefaultRegistry
	}

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	result := &LoadResult{Paths: paths}
	paths.Explicit = opts.ExplicitPath

	if !opts.IgnoreESLint && opts.ExplicitPath == "" {
		migrated, err := handleESLintMigration(paths, result, opts, registry)
		if err != nil {
			return nil, err
		}
		if migrated {
			paths, err = DiscoverPaths(ctx, workDir)
			if err != nil {
				return nil, fmt.Errorf("discover paths after migration: %w", err)
			}
			paths.Explicit = opts.ExplicitPath
			result.Paths = paths
		}
	}

	cfg := config.NewConfig()

	layers := []struct {
		name   string
		path   string
		ignore bool
	}{
		{name: "system", path: paths.System, ignore: opts.IgnoreSystemConfig},
		{name: "user", path: paths.User, ignore: opts.IgnoreUserConfig},
		{name: "project", path: paths.Project, ignore: opts.IgnoreProjectConfig},
		{name: "explicit", path: opts.ExplicitPath},
	}
	for _, layer := range layers {
		if layer.ignore || layer.path == "" {
			continue
		}
		layerCfg, err := LoadFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		cfg = merge(cfg, layerCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
		logger.Debug("loaded config", logging.FieldPath, layer.path, logging.FieldLayer, layer.name)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	normalizeRuleKeys(cfg, registry, result)

	validation := ValidateWithRegistry(cfg, registry)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// LoadFile reads one YAML or TOML configuration file.
func LoadFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var cfg *config.Config
	if IsTOMLConfig(path) {
		cfg, err = config.FromTOML(content)
	} else {
		cfg, err = config.FromYAML(content)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	// MaxWarnings is CLI-only; keep files from resetting it to zero.
	cfg.MaxWarnings = -1
	return cfg, nil
}

// handleESLintMigration offers to convert a legacy ESLint config when the
// project has no gojslint config yet.
func handleESLintMigration(
	paths *ConfigPaths,
	result *LoadResult,
	opts LoadOptions,
	registry *lint.Registry,
) (bool, error) {
	if paths.ESLint == "" {
		return false, nil
	}
	if paths.Project != "" {
		return false, nil
	}

	if !CanMigrate(paths.ESLint) {
		result.Warnings = append(result.Warnings, GetMigrationWarning(paths.ESLint))
		return false, nil
	}

	prompt := opts.Prompt
	if prompt == nil {
		if opts.NonInteractive || !isInteractive() {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("found %s but no %s; run 'gojslint migrate' to convert", paths.ESLint, DefaultProjectConfig))
			return false, nil
		}
		prompt = func(question string) (bool, error) {
			return promptYesNo(os.Stdin, os.Stdout, question)
		}
	}

	shouldMigrate, err := prompt(fmt.Sprintf("Found %s but no %s\nConvert to gojslint format?", paths.ESLint, DefaultProjectConfig))
	if err != nil {
		return false, err
	}
	if !shouldMigrate {
		return false, nil
	}

	migration, err := ConvertESLintConfigWithRegistry(paths.ESLint, registry)
	if err != nil {
		return false, fmt.Errorf("convert ESLint config: %w", err)
	}
	result.Warnings = append(result.Warnings, migration.Warnings...)

	workDir := opts.WorkingDir
	if workDir == "" {
		workDir = "."
	}
	outputPath := filepath.Join(workDir, DefaultProjectConfig)
	if err := WriteConfig(migration.Config, outputPath, GenerateMigrationHeader(paths.ESLint)); err != nil {
		return false, fmt.Errorf("write migrated config: %w", err)
	}

	result.MigrationPerformed = true
	result.Warnings = append(result.Warnings,
		fmt.Sprintf("migrated %s to %s; you can now delete the old file", paths.ESLint, outputPath))

	return true, nil
}

// promptYesNo asks a question and defaults to yes.
func promptYesNo(in io.Reader, out io.Writer, question string) (bool, error) {
	if _, err := fmt.Fprint(out, question+" [Y/n] "); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "" || response == "y" || response == "yes", nil
}

// isInteractive returns true if stdin is a terminal.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// WriteConfig writes cfg as YAML after header.
func WriteConfig(cfg *config.Config, path, header string) error {
	content, err := cfg.ToYAML()
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, append([]byte(header), content...), configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

// normalizeRuleKeys converts rule aliases to canonical IDs in the config.
// If a rule is configured under two names, the canonical ID wins.
func normalizeRuleKeys(cfg *config.Config, registry *lint.Registry, result *LoadResult) {
	if len(cfg.Rules) == 0 {
		return
	}

	normalized := make(map[string]config.RuleConfig, len(cfg.Rules))
	aliased := make(map[string]string)

	for key, ruleCfg := range cfg.Rules {
		canonicalID, _, found := registry.Resolve(key)
		if !found {
			normalized[key] = ruleCfg
			continue
		}
		if canonicalID == key {
			normalized[key] = ruleCfg
			continue
		}
		aliased[key] = canonicalID
	}

	for _, alias := range slices.Sorted(maps.Keys(aliased)) {
		canonicalID := aliased[alias]
		if _, exists := normalized[canonicalID]; exists {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate rule configuration: %q and %q both refer to %s; using %s",
					alias, canonicalID, canonicalID, canonicalID))
			continue
		}
		normalized[canonicalID] = cfg.Rules[alias]
	}

	cfg.Rules = normalized
}
