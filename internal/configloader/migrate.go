package configloader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/lint"
	"github.com/yaklabco/gojslint/pkg/lint/rules"
)

// MigrationResult contains the result of converting an ESLint config.
type MigrationResult struct {
	// Config is the converted gojslint configuration.
	Config *config.Config

	// Warnings contains non-fatal issues encountered during conversion.
	Warnings []string

	// SourcePath is the path to the original ESLint config.
	SourcePath string
}

// ignoredESLintKeys have no gojslint counterpart and are dropped with a warning.
//
//nolint:gochecknoglobals // Read-only lookup table.
var ignoredESLintKeys = []string{
	"env", "globals", "parser", "parserOptions", "plugins", "settings", "overrides", "processor",
}

// ConvertESLintConfig converts a legacy ESLint config file (.eslintrc.json,
// .eslintrc, .eslintrc.yml) to a gojslint configuration.
func ConvertESLintConfig(path string) (*MigrationResult, error) {
	return ConvertESLintConfigWithRegistry(path, lint.DefaultRegistry)
}

// ConvertESLintConfigWithRegistry converts path, resolving rule names in registry.
func ConvertESLintConfigWithRegistry(path string, registry *lint.Registry) (*MigrationResult, error) {
	if IsJavaScriptConfig(path) {
		return nil, fmt.Errorf("cannot convert JavaScript config file %q; please create a gojslint config manually", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var raw map[string]any
	switch DetectConfigFormat(path) {
	case "json":
		if err := parseJSONC(content, &raw); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(content, &raw); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	}

	result := &MigrationResult{SourcePath: path, Config: config.NewConfig()}
	convertESLintConfig(raw, registry, result)
	return result, nil
}

func convertESLintConfig(raw map[string]any, registry *lint.Registry, result *MigrationResult) {
	cfg := result.Config

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := raw[key]
		switch key {
		case "root", "$schema":
		case "extends":
			applyExtends(cfg, value, result)
		case "rules":
			rulesMap, ok := value.(map[string]any)
			if !ok {
				result.Warnings = append(result.Warnings, "'rules' is not a mapping; skipping")
				continue
			}
			convertRules(cfg, rulesMap, registry, result)
		case "noInlineConfig":
			if disabled, ok := value.(bool); ok && disabled {
				allow := false
				cfg.AllowInlineConfig = &allow
			}
		case "reportUnusedDisableDirectives":
			convertUnusedDirectives(cfg, value, result)
		case "ignorePatterns":
			cfg.Ignore = append(cfg.Ignore, stringList(value)...)
		default:
			if slices.Contains(ignoredESLintKeys, key) {
				result.Warnings = append(result.Warnings, fmt.Sprintf("%q is not supported by gojslint; skipping", key))
				continue
			}
			result.Warnings = append(result.Warnings, fmt.Sprintf("unknown key %q; skipping", key))
		}
	}
}

// applyExtends replaces shareable configs with the matching rule packs.
func applyExtends(cfg *config.Config, value any, result *MigrationResult) {
	for _, name := range stringList(value) {
		packName := PackForExtends(name)
		if packName == "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("extends %q has no gojslint equivalent; skipping", name))
			continue
		}
		if pack := rules.PackByName(packName); pack != nil {
			rules.ApplyPack(cfg, *pack)
		}
	}
}

func convertRules(cfg *config.Config, raw map[string]any, registry *lint.Registry, result *MigrationResult) {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ruleID := NormalizeRuleID(registry, name)
		if ruleID == "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("rule %q is not available in gojslint; skipping", name))
			continue
		}

		rc, err := convertRuleValue(raw[name])
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("rule %q: %v; skipping", name, err))
			continue
		}
		cfg.Rules[ruleID] = cfg.Rules[ruleID].Merge(rc)
	}
}

// convertRuleValue accepts ESLint rule entries: a severity, or a list of a
// severity followed by options. A leading string option becomes "style",
// as in ["error", "always"] for semi.
func convertRuleValue(value any) (config.RuleConfig, error) {
	list, ok := value.([]any)
	if !ok || len(list) < 2 {
		return config.RuleConfigFromAny(value)
	}

	options := make(map[string]any)
	for _, opt := range list[1:] {
		switch typed := opt.(type) {
		case string:
			options["style"] = typed
		case map[string]any:
			for k, v := range typed {
				options[k] = v
			}
		}
	}
	if len(options) == 0 {
		return config.RuleConfigFromAny(list[:1])
	}
	return config.RuleConfigFromAny([]any{list[0], options})
}

func convertUnusedDirectives(cfg *config.Config, value any, result *MigrationResult) {
	switch typed := value.(type) {
	case bool:
		severity := config.SeverityOff
		if typed {
			severity = config.SeverityWarn
		}
		cfg.ReportUnusedDisableDirectives = &severity
	default:
		severity, err := config.SeverityFromAny(value)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("reportUnusedDisableDirectives: %v; skipping", err))
			return
		}
		cfg.ReportUnusedDisableDirectives = &severity
	}
}

func stringList(value any) []string {
	switch typed := value.(type) {
	case string:
		return []string{typed}
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// parseJSONC parses JSON that may contain comments.
func parseJSONC(content []byte, target any) error {
	if err := json.Unmarshal(content, target); err == nil {
		return nil
	}

	if err := json.Unmarshal(stripJSONComments(content), target); err != nil {
		return fmt.Errorf("unmarshal stripped JSON: %w", err)
	}
	return nil
}

// stripJSONComments removes JavaScript-style comments from JSON content.
func stripJSONComments(content []byte) []byte {
	var result []byte
	inString := false
	inSingleComment := false
	inMultiComment := false

	for idx := 0; idx < len(content); idx++ {
		char := content[idx]

		if inSingleComment {
			if char == '\n' {
				inSingleComment = false
				result = append(result, char)
			}
			continue
		}

		if inMultiComment {
			if char == '*' && idx+1 < len(content) && content[idx+1] == '/' {
				inMultiComment = false
				idx++
			}
			continue
		}

		if inString {
			result = append(result, char)
			if char == '\\' && idx+1 < len(content) {
				idx++
				result = append(result, content[idx])
			} else if char == '"' {
				inString = false
			}
			continue
		}

		if char == '"' {
			inString = true
			result = append(result, char)
			continue
		}

		if char == '/' && idx+1 < len(content) {
			switch content[idx+1] {
			case '/':
				inSingleComment = true
				idx++
				continue
			case '*':
				inMultiComment = true
				idx++
				continue
			}
		}

		result = append(result, char)
	}

	return result
}

// GenerateMigrationHeader returns a header comment for migrated configs.
func GenerateMigrationHeader(sourcePath string) string {
	return config.DefaultTemplateHeader() + "\n# Migrated from: " + filepath.Base(sourcePath) + "\n\n"
}

// CanMigrate returns true if the config file can be migrated.
// JavaScript config files cannot be migrated.
func CanMigrate(path string) bool {
	return !IsJavaScriptConfig(path)
}

// GetMigrationWarning returns a warning message for files that cannot be migrated.
func GetMigrationWarning(path string) string {
	if IsJavaScriptConfig(path) {
		return fmt.Sprintf("JavaScript config file (%s) cannot be converted automatically; "+
			"please create a .gojslint.yml file manually or run 'gojslint init'", filepath.Base(path))
	}
	return ""
}
