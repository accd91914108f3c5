package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/gojslint/pkg/config"
)

// envVarPrefix is the prefix for all gojslint environment variables.
const envVarPrefix = "GOJSLINT_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FIX":                              {field: "fix", typ: envTypeBool},
	"FIX_DRY_RUN":                      {field: "fix_dry_run", typ: envTypeBool},
	"FIX_TYPE":                         {field: "fix_type", typ: envTypeSlice},
	"JOBS":                             {field: "jobs", typ: envTypeInt},
	"FORMAT":                           {field: "format", typ: envTypeString},
	"QUIET":                            {field: "quiet", typ: envTypeBool},
	"MAX_WARNINGS":                     {field: "max_warnings", typ: envTypeInt},
	"NO_INLINE_CONFIG":                 {field: "no_inline_config", typ: envTypeBool},
	"REPORT_UNUSED_DISABLE_DIRECTIVES": {field: "report_unused_disable_directives", typ: envTypeString},
	"DIRECTIVE_PREFIX":                 {field: "directive_prefix", typ: envTypeString},
	"EXTENSIONS":                       {field: "extensions", typ: envTypeSlice},
	"CACHE":                            {field: "cache.enabled", typ: envTypeBool},
	"CACHE_LOCATION":                   {field: "cache.location", typ: envTypeString},
	"BACKUPS_ENABLED":                  {field: "backups.enabled", typ: envTypeBool},
	"BACKUPS_MODE":                     {field: "backups.mode", typ: envTypeString},
	"IGNORE":                           {field: "ignore", typ: envTypeSlice},
	"NO_BACKUPS":                       {field: "no_backups", typ: envTypeBool},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with GOJSLINT_ (e.g., GOJSLINT_FIX).
func LoadFromEnv(cfg *config.Config) error {
	return loadFromEnv(cfg, os.Getenv)
}

func loadFromEnv(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value, envVar)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value, envVar string) error {
	switch field {
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "report_unused_disable_directives":
		severity, err := config.ParseSeverity(value)
		if err != nil {
			return fmt.Errorf("invalid severity for %s: %w", envVar, err)
		}
		cfg.ReportUnusedDisableDirectives = &severity
	case "directive_prefix":
		cfg.DirectivePrefix = value
	case "cache.location":
		cfg.Cache.Location = value
	case "backups.mode":
		cfg.Backups.Mode = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "fix":
		cfg.Fix = value
	case "fix_dry_run":
		cfg.FixDryRun = value
	case "quiet":
		cfg.Quiet = value
	case "no_inline_config":
		cfg.NoInlineConfig = value
	case "cache.enabled":
		cfg.Cache.Enabled = value
	case "backups.enabled":
		cfg.Backups.Enabled = value
	case "no_backups":
		cfg.NoBackups = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	case "max_warnings":
		cfg.MaxWarnings = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	case "extensions":
		cfg.Extensions = value
	case "fix_type":
		cfg.FixTypes = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns the supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"GOJSLINT_FIX":                              "Enable auto-fix: true or false",
		"GOJSLINT_FIX_DRY_RUN":                      "Compute fixes without writing: true or false",
		"GOJSLINT_FIX_TYPE":                         "Comma-separated fix types: problem, suggestion, layout, directive",
		"GOJSLINT_JOBS":                             "Number of parallel workers (0 = auto)",
		"GOJSLINT_FORMAT":                           "Output format: text, table, json, sarif, diff, or summary",
		"GOJSLINT_QUIET":                            "Report errors only: true or false",
		"GOJSLINT_MAX_WARNINGS":                     "Fail when more warnings are reported (-1 = no limit)",
		"GOJSLINT_NO_INLINE_CONFIG":                 "Ignore directive comments: true or false",
		"GOJSLINT_REPORT_UNUSED_DISABLE_DIRECTIVES": "Severity of unused directive reports: off, warn, or error",
		"GOJSLINT_DIRECTIVE_PREFIX":                 "Prefix for directive keywords, e.g. eslint-",
		"GOJSLINT_EXTENSIONS":                       "Comma-separated file extensions to lint",
		"GOJSLINT_CACHE":                            "Skip files that linted clean before: true or false",
		"GOJSLINT_CACHE_LOCATION":                   "Path of the cache file",
		"GOJSLINT_BACKUPS_ENABLED":                  "Enable backups when fixing: true or false",
		"GOJSLINT_BACKUPS_MODE":                     "Backup mode: sidecar or none",
		"GOJSLINT_IGNORE":                           "Comma-separated list of ignore patterns",
		"GOJSLINT_NO_BACKUPS":                       "Disable backups: true or false",
	}
}
