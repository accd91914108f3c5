package configloader

import (
	"maps"

	"github.com/yaklabco/gojslint/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointers: override overwrites base if non-nil
//   - Rules: merged per rule with RuleConfig.Merge
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.MaxWarnings >= 0 {
		result.MaxWarnings = override.MaxWarnings
	}
	if override.DirectivePrefix != "" {
		result.DirectivePrefix = override.DirectivePrefix
	}
	if override.AllowInlineConfig != nil {
		allow := *override.AllowInlineConfig
		result.AllowInlineConfig = &allow
	}
	if override.ReportUnusedDisableDirectives != nil {
		result.ReportUnusedDisableDirectives = override.ReportUnusedDisableDirectives.Ptr()
	}

	// Booleans can only be switched on by a later source.
	result.Fix = base.Fix || override.Fix
	result.FixDryRun = base.FixDryRun || override.FixDryRun
	result.Quiet = base.Quiet || override.Quiet
	result.NoBackups = base.NoBackups || override.NoBackups
	result.NoInlineConfig = base.NoInlineConfig || override.NoInlineConfig
	result.Backups.Enabled = base.Backups.Enabled || override.Backups.Enabled
	result.Cache.Enabled = base.Cache.Enabled || override.Cache.Enabled
	result.Markdown.Enabled = base.Markdown.Enabled || override.Markdown.Enabled

	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	if override.Cache.Location != "" {
		result.Cache.Location = override.Cache.Location
	}

	result.Rules = mergeRules(base.Rules, override.Rules)

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.FixTypes != nil {
		result.FixTypes = override.FixTypes
	}
	if override.Markdown.Languages != nil {
		result.Markdown.Languages = override.Markdown.Languages
	}

	return &result
}

// mergeRules merges rule configurations key by key.
func mergeRules(base, override map[string]config.RuleConfig) map[string]config.RuleConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.RuleConfig, len(base)+len(override))
	maps.Copy(result, base)

	for key, val := range override {
		if existing, ok := result[key]; ok {
			result[key] = existing.Merge(val)
		} else {
			result[key] = val
		}
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
