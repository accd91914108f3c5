package configloader

import (
	"strings"

	"github.com/yaklabco/gojslint/pkg/lint"
)

// pluginPrefixes are stripped from ESLint rule names. The stylistic plugin
// took over the layout rules that gojslint ships as core rules.
//
//nolint:gochecknoglobals // Read-only lookup table.
var pluginPrefixes = []string{
	"@stylistic/js/",
	"@stylistic/",
	"stylistic/",
}

// extendsPacks maps ESLint shareable configs to built-in rule packs.
//
//nolint:gochecknoglobals // Read-only lookup table.
var extendsPacks = map[string]string{
	"eslint:recommended":            "recommended",
	"eslint:all":                    "strict",
	"plugin:@stylistic/recommended": "layout",
	"plugin:@stylistic/js/all":      "layout",
}

// NormalizeRuleID resolves an ESLint rule name or a gojslint alias to the
// canonical rule ID in registry. Returns "" for rules gojslint lacks.
func NormalizeRuleID(registry *lint.Registry, key string) string {
	name := strings.TrimSpace(key)
	for _, prefix := range pluginPrefixes {
		if trimmed, ok := strings.CutPrefix(name, prefix); ok {
			name = trimmed
			break
		}
	}

	id, _, found := registry.Resolve(name)
	if !found {
		return ""
	}
	return id
}

// PackForExtends returns the rule pack that stands in for an ESLint
// "extends" entry, or "".
func PackForExtends(name string) string {
	return extendsPacks[name]
}
