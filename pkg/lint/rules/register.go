package rules

import "github.com/yaklabco/gojslint/pkg/lint"

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	// Problems
	registry.Register(NewNoDebuggerRule())
	registry.Register(NewNoAlertRule())
	registry.Register(NewNoConsoleRule())

	// Suggestions
	registry.Register(NewEqeqeqRule())
	registry.Register(NewNoVarRule())
	registry.Register(NewCamelcaseRule())

	// Layout
	registry.Register(NewSemiRule())
	registry.Register(NewQuotesRule())
	registry.Register(NewNoTrailingSpacesRule())
	registry.Register(NewEOLLastRule())
}

// RegisterLegacyAliases registers alternate names accepted as rule keys in
// configuration files. Directive comments always use the canonical id.
func RegisterLegacyAliases(registry *lint.Registry) {
	registry.RegisterAlias("no-trailing-whitespace", "no-trailing-spaces")
	registry.RegisterAlias("eol-at-end-of-file", "eol-last")
	registry.RegisterAlias("strict-equality", "eqeqeq")
	registry.RegisterAlias("camel-case", "camelcase")
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
	RegisterLegacyAliases(lint.DefaultRegistry)
}
