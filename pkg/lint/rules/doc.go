// Package rules provides the built-in lint rules for gojslint.
//
// # Rule Types
//
// Every rule declares a type, which --fix-type uses to limit fixing.
//
// problem: code that is probably wrong.
//
//   - no-debugger: debugger statements (enabled by default)
//
// suggestion: code that works but has a clearer form.
//
//   - eqeqeq: loose equality operators (enabled by default)
//   - no-var: var declarations (fixable)
//   - camelcase: identifiers that are not camel case
//   - no-console: console method calls (warn when enabled)
//   - no-alert: alert, confirm and prompt calls
//
// layout: formatting that does not change meaning. All are fixable.
//
//   - semi: missing or extra semicolons
//   - quotes: string quote style
//   - no-trailing-spaces: whitespace at the end of lines
//   - eol-last: newline at the end of the file
//
// # Registration
//
// Importing this package registers every rule, and its legacy config
// aliases, with lint.DefaultRegistry.
//
// # Options
//
// Rules read their options from config.RuleConfig.Options through the
// lint.RuleContext helpers, so the same keys work in YAML, TOML and
// inline "rules" directive comments:
//
//	rules:
//	  semi: { severity: error, options: { style: never } }
//	  quotes: { severity: warn, options: { style: single, avoidEscape: true } }
package rules
