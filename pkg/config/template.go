package config

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full lists every rule with its documentation.
	Full bool

	// Format is "yaml" or "toml".
	Format string

	// Rules describes the available rules. Only used when Full is set.
	Rules []RuleInfo
}

// RuleInfo contains rule metadata for template generation.
type RuleInfo struct {
	ID          string
	Description string
	Type        string
	Severity    Severity
	CanFix      bool
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "", "yaml", "yml":
		return generateYAMLTemplate(opts), nil
	case "toml":
		return generateTOMLTemplate(opts), nil
	default:
		return nil, fmt.Errorf("unsupported template format %q", opts.Format)
	}
}

func sortedRules(rules []RuleInfo) []RuleInfo {
	out := append([]RuleInfo(nil), rules...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func generateYAMLTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Honor directive comments such as /* disable no-alert */
allow_inline_config: true

# Report directive comments that suppress nothing: off, warn or error
report_unused_disable_directives: warn

# Prefix for directive keywords, e.g. "eslint-" for /* eslint-disable */
# directive_prefix: ""

# File patterns to ignore (glob patterns)
ignore:
  - "node_modules/**"
  - "dist/**"

# Lint javascript code fences in Markdown files
markdown:
  enabled: false

`)

	if !opts.Full {
		buf.WriteString(`# Rule configuration: off, warn, error, or [severity, {options}]
rules:
  no-debugger: error
  semi: [error, {style: always}]
`)
		return buf.Bytes()
	}

	buf.WriteString("rules:\n")
	for _, rule := range sortedRules(opts.Rules) {
		buf.WriteString("  # " + wrapComment(rule.Description, commentWrapWidth, "  # ") + "\n")
		if rule.CanFix {
			buf.WriteString("  # fixable (" + rule.Type + ")\n")
		}
		buf.WriteString(fmt.Sprintf("  %s: %s\n", rule.ID, rule.Severity))
	}

	return buf.Bytes()
}

func generateTOMLTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

allow_inline_config = true
report_unused_disable_directives = "warn"
ignore = ["node_modules/**", "dist/**"]

[markdown]
enabled = false

[rules]
`)

	if !opts.Full {
		buf.WriteString(`no-debugger = "error"
semi = ["error", { style = "always" }]
`)
		return buf.Bytes()
	}

	for _, rule := range sortedRules(opts.Rules) {
		buf.WriteString("# " + wrapComment(rule.Description, commentWrapWidth, "# ") + "\n")
		buf.WriteString(fmt.Sprintf("%q = %q\n", rule.ID, rule.Severity.String()))
	}

	return buf.Bytes()
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int, prefix string) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n"+prefix)
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gojslint configuration
# See: https://github.com/yaklabco/gojslint`
}
