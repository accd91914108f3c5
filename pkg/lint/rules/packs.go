package rules

import "github.com/yaklabco/gojslint/pkg/config"

// Pack describes a named group of rule defaults for a particular use case.
// Packs are configuration fragments that can be used as starting points
// for .gojslint.yml files.
type Pack struct {
	// Name is the short identifier for the pack (e.g., "recommended", "strict").
	Name string

	// Description explains the purpose and characteristics of the pack.
	Description string

	// Rules contains rule configurations keyed by rule ID.
	Rules map[string]config.RuleConfig
}

// RecommendedPack returns the rules that catch likely mistakes without
// enforcing a formatting style.
func RecommendedPack() Pack {
	return Pack{
		Name:        "recommended",
		Description: "Likely mistakes: debugger statements, loose equality, leftover dialogs",
		Rules: map[string]config.RuleConfig{
			"no-debugger": withSeverity(config.SeverityError),
			"eqeqeq":      withSeverity(config.SeverityError),
			"no-alert":    withSeverity(config.SeverityWarn),
			"no-console":  withSeverity(config.SeverityWarn),
		},
	}
}

// LayoutPack returns the fixable formatting rules.
func LayoutPack() Pack {
	return Pack{
		Name:        "layout",
		Description: "Formatting only: semicolons, quotes, trailing whitespace, final newline",
		Rules: map[string]config.RuleConfig{
			"semi":               withSeverity(config.SeverityWarn),
			"quotes":             withSeverity(config.SeverityWarn),
			"no-trailing-spaces": withSeverity(config.SeverityWarn),
			"eol-last":           withSeverity(config.SeverityWarn),
		},
	}
}

// StrictPack returns every built-in rule as an error.
func StrictPack() Pack {
	return Pack{
		Name:        "strict",
		Description: "Strict pack: every built-in rule as an error",
		Rules: map[string]config.RuleConfig{
			"no-debugger":        withSeverity(config.SeverityError),
			"eqeqeq":             withSeverity(config.SeverityError),
			"no-alert":           withSeverity(config.SeverityError),
			"no-console":         withSeverity(config.SeverityError),
			"no-var":             withSeverity(config.SeverityError),
			"camelcase":          withSeverity(config.SeverityError),
			"semi":               withSeverity(config.SeverityError),
			"quotes":             withSeverity(config.SeverityError),
			"no-trailing-spaces": withSeverity(config.SeverityError),
			"eol-last":           withSeverity(config.SeverityError),
		},
	}
}

// Packs returns all built-in rule packs.
func Packs() []Pack {
	return []Pack{
		RecommendedPack(),
		LayoutPack(),
		StrictPack(),
	}
}

// PackByName returns a pack by name, or nil if not found.
func PackByName(name string) *Pack {
	for _, p := range Packs() {
		if p.Name == name {
			return &p
		}
	}
	return nil
}

// PackNames returns the names of all available packs.
func PackNames() []string {
	packs := Packs()
	names := make([]string, len(packs))
	for i, p := range packs {
		names[i] = p.Name
	}
	return names
}

// ApplyPack copies the pack's rule settings into cfg. Existing settings
// for the same rule are merged, with the pack winning.
func ApplyPack(cfg *config.Config, pack Pack) {
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]config.RuleConfig, len(pack.Rules))
	}
	for id, rc := range pack.Rules {
		cfg.Rules[id] = cfg.Rules[id].Merge(rc)
	}
}

func withSeverity(sev config.Severity) config.RuleConfig {
	return config.RuleConfig{Severity: sev.Ptr()}
}
