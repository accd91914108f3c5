package config

import (
	"errors"
	"fmt"
	"maps"

	"gopkg.in/yaml.v3"
)

// ErrInvalidRuleConfig is returned when a rule entry has an unsupported shape.
var ErrInvalidRuleConfig = errors.New("invalid rule configuration")

// RuleConfig holds per-rule configuration.
//
// Three shapes are accepted in YAML and TOML:
//
//	semi: error                                  # severity only
//	quotes: [warn, {style: double}]              # severity plus options
//	eol-last: {severity: warn, auto_fix: false}  # mapping
type RuleConfig struct {
	// Severity overrides the rule's default severity. Nil keeps the default.
	Severity *Severity `yaml:"severity,omitempty" toml:"severity"`

	// AutoFix disables fixing for this rule when set to false.
	AutoFix *bool `yaml:"auto_fix,omitempty" toml:"auto_fix"`

	// Options are passed to the rule.
	Options map[string]any `yaml:"options,omitempty" toml:"options"`
}

// ruleConfigMapping mirrors RuleConfig without its custom unmarshalers.
type ruleConfigMapping struct {
	Severity *Severity      `yaml:"severity"`
	AutoFix  *bool          `yaml:"auto_fix"`
	Options  map[string]any `yaml:"options"`
}

// UnmarshalYAML decodes the scalar, sequence and mapping forms.
func (rc *RuleConfig) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var severity Severity
		if err := severity.UnmarshalYAML(node); err != nil {
			return err
		}
		*rc = RuleConfig{Severity: &severity}
		return nil

	case yaml.SequenceNode:
		var items []any
		if err := node.Decode(&items); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		parsed, err := RuleConfigFromAny(items)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*rc = parsed
		return nil

	case yaml.MappingNode:
		var mapping ruleConfigMapping
		if err := node.Decode(&mapping); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*rc = RuleConfig(mapping)
		return nil

	default:
		return fmt.Errorf("line %d: %w", node.Line, ErrInvalidRuleConfig)
	}
}

// MarshalYAML writes the shortest form that preserves the configuration.
func (rc RuleConfig) MarshalYAML() (any, error) {
	if rc.AutoFix == nil && len(rc.Options) == 0 && rc.Severity != nil {
		return rc.Severity.String(), nil
	}
	return ruleConfigMapping(rc), nil
}

// UnmarshalTOML decodes the scalar, array and table forms.
func (rc *RuleConfig) UnmarshalTOML(value any) error {
	parsed, err := RuleConfigFromAny(value)
	if err != nil {
		return err
	}
	*rc = parsed
	return nil
}

// RuleConfigFromAny converts a generic decoded value into a RuleConfig.
// It is shared by the TOML decoder and inline rule-config comments.
func RuleConfigFromAny(value any) (RuleConfig, error) {
	switch typed := value.(type) {
	case []any:
		if len(typed) == 0 {
			return RuleConfig{}, fmt.Errorf("%w: empty list", ErrInvalidRuleConfig)
		}
		severity, err := SeverityFromAny(typed[0])
		if err != nil {
			return RuleConfig{}, err
		}
		rc := RuleConfig{Severity: &severity}
		switch len(typed) {
		case 1:
		case 2:
			options, ok := asStringMap(typed[1])
			if !ok {
				return RuleConfig{}, fmt.Errorf("%w: options must be a mapping", ErrInvalidRuleConfig)
			}
			rc.Options = options
		default:
			return RuleConfig{}, fmt.Errorf("%w: expected [severity] or [severity, options]", ErrInvalidRuleConfig)
		}
		return rc, nil

	case map[string]any:
		var rc RuleConfig
		for key, raw := range typed {
			switch key {
			case "severity":
				severity, err := SeverityFromAny(raw)
				if err != nil {
					return RuleConfig{}, err
				}
				rc.Severity = &severity
			case "auto_fix":
				autoFix, ok := raw.(bool)
				if !ok {
					return RuleConfig{}, fmt.Errorf("%w: auto_fix must be a boolean", ErrInvalidRuleConfig)
				}
				rc.AutoFix = &autoFix
			case "options":
				options, ok := asStringMap(raw)
				if !ok {
					return RuleConfig{}, fmt.Errorf("%w: options must be a mapping", ErrInvalidRuleConfig)
				}
				rc.Options = options
			default:
				return RuleConfig{}, fmt.Errorf("%w: unknown key %q", ErrInvalidRuleConfig, key)
			}
		}
		return rc, nil

	default:
		severity, err := SeverityFromAny(value)
		if err != nil {
			return RuleConfig{}, err
		}
		return RuleConfig{Severity: &severity}, nil
	}
}

func asStringMap(value any) (map[string]any, bool) {
	switch typed := value.(type) {
	case map[string]any:
		return typed, true
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[key] = v
		}
		return out, true
	default:
		return nil, false
	}
}

// Merge overlays other onto rc. Options are replaced, not merged.
func (rc RuleConfig) Merge(other RuleConfig) RuleConfig {
	merged := rc.clone()
	if other.Severity != nil {
		merged.Severity = other.Severity
	}
	if other.AutoFix != nil {
		merged.AutoFix = other.AutoFix
	}
	if other.Options != nil {
		merged.Options = maps.Clone(other.Options)
	}
	return merged
}

// clone creates a copy of a RuleConfig. Nested option values are shared.
func (rc RuleConfig) clone() RuleConfig {
	out := RuleConfig{}
	if rc.Severity != nil {
		out.Severity = rc.Severity.Ptr()
	}
	if rc.AutoFix != nil {
		autoFix := *rc.AutoFix
		out.AutoFix = &autoFix
	}
	if rc.Options != nil {
		out.Options = maps.Clone(rc.Options)
	}
	return out
}
