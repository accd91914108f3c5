package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Severity is the level of a finding or of a configured rule.
// The numeric values match the 0/1/2 shorthand accepted in configuration.
type Severity int

const (
	SeverityOff   Severity = 0
	SeverityWarn  Severity = 1
	SeverityError Severity = 2
)

// ErrInvalidSeverity is returned when a severity token cannot be parsed.
var ErrInvalidSeverity = errors.New("invalid severity")

// ParseSeverity accepts "off", "warn", "warning", "error" (case-insensitive)
// and the numeric forms 0, 1 and 2.
func ParseSeverity(value string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "off", "0":
		return SeverityOff, nil
	case "warn", "warning", "1":
		return SeverityWarn, nil
	case "error", "2":
		return SeverityError, nil
	default:
		return SeverityOff, fmt.Errorf("%w: %q (expected off, warn, error, 0, 1 or 2)", ErrInvalidSeverity, value)
	}
}

// SeverityFromAny converts a decoded YAML, TOML or JSON scalar into a Severity.
func SeverityFromAny(value any) (Severity, error) {
	switch typed := value.(type) {
	case Severity:
		return typed, nil
	case string:
		return ParseSeverity(typed)
	case int:
		return ParseSeverity(strconv.Itoa(typed))
	case int64:
		return ParseSeverity(strconv.FormatInt(typed, 10))
	case uint64:
		return ParseSeverity(strconv.FormatUint(typed, 10))
	case float64:
		if typed != float64(int64(typed)) {
			return SeverityOff, fmt.Errorf("%w: %v", ErrInvalidSeverity, typed)
		}
		return ParseSeverity(strconv.FormatInt(int64(typed), 10))
	default:
		return SeverityOff, fmt.Errorf("%w: %v", ErrInvalidSeverity, value)
	}
}

// String returns the canonical name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityOff:
		return "off"
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	default:
		return "Severity(" + strconv.Itoa(int(s)) + ")"
	}
}

// IsValid returns true for off, warn and error.
func (s Severity) IsValid() bool {
	return s >= SeverityOff && s <= SeverityError
}

// Enabled returns true unless the severity is off.
func (s Severity) Enabled() bool {
	return s != SeverityOff
}

// MarshalYAML writes the canonical name.
func (s Severity) MarshalYAML() (any, error) {
	return s.String(), nil
}

// UnmarshalYAML accepts names and numbers.
func (s *Severity) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: %w: expected a scalar", node.Line, ErrInvalidSeverity)
	}
	parsed, err := ParseSeverity(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*s = parsed
	return nil
}

// MarshalText writes the canonical name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts names and numbers.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// UnmarshalTOML accepts TOML strings and integers.
func (s *Severity) UnmarshalTOML(value any) error {
	parsed, err := SeverityFromAny(value)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Ptr returns a pointer to a copy of s.
func (s Severity) Ptr() *Severity {
	return &s
}
