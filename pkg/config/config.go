// Package config defines the configuration types for gojslint.
// These types are plain data; discovery and merging live in internal/configloader.
package config

// BackupsConfig controls backup behavior when fixing files.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Mode    string `yaml:"mode" toml:"mode"` // "sidecar" or "none"
}

// CacheConfig controls the on-disk lint result cache.
type CacheConfig struct {
	Enabled  bool   `yaml:"enabled" toml:"enabled"`
	Location string `yaml:"location,omitempty" toml:"location"`
}

// MarkdownConfig controls linting of fenced code blocks inside Markdown files.
type MarkdownConfig struct {
	Enabled bool `yaml:"enabled" toml:"enabled"`

	// Languages lists fence info strings treated as JavaScript.
	Languages []string `yaml:"languages,omitempty" toml:"languages"`
}

// Config is the root configuration structure.
type Config struct {
	// Rules contains per-rule configuration keyed by rule ID.
	Rules map[string]RuleConfig `yaml:"rules" toml:"rules"`

	// AllowInlineConfig controls whether directive comments are honored.
	// Nil means true.
	AllowInlineConfig *bool `yaml:"allow_inline_config,omitempty" toml:"allow_inline_config"`

	// ReportUnusedDisableDirectives is the severity of unused-directive reports.
	// Nil means off.
	ReportUnusedDisableDirectives *Severity `yaml:"report_unused_disable_directives,omitempty" toml:"report_unused_disable_directives"`

	// DirectivePrefix is prepended to every directive keyword, e.g. "eslint-".
	DirectivePrefix string `yaml:"directive_prefix,omitempty" toml:"directive_prefix"`

	// Extensions lists file extensions that are linted when walking directories.
	Extensions []string `yaml:"extensions,omitempty" toml:"extensions"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore"`

	Markdown MarkdownConfig `yaml:"markdown" toml:"markdown"`
	Cache    CacheConfig    `yaml:"cache" toml:"cache"`
	Backups  BackupsConfig  `yaml:"backups" toml:"backups"`

	// CLI-level options (not persisted to config files).

	// Fix enables auto-fixing of issues.
	Fix bool `yaml:"-" toml:"-"`

	// FixDryRun computes fixes and reports diffs without writing files.
	FixDryRun bool `yaml:"-" toml:"-"`

	// FixTypes limits fixing to rules of the given types
	// (problem, suggestion, layout, directive). Empty means all.
	FixTypes []string `yaml:"-" toml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-" toml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-" toml:"-"`

	// Quiet reports errors only.
	Quiet bool `yaml:"-" toml:"-"`

	// MaxWarnings fails the run when exceeded. Negative disables the check.
	MaxWarnings int `yaml:"-" toml:"-"`

	// NoBackups disables backup creation when fixing.
	NoBackups bool `yaml:"-" toml:"-"`

	// NoInlineConfig ignores directive comments without warning.
	NoInlineConfig bool `yaml:"-" toml:"-"`
}

// DefaultExtensions are linted when no extensions are configured.
func DefaultExtensions() []string {
	return []string{".js", ".cjs", ".mjs"}
}

// DefaultMarkdownLanguages are the fence info strings linted by default.
func DefaultMarkdownLanguages() []string {
	return []string{"js", "javascript", "cjs", "mjs"}
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Rules:      make(map[string]RuleConfig),
		Extensions: DefaultExtensions(),
		Markdown: MarkdownConfig{
			Enabled:   false,
			Languages: DefaultMarkdownLanguages(),
		},
		Cache: CacheConfig{
			Enabled:  false,
			Location: ".gojslintcache",
		},
		Backups: BackupsConfig{
			Enabled: false,
			Mode:    "sidecar",
		},
		Format:      FormatText,
		Jobs:        0, // 0 means use GOMAXPROCS
		MaxWarnings: -1,
	}
}

// InlineConfigAllowed reports whether directive comments are honored.
func (c *Config) InlineConfigAllowed() bool {
	return c == nil || c.AllowInlineConfig == nil || *c.AllowInlineConfig
}

// UnusedDirectiveSeverity returns the severity for unused-directive reports.
func (c *Config) UnusedDirectiveSeverity() Severity {
	if c == nil || c.ReportUnusedDisableDirectives == nil {
		return SeverityOff
	}
	return *c.ReportUnusedDisableDirectives
}

// SetRule sets the severity of a rule, keeping any configured options.
func (c *Config) SetRule(ruleID string, severity Severity) {
	if c.Rules == nil {
		c.Rules = make(map[string]RuleConfig)
	}
	rc := c.Rules[ruleID]
	rc.Severity = severity.Ptr()
	c.Rules[ruleID] = rc
}
