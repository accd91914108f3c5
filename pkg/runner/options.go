// Package runner lints many files: it discovers them, runs each through a
// lint.Pipeline on a bounded worker pool and aggregates the outcomes.
package runner

import "github.com/yaklabco/gojslint/pkg/config"

// Options controls multi-file linting behavior.
type Options struct {
	// Paths are the files or directories to process. Empty means ".".
	Paths []string

	// WorkingDir resolves relative Paths and glob patterns. Empty means the
	// process working directory.
	WorkingDir string

	// Extensions are the lowercase extensions, with leading dot, linted
	// when walking directories. Empty means config.DefaultExtensions().
	// Files named explicitly in Paths must still match.
	Extensions []string

	// IncludeGlobs restricts discovery to matching paths when non-empty.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files and directories, in addition to
	// DefaultIgnores.
	ExcludeGlobs []string

	// FollowSymlinks walks into directory symlinks.
	FollowSymlinks bool

	// Jobs is the number of concurrent workers. Zero or negative means
	// runtime.NumCPU().
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// DefaultIgnores are always excluded. Patterns without a slash match the
// base name at any depth.
func DefaultIgnores() []string {
	return []string{"node_modules", "*.min.js"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
