package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// Discover finds the files to lint. It returns sorted, de-duplicated
// absolute paths. Hidden files and directories are skipped while walking
// but may be named explicitly.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	m, err := newMatcher(workDir, opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := input
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(workDir, absPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			if m.file(absPath) {
				add(absPath)
			}
			continue
		}

		found, err := m.walk(ctx, absPath)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}

	slices.Sort(files)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// pattern is a compiled glob. Patterns without a slash also match the
// base name, so "*.min.js" excludes minified files at any depth.
type pattern struct {
	glob     glob.Glob
	baseName bool
}

func compilePatterns(raw []string) ([]pattern, error) {
	patterns := make([]pattern, 0, len(raw))
	for _, p := range raw {
		p = filepath.ToSlash(strings.TrimPrefix(p, "./"))
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", p, err)
		}
		patterns = append(patterns, pattern{glob: g, baseName: !strings.Contains(p, "/")})
	}
	return patterns, nil
}

func matchAny(patterns []pattern, rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, p := range patterns {
		if p.glob.Match(rel) || (p.baseName && p.glob.Match(filepath.Base(rel))) {
			return true
		}
		// "dir/**" also excludes the directory itself.
		if p.glob.Match(rel + "/") {
			return true
		}
	}
	return false
}

type matcher struct {
	workDir        string
	extensions     []string
	include        []pattern
	exclude        []pattern
	followSymlinks bool
}

func newMatcher(workDir string, opts Options) (*matcher, error) {
	include, err := compilePatterns(opts.IncludeGlobs)
	if err != nil {
		return nil, err
	}
	exclude, err := compilePatterns(append(DefaultIgnores(), opts.ExcludeGlobs...))
	if err != nil {
		return nil, err
	}

	exts := make([]string, 0, len(opts.effectiveExtensions()))
	for _, e := range opts.effectiveExtensions() {
		exts = append(exts, strings.ToLower(e))
	}

	return &matcher{
		workDir:        workDir,
		extensions:     exts,
		include:        include,
		exclude:        exclude,
		followSymlinks: opts.FollowSymlinks,
	}, nil
}

func (m *matcher) rel(path string) string {
	rel, err := filepath.Rel(m.workDir, path)
	if err != nil {
		return path
	}
	return rel
}

func (m *matcher) file(path string) bool {
	if !slices.Contains(m.extensions, strings.ToLower(filepath.Ext(path))) {
		return false
	}
	rel := m.rel(path)
	if matchAny(m.exclude, rel) {
		return false
	}
	return len(m.include) == 0 || matchAny(m.include, rel)
}

func (m *matcher) walk(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || (path != root && matchAny(m.exclude, m.rel(path))) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // unreadable targets are skipped
			}
			if info.IsDir() {
				if !m.followSymlinks {
					return nil
				}
				sub, err := m.walk(ctx, target)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if m.file(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}
