// Package cache stores the files that linted clean so unchanged files can
// be skipped on the next run. The cache is a single msgpack file keyed by
// path; an entry is valid while both the file content and the run
// configuration hash are unchanged.
package cache

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"fortio.org/safecast"
	"github.com/spf13/afero"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/fsutil"
)

// schemaVersion changes whenever the file layout changes.
const schemaVersion uint16 = 1

// Digest is a SHA-256 hash.
type Digest [sha256.Size]byte

// Entry describes a file that linted clean.
type Entry struct {
	Size        uint64
	ContentHash Digest
}

type fileFormat struct {
	Schema  uint16
	Config  Digest
	Entries map[string]Entry
}

// Cache is safe for concurrent use.
type Cache struct {
	fs     afero.Fs
	path   string
	config Digest

	mu      sync.Mutex
	entries map[string]Entry
	dirty   bool
}

// Open loads the cache at path. A missing, unreadable or stale file
// (other schema or configuration) yields an empty cache.
func Open(fsys afero.Fs, path string, configHash Digest) (*Cache, error) {
	c := &Cache{
		fs:      fsutil.OrOS(fsys),
		path:    path,
		config:  configHash,
		entries: make(map[string]Entry),
	}

	data, err := afero.ReadFile(c.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return nil, fmt.Errorf("read cache %s: %w", path, err)
	}

	var stored fileFormat
	if err := msgpack.Unmarshal(data, &stored); err != nil {
		c.dirty = true
		return c, nil
	}
	if stored.Schema != schemaVersion || stored.Config != configHash {
		c.dirty = true
		return c, nil
	}
	if stored.Entries != nil {
		c.entries = stored.Entries
	}
	return c, nil
}

// Lookup reports whether path is cached as clean with exactly this content.
func (c *Cache) Lookup(path string, content []byte) bool {
	if c == nil {
		return false
	}
	size, err := safecast.Conv[uint64](len(content))
	if err != nil {
		return false
	}

	c.mu.Lock()
	entry, ok := c.entries[path]
	c.mu.Unlock()

	return ok && entry.Size == size && entry.ContentHash == sha256.Sum256(content)
}

// Store records path as clean with this content.
func (c *Cache) Store(path string, content []byte) {
	if c == nil {
		return
	}
	size, err := safecast.Conv[uint64](len(content))
	if err != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = Entry{Size: size, ContentHash: sha256.Sum256(content)}
	c.dirty = true
}

// Forget drops path from the cache.
func (c *Cache) Forget(path string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[path]; ok {
		delete(c.entries, path)
		c.dirty = true
	}
}

// Len returns the number of cached files.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Save writes the cache atomically if it changed since Open.
func (c *Cache) Save(ctx context.Context) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty {
		return nil
	}

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(fileFormat{Schema: schemaVersion, Config: c.config, Entries: c.entries}); err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}

	if dir := filepath.Dir(c.path); dir != "." {
		if err := c.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create cache directory: %w", err)
		}
	}
	if err := fsutil.WriteAtomic(ctx, c.fs, c.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write cache %s: %w", c.path, err)
	}
	c.dirty = false
	return nil
}

// ConfigHash digests everything in cfg that changes lint results, plus the
// given rule IDs so that adding a rule invalidates the cache.
func ConfigHash(cfg *config.Config, ruleIDs []string) (Digest, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	ids := append([]string(nil), ruleIDs...)
	sort.Strings(ids)

	key := struct {
		Rules           map[string]config.RuleConfig
		AllowInline     bool
		ReportUnused    config.Severity
		DirectivePrefix string
		NoInlineConfig  bool
		Markdown        config.MarkdownConfig
		RuleIDs         []string
	}{
		Rules:           cfg.Rules,
		AllowInline:     cfg.InlineConfigAllowed(),
		ReportUnused:    cfg.UnusedDirectiveSeverity(),
		DirectivePrefix: cfg.DirectivePrefix,
		NoInlineConfig:  cfg.NoInlineConfig,
		Markdown:        cfg.Markdown,
		RuleIDs:         ids,
	}

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(key); err != nil {
		return Digest{}, fmt.Errorf("hash config: %w", err)
	}
	return sha256.Sum256(buf.Bytes()), nil
}
