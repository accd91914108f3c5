package lint

import (
	"maps"
	"slices"
	"sync"
)

// Registry maps rule IDs, and legacy aliases of them, to rules. It is safe
// for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	rules   map[string]Rule
	aliases map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rules:   make(map[string]Rule),
		aliases: make(map[string]string),
	}
}

// Register adds rule, replacing any rule with the same ID.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[rule.ID()] = rule
}

// RegisterAlias makes alias resolve to ruleID in configuration. The target
// need not be registered yet.
func (r *Registry) RegisterAlias(alias, ruleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[alias] = ruleID
}

// Get returns the rule registered under id. Aliases are not followed.
func (r *Registry) Get(id string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[id]
	return rule, ok
}

// Resolve looks key up as a rule ID, then as an alias, and returns the
// canonical ID with its rule.
func (r *Registry) Resolve(key string) (string, Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id := key
	if _, ok := r.rules[id]; !ok {
		id = r.aliases[key]
	}
	rule, ok := r.rules[id]
	if !ok {
		return "", nil, false
	}
	return id, rule, true
}

// Known reports whether id is a registered rule ID. Directive comments
// match findings by canonical ID, so aliases are unknown here.
func (r *Registry) Known(id string) bool {
	_, ok := r.Get(id)
	return ok
}

// Aliases returns the sorted aliases that resolve to id.
func (r *Registry) Aliases(id string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for alias, target := range r.aliases {
		if target == id {
			out = append(out, alias)
		}
	}
	slices.Sort(out)
	return out
}

// IDs returns the registered rule IDs in order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.rules))
}

// Rules returns the registered rules ordered by ID.
func (r *Registry) Rules() []Rule {
	ids := r.IDs()

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Rule, 0, len(ids))
	for _, id := range ids {
		if rule, ok := r.rules[id]; ok {
			out = append(out, rule)
		}
	}
	return out
}

// DefaultRegistry holds the built-in rules, registered by rules.RegisterAll.
//
//nolint:gochecknoglobals // Process-wide rule set.
var DefaultRegistry = NewRegistry()
