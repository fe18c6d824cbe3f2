package typegen

import (
	"sort"
	"strings"

	"github.com/teranos/tser/errors"
)

// Options configures the generators of a registry. Zero values select
// each generator's defaults.
type Options struct {
	// RustDerives replaces the derive list put on every Rust type
	RustDerives []string
	// SwiftProtocols replaces the protocol list of Swift structs
	SwiftProtocols []string
	// SwiftAccess is the access level of Swift declarations ("public" or "internal")
	SwiftAccess string
	// TypeScriptIndent is the number of spaces per TypeScript indentation level
	TypeScriptIndent int
}

// Target is a language the compiler can emit.
type Target struct {
	// Language is the canonical name, used as the output subdirectory (e.g., "rust")
	Language string
	// Aliases are alternative names accepted on the command line (e.g., "rs")
	Aliases []string
	// Extension is the output file extension without the dot
	Extension string
	Generator Generator
}

// Registry maps language names and aliases to targets.
type Registry struct {
	targets []Target
	byName  map[string]int
}

// NewRegistry creates a registry holding targets in the given order.
func NewRegistry(targets ...Target) (*Registry, error) {
	r := &Registry{byName: make(map[string]int)}
	for _, t := range targets {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a target. Names and aliases are case-insensitive and must be unique.
func (r *Registry) Register(t Target) error {
	if t.Language == "" || t.Generator == nil {
		return errors.Newf("target %q needs a language name and a generator", t.Language)
	}
	names := append([]string{t.Language}, t.Aliases...)
	for _, name := range names {
		if _, exists := r.byName[strings.ToLower(name)]; exists {
			return errors.Newf("target name %q registered twice", name)
		}
	}
	r.targets = append(r.targets, t)
	for _, name := range names {
		r.byName[strings.ToLower(name)] = len(r.targets) - 1
	}
	return nil
}

// Lookup finds a target by language name or alias.
func (r *Registry) Lookup(name string) (Target, error) {
	i, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		err := errors.NewUnknownTargetError("unknown target language %q", name)
		return Target{}, errors.WithHintf(err, "supported languages: %s", strings.Join(r.Names(), ", "))
	}
	return r.targets[i], nil
}

// Resolve maps names to targets, keeping first-seen order and dropping
// duplicates. "all" or an empty list selects every target.
func (r *Registry) Resolve(names []string) ([]Target, error) {
	if len(names) == 0 {
		return r.All(), nil
	}

	var (
		out  []Target
		seen = make(map[string]bool)
	)
	for _, name := range names {
		if strings.EqualFold(strings.TrimSpace(name), "all") {
			return r.All(), nil
		}
		t, err := r.Lookup(name)
		if err != nil {
			return nil, err
		}
		if seen[t.Language] {
			continue
		}
		seen[t.Language] = true
		out = append(out, t)
	}
	return out, nil
}

// All returns every target in registration order.
func (r *Registry) All() []Target {
	out := make([]Target, len(r.targets))
	copy(out, r.targets)
	return out
}

// Names returns the canonical language names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, len(r.targets))
	for i, t := range r.targets {
		names[i] = t.Language
	}
	sort.Strings(names)
	return names
}
