package config

import (
	"slices"
	"sort"
)

// ToolchainSpec selects a language toolchain for the environment.
type ToolchainSpec struct {
	Name    string   `json:"name"`
	Enabled bool     `json:"enabled"`
	Channel string   `json:"channel,omitempty"` // empty when unset
	Targets []string `json:"targets,omitempty"` // only allowed when enabled
}

// HookSpec defines one pre-commit hook.
type HookSpec struct {
	ID            string `json:"id"`
	Enabled       bool   `json:"enabled"`
	Entry         string `json:"entry"`
	PassFilenames bool   `json:"pass_filenames"`
}

// PackageList is a sorted set of package identifiers.
type PackageList struct {
	items []string
}

// NewPackageList collapses duplicates and sorts names.
func NewPackageList(names ...string) PackageList {
	seen := make(map[string]struct{}, len(names))
	items := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		items = append(items, n)
	}
	sort.Strings(items)
	return PackageList{items: items}
}

// Items returns a copy of the package names in sorted order.
func (p PackageList) Items() []string { return slices.Clone(p.items) }

// Len returns the number of distinct packages.
func (p PackageList) Len() int { return len(p.items) }

// Contains reports whether name is in the list.
func (p PackageList) Contains(name string) bool {
	_, found := slices.BinarySearch(p.items, name)
	return found
}

// Model is the validated descriptor. It is only built by the loader and
// never mutated afterwards; accessors hand out copies.
type Model struct {
	path       string
	toolchains []ToolchainSpec
	packages   PackageList
	hooks      []HookSpec
	hookIndex  map[string]int
}

// Path is the file the model was loaded from, empty for in-memory sources.
func (m *Model) Path() string { return m.path }

// Toolchains returns toolchains in declaration order.
func (m *Model) Toolchains() []ToolchainSpec {
	out := make([]ToolchainSpec, len(m.toolchains))
	for i, tc := range m.toolchains {
		tc.Targets = slices.Clone(tc.Targets)
		out[i] = tc
	}
	return out
}

// Toolchain looks up a toolchain by name.
func (m *Model) Toolchain(name string) (ToolchainSpec, bool) {
	for _, tc := range m.toolchains {
		if tc.Name == name {
			tc.Targets = slices.Clone(tc.Targets)
			return tc, true
		}
	}
	return ToolchainSpec{}, false
}

// Packages returns the package set.
func (m *Model) Packages() PackageList { return m.packages }

// Hooks returns all hooks in declaration order.
func (m *Model) Hooks() []HookSpec { return slices.Clone(m.hooks) }

// Hook looks up a hook by id.
func (m *Model) Hook(id string) (HookSpec, bool) {
	i, ok := m.hookIndex[id]
	if !ok {
		return HookSpec{}, false
	}
	return m.hooks[i], true
}

// EnabledHooks returns the enabled hooks in declaration order.
func (m *Model) EnabledHooks() []HookSpec {
	out := make([]HookSpec, 0, len(m.hooks))
	for _, h := range m.hooks {
		if h.Enabled {
			out = append(out, h)
		}
	}
	return out
}
