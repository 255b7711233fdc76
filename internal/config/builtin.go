package config

import "slices"

// builtinHooks supplies entry and pass_filenames for well-known hook ids so a
// descriptor can enable them with a bare `enable = true`.
var builtinHooks = map[string]HookSpec{
	"rustfmt":     {Entry: "cargo fmt --all -- --check", PassFilenames: false},
	"clippy":      {Entry: "cargo clippy --all-targets -- -D warnings", PassFilenames: false},
	"cargo-check": {Entry: "cargo check --all-targets", PassFilenames: false},
	"cargo-test":  {Entry: "cargo test", PassFilenames: false},
	"gofmt":       {Entry: "gofmt -l -w", PassFilenames: true},
	"govet":       {Entry: "go vet ./...", PassFilenames: false},
	"shellcheck":  {Entry: "shellcheck", PassFilenames: true},
	"nixpkgs-fmt": {Entry: "nixpkgs-fmt", PassFilenames: true},
}

// BuiltinHookIDs lists the ids with built-in defaults.
func BuiltinHookIDs() []string {
	ids := make([]string, 0, len(builtinHooks))
	for id := range builtinHooks {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
