package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

const templateTOML = `# devhook descriptor

packages = ["git", "openssl", "pkg-config"]

[languages.rust]
enable = true
channel = "stable"
targets = ["x86_64-unknown-linux-musl"]

[pre-commit.hooks.rustfmt]
enable = true

[pre-commit.hooks.clippy]
enable = true
entry = "cargo clippy --all-targets --all-features -- -D warnings"
pass_filenames = false

[pre-commit.hooks.cargo-test]
enable = true
entry = "cargo test --all-features"
pass_filenames = false
`

// Template returns a starter TOML descriptor.
func Template() []byte {
	return []byte(templateTOML)
}

// WriteTemplate atomically writes the starter descriptor to path. An
// existing file is only replaced when force is set.
func WriteTemplate(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return renameio.WriteFile(path, Template(), 0o644)
}
