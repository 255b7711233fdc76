package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultStateDir = ".devenv"
	defaultLogName  = "devhook.log"
	defaultShell    = "sh"
)

// Settings holds devhook's own runtime options. They come from defaults,
// flags and DEVHOOK_* environment variables, never from the descriptor.
type Settings struct {
	Logging struct {
		Level  string // debug, info, warn, error
		Format string // text, json
		Stdout bool
	}

	Paths struct {
		ConfigPath string // descriptor file
		StateDir   string
		LogPath    string
	}

	Hooks struct {
		Shell string
		Skip  []string
	}
}

// DefaultSettings returns Settings for a project rooted at dir.
func DefaultSettings(dir string) *Settings {
	s := &Settings{}

	s.Logging.Level = "info"
	s.Logging.Format = "text"

	s.Paths.ConfigPath = filepath.Join(dir, DescriptorNames[0])
	s.Paths.StateDir = filepath.Join(dir, defaultStateDir)
	s.Paths.LogPath = filepath.Join(s.Paths.StateDir, defaultLogName)

	s.Hooks.Shell = defaultShell
	return s
}

// ResolveSettings builds settings for the project in dir. An explicit
// descriptor path overrides discovery and moves the project root to the
// descriptor's directory.
func ResolveSettings(dir, descriptor string) (*Settings, error) {
	var s *Settings
	if descriptor != "" {
		abs, err := filepath.Abs(descriptor)
		if err != nil {
			return nil, err
		}
		s = DefaultSettings(filepath.Dir(abs))
		s.Paths.ConfigPath = abs
	} else {
		s = DefaultSettings(dir)
		path, err := FindDescriptor(dir)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if path != "" {
			s.Paths.ConfigPath = path
		}
	}
	applyEnvOverrides(s)
	return s, nil
}

// ProjectDir is the directory holding the descriptor; hooks run there.
func (s *Settings) ProjectDir() string {
	return filepath.Dir(s.Paths.ConfigPath)
}

// MustStatePaths ensures state dirs exist.
func MustStatePaths(s *Settings) error {
	for _, p := range []string{s.Paths.StateDir, filepath.Dir(s.Paths.LogPath)} {
		if p == "" {
			continue
		}
		if err := os.MkdirAll(p, 0o755); err != nil {
			return err
		}
	}
	return nil
}

func applyEnvOverrides(s *Settings) {
	if v := os.Getenv("DEVHOOK_LOG_LEVEL"); v != "" {
		s.Logging.Level = v
	}
	if v := os.Getenv("DEVHOOK_LOG_FORMAT"); v != "" {
		s.Logging.Format = v
	}
	if v := os.Getenv("DEVHOOK_LOG_STDOUT"); v != "" {
		s.Logging.Stdout = envBool(v)
	}
	if v := os.Getenv("DEVHOOK_SHELL"); v != "" {
		s.Hooks.Shell = v
	}
	if v := os.Getenv("DEVHOOK_SKIP"); v != "" {
		s.Hooks.Skip = append(s.Hooks.Skip, SplitList(v)...)
	}
}

func envBool(v string) bool {
	return v != "0" && strings.ToLower(v) != "false"
}

// SplitList splits a comma separated list, dropping blanks.
func SplitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
