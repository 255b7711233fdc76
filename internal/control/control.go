package control

import (
	"errors"
	"os"

	"devhook/internal/config"
)

// ErrHooksFailed is returned by the run command when any hook failed.
var ErrHooksFailed = errors.New("one or more hooks failed")

// ModelView is the JSON shape of a loaded descriptor.
type ModelView struct {
	Path      string                 `json:"path"`
	Languages []config.ToolchainSpec `json:"languages"`
	Packages  []string               `json:"packages"`
	Hooks     []config.HookSpec      `json:"hooks"`
}

func newModelView(m *config.Model) ModelView {
	return ModelView{
		Path:      m.Path(),
		Languages: m.Toolchains(),
		Packages:  m.Packages().Items(),
		Hooks:     m.Hooks(),
	}
}

// loadProject resolves settings for the working directory (or the explicit
// descriptor) and loads the descriptor.
func loadProject(cfgPath string) (*config.Settings, *config.Model, error) {
	s, err := resolveSettings(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	m, err := config.LoadFile(s.Paths.ConfigPath)
	if err != nil {
		return s, nil, err
	}
	return s, m, nil
}

func resolveSettings(cfgPath string) (*config.Settings, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.ResolveSettings(dir, cfgPath)
}
