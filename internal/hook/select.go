package hook

import (
	"fmt"

	"devhook/internal/config"
)

// Select returns the hooks named by ids, in declaration order rather than
// request order. No ids selects every hook.
func Select(m *config.Model, ids []string) ([]config.HookSpec, error) {
	all := m.Hooks()
	if len(ids) == 0 {
		return all, nil
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := m.Hook(id); !ok {
			return nil, fmt.Errorf("unknown hook %q", id)
		}
		want[id] = true
	}
	out := make([]config.HookSpec, 0, len(want))
	for _, h := range all {
		if want[h.ID] {
			out = append(out, h)
		}
	}
	return out, nil
}

// NeedsFiles reports whether any enabled hook takes filename arguments.
func NeedsFiles(hooks []config.HookSpec) bool {
	for _, h := range hooks {
		if h.Enabled && h.PassFilenames {
			return true
		}
	}
	return false
}
