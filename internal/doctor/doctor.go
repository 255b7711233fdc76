package doctor

import (
	"os"
	"os/exec"
	"strings"

	"devhook/internal/config"
	"devhook/internal/hook"
)

// Result represents a diagnostic check.
type Result struct {
	Name   string `json:"name"`
	Pass   bool   `json:"pass"`
	Detail string `json:"detail"`
}

// toolchainBinaries maps a language to the binary that proves it is installed.
var toolchainBinaries = map[string]string{
	"rust":       "cargo",
	"go":         "go",
	"python":     "python3",
	"javascript": "node",
	"typescript": "tsc",
	"c":          "cc",
	"cplusplus":  "c++",
	"nix":        "nix",
	"haskell":    "ghc",
	"zig":        "zig",
}

// Run executes doctor checks. Descriptor problems other than a missing file
// are reported by the loader, not here.
func Run(m *config.Model, s *config.Settings) []Result {
	results := []Result{
		checkFile("descriptor", s.Paths.ConfigPath),
		checkExecutable("shell", s.Hooks.Shell),
		checkExecutable("git", "git"),
	}
	if m == nil {
		return results
	}
	for _, tc := range m.Toolchains() {
		if !tc.Enabled {
			continue
		}
		results = append(results, checkExecutable("language "+tc.Name, toolchainBinary(tc.Name)))
	}
	for _, h := range m.EnabledHooks() {
		results = append(results, checkHookEntry(h))
	}
	return results
}

// Failed reports whether any check failed.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Pass {
			return true
		}
	}
	return false
}

func toolchainBinary(language string) string {
	if bin, ok := toolchainBinaries[language]; ok {
		return bin
	}
	return language
}

func checkFile(label, path string) Result {
	if path == "" {
		return Result{Name: label, Pass: false, Detail: "not set"}
	}
	if _, err := os.Stat(os.ExpandEnv(path)); err != nil {
		return Result{Name: label, Pass: false, Detail: err.Error()}
	}
	return Result{Name: label, Pass: true, Detail: path}
}

func checkHookEntry(h config.HookSpec) Result {
	label := "hook " + h.ID
	bin, err := hook.Executable(h.Entry)
	if err != nil {
		return Result{Name: label, Pass: false, Detail: err.Error()}
	}
	return checkExecutable(label, bin)
}

func checkExecutable(label, cmd string) Result {
	if cmd == "" {
		return Result{Name: label, Pass: false, Detail: "not set"}
	}
	path := os.ExpandEnv(cmd)
	// If contains a path separator, treat as explicit path.
	if strings.Contains(path, "/") || strings.Contains(path, "\\") {
		info, err := os.Stat(path)
		if err != nil {
			return Result{Name: label, Pass: false, Detail: err.Error()}
		}
		if info.IsDir() {
			return Result{Name: label, Pass: false, Detail: "is a directory, not an executable"}
		}
		if info.Mode().Perm()&0o111 == 0 {
			return Result{Name: label, Pass: false, Detail: "not executable; chmod +x or choose another command"}
		}
		return Result{Name: label, Pass: true, Detail: path}
	}
	// Else search PATH.
	resolved, err := exec.LookPath(path)
	if err != nil {
		return Result{Name: label, Pass: false, Detail: err.Error()}
	}
	return Result{Name: label, Pass: true, Detail: resolved}
}
