package hook

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// StagedFiles lists files added, copied, modified or renamed in the git index.
func StagedFiles(ctx context.Context, dir string) ([]string, error) {
	return gitNames(ctx, dir, "diff", "--cached", "--name-only", "--diff-filter=ACMR", "-z")
}

// TrackedFiles lists every file git tracks in dir.
func TrackedFiles(ctx context.Context, dir string) ([]string, error) {
	return gitNames(ctx, dir, "ls-files", "-z")
}

func gitNames(ctx context.Context, dir string, args ...string) ([]string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git %s: %w", args[0], err)
	}
	return splitNUL(out), nil
}

func splitNUL(out []byte) []string {
	var names []string
	for _, part := range bytes.Split(out, []byte{0}) {
		if len(part) > 0 {
			names = append(names, string(part))
		}
	}
	return names
}
