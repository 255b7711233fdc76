package hook

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"devhook/internal/config"
	"devhook/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestRunner(t *testing.T, opts Options) *Runner {
	t.Helper()
	if opts.Dir == "" {
		opts.Dir = t.TempDir()
	}
	return NewRunner(logging.NewTestLogger(), opts)
}

func states(rep Report) []string {
	out := make([]string, 0, len(rep.Results))
	for _, r := range rep.Results {
		out = append(out, r.String())
	}
	return out
}

func TestRunEmpty(t *testing.T) {
	rep := newTestRunner(t, Options{}).Run(context.Background(), nil)
	assert.Empty(t, rep.Results)
	assert.Equal(t, "pass", rep.Status())
	assert.NotEmpty(t, rep.RunID)
}

func TestRunContinuesAfterFailure(t *testing.T) {
	hooks := []config.HookSpec{
		{ID: "a", Enabled: true, Entry: "exit 0"},
		{ID: "b", Enabled: true, Entry: "exit 1"},
		{ID: "c", Enabled: true, Entry: "exit 0"},
	}
	rep := newTestRunner(t, Options{}).Run(context.Background(), hooks)

	assert.Equal(t, []string{"Passed", "Failed(1)", "Passed"}, states(rep))
	assert.Equal(t, 1, rep.Results[1].ExitCode)
	assert.True(t, rep.Failed())
	assert.Equal(t, "fail", rep.Status())
}

func TestDisabledHookIsSkippedRegardlessOfEntry(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "ran")
	hooks := []config.HookSpec{
		{ID: "off", Enabled: false, Entry: "touch " + marker + "; exit 7"},
		{ID: "empty", Enabled: false},
	}
	rep := newTestRunner(t, Options{Dir: dir}).Run(context.Background(), hooks)

	for _, res := range rep.Results {
		assert.Equal(t, Skipped, res.State)
		assert.Equal(t, ReasonDisabled, res.Reason)
	}
	assert.Equal(t, "pass", rep.Status())
	_, err := os.Stat(marker)
	assert.True(t, os.IsNotExist(err), "disabled hook must not run")
}

func TestRunKeepsDeclarationOrder(t *testing.T) {
	dir := t.TempDir()
	hooks := []config.HookSpec{
		{ID: "fmt", Enabled: true, Entry: "echo fmt >> order.log"},
		{ID: "lint", Enabled: true, Entry: "echo lint >> order.log; exit 2"},
		{ID: "test", Enabled: true, Entry: "echo test >> order.log"},
	}
	rep := newTestRunner(t, Options{Dir: dir}).Run(context.Background(), hooks)
	require.Len(t, rep.Results, 3)

	data, err := os.ReadFile(filepath.Join(dir, "order.log"))
	require.NoError(t, err)
	assert.Equal(t, "fmt\nlint\ntest\n", string(data))
	assert.Equal(t, []string{"Passed", "Failed(2)", "Passed"}, states(rep))
}

func TestPassFilenames(t *testing.T) {
	hooks := []config.HookSpec{
		{ID: "list", Enabled: true, Entry: `printf '%s\n'`, PassFilenames: true},
		{ID: "noargs", Enabled: true, Entry: `test $# -eq 0`, PassFilenames: false},
	}
	r := newTestRunner(t, Options{Files: []string{"a.rs", "dir/b c.rs"}})
	rep := r.Run(context.Background(), hooks)

	require.Equal(t, []string{"Passed", "Passed"}, states(rep))
	assert.Equal(t, "a.rs\ndir/b c.rs\n", rep.Results[0].Output)
}

func TestPassFilenamesMultiLineEntry(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "executed")
	script := filepath.Join(dir, "evil.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\ntouch "+marker+"\n"), 0o755))

	hooks := []config.HookSpec{{ID: "check", Enabled: true, Entry: "echo checking\n", PassFilenames: true}}
	rep := newTestRunner(t, Options{Dir: dir, Files: []string{"./evil.sh"}}).Run(context.Background(), hooks)

	require.Equal(t, []string{"Passed"}, states(rep))
	assert.Equal(t, "checking ./evil.sh\n", rep.Results[0].Output)
	_, err := os.Stat(marker)
	assert.True(t, os.IsNotExist(err), "file argument must not run as a command")
}

func TestPassFilenamesEntryWithComment(t *testing.T) {
	hooks := []config.HookSpec{{ID: "list", Enabled: true, Entry: `printf '%s\n' # list files`, PassFilenames: true}}
	rep := newTestRunner(t, Options{Files: []string{"a.go"}}).Run(context.Background(), hooks)

	require.Equal(t, []string{"Passed"}, states(rep))
	assert.Equal(t, "a.go\n", rep.Results[0].Output)
}

func TestPassFilenamesShellMetacharactersInFiles(t *testing.T) {
	dir := t.TempDir()
	hooks := []config.HookSpec{{ID: "list", Enabled: true, Entry: `printf '%s\n'`, PassFilenames: true}}
	files := []string{"a.go; touch pwned", "$(touch pwned2)"}
	rep := newTestRunner(t, Options{Dir: dir, Files: files}).Run(context.Background(), hooks)

	require.Equal(t, []string{"Passed"}, states(rep))
	assert.Equal(t, strings.Join(files, "\n")+"\n", rep.Results[0].Output)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPassFilenamesEntryAssignments(t *testing.T) {
	hooks := []config.HookSpec{{ID: "env", Enabled: true, Entry: `GREETING=hi sh -c 'echo "$GREETING $1"' sh`, PassFilenames: true}}
	rep := newTestRunner(t, Options{Files: []string{"a.go"}}).Run(context.Background(), hooks)

	require.Equal(t, []string{"Passed"}, states(rep))
	assert.Equal(t, "hi a.go\n", rep.Results[0].Output)
}

func TestPassFilenamesUnparsableEntry(t *testing.T) {
	hooks := []config.HookSpec{{ID: "bad", Enabled: true, Entry: `echo "unterminated`, PassFilenames: true}}
	rep := newTestRunner(t, Options{Files: []string{"a.go"}}).Run(context.Background(), hooks)
	require.Len(t, rep.Results, 1)
	assert.Equal(t, Failed, rep.Results[0].State)
	assert.Equal(t, -1, rep.Results[0].ExitCode)
	assert.Contains(t, rep.Results[0].Reason, "parse entry")
}

func TestPassFilenamesWithoutFilesIsSkipped(t *testing.T) {
	hooks := []config.HookSpec{{ID: "fmt", Enabled: true, Entry: "exit 1", PassFilenames: true}}
	rep := newTestRunner(t, Options{}).Run(context.Background(), hooks)
	require.Len(t, rep.Results, 1)
	assert.Equal(t, Skipped, rep.Results[0].State)
	assert.Equal(t, ReasonNoFiles, rep.Results[0].Reason)
}

func TestSkipOption(t *testing.T) {
	hooks := []config.HookSpec{
		{ID: "slow", Enabled: true, Entry: "exit 1"},
		{ID: "fast", Enabled: true, Entry: "exit 0"},
	}
	rep := newTestRunner(t, Options{Skip: []string{"slow"}}).Run(context.Background(), hooks)
	assert.Equal(t, []string{`Skipped("skipped by request")`, "Passed"}, states(rep))
}

func TestHookEnvironment(t *testing.T) {
	hooks := []config.HookSpec{{ID: "env", Enabled: true, Entry: `echo "$DEVHOOK_HOOK_ID:$EXTRA"`}}
	rep := newTestRunner(t, Options{Env: map[string]string{"EXTRA": "x"}}).Run(context.Background(), hooks)
	require.Len(t, rep.Results, 1)
	assert.Equal(t, "env:x", strings.TrimSpace(rep.Results[0].Output))
}

func TestMissingShellFails(t *testing.T) {
	hooks := []config.HookSpec{
		{ID: "a", Enabled: true, Entry: "true"},
		{ID: "b", Enabled: false, Entry: "true"},
	}
	rep := newTestRunner(t, Options{Shell: "/nonexistent/shell"}).Run(context.Background(), hooks)
	require.Len(t, rep.Results, 2)
	assert.Equal(t, Failed, rep.Results[0].State)
	assert.Equal(t, -1, rep.Results[0].ExitCode)
	assert.NotEmpty(t, rep.Results[0].Reason)
	assert.Equal(t, Skipped, rep.Results[1].State)
}

func TestCounts(t *testing.T) {
	rep := Report{Results: []Result{{State: Passed}, {State: Failed}, {State: Skipped}, {State: Skipped}}}
	p, f, s := rep.Counts()
	assert.Equal(t, []int{1, 1, 2}, []int{p, f, s})
}
