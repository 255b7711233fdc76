package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"devhook/internal/hook"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() hook.Report {
	return hook.Report{
		RunID: "run-1",
		Results: []hook.Result{
			{ID: "rustfmt", State: hook.Passed, Output: "formatted\n"},
			{ID: "clippy", State: hook.Failed, ExitCode: 101, Output: "error: unused variable\n"},
			{ID: "cargo-test", State: hook.Skipped, Reason: hook.ReasonDisabled},
		},
	}
}

func TestTextReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, sampleReport(), Options{NoColor: true}))
	out := buf.String()
	lines := strings.Split(out, "\n")

	assert.True(t, strings.HasPrefix(lines[0], "rustfmt..."))
	assert.True(t, strings.HasSuffix(lines[0], "Passed"))
	assert.Len(t, lines[0], lineWidth)
	assert.True(t, strings.HasSuffix(lines[1], "Failed"))
	assert.Contains(t, out, "- exit code: 101\n")
	assert.Contains(t, out, "error: unused variable")
	assert.NotContains(t, out, "formatted", "passing output is hidden unless verbose")
	assert.Contains(t, out, "cargo-test")
	assert.Contains(t, out, "Skipped (disabled)")
	assert.Contains(t, out, "3 hooks: 1 passed, 1 failed, 1 skipped\n")
	assert.NotContains(t, out, "\x1b[")
}

func TestTextReportVerbose(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, sampleReport(), Options{NoColor: true, Verbose: true}))
	assert.Contains(t, buf.String(), "formatted")
}

func TestTextReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, hook.Report{}, Options{NoColor: true}))
	assert.Equal(t, "0 hooks: 0 passed, 0 failed, 0 skipped\n", buf.String())
}

func TestStyledUsesColorProfile(t *testing.T) {
	var buf bytes.Buffer
	colored := termenv.NewOutput(&buf, termenv.WithProfile(termenv.ANSI))
	assert.Contains(t, styled(colored, hook.Failed, "Failed"), "\x1b[")

	plain := termenv.NewOutput(&buf, termenv.WithProfile(termenv.Ascii))
	assert.Equal(t, "Passed", styled(plain, hook.Passed, "Passed"))
}

func TestJSONReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, sampleReport()))

	var decoded struct {
		Status  string `json:"status"`
		RunID   string `json:"run_id"`
		Results []struct {
			ID       string `json:"id"`
			State    string `json:"state"`
			ExitCode int    `json:"exit_code"`
			Reason   string `json:"reason"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "fail", decoded.Status)
	assert.Equal(t, "run-1", decoded.RunID)
	require.Len(t, decoded.Results, 3)
	assert.Equal(t, "Failed", decoded.Results[1].State)
	assert.Equal(t, 101, decoded.Results[1].ExitCode)
	assert.Equal(t, "disabled", decoded.Results[2].Reason)
}
