// Package report renders hook run results for the terminal or as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"devhook/internal/hook"

	"github.com/muesli/termenv"
)

const lineWidth = 79

// Options tweaks text output.
type Options struct {
	NoColor bool
	Verbose bool // print output of passing hooks too
}

// Text writes one line per hook followed by a summary. Failed hooks are
// followed by their exit code and captured output.
func Text(w io.Writer, rep hook.Report, opts Options) error {
	var outOpts []termenv.OutputOption
	if opts.NoColor {
		outOpts = append(outOpts, termenv.WithProfile(termenv.Ascii))
	}
	out := termenv.NewOutput(w, outOpts...)

	var b strings.Builder
	for _, res := range rep.Results {
		label := res.State.String()
		suffix := ""
		if res.State == hook.Skipped && res.Reason != "" {
			suffix = " (" + res.Reason + ")"
		}
		dots := max(3, lineWidth-len(res.ID)-len(label)-len(suffix))
		fmt.Fprintf(&b, "%s%s%s%s\n", res.ID, strings.Repeat(".", dots), styled(out, res.State, label), suffix)

		output := strings.TrimRight(res.Output, "\n")
		switch {
		case res.State == hook.Failed:
			fmt.Fprintf(&b, "- hook id: %s\n- exit code: %d\n", res.ID, res.ExitCode)
			if res.Reason != "" {
				fmt.Fprintf(&b, "- error: %s\n", res.Reason)
			}
			if output != "" {
				fmt.Fprintf(&b, "\n%s\n\n", output)
			}
		case opts.Verbose && output != "":
			fmt.Fprintf(&b, "\n%s\n\n", output)
		}
	}
	passed, failed, skipped := rep.Counts()
	fmt.Fprintf(&b, "%d hooks: %d passed, %d failed, %d skipped\n", len(rep.Results), passed, failed, skipped)

	_, err := io.WriteString(w, b.String())
	return err
}

func styled(out *termenv.Output, s hook.State, text string) string {
	color := "2"
	switch s {
	case hook.Failed:
		color = "1"
	case hook.Skipped:
		color = "3"
	}
	style := out.String(text).Foreground(out.Color(color))
	if s == hook.Failed {
		style = style.Bold()
	}
	return style.String()
}

type jsonReport struct {
	Status string `json:"status"`
	hook.Report
}

// JSON writes the report with an overall status field.
func JSON(w io.Writer, rep hook.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{Status: rep.Status(), Report: rep})
}
