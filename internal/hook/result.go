package hook

import (
	"fmt"
	"time"
)

// State is the outcome of one hook.
type State int

const (
	Passed State = iota
	Failed
	Skipped
)

func (s State) String() string {
	switch s {
	case Passed:
		return "Passed"
	case Failed:
		return "Failed"
	case Skipped:
		return "Skipped"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// MarshalText encodes the state as its name in JSON reports.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Skip reasons.
const (
	ReasonDisabled  = "disabled"
	ReasonRequested = "skipped by request"
	ReasonNoFiles   = "no files to check"
)

// Result records what happened to one hook.
type Result struct {
	ID       string        `json:"id"`
	State    State         `json:"state"`
	ExitCode int           `json:"exit_code,omitempty"`
	Reason   string        `json:"reason,omitempty"`
	Output   string        `json:"output,omitempty"`
	Duration time.Duration `json:"duration"`
}

func (r Result) String() string {
	switch r.State {
	case Failed:
		return fmt.Sprintf("Failed(%d)", r.ExitCode)
	case Skipped:
		return fmt.Sprintf("Skipped(%q)", r.Reason)
	}
	return r.State.String()
}

// Report is the ordered outcome of a run.
type Report struct {
	RunID   string   `json:"run_id"`
	Results []Result `json:"results"`
}

// Failed reports whether any hook failed.
func (r Report) Failed() bool {
	for _, res := range r.Results {
		if res.State == Failed {
			return true
		}
	}
	return false
}

// Status is "fail" if any hook failed, otherwise "pass".
func (r Report) Status() string {
	if r.Failed() {
		return "fail"
	}
	return "pass"
}

// Counts tallies results by state.
func (r Report) Counts() (passed, failed, skipped int) {
	for _, res := range r.Results {
		switch res.State {
		case Passed:
			passed++
		case Failed:
			failed++
		case Skipped:
			skipped++
		}
	}
	return passed, failed, skipped
}
