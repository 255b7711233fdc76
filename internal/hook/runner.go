package hook

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"devhook/internal/config"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Options controls how hooks are executed.
type Options struct {
	Shell string            // defaults to sh
	Dir   string            // working directory, usually the project root
	Files []string          // passed to hooks with pass_filenames
	Skip  []string          // hook ids to skip
	Env   map[string]string // extra environment
}

// Runner executes hooks one after another in the order given.
type Runner struct {
	logger *logrus.Logger
	opts   Options
	skip   map[string]bool
}

func NewRunner(logger *logrus.Logger, opts Options) *Runner {
	if opts.Shell == "" {
		opts.Shell = "sh"
	}
	skip := make(map[string]bool, len(opts.Skip))
	for _, id := range opts.Skip {
		skip[id] = true
	}
	return &Runner{logger: logger, opts: opts, skip: skip}
}

// Run executes every hook and returns one result per hook, in order. A
// failing hook never stops the ones after it.
func (r *Runner) Run(ctx context.Context, hooks []config.HookSpec) Report {
	rep := Report{RunID: uuid.NewString(), Results: make([]Result, 0, len(hooks))}
	log := r.logger.WithField("run", rep.RunID)
	for _, h := range hooks {
		rep.Results = append(rep.Results, r.runOne(ctx, log.WithField("hook", h.ID), h))
	}
	passed, failed, skipped := rep.Counts()
	log.WithField("status", rep.Status()).Infof("hooks finished: %d passed, %d failed, %d skipped", passed, failed, skipped)
	return rep
}

func (r *Runner) runOne(ctx context.Context, log *logrus.Entry, h config.HookSpec) Result {
	var res Result
	switch {
	case !h.Enabled:
		res = Result{ID: h.ID, State: Skipped, Reason: ReasonDisabled}
	case r.skip[h.ID]:
		res = Result{ID: h.ID, State: Skipped, Reason: ReasonRequested}
	case h.PassFilenames && len(r.opts.Files) == 0:
		res = Result{ID: h.ID, State: Skipped, Reason: ReasonNoFiles}
	default:
		res = r.exec(ctx, log, h)
	}
	log = log.WithField("state", res.State.String())
	switch res.State {
	case Failed:
		log.Warnf("hook failed with exit code %d", res.ExitCode)
	case Skipped:
		log.Debugf("hook skipped: %s", res.Reason)
	default:
		log.Infof("hook passed in %s", res.Duration.Round(time.Millisecond))
	}
	return res
}

// shellArgs builds the shell arguments for h. Without filenames the entry is
// the script. With filenames the entry is split into words and the shell
// execs words+files as "$@", so no file name is ever parsed as shell code.
func (r *Runner) shellArgs(h config.HookSpec) (args, env []string, err error) {
	if !h.PassFilenames {
		return []string{"-c", h.Entry}, nil, nil
	}
	assign, argv, err := splitEntry(h.Entry)
	if err != nil {
		return nil, nil, fmt.Errorf("parse entry: %w", err)
	}
	if len(argv) == 0 {
		return nil, nil, fmt.Errorf("entry %q has no command", h.Entry)
	}
	// The hook id becomes $0.
	args = append([]string{"-c", `exec "$@"`, h.ID}, argv...)
	return append(args, r.opts.Files...), assign, nil
}

func (r *Runner) exec(ctx context.Context, log *logrus.Entry, h config.HookSpec) Result {
	args, assign, err := r.shellArgs(h)
	if err != nil {
		return Result{ID: h.ID, State: Failed, ExitCode: -1, Reason: err.Error()}
	}
	cmd := exec.CommandContext(ctx, r.opts.Shell, args...)
	cmd.Dir = r.opts.Dir
	cmd.Env = os.Environ()
	for k, v := range r.opts.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}
	cmd.Env = append(cmd.Env, fmt.Sprintf("DEVHOOK_HOOK_ID=%s", h.ID))
	cmd.Env = append(cmd.Env, assign...)

	start := time.Now()
	out, err := cmd.CombinedOutput()
	res := Result{ID: h.ID, Output: string(out), Duration: time.Since(start)}
	if len(out) > 0 {
		log.Debugf("hook output: %s", strings.TrimSpace(string(out)))
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		res.State = Passed
	case errors.As(err, &exitErr):
		res.State = Failed
		res.ExitCode = exitErr.ExitCode()
	default:
		res.State = Failed
		res.ExitCode = -1
		res.Reason = err.Error()
	}
	return res
}
