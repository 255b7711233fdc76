package control

import (
	"context"
	"fmt"

	"devhook/internal/config"
	"devhook/internal/hook"
	"devhook/internal/logging"
	"devhook/internal/report"

	"github.com/spf13/cobra"
)

// NewRunCmd runs the configured hooks.
func NewRunCmd(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [hook-id...]",
		Short: "Run pre-commit hooks in declaration order",
		Long: `Run the enabled pre-commit hooks, or only the named ones, in the order the
descriptor declares them. A failing hook does not stop the rest.

Hooks with pass_filenames = true receive the staged files (every tracked file
with --all-files, or the files given with --files). When there are no files,
for example on a clean index or outside a git work tree, those hooks are
reported as Skipped ("no files to check") instead of running.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, m, err := loadProject(*cfgPath)
			if err != nil {
				return err
			}
			logger, err := logging.Configure(s)
			if err != nil {
				return err
			}
			hooks, err := hook.Select(m, args)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			skip, _ := flags.GetStringSlice("skip")
			files, _ := flags.GetStringSlice("files")
			allFiles, _ := flags.GetBool("all-files")
			if len(files) == 0 && hook.NeedsFiles(hooks) {
				if files, err = collectFiles(cmd.Context(), s, allFiles); err != nil {
					logger.WithError(err).Warn("could not list files from git")
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v; hooks that take filenames will be skipped (name files with --files)\n", err)
					files = nil
				}
			}

			r := hook.NewRunner(logger, hook.Options{
				Shell: s.Hooks.Shell,
				Dir:   s.ProjectDir(),
				Files: files,
				Skip:  append(append([]string{}, s.Hooks.Skip...), skip...),
			})
			rep := r.Run(cmd.Context(), hooks)

			if jsonOut, _ := flags.GetBool("json"); jsonOut {
				err = report.JSON(cmd.OutOrStdout(), rep)
			} else {
				noColor, _ := flags.GetBool("no-color")
				verbose, _ := flags.GetBool("verbose")
				err = report.Text(cmd.OutOrStdout(), rep, report.Options{NoColor: noColor, Verbose: verbose})
			}
			if err != nil {
				return err
			}
			if rep.Failed() {
				return ErrHooksFailed
			}
			return nil
		},
	}
	cmd.Flags().Bool("all-files", false, "pass every tracked file instead of staged files")
	cmd.Flags().StringSlice("files", nil, "explicit files to pass to hooks")
	cmd.Flags().StringSlice("skip", nil, "hook ids to skip (also DEVHOOK_SKIP)")
	cmd.Flags().Bool("json", false, "output JSON")
	cmd.Flags().Bool("no-color", false, "disable colored output")
	cmd.Flags().BoolP("verbose", "v", false, "show output of passing hooks")
	return cmd
}

func collectFiles(ctx context.Context, s *config.Settings, all bool) ([]string, error) {
	if all {
		return hook.TrackedFiles(ctx, s.ProjectDir())
	}
	return hook.StagedFiles(ctx, s.ProjectDir())
}
