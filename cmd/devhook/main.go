package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"devhook/internal/control"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, control.ErrHooksFailed) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run() error {
	root := &cobra.Command{
		Use:   "devhook",
		Short: "devhook: declarative dev environment and pre-commit hooks",
		Long: `devhook reads a project descriptor (devenv.toml, devenv.yaml or devenv.json),
validates languages, packages and pre-commit hooks, and runs the enabled hooks in
declaration order.

Key commands:
  check                     Validate the descriptor
  show [--json]             Print the loaded descriptor
  run [ids] [--all-files]   Run pre-commit hooks
  doctor                    Check toolchains and hook commands
  init [--force]            Write a starter devenv.toml
  tail-log                  Show last log lines

Env overrides: DEVHOOK_LOG_LEVEL/FORMAT/STDOUT, DEVHOOK_SHELL, DEVHOOK_SKIP`,
		Example: `  devhook init
  devhook check
  devhook run
  devhook run rustfmt clippy --all-files
  devhook run --skip cargo-test --json`,
		DisableFlagsInUseLine: true,
		SilenceUsage:          true,
		SilenceErrors:         true,
	}

	root.Version = version
	root.SetVersionTemplate("devhook v{{.Version}}\n")

	cfgPath := root.PersistentFlags().StringP("config", "c", "", "Path to descriptor. Defaults to devenv.{toml,yaml,yml,json,jsonc} in the current directory")
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(control.NewCheckCmd(cfgPath))
	root.AddCommand(control.NewShowCmd(cfgPath))
	root.AddCommand(control.NewRunCmd(cfgPath))
	root.AddCommand(control.NewDoctorCmd(cfgPath))
	root.AddCommand(control.NewInitCmd(cfgPath))
	root.AddCommand(control.NewTailLogCmd(cfgPath))

	applyColorHelp(root)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return root.ExecuteContext(ctx)
}

func applyColorHelp(root *cobra.Command) {
	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		out := termenv.NewOutput(cmd.OutOrStdout())
		write := func(format string, args ...any) { _, _ = fmt.Fprintf(out, format, args...) }
		writeln := func(line string) { _, _ = fmt.Fprintln(out, line) }
		bold := func(s string) string { return out.String(s).Bold().String() }
		dim := func(s string) string { return out.String(s).Faint().String() }
		green := func(s string) string { return out.String(s).Foreground(out.Color("2")).String() }

		write("%s: declarative dev environment and pre-commit hooks %s\n",
			out.String("devhook").Bold().Foreground(out.Color("4")), dim("(v"+version+")"))
		write("%s\n\n", dim("Loads devenv.toml/yaml/json, validates it, and runs your hooks."))

		write("%s\n", bold("Usage"))
		write("  devhook [command] [flags]\n\n")

		write("%s\n", bold("Notable flags & env"))
		writeln("  -c, --config <path>     descriptor path (default: discovered in cwd)")
		writeln("  Env: DEVHOOK_LOG_LEVEL=debug, DEVHOOK_LOG_FORMAT=json, DEVHOOK_LOG_STDOUT=1,")
		writeln("       DEVHOOK_SHELL=bash, DEVHOOK_SKIP=cargo-test,clippy")
		writeln("")

		write("%s\n", bold("Examples"))
		writeln("  devhook init")
		writeln("  devhook check")
		writeln("  devhook run --all-files")
		writeln("  devhook run rustfmt --files src/main.rs")
		writeln("  devhook show --json")
		writeln("")

		write("%s\n", bold("Commands"))
		for _, c := range cmd.Commands() {
			if c.Hidden {
				continue
			}
			write("  %s %s\n", green(fmt.Sprintf("%-10s", c.Name())), c.Short)
		}
	})
}
