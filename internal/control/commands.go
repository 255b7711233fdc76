package control

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"devhook/internal/config"
	"devhook/internal/doctor"

	"github.com/spf13/cobra"
)

// NewCheckCmd validates the descriptor.
func NewCheckCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the descriptor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, m, err := loadProject(*cfgPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s: %d languages, %d packages, %d hooks (%d enabled)\n",
				m.Path(), len(m.Toolchains()), m.Packages().Len(), len(m.Hooks()), len(m.EnabledHooks()))
			return nil
		},
	}
}

// NewShowCmd prints the loaded descriptor.
func NewShowCmd(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the loaded descriptor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, m, err := loadProject(*cfgPath)
			if err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(newModelView(m))
			}
			writeModel(cmd.OutOrStdout(), m)
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "output JSON")
	return cmd
}

func writeModel(w io.Writer, m *config.Model) {
	fmt.Fprintf(w, "descriptor: %s\n", m.Path())
	fmt.Fprintln(w, "languages:")
	for _, tc := range m.Toolchains() {
		line := fmt.Sprintf("  %-14s %s", tc.Name, onOff(tc.Enabled))
		if tc.Channel != "" {
			line += " channel=" + tc.Channel
		}
		if len(tc.Targets) > 0 {
			line += " targets=" + strings.Join(tc.Targets, ",")
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "packages: %s\n", strings.Join(m.Packages().Items(), ", "))
	fmt.Fprintln(w, "hooks:")
	for _, h := range m.Hooks() {
		fmt.Fprintf(w, "  %-14s %-8s pass_filenames=%-5v %s\n", h.ID, onOff(h.Enabled), h.PassFilenames, h.Entry)
	}
	fmt.Fprintf(w, "built-in hooks: %s\n", strings.Join(config.BuiltinHookIDs(), ", "))
}

func onOff(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}

// NewDoctorCmd runs environment checks.
func NewDoctorCmd(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check toolchains, hook commands and config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveSettings(*cfgPath)
			if err != nil {
				return err
			}
			m, loadErr := config.LoadFile(s.Paths.ConfigPath)
			results := doctor.Run(m, s)
			if loadErr != nil {
				results = append([]doctor.Result{{Name: "load", Pass: false, Detail: loadErr.Error()}}, results...)
			}
			out := cmd.OutOrStdout()
			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				if err := json.NewEncoder(out).Encode(results); err != nil {
					return err
				}
			} else {
				for _, r := range results {
					status := "ok"
					if !r.Pass {
						status = "fail"
					}
					fmt.Fprintf(out, "%-24s %-4s %s\n", r.Name, status, r.Detail)
				}
			}
			if doctor.Failed(results) {
				return fmt.Errorf("doctor found issues")
			}
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "output JSON")
	return cmd
}

// NewInitCmd writes a starter descriptor.
func NewInitCmd(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter devenv.toml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := *cfgPath
			if path == "" {
				dir, err := os.Getwd()
				if err != nil {
					return err
				}
				path = filepath.Join(dir, config.DescriptorNames[0])
			}
			if f, err := config.FormatForPath(path); err != nil || f != config.FormatTOML {
				return fmt.Errorf("init writes TOML; use a .toml path instead of %s", path)
			}
			force, _ := cmd.Flags().GetBool("force")
			if err := config.WriteTemplate(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "overwrite an existing descriptor")
	return cmd
}

// NewTailLogCmd tails the main log file (simple last N lines).
func NewTailLogCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tail-log",
		Short: "Show last 50 log lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveSettings(*cfgPath)
			if err != nil {
				return err
			}
			return tailFile(cmd.OutOrStdout(), s.Paths.LogPath, 50)
		},
	}
}

func tailFile(w io.Writer, path string, n int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	lines := strings.Split(string(data), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			fmt.Fprintln(w, l)
		}
	}
	return nil
}
