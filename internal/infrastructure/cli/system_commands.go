package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	appconfig "github.com/doeshing/aicli/internal/application/config"
	"github.com/doeshing/aicli/internal/domain"
	configinfra "github.com/doeshing/aicli/internal/infrastructure/config"
	"github.com/doeshing/aicli/internal/version"
)

const (
	msgConfigurationValid       = "Configuration valid"
	msgNoDifferencesFromDefault = "No differences from default configuration."
	msgHistoryCleared           = "History cleared."
	msgNoHistoryRecorded        = "No history recorded yet."
	historyPromptWidth          = 60
)

var errHistoryUnavailable = errors.New("history is disabled or its store could not be opened")

var quickStart = []struct{ label, example string }{
	{"Ask a question", `aicli ask "How do I create a model?"`},
	{"Document code", "aicli document app/Models/User.php"},
	{"Refactor code", "aicli refactor app/Http/Controllers/UserController.php"},
	{"Review code", "aicli review app/Services/UserService.php"},
	{"Generate an image", `aicli image "a lighthouse at dusk" --count=2 --metadata`},
}

// printBanner writes the package banner followed by every visible command.
func printBanner(w io.Writer, root *cobra.Command) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════════════╗")
	fmt.Fprintln(w, "║                                                              ║")
	fmt.Fprintln(w, "║                      🤖  aicli  🚀                           ║")
	fmt.Fprintln(w, "║                                                              ║")
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "📦 Package Information:")
	fmt.Fprintf(w, "  Name: %s\n", root.Name())
	fmt.Fprintf(w, "  Description: %s\n", root.Short)
	fmt.Fprintf(w, "  Version: %s\n", version.Version)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "📋 Available Commands:")
	fmt.Fprintln(w)
	for _, cmd := range root.Commands() {
		if !cmd.IsAvailableCommand() {
			continue
		}
		fmt.Fprintf(w, "  %s\n", cmd.Name())
		fmt.Fprintf(w, "    %s\n", cmd.Short)
		fmt.Fprintf(w, "    Usage: %s %s\n", root.Name(), cmd.Use)
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "  help\n    Show this help information\n    Usage: %s help [command]\n\n", root.Name())

	fmt.Fprintln(w, "💡 Quick Start:")
	for _, item := range quickStart {
		fmt.Fprintf(w, "  %s: %s\n", item.label, item.example)
	}
	fmt.Fprintln(w)
}

// newHelpCommand prints the banner without arguments and delegates to the
// named command's help otherwise.
func newHelpCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "help [command]",
		Short:       "Show this help information",
		Annotations: map[string]string{annotationNoContainer: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			if len(args) == 0 {
				printBanner(cmd.OutOrStdout(), root)
				return nil
			}
			target, _, err := root.Find(args)
			if err != nil || target == root {
				return fmt.Errorf("unknown help topic %q", strings.Join(args, " "))
			}
			return target.Help()
		},
	}
}

func newHistoryCommand(s *session) *cobra.Command {
	var (
		limit    int
		clearAll bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently saved documentation and images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := s.container.HistoryStore
			if store == nil {
				return errHistoryUnavailable
			}
			if clearAll {
				if err := store.Clear(); err != nil {
					return fmt.Errorf("failed to clear history: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), msgHistoryCleared)
				return nil
			}
			records, err := store.Records(limit)
			if err != nil {
				return fmt.Errorf("failed to retrieve history records: %w", err)
			}
			renderHistory(cmd.OutOrStdout(), records)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", domain.DefaultHistoryLimit, "Max entries to show")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "Delete all history entries")
	return cmd
}

func renderHistory(out io.Writer, records []domain.HistoryRecord) {
	if len(records) == 0 {
		fmt.Fprintln(out, msgNoHistoryRecorded)
		return
	}
	for _, rec := range records {
		fmt.Fprintf(out, "%s | %s | %s | %s\n",
			humanize.Time(rec.Timestamp),
			rec.Action,
			rec.Model,
			truncate(rec.Prompt, historyPromptWidth))
		for _, file := range rec.Files {
			fmt.Fprintf(out, "    %s (%s)\n", file, fileSize(file))
		}
	}
}

func fileSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "missing"
	}
	return humanize.Bytes(uint64(info.Size()))
}

func truncate(text string, width int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	return string(runes[:width-3]) + "..."
}

func newConfigCommand(s *session) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect aicli configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfiguration(cmd.OutOrStdout(), s)
		},
	}

	configCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show full configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return showConfiguration(cmd.OutOrStdout(), s)
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the configuration file location",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), s.container.ConfigLoader.Path())
				return nil
			},
		},
		&cobra.Command{
			Use:   "validate",
			Short: "Validate configuration file",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := s.container.ConfigLoader.Load(cmd.Context())
				if err != nil {
					return fmt.Errorf("configuration validation failed: %w", err)
				}
				if err := appconfig.Validate(cfg); err != nil {
					return fmt.Errorf("configuration validation failed: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), msgConfigurationValid)
				return nil
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Restore the default configuration (the old file is backed up)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				backup, err := s.container.ConfigLoader.Reset()
				if err != nil {
					return fmt.Errorf("failed to reset configuration: %w", err)
				}
				out := cmd.OutOrStdout()
				if backup != "" {
					fmt.Fprintf(out, "Backup saved to %s\n", backup)
				}
				fmt.Fprintf(out, "Configuration reset to defaults at %s\n", s.container.ConfigLoader.Path())
				return nil
			},
		},
		&cobra.Command{
			Use:   "diff",
			Short: "Show differences from the default configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return diffConfiguration(cmd.OutOrStdout(), s)
			},
		},
	)

	return configCmd
}

func showConfiguration(out io.Writer, s *session) error {
	if s.container.ConfigErr != nil {
		return fmt.Errorf("failed to load configuration: %w", s.container.ConfigErr)
	}
	data, err := yaml.Marshal(s.container.Config)
	if err != nil {
		return fmt.Errorf("failed to render configuration: %w", err)
	}
	fmt.Fprintf(out, "# %s\n", s.container.ConfigLoader.Path())
	_, err = out.Write(data)
	return err
}

func diffConfiguration(out io.Writer, s *session) error {
	if s.container.ConfigErr != nil {
		return fmt.Errorf("failed to load configuration: %w", s.container.ConfigErr)
	}
	defaults, err := configinfra.DefaultConfig()
	if err != nil {
		return fmt.Errorf("failed to load default configuration: %w", err)
	}
	diff := cmp.Diff(defaults, s.container.Config)
	if diff == "" {
		fmt.Fprintln(out, msgNoDifferencesFromDefault)
		return nil
	}
	fmt.Fprintln(out, "--- default\n+++ current")
	fmt.Fprint(out, diff)
	return nil
}

func newDoctorCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, API keys and the local environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := s.container.DoctorService.Run(cmd.Context())
			renderHealthReport(cmd.OutOrStdout(), report)
			if err != nil {
				return fmt.Errorf("doctor could not load configuration: %w", err)
			}
			if report.Failed() {
				return errors.New("doctor found problems")
			}
			return nil
		},
	}
}

func renderHealthReport(out io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		fmt.Fprintf(out, "[%s] %s - %s\n", strings.ToUpper(string(check.Status)), check.Name, check.Details)
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoContainer: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), versionLine())
			return nil
		},
	}
}

func versionLine() string {
	line := fmt.Sprintf("aicli %s", version.Version)
	if version.Commit != "" {
		line += fmt.Sprintf(" (commit %s", version.Commit)
		if version.BuildDate != "" {
			line += fmt.Sprintf(", built %s", version.BuildDate)
		}
		line += ")"
	}
	return fmt.Sprintf("%s %s/%s %s", line, runtime.GOOS, runtime.GOARCH, runtime.Version())
}
