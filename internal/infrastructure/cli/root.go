// Package cli wires the cobra command tree to the application services.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/doeshing/aicli/internal/app"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool

	In  io.Reader
	Out io.Writer
	Err io.Writer

	// Container skips the default wiring when set.
	Container *app.Container
}

// annotationNoContainer marks commands that run without config or services.
const annotationNoContainer = "aicli/no-container"

type globalFlags struct {
	model       string
	projectRoot string
	verbose     bool
}

// session carries state shared by all commands of one invocation.
type session struct {
	opts      Options
	flags     globalFlags
	container *app.Container
}

// NewRootCmd wires the cobra root command. The container is built lazily so
// persistent flags such as --project-root are applied first.
func NewRootCmd(opts Options) *cobra.Command {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	s := &session{opts: opts, container: opts.Container}

	root := &cobra.Command{
		Use:   "aicli",
		Short: "AI-powered developer assistant",
		Long:  "aicli forwards questions, source files and image prompts to an AI gateway and prints or saves the result.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printBanner(cmd.OutOrStdout(), cmd.Root())
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[annotationNoContainer] != "" {
				return nil
			}
			return s.ensureContainer(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.Annotations = map[string]string{annotationNoContainer: "true"}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetIn(opts.In)
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)

	root.PersistentFlags().StringVarP(&s.flags.model, "model", "m", "", "Override model name (default from config)")
	root.PersistentFlags().StringVar(&s.flags.projectRoot, "project-root", "", "Directory file arguments must stay inside (default: config or working directory)")
	root.PersistentFlags().BoolVarP(&s.flags.verbose, "verbose", "v", opts.Verbose, "Enable debug logging")

	root.AddCommand(newAskCommand(s))
	for _, def := range fileCommands {
		root.AddCommand(newFileCommand(s, def))
	}
	root.AddCommand(newDocumentCommand(s))
	root.AddCommand(newImageCommand(s))
	root.AddCommand(newImageModCommand(s))
	root.AddCommand(newHistoryCommand(s))
	root.AddCommand(newConfigCommand(s))
	root.AddCommand(newDoctorCommand(s))
	root.AddCommand(newVersionCommand())
	root.SetHelpCommand(newHelpCommand())

	return root
}

func (s *session) ensureContainer(ctx context.Context) error {
	if s.container != nil {
		return nil
	}
	container, err := app.BuildContainer(ctx, app.Options{
		Verbose:     s.flags.verbose,
		ProjectRoot: s.flags.projectRoot,
		Out:         s.opts.Out,
		Console:     NewConsole(s.opts.Out, s.opts.Err),
		Chooser:     NewPrompter(s.opts.In, s.opts.Out),
		Clipboard:   NewClipboard(),
	})
	if err != nil {
		return err
	}
	s.container = container
	return nil
}
