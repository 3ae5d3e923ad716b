package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/aicli/internal/application/assist"
	"github.com/doeshing/aicli/internal/domain"
)

type fileCommandDef struct {
	action domain.Action
	short  string
}

var fileCommands = []fileCommandDef{
	{action: domain.ActionExplain, short: "Explain what code does"},
	{action: domain.ActionReview, short: "Review code for best practices and improvements"},
	{action: domain.ActionOptimize, short: "Optimize code for performance"},
	{action: domain.ActionRefactor, short: "Refactor code for better quality and maintainability"},
}

func newAskCommand(s *session) *cobra.Command {
	var copyAnswer bool

	cmd := &cobra.Command{
		Use:   "ask <prompt>",
		Short: "Ask AI a question",
		Example: `  aicli ask "How do I create a model?"
  aicli ask --copy "Write a regex for ISO dates"`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := s.container.AssistService.Ask(cmd.Context(), assist.AskRequest{
				Prompt:          strings.Join(args, " "),
				Model:           s.flags.model,
				CopyToClipboard: copyAnswer,
			})
			return err
		},
	}

	cmd.Flags().BoolVarP(&copyAnswer, "copy", "c", false, "Copy the answer to the clipboard")
	return cmd
}

func newFileCommand(s *session, def fileCommandDef) *cobra.Command {
	action := def.action
	return &cobra.Command{
		Use:   fmt.Sprintf("%s <file>", action),
		Short: def.short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := s.container.AssistService.AnalyzeFile(cmd.Context(), assist.FileRequest{
				Action: action,
				Path:   args[0],
				Model:  s.flags.model,
			})
			return err
		},
	}
}

func newDocumentCommand(s *session) *cobra.Command {
	var (
		plain      bool
		outputMode string
	)

	cmd := &cobra.Command{
		Use:   "document <file>",
		Short: "Generate documentation for code",
		Long: "Generate documentation for a source file. Without --output-mode you are asked " +
			"whether to print it or save it as DOCUMENTATION_<name>.md in the project root.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := s.container.AssistService.Document(cmd.Context(), assist.DocumentRequest{
				Path:   args[0],
				Model:  s.flags.model,
				Plain:  plain,
				Target: assist.DocumentTarget(outputMode),
			})
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Request plain text instead of markdown")
	cmd.Flags().StringVar(&outputMode, "output-mode", "", "Where to send the documentation: terminal|file")
	return cmd
}
