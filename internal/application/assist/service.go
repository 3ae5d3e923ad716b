// Package assist runs the text actions: ask, explain, review, optimize,
// refactor and document.
package assist

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/doeshing/aicli/internal/application/prompts"
	"github.com/doeshing/aicli/internal/application/routing"
	"github.com/doeshing/aicli/internal/domain"
	"github.com/doeshing/aicli/internal/ports"
)

// DocumentTarget selects where generated documentation goes.
type DocumentTarget string

const (
	TargetTerminal DocumentTarget = "terminal"
	TargetFile     DocumentTarget = "file"
)

const documentTargetQuestion = "How would you like to receive the documentation?"

var errClipboardUnavailable = errors.New("no clipboard utility available")

// Service orchestrates the text action lifecycle end-to-end.
type Service struct {
	ConfigProvider ports.ConfigProvider
	GatewayFactory ports.GatewayFactory
	Sources        ports.SourceReader
	Writer         ports.ArtifactWriter
	Console        ports.Console
	Chooser        ports.Chooser
	Clipboard      ports.Clipboard
	History        ports.HistoryRepository
	Logger         ports.Logger
}

// AskRequest is a free-form question.
type AskRequest struct {
	Prompt          string
	Model           string
	CopyToClipboard bool
}

// FileRequest names a source file for explain/review/optimize/refactor.
type FileRequest struct {
	Action domain.Action
	Path   string
	Model  string
}

// DocumentRequest names a source file to document. Target is asked
// interactively when empty.
type DocumentRequest struct {
	Path   string
	Model  string
	Plain  bool
	Target DocumentTarget
}

// DocumentResult reports what was produced by Document.
type DocumentResult struct {
	Body     string
	Artifact *domain.Artifact
}

func (s *Service) ready() error {
	if s.ConfigProvider == nil || s.GatewayFactory == nil || s.Sources == nil ||
		s.Writer == nil || s.Console == nil || s.Logger == nil {
		return errors.New("assist.Service dependencies not satisfied")
	}
	return nil
}

// Ask forwards a question to the gateway and prints the answer.
func (s *Service) Ask(ctx context.Context, req AskRequest) (domain.TextResult, error) {
	if err := s.ready(); err != nil {
		return domain.TextResult{}, err
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return domain.TextResult{}, domain.NewError(domain.KindInvalidInput, "Prompt cannot be empty.")
	}

	result, _, err := s.complete(ctx, domain.ActionAsk, req.Prompt, req.Model)
	if err != nil {
		return domain.TextResult{}, err
	}
	s.Console.Line(result.Body)

	if req.CopyToClipboard {
		s.copyAnswer(result.Body)
	}
	return result, nil
}

// copyAnswer puts body on the clipboard. Failures, including a missing
// clipboard utility, are reported as warnings.
func (s *Service) copyAnswer(body string) {
	if s.Clipboard == nil || !s.Clipboard.Enabled() {
		s.Logger.Warn("clipboard unavailable", nil)
		s.Console.Warn("Warning: Could not copy answer to clipboard: " + errClipboardUnavailable.Error())
		return
	}
	if err := s.Clipboard.Copy(body); err != nil {
		s.Logger.Warn("clipboard copy failed", map[string]interface{}{"error": err.Error()})
		s.Console.Warn("Warning: Could not copy answer to clipboard: " + err.Error())
		return
	}
	s.Console.Info("Answer copied to clipboard.")
}

// AnalyzeFile runs one of the file-based plain text actions and prints the reply.
func (s *Service) AnalyzeFile(ctx context.Context, req FileRequest) (domain.TextResult, error) {
	if err := s.ready(); err != nil {
		return domain.TextResult{}, err
	}
	if !req.Action.TakesFile() || req.Action.ProducesImage() {
		return domain.TextResult{}, domain.NewError(domain.KindInvalidInput, "Unsupported action for file analysis.")
	}

	content, err := s.readSource(req.Path)
	if err != nil {
		return domain.TextResult{}, err
	}

	result, _, err := s.complete(ctx, req.Action, content, req.Model)
	if err != nil {
		return domain.TextResult{}, err
	}
	s.Console.Line(result.Body)
	return result, nil
}

// Document generates documentation for a source file and either prints it or
// saves it as DOCUMENTATION_<name>.md in the project root.
func (s *Service) Document(ctx context.Context, req DocumentRequest) (DocumentResult, error) {
	if err := s.ready(); err != nil {
		return DocumentResult{}, err
	}

	content, err := s.readSource(req.Path)
	if err != nil {
		return DocumentResult{}, err
	}

	target, err := s.documentTarget(req.Target)
	if err != nil {
		return DocumentResult{}, err
	}

	action := domain.ActionDocument
	if req.Plain {
		action = domain.ActionDocumentPlain
	}

	s.Console.Info("Generating documentation...")
	result, model, err := s.complete(ctx, action, content, req.Model)
	if err != nil {
		return DocumentResult{}, err
	}

	if target == TargetTerminal {
		s.Writer.WriteText(result.Body)
		return DocumentResult{Body: result.Body}, nil
	}

	path := domain.DocumentationPath(s.Sources.Root(), req.Path)
	if err := s.Writer.WriteArtifact([]byte(result.Body), path); err != nil {
		return DocumentResult{}, domain.WrapError(domain.KindIoError, "Failed to write documentation file.", err)
	}
	s.recordHistory(req.Path, action, model, path)
	s.Console.Info("✓ Documentation saved to: " + path)
	s.Console.Line("")
	s.Console.Line("Preview:")
	s.Writer.WriteText(result.Body)

	return DocumentResult{
		Body: result.Body,
		Artifact: &domain.Artifact{
			Path: path,
			Kind: domain.ArtifactDocumentation,
			Size: int64(len(result.Body)),
		},
	}, nil
}

func (s *Service) recordHistory(source string, action domain.Action, model, path string) {
	if s.History == nil {
		return
	}
	record := domain.HistoryRecord{
		Timestamp: time.Now(),
		Action:    action,
		Prompt:    source,
		Model:     model,
		Files:     []string{path},
	}
	if err := s.History.Save(record); err != nil {
		s.Logger.Warn("history save failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Service) readSource(path string) (string, error) {
	data, err := s.Sources.ReadSource(path)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", domain.NewError(domain.KindInvalidInput, "File is empty.")
	}
	return string(data), nil
}

func (s *Service) documentTarget(requested DocumentTarget) (DocumentTarget, error) {
	switch requested {
	case TargetTerminal, TargetFile:
		return requested, nil
	case "":
	default:
		return "", domain.NewError(domain.KindInvalidInput, "Output mode must be terminal or file.")
	}
	if s.Chooser == nil {
		return TargetTerminal, nil
	}
	choice, err := s.Chooser.Choose(documentTargetQuestion, []string{string(TargetTerminal), string(TargetFile)}, string(TargetTerminal))
	if err != nil {
		return "", domain.WrapError(domain.KindIoError, "Failed to read selection.", err)
	}
	return DocumentTarget(choice), nil
}

// complete sends one prompt and returns the reply with the serving model's name.
func (s *Service) complete(ctx context.Context, action domain.Action, raw, model string) (domain.TextResult, string, error) {
	prompt, err := prompts.Build(action, raw)
	if err != nil {
		return domain.TextResult{}, "", domain.WrapError(domain.KindInvalidInput, "Invalid prompt.", err)
	}

	gateway, cfg, err := routing.Resolve(ctx, s.ConfigProvider, s.GatewayFactory, model)
	if err != nil {
		return domain.TextResult{}, "", err
	}

	s.Logger.Info("calling gateway", map[string]interface{}{
		"gateway": gateway.Name(),
		"model":   gateway.Model().TextModel,
		"action":  string(action),
	})

	stop := s.Console.Busy("Thinking")
	result, err := gateway.Prompt(ctx, ports.TextRequest{
		Instructions: prompt.Instructions,
		Content:      prompt.Content,
		Timeout:      cfg.TextTimeout(),
	})
	stop()
	if err != nil {
		s.Logger.Error("gateway prompt failed", err, map[string]interface{}{"action": string(action)})
		return domain.TextResult{}, "", domain.WrapError(domain.KindGatewayError, "Error", err)
	}
	return result, gateway.Model().Name, nil
}
