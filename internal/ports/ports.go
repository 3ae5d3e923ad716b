// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). The AI gateway, configuration source, interactive
// terminal, clipboard, history database and logger are all reached through the
// interfaces declared here, so the command handlers never depend on a concrete SDK.
package ports

import (
	"context"
	"time"

	"github.com/doeshing/aicli/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.aicli/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// GatewayFactory builds gateway instances based on model definitions.
type GatewayFactory interface {
	ForModel(domain.ModelDefinition) (Gateway, error)
}

// Gateway is the external AI provider. It is treated as a black box: text in,
// text or image bytes out.
type Gateway interface {
	Name() string
	Model() domain.ModelDefinition
	Prompt(context.Context, TextRequest) (domain.TextResult, error)
	GenerateImage(context.Context, ImageRequest) (domain.BinaryResult, error)
}

// TextRequest carries a fixed instruction set plus the user's content.
type TextRequest struct {
	Instructions string
	Content      string
	Timeout      time.Duration
}

// ImageRequest carries an image prompt, optional source images and the
// generation options. Timeout is passed through to the provider untouched.
type ImageRequest struct {
	Instructions string
	Content      string
	Attachments  []domain.Attachment
	Quality      domain.Quality
	Aspect       domain.Aspect
	Timeout      time.Duration
}

// Chooser asks the user to pick one option on the controlling terminal.
type Chooser interface {
	Choose(question string, options []string, defaultOption string) (string, error)
}

// Clipboard provides cross-platform clipboard integration for copying answers.
type Clipboard interface {
	Copy(text string) error
	Enabled() bool
}

// HistoryRepository records commands that produced artifacts.
type HistoryRepository interface {
	Save(domain.HistoryRecord) error
	Records(limit int) ([]domain.HistoryRecord, error)
	Clear() error
	Path() string
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}

// SourceReader validates file arguments and returns their contents. Failures
// are *domain.Error values from the path, existence, readability and MIME checks.
type SourceReader interface {
	ReadSource(path string) ([]byte, error)
	ReadImage(path string) (domain.Attachment, error)
	Root() string
}

// ArtifactWriter prints text output and persists generated files.
type ArtifactWriter interface {
	WriteText(content string)
	WriteArtifact(data []byte, path string) error
	MakeDir(path string) error
	WriteMetadataJSON(meta domain.Metadata, dir string) (string, error)
}

// Console carries user-facing progress and status lines for a single invocation.
type Console interface {
	Line(msg string)
	Info(msg string)
	Warn(msg string)
	// Busy shows an activity indicator until the returned func is called.
	Busy(label string) (stop func())
}
