package assist

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/doeshing/aicli/internal/domain"
	"github.com/doeshing/aicli/internal/ports"
)

type stubConfigProvider struct {
	cfg domain.Config
	err error
}

func (s stubConfigProvider) Load(context.Context) (domain.Config, error) {
	return s.cfg, s.err
}

type stubFactory struct {
	gateway ports.Gateway
	err     error
}

func (s stubFactory) ForModel(domain.ModelDefinition) (ports.Gateway, error) {
	return s.gateway, s.err
}

type stubGateway struct {
	reply    string
	err      error
	requests []ports.TextRequest
}

func (g *stubGateway) Name() string                  { return "stub" }
func (g *stubGateway) Model() domain.ModelDefinition { return domain.ModelDefinition{Name: "stub"} }

func (g *stubGateway) Prompt(_ context.Context, req ports.TextRequest) (domain.TextResult, error) {
	g.requests = append(g.requests, req)
	return domain.TextResult{Body: g.reply}, g.err
}

func (g *stubGateway) GenerateImage(context.Context, ports.ImageRequest) (domain.BinaryResult, error) {
	return domain.BinaryResult{}, errors.New("not an image gateway")
}

// fileSources reads straight from disk and reports missing files the way the
// path guard does.
type fileSources struct {
	root string
}

func (f fileSources) ReadSource(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewError(domain.KindFileNotFound, "File not found.")
	}
	return data, nil
}

func (f fileSources) ReadImage(string) (domain.Attachment, error) {
	return domain.Attachment{}, errors.New("unused")
}

func (f fileSources) Root() string { return f.root }

type recordingWriter struct {
	texts     []string
	artifacts map[string][]byte
	writeErr  error
}

func (w *recordingWriter) WriteText(content string) { w.texts = append(w.texts, content) }

func (w *recordingWriter) WriteArtifact(data []byte, path string) error {
	if w.writeErr != nil {
		return w.writeErr
	}
	if w.artifacts == nil {
		w.artifacts = map[string][]byte{}
	}
	w.artifacts[path] = data
	return nil
}

func (w *recordingWriter) MakeDir(string) error { return nil }

func (w *recordingWriter) WriteMetadataJSON(domain.Metadata, string) (string, error) {
	return "", errors.New("unused")
}

type recordingConsole struct {
	lines []string
	busy  int
}

func (c *recordingConsole) Line(msg string) { c.lines = append(c.lines, msg) }
func (c *recordingConsole) Info(msg string) { c.lines = append(c.lines, msg) }
func (c *recordingConsole) Warn(msg string) { c.lines = append(c.lines, msg) }
func (c *recordingConsole) Busy(string) func() {
	c.busy++
	return func() {}
}

func (c *recordingConsole) contains(fragment string) bool {
	for _, line := range c.lines {
		if strings.Contains(line, fragment) {
			return true
		}
	}
	return false
}

type stubChooser struct {
	answer string
	asked  []string
}

func (c *stubChooser) Choose(question string, _ []string, defaultOption string) (string, error) {
	c.asked = append(c.asked, question)
	if c.answer == "" {
		return defaultOption, nil
	}
	return c.answer, nil
}

type stubClipboard struct {
	copied   string
	err      error
	disabled bool
}

func (c *stubClipboard) Copy(text string) error {
	c.copied = text
	return c.err
}

func (c *stubClipboard) Enabled() bool { return !c.disabled }

type memoryHistory struct {
	records []domain.HistoryRecord
}

func (h *memoryHistory) Save(record domain.HistoryRecord) error {
	h.records = append(h.records, record)
	return nil
}

func (h *memoryHistory) Records(int) ([]domain.HistoryRecord, error) {
	return h.records, nil
}

func (h *memoryHistory) Clear() error {
	h.records = nil
	return nil
}

func (h *memoryHistory) Path() string { return "memory" }
