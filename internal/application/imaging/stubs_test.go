package imaging

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/aicli/internal/domain"
	"github.com/doeshing/aicli/internal/ports"
)

type stubConfigProvider struct {
	cfg domain.Config
}

func (s stubConfigProvider) Load(context.Context) (domain.Config, error) {
	return s.cfg, nil
}

type stubFactory struct {
	gateway ports.Gateway
}

func (s stubFactory) ForModel(domain.ModelDefinition) (ports.Gateway, error) {
	return s.gateway, nil
}

type imageGateway struct {
	requests []ports.ImageRequest
	failAt   int
}

func (g *imageGateway) Name() string { return "stub" }
func (g *imageGateway) Model() domain.ModelDefinition {
	return domain.ModelDefinition{Name: "stub", ImageModel: "stub-image"}
}

func (g *imageGateway) Prompt(context.Context, ports.TextRequest) (domain.TextResult, error) {
	return domain.TextResult{}, errors.New("not a text gateway")
}

func (g *imageGateway) GenerateImage(_ context.Context, req ports.ImageRequest) (domain.BinaryResult, error) {
	g.requests = append(g.requests, req)
	if g.failAt == len(g.requests) {
		return domain.BinaryResult{}, errors.New("content policy violation")
	}
	return domain.BinaryResult{Data: []byte(fmt.Sprintf("png-%d", len(g.requests))), MIMEType: "image/png"}, nil
}

type stubSources struct {
	root       string
	attachment domain.Attachment
	err        error
}

func (s stubSources) ReadSource(string) ([]byte, error) { return nil, errors.New("unused") }

func (s stubSources) ReadImage(path string) (domain.Attachment, error) {
	if s.err != nil {
		return domain.Attachment{}, s.err
	}
	att := s.attachment
	att.Path = path
	return att, nil
}

func (s stubSources) Root() string { return s.root }

type recordingWriter struct {
	files       map[string][]byte
	order       []string
	dirs        []string
	failWriteAt int
	metadata    []domain.Metadata
	metaDirs    []string
	metaErr     error
	dirErr      error
}

func (w *recordingWriter) WriteText(string) {}

func (w *recordingWriter) WriteArtifact(data []byte, path string) error {
	if w.failWriteAt == len(w.order)+1 {
		return errors.New("disk full")
	}
	if w.files == nil {
		w.files = map[string][]byte{}
	}
	w.files[path] = data
	w.order = append(w.order, path)
	return nil
}

func (w *recordingWriter) MakeDir(path string) error {
	w.dirs = append(w.dirs, path)
	return w.dirErr
}

func (w *recordingWriter) WriteMetadataJSON(meta domain.Metadata, dir string) (string, error) {
	if w.metaErr != nil {
		return "", w.metaErr
	}
	w.metadata = append(w.metadata, meta)
	w.metaDirs = append(w.metaDirs, dir)
	return dir + "/metadata.json", nil
}

type recordingConsole struct {
	lines []string
}

func (c *recordingConsole) Line(msg string)    { c.lines = append(c.lines, msg) }
func (c *recordingConsole) Info(msg string)    { c.lines = append(c.lines, msg) }
func (c *recordingConsole) Warn(msg string)    { c.lines = append(c.lines, msg) }
func (c *recordingConsole) Busy(string) func() { return func() {} }

func (c *recordingConsole) contains(fragment string) bool {
	for _, line := range c.lines {
		if strings.Contains(line, fragment) {
			return true
		}
	}
	return false
}

type scriptedChooser struct {
	answers  map[string]string
	defaults map[string]string
}

func (c *scriptedChooser) Choose(question string, _ []string, defaultOption string) (string, error) {
	if c.defaults == nil {
		c.defaults = map[string]string{}
	}
	c.defaults[question] = defaultOption
	if answer, ok := c.answers[question]; ok {
		return answer, nil
	}
	return defaultOption, nil
}

type memoryHistory struct {
	records []domain.HistoryRecord
	err     error
}

func (h *memoryHistory) Save(record domain.HistoryRecord) error {
	if h.err != nil {
		return h.err
	}
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
