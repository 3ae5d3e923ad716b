package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/aicli/internal/app"
	"github.com/doeshing/aicli/internal/application/assist"
	"github.com/doeshing/aicli/internal/domain"
	"github.com/doeshing/aicli/internal/infrastructure/config"
	"github.com/doeshing/aicli/internal/infrastructure/output"
	"github.com/doeshing/aicli/internal/infrastructure/security"
	"github.com/doeshing/aicli/internal/pkg/logger"
	"github.com/doeshing/aicli/internal/ports"
)

type fixedConfig struct{ cfg domain.Config }

func (f fixedConfig) Load(context.Context) (domain.Config, error) { return f.cfg, nil }

type fixedFactory struct{ gateway ports.Gateway }

func (f fixedFactory) ForModel(domain.ModelDefinition) (ports.Gateway, error) {
	return f.gateway, nil
}

type echoGateway struct {
	reply    string
	requests []ports.TextRequest
}

func (g *echoGateway) Name() string                  { return "echo" }
func (g *echoGateway) Model() domain.ModelDefinition { return domain.ModelDefinition{Name: "echo"} }

func (g *echoGateway) Prompt(_ context.Context, req ports.TextRequest) (domain.TextResult, error) {
	g.requests = append(g.requests, req)
	return domain.TextResult{Body: g.reply}, nil
}

func (g *echoGateway) GenerateImage(context.Context, ports.ImageRequest) (domain.BinaryResult, error) {
	return domain.BinaryResult{}, errors.New("text only")
}

type harness struct {
	root    string
	out     bytes.Buffer
	errOut  bytes.Buffer
	gateway *echoGateway
	opts    Options
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{root: t.TempDir(), gateway: &echoGateway{reply: "42"}}

	cfg := domain.Config{
		Preferences: domain.Preferences{DefaultModel: "echo"},
		Models:      []domain.ModelDefinition{{Name: "echo", Provider: domain.ProviderKindGemini}},
	}
	provider := fixedConfig{cfg: cfg}
	console := NewConsole(&h.out, &h.errOut)

	h.opts = Options{
		In:  strings.NewReader(""),
		Out: &h.out,
		Err: &h.errOut,
		Container: &app.Container{
			Config:         cfg,
			ConfigProvider: provider,
			ConfigLoader:   config.NewFileLoader(filepath.Join(h.root, "config.yaml")),
			ProjectRoot:    h.root,
			AssistService: &assist.Service{
				ConfigProvider: provider,
				GatewayFactory: fixedFactory{gateway: h.gateway},
				Sources:        security.NewPathGuard(h.root),
				Writer:         output.NewWriter(&h.out),
				Console:        console,
				Chooser:        NewPrompter(strings.NewReader(""), &h.out),
				Logger:         logger.NewNop(),
			},
		},
	}
	return h
}

func (h *harness) run(args ...string) error {
	root := NewRootCmd(h.opts)
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func TestRootWithoutArgumentsPrintsBanner(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run())

	got := h.out.String()
	assert.Contains(t, got, "📋 Available Commands:")
	assert.Contains(t, got, "Usage: aicli image-mod <image> <modification>")
	assert.Contains(t, got, "Usage: aicli review <file>")
	assert.Contains(t, got, "💡 Quick Start:")
	assert.NotContains(t, got, "completion")
}

func TestHelpCommand(t *testing.T) {
	t.Run("no topic prints banner", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.run("help"))
		assert.Contains(t, h.out.String(), "📦 Package Information:")
	})

	t.Run("topic prints command help", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.run("help", "document"))
		assert.Contains(t, h.out.String(), "--output-mode")
	})

	t.Run("unknown topic", func(t *testing.T) {
		h := newHarness(t)
		err := h.run("help", "nope")
		require.Error(t, err)
		assert.Equal(t, ExitFailure, ExitCode(err))
	})
}

func TestVersionCommand(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("version"))
	assert.True(t, strings.HasPrefix(h.out.String(), "aicli dev"))
}

func TestAskCommand(t *testing.T) {
	t.Run("joins arguments into one prompt", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.run("ask", "what", "is", "the", "answer?"))

		require.Len(t, h.gateway.requests, 1)
		assert.Equal(t, "what is the answer?", h.gateway.requests[0].Content)
		assert.Equal(t, "42\n", h.out.String())
	})

	t.Run("empty prompt fails without calling the gateway", func(t *testing.T) {
		h := newHarness(t)
		err := h.run("ask", "")

		require.Error(t, err)
		assert.Equal(t, ExitFailure, ExitCode(err))
		assert.Equal(t, "Prompt cannot be empty.", ErrorMessage(err))
		assert.Empty(t, h.gateway.requests)
	})
}

func TestFileCommands(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(h.root, "UserService.php")
	require.NoError(t, os.WriteFile(path, []byte("<?php class UserService {}"), 0o644))

	require.NoError(t, h.run("review", path))
	require.Len(t, h.gateway.requests, 1)
	assert.Equal(t, "Review the following code:\n\n<?php class UserService {}", h.gateway.requests[0].Content)

	err := h.run("optimize", filepath.Join(h.root, "missing.php"))
	require.Error(t, err)
	assert.Equal(t, "File not found.", ErrorMessage(err))

	err = h.run("explain", "../outside.php")
	require.Error(t, err)
	kind, ok := domain.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindPathRejected, kind)
}

func TestFileCommandRequiresOneArgument(t *testing.T) {
	h := newHarness(t)
	err := h.run("refactor")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, ExitCode(err))
	assert.True(t, strings.HasPrefix(ErrorMessage(err), "Error: "))
}

func TestHistoryUnavailable(t *testing.T) {
	h := newHarness(t)
	err := h.run("history")
	require.ErrorIs(t, err, errHistoryUnavailable)
}

func TestConfigPath(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("config", "path"))
	assert.Equal(t, filepath.Join(h.root, "config.yaml")+"\n", h.out.String())
}

func TestRenderHistory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "IMAGE_2025-03-14_09-26-53_1.png")
	require.NoError(t, os.WriteFile(file, make([]byte, 2048), 0o644))

	var out bytes.Buffer
	renderHistory(&out, []domain.HistoryRecord{{
		Action: domain.ActionGenerateImage,
		Model:  "gemini",
		Prompt: "a lighthouse\nat dusk",
		Files:  []string{file, filepath.Join(dir, "gone.png")},
	}})

	got := out.String()
	assert.Contains(t, got, "| image | gemini | a lighthouse at dusk")
	assert.Contains(t, got, file+" (2.0 kB)")
	assert.Contains(t, got, "gone.png (missing)")

	out.Reset()
	renderHistory(&out, nil)
	assert.Equal(t, msgNoHistoryRecorded+"\n", out.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}

func TestConfigDiff(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("config", "diff"))

	got := h.out.String()
	assert.Contains(t, got, "--- default\n+++ current")
	assert.Contains(t, got, "echo")
}
