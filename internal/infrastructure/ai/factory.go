// Package ai provides the gateway factory and the provider adapters behind
// ports.Gateway.
//
// Two providers are supported:
//   - gemini: google.golang.org/genai, text and image generation through the
//     same GenerateContent call
//   - openai: the HTTP API, chat completions for text and the images
//     generations/edits endpoints for pictures
//
// The provider is taken from the model definition, or inferred from its
// endpoint and name when left blank.
package ai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"

	"github.com/doeshing/aicli/internal/domain"
	"github.com/doeshing/aicli/internal/ports"
)

const httpClientTimeout = 10 * time.Minute

// Factory creates gateway instances based on model definitions.
// It maintains a single HTTP client shared across all gateways.
type Factory struct {
	httpClient   *http.Client
	newGenerator func(ctx context.Context, apiKey string) (contentGenerator, error)
}

// NewFactory builds a Factory. The shared client timeout is only a ceiling;
// each call is bounded by the request timeout.
func NewFactory() *Factory {
	return &Factory{
		httpClient:   &http.Client{Timeout: httpClientTimeout},
		newGenerator: newGenaiGenerator,
	}
}

// ForModel returns the gateway serving model.
func (f *Factory) ForModel(model domain.ModelDefinition) (ports.Gateway, error) {
	fallback := model.FallbackAuthEnvVar()
	switch model.ResolvedProvider() {
	case domain.ProviderKindGemini:
		apiKey := resolveAuth(model.AuthEnvVar, fallback)
		if apiKey == "" {
			return nil, missingKeyError(model.AuthEnvVar, fallback)
		}
		generator, err := f.newGenerator(context.Background(), apiKey)
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		return newGeminiGateway(model, generator), nil
	case domain.ProviderKindOpenAI:
		apiKey := resolveAuth(model.AuthEnvVar, fallback)
		if apiKey == "" {
			return nil, missingKeyError(model.AuthEnvVar, fallback)
		}
		return newOpenAIGateway(model, apiKey, f.httpClient), nil
	default:
		return nil, fmt.Errorf("unsupported provider for model %s", model.Name)
	}
}

func missingKeyError(primary, fallback string) error {
	if primary == "" || primary == fallback {
		return fmt.Errorf("missing API key: set %s", fallback)
	}
	return fmt.Errorf("missing API key: set %s or %s", primary, fallback)
}

func newGenaiGenerator(ctx context.Context, apiKey string) (contentGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return client.Models, nil
}

var _ ports.GatewayFactory = (*Factory)(nil)
