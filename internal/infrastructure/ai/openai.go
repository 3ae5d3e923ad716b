package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"

	"github.com/doeshing/aicli/internal/domain"
	"github.com/doeshing/aicli/internal/ports"
)

const (
	openAIBaseURL    = "https://api.openai.com/v1"
	openAITextModel  = "gpt-4o-mini"
	openAIImageModel = "gpt-image-1"
)

type openAIGateway struct {
	model      domain.ModelDefinition
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func newOpenAIGateway(model domain.ModelDefinition, apiKey string, client *http.Client) ports.Gateway {
	return &openAIGateway{
		model:      model,
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(valueOrDefault(model.Endpoint, openAIBaseURL), "/"),
		httpClient: client,
	}
}

func (g *openAIGateway) Name() string {
	return "openai"
}

func (g *openAIGateway) Model() domain.ModelDefinition {
	return g.model
}

func (g *openAIGateway) Prompt(ctx context.Context, req ports.TextRequest) (domain.TextResult, error) {
	ctx, cancel := withTimeout(ctx, req.Timeout)
	defer cancel()

	payload := chatCompletionRequest{
		Model:     valueOrDefault(g.model.TextModel, openAITextModel),
		MaxTokens: valueOrDefaultInt(g.model.MaxTokens, domain.DefaultMaxTokens),
		Messages: []chatMessage{
			{Role: "system", Content: req.Instructions},
			{Role: "user", Content: req.Content},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return domain.TextResult{}, err
	}

	raw, err := g.post(ctx, "/chat/completions", "application/json", bytes.NewReader(body))
	if err != nil {
		return domain.TextResult{}, err
	}

	var decoded chatCompletionResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return domain.TextResult{}, fmt.Errorf("openai: decode response: %w", err)
	}
	content := decoded.FirstMessage()
	if content == "" {
		return domain.TextResult{}, errors.New("openai: empty response")
	}
	return domain.TextResult{Body: content}, nil
}

func (g *openAIGateway) GenerateImage(ctx context.Context, req ports.ImageRequest) (domain.BinaryResult, error) {
	ctx, cancel := withTimeout(ctx, req.Timeout)
	defer cancel()

	prompt := req.Content
	if req.Instructions != "" {
		prompt = req.Instructions + "\n\n" + req.Content
	}

	var (
		raw []byte
		err error
	)
	if len(req.Attachments) == 0 {
		raw, err = g.generate(ctx, prompt, req)
	} else {
		raw, err = g.edit(ctx, prompt, req)
	}
	if err != nil {
		return domain.BinaryResult{}, err
	}

	var decoded imageResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return domain.BinaryResult{}, fmt.Errorf("openai: decode response: %w", err)
	}
	if len(decoded.Data) == 0 || decoded.Data[0].B64JSON == "" {
		return domain.BinaryResult{}, errors.New("openai: response contained no image")
	}
	data, err := base64.StdEncoding.DecodeString(decoded.Data[0].B64JSON)
	if err != nil {
		return domain.BinaryResult{}, fmt.Errorf("openai: decode image: %w", err)
	}
	return domain.BinaryResult{Data: data, MIMEType: "image/png"}, nil
}

func (g *openAIGateway) generate(ctx context.Context, prompt string, req ports.ImageRequest) ([]byte, error) {
	body, err := json.Marshal(imageGenerationRequest{
		Model:   valueOrDefault(g.model.ImageModel, openAIImageModel),
		Prompt:  prompt,
		N:       1,
		Size:    openAISize(req.Aspect),
		Quality: string(req.Quality),
	})
	if err != nil {
		return nil, err
	}
	return g.post(ctx, "/images/generations", "application/json", bytes.NewReader(body))
}

func (g *openAIGateway) edit(ctx context.Context, prompt string, req ports.ImageRequest) ([]byte, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	fields := map[string]string{
		"model":   valueOrDefault(g.model.ImageModel, openAIImageModel),
		"prompt":  prompt,
		"n":       "1",
		"size":    openAISize(req.Aspect),
		"quality": string(req.Quality),
	}
	for _, key := range []string{"model", "prompt", "n", "size", "quality"} {
		if fields[key] == "" {
			continue
		}
		if err := form.WriteField(key, fields[key]); err != nil {
			return nil, err
		}
	}

	for _, attachment := range req.Attachments {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image[]"; filename=%q`, filepath.Base(attachment.Path)))
		header.Set("Content-Type", attachment.MIMEType)
		part, err := form.CreatePart(header)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(attachment.Data); err != nil {
			return nil, err
		}
	}
	if err := form.Close(); err != nil {
		return nil, err
	}

	return g.post(ctx, "/images/edits", form.FormDataContentType(), &buf)
}

func (g *openAIGateway) post(ctx context.Context, path, contentType string, body io.Reader) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("authorization", "Bearer "+g.apiKey)
	httpReq.Header.Set("content-type", contentType)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		var apiErr apiErrorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("openai: %s: %s", resp.Status, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("openai: %s", resp.Status)
	}
	return raw, nil
}

// openAISize maps an aspect to an images API size. keep-original leaves the
// size to the API, which matches the input image.
func openAISize(aspect domain.Aspect) string {
	switch aspect {
	case domain.AspectSquare:
		return "1024x1024"
	case domain.AspectPortrait:
		return "1024x1536"
	case domain.AspectLandscape:
		return "1536x1024"
	default:
		return ""
	}
}
