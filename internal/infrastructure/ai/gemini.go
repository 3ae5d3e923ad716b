package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/doeshing/aicli/internal/domain"
	"github.com/doeshing/aicli/internal/ports"
)

const (
	geminiTextModel  = "gemini-2.5-flash"
	geminiImageModel = "gemini-2.5-flash-image"
)

// contentGenerator is the slice of *genai.Models the gateway calls.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type geminiGateway struct {
	model     domain.ModelDefinition
	generator contentGenerator
}

func newGeminiGateway(model domain.ModelDefinition, generator contentGenerator) ports.Gateway {
	return &geminiGateway{model: model, generator: generator}
}

func (g *geminiGateway) Name() string {
	return "gemini"
}

func (g *geminiGateway) Model() domain.ModelDefinition {
	return g.model
}

func (g *geminiGateway) Prompt(ctx context.Context, req ports.TextRequest) (domain.TextResult, error) {
	ctx, cancel := withTimeout(ctx, req.Timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.Instructions, genai.RoleUser),
		MaxOutputTokens:   int32(valueOrDefaultInt(g.model.MaxTokens, domain.DefaultMaxTokens)),
	}
	contents := []*genai.Content{genai.NewContentFromText(req.Content, genai.RoleUser)}

	resp, err := g.generator.GenerateContent(ctx, valueOrDefault(g.model.TextModel, geminiTextModel), contents, config)
	if err != nil {
		return domain.TextResult{}, err
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return domain.TextResult{}, errors.New("gemini: empty response")
	}
	return domain.TextResult{Body: text}, nil
}

func (g *geminiGateway) GenerateImage(ctx context.Context, req ports.ImageRequest) (domain.BinaryResult, error) {
	ctx, cancel := withTimeout(ctx, req.Timeout)
	defer cancel()

	parts := []*genai.Part{genai.NewPartFromText(req.Content)}
	for _, attachment := range req.Attachments {
		parts = append(parts, genai.NewPartFromBytes(attachment.Data, attachment.MIMEType))
	}

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	}
	if req.Instructions != "" {
		config.SystemInstruction = genai.NewContentFromText(req.Instructions, genai.RoleUser)
	}
	if ratio := geminiAspectRatio(req.Aspect); ratio != "" {
		config.ImageConfig = &genai.ImageConfig{AspectRatio: ratio}
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	resp, err := g.generator.GenerateContent(ctx, valueOrDefault(g.model.ImageModel, geminiImageModel), contents, config)
	if err != nil {
		return domain.BinaryResult{}, err
	}
	return firstInlineImage(resp)
}

// firstInlineImage returns the first inline data part of the first candidate.
func firstInlineImage(resp *genai.GenerateContentResponse) (domain.BinaryResult, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return domain.BinaryResult{}, errors.New("gemini: no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return domain.BinaryResult{
					Data:     part.InlineData.Data,
					MIMEType: part.InlineData.MIMEType,
				}, nil
			}
		}
	}

	switch candidate.FinishReason {
	case "", genai.FinishReasonUnspecified, genai.FinishReasonStop:
		return domain.BinaryResult{}, errors.New("gemini: response contained no image")
	default:
		return domain.BinaryResult{}, fmt.Errorf("gemini: generation stopped (finish reason %s)", candidate.FinishReason)
	}
}

func geminiAspectRatio(aspect domain.Aspect) string {
	switch aspect {
	case domain.AspectSquare:
		return "1:1"
	case domain.AspectPortrait:
		return "2:3"
	case domain.AspectLandscape:
		return "3:2"
	default:
		return ""
	}
}
