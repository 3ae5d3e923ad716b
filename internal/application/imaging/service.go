// Package imaging runs the image actions: generate from a text prompt and
// modify an existing image.
package imaging

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/aicli/internal/application/prompts"
	"github.com/doeshing/aicli/internal/application/routing"
	"github.com/doeshing/aicli/internal/domain"
	"github.com/doeshing/aicli/internal/ports"
)

const (
	qualityQuestion = "Select image quality:"
	aspectQuestion  = "Select aspect ratio:"
	countWarning    = "Count must be between 1 and 4. Using default count of 1."
)

// Service orchestrates image generation and modification.
type Service struct {
	ConfigProvider ports.ConfigProvider
	GatewayFactory ports.GatewayFactory
	Sources        ports.SourceReader
	Writer         ports.ArtifactWriter
	Console        ports.Console
	Chooser        ports.Chooser
	History        ports.HistoryRepository
	Logger         ports.Logger

	// Now and NewVariationID default to time.Now and uuid.NewString.
	Now            func() time.Time
	NewVariationID func() string
}

// Options are the flags shared by both image actions. Zero Timeout means the
// configured image timeout; empty Quality or Aspect triggers the interactive prompt.
type Options struct {
	Model    string
	Output   string
	Dir      string
	Count    int
	Timeout  time.Duration
	Metadata bool
	Quality  domain.Quality
	Aspect   domain.Aspect
}

// GenerateRequest creates images from a text description.
type GenerateRequest struct {
	Prompt string
	Options
}

// ModifyRequest edits an existing image according to a description.
type ModifyRequest struct {
	ImagePath    string
	Modification string
	Options
}

// Result lists what an image action wrote.
type Result struct {
	Settings     domain.GenerationSettings
	Artifacts    []domain.Artifact
	MetadataPath string
}

// Files returns the artifact paths in write order.
func (r Result) Files() []string {
	files := make([]string, 0, len(r.Artifacts))
	for _, artifact := range r.Artifacts {
		files = append(files, artifact.Path)
	}
	return files
}

// job is the normalized form of either request.
type job struct {
	action      domain.Action
	text        string
	source      string
	attachments []domain.Attachment
	opts        Options
}

func (s *Service) ready() error {
	if s.ConfigProvider == nil || s.GatewayFactory == nil || s.Sources == nil ||
		s.Writer == nil || s.Console == nil || s.Logger == nil {
		return errors.New("imaging.Service dependencies not satisfied")
	}
	return nil
}

// Generate renders Count images from the prompt.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (Result, error) {
	if err := s.ready(); err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return Result{}, domain.NewError(domain.KindInvalidInput, "Prompt cannot be empty.")
	}
	return s.run(ctx, job{
		action: domain.ActionGenerateImage,
		text:   req.Prompt,
		opts:   req.Options,
	})
}

// Modify renders Count modified copies of the source image.
func (s *Service) Modify(ctx context.Context, req ModifyRequest) (Result, error) {
	if err := s.ready(); err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(req.Modification) == "" {
		return Result{}, domain.NewError(domain.KindInvalidInput, "Modification description cannot be empty.")
	}
	attachment, err := s.Sources.ReadImage(req.ImagePath)
	if err != nil {
		return Result{}, err
	}
	return s.run(ctx, job{
		action:      domain.ActionModifyImage,
		text:        req.Modification,
		source:      req.ImagePath,
		attachments: []domain.Attachment{attachment},
		opts:        req.Options,
	})
}

func (s *Service) run(ctx context.Context, j job) (Result, error) {
	modifying := j.action == domain.ActionModifyImage

	count, clamped := domain.ClampCount(j.opts.Count)
	if clamped {
		s.Console.Warn(countWarning)
	}

	gateway, cfg, err := routing.Resolve(ctx, s.ConfigProvider, s.GatewayFactory, j.opts.Model)
	if err != nil {
		return Result{}, err
	}

	settings, err := s.settings(j, count, cfg)
	if err != nil {
		return Result{}, err
	}

	dir := ""
	if j.opts.Output == "" {
		dir, err = s.targetDir(j.opts.Dir)
		if err != nil {
			return Result{}, err
		}
	}

	if modifying {
		s.Console.Info("Processing image modification request...")
	} else {
		s.Console.Info("Generating image from your description...")
	}
	s.Console.Line(fmt.Sprintf("Quality: %s | Aspect: %s | Count: %d | Timeout: %ds",
		settings.Quality, settings.Aspect, settings.Count, settings.TimeoutSeconds()))

	stamp := s.now()
	result := Result{Settings: settings}

	for i := 1; i <= count; i++ {
		s.Console.Line(progressLine(modifying, i, count))

		prompt, err := prompts.Build(j.action, fmt.Sprintf("%s (Variation #%s)", j.text, s.variationID()))
		if err != nil {
			return result, domain.WrapError(domain.KindInvalidInput, "Invalid prompt.", err)
		}
		s.Logger.Debug("requesting image", map[string]interface{}{
			"gateway": gateway.Name(),
			"model":   gateway.Model().ImageModel,
			"index":   i,
			"count":   count,
		})

		stop := s.Console.Busy("Rendering")
		image, err := gateway.GenerateImage(ctx, ports.ImageRequest{
			Instructions: prompt.Instructions,
			Content:      prompt.Content,
			Attachments:  j.attachments,
			Quality:      settings.Quality,
			Aspect:       settings.Aspect,
			Timeout:      settings.Timeout,
		})
		stop()
		if err != nil {
			s.Logger.Error("image request failed", err, map[string]interface{}{"index": i})
			return result, domain.WrapError(domain.KindGatewayError, "Error", err)
		}

		path := s.outputPath(j, dir, stamp, i, count)
		if err := s.Writer.WriteArtifact(image.Data, path); err != nil {
			s.Logger.Error("image write failed", err, map[string]interface{}{"path": path})
			return result, domain.WrapError(domain.KindIoError, "Failed to save image to file.", err)
		}
		result.Artifacts = append(result.Artifacts, domain.Artifact{
			Path: path,
			Kind: domain.ArtifactImage,
			Size: int64(len(image.Data)),
		})
	}

	s.printSummary(modifying, result.Files())

	if j.opts.Metadata {
		result.MetadataPath = s.saveMetadata(j, stamp, settings, result.Files())
	}

	s.recordHistory(j, gateway, stamp, result.Files())
	return result, nil
}

func (s *Service) settings(j job, count int, cfg domain.Config) (domain.GenerationSettings, error) {
	quality := j.opts.Quality
	if quality == "" {
		choice, err := s.choose(qualityQuestion, qualityNames(), string(cfg.DefaultQuality()))
		if err != nil {
			return domain.GenerationSettings{}, err
		}
		if quality, err = domain.ParseQuality(choice); err != nil {
			return domain.GenerationSettings{}, domain.WrapError(domain.KindInvalidInput, "Invalid quality selection.", err)
		}
	}

	aspect := j.opts.Aspect
	if aspect == "" {
		options := domain.GenerationAspects
		fallback := domain.AspectSquare
		if j.action == domain.ActionModifyImage {
			options = domain.ModificationAspects
			fallback = domain.AspectKeepOriginal
		}
		choice, err := s.choose(aspectQuestion, aspectNames(options), string(fallback))
		if err != nil {
			return domain.GenerationSettings{}, err
		}
		if aspect, err = domain.ParseAspect(choice); err != nil {
			return domain.GenerationSettings{}, domain.WrapError(domain.KindInvalidInput, "Invalid aspect ratio selection.", err)
		}
	}

	timeout := j.opts.Timeout
	if timeout <= 0 {
		timeout = cfg.ImageTimeout()
	}

	return domain.GenerationSettings{
		Quality: quality,
		Aspect:  aspect,
		Count:   count,
		Timeout: timeout,
	}, nil
}

func (s *Service) choose(question string, options []string, fallback string) (string, error) {
	if s.Chooser == nil {
		return fallback, nil
	}
	choice, err := s.Chooser.Choose(question, options, fallback)
	if err != nil {
		return "", domain.WrapError(domain.KindIoError, "Failed to read selection.", err)
	}
	return choice, nil
}

// targetDir resolves --dir against the project root and creates it.
func (s *Service) targetDir(dir string) (string, error) {
	root := s.Sources.Root()
	if dir == "" {
		return root, nil
	}
	full := filepath.Join(root, dir)
	if err := s.Writer.MakeDir(full); err != nil {
		return "", domain.WrapError(domain.KindIoError, "Failed to create directory: "+full, err)
	}
	return full, nil
}

func (s *Service) outputPath(j job, dir string, stamp time.Time, index, count int) string {
	if j.opts.Output != "" {
		if count > 1 {
			return domain.CounterPath(j.opts.Output, index)
		}
		return j.opts.Output
	}
	prefix := domain.ImagePrefix
	if j.action == domain.ActionModifyImage {
		prefix = domain.ModifiedImagePrefix
	}
	return domain.ImagePath(dir, prefix, stamp, index)
}

func (s *Service) printSummary(modifying bool, files []string) {
	noun := "image"
	if modifying {
		noun = "image modification"
	}
	summary := "Successfully generated " + noun + "!"
	if len(files) > 1 {
		summary = fmt.Sprintf("Successfully generated %d %ss!", len(files), noun)
	}
	s.Console.Line("")
	s.Console.Info("✓ " + summary)
	for i, file := range files {
		s.Console.Line(fmt.Sprintf("%d. %s", i+1, file))
	}
}

func (s *Service) saveMetadata(j job, stamp time.Time, settings domain.GenerationSettings, files []string) string {
	kind := domain.MetadataGeneration
	if j.action == domain.ActionModifyImage {
		kind = domain.MetadataModification
	}
	meta := domain.NewMetadata(kind, stamp, j.text, settings, files)
	meta.SourceImage = j.source

	path, err := s.Writer.WriteMetadataJSON(meta, filepath.Dir(files[0]))
	if err != nil {
		s.Logger.Warn("metadata write failed", map[string]interface{}{"error": err.Error()})
		s.Console.Warn("Warning: Could not save metadata: " + err.Error())
		return ""
	}
	s.Console.Line("")
	s.Console.Info("📋 Metadata saved to: " + path)
	return path
}

func (s *Service) recordHistory(j job, gateway ports.Gateway, stamp time.Time, files []string) {
	if s.History == nil {
		return
	}
	record := domain.HistoryRecord{
		Timestamp: stamp,
		Action:    j.action,
		Prompt:    j.text,
		Model:     gateway.Model().Name,
		Files:     files,
	}
	if err := s.History.Save(record); err != nil {
		s.Logger.Warn("history save failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) variationID() string {
	if s.NewVariationID != nil {
		return s.NewVariationID()
	}
	return uuid.NewString()
}

func progressLine(modifying bool, index, count int) string {
	noun := "image"
	if modifying {
		noun = "image modification"
	}
	if count > 1 {
		return fmt.Sprintf("Generating %s %d/%d...", noun, index, count)
	}
	return "Generating " + noun + "..."
}

func qualityNames() []string {
	names := make([]string, 0, len(domain.Qualities))
	for _, q := range domain.Qualities {
		names = append(names, string(q))
	}
	return names
}

func aspectNames(aspects []domain.Aspect) []string {
	names := make([]string, 0, len(aspects))
	for _, a := range aspects {
		names = append(names, string(a))
	}
	return names
}
