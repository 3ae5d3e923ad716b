// Package config validates a loaded configuration before use.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/aicli/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if len(cfg.Models) == 0 {
		return errors.New("at least one model must be configured")
	}
	if cfg.Preferences.DefaultModel != "" && !cfg.HasModel(cfg.Preferences.DefaultModel) {
		return fmt.Errorf("default model %s not found in models list", cfg.Preferences.DefaultModel)
	}
	if err := cfg.ValidateConsistency(); err != nil {
		return err
	}
	for _, model := range cfg.Models {
		if err := validateModel(model); err != nil {
			return err
		}
	}
	if err := validatePreferences(cfg.Preferences); err != nil {
		return err
	}
	if err := validateImages(cfg.Images); err != nil {
		return err
	}
	return validateHistory(cfg.History)
}

func validateModel(model domain.ModelDefinition) error {
	if strings.TrimSpace(model.Name) == "" {
		return errors.New("every model needs a name")
	}
	switch model.Provider {
	case "", domain.ProviderKindGemini, domain.ProviderKindOpenAI:
	default:
		return fmt.Errorf("model %s: provider must be gemini|openai, got %s", model.Name, model.Provider)
	}
	if model.MaxTokens < 0 {
		return fmt.Errorf("model %s: max_tokens must be >= 0", model.Name)
	}
	return nil
}

func validatePreferences(prefs domain.Preferences) error {
	if prefs.TimeoutSeconds < 0 {
		return fmt.Errorf("preferences.timeout must be >= 0")
	}
	return nil
}

func validateImages(images domain.ImageSettings) error {
	if images.Quality != "" {
		if _, err := domain.ParseQuality(string(images.Quality)); err != nil {
			return fmt.Errorf("images.quality must be high|medium|low, got %s", images.Quality)
		}
	}
	if images.TimeoutSeconds < 0 {
		return fmt.Errorf("images.timeout must be >= 0")
	}
	if strings.Contains(images.Directory, "..") {
		return fmt.Errorf("images.directory must stay inside the project root")
	}
	return nil
}

func validateHistory(history domain.HistorySettings) error {
	if history.Enabled && history.Path == "" {
		return fmt.Errorf("history.path must be set when history is enabled")
	}
	return nil
}
