package domain

import (
	"fmt"
	"strings"
	"time"
)

// GetDefaultModel retrieves the default model definition from configuration
// Returns an error if the default model is not found
func (c *Config) GetDefaultModel() (ModelDefinition, error) {
	if c.Preferences.DefaultModel == "" {
		return ModelDefinition{}, fmt.Errorf("no default model configured")
	}

	for _, model := range c.Models {
		if model.Name == c.Preferences.DefaultModel {
			return model, nil
		}
	}

	return ModelDefinition{}, fmt.Errorf("default model %s not found in configuration", c.Preferences.DefaultModel)
}

// PickModel resolves override, then the default model, then the first model.
func (c *Config) PickModel(override string) (ModelDefinition, error) {
	name := override
	if name == "" {
		name = c.Preferences.DefaultModel
	}
	if name == "" && len(c.Models) > 0 {
		return c.Models[0], nil
	}
	if model, ok := c.FindModelByName(name); ok {
		return model, nil
	}
	return ModelDefinition{}, fmt.Errorf("model %s not configured", name)
}

// FindModelByName searches for a model by its name
func (c *Config) FindModelByName(name string) (ModelDefinition, bool) {
	for _, model := range c.Models {
		if model.Name == name {
			return model, true
		}
	}
	return ModelDefinition{}, false
}

// HasModel checks if a model with the given name exists in the configuration
func (c *Config) HasModel(name string) bool {
	_, exists := c.FindModelByName(name)
	return exists
}

// TextTimeout returns the per-call timeout for text actions.
func (c *Config) TextTimeout() time.Duration {
	if c.Preferences.TimeoutSeconds <= 0 {
		return DefaultTextTimeout
	}
	return time.Duration(c.Preferences.TimeoutSeconds) * time.Second
}

// ImageTimeout returns the default --timeout for image actions.
func (c *Config) ImageTimeout() time.Duration {
	if c.Images.TimeoutSeconds <= 0 {
		return DefaultImageTimeout
	}
	return time.Duration(c.Images.TimeoutSeconds) * time.Second
}

// DefaultQuality is the quality preselected in the interactive prompt.
func (c *Config) DefaultQuality() Quality {
	if q, err := ParseQuality(string(c.Images.Quality)); err == nil {
		return q
	}
	return QualityHigh
}

// IsHistoryEnabled reports whether saved artifacts are recorded.
func (c *Config) IsHistoryEnabled() bool {
	return c.History.Enabled
}

// ValidateConsistency checks the internal consistency of the configuration
func (c *Config) ValidateConsistency() error {
	if c.Preferences.DefaultModel != "" && len(c.Models) == 0 {
		return fmt.Errorf("default model is set but no models are configured")
	}

	if c.Preferences.DefaultModel != "" && !c.HasModel(c.Preferences.DefaultModel) {
		return fmt.Errorf("default model %s does not exist in models list", c.Preferences.DefaultModel)
	}

	seen := make(map[string]bool, len(c.Models))
	for _, model := range c.Models {
		if seen[model.Name] {
			return fmt.Errorf("model %s is declared more than once", model.Name)
		}
		seen[model.Name] = true
	}

	return nil
}

// ResolvedProvider returns the declared provider, or infers it from the
// endpoint and model name.
func (m ModelDefinition) ResolvedProvider() ProviderKind {
	switch m.Provider {
	case ProviderKindGemini, ProviderKindOpenAI:
		return m.Provider
	}

	nameLower := strings.ToLower(m.Name)
	switch {
	case strings.Contains(m.Endpoint, "googleapis.com"), strings.Contains(nameLower, "gemini"):
		return ProviderKindGemini
	case strings.Contains(m.Endpoint, "openai.com"), strings.Contains(nameLower, "gpt"), strings.Contains(nameLower, "openai"):
		return ProviderKindOpenAI
	default:
		return ProviderKindUnknown
	}
}

// FallbackAuthEnvVar names the variable consulted when AuthEnvVar is unset or empty.
func (m ModelDefinition) FallbackAuthEnvVar() string {
	switch m.ResolvedProvider() {
	case ProviderKindGemini:
		return "GEMINI_API_KEY"
	case ProviderKindOpenAI:
		return "OPENAI_API_KEY"
	default:
		return ""
	}
}
