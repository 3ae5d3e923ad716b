package domain

// Config mirrors ~/.aicli/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version" json:"config_format_version"`
	Preferences         Preferences       `yaml:"preferences" json:"preferences"`
	Images              ImageSettings     `yaml:"images" json:"images"`
	History             HistorySettings   `yaml:"history" json:"history"`
	Models              []ModelDefinition `yaml:"models" json:"models"`
}

// Preferences captures user level toggles.
type Preferences struct {
	DefaultModel   string `yaml:"default_model" json:"default_model"`
	ProjectRoot    string `yaml:"project_root" json:"project_root"`
	TimeoutSeconds int    `yaml:"timeout" json:"timeout"`
}

// ImageSettings provides defaults for the image commands.
type ImageSettings struct {
	Quality        Quality `yaml:"quality" json:"quality"`
	TimeoutSeconds int     `yaml:"timeout" json:"timeout"`
	Directory      string  `yaml:"directory" json:"directory"`
}

// HistorySettings controls the artifact history database.
type HistorySettings struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Path    string `yaml:"path" json:"path"`
}

// ProviderKind names the gateway implementation a model is served by.
type ProviderKind string

const (
	ProviderKindGemini  ProviderKind = "gemini"
	ProviderKindOpenAI  ProviderKind = "openai"
	ProviderKindUnknown ProviderKind = "unknown"
)

// ModelDefinition describes an AI provider configuration declared in the config file.
type ModelDefinition struct {
	Name       string       `yaml:"name" json:"name"`
	Provider   ProviderKind `yaml:"provider" json:"provider"`
	Endpoint   string       `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`
	AuthEnvVar string       `yaml:"auth_env_var" json:"auth_env_var"`
	TextModel  string       `yaml:"text_model" json:"text_model"`
	ImageModel string       `yaml:"image_model" json:"image_model"`
	MaxTokens  int          `yaml:"max_tokens,omitempty" json:"max_tokens,omitempty"`
}
