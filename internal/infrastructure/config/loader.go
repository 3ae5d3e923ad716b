// Package config loads and persists ~/.aicli/config.yaml.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/aicli/assets"
	"github.com/doeshing/aicli/internal/domain"
	"github.com/doeshing/aicli/internal/pkg/filesystem"
	"github.com/doeshing/aicli/internal/ports"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "AICLI_CONFIG"

// FileLoader loads YAML configuration from ~/.aicli/config.yaml (overridable via AICLI_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader. An empty path uses the default location.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing file is created from the
// embedded defaults.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, fmt.Errorf("ensure config dir: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg, err := DefaultConfig()
			if err != nil {
				return domain.Config{}, err
			}
			if err := writeDefault(path); err != nil {
				return domain.Config{}, err
			}
			return cfg, nil
		}
		return domain.Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	return hydrateDefaults(cfg), nil
}

// Path returns the resolved config file path.
func (l *FileLoader) Path() string {
	return l.resolvePath()
}

// Save writes the given config back to disk.
func (l *FileLoader) Save(cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

// Reset backs up the current file, if any, then restores the embedded
// defaults. It returns the backup path, empty when there was nothing to keep.
func (l *FileLoader) Reset() (string, error) {
	backup, err := l.Backup()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return "", err
	}
	if err := writeDefault(path); err != nil {
		return "", err
	}
	return backup, nil
}

// Backup copies the current config file to a timestamped backup.
func (l *FileLoader) Backup() (string, error) {
	path := l.resolvePath()
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	backup := fmt.Sprintf("%s.%s.bak", path, time.Now().Format("20060102T150405"))
	if err := os.WriteFile(backup, data, domain.SecureFilePermissions); err != nil {
		return "", err
	}
	return backup, nil
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath)
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filepath.Join(filesystem.AppDir(), "config.yaml")
}

func ensureConfigDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
}

// writeDefault copies the embedded YAML verbatim so its comments survive.
func writeDefault(path string) error {
	return os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions)
}

// DefaultConfig parses the embedded default configuration with defaults
// filled in the same way Load does.
func DefaultConfig() (domain.Config, error) {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse embedded config: %w", err)
	}
	return hydrateDefaults(cfg), nil
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Preferences.DefaultModel == "" && len(cfg.Models) > 0 {
		cfg.Preferences.DefaultModel = cfg.Models[0].Name
	}
	if cfg.Preferences.TimeoutSeconds == 0 {
		cfg.Preferences.TimeoutSeconds = int(domain.DefaultTextTimeout / time.Second)
	}
	if cfg.Images.TimeoutSeconds == 0 {
		cfg.Images.TimeoutSeconds = int(domain.DefaultImageTimeout / time.Second)
	}
	if cfg.Images.Quality == "" {
		cfg.Images.Quality = domain.QualityHigh
	}
	cfg.Preferences.ProjectRoot = filesystem.ExpandPath(cfg.Preferences.ProjectRoot)
	if cfg.History.Path == "" {
		cfg.History.Path = filepath.Join(filesystem.AppDir(), "history.db")
	}
	cfg.History.Path = filesystem.ExpandPath(cfg.History.Path)
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
