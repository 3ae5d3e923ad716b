// Package app is the composition root: it wires application services to
// infrastructure adapters.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/doeshing/aicli/internal/application/assist"
	"github.com/doeshing/aicli/internal/application/doctor"
	"github.com/doeshing/aicli/internal/application/imaging"
	"github.com/doeshing/aicli/internal/domain"
	"github.com/doeshing/aicli/internal/infrastructure/ai"
	"github.com/doeshing/aicli/internal/infrastructure/config"
	"github.com/doeshing/aicli/internal/infrastructure/history"
	"github.com/doeshing/aicli/internal/infrastructure/output"
	"github.com/doeshing/aicli/internal/infrastructure/security"
	"github.com/doeshing/aicli/internal/pkg/logger"
	"github.com/doeshing/aicli/internal/ports"
)

// Options carries the CLI-level settings and terminal adapters.
type Options struct {
	Verbose     bool
	ProjectRoot string
	ConfigPath  string

	Out       io.Writer
	Console   ports.Console
	Chooser   ports.Chooser
	Clipboard ports.Clipboard
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigErr      error
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	ProjectRoot    string

	AssistService  *assist.Service
	ImagingService *imaging.Service
	DoctorService  *doctor.Service
	HistoryStore   ports.HistoryRepository
	Logger         *logger.ZapLogger
}

// BuildContainer constructs the dependency graph. A configuration that fails
// to load is kept in ConfigErr so config and doctor commands can still run;
// services report the failure when they need the config.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	log, err := logger.New(opts.Verbose)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, cfgErr := cfgLoader.Load(ctx)
	if cfgErr != nil {
		log.Warn("config load failed", map[string]interface{}{"path": cfgLoader.Path(), "error": cfgErr.Error()})
	}

	root, err := resolveProjectRoot(opts.ProjectRoot, cfg.Preferences.ProjectRoot)
	if err != nil {
		return nil, err
	}
	loadDotEnv(root, log)

	var historyStore ports.HistoryRepository
	if cfgErr == nil && cfg.IsHistoryEnabled() {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			log.Warn("history database unavailable, using jsonl fallback", map[string]interface{}{"error": err.Error()})
		}
		historyStore = store
	}

	guard := security.NewPathGuard(root)
	writer := output.NewWriter(opts.Out)
	factory := ai.NewFactory()

	assistService := &assist.Service{
		ConfigProvider: cfgLoader,
		GatewayFactory: factory,
		Sources:        guard,
		Writer:         writer,
		Console:        opts.Console,
		Chooser:        opts.Chooser,
		Clipboard:      opts.Clipboard,
		History:        historyStore,
		Logger:         log,
	}

	imagingService := &imaging.Service{
		ConfigProvider: cfgLoader,
		GatewayFactory: factory,
		Sources:        guard,
		Writer:         writer,
		Console:        opts.Console,
		Chooser:        opts.Chooser,
		History:        historyStore,
		Logger:         log,
	}

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		ProjectRoot:    root,
		History:        historyStore,
		Clipboard:      opts.Clipboard,
	}

	return &Container{
		Config:         cfg,
		ConfigErr:      cfgErr,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		ProjectRoot:    root,
		AssistService:  assistService,
		ImagingService: imagingService,
		DoctorService:  doctorService,
		HistoryStore:   historyStore,
		Logger:         log,
	}, nil
}

// resolveProjectRoot picks the flag, then the config value, then the working
// directory, and returns it as an absolute path.
func resolveProjectRoot(flagValue, configured string) (string, error) {
	root := flagValue
	if root == "" {
		root = configured
	}
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("determine working directory: %w", err)
		}
		root = wd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve project root %s: %w", root, err)
	}
	return abs, nil
}

// loadDotEnv reads <root>/.env without overriding variables already set.
func loadDotEnv(root string, log ports.Logger) {
	path := filepath.Join(root, ".env")
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		log.Warn("could not load .env", map[string]interface{}{"path": path, "error": err.Error()})
		return
	}
	log.Debug("loaded .env", map[string]interface{}{"path": path})
}
