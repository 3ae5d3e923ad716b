// Package doctor runs environment diagnostics for `aicli doctor`.
package doctor

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	appconfig "github.com/doeshing/aicli/internal/application/config"
	"github.com/doeshing/aicli/internal/domain"
	"github.com/doeshing/aicli/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	ProjectRoot    string
	History        ports.HistoryRepository
	Clipboard      ports.Clipboard
}

// Run executes checks and returns a report. The error is non-nil only when
// the configuration cannot be loaded at all.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("format version %s, %d model(s)", cfg.ConfigFormatVersion, len(cfg.Models))))

	if err := appconfig.Validate(cfg); err != nil {
		checks = append(checks, fail("Config validation", err.Error()))
	} else {
		checks = append(checks, ok("Config validation", "no problems found"))
	}

	checks = append(checks, defaultModelCheck(cfg))
	checks = append(checks, apiChecks(cfg.Models)...)
	checks = append(checks, projectRootCheck(s.ProjectRoot))

	if s.History != nil {
		checks = append(checks, historyCheck(s.History))
	} else if cfg.IsHistoryEnabled() {
		checks = append(checks, warn("History", "enabled but the store could not be opened"))
	} else {
		checks = append(checks, ok("History", "disabled"))
	}

	if s.Clipboard != nil && s.Clipboard.Enabled() {
		checks = append(checks, ok("Clipboard", "available for ask --copy"))
	} else {
		checks = append(checks, warn("Clipboard", "unavailable; ask --copy will only warn"))
	}

	return domain.HealthReport{Checks: checks}, nil
}

func defaultModelCheck(cfg domain.Config) domain.HealthCheck {
	model, err := cfg.PickModel("")
	if err != nil {
		return fail("Default model", err.Error())
	}
	if model.ResolvedProvider() == domain.ProviderKindUnknown {
		return fail("Default model", fmt.Sprintf("%s has no recognised provider", model.Name))
	}
	return ok("Default model", fmt.Sprintf("%s (%s)", model.Name, model.ResolvedProvider()))
}

func apiChecks(models []domain.ModelDefinition) []domain.HealthCheck {
	checks := make([]domain.HealthCheck, 0, len(models))
	for _, model := range models {
		name := "API key: " + model.Name
		fallback := model.FallbackAuthEnvVar()
		if envMissing(model.AuthEnvVar, fallback) {
			checks = append(checks, warn(name, missingKeyDetails(model.AuthEnvVar, fallback)))
			continue
		}
		checks = append(checks, ok(name, "set"))
	}
	return checks
}

func missingKeyDetails(primary, fallback string) string {
	switch {
	case primary == "" && fallback == "":
		return "no auth_env_var configured"
	case primary == "" || primary == fallback:
		return fallback + " missing"
	case fallback == "":
		return primary + " missing"
	default:
		return fmt.Sprintf("%s and %s missing", primary, fallback)
	}
}

func projectRootCheck(root string) domain.HealthCheck {
	info, err := os.Stat(root)
	if err != nil {
		return fail("Project root", err.Error())
	}
	if !info.IsDir() {
		return fail("Project root", root+" is not a directory")
	}
	probe, err := os.CreateTemp(root, ".aicli-doctor-*")
	if err != nil {
		return fail("Project root", fmt.Sprintf("%s is not writable: %v", root, err))
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
	return ok("Project root", root+" is writable")
}

func historyCheck(history ports.HistoryRepository) domain.HealthCheck {
	records, err := history.Records(0)
	if err != nil {
		return warn("History", fmt.Sprintf("%s unreadable: %v", history.Path(), err))
	}
	details := fmt.Sprintf("%s, %d run(s)", history.Path(), len(records))
	if info, err := os.Stat(history.Path()); err == nil {
		details += ", " + humanize.Bytes(uint64(info.Size()))
	}
	return ok("History", details)
}

func envMissing(primary, fallback string) bool {
	if primary != "" && os.Getenv(primary) != "" {
		return false
	}
	if fallback != "" && os.Getenv(fallback) != "" {
		return false
	}
	return true
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
