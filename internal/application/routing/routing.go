// Package routing resolves which configured model, and therefore which
// gateway, serves a command.
package routing

import (
	"context"

	"github.com/doeshing/aicli/internal/domain"
	"github.com/doeshing/aicli/internal/ports"
)

// Resolve loads the configuration and builds the gateway for override, or for
// the default model when override is empty.
func Resolve(ctx context.Context, configs ports.ConfigProvider, factory ports.GatewayFactory, override string) (ports.Gateway, domain.Config, error) {
	cfg, err := configs.Load(ctx)
	if err != nil {
		return nil, domain.Config{}, domain.WrapError(domain.KindIoError, "Failed to load configuration.", err)
	}

	model, err := cfg.PickModel(override)
	if err != nil {
		return nil, cfg, domain.WrapError(domain.KindInvalidInput, "Invalid model selection.", err)
	}

	gateway, err := factory.ForModel(model)
	if err != nil {
		return nil, cfg, domain.WrapError(domain.KindGatewayError, "Error", err)
	}
	return gateway, cfg, nil
}
