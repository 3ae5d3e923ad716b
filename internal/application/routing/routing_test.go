package routing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/aicli/internal/domain"
	"github.com/doeshing/aicli/internal/ports"
)

type stubConfigProvider struct {
	cfg domain.Config
	err error
}

func (s stubConfigProvider) Load(context.Context) (domain.Config, error) {
	return s.cfg, s.err
}

type stubFactory struct {
	err  error
	seen domain.ModelDefinition
}

func (s *stubFactory) ForModel(model domain.ModelDefinition) (ports.Gateway, error) {
	s.seen = model
	return nil, s.err
}

func TestResolvePicksOverride(t *testing.T) {
	cfg := domain.Config{
		Preferences: domain.Preferences{DefaultModel: "gemini"},
		Models:      []domain.ModelDefinition{{Name: "gemini"}, {Name: "openai"}},
	}
	factory := &stubFactory{}

	_, _, err := Resolve(context.Background(), stubConfigProvider{cfg: cfg}, factory, "openai")
	require.NoError(t, err)
	assert.Equal(t, "openai", factory.seen.Name)
}

func TestResolveErrorKinds(t *testing.T) {
	cfg := domain.Config{Models: []domain.ModelDefinition{{Name: "gemini"}}}

	tests := []struct {
		name     string
		configs  ports.ConfigProvider
		factory  *stubFactory
		override string
		want     domain.ErrorKind
	}{
		{name: "config load fails", configs: stubConfigProvider{err: errors.New("bad yaml")}, factory: &stubFactory{}, want: domain.KindIoError},
		{name: "unknown model", configs: stubConfigProvider{cfg: cfg}, factory: &stubFactory{}, override: "missing", want: domain.KindInvalidInput},
		{name: "gateway init fails", configs: stubConfigProvider{cfg: cfg}, factory: &stubFactory{err: errors.New("no key")}, want: domain.KindGatewayError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Resolve(context.Background(), tt.configs, tt.factory, tt.override)
			kind, ok := domain.KindOf(err)
			require.True(t, ok)
			assert.Equal(t, tt.want, kind)
		})
	}
}
