package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildContainerUsesFlagRootAndLoadsDotEnv(t *testing.T) {
	root := t.TempDir()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("AICLI_CONTAINER_TEST_KEY", "")
	require.NoError(t, os.Unsetenv("AICLI_CONTAINER_TEST_KEY"))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("AICLI_CONTAINER_TEST_KEY=from-dotenv\n"), 0o600))

	container, err := BuildContainer(context.Background(), Options{
		ProjectRoot: root,
		ConfigPath:  filepath.Join(home, "config.yaml"),
	})
	require.NoError(t, err)
	assert.NoError(t, container.ConfigErr)
	assert.Equal(t, root, container.ProjectRoot)
	assert.Equal(t, "from-dotenv", os.Getenv("AICLI_CONTAINER_TEST_KEY"))
	assert.NotNil(t, container.AssistService)
	assert.NotNil(t, container.ImagingService)
	assert.NotNil(t, container.HistoryStore, "history is enabled in the default config")
	assert.Equal(t, root, container.ImagingService.Sources.Root())
}

func TestBuildContainerKeepsConfigError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("models: [broken"), 0o600))

	container, err := BuildContainer(context.Background(), Options{ProjectRoot: dir, ConfigPath: path})
	require.NoError(t, err)
	assert.Error(t, container.ConfigErr)
	assert.Nil(t, container.HistoryStore)
}

func TestResolveProjectRoot(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	got, err := resolveProjectRoot("", "")
	require.NoError(t, err)
	assert.Equal(t, wd, got)

	got, err = resolveProjectRoot("", "/srv/app")
	require.NoError(t, err)
	assert.Equal(t, "/srv/app", got)

	got, err = resolveProjectRoot("/flag", "/srv/app")
	require.NoError(t, err)
	assert.Equal(t, "/flag", got)
}
