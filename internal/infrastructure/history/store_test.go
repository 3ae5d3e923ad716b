package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/aicli/internal/domain"
	"github.com/doeshing/aicli/internal/ports"
)

func sampleRecord(prompt string, at time.Time, files ...string) domain.HistoryRecord {
	return domain.HistoryRecord{
		Timestamp: at,
		Action:    domain.ActionGenerateImage,
		Prompt:    prompt,
		Model:     "gemini",
		Files:     files,
	}
}

func exerciseStore(t *testing.T, store ports.HistoryRepository) {
	t.Helper()
	first := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	second := first.Add(time.Minute)

	records, err := store.Records(0)
	require.NoError(t, err)
	assert.Empty(t, records)

	require.NoError(t, store.Save(sampleRecord("a cat", first, "/p/IMAGE_1.png", "/p/IMAGE_2.png")))
	require.NoError(t, store.Save(sampleRecord("a dog", second, "/p/IMAGE_3.png")))

	records, err = store.Records(0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a dog", records[0].Prompt, "newest first")
	assert.Equal(t, []string{"/p/IMAGE_1.png", "/p/IMAGE_2.png"}, records[1].Files)
	assert.True(t, first.Equal(records[1].Timestamp))
	assert.Equal(t, domain.ActionGenerateImage, records[1].Action)
	assert.Equal(t, "gemini", records[1].Model)

	limited, err := store.Records(1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "a dog", limited[0].Prompt)

	require.NoError(t, store.Clear())
	records, err = store.Records(0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	assert.Equal(t, path, store.Path())
	exerciseStore(t, store)
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "history.jsonl"))
	exerciseStore(t, store)
}

func TestOpenPrefersSQLite(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	_, ok := store.(*SQLiteStore)
	assert.True(t, ok)
}
