package history

import (
	"strings"

	"github.com/doeshing/aicli/internal/ports"
)

// Open returns the SQLite store at path, falling back to a jsonl file next to
// it when the database cannot be opened. The error reports why the fallback
// was taken and is nil otherwise.
func Open(path string) (ports.HistoryRepository, error) {
	store, err := NewSQLiteStore(path)
	if err == nil {
		return store, nil
	}
	fallback := strings.TrimSuffix(path, ".db") + ".jsonl"
	return NewFileStore(fallback), err
}
