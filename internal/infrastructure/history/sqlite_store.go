// Package history records image runs and saved documentation so earlier
// artifacts can be found again with `aicli history`.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/aicli/internal/domain"
	"github.com/doeshing/aicli/internal/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp TEXT NOT NULL,
	action TEXT NOT NULL,
	prompt TEXT,
	model TEXT
);
CREATE TABLE IF NOT EXISTS artifacts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	path TEXT NOT NULL
);`

// SQLiteStore persists history in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init history db: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(schema)
	return err
}

// Save inserts a run and its artifact paths in one transaction.
func (s *SQLiteStore) Save(record domain.HistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`INSERT INTO runs (timestamp, action, prompt, model) VALUES (?, ?, ?, ?)`,
		record.Timestamp.Format(domain.TimestampFormat),
		string(record.Action),
		record.Prompt,
		record.Model,
	)
	if err != nil {
		return err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return err
	}
	for i, file := range record.Files {
		if _, err := tx.Exec(`INSERT INTO artifacts (run_id, position, path) VALUES (?, ?, ?)`, runID, i, file); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Records returns the newest runs first. A non-positive limit returns all.
func (s *SQLiteStore) Records(limit int) ([]domain.HistoryRecord, error) {
	builder := strings.Builder{}
	builder.WriteString("SELECT id, timestamp, action, prompt, model FROM runs ORDER BY id DESC")
	var args []interface{}
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}

	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		records []domain.HistoryRecord
		ids     []int64
	)
	for rows.Next() {
		var (
			rec    domain.HistoryRecord
			id     int64
			ts     string
			action string
		)
		if err := rows.Scan(&id, &ts, &action, &rec.Prompt, &rec.Model); err != nil {
			return nil, err
		}
		if t, err := time.Parse(domain.TimestampFormat, ts); err == nil {
			rec.Timestamp = t
		}
		rec.Action = domain.Action(action)
		records = append(records, rec)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, id := range ids {
		files, err := s.files(id)
		if err != nil {
			return nil, err
		}
		records[i].Files = files
	}
	return records, nil
}

func (s *SQLiteStore) files(runID int64) ([]string, error) {
	rows, err := s.db.Query(`SELECT path FROM artifacts WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		files = append(files, path)
	}
	return files, rows.Err()
}

// Clear deletes all history entries.
func (s *SQLiteStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec("DELETE FROM artifacts"); err != nil {
		return err
	}
	_, err := s.db.Exec("DELETE FROM runs")
	return err
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
