// Package output prints gateway text to the terminal and persists generated
// artifacts and their metadata sidecars.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/doeshing/aicli/internal/domain"
	"github.com/doeshing/aicli/internal/ports"
)

const separatorWidth = 80

// Separator is the decorative rule printed around text output.
var Separator = strings.Repeat("─", separatorWidth)

// Writer formats text for a terminal stream and writes files to disk.
type Writer struct {
	out io.Writer
	now func() time.Time
}

// NewWriter builds a Writer printing to out. A nil out discards text.
func NewWriter(out io.Writer) *Writer {
	if out == nil {
		out = io.Discard
	}
	return &Writer{out: out, now: time.Now}
}

// WithClock overrides the time source used for metadata file names.
func (w *Writer) WithClock(now func() time.Time) *Writer {
	w.now = now
	return w
}

// WriteText prints content between two separators.
func (w *Writer) WriteText(content string) {
	fmt.Fprintln(w.out)
	fmt.Fprintln(w.out, Separator)
	fmt.Fprintln(w.out, content)
	fmt.Fprintln(w.out, Separator)
}

// WriteArtifact writes data verbatim to path, creating the parent directory.
func (w *Writer) WriteArtifact(data []byte, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, domain.ArtifactFilePermissions); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// MakeDir creates path and any missing parents.
func (w *Writer) MakeDir(path string) error {
	return os.MkdirAll(path, domain.DirectoryPermissions)
}

// WriteMetadataJSON writes meta as metadata_<timestamp>.json inside dir and
// returns the file path.
func (w *Writer) WriteMetadataJSON(meta domain.Metadata, dir string) (string, error) {
	raw, err := EncodeMetadata(meta)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s_%s.json", domain.MetadataPrefix, w.now().Format(domain.FileTimestampFormat))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, raw, domain.ArtifactFilePermissions); err != nil {
		return "", fmt.Errorf("write metadata %s: %w", path, err)
	}
	return path, nil
}

// EncodeMetadata renders meta as indented JSON with unescaped slashes and HTML.
func EncodeMetadata(meta domain.Metadata) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(meta); err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

var _ ports.ArtifactWriter = (*Writer)(nil)
