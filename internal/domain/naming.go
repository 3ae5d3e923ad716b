package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ImagePath builds <dir>/<prefix>_<timestamp>_<index>.png.
func ImagePath(dir, prefix string, at time.Time, index int) string {
	name := fmt.Sprintf("%s_%s_%d.%s", prefix, at.Format(FileTimestampFormat), index, DefaultImageExt)
	return filepath.Join(dir, name)
}

// CounterPath suffixes a user-supplied output path with _<index>, keeping its
// extension (png when it has none).
func CounterPath(output string, index int) string {
	dir := filepath.Dir(output)
	base := filepath.Base(output)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if ext == "" {
		ext = "." + DefaultImageExt
	}
	return filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, index, ext))
}

// DocumentationPath builds <root>/DOCUMENTATION_<source basename without extension>.md.
func DocumentationPath(root, source string) string {
	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(root, fmt.Sprintf("%s_%s.md", DocumentationPrefix, stem))
}
