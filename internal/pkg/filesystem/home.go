package filesystem

import (
	"os"
	"path/filepath"
	"strings"
)

// UserHomeDir returns the current user's home directory.
// If the home directory cannot be determined, it returns "." as a fallback.
func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// AppDir is ~/.aicli, home of the config file and history database.
func AppDir() string {
	return filepath.Join(UserHomeDir(), ".aicli")
}

// ExpandPath resolves a leading ~/ against the home directory and cleans the rest.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		return UserHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}
