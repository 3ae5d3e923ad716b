package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// ArtifactFilePermissions is the permission for generated artifacts (rw-r--r--)
	ArtifactFilePermissions = 0o644
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Image generation limits
const (
	MinImageCount     = 1
	MaxImageCount     = 4
	DefaultImageCount = 1
	// DefaultImageTimeout matches the --timeout flag default
	DefaultImageTimeout = 120 * time.Second
	// DefaultTextTimeout bounds a single text gateway call
	DefaultTextTimeout = 60 * time.Second
)

// Supported image MIME types for image modification.
var SupportedImageMIMETypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"image/svg+xml",
}

// Artifact naming
const (
	ImagePrefix         = "IMAGE"
	ModifiedImagePrefix = "IMAGE_MOD"
	DocumentationPrefix = "DOCUMENTATION"
	MetadataPrefix      = "metadata"
	DefaultImageExt     = "png"
)

// Time formats
const (
	// FileTimestampFormat is embedded in generated file names
	FileTimestampFormat = "2006-01-02_15-04-05"
	// MetadataTimestampFormat is stored inside metadata sidecars
	MetadataTimestampFormat = "2006-01-02 15:04:05"
	// TimestampFormat is used for history rows
	TimestampFormat = time.RFC3339
)

// History constants
const (
	// DefaultHistoryLimit is the default number of history records to display
	DefaultHistoryLimit = 20
)

// Model configuration constants
const (
	// DefaultMaxTokens is the default maximum number of tokens
	DefaultMaxTokens = 1024
)
