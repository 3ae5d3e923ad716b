// Package security validates file arguments before their contents are sent
// to the AI gateway.
package security

import (
	"bytes"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/doeshing/aicli/internal/domain"
	"github.com/doeshing/aicli/internal/ports"
)

const parentDirToken = ".."

// IsSafe rejects absolute paths outside projectRoot and any path containing
// a parent-directory token. The check is lexical: relative paths that escape
// the root through symlinks are accepted.
func IsSafe(path, projectRoot string) bool {
	if strings.HasPrefix(path, string(filepath.Separator)) && !strings.HasPrefix(path, projectRoot) {
		return false
	}
	if strings.Contains(path, parentDirToken) {
		return false
	}
	return true
}

// PathGuard binds a project root and performs the full file validation chain:
// path safety, existence, readability.
type PathGuard struct {
	root string
}

// NewPathGuard builds a guard for projectRoot.
func NewPathGuard(projectRoot string) *PathGuard {
	return &PathGuard{root: projectRoot}
}

// Root returns the configured project root.
func (g *PathGuard) Root() string {
	return g.root
}

// Label customizes the user-facing wording for a file argument. When
// AppendPath is set the not-found message is followed by the offending path.
type Label struct {
	NotFound   string
	AppendPath bool
	Unreadable string
}

// SourceFileLabel is used for code and log files.
var SourceFileLabel = Label{
	NotFound:   "File not found.",
	Unreadable: "File is not readable.",
}

// ImageFileLabel is used for the image-mod source image.
var ImageFileLabel = Label{
	NotFound:   "Image file not found:",
	AppendPath: true,
	Unreadable: "Image file is not readable.",
}

// ReadFile validates path and returns its contents.
func (g *PathGuard) ReadFile(path string, label Label) ([]byte, error) {
	if !IsSafe(path, g.root) {
		return nil, domain.NewError(domain.KindPathRejected, "Invalid file path provided.")
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, domain.NewError(domain.KindFileNotFound, notFoundMessage(label, path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return nil, domain.WrapError(domain.KindFileUnreadable, label.Unreadable, err)
		}
		return nil, domain.WrapError(domain.KindFileUnreadable, "Failed to read file.", err)
	}
	return data, nil
}

func notFoundMessage(label Label, path string) string {
	if label.AppendPath {
		return label.NotFound + " " + path
	}
	return label.NotFound
}

// svgSniffLen bounds how far into a file the <svg root element is searched.
const svgSniffLen = 1024

// DetectImageMIME sniffs the content type of an image. SVG is text, so any
// textual content whose leading bytes open an <svg element is reported as
// image/svg+xml whatever the file extension.
func DetectImageMIME(data []byte) string {
	mimeType := http.DetectContentType(data)
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = mimeType[:idx]
	}
	if isTextual(mimeType) && looksLikeSVG(data) {
		return "image/svg+xml"
	}
	return mimeType
}

func isTextual(mimeType string) bool {
	return strings.HasPrefix(mimeType, "text/") || mimeType == "application/xml"
}

func looksLikeSVG(data []byte) bool {
	head := data
	if len(head) > svgSniffLen {
		head = head[:svgSniffLen]
	}
	return bytes.Contains(bytes.ToLower(head), []byte("<svg"))
}

// ValidateImage checks the MIME type against the supported image set.
func ValidateImage(data []byte) (string, error) {
	mimeType := DetectImageMIME(data)
	if !slices.Contains(domain.SupportedImageMIMETypes, mimeType) {
		return mimeType, domain.NewError(domain.KindUnsupportedMimeType, "Invalid image file. Supported formats: JPEG, PNG, GIF, WebP, SVG")
	}
	return mimeType, nil
}

// ReadSource implements ports.SourceReader for code and log files.
func (g *PathGuard) ReadSource(path string) ([]byte, error) {
	return g.ReadFile(path, SourceFileLabel)
}

// ReadImage implements ports.SourceReader for image-mod sources.
func (g *PathGuard) ReadImage(path string) (domain.Attachment, error) {
	data, err := g.ReadFile(path, ImageFileLabel)
	if err != nil {
		return domain.Attachment{}, err
	}
	mimeType, err := ValidateImage(data)
	if err != nil {
		return domain.Attachment{}, err
	}
	return domain.Attachment{Path: path, MIMEType: mimeType, Data: data}, nil
}

var _ ports.SourceReader = (*PathGuard)(nil)
