package security

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/aicli/internal/domain"
)

func TestIsSafeRejectsTraversal(t *testing.T) {
	paths := []string{
		"..",
		"../secret.txt",
		"app/../../etc/passwd",
		"/project/app/../x",
		"foo..bar",
		"notes/..hidden",
	}
	for _, path := range paths {
		assert.False(t, IsSafe(path, "/project"), "expected %q to be rejected", path)
	}
}

func TestIsSafeRejectsAbsoluteOutsideRoot(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("root separator semantics differ on windows")
	}
	assert.False(t, IsSafe("/etc/passwd", "/project"))
	assert.False(t, IsSafe("/tmp/file.go", "/project"))
	assert.True(t, IsSafe("/project/app/main.go", "/project"))
}

func TestIsSafeAcceptsRelativeWithoutTraversal(t *testing.T) {
	paths := []string{"main.go", "app/Models/User.php", "./storage/logs/app.log", ".env"}
	for _, path := range paths {
		assert.True(t, IsSafe(path, "/project"), "expected %q to be accepted", path)
	}
}

func TestIsSafePrefixCheckIsLexical(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("root separator semantics differ on windows")
	}
	// A sibling directory sharing the root's prefix passes the lexical check.
	assert.True(t, IsSafe("/project-other/file.go", "/project"))
}

func TestPathGuardReadFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "main.go")
	require.NoError(t, os.WriteFile(file, []byte("package main"), 0o644))

	guard := NewPathGuard(root)

	t.Run("reads existing file", func(t *testing.T) {
		data, err := guard.ReadFile(file, SourceFileLabel)
		require.NoError(t, err)
		assert.Equal(t, "package main", string(data))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := guard.ReadFile(filepath.Join(root, "nonexistent.php"), SourceFileLabel)
		require.Error(t, err)
		kind, ok := domain.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, domain.KindFileNotFound, kind)
		assert.Equal(t, "File not found.", err.Error())
	})

	t.Run("directory is not a file", func(t *testing.T) {
		_, err := guard.ReadFile(root, SourceFileLabel)
		kind, _ := domain.KindOf(err)
		assert.Equal(t, domain.KindFileNotFound, kind)
	})

	t.Run("traversal rejected before stat", func(t *testing.T) {
		_, err := guard.ReadFile("../main.go", SourceFileLabel)
		kind, _ := domain.KindOf(err)
		assert.Equal(t, domain.KindPathRejected, kind)
		assert.Equal(t, "Invalid file path provided.", err.Error())
	})

	t.Run("custom label without path", func(t *testing.T) {
		label := Label{NotFound: "Log file not found:", Unreadable: "Log file is not readable."}
		_, err := guard.ReadFile(filepath.Join(root, "app.log"), label)
		assert.Equal(t, "Log file not found:", err.Error())
	})

	t.Run("image label includes path", func(t *testing.T) {
		missing := filepath.Join(root, "cat.png")
		_, err := guard.ReadFile(missing, ImageFileLabel)
		assert.Equal(t, "Image file not found: "+missing, err.Error())
	})
}

func TestValidateImage(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	mimeType, err := ValidateImage(png)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)

	svg := []byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"></svg>`)
	mimeType, err = ValidateImage(svg)
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", mimeType)

	_, err = ValidateImage([]byte("just some text"))
	require.Error(t, err)
	kind, _ := domain.KindOf(err)
	assert.Equal(t, domain.KindUnsupportedMimeType, kind)
}

func TestPathGuardReadImage(t *testing.T) {
	root := t.TempDir()
	image := filepath.Join(root, "cat.png")
	require.NoError(t, os.WriteFile(image, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), 0o644))
	text := filepath.Join(root, "cat.txt")
	require.NoError(t, os.WriteFile(text, []byte("meow"), 0o644))

	guard := NewPathGuard(root)

	attachment, err := guard.ReadImage(image)
	require.NoError(t, err)
	assert.Equal(t, "image/png", attachment.MIMEType)
	assert.Equal(t, image, attachment.Path)

	_, err = guard.ReadImage(text)
	kind, _ := domain.KindOf(err)
	assert.Equal(t, domain.KindUnsupportedMimeType, kind)
}

func TestDetectImageMIMESniffsSVGByContent(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{name: "xml declaration", data: `<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"></svg>`, want: "image/svg+xml"},
		{name: "bare root element", data: `<svg xmlns="http://www.w3.org/2000/svg" width="10"></svg>`, want: "image/svg+xml"},
		{name: "upper case", data: `<SVG></SVG>`, want: "image/svg+xml"},
		{name: "plain text", data: "no drawing here", want: "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectImageMIME([]byte(tt.data)))
		})
	}
}

func TestPathGuardReadImageAcceptsExtensionlessSVG(t *testing.T) {
	root := t.TempDir()
	drawing := filepath.Join(root, "logo")
	require.NoError(t, os.WriteFile(drawing, []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`), 0o644))

	attachment, err := NewPathGuard(root).ReadImage(drawing)
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", attachment.MIMEType)
}
