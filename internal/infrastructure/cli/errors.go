package cli

import (
	"fmt"
	"io"

	"github.com/doeshing/aicli/internal/domain"
)

// Process exit statuses.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// ExitCode maps a command error to the process exit status. Every failure,
// whatever its kind, exits with ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitFailure
}

// ErrorMessage renders err as the single line shown to the user. Handler
// errors carry their own wording; anything else is prefixed with "Error: ".
func ErrorMessage(err error) string {
	if _, ok := domain.KindOf(err); ok {
		return err.Error()
	}
	return "Error: " + err.Error()
}

// RenderError writes the user-facing line for err.
func RenderError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(w, ErrorMessage(err))
}
