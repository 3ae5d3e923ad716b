package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/doeshing/aicli/internal/ports"
)

// Console writes status lines for one invocation. Regular lines go to out,
// warnings to errOut, and the busy spinner is drawn on errOut only when it
// is a terminal.
type Console struct {
	out      io.Writer
	errOut   io.Writer
	animated bool
}

// NewConsole builds a Console. Nil writers default to stdout and stderr.
func NewConsole(out, errOut io.Writer) *Console {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &Console{out: out, errOut: errOut, animated: isTerminal(errOut)}
}

func (c *Console) Line(msg string) {
	fmt.Fprintln(c.out, msg)
}

func (c *Console) Info(msg string) {
	fmt.Fprintln(c.out, msg)
}

func (c *Console) Warn(msg string) {
	fmt.Fprintln(c.errOut, msg)
}

// Busy starts a spinner labelled label and returns the func that stops it.
func (c *Console) Busy(label string) func() {
	if !c.animated {
		return func() {}
	}
	spinner := NewSpinner(c.errOut, label)
	spinner.Start()
	return spinner.Stop
}

func isTerminal(w interface{}) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

var _ ports.Console = (*Console)(nil)
