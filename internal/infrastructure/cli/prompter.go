package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/doeshing/aicli/internal/ports"
)

const maxChoiceAttempts = 3

// Prompter implements ports.Chooser using stdin/stdout.
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewPrompter constructs a prompter referencing stdio. When in is not a
// terminal every question resolves to its default.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{
		in:          bufio.NewReader(in),
		out:         out,
		interactive: isTerminal(in),
	}
}

// Interactive forces prompting even when stdin is not a terminal.
func (p *Prompter) Interactive(enabled bool) *Prompter {
	p.interactive = enabled
	return p
}

// Choose asks question and accepts an option by name or 1-based number. An
// empty answer or end of input selects defaultOption.
func (p *Prompter) Choose(question string, options []string, defaultOption string) (string, error) {
	if !p.interactive {
		return defaultOption, nil
	}

	fmt.Fprintf(p.out, "\n%s [%s]\n", question, defaultOption)
	for i, option := range options {
		fmt.Fprintf(p.out, "  [%d] %s\n", i+1, option)
	}

	for attempt := 0; attempt < maxChoiceAttempts; attempt++ {
		fmt.Fprint(p.out, "> ")
		line, err := p.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		answer := strings.TrimSpace(line)
		if answer == "" {
			return defaultOption, nil
		}
		if choice, ok := matchOption(answer, options); ok {
			return choice, nil
		}
		if errors.Is(err, io.EOF) {
			return defaultOption, nil
		}
		fmt.Fprintf(p.out, "Value \"%s\" is invalid\n", answer)
	}
	return "", fmt.Errorf("no valid choice for %q after %d attempts", question, maxChoiceAttempts)
}

func matchOption(answer string, options []string) (string, bool) {
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(options) {
		return options[n-1], true
	}
	for _, option := range options {
		if strings.EqualFold(option, answer) {
			return option, true
		}
	}
	return "", false
}

var _ ports.Chooser = (*Prompter)(nil)
