package cli

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner redraws "<frame> <label>... <elapsed>" on one line until stopped.
// Elapsed seconds appear once the first second has passed.
type Spinner struct {
	w     io.Writer
	label string

	startOnce sync.Once
	stopOnce  sync.Once
	started   bool
	done      chan struct{}
	finished  chan struct{}
}

// NewSpinner creates a spinner writing to w.
func NewSpinner(w io.Writer, label string) *Spinner {
	return &Spinner{
		w:        w,
		label:    label,
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

// Start begins drawing in the background. Later calls are no-ops.
func (s *Spinner) Start() {
	s.startOnce.Do(func() {
		s.started = true
		go s.loop(time.Now())
	})
}

func (s *Spinner) loop(started time.Time) {
	defer close(s.finished)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		fmt.Fprintf(s.w, "\r%s %s...%s", spinnerFrames[frame%len(spinnerFrames)], s.label, elapsedSuffix(time.Since(started)))
		select {
		case <-s.done:
			fmt.Fprint(s.w, "\r\033[K")
			return
		case <-ticker.C:
		}
	}
}

// Stop clears the line and waits for the drawing goroutine. It is safe to
// call more than once, and before Start.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		s.startOnce.Do(func() {})
		close(s.done)
		if s.started {
			<-s.finished
		}
	})
}

func elapsedSuffix(d time.Duration) string {
	if d < time.Second {
		return ""
	}
	return fmt.Sprintf(" %ds", int(d/time.Second))
}
