package cmd

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

//nolint:gochecknoglobals // Spinner frames
var spinnerFrames = []string{"|", "/", "-", "\\"}

const spinnerInterval = 100 * time.Millisecond

// spinner draws a one-line progress indicator until stopped.
type spinner struct {
	out       io.Writer
	message   string
	quit      chan struct{}
	finished  chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
}

func newSpinner(out io.Writer, message string) (s *spinner) {
	s = &spinner{
		out:      out,
		message:  message,
		quit:     make(chan struct{}),
		finished: make(chan struct{}),
	}
	return s
}

// start begins drawing. Calls after the first, or after stop, do nothing.
func (s *spinner) start() {
	s.startOnce.Do(func() {
		go s.run()
	})
}

func (s *spinner) run() {
	defer close(s.finished)

	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	_, _ = fmt.Fprintf(s.out, "%s ", s.message)
	for i := 0; ; i++ {
		select {
		case <-s.quit:
			_, _ = fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.message)+2))
			return
		case <-ticker.C:
			_, _ = fmt.Fprintf(s.out, "\r%s %s", s.message, spinnerFrames[i%len(spinnerFrames)])
		}
	}
}

// stop clears the line and waits for the drawing goroutine to exit.
// It is safe to call more than once, and before start.
func (s *spinner) stop() {
	s.stopOnce.Do(func() {
		// A spinner that never started has nothing to wait for.
		s.startOnce.Do(func() { close(s.finished) })
		close(s.quit)
	})
	<-s.finished
}

// withSpinner runs fn behind a spinner on out. Verbose runs print the
// message instead, so the spinner does not fight with debug logs.
func withSpinner(out io.Writer, verbose bool, message string, fn func() error) (err error) {
	if verbose {
		_, _ = fmt.Fprintln(out, message)
		err = fn()
		return err
	}

	s := newSpinner(out, message)
	s.start()
	defer s.stop()

	err = fn()
	return err
}
