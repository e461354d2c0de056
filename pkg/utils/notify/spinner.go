package notify

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	fcolor "github.com/fatih/color"
	"golang.org/x/term"
)

const spinnerTickInterval = 100 * time.Millisecond

func spinnerFrames() []string {
	return []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
}

// IsTerminal reports whether writer, or a writer it wraps, is an interactive terminal.
func IsTerminal(writer io.Writer) bool {
	for writer != nil {
		if file, ok := writer.(*os.File); ok {
			return term.IsTerminal(int(file.Fd()))
		}

		wrapper, ok := writer.(interface{ Unwrap() io.Writer })
		if !ok {
			return false
		}

		writer = wrapper.Unwrap()
	}

	return false
}

// Spinner shows one line of progress: a text and an optional percentage.
//
// On a terminal the line is redrawn in place with an animated frame. Otherwise every
// change of text or percentage is printed as its own "►" line so logs stay readable.
type Spinner struct {
	writer io.Writer
	isTTY  bool

	mu      sync.Mutex
	text    string
	percent int
	frame   int
	active  bool
	stop    chan struct{}
	done    chan struct{}
}

// SpinnerOption configures a Spinner.
type SpinnerOption func(*Spinner)

// WithTTY forces terminal or plain rendering.
func WithTTY(isTTY bool) SpinnerOption {
	return func(s *Spinner) {
		s.isTTY = isTTY
	}
}

// NewSpinner creates a stopped spinner writing to writer (os.Stdout when nil).
func NewSpinner(writer io.Writer, opts ...SpinnerOption) *Spinner {
	if writer == nil {
		writer = os.Stdout
	}

	spinner := &Spinner{
		writer:  writer,
		isTTY:   IsTerminal(writer),
		percent: -1,
	}

	for _, opt := range opts {
		opt(spinner)
	}

	return spinner
}

// Start shows text and begins animating. Starting an active spinner only changes its text.
func (s *Spinner) Start(text string) {
	s.mu.Lock()

	if s.active {
		s.mu.Unlock()
		s.SetText(text)

		return
	}

	s.active = true
	s.text = text
	s.percent = -1

	if !s.isTTY {
		s.printPlainLocked()
		s.mu.Unlock()

		return
	}

	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	s.drawLocked()
	s.mu.Unlock()

	go s.animate()
}

// SetText replaces the text and keeps the current percentage.
func (s *Spinner) SetText(text string) {
	s.update(text, -2)
}

// Progress replaces the text and shows percent next to it.
func (s *Spinner) Progress(text string, percent int) {
	s.update(text, percent)
}

// Succeed stops the spinner and prints a success line.
func (s *Spinner) Succeed(format string, args ...any) {
	s.halt()
	Successf(s.writer, format, args...)
}

// Fail stops the spinner and prints an error line.
func (s *Spinner) Fail(format string, args ...any) {
	s.halt()
	Errorf(s.writer, format, args...)
}

// Warn stops the spinner and prints a warning line.
func (s *Spinner) Warn(format string, args ...any) {
	s.halt()
	Warningf(s.writer, format, args...)
}

// Stop stops the spinner and clears its line.
func (s *Spinner) Stop() {
	s.halt()
}

// update sets text and, unless percent is -2, the percentage.
func (s *Spinner) update(text string, percent int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if percent == -2 {
		percent = s.percent
	}

	if text == s.text && percent == s.percent {
		return
	}

	s.text = text
	s.percent = percent

	if !s.active {
		return
	}

	if s.isTTY {
		s.drawLocked()

		return
	}

	s.printPlainLocked()
}

func (s *Spinner) halt() {
	s.mu.Lock()

	if !s.active {
		s.mu.Unlock()

		return
	}

	s.active = false
	stop, done := s.stop, s.done
	s.mu.Unlock()

	if !s.isTTY {
		return
	}

	close(stop)
	<-done

	s.mu.Lock()
	_, _ = fmt.Fprint(s.writer, "\r\033[K")
	s.mu.Unlock()
}

func (s *Spinner) animate() {
	defer close(s.done)

	ticker := time.NewTicker(spinnerTickInterval)
	defer ticker.Stop()

	frames := spinnerFrames()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			s.frame = (s.frame + 1) % len(frames)
			s.drawLocked()
			s.mu.Unlock()
		}
	}
}

func (s *Spinner) label() string {
	if s.percent < 0 {
		return s.text
	}

	return fmt.Sprintf("%s (%d%%)", s.text, s.percent)
}

func (s *Spinner) drawLocked() {
	frame := spinnerFrames()[s.frame]
	_, _ = fcolor.New(fcolor.FgCyan).Fprintf(s.writer, "\r\033[K%s %s", frame, s.label())
}

func (s *Spinner) printPlainLocked() {
	_, _ = fmt.Fprintf(s.writer, "► %s\n", s.label())
}
