package ui

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/glorpus-work/senget/pkg/fsutil"
)

// Spinner wraps the spinner library for consistent styling.
type Spinner struct {
	mu      sync.Mutex
	s       *spinner.Spinner
	message string
}

// NewSpinner creates a new spinner with the given message.
func NewSpinner(message string) *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message
	if UseColors {
		_ = s.Color("cyan")
	}
	return &Spinner{s: s, message: message}
}

// Start starts the spinner.
func (sp *Spinner) Start() {
	sp.s.Start()
}

// Stop stops the spinner.
func (sp *Spinner) Stop() {
	sp.s.Stop()
}

// Success stops the spinner with a success message.
func (sp *Spinner) Success(message string) {
	sp.s.Stop()
	SuccessMsg("%s", message)
}

// Error stops the spinner with an error message.
func (sp *Spinner) Error(message string) {
	sp.s.Stop()
	ErrorMsg("%s", message)
}

// UpdateMessage updates the spinner message.
func (sp *Spinner) UpdateMessage(message string) {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	sp.message = message
	sp.s.Lock()
	sp.s.Suffix = " " + message
	sp.s.Unlock()
}

// Progress appends download progress to the current message.
func (sp *Spinner) Progress(written, total int64) {
	sp.mu.Lock()
	message := sp.message
	sp.mu.Unlock()
	sp.s.Lock()
	sp.s.Suffix = " " + message + " " + FormatProgress(written, total)
	sp.s.Unlock()
}

// FormatProgress renders a byte count against its total in MBs.
func FormatProgress(written, total int64) string {
	if total <= 0 {
		return fmt.Sprintf("%.1f MB", float64(written)/fsutil.BytesPerMB)
	}
	return fmt.Sprintf("%.1f/%.1f MB (%d%%)",
		float64(written)/fsutil.BytesPerMB, float64(total)/fsutil.BytesPerMB, written*100/total)
}

// WithSpinner runs a function with a spinner, showing success or error on completion.
func WithSpinner(message string, fn func(sp *Spinner) error) error {
	sp := NewSpinner(message)
	sp.Start()

	if err := fn(sp); err != nil {
		sp.Stop()
		return err
	}

	sp.Stop()
	return nil
}
