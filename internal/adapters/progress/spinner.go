package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/trebuchet-org/solscripts/internal/domain/config"
	"github.com/trebuchet-org/solscripts/internal/usecase"
)

// SpinnerProgressReporter shows a spinner while transactions wait for
// confirmations. Without a terminal it prints one line per stage instead.
type SpinnerProgressReporter struct {
	mu      sync.Mutex
	out     io.Writer
	status  io.Writer
	spinner *spinner.Spinner
	animate bool
}

// NewSpinnerProgressReporter writes messages to out and spinner frames to status
func NewSpinnerProgressReporter(out, status io.Writer, animate bool) *SpinnerProgressReporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(status))
	s.HideCursor = false

	return &SpinnerProgressReporter{
		out:     out,
		status:  status,
		spinner: s,
		animate: animate,
	}
}

// ProvideProgressSink picks the reporter for the current mode. JSON output stays
// clean, so progress is dropped there.
func ProvideProgressSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.JSON {
		return NewNopSink()
	}
	animate := !cfg.NonInteractive && isatty.IsTerminal(os.Stderr.Fd())
	return NewSpinnerProgressReporter(os.Stdout, os.Stderr, animate)
}

// OnProgress handles progress events
func (r *SpinnerProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event.Spinner {
		if !r.animate {
			fmt.Fprintln(r.status, event.Message)
			return
		}
		r.spinner.Suffix = " " + event.Message
		if !r.spinner.Active() {
			r.spinner.Start()
		}
		return
	}

	if r.spinner.Active() {
		r.spinner.Stop()
	}
	if event.Message != "" {
		fmt.Fprintf(r.status, "%s %s\n", color.GreenString("✓"), event.Message)
	}
}

// Info prints an info message
func (r *SpinnerProgressReporter) Info(message string) {
	r.print(color.New(color.FgCyan), r.out, message)
}

// Error prints an error message
func (r *SpinnerProgressReporter) Error(message string) {
	r.print(color.New(color.FgRed), r.status, message)
}

func (r *SpinnerProgressReporter) print(c *color.Color, w io.Writer, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	c.Fprintln(w, message)

	if wasActive {
		r.spinner.Start()
	}
}

var _ usecase.ProgressSink = (*SpinnerProgressReporter)(nil)
