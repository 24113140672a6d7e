package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/safecoin-labs/safecoin-deploy/internal/config"
	"github.com/safecoin-labs/safecoin-deploy/internal/usecase"
)

var stageIcons = map[string]string{
	"deploying": "🚀",
	"confirmed": "✅",
	"recorded":  "📝",
	"failed":    "❌",
	"verifying": "🔍",
}

// SpinnerSink reports deployment and verification progress. Interactive
// terminals get a spinner, everything else gets one line per event.
type SpinnerSink struct {
	out         io.Writer
	interactive bool
	spinner     *spinner.Spinner
	startTime   time.Time
}

// NewSpinnerSink creates a progress sink on out
func NewSpinnerSink(out io.Writer, interactive bool) *SpinnerSink {
	return &SpinnerSink{
		out:         out,
		interactive: interactive,
		startTime:   time.Now(),
	}
}

// NewStderrSink writes progress to stderr, with a spinner only on a colour terminal
func NewStderrSink(cfg *config.RuntimeConfig) *SpinnerSink {
	return NewSpinnerSink(os.Stderr, !cfg.NonInteractive && !color.NoColor)
}

// OnProgress handles progress events
func (s *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if !s.interactive {
		if event.Message != "" {
			fmt.Fprintln(s.out, withIcon(event))
		}
		return
	}

	if event.Spinner {
		if s.spinner == nil {
			s.spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			s.spinner.Writer = s.out
			_ = s.spinner.Color("cyan", "bold")
		}
		s.spinner.Suffix = " " + event.Message
		if !s.spinner.Active() {
			s.spinner.Start()
		}
		return
	}

	s.stop()
	if event.Message == "" {
		return
	}

	switch event.Stage {
	case "failed":
		color.New(color.FgRed).Fprintln(s.out, withIcon(event))
	case "confirmed", "recorded":
		color.New(color.FgGreen).Fprintf(s.out, "%s (%s)\n", withIcon(event), time.Since(s.startTime).Round(time.Millisecond))
	default:
		fmt.Fprintln(s.out, withIcon(event))
	}
}

// Info prints an info message
func (s *SpinnerSink) Info(message string) {
	s.pause(func() {
		color.New(color.FgCyan).Fprintln(s.out, "ℹ️  "+message)
	})
}

// Error prints an error message
func (s *SpinnerSink) Error(message string) {
	s.pause(func() {
		color.New(color.FgRed).Fprintln(s.out, "❌ "+message)
	})
}

func (s *SpinnerSink) stop() {
	if s.spinner != nil && s.spinner.Active() {
		s.spinner.Stop()
	}
}

// pause stops the spinner around print and restarts it
func (s *SpinnerSink) pause(print func()) {
	wasActive := s.spinner != nil && s.spinner.Active()
	if wasActive {
		s.spinner.Stop()
	}
	print()
	if wasActive {
		s.spinner.Start()
	}
}

func withIcon(event usecase.ProgressEvent) string {
	if icon, ok := stageIcons[event.Stage]; ok {
		return icon + " " + event.Message
	}
	return event.Message
}

var _ usecase.ProgressSink = (*SpinnerSink)(nil)
