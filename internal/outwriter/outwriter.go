// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/huangsam/devlens/internal/contract"
	"github.com/huangsam/devlens/schema"
)

// warnColor highlights degraded-continue warnings so they read differently
// from hard errors.
var warnColor = color.New(color.FgYellow)

// ConsoleSink prints phase transitions, progress and warnings to stderr so
// stdout stays clean for the result payload. Safe for concurrent use by
// multiple subject pipelines.
type ConsoleSink struct {
	mu        sync.Mutex
	useColors bool
}

var _ contract.AnalysisSink = &ConsoleSink{} // Compile-time check

// NewConsoleSink creates a sink for interactive runs.
func NewConsoleSink(useColors bool) *ConsoleSink {
	return &ConsoleSink{useColors: useColors}
}

// OnPhase prints a phase transition for a subject.
func (s *ConsoleSink) OnPhase(subject schema.Subject, phase schema.Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintf(os.Stderr, "[%s] phase: %s\n", subject.Key(), phase)
}

// OnProgress prints a progress snapshot. While the total is unknown the
// line shows a running count only.
func (s *ConsoleSink) OnProgress(subject schema.Subject, phase schema.Phase, p schema.Progress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.Total < 0 {
		_, _ = fmt.Fprintf(os.Stderr, "[%s] %s: %d commits so far\n", subject.Key(), phase, p.Current)
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[%s] %s: %d/%d (%.0f%%)\n", subject.Key(), phase, p.Current, p.Total, p.Percent)
}

// OnWarning prints a degraded-continue warning for a subject.
func (s *ConsoleSink) OnWarning(subject schema.Subject, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.useColors {
		_, _ = warnColor.Fprintf(os.Stderr, "[%s] warning: %s\n", subject.Key(), msg)
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[%s] warning: %s\n", subject.Key(), msg)
}

// PrintFailure reports a terminal failure for one subject. A user-initiated
// stop is reported calmly, never styled as an error.
func PrintFailure(subject schema.Subject, err error, stopped bool) {
	if stopped {
		_, _ = fmt.Fprintf(os.Stderr, "[%s] stopped\n", subject.Key())
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[%s] analysis failed: %v\n", subject.Key(), err)
}
