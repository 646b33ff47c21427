// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/devlens/schema"
)

// CommitSource defines the acquisition operations for one subject's repository.
// This allows the core pipeline to be tested without a live GitHub endpoint.
type CommitSource interface {
	// ResolveDefaultBranch attempts to read the repository's default branch.
	// A non-empty warning with an empty branch means the probe degraded and
	// the pipeline should proceed unpinned. The error is non-nil only for a
	// true not-found or for cancellation.
	ResolveDefaultBranch(ctx context.Context) (branch string, warning string, err error)

	// ListCommits walks the paginated commit list and returns the complete,
	// deduplicated, insertion-ordered sequence. The progress callback fires
	// after each page with an unknown total.
	ListCommits(ctx context.Context, branch string, progress func(schema.Progress)) ([]schema.Commit, error)

	// FetchDetails fetches per-commit stats for every commit with a bounded
	// worker pool and returns the merged totals. Individual fetch failures
	// contribute zero; only cancellation aborts the batch.
	FetchDetails(ctx context.Context, commits []schema.Commit, workers int, progress func(schema.Progress)) (schema.DetailTotals, error)
}

// SourceFactory builds a CommitSource for a subject. The orchestrator uses
// this indirection so tests can substitute fixture-backed sources.
type SourceFactory func(subject schema.Subject) CommitSource

// AnalysisSink receives phase, progress and warning notifications from the
// orchestrator. All methods may be called from multiple goroutines.
type AnalysisSink interface {
	OnPhase(subject schema.Subject, phase schema.Phase)
	OnProgress(subject schema.Subject, phase schema.Phase, p schema.Progress)
	OnWarning(subject schema.Subject, msg string)
}

// HistoryManager defines the interface for accessing the history store.
// This allows the persistence layer to be mocked for testing.
type HistoryManager interface {
	GetHistoryStore() HistoryStore
}

// HistoryStore defines the interface for persisting finished analysis runs.
type HistoryStore interface {
	// BeginRun creates a new analysis run and returns its unique ID
	BeginRun(subject schema.Subject, startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the analysis run with completion data
	EndRun(runID int64, endTime time.Time, totalCommits int) error

	// RecordResult stores the terminal result of a finished run
	RecordResult(runID int64, result *schema.AnalysisResult) error

	// GetAllRuns returns every recorded run, oldest first
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllResults returns every recorded result, oldest first
	GetAllResults() ([]schema.ResultRecord, error)

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// Clear removes all recorded runs and results
	Clear() error

	// Close closes the underlying connection
	Close() error
}
