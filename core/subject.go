package core

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/huangsam/devlens/internal/contract"
	"github.com/huangsam/devlens/schema"
)

// DefaultDoneLinger is how long a subject shows the transient done phase
// before auto-reverting to idle. Tests set this to zero.
const DefaultDoneLinger = 2 * time.Second

// subjectState owns every piece of mutable per-subject state: phase,
// progress snapshot, cancellation handle, result slot and last error.
// Keeping them on one entity prevents the parallel-map drift that comes
// from tracking phase, progress and results in separate collections.
type subjectState struct {
	subject    schema.Subject
	phase      schema.Phase
	progress   schema.Progress
	cancel     context.CancelFunc
	generation uint64 // bumped per run; stale runs may not write back
	result     *schema.AnalysisResult
	err        error
}

// Orchestrator sequences the acquisition pipeline per subject, owns one
// cancellation handle per in-flight run, and fans notifications out to the
// configured sink. Subjects are fully isolated from each other; the only
// cross-subject state is the map itself.
type Orchestrator struct {
	mu         sync.Mutex
	states     map[string]*subjectState
	factory    contract.SourceFactory
	sink       contract.AnalysisSink
	mgr        contract.HistoryManager
	workers    int
	workStart  int
	workEnd    int
	limit      int
	doneLinger time.Duration
}

// RunOutcome pairs a subject with its terminal result or error.
type RunOutcome struct {
	Subject schema.Subject
	Result  *schema.AnalysisResult
	Err     error
}

// Stopped reports whether the outcome is a user-initiated stop rather than
// a data-layer failure.
func (o RunOutcome) Stopped() bool {
	return IsStopped(o.Err)
}

// IsStopped reports whether an error is the distinct cancellation outcome.
func IsStopped(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// NewOrchestrator wires an orchestrator from validated config.
// The history manager may be nil when persistence is disabled.
func NewOrchestrator(cfg *contract.Config, factory contract.SourceFactory, sink contract.AnalysisSink, mgr contract.HistoryManager) *Orchestrator {
	return &Orchestrator{
		states:     make(map[string]*subjectState),
		factory:    factory,
		sink:       sink,
		mgr:        mgr,
		workers:    cfg.Workers,
		workStart:  cfg.WorkStart,
		workEnd:    cfg.WorkEnd,
		limit:      cfg.Limit,
		doneLinger: DefaultDoneLinger,
	}
}

// SetDoneLinger overrides the transient done-phase delay. Zero reverts to
// idle immediately.
func (o *Orchestrator) SetDoneLinger(d time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.doneLinger = d
}

// Run executes the full pipeline for one subject. Starting a run while a
// prior run for the same subject is in flight first cancels and discards
// the prior run, so at most one pipeline ever writes into a subject's
// result slot. A cancelled run returns the context's error, which callers
// classify with IsStopped.
func (o *Orchestrator) Run(ctx context.Context, subject schema.Subject) (*schema.AnalysisResult, error) {
	st, gen, runCtx, cancel := o.beginRun(ctx, subject)
	defer cancel()

	result, err := o.runPipeline(runCtx, subject, st, gen)
	o.finishRun(st, gen, result, err)
	return result, err
}

// RunAll fans out up to the configured subjects concurrently and collects
// the outcomes in input order. Subjects do not share pipeline state, so the
// fan-out needs no coordination beyond the join.
func (o *Orchestrator) RunAll(ctx context.Context, subjects []schema.Subject) []RunOutcome {
	outcomes := make([]RunOutcome, len(subjects))
	var wg sync.WaitGroup
	for i, subject := range subjects {
		wg.Go(func() {
			result, err := o.Run(ctx, subject)
			outcomes[i] = RunOutcome{Subject: subject, Result: result, Err: err}
		})
	}
	wg.Wait()
	return outcomes
}

// Stop cancels the in-flight run for one subject, if any. Other subjects
// are unaffected.
func (o *Orchestrator) Stop(subject schema.Subject) {
	o.mu.Lock()
	st := o.states[subject.Key()]
	var cancel context.CancelFunc
	if st != nil {
		cancel = st.cancel
	}
	o.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Phase returns the subject's current lifecycle phase.
func (o *Orchestrator) Phase(subject schema.Subject) schema.Phase {
	o.mu.Lock()
	defer o.mu.Unlock()
	if st := o.states[subject.Key()]; st != nil {
		return st.phase
	}
	return schema.IdlePhase
}

// Progress returns the subject's latest progress snapshot.
func (o *Orchestrator) Progress(subject schema.Subject) schema.Progress {
	o.mu.Lock()
	defer o.mu.Unlock()
	if st := o.states[subject.Key()]; st != nil {
		return st.progress
	}
	return schema.Progress{}
}

// Result returns the subject's last terminal result and error.
func (o *Orchestrator) Result(subject schema.Subject) (*schema.AnalysisResult, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if st := o.states[subject.Key()]; st != nil {
		return st.result, st.err
	}
	return nil, nil
}

// beginRun supersedes any in-flight run for the subject and registers the
// new run's cancellation handle under a fresh generation.
func (o *Orchestrator) beginRun(ctx context.Context, subject schema.Subject) (*subjectState, uint64, context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithCancel(ctx)

	o.mu.Lock()
	st, ok := o.states[subject.Key()]
	if !ok {
		st = &subjectState{subject: subject, phase: schema.IdlePhase}
		o.states[subject.Key()] = st
	}
	prior := st.cancel
	st.generation++
	gen := st.generation
	st.cancel = cancel
	st.err = nil
	st.progress = schema.Progress{}
	o.mu.Unlock()

	if prior != nil {
		prior()
	}
	return st, gen, runCtx, cancel
}

// runPipeline performs probe → listing → details → aggregation for one run.
func (o *Orchestrator) runPipeline(ctx context.Context, subject schema.Subject, st *subjectState, gen uint64) (*schema.AnalysisResult, error) {
	source := o.factory(subject)

	// --- 0. Begin History Tracking (if configured) ---
	var runID int64
	store := o.historyStore()
	if store != nil {
		startTime := time.Now()
		configParams := map[string]any{
			"workers":    o.workers,
			"work_start": o.workStart,
			"work_end":   o.workEnd,
		}
		var err error
		runID, err = store.BeginRun(subject, startTime, configParams)
		if err != nil {
			contract.LogWarn("History tracking initialization failed", err)
		}
	}

	// --- 1. Metadata Probe (best effort) ---
	o.transition(st, gen, schema.ListingPhase)
	branch, warning, err := source.ResolveDefaultBranch(ctx)
	if err != nil {
		return nil, err
	}
	if warning != "" && o.sink != nil {
		o.sink.OnWarning(subject, warning)
	}

	// --- 2. Commit Listing ---
	commits, err := source.ListCommits(ctx, branch, func(p schema.Progress) {
		o.publish(st, gen, schema.ListingPhase, p)
	})
	if err != nil {
		return nil, err
	}
	// The API lists newest first, so the cap keeps the most recent commits.
	if o.limit > 0 && len(commits) > o.limit {
		commits = commits[:o.limit]
	}

	// --- 3. Detail Fetch ---
	o.transition(st, gen, schema.DetailsPhase)
	totals, err := source.FetchDetails(ctx, commits, o.workers, func(p schema.Progress) {
		o.publish(st, gen, schema.DetailsPhase, p)
	})
	if err != nil {
		return nil, err
	}

	// --- 4. Aggregation and Scoring ---
	result := BuildResult(subject, branch, commits, totals, o.workStart, o.workEnd)

	// --- 5. End History Tracking ---
	if store != nil && runID > 0 {
		if err := store.RecordResult(runID, result); err != nil {
			contract.LogWarn("Failed to record result in history", err)
		}
		if err := store.EndRun(runID, time.Now(), result.TotalCommits); err != nil {
			contract.LogWarn("Failed to finalize history tracking", err)
		}
	}

	return result, nil
}

// finishRun writes the terminal state back, unless a newer run superseded
// this one while it was finishing.
func (o *Orchestrator) finishRun(st *subjectState, gen uint64, result *schema.AnalysisResult, err error) {
	o.mu.Lock()
	if st.generation != gen {
		o.mu.Unlock()
		return
	}
	st.cancel = nil
	if err != nil {
		st.err = err
		st.phase = schema.IdlePhase
		o.mu.Unlock()
		if o.sink != nil {
			o.sink.OnPhase(st.subject, schema.IdlePhase)
		}
		return
	}

	st.result = result
	st.phase = schema.DonePhase
	linger := o.doneLinger
	o.mu.Unlock()
	if o.sink != nil {
		o.sink.OnPhase(st.subject, schema.DonePhase)
	}

	// Done is transient; revert to idle after the display delay unless a
	// newer run has already taken over.
	revert := func() {
		o.mu.Lock()
		stale := st.generation != gen || st.phase != schema.DonePhase
		if !stale {
			st.phase = schema.IdlePhase
		}
		o.mu.Unlock()
		if !stale && o.sink != nil {
			o.sink.OnPhase(st.subject, schema.IdlePhase)
		}
	}
	if linger <= 0 {
		revert()
	} else {
		time.AfterFunc(linger, revert)
	}
}

// transition moves the subject to a new phase if the run still owns it.
func (o *Orchestrator) transition(st *subjectState, gen uint64, phase schema.Phase) {
	o.mu.Lock()
	if st.generation != gen {
		o.mu.Unlock()
		return
	}
	st.phase = phase
	o.mu.Unlock()
	if o.sink != nil {
		o.sink.OnPhase(st.subject, phase)
	}
}

// publish records a progress snapshot if the run still owns the subject.
func (o *Orchestrator) publish(st *subjectState, gen uint64, phase schema.Phase, p schema.Progress) {
	o.mu.Lock()
	if st.generation != gen {
		o.mu.Unlock()
		return
	}
	st.progress = p
	o.mu.Unlock()
	if o.sink != nil {
		o.sink.OnProgress(st.subject, phase, p)
	}
}

// historyStore resolves the configured store, tolerating a nil manager.
func (o *Orchestrator) historyStore() contract.HistoryStore {
	if o.mgr == nil {
		return nil
	}
	return o.mgr.GetHistoryStore()
}
