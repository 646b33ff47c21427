// Package core has core logic for orchestration, aggregation and scoring.
package core

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/huangsam/devlens/internal/contract"
	"github.com/huangsam/devlens/internal/ghclient"
	"github.com/huangsam/devlens/internal/outwriter"
	"github.com/huangsam/devlens/schema"
)

// ExecuteAnalyze runs the full pipeline for every configured subject and
// prints results to stdout. It serves as the main entry point for the
// 'analyze' and 'compare' commands.
func ExecuteAnalyze(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	start := time.Now()
	sink := outwriter.NewConsoleSink(cfg.UseColors)
	outcomes := AnalyzeSubjects(ctx, cfg, mgr, sink)

	var results []*schema.AnalysisResult
	var failures int
	for _, out := range outcomes {
		if out.Err != nil {
			outwriter.PrintFailure(out.Subject, out.Err, out.Stopped())
			if !out.Stopped() {
				failures++
			}
			continue
		}
		results = append(results, out.Result)
	}

	if len(results) > 0 {
		if err := outwriter.WriteResults(results, cfg, time.Since(start)); err != nil {
			return err
		}
	}
	if failures > 0 && len(results) == 0 {
		return fmt.Errorf("all %d subject(s) failed", failures)
	}
	return nil
}

// ExecuteCompare runs the pipeline for every configured subject and prints
// the results ranked by experience score, highest first. Subjects that fail
// are reported but do not block the ranking of the rest.
func ExecuteCompare(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	start := time.Now()
	sink := outwriter.NewConsoleSink(cfg.UseColors)
	outcomes := AnalyzeSubjects(ctx, cfg, mgr, sink)

	var results []*schema.AnalysisResult
	var failures int
	for _, out := range outcomes {
		if out.Err != nil {
			outwriter.PrintFailure(out.Subject, out.Err, out.Stopped())
			if !out.Stopped() {
				failures++
			}
			continue
		}
		results = append(results, out.Result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > 0 {
		if err := outwriter.WriteResults(results, cfg, time.Since(start)); err != nil {
			return err
		}
	}
	if failures > 0 && len(results) == 0 {
		return fmt.Errorf("all %d subject(s) failed", failures)
	}
	return nil
}

// AnalyzeSubjects fans out the configured subjects and returns the raw
// outcomes without printing. The MCP handlers build their own payloads
// from these.
func AnalyzeSubjects(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager, sink contract.AnalysisSink) []RunOutcome {
	factory := ghclient.NewFactory(cfg.APIBaseURL)
	orch := NewOrchestrator(cfg, factory, sink, mgr)
	// One-shot runs have no UI left to show the transient done phase.
	orch.SetDoneLinger(0)
	return orch.RunAll(ctx, cfg.Subjects)
}
