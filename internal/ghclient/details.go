package ghclient

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/huangsam/devlens/internal/contract"
	"github.com/huangsam/devlens/schema"
)

// detailProgressStride is how many completions may pass between progress
// publications during the detail fetch phase.
const detailProgressStride = 6

// detailPayload mirrors the per-commit detail endpoint.
type detailPayload struct {
	Stats *struct {
		Additions int `json:"additions"`
		Deletions int `json:"deletions"`
	} `json:"stats"`
	Files []schema.CommitFile `json:"files"`
}

// FetchDetails fetches per-commit stats for every commit with a bounded
// worker pool and returns the merged totals.
//
// A shared atomic cursor hands each worker the next unclaimed index, so
// every commit is claimed exactly once and slow fetches load-balance
// naturally. Each worker keeps a private accumulator; the accumulators are
// merged only after the pool joins, so no update can be lost regardless of
// completion order. Individual fetch failures contribute zero and never
// abort the batch. Cancellation aborts all workers and is the only error.
func (c *Client) FetchDetails(ctx context.Context, commits []schema.Commit, workers int, progress func(schema.Progress)) (schema.DetailTotals, error) {
	total := len(commits)
	totals := schema.DetailTotals{ExtensionCount: make(map[string]int)}
	if total == 0 {
		return totals, ctx.Err()
	}

	workers = contract.ClampWorkers(workers)
	if workers > total {
		workers = total
	}

	var cursor atomic.Int64    // next unclaimed commit index
	var completed atomic.Int64 // finished items, in completion order

	locals := make([]schema.DetailTotals, workers)
	var wg sync.WaitGroup
	for w := range workers {
		local := &locals[w]
		local.ExtensionCount = make(map[string]int)
		wg.Go(func() {
			for {
				idx := int(cursor.Add(1)) - 1
				if idx >= total {
					return
				}
				select {
				case <-ctx.Done():
					return
				default:
				}

				c.fetchOneDetail(ctx, commits[idx].DetailURL, local)

				done := completed.Add(1)
				if progress != nil && done%detailProgressStride == 0 {
					percent := float64(done) / float64(total) * 100
					progress(schema.Progress{Current: int(done), Total: total, Percent: percent})
				}
			}
		})
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return schema.DetailTotals{ExtensionCount: make(map[string]int)}, err
	}

	for i := range locals {
		totals.Additions += locals[i].Additions
		totals.Deletions += locals[i].Deletions
		totals.CommitSizes = append(totals.CommitSizes, locals[i].CommitSizes...)
		for ext, count := range locals[i].ExtensionCount {
			totals.ExtensionCount[ext] += count
		}
	}

	if progress != nil {
		progress(schema.Progress{Current: total, Total: total, Percent: 100})
	}
	return totals, nil
}

// fetchOneDetail fetches a single commit detail into a worker-local
// accumulator. Any failure short of cancellation is swallowed: a bad
// commit contributes zero rather than aborting the batch.
func (c *Client) fetchOneDetail(ctx context.Context, target string, local *schema.DetailTotals) {
	resp, err := c.getJSON(ctx, target)
	if err != nil || !resp.OK || resp.JSON == nil {
		return
	}

	var payload detailPayload
	if json.Unmarshal(resp.JSON, &payload) != nil {
		return
	}

	if payload.Stats != nil {
		local.Additions += payload.Stats.Additions
		local.Deletions += payload.Stats.Deletions
		local.CommitSizes = append(local.CommitSizes, payload.Stats.Additions+payload.Stats.Deletions)
	}
	for _, file := range payload.Files {
		local.ExtensionCount[schema.ExtensionOf(file.Filename)]++
	}
}
