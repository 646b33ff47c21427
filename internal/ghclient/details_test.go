package ghclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/huangsam/devlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// detailServer serves per-commit detail payloads under /detail/<sha> and a
// 500 under /broken/<sha>.
func detailServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/detail/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"stats":{"additions":7,"deletions":3},"files":[{"filename":"pkg/widget.go"},{"filename":"docs/setup.md"}]}`)
	})
	mux.HandleFunc("/broken/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func detailCommits(server *httptest.Server, n int) []schema.Commit {
	commits := make([]schema.Commit, n)
	for i := range n {
		commits[i] = schema.Commit{
			SHA:       fmt.Sprintf("sha%d", i),
			DetailURL: fmt.Sprintf("%s/detail/sha%d", server.URL, i),
		}
	}
	return commits
}

// TestFetchDetailsMergesTotals verifies the merged accumulator contents.
func TestFetchDetailsMergesTotals(t *testing.T) {
	server := detailServer(t)
	client := New(server.URL, testSubject)
	commits := detailCommits(server, 5)

	totals, err := client.FetchDetails(context.Background(), commits, 3, nil)
	require.NoError(t, err)

	assert.Equal(t, 35, totals.Additions)
	assert.Equal(t, 15, totals.Deletions)
	assert.Equal(t, map[string]int{"go": 5, "md": 5}, totals.ExtensionCount)

	require.Len(t, totals.CommitSizes, 5)
	for _, size := range totals.CommitSizes {
		assert.Equal(t, 10, size)
	}
}

// TestFetchDetailsWorkerCountInvariance pins that concurrency is invisible
// in the merged result.
func TestFetchDetailsWorkerCountInvariance(t *testing.T) {
	server := detailServer(t)
	client := New(server.URL, testSubject)
	commits := detailCommits(server, 20)

	single, err := client.FetchDetails(context.Background(), commits, 1, nil)
	require.NoError(t, err)
	parallel, err := client.FetchDetails(context.Background(), commits, 12, nil)
	require.NoError(t, err)

	assert.Equal(t, single.Additions, parallel.Additions)
	assert.Equal(t, single.Deletions, parallel.Deletions)
	assert.Equal(t, single.ExtensionCount, parallel.ExtensionCount)

	sort.Ints(single.CommitSizes)
	sort.Ints(parallel.CommitSizes)
	assert.Equal(t, single.CommitSizes, parallel.CommitSizes)
}

// TestFetchDetailsSwallowsFailures keeps going past broken commits.
func TestFetchDetailsSwallowsFailures(t *testing.T) {
	server := detailServer(t)
	client := New(server.URL, testSubject)

	commits := detailCommits(server, 3)
	commits = append(commits,
		schema.Commit{SHA: "bad1", DetailURL: server.URL + "/broken/bad1"},
		schema.Commit{SHA: "bad2", DetailURL: server.URL + "/missing/bad2"},
	)

	totals, err := client.FetchDetails(context.Background(), commits, 4, nil)
	require.NoError(t, err)
	assert.Equal(t, 21, totals.Additions) // only the three good commits
	assert.Len(t, totals.CommitSizes, 3)
}

// TestFetchDetailsEmptyInput returns empty totals without touching the API.
func TestFetchDetailsEmptyInput(t *testing.T) {
	client := New("http://unused.invalid", testSubject)
	totals, err := client.FetchDetails(context.Background(), nil, 4, nil)
	require.NoError(t, err)
	assert.Zero(t, totals.Additions)
	assert.Empty(t, totals.CommitSizes)
}

// TestFetchDetailsCancellation returns the context error and empty totals.
func TestFetchDetailsCancellation(t *testing.T) {
	server := detailServer(t)
	client := New(server.URL, testSubject)
	commits := detailCommits(server, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	totals, err := client.FetchDetails(ctx, commits, 4, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, totals.Additions)
	assert.Empty(t, totals.CommitSizes)
}

// TestFetchDetailsFinalProgress always lands on a 100% snapshot.
func TestFetchDetailsFinalProgress(t *testing.T) {
	server := detailServer(t)
	client := New(server.URL, testSubject)
	commits := detailCommits(server, 7)

	var last schema.Progress
	_, err := client.FetchDetails(context.Background(), commits, 2, func(p schema.Progress) {
		last = p
	})
	require.NoError(t, err)
	assert.Equal(t, 7, last.Current)
	assert.Equal(t, 7, last.Total)
	assert.InDelta(t, 100, last.Percent, 0.001)
}
