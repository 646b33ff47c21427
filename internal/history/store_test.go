package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/devlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSQLiteStore opens a store on a throwaway database file.
func newSQLiteStore(t *testing.T) *HistoryStoreImpl {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history.db")
	store, err := NewHistoryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	impl, ok := store.(*HistoryStoreImpl)
	require.True(t, ok)
	return impl
}

func storeResult() *schema.AnalysisResult {
	return &schema.AnalysisResult{
		Owner:            "acme",
		Repo:             "widget",
		AnalyzedAt:       time.Date(2026, time.March, 5, 12, 30, 0, 0, time.UTC),
		TotalCommits:     120,
		OnTimeCommits:    80,
		LateCommits:      40,
		OnTimePercent:    66.7,
		MessageQuality:   55,
		ConsistencyScore: 72,
		AvgCommitSize:    44.5,
		TotalAdditions:   4000,
		TotalDeletions:   1200,
		Level:            schema.MidLevel,
		Score:            71,
	}
}

// TestSQLiteRunLifecycle walks begin → record → end → read back.
func TestSQLiteRunLifecycle(t *testing.T) {
	store := newSQLiteStore(t)
	subject := schema.Subject{Owner: "acme", Repo: "widget"}
	start := time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC)

	runID, err := store.BeginRun(subject, start, map[string]any{"workers": 6})
	require.NoError(t, err)
	require.Positive(t, runID)

	require.NoError(t, store.RecordResult(runID, storeResult()))
	require.NoError(t, store.EndRun(runID, start.Add(90*time.Second), 120))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	assert.Equal(t, "acme", run.Owner)
	assert.Equal(t, "widget", run.Repo)
	assert.True(t, run.StartTime.Equal(start))
	require.NotNil(t, run.EndTime)
	assert.True(t, run.EndTime.Equal(start.Add(90*time.Second)))
	require.NotNil(t, run.RunDurationMs)
	assert.Equal(t, int32(90000), *run.RunDurationMs)
	assert.Equal(t, int32(120), run.TotalCommits)
	require.NotNil(t, run.ConfigParams)
	assert.Contains(t, *run.ConfigParams, `"workers":6`)

	results, err := store.GetAllResults()
	require.NoError(t, err)
	require.Len(t, results, 1)

	res := results[0]
	assert.Equal(t, runID, res.RunID)
	assert.Equal(t, int32(120), res.TotalCommits)
	assert.InDelta(t, 66.7, res.OnTimePercent, 0.001)
	assert.Equal(t, "Mid-Level", res.Level)
}

// TestSQLiteStatusAndClear covers aggregate stats and the wipe path.
func TestSQLiteStatusAndClear(t *testing.T) {
	store := newSQLiteStore(t)
	subject := schema.Subject{Owner: "acme", Repo: "widget"}

	first := time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)
	second := time.Date(2026, time.March, 5, 8, 0, 0, 0, time.UTC)

	id1, err := store.BeginRun(subject, first, nil)
	require.NoError(t, err)
	id2, err := store.BeginRun(subject, second, nil)
	require.NoError(t, err)
	require.Greater(t, id2, id1)
	require.NoError(t, store.RecordResult(id2, storeResult()))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, int64(2), status.TotalRuns)
	assert.Equal(t, id2, status.LastRunID)
	assert.True(t, status.LastRunTime.Equal(second))
	assert.True(t, status.OldestRunTime.Equal(first))
	assert.Equal(t, int64(2), status.TableSizes[analysisRunsTable])
	assert.Equal(t, int64(1), status.TableSizes[runResultsTable])

	require.NoError(t, store.Clear())
	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(0), status.TotalRuns)
}

// TestNoneBackendIsInert covers the no-op store used when persistence is off.
func TestNoneBackendIsInert(t *testing.T) {
	store, err := NewHistoryStore(schema.NoneBackend, "")
	require.NoError(t, err)

	runID, err := store.BeginRun(schema.Subject{Owner: "a", Repo: "b"}, time.Now(), nil)
	require.NoError(t, err)
	assert.Zero(t, runID)

	assert.NoError(t, store.RecordResult(1, storeResult()))
	assert.NoError(t, store.EndRun(1, time.Now(), 0))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	assert.Empty(t, runs)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Clear())
	assert.NoError(t, store.Close())
}

// TestUnsupportedBackend rejects unknown backends up front.
func TestUnsupportedBackend(t *testing.T) {
	_, err := NewHistoryStore(schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
}

// TestParseStoredTime tolerates the representations different drivers emit.
func TestParseStoredTime(t *testing.T) {
	want := time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC)

	got, err := parseStoredTime(want)
	require.NoError(t, err)
	assert.True(t, got.Equal(want))

	got, err = parseStoredTime("2026-03-05T12:00:00Z")
	require.NoError(t, err)
	assert.True(t, got.Equal(want))

	got, err = parseStoredTime([]byte("2026-03-05 12:00:00"))
	require.NoError(t, err)
	assert.True(t, got.Equal(want))

	got, err = parseStoredTime(nil)
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = parseStoredTime(42)
	assert.Error(t, err)
}

// TestRebind converts placeholders only for PostgreSQL.
func TestRebind(t *testing.T) {
	pg := &HistoryStoreImpl{backend: schema.PostgreSQLBackend}
	assert.Equal(t, "SELECT $1, $2", pg.rebind("SELECT ?, ?"))

	lite := &HistoryStoreImpl{backend: schema.SQLiteBackend}
	assert.Equal(t, "SELECT ?, ?", lite.rebind("SELECT ?, ?"))
}
