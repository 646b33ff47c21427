package schema

import "time"

// RunRecord represents a row from the devlens_analysis_runs table.
type RunRecord struct {
	RunID         int64
	Owner         string
	Repo          string
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalCommits  int32
	ConfigParams  *string
}

// ResultRecord represents a row from the devlens_run_results table.
type ResultRecord struct {
	RunID            int64
	Owner            string
	Repo             string
	AnalyzedAt       time.Time
	TotalCommits     int32
	OnTimeCommits    int32
	LateCommits      int32
	OnTimePercent    float64
	MessageQuality   int32
	ConsistencyScore int32
	AvgCommitSize    float64
	TotalAdditions   int32
	TotalDeletions   int32
	Score            int32
	Level            string
}

// HistoryStatus represents the status of the history store.
type HistoryStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}
