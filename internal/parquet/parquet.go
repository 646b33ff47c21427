// Package parquet provides data structures and functions for exporting
// devlens history data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/devlens/schema"
	"github.com/parquet-go/parquet-go"
)

// AnalysisRun represents a single analysis run with metadata.
// This struct maps to the devlens_analysis_runs database table.
type AnalysisRun struct {
	// RunID is the unique identifier for this analysis run
	RunID int64 `parquet:"run_id,snappy"`

	// Owner and Repo identify the analyzed subject
	Owner string `parquet:"owner,snappy"`
	Repo  string `parquet:"repo,snappy"`

	// StartTime is when the analysis began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the analysis completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the analysis run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalCommits is the number of commits the run collected
	TotalCommits int32 `parquet:"total_commits,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// RunResult represents the terminal result row for one analysis run.
// This struct maps to the devlens_run_results database table.
type RunResult struct {
	RunID int64  `parquet:"run_id,snappy"`
	Owner string `parquet:"owner,snappy"`
	Repo  string `parquet:"repo,snappy"`

	// AnalyzedAt is when the result was produced
	AnalyzedAt time.Time `parquet:"analyzed_at,snappy"`

	TotalCommits  int32   `parquet:"total_commits,snappy"`
	OnTimeCommits int32   `parquet:"on_time_commits,snappy"`
	LateCommits   int32   `parquet:"late_commits,snappy"`
	OnTimePercent float64 `parquet:"on_time_percent,snappy"`

	MessageQuality   int32   `parquet:"message_quality,snappy"`
	ConsistencyScore int32   `parquet:"consistency_score,snappy"`
	AvgCommitSize    float64 `parquet:"avg_commit_size,snappy"`
	TotalAdditions   int32   `parquet:"total_additions,snappy"`
	TotalDeletions   int32   `parquet:"total_deletions,snappy"`

	// Score and Level are the derived experience outputs
	Score int32  `parquet:"score,snappy"`
	Level string `parquet:"level,snappy"`
}

// ConvertRunRecords maps store rows to their Parquet shape.
func ConvertRunRecords(records []schema.RunRecord) []AnalysisRun {
	out := make([]AnalysisRun, 0, len(records))
	for _, rec := range records {
		out = append(out, AnalysisRun{
			RunID:         rec.RunID,
			Owner:         rec.Owner,
			Repo:          rec.Repo,
			StartTime:     rec.StartTime,
			EndTime:       rec.EndTime,
			RunDurationMs: rec.RunDurationMs,
			TotalCommits:  rec.TotalCommits,
			ConfigParams:  rec.ConfigParams,
		})
	}
	return out
}

// ConvertResultRecords maps store rows to their Parquet shape.
func ConvertResultRecords(records []schema.ResultRecord) []RunResult {
	out := make([]RunResult, 0, len(records))
	for _, rec := range records {
		out = append(out, RunResult{
			RunID:            rec.RunID,
			Owner:            rec.Owner,
			Repo:             rec.Repo,
			AnalyzedAt:       rec.AnalyzedAt,
			TotalCommits:     rec.TotalCommits,
			OnTimeCommits:    rec.OnTimeCommits,
			LateCommits:      rec.LateCommits,
			OnTimePercent:    rec.OnTimePercent,
			MessageQuality:   rec.MessageQuality,
			ConsistencyScore: rec.ConsistencyScore,
			AvgCommitSize:    rec.AvgCommitSize,
			TotalAdditions:   rec.TotalAdditions,
			TotalDeletions:   rec.TotalDeletions,
			Score:            rec.Score,
			Level:            rec.Level,
		})
	}
	return out
}

// WriteAnalysisRunsParquet writes a slice of AnalysisRun structs to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteRunResultsParquet writes a slice of RunResult structs to a Parquet file.
func WriteRunResultsParquet(data []RunResult, outputPath string) error {
	return writeParquet(data, outputPath)
}

// MockFetchAnalysisRuns generates sample AnalysisRun data for demonstration.
func MockFetchAnalysisRuns() []AnalysisRun {
	now := time.Now()
	startTime1 := now.Add(-2 * time.Hour)
	endTime1 := now.Add(-1*time.Hour - 30*time.Minute)
	durationMs1 := int32(endTime1.Sub(startTime1).Milliseconds())
	configParams1 := `{"workers":6,"work_start":9,"work_end":21}`

	startTime2 := now.Add(-24 * time.Hour)
	endTime2 := now.Add(-23 * time.Hour)
	durationMs2 := int32(endTime2.Sub(startTime2).Milliseconds())
	configParams2 := `{"workers":12,"work_start":8,"work_end":18}`

	startTime3 := now.Add(-10 * time.Minute)
	// Note: the third run is still in flight to demonstrate nullable fields

	return []AnalysisRun{
		{
			RunID:         1,
			Owner:         "golang",
			Repo:          "go",
			StartTime:     startTime1,
			EndTime:       &endTime1,
			RunDurationMs: &durationMs1,
			TotalCommits:  150,
			ConfigParams:  &configParams1,
		},
		{
			RunID:         2,
			Owner:         "kubernetes",
			Repo:          "kubernetes",
			StartTime:     startTime2,
			EndTime:       &endTime2,
			RunDurationMs: &durationMs2,
			TotalCommits:  75,
			ConfigParams:  &configParams2,
		},
		{
			RunID:     3,
			Owner:     "spf13",
			Repo:      "cobra",
			StartTime: startTime3,
		},
	}
}

// MockFetchRunResults generates sample RunResult data for demonstration.
func MockFetchRunResults() []RunResult {
	now := time.Now()

	return []RunResult{
		{
			RunID:            1,
			Owner:            "golang",
			Repo:             "go",
			AnalyzedAt:       now.Add(-1 * time.Hour),
			TotalCommits:     150,
			OnTimeCommits:    110,
			LateCommits:      40,
			OnTimePercent:    73.3,
			MessageQuality:   62,
			ConsistencyScore: 85,
			AvgCommitSize:    48.2,
			TotalAdditions:   5400,
			TotalDeletions:   1830,
			Score:            90,
			Level:            "Senior",
		},
		{
			RunID:            2,
			Owner:            "kubernetes",
			Repo:             "kubernetes",
			AnalyzedAt:       now.Add(-23 * time.Hour),
			TotalCommits:     75,
			OnTimeCommits:    40,
			LateCommits:      35,
			OnTimePercent:    53.3,
			MessageQuality:   38,
			ConsistencyScore: 55,
			AvgCommitSize:    112.7,
			TotalAdditions:   6900,
			TotalDeletions:   1550,
			Score:            61,
			Level:            "Mid-Level",
		},
	}
}

// writeParquet writes any row type to a Parquet file using struct schema
// inference from the parquet tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}
