package schema

import "time"

// ExtensionCount is one entry of the file-extension histogram.
type ExtensionCount struct {
	Extension string `json:"extension"`
	Count     int    `json:"count"`
}

// SizeBucket is one entry of the commit-size histogram.
type SizeBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Progress is a point-in-time snapshot of pipeline progress.
// Total and Percent are negative while the total is not yet knowable
// (the listing phase cannot know the commit count until it finishes).
type Progress struct {
	Current int     `json:"current"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// AnalysisResult is the terminal, immutable output of one subject's pipeline.
// A later successful run for the same subject supersedes it wholesale.
type AnalysisResult struct {
	Owner       string    `json:"owner"`
	Repo        string    `json:"repo"`
	AnalyzedAt  time.Time `json:"analyzed_at"`
	Branch      string    `json:"branch,omitempty"` // resolved default branch, empty when the probe degraded

	TotalCommits  int     `json:"total_commits"`
	OnTimeCommits int     `json:"on_time_commits"`
	LateCommits   int     `json:"late_commits"`
	OnTimePercent float64 `json:"on_time_percent"` // clamped to [0,100]

	MessageQuality   int     `json:"message_quality"`   // 0-100
	ConsistencyScore int     `json:"consistency_score"` // 0-100
	AvgCommitSize    float64 `json:"avg_commit_size"`
	TotalAdditions   int     `json:"total_additions"`
	TotalDeletions   int     `json:"total_deletions"`

	HourlyHistogram  [24]int          `json:"hourly_histogram"`  // commits per hour of day
	WeekdayHistogram [7]int           `json:"weekday_histogram"` // commits per weekday, Sunday-first
	Extensions       []ExtensionCount `json:"extensions"`        // top extensions by count, never empty
	SizeBuckets      []SizeBucket     `json:"size_buckets"`      // five fixed buckets
	Intervals        []float64        `json:"intervals"`         // first inter-commit gaps in days, one decimal

	Level ExperienceLevel `json:"level"`
	Score int             `json:"score"` // 0-100, always paired with Level
}

// Subject identifies one owner/repository/credential tuple under analysis.
type Subject struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
	Token string `json:"-"` // optional bearer credential, never serialized
}

// Key returns the identity used to key subject state.
func (s Subject) Key() string {
	return s.Owner + "/" + s.Repo
}
