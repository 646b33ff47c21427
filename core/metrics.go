package core

import (
	"math"
	"regexp"
	"sort"
	"time"

	"github.com/huangsam/devlens/internal/contract"
	"github.com/huangsam/devlens/schema"
)

// Message-quality scoring: four independent 25-point checks.
const (
	qualityPointsPerCheck = 25
	qualityLongThreshold  = 10 // message length must exceed this
	qualityRichThreshold  = 30
)

// Consistency scoring: every day of average gap costs this many points.
const consistencyGapPenalty = 5.0

var (
	conventionalPrefixRe = regexp.MustCompile(`(?i)^(feat|fix|docs|refactor|test|chore|style|perf):`)
	issueRefRe           = regexp.MustCompile(`#\d+`)
)

// BuildResult reduces the listed commits and the merged detail totals into
// a terminal AnalysisResult. The work window [workStart,workEnd) drives the
// on-time split. Commits without an author timestamp are skipped for every
// time-based metric but still count toward the commit total.
func BuildResult(subject schema.Subject, branch string, commits []schema.Commit, totals schema.DetailTotals, workStart, workEnd int) *schema.AnalysisResult {
	result := &schema.AnalysisResult{
		Owner:      subject.Owner,
		Repo:       subject.Repo,
		Branch:     branch,
		AnalyzedAt: time.Now(),

		TotalCommits:   len(commits),
		TotalAdditions: totals.Additions,
		TotalDeletions: totals.Deletions,
	}

	// --- Pass 1: per-commit cheap fields ---
	var timestamps []time.Time
	var qualitySum int
	for _, commit := range commits {
		if commit.AuthoredAt == nil {
			continue
		}
		ts := *commit.AuthoredAt
		timestamps = append(timestamps, ts)

		hour := ts.Hour()
		result.HourlyHistogram[hour]++
		result.WeekdayHistogram[int(ts.Weekday())]++

		if hour >= workStart && hour < workEnd {
			result.OnTimeCommits++
		} else {
			result.LateCommits++
		}

		qualitySum += MessageQualityScore(commit.Message)
	}

	classified := result.OnTimeCommits + result.LateCommits
	if classified > 0 {
		result.OnTimePercent = contract.ClampPercent(float64(result.OnTimeCommits) / float64(classified) * 100)
		result.MessageQuality = contract.ClampScore(int(math.Round(float64(qualitySum) / float64(classified))))
	}

	// --- Pass 2: derived and statistical fields ---
	result.ConsistencyScore, result.Intervals = consistencyFromTimestamps(timestamps)
	result.SizeBuckets = bucketCommitSizes(totals.CommitSizes)
	result.Extensions = topExtensions(totals.ExtensionCount)
	if len(totals.CommitSizes) > 0 {
		var sizeSum int
		for _, size := range totals.CommitSizes {
			sizeSum += size
		}
		result.AvgCommitSize = float64(sizeSum) / float64(len(totals.CommitSizes))
	}

	result.Score, result.Level = ScoreExperience(result.TotalCommits, result.OnTimePercent, result.MessageQuality, result.ConsistencyScore)
	return result
}

// MessageQualityScore rates one commit message on a 0-100 scale as the sum
// of four independent 25-point checks: meaningful length, rich length, a
// conventional-commit prefix, and an issue reference.
func MessageQualityScore(message string) int {
	score := 0
	if len(message) > qualityLongThreshold {
		score += qualityPointsPerCheck
	}
	if len(message) > qualityRichThreshold {
		score += qualityPointsPerCheck
	}
	if conventionalPrefixRe.MatchString(message) {
		score += qualityPointsPerCheck
	}
	if issueRefRe.MatchString(message) {
		score += qualityPointsPerCheck
	}
	return score
}

// consistencyFromTimestamps sorts the timestamps, derives consecutive-day
// gaps, and scores how regularly the developer commits. Zero or one commit
// means no gaps, which counts as perfectly consistent. The first gaps (one
// decimal place, in days) are kept as the interval timeline.
func consistencyFromTimestamps(timestamps []time.Time) (int, []float64) {
	sorted := make([]time.Time, len(timestamps))
	copy(sorted, timestamps)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	var gaps []float64
	for i := 1; i < len(sorted); i++ {
		gap := sorted[i].Sub(sorted[i-1]).Hours() / 24
		if gap < 0 {
			continue
		}
		gaps = append(gaps, gap)
	}

	var intervals []float64
	for i, gap := range gaps {
		if i >= schema.MaxIntervalPoints {
			break
		}
		intervals = append(intervals, math.Round(gap*10)/10)
	}

	if len(gaps) == 0 {
		return 100, intervals
	}
	var gapSum float64
	for _, gap := range gaps {
		gapSum += gap
	}
	avgGap := gapSum / float64(len(gaps))
	score := int(math.Round(contract.ClampPercent(100 - avgGap*consistencyGapPenalty)))
	return score, intervals
}

// bucketCommitSizes distributes additions+deletions sizes over the five
// fixed buckets.
func bucketCommitSizes(sizes []int) []schema.SizeBucket {
	buckets := make([]schema.SizeBucket, len(schema.SizeBucketLabels))
	for i, label := range schema.SizeBucketLabels {
		buckets[i].Label = label
	}
	for _, size := range sizes {
		idx := len(schema.SizeBucketUpper) // 500+ unless a bound matches
		for i, upper := range schema.SizeBucketUpper {
			if size <= upper {
				idx = i
				break
			}
		}
		buckets[idx].Count++
	}
	return buckets
}

// topExtensions keeps the most frequent extensions, descending by count
// with an alphabetical tiebreak for deterministic output. An empty
// histogram is replaced by a single sentinel entry so downstream tables
// and charts never receive an empty set.
func topExtensions(counts map[string]int) []schema.ExtensionCount {
	if len(counts) == 0 {
		return []schema.ExtensionCount{{Extension: schema.NoData, Count: 0}}
	}

	entries := make([]schema.ExtensionCount, 0, len(counts))
	for ext, count := range counts {
		entries = append(entries, schema.ExtensionCount{Extension: ext, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Extension < entries[j].Extension
	})

	if len(entries) > schema.TopExtensionCount {
		entries = entries[:schema.TopExtensionCount]
	}
	return entries
}
