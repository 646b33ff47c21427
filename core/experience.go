package core

import "github.com/huangsam/devlens/schema"

// Experience scoring is a weighted composite of four discrete step
// functions. Each factor contributes its tier value, not an interpolation,
// so small input changes only matter when they cross a tier boundary.
//
// Factor caps: commit volume 40, work pattern 15, message quality 25,
// consistency 20. A developer at the top tier of every factor scores 100.

// scoreTier is one step of a factor's policy table.
type scoreTier struct {
	atLeast float64 // factor input threshold, inclusive
	points  int
}

// Policy tables, highest tier first. The first matching tier wins.
var (
	volumeTiers = []scoreTier{
		{atLeast: 200, points: 40},
		{atLeast: 100, points: 32},
		{atLeast: 50, points: 24},
		{atLeast: 20, points: 16},
		{atLeast: 5, points: 8},
	}
	patternTiers = []scoreTier{
		{atLeast: 60, points: 15},
		{atLeast: 40, points: 10},
		{atLeast: 20, points: 5},
	}
	qualityTiers = []scoreTier{
		{atLeast: 50, points: 25},
		{atLeast: 30, points: 15},
		{atLeast: 15, points: 8},
	}
	consistencyTiers = []scoreTier{
		{atLeast: 70, points: 20},
		{atLeast: 50, points: 14},
		{atLeast: 30, points: 8},
	}
)

// Level boundaries on the composite score.
const (
	seniorFloor = 80
	midFloor    = 60
	juniorFloor = 40
)

// tierPoints resolves one factor input against its policy table.
func tierPoints(tiers []scoreTier, value float64) int {
	for _, tier := range tiers {
		if value >= tier.atLeast {
			return tier.points
		}
	}
	return 0
}

// ScoreExperience maps the four aggregate inputs to the composite 0-100
// score and its qualitative level. Pure and deterministic; no failure mode.
func ScoreExperience(totalCommits int, onTimePercent float64, messageQuality, consistency int) (int, schema.ExperienceLevel) {
	score := tierPoints(volumeTiers, float64(totalCommits)) +
		tierPoints(patternTiers, onTimePercent) +
		tierPoints(qualityTiers, float64(messageQuality)) +
		tierPoints(consistencyTiers, float64(consistency))

	return score, LevelForScore(score)
}

// LevelForScore maps a composite score to its experience level.
func LevelForScore(score int) schema.ExperienceLevel {
	switch {
	case score >= seniorFloor:
		return schema.SeniorLevel
	case score >= midFloor:
		return schema.MidLevel
	case score >= juniorFloor:
		return schema.JuniorLevel
	default:
		return schema.BeginnerLevel
	}
}
