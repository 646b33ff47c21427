// Package schema has configs, models and global variables for all parts of devlens.
package schema

import "time"

// Commit represents one commit from the repository listing.
// It carries only the cheap fields available on the paginated list endpoint;
// heavy per-commit stats are fetched separately into CommitDetail.
type Commit struct {
	SHA        string     // Unique identifier within the repository, used for dedup
	AuthoredAt *time.Time // Author timestamp; nil means the commit is skipped for time-based metrics
	Message    string     // Full commit message, used for quality scoring
	DetailURL  string     // Opaque URL for the per-commit detail fetch
}

// CommitFile is one changed file inside a commit detail payload.
type CommitFile struct {
	Filename string `json:"filename"`
}

// CommitDetail holds the heavy per-commit fields from the detail endpoint.
// A missing detail (failed fetch, no stats) contributes zero to aggregates.
type CommitDetail struct {
	Additions int          // Lines added, never negative
	Deletions int          // Lines deleted, never negative
	Files     []CommitFile // Changed files; extension histogram is derived from these
}

// DetailTotals is the merged output of the detail fetch phase.
// All fields are associative sums so worker completion order does not matter.
type DetailTotals struct {
	Additions      int            // Total lines added across all commits
	Deletions      int            // Total lines deleted across all commits
	ExtensionCount map[string]int // Changed-file count per lowercased extension
	CommitSizes    []int          // additions+deletions per commit, for bucketing
}
