package cmd

import (
	"github.com/huangsam/devlens/core"
	"github.com/huangsam/devlens/internal/contract"
	"github.com/spf13/cobra"
)

// analyzeCmd performs the commit-history analysis for one or more subjects.
var analyzeCmd = &cobra.Command{
	Use:   "analyze owner/repo [owner/repo...]",
	Short: "Analyze commit history and derive an experience score.",
	Long: `Walk a repository's commit history through the GitHub API and derive
developer experience metrics.

The pipeline lists every commit page by page, fetches per-commit stats with a
bounded worker pool, and aggregates:
- Working pattern (hourly and weekday histograms, on-time percentage)
- Commit message quality (length, conventional prefixes, issue references)
- Consistency of activity over time (inter-commit gaps)
- Commit size distribution and touched file extensions

The aggregated metrics roll up into a 0-100 experience score with a level
label (Beginner, Junior, Mid-Level, Senior).

Examples:
  # Analyze a single repository
  devlens analyze golang/go

  # Analyze several repositories in one run
  devlens analyze golang/go rust-lang/rust

  # Use a token for private repos and higher rate limits
  devlens analyze myorg/private-repo --token $GITHUB_TOKEN

  # Export findings to CSV for tracking
  devlens analyze golang/go --output csv --output-file results.csv`,
	Args:    cobra.RangeArgs(1, contract.MaxSubjects),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAnalyze(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot run analysis", err)
		}
	},
}
