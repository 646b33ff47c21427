package cmd

import (
	"github.com/huangsam/devlens/core"
	"github.com/huangsam/devlens/internal/contract"
	"github.com/spf13/cobra"
)

// compareCmd analyzes multiple subjects and ranks them by experience score.
var compareCmd = &cobra.Command{
	Use:   "compare owner/repo owner/repo [owner/repo...]",
	Short: "Compare repositories ranked by derived experience score.",
	Long: `Run the commit-history analysis for two or more repositories and print
the results ranked by experience score, highest first.

Each subject runs through the same pipeline as 'analyze'; a failing subject
is reported and skipped without blocking the ranking of the rest.

Examples:
  # Compare two repositories
  devlens compare golang/go rust-lang/rust

  # Compare several with more workers
  devlens compare a/x b/y c/z --workers 12`,
	Args:    cobra.RangeArgs(2, contract.MaxSubjects),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCompare(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot run comparison", err)
		}
	},
}
