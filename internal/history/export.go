package history

import (
	"errors"
	"fmt"
	"strings"

	"github.com/huangsam/devlens/internal/parquet"
)

// ExecuteHistoryExport exports all history data to a pair of Parquet files
// derived from the given output file name.
func ExecuteHistoryExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export")
	}

	store := Manager.GetHistoryStore()
	if store == nil {
		return errors.New("history store is not initialized")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no history data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total analysis runs: %d\n", status.TotalRuns)
	fmt.Printf("Total result records: %d\n", status.TableSizes[runResultsTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	results, err := store.GetAllResults()
	if err != nil {
		return fmt.Errorf("failed to retrieve results: %w", err)
	}

	base := strings.TrimSuffix(outputFile, ".parquet")
	runsPath := base + "_runs.parquet"
	resultsPath := base + "_results.parquet"

	if err := parquet.WriteAnalysisRunsParquet(parquet.ConvertRunRecords(runs), runsPath); err != nil {
		return fmt.Errorf("failed to export runs: %w", err)
	}
	if err := parquet.WriteRunResultsParquet(parquet.ConvertResultRecords(results), resultsPath); err != nil {
		return fmt.Errorf("failed to export results: %w", err)
	}

	fmt.Printf("Wrote %s and %s\n", runsPath, resultsPath)
	return nil
}
