package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/devlens/internal/contract"
	"github.com/huangsam/devlens/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteResults outputs the analysis results, dispatching based on the
// output format configured.
func WriteResults(results []*schema.AnalysisResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSONResults(results, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVResults(results, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable tables
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeResultTables(results, cfg, duration, w)
		}, "table")
	}
	return nil
}

// writeJSONResults handles opening the file and calling the JSON writer.
func writeJSONResults(results []*schema.AnalysisResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, results)
	}, "JSON")
}

// csvHeader is the flat per-subject export shape.
var csvHeader = []string{
	"subject",
	"branch",
	"total_commits",
	"on_time_commits",
	"late_commits",
	"on_time_percent",
	"message_quality",
	"consistency_score",
	"avg_commit_size",
	"total_additions",
	"total_deletions",
	"score",
	"level",
}

// writeCSVResults writes one row per subject.
func writeCSVResults(results []*schema.AnalysisResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, csvHeader, func(csvWriter *csv.Writer) error {
			for _, r := range results {
				record := []string{
					r.Owner + "/" + r.Repo,
					r.Branch,
					strconv.Itoa(r.TotalCommits),
					strconv.Itoa(r.OnTimeCommits),
					strconv.Itoa(r.LateCommits),
					fmt.Sprintf("%.1f", r.OnTimePercent),
					strconv.Itoa(r.MessageQuality),
					strconv.Itoa(r.ConsistencyScore),
					fmt.Sprintf("%.1f", r.AvgCommitSize),
					strconv.Itoa(r.TotalAdditions),
					strconv.Itoa(r.TotalDeletions),
					strconv.Itoa(r.Score),
					string(r.Level),
				}
				if err := csvWriter.Write(record); err != nil {
					return fmt.Errorf("failed to write CSV record: %w", err)
				}
			}
			return nil
		})
	}, "CSV")
}

// writeResultTables renders the side-by-side summary table followed by a
// short detail block per subject.
func writeResultTables(results []*schema.AnalysisResult, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	table.Header([]string{"Subject", "Commits", "On-Time%", "Quality", "Consistency", "Score", "Level"})

	// 2. Configure alignment for the numeric columns
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	maxWidth := getMaxSubjectWidth(cfg)
	var data [][]string
	for _, r := range results {
		level := string(r.Level)
		if cfg.UseColors {
			level = GetColorLevel(r.Level)
		}
		data = append(data, []string{
			TruncateSubject(r.Owner+"/"+r.Repo, maxWidth),
			strconv.Itoa(r.TotalCommits),
			fmt.Sprintf("%.1f", r.OnTimePercent),
			strconv.Itoa(r.MessageQuality),
			strconv.Itoa(r.ConsistencyScore),
			strconv.Itoa(r.Score),
			level,
		})
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// 5. Per-subject detail blocks
	for _, r := range results {
		if err := writeDetailBlock(writer, r); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(writer, "Analyzed %d subject(s) in %v with %d workers. History backend: %s\n",
		len(results), duration.Round(time.Millisecond), cfg.Workers, cfg.HistoryBackend)
	return err
}

// writeDetailBlock prints the histogram-style fields that do not fit the
// summary table: file extensions, size buckets and churn totals.
func writeDetailBlock(writer io.Writer, r *schema.AnalysisResult) error {
	if _, err := fmt.Fprintf(writer, "\n%s/%s (+%d/-%d lines, avg commit size %.1f)\n",
		r.Owner, r.Repo, r.TotalAdditions, r.TotalDeletions, r.AvgCommitSize); err != nil {
		return err
	}

	if _, err := fmt.Fprint(writer, "  extensions:"); err != nil {
		return err
	}
	for _, ext := range r.Extensions {
		if _, err := fmt.Fprintf(writer, " %s=%d", ext.Extension, ext.Count); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(writer); err != nil {
		return err
	}

	if _, err := fmt.Fprint(writer, "  commit sizes:"); err != nil {
		return err
	}
	for _, bucket := range r.SizeBuckets {
		if _, err := fmt.Fprintf(writer, " [%s]=%d", bucket.Label, bucket.Count); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(writer)
	return err
}
