// Package main provides a performance benchmarking tool for the Devlens CLI.
// It measures end-to-end analysis times across repositories of different
// sizes, running each test multiple times, treating the first successful run
// as cold and averaging the rest as warm, and generating CSV output for
// performance analysis and documentation.
//
// Prerequisites:
// - devlens binary installed and available in PATH
// - GITHUB_TOKEN set (unauthenticated rate limits make repeated runs useless)
// - Network access to api.github.com
//
// Usage: go run benchmark/main.go
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-history average,
// cold run and average of warm runs).
type BenchmarkResult struct {
	Subject       string
	Command       string
	NoHistoryTime string
	ColdTime      string
	WarmTime      string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	Timeout       time.Duration
	Workers       int
	NoHistoryRuns int
	HistoryRuns   int
	TestSubjects  []string
}

func main() {
	config := BenchmarkConfig{
		Timeout:       5 * time.Minute,
		Workers:       10,
		NoHistoryRuns: 3,
		HistoryRuns:   4,
		TestSubjects: []string{
			"spf13/cobra",
			"fatih/color",
			"stretchr/testify",
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Start from an empty history database
	fmt.Printf("Clearing history...\n")
	clearCmd := exec.Command("devlens", "history", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear history: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("History cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the devlens binary and a token exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("devlens"); err != nil {
		return fmt.Errorf("devlens binary not found in PATH")
	}
	if os.Getenv("GITHUB_TOKEN") == "" && os.Getenv("DEVLENS_TOKEN") == "" {
		return fmt.Errorf("no GITHUB_TOKEN or DEVLENS_TOKEN set")
	}
	if len(config.TestSubjects) == 0 {
		return fmt.Errorf("no test subjects configured")
	}
	return nil
}

// runBenchmarks executes all benchmark tests across configured subjects
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d subjects, %v timeout, %d workers, no-history: %d runs, history: %d runs\n",
		len(config.TestSubjects), config.Timeout, config.Workers, config.NoHistoryRuns, config.HistoryRuns)

	for _, subject := range config.TestSubjects {
		fmt.Printf("Benchmarking %s\n", subject)
		result := runBenchmarkSuite(config, subject, "analyze", []string{subject})
		results = append(results, result)
	}

	// One ranked run across every subject at once
	result := runBenchmarkSuite(config, strings.Join(config.TestSubjects, "+"), "compare", config.TestSubjects)
	results = append(results, result)

	return results
}

// runBenchmarkSuite runs both no-history and history benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, label, command string, subjects []string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command, label)

	runPhase := func(backend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, command, subjects, backend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	// Phase 1: no persistence
	_, noHistoryAvg := runPhase("none", config.NoHistoryRuns, "No-history")

	// Phase 2: sqlite-backed runs to measure persistence overhead
	coldTime, warmAvg := runPhase("sqlite", config.HistoryRuns, "History")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-history average: %s, Cold time: %s, Warm average: %s\n", noHistoryAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Subject:       label,
		Command:       command,
		NoHistoryTime: noHistoryAvg,
		ColdTime:      coldTimeStr,
		WarmTime:      warmAvg,
	}
}

// runBenchmark executes a devlens command multiple times with the given
// history backend and returns the cold time and warm times
func runBenchmark(config BenchmarkConfig, command string, subjects []string, backend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{command}
	args = append(args, subjects...)
	args = append(args,
		"--history-backend", backend,
		"--workers", fmt.Sprintf("%d", config.Workers),
	)

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("devlens", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Analyzed") &&
		strings.Contains(outputStr, "subject(s)")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/devlens_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"subject", "cmd", "no_history_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		if err := writer.Write([]string{result.Subject, result.Command, result.NoHistoryTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "analyze", "Analyze:")
	printCommandSummary(results, "compare", "Compare:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-24s: No-history: %s, Cold: %s, Warm: %s\n", result.Subject, result.NoHistoryTime, result.ColdTime, result.WarmTime)
		}
	}
}
