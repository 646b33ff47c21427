package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/huangsam/devlens/schema"
)

// Per-level colors for console table output.
var (
	seniorColor   = color.New(color.FgGreen, color.Bold)
	midColor      = color.New(color.FgCyan)
	juniorColor   = color.New(color.FgYellow)
	beginnerColor = color.New(color.FgHiBlack)
)

// GetColorLevel returns a colored experience-level label for table output.
func GetColorLevel(level schema.ExperienceLevel) string {
	switch level {
	case schema.SeniorLevel:
		return seniorColor.Sprint(string(level))
	case schema.MidLevel:
		return midColor.Sprint(string(level))
	case schema.JuniorLevel:
		return juniorColor.Sprint(string(level))
	default:
		return beginnerColor.Sprint(string(level))
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// writeWithFile handles the common pattern of opening a file, writing to it,
// and cleaning up. It accepts a writer function that takes an io.Writer.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		_, _ = fmt.Fprintf(os.Stderr, "Wrote %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	return writeRows(csvWriter)
}

// TruncateSubject truncates a subject key to a maximum width with an
// ellipsis prefix, keeping the repo-side of the key visible.
func TruncateSubject(key string, maxWidth int) string {
	runes := []rune(key)
	if len(runes) > maxWidth {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return key
}
