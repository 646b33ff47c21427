package outwriter

import (
	"os"

	"github.com/huangsam/devlens/internal/contract"
	"golang.org/x/term"
)

// getMaxSubjectWidth calculates the maximum width for the subject column in
// table output based on terminal width.
func getMaxSubjectWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed numeric columns with table formatting:
	// Commits + On-Time% + Quality + Consistency + Score + Level, plus
	// borders, separators and padding.
	const baseWidth = 62

	available := termWidth - baseWidth
	if available < 12 {
		return 12
	}
	if available > 50 {
		return 50
	}
	return available
}
