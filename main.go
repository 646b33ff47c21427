// main is the entrypoint for the devlens CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/devlens/cmd"
	"github.com/huangsam/devlens/internal/history"
)

func main() {
	os.Exit(run())
}

// run wraps the command execution so deferred cleanup still fires
// before the process exits.
func run() int {
	cmd.SetHistoryManager(history.Manager)
	defer history.CloseStore()

	if err := cmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
