package cmd

import (
	"fmt"

	"github.com/huangsam/devlens/internal/contract"
	"github.com/huangsam/devlens/internal/history"
	"github.com/huangsam/devlens/internal/mcp"
	"github.com/huangsam/devlens/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// mcpSetup loads configuration without positional subjects; the MCP tools
// carry their own owner/repo parameters per request.
func mcpSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	cfg.Token = input.Token
	cfg.Workers = contract.ClampWorkers(input.Workers)
	cfg.WorkStart = input.WorkStart
	cfg.WorkEnd = input.WorkEnd
	cfg.Limit = max(input.Limit, 0)
	cfg.APIBaseURL = input.APIURL
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = contract.DefaultAPIURL
	}

	backend := schema.DatabaseBackend(input.HistoryBackend)
	if backend == "" {
		backend = schema.SQLiteBackend
	}
	if err := contract.ValidateDatabaseConnectionString(backend, input.HistoryDBConnect); err != nil {
		return err
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = input.HistoryDBConnect

	if err := history.InitStore(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}
	return nil
}

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Devlens MCP server",
	Long:  `Launch an MCP server that allows AI agents to run commit-history analysis via standard tools.`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		// The MCP transport owns stdio, so setup must not require
		// positional arguments or print interactive feedback.
		return mcpSetup()
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, historyManager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
