// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/devlens/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Devlens MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.HistoryManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Devlens Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: analyze_commits ---
	s.AddTool(mcp.NewTool("analyze_commits",
		mcp.WithDescription("Analyze the commit history of a GitHub repository and derive developer experience metrics."),
		mcp.WithString("subject", mcp.Description("Repository in owner/repo form."), mcp.Required()),
		mcp.WithNumber("workers", mcp.Description("Detail fetch concurrency (clamped to the supported range).")),
		mcp.WithNumber("work_start", mcp.Description("On-time window start hour, inclusive (0-23).")),
		mcp.WithNumber("work_end", mcp.Description("On-time window end hour, exclusive (1-24).")),
	), h.handleAnalyzeCommits)

	// --- 2. Tool: compare_developers ---
	s.AddTool(mcp.NewTool("compare_developers",
		mcp.WithDescription("Analyze multiple GitHub repositories and rank them by derived experience score."),
		mcp.WithString("subjects", mcp.Description("Comma-separated owner/repo pairs."), mcp.Required()),
		mcp.WithNumber("workers", mcp.Description("Detail fetch concurrency (clamped to the supported range).")),
	), h.handleCompareDevelopers)

	return s
}

// StartMCPServer starts the Devlens MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.HistoryManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
