package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/huangsam/devlens/core"
	"github.com/huangsam/devlens/internal/contract"
	"github.com/huangsam/devlens/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.HistoryManager
}

// quietSink drops phase and progress notifications. The MCP transport owns
// stdio, so interactive feedback has nowhere to go.
type quietSink struct{}

func (quietSink) OnPhase(schema.Subject, schema.Phase)                     {}
func (quietSink) OnProgress(schema.Subject, schema.Phase, schema.Progress) {}
func (quietSink) OnWarning(schema.Subject, string)                         {}

// Compile-time check
var _ contract.AnalysisSink = quietSink{}

func (h *toolHandler) handleAnalyzeCommits(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	subject, err := contract.ParseSubject(request.GetString("subject", ""), cfg.Token)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid subject: %v", err)), nil
	}
	cfg.Subjects = []schema.Subject{subject}
	if w := request.GetInt("workers", 0); w > 0 {
		cfg.Workers = contract.ClampWorkers(w)
	}
	if ws := request.GetInt("work_start", -1); ws >= 0 && ws <= 23 {
		cfg.WorkStart = ws
	}
	if we := request.GetInt("work_end", -1); we >= 1 && we <= 24 {
		cfg.WorkEnd = we
	}

	outcomes := core.AnalyzeSubjects(ctx, cfg, h.mgr, quietSink{})
	out := outcomes[0]
	if out.Err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", out.Err)), nil
	}

	jsonData, _ := json.MarshalIndent(out.Result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// comparedSubject is one row of the compare_developers payload, ranked by score.
type comparedSubject struct {
	Rank   int                    `json:"rank"`
	Result *schema.AnalysisResult `json:"result"`
}

// compareFailure reports a subject whose analysis did not produce a result.
type compareFailure struct {
	Subject string `json:"subject"`
	Error   string `json:"error"`
}

func (h *toolHandler) handleCompareDevelopers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	var subjects []schema.Subject
	for _, arg := range strings.Split(request.GetString("subjects", ""), ",") {
		subject, err := contract.ParseSubject(arg, cfg.Token)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid subject: %v", err)), nil
		}
		subjects = append(subjects, subject)
	}
	if len(subjects) < 2 {
		return mcp.NewToolResultError("at least two owner/repo subjects are required for comparison"), nil
	}
	if len(subjects) > contract.MaxSubjects {
		return mcp.NewToolResultError(fmt.Sprintf("at most %d subjects are supported", contract.MaxSubjects)), nil
	}
	cfg.Subjects = subjects
	if w := request.GetInt("workers", 0); w > 0 {
		cfg.Workers = contract.ClampWorkers(w)
	}

	outcomes := core.AnalyzeSubjects(ctx, cfg, h.mgr, quietSink{})

	var ranked []comparedSubject
	var failed []compareFailure
	for _, out := range outcomes {
		if out.Err != nil {
			failed = append(failed, compareFailure{Subject: out.Subject.Key(), Error: out.Err.Error()})
			continue
		}
		ranked = append(ranked, comparedSubject{Result: out.Result})
	}
	if len(ranked) == 0 {
		return mcp.NewToolResultError("all subjects failed to analyze"), nil
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Result.Score > ranked[j].Result.Score
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	payload := struct {
		Ranked []comparedSubject `json:"ranked"`
		Failed []compareFailure  `json:"failed,omitempty"`
	}{Ranked: ranked, Failed: failed}

	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
