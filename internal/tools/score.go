package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/prepready/prepready/internal/assessment"
	"github.com/prepready/prepready/internal/config"
)

// ScoreTool handles audit_score: the read-only view of the current
// predicted outcome and per-section progress.
type ScoreTool struct {
	sessions *Sessions
	cfg      config.Config
}

// NewScoreTool creates a ScoreTool with its dependencies.
func NewScoreTool(sessions *Sessions, cfg config.Config) *ScoreTool {
	return &ScoreTool{sessions: sessions, cfg: cfg}
}

// Definition returns the MCP tool definition for registration.
func (t *ScoreTool) Definition() mcp.Tool {
	return mcp.NewTool("audit_score",
		mcp.WithDescription(
			"Show the current audit's predicted outcome — star rating or "+
				"percentage score depending on the framework — with counts, "+
				"severity breakdown and per-section progress. Read-only; "+
				"changes nothing.",
		),
		mcp.WithString("org",
			mcp.Description("Organization identifier; defaults to the configured organization"),
		),
		mcp.WithString("framework",
			mcp.Description("Framework key; defaults to the configured framework"),
		),
		mcp.WithBoolean("show_items",
			mcp.Description("Include the full item list with current answers"),
		),
	)
}

// Handle processes the audit_score tool call.
func (t *ScoreTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	org := req.GetString("org", t.cfg.DefaultOrg)
	fwKey := req.GetString("framework", t.cfg.DefaultFramework)

	e, err := t.sessions.current(org, fwKey)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := assessment.Score(e.fw, e.answers)
	sections := assessment.AllSectionProgress(e.fw, e.answers)
	overall := assessment.OverallProgress(e.fw, e.answers)

	response := fmt.Sprintf(
		"# Audit score — %s, %s\n\n%s\nOverall progress: %.0f%%\n",
		org, e.date, renderOutcome(out, sections), overall*100,
	)
	if req.GetBool("show_items", false) {
		response += renderItems(e.fw, e.answers)
	}
	return mcp.NewToolResultText(response), nil
}
