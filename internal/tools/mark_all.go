package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/prepready/prepready/internal/assessment"
	"github.com/prepready/prepready/internal/config"
)

// MarkAllTool handles audit_mark_all_compliant: the bulk operation that
// sets every item compliant, keeping comments and evidence already
// recorded against each code.
type MarkAllTool struct {
	sessions *Sessions
	cfg      config.Config
}

// NewMarkAllTool creates a MarkAllTool with its dependencies.
func NewMarkAllTool(sessions *Sessions, cfg config.Config) *MarkAllTool {
	return &MarkAllTool{sessions: sessions, cfg: cfg}
}

// Definition returns the MCP tool definition for registration.
func (t *MarkAllTool) Definition() mcp.Tool {
	return mcp.NewTool("audit_mark_all_compliant",
		mcp.WithDescription(
			"Mark every item in the current audit compliant. Existing "+
				"comments and evidence flags are preserved; severities are "+
				"discarded. Use when the operator has walked the premises and "+
				"found nothing to flag, then record exceptions individually.",
		),
		mcp.WithString("org",
			mcp.Description("Organization identifier; defaults to the configured organization"),
		),
		mcp.WithString("framework",
			mcp.Description("Framework key; defaults to the configured framework"),
		),
	)
}

// Handle processes the audit_mark_all_compliant tool call.
func (t *MarkAllTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	org := req.GetString("org", t.cfg.DefaultOrg)
	fwKey := req.GetString("framework", t.cfg.DefaultFramework)

	e, err := t.sessions.current(org, fwKey)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	assessment.MarkAllCompliant(e.fw, e.answers)

	out := assessment.Score(e.fw, e.answers)
	sections := assessment.AllSectionProgress(e.fw, e.answers)

	response := fmt.Sprintf("# All items marked compliant\n\n%s", renderOutcome(out, sections))
	return mcp.NewToolResultText(response), nil
}
