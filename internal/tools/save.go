package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/prepready/prepready/internal/assessment"
	"github.com/prepready/prepready/internal/config"
	"github.com/prepready/prepready/internal/store"
)

// SaveTool handles audit_save: flush the working answer map into the
// persisted shape the active framework expects.
type SaveTool struct {
	store    *store.Store
	sessions *Sessions
	cfg      config.Config
}

// NewSaveTool creates a SaveTool with its dependencies.
func NewSaveTool(st *store.Store, sessions *Sessions, cfg config.Config) *SaveTool {
	return &SaveTool{store: st, sessions: sessions, cfg: cfg}
}

// Definition returns the MCP tool definition for registration.
func (t *SaveTool) Definition() mcp.Tool {
	return mcp.NewTool("audit_save",
		mcp.WithDescription(
			"Persist the current audit. Tiered frameworks save the full "+
				"answer set with the predicted star rating; percentage "+
				"frameworks save the reduced yes/no responses with the score. "+
				"Saving again on the same day replaces that day's record. "+
				"On failure nothing is lost — the working answers stay in "+
				"memory for retry.",
		),
		mcp.WithString("org",
			mcp.Description("Organization identifier; defaults to the configured organization"),
		),
		mcp.WithString("framework",
			mcp.Description("Framework key; defaults to the configured framework"),
		),
	)
}

// Handle processes the audit_save tool call.
func (t *SaveTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	org := req.GetString("org", t.cfg.DefaultOrg)
	fwKey := req.GetString("framework", t.cfg.DefaultFramework)

	e, err := t.sessions.current(org, fwKey)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := assessment.Score(e.fw, e.answers)
	rec := store.BuildRecord(e.fw, org, e.date, e.answers, out)

	if err := t.store.SaveAssessment(ctx, rec); err != nil {
		// Recoverable: the in-memory map is untouched.
		return mcp.NewToolResultError(fmt.Sprintf("save failed (answers kept in memory, retry with audit_save): %v", err)), nil
	}

	response := fmt.Sprintf(
		"# Audit saved\n\n%s — %s, %s\n\n%s",
		e.fw.Name, org, e.date,
		renderOutcome(out, assessment.AllSectionProgress(e.fw, e.answers)),
	)
	return mcp.NewToolResultText(response), nil
}
