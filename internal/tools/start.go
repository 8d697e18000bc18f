package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/prepready/prepready/internal/assessment"
	"github.com/prepready/prepready/internal/config"
	"github.com/prepready/prepready/internal/framework"
	"github.com/prepready/prepready/internal/store"
)

// StartTool handles audit_start: begin or resume today's self-audit
// for an organization and framework.
type StartTool struct {
	store    *store.Store
	sessions *Sessions
	cfg      config.Config
}

// NewStartTool creates a StartTool with its dependencies.
func NewStartTool(st *store.Store, sessions *Sessions, cfg config.Config) *StartTool {
	return &StartTool{store: st, sessions: sessions, cfg: cfg}
}

// Definition returns the MCP tool definition for registration.
func (t *StartTool) Definition() mcp.Tool {
	return mcp.NewTool("audit_start",
		mcp.WithDescription(
			"Begin or resume today's food safety self-audit. "+
				"Loads any assessment already saved for today and reconciles it "+
				"into a working answer set, then lists every section and item "+
				"so you can walk the operator through them. "+
				"One audit per organization per framework per calendar day.",
		),
		mcp.WithString("org",
			mcp.Description("Organization identifier; defaults to the configured organization"),
		),
		mcp.WithString("framework",
			mcp.Description("Framework key (eatsafe, foodcheck, or a custom loaded framework); defaults to the configured framework"),
		),
	)
}

// Handle processes the audit_start tool call.
func (t *StartTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	org := req.GetString("org", t.cfg.DefaultOrg)
	fwKey := req.GetString("framework", t.cfg.DefaultFramework)

	fw, err := framework.Get(fwKey)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	date := today()
	resumed := false

	// Reconcile whatever shape today's persisted record used (full
	// answers map or reduced responses map) into the canonical map.
	var seed assessment.AnswerMap
	rec, err := t.store.LoadAssessment(ctx, org, fw.Key, date)
	if err != nil {
		return nil, fmt.Errorf("loading today's assessment: %w", err)
	}
	if rec != nil {
		seed = assessment.Reconcile(rec.Answers, rec.Responses)
		resumed = true
	}

	e := t.sessions.open(fw, org, date, seed)
	out := assessment.Score(fw, e.answers)
	sections := assessment.AllSectionProgress(fw, e.answers)

	verb := "started"
	if resumed {
		verb = "resumed"
	}
	response := fmt.Sprintf(
		"# Audit %s\n\n%s — %s, %s\n\n%s\n%s\n\n"+
			"Record answers with `audit_answer`, check the outcome with "+
			"`audit_score`, and persist with `audit_save`.",
		verb, fw.Name, org, date,
		renderOutcome(out, sections),
		renderItems(fw, e.answers),
	)
	return mcp.NewToolResultText(response), nil
}
