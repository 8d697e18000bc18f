package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/prepready/prepready/internal/assessment"
	"github.com/prepready/prepready/internal/config"
	"github.com/prepready/prepready/internal/store"
)

// LoadPreviousTool handles audit_load_previous: list recent saved
// assessments, or replace the current working answers wholesale from a
// chosen prior record.
type LoadPreviousTool struct {
	store    *store.Store
	sessions *Sessions
	cfg      config.Config
}

// NewLoadPreviousTool creates a LoadPreviousTool with its dependencies.
func NewLoadPreviousTool(st *store.Store, sessions *Sessions, cfg config.Config) *LoadPreviousTool {
	return &LoadPreviousTool{store: st, sessions: sessions, cfg: cfg}
}

// Definition returns the MCP tool definition for registration.
func (t *LoadPreviousTool) Definition() mcp.Tool {
	return mcp.NewTool("audit_load_previous",
		mcp.WithDescription(
			"Without a date: list recent saved assessments for the "+
				"organization, most recent first. With a date: replace the "+
				"current working answers with that day's saved answers "+
				"(a wholesale replacement, not a merge) — useful when today's "+
				"audit starts from yesterday's state.",
		),
		mcp.WithString("date",
			mcp.Description("Date of the record to load (YYYY-MM-DD); omit to list recent records"),
		),
		mcp.WithNumber("limit",
			mcp.Description("How many recent records to list (default 5)"),
		),
		mcp.WithString("org",
			mcp.Description("Organization identifier; defaults to the configured organization"),
		),
		mcp.WithString("framework",
			mcp.Description("Framework key; defaults to the configured framework"),
		),
	)
}

// Handle processes the audit_load_previous tool call.
func (t *LoadPreviousTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	org := req.GetString("org", t.cfg.DefaultOrg)
	fwKey := req.GetString("framework", t.cfg.DefaultFramework)
	date := req.GetString("date", "")

	if date == "" {
		return t.listRecent(ctx, req, org, fwKey)
	}

	e, err := t.sessions.current(org, fwKey)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rec, err := t.store.LoadAssessment(ctx, org, fwKey, date)
	if err != nil {
		return nil, fmt.Errorf("loading assessment: %w", err)
	}
	if rec == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no saved assessment for %s on %s", org, date)), nil
	}

	t.sessions.replace(e, assessment.Reconcile(rec.Answers, rec.Responses))

	out := assessment.Score(e.fw, e.answers)
	response := fmt.Sprintf(
		"# Loaded answers from %s\n\nThe working answer set was replaced. "+
			"Nothing is persisted until `audit_save`.\n\n%s",
		date, renderOutcome(out, assessment.AllSectionProgress(e.fw, e.answers)),
	)
	return mcp.NewToolResultText(response), nil
}

func (t *LoadPreviousTool) listRecent(ctx context.Context, req mcp.CallToolRequest, org, fwKey string) (*mcp.CallToolResult, error) {
	limit := int(req.GetFloat("limit", 5))
	recs, err := t.store.RecentAssessments(ctx, org, fwKey, limit)
	if err != nil {
		return nil, fmt.Errorf("listing assessments: %w", err)
	}
	if len(recs) == 0 {
		return mcp.NewToolResultText("No saved assessments yet."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Recent assessments — %s, %s\n\n", org, fwKey)
	for _, rec := range recs {
		switch {
		case rec.Stars != nil:
			fmt.Fprintf(&b, "- %s — %d stars\n", rec.Date, *rec.Stars)
		case rec.Score != nil:
			fmt.Fprintf(&b, "- %s — %d%%\n", rec.Date, *rec.Score)
		default:
			fmt.Fprintf(&b, "- %s\n", rec.Date)
		}
	}
	b.WriteString("\nLoad one with `audit_load_previous(date=...)`.")
	return mcp.NewToolResultText(b.String()), nil
}
