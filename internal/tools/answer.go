package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/prepready/prepready/internal/assessment"
	"github.com/prepready/prepready/internal/config"
	"github.com/prepready/prepready/internal/framework"
)

// AnswerTool handles audit_answer: record status, severity, comments
// or evidence for one item. The outcome is recomputed on every call.
type AnswerTool struct {
	sessions *Sessions
	cfg      config.Config
}

// NewAnswerTool creates an AnswerTool with its dependencies.
func NewAnswerTool(sessions *Sessions, cfg config.Config) *AnswerTool {
	return &AnswerTool{sessions: sessions, cfg: cfg}
}

// Definition returns the MCP tool definition for registration.
func (t *AnswerTool) Definition() mcp.Tool {
	return mcp.NewTool("audit_answer",
		mcp.WithDescription(
			"Record the answer for one audit item. Sets status and, on "+
				"severity-graded frameworks, the severity of a non-compliance. "+
				"Severity applies only while the item is non-compliant; moving "+
				"the item back to compliant or not_assessed clears it. "+
				"Returns the recomputed predicted outcome.",
		),
		mcp.WithString("code",
			mcp.Required(),
			mcp.Description("Item code, e.g. TEMP-01"),
		),
		mcp.WithString("status",
			mcp.Description("New status for the item"),
			mcp.Enum("compliant", "non_compliant", "not_assessed"),
		),
		mcp.WithString("severity",
			mcp.Description("Severity of the non-compliance (tiered frameworks only)"),
			mcp.Enum("minor", "major", "critical"),
		),
		mcp.WithString("comments",
			mcp.Description("Free-text comments for the item"),
		),
		mcp.WithBoolean("evidence",
			mcp.Description("Evidence flag, for items that carry an evidence toggle"),
		),
		mcp.WithString("org",
			mcp.Description("Organization identifier; defaults to the configured organization"),
		),
		mcp.WithString("framework",
			mcp.Description("Framework key; defaults to the configured framework"),
		),
	)
}

// Handle processes the audit_answer tool call.
func (t *AnswerTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	org := req.GetString("org", t.cfg.DefaultOrg)
	fwKey := req.GetString("framework", t.cfg.DefaultFramework)
	code := req.GetString("code", "")

	e, err := t.sessions.current(org, fwKey)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if status := req.GetString("status", ""); status != "" {
		if err := assessment.SetStatus(e.fw, e.answers, code, assessment.Status(status)); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	if sev := req.GetString("severity", ""); sev != "" {
		if err := assessment.SetSeverity(e.fw, e.answers, code, framework.Severity(sev)); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	if comments := req.GetString("comments", ""); comments != "" {
		if err := assessment.SetComments(e.fw, e.answers, code, comments); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	if req.GetBool("evidence", false) {
		if err := assessment.SetEvidence(e.fw, e.answers, code, true); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	out := assessment.Score(e.fw, e.answers)
	sections := assessment.AllSectionProgress(e.fw, e.answers)
	a := e.answers.Get(code)

	response := fmt.Sprintf(
		"# Answer recorded\n\n`%s` → %s%s\n\n%s",
		code, a.Status, severitySuffix(a),
		renderOutcome(out, sections),
	)
	return mcp.NewToolResultText(response), nil
}

func severitySuffix(a assessment.Answer) string {
	if a.Severity == "" {
		return ""
	}
	return fmt.Sprintf(" (%s)", a.Severity)
}
