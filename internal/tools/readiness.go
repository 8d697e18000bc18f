package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/prepready/prepready/internal/config"
	"github.com/prepready/prepready/internal/readiness"
)

// ReadinessTool handles readiness_report: run the ten operational
// checks concurrently and render the inspection readiness scorecard.
type ReadinessTool struct {
	agg *readiness.Aggregator
	cfg config.Config
}

// NewReadinessTool creates a ReadinessTool with its dependencies.
func NewReadinessTool(agg *readiness.Aggregator, cfg config.Config) *ReadinessTool {
	return &ReadinessTool{agg: agg, cfg: cfg}
}

// Definition returns the MCP tool definition for registration.
func (t *ReadinessTool) Definition() mcp.Tool {
	return mcp.NewTool("readiness_report",
		mcp.WithDescription(
			"Run the inspection readiness scorecard: ten independent checks "+
				"over operational records (profile, certificates, training, "+
				"daily logs, corrective actions, cleaning schedule, pest "+
				"control, calibration, suppliers, self-assessments), reduced "+
				"to one percentage. Independent of the item-level audit.",
		),
		mcp.WithString("org",
			mcp.Description("Organization identifier; defaults to the configured organization"),
		),
	)
}

// Handle processes the readiness_report tool call.
func (t *ReadinessTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	org := req.GetString("org", t.cfg.DefaultOrg)

	report := t.agg.Run(ctx, org)
	if len(report.Checks) == 0 {
		return mcp.NewToolResultText("No organization context — nothing to report."), nil
	}

	return mcp.NewToolResultText(renderReadiness(org, report)), nil
}

// statusIcons maps check status to the scorecard marker.
var statusIcons = map[readiness.Status]string{
	readiness.StatusReady:    "✅",
	readiness.StatusWarning:  "⚠️",
	readiness.StatusNotReady: "❌",
}

func renderReadiness(org string, report readiness.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Inspection readiness — %s\n\n", org)
	fmt.Fprintf(&b, "**%d%% — %s** (%d of %d checks ready)\n\n",
		report.ScorePct, report.Band, report.ReadyCount, readiness.TotalChecks)

	for _, c := range report.Checks {
		fmt.Fprintf(&b, "- %s **%s** — %s\n", statusIcons[c.Status], c.Label, c.Detail)
	}

	var gaps []string
	for _, c := range report.Checks {
		if c.Status != readiness.StatusReady {
			gaps = append(gaps, fmt.Sprintf("`%s`", c.FixRoute))
		}
	}
	if len(gaps) > 0 {
		fmt.Fprintf(&b, "\nClose the gaps via: %s (use `record_add` and `action_update`).\n",
			strings.Join(gaps, ", "))
	}
	return b.String()
}
