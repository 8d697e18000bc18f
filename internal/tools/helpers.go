// Package tools implements the MCP tool handlers for PrepReady.
//
// Each tool is a struct that receives its dependencies at construction
// and exposes Definition() for registration plus a Handle method
// compatible with mcp-go's CallToolRequest signature. Business rules
// live in internal/assessment and internal/readiness — tools only
// parse parameters, call the engine, and render results.
package tools

import (
	"fmt"
	"strings"
	"time"

	"github.com/prepready/prepready/internal/assessment"
	"github.com/prepready/prepready/internal/framework"
)

// timeNow is a package-level var to allow clock injection in tests.
var timeNow = time.Now

// dateOnly is the calendar-day layout used for audit dates.
const dateOnly = "2006-01-02"

// today returns the current calendar day in UTC.
func today() string {
	return timeNow().UTC().Format(dateOnly)
}

// parseDay validates an optional YYYY-MM-DD parameter, defaulting to
// today when empty.
func parseDay(s string) (time.Time, error) {
	if s == "" {
		return timeNow().UTC(), nil
	}
	t, err := time.Parse(dateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// renderOutcome formats a scoring outcome plus per-section progress as
// the markdown block every audit tool returns.
func renderOutcome(out assessment.Outcome, sections []assessment.SectionProgress) string {
	var b strings.Builder

	switch out.Model {
	case framework.ModelTiered:
		fmt.Fprintf(&b, "**Predicted rating: %d stars — %s**\n\n", out.Value, out.Label)
	default:
		fmt.Fprintf(&b, "**Predicted score: %d%% — %s**\n\n", out.Value, out.Label)
	}

	fmt.Fprintf(&b, "Assessed %d of %d items — %d compliant, %d non-compliant\n",
		out.AssessedCount, out.TotalItems, out.CompliantCount, out.NonCompliantCount)

	if out.Model == framework.ModelTiered && out.NonCompliantCount > 0 {
		fmt.Fprintf(&b, "Severity breakdown: %d minor, %d major, %d critical\n",
			out.Severities.Minor, out.Severities.Major, out.Severities.Critical)
	}

	b.WriteString("\n| Section | Compliant | Assessed |\n|---|---|---|\n")
	for _, sp := range sections {
		fmt.Fprintf(&b, "| %s | %d/%d | %d/%d |\n",
			sp.Label, sp.CompliantCount, sp.TotalItems, sp.AssessedCount, sp.TotalItems)
	}

	return b.String()
}

// renderItems lists a framework's sections and items with their current
// answers so the assistant can walk the operator through the audit.
func renderItems(fw *framework.Framework, answers assessment.AnswerMap) string {
	var b strings.Builder
	for _, sec := range fw.Sections {
		fmt.Fprintf(&b, "\n### %s\n\n", sec.Label)
		for _, it := range sec.Items {
			a := answers.Get(it.Code)
			marker := " "
			switch a.Status {
			case assessment.StatusCompliant:
				marker = "✓"
			case assessment.StatusNonCompliant:
				marker = "✗"
			}
			fmt.Fprintf(&b, "- [%s] `%s` %s", marker, it.Code, it.Text)
			if a.Status == assessment.StatusNonCompliant && a.Severity != "" {
				fmt.Fprintf(&b, " _(%s)_", a.Severity)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
