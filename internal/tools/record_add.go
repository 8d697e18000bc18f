package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/prepready/prepready/internal/config"
	"github.com/prepready/prepready/internal/store"
)

// RecordAddTool handles record_add: append one operational record —
// the raw material the readiness scorecard counts.
type RecordAddTool struct {
	store *store.Store
	cfg   config.Config
}

// NewRecordAddTool creates a RecordAddTool with its dependencies.
func NewRecordAddTool(st *store.Store, cfg config.Config) *RecordAddTool {
	return &RecordAddTool{store: st, cfg: cfg}
}

// Definition returns the MCP tool definition for registration.
func (t *RecordAddTool) Definition() mcp.Tool {
	return mcp.NewTool("record_add",
		mcp.WithDescription(
			"Add one operational record. Kinds and their fields:\n"+
				"- profile: name (business name), detail (address), contact\n"+
				"- certificate: name (holder), detail (certificate type), date (expiry)\n"+
				"- training: name (staff member), detail (course), date (completed)\n"+
				"- daily_log: detail (log kind: temperature, cleaning, delivery), date\n"+
				"- cleaning_task: name (area), detail (frequency)\n"+
				"- pest_visit: name (provider), detail (notes), date (visit)\n"+
				"- calibration: name (equipment), date (calibrated)\n"+
				"- supplier: name, detail (category)\n"+
				"Dates are YYYY-MM-DD and default to today.",
		),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Enum("profile", "certificate", "training", "daily_log",
				"cleaning_task", "pest_visit", "calibration", "supplier"),
			mcp.Description("Which register the record belongs to"),
		),
		mcp.WithString("name",
			mcp.Description("Primary name field for the kind (see description)"),
		),
		mcp.WithString("detail",
			mcp.Description("Secondary field for the kind (see description)"),
		),
		mcp.WithString("contact",
			mcp.Description("Contact details (profile only)"),
		),
		mcp.WithString("date",
			mcp.Description("Record date, YYYY-MM-DD; defaults to today"),
		),
		mcp.WithString("org",
			mcp.Description("Organization identifier; defaults to the configured organization"),
		),
	)
}

// Handle processes the record_add tool call.
func (t *RecordAddTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	org := req.GetString("org", t.cfg.DefaultOrg)
	kind := req.GetString("kind", "")
	name := req.GetString("name", "")
	detail := req.GetString("detail", "")

	day, err := parseDay(req.GetString("date", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	switch kind {
	case "profile":
		err = t.store.UpsertBusinessProfile(ctx, store.BusinessProfile{
			Org: org, Name: name, Address: detail,
			Contact: req.GetString("contact", ""),
		})
	case "certificate":
		_, err = t.store.AddCertificate(ctx, org, name, detail, timeNow().UTC(), day)
	case "training":
		_, err = t.store.AddTrainingRecord(ctx, org, name, detail, day)
	case "daily_log":
		if detail == "" {
			detail = "temperature"
		}
		_, err = t.store.AddDailyLog(ctx, org, detail, name, day)
	case "cleaning_task":
		_, err = t.store.AddCleaningTask(ctx, org, name, detail)
	case "pest_visit":
		_, err = t.store.AddPestVisit(ctx, org, name, detail, day)
	case "calibration":
		_, err = t.store.AddCalibration(ctx, org, name, day)
	case "supplier":
		_, err = t.store.AddSupplier(ctx, org, name, detail)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown record kind %q", kind)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Recorded %s for %s. Run `readiness_report` to see the updated scorecard.",
		kind, org,
	)), nil
}
