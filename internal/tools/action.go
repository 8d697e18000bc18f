package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/prepready/prepready/internal/actions"
	"github.com/prepready/prepready/internal/config"
	"github.com/prepready/prepready/internal/framework"
	"github.com/prepready/prepready/internal/store"
)

// The corrective-action tools share one file: opening an action,
// moving it through its lifecycle, and listing the register. Open
// critical actions hold the readiness scorecard down until resolved.

// --- action_open ---

// ActionOpenTool handles action_open: record a new corrective action.
type ActionOpenTool struct {
	store *store.Store
	cfg   config.Config
}

// NewActionOpenTool creates an ActionOpenTool with its dependencies.
func NewActionOpenTool(st *store.Store, cfg config.Config) *ActionOpenTool {
	return &ActionOpenTool{store: st, cfg: cfg}
}

// Definition returns the MCP tool definition for registration.
func (t *ActionOpenTool) Definition() mcp.Tool {
	return mcp.NewTool("action_open",
		mcp.WithDescription(
			"Open a corrective action — a tracked follow-up for a "+
				"non-compliance or inspection finding. Critical actions count "+
				"against inspection readiness until closed.",
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Short description of what must be fixed"),
		),
		mcp.WithString("severity",
			mcp.Required(),
			mcp.Enum("minor", "major", "critical"),
			mcp.Description("How serious the underlying issue is"),
		),
		mcp.WithString("detail",
			mcp.Description("Longer context for the action"),
		),
		mcp.WithString("item_code",
			mcp.Description("Audit item that raised the action, if any (e.g. TEMP-01)"),
		),
		mcp.WithString("org",
			mcp.Description("Organization identifier; defaults to the configured organization"),
		),
	)
}

// Handle processes the action_open tool call.
func (t *ActionOpenTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := &actions.Action{
		Org:      req.GetString("org", t.cfg.DefaultOrg),
		Title:    req.GetString("title", ""),
		Detail:   req.GetString("detail", ""),
		Severity: framework.Severity(req.GetString("severity", "")),
		ItemCode: req.GetString("item_code", ""),
		Status:   actions.StatusOpen,
	}
	if err := t.store.AddAction(ctx, a); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"# Corrective action opened\n\n`%s` — %s (%s)\n\n"+
			"Move it along with `action_update(id=%q, status=...)`.",
		a.ID, a.Title, a.Severity, a.ID,
	)), nil
}

// --- action_update ---

// ActionUpdateTool handles action_update: move a corrective action
// through its lifecycle.
type ActionUpdateTool struct {
	store *store.Store
	cfg   config.Config
}

// NewActionUpdateTool creates an ActionUpdateTool with its dependencies.
func NewActionUpdateTool(st *store.Store, cfg config.Config) *ActionUpdateTool {
	return &ActionUpdateTool{store: st, cfg: cfg}
}

// Definition returns the MCP tool definition for registration.
func (t *ActionUpdateTool) Definition() mcp.Tool {
	return mcp.NewTool("action_update",
		mcp.WithDescription(
			"Move a corrective action to a new status. Allowed transitions: "+
				"open → in_progress/closed, in_progress → closed/open, "+
				"closed → verified/open. Verified is terminal.",
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Corrective action ID"),
		),
		mcp.WithString("status",
			mcp.Required(),
			mcp.Enum("open", "in_progress", "closed", "verified"),
			mcp.Description("Target status"),
		),
		mcp.WithString("org",
			mcp.Description("Organization identifier; defaults to the configured organization"),
		),
	)
}

// Handle processes the action_update tool call.
func (t *ActionUpdateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	org := req.GetString("org", t.cfg.DefaultOrg)
	id := req.GetString("id", "")
	to := actions.Status(req.GetString("status", ""))

	a, err := t.store.TransitionAction(ctx, org, id, to)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Corrective action `%s` is now **%s** — %s", a.ID, a.Status, a.Title,
	)), nil
}

// --- action_list ---

// ActionListTool handles action_list: show the corrective action
// register, newest first.
type ActionListTool struct {
	store *store.Store
	cfg   config.Config
}

// NewActionListTool creates an ActionListTool with its dependencies.
func NewActionListTool(st *store.Store, cfg config.Config) *ActionListTool {
	return &ActionListTool{store: st, cfg: cfg}
}

// Definition returns the MCP tool definition for registration.
func (t *ActionListTool) Definition() mcp.Tool {
	return mcp.NewTool("action_list",
		mcp.WithDescription("List corrective actions, newest first."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum actions to list (default 20)"),
		),
		mcp.WithString("org",
			mcp.Description("Organization identifier; defaults to the configured organization"),
		),
	)
}

// Handle processes the action_list tool call.
func (t *ActionListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	org := req.GetString("org", t.cfg.DefaultOrg)
	limit := int(req.GetFloat("limit", 20))

	list, err := t.store.ListActions(ctx, org, limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(list) == 0 {
		return mcp.NewToolResultText("No corrective actions on file."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Corrective actions — %s\n\n", org)
	for _, a := range list {
		fmt.Fprintf(&b, "- `%s` [%s/%s] %s", a.ID, a.Severity, a.Status, a.Title)
		if a.ItemCode != "" {
			fmt.Fprintf(&b, " (item %s)", a.ItemCode)
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}
