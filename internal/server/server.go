// Package server wires all MCP components and creates the server
// instance. It is the composition root: concrete implementations are
// created here and injected into the tools/prompts/resources that
// depend on them. No business logic lives here — only wiring.
package server

import (
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/server"

	"github.com/prepready/prepready/internal/config"
	"github.com/prepready/prepready/internal/framework"
	"github.com/prepready/prepready/internal/prompts"
	"github.com/prepready/prepready/internal/readiness"
	"github.com/prepready/prepready/internal/resources"
	"github.com/prepready/prepready/internal/store"
	"github.com/prepready/prepready/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
//
// The returned cleanup function closes the store's database connection
// and must be called on shutdown (typically via defer). It is always
// non-nil.
func New() (*server.MCPServer, func(), error) {
	// --- Create shared dependencies ---

	cfg, err := config.Load()
	if err != nil {
		return nil, noop, fmt.Errorf("loading configuration: %w", err)
	}

	st, err := store.New(store.Config{DataDir: cfg.DataDir})
	if err != nil {
		return nil, noop, fmt.Errorf("opening store: %w", err)
	}
	cleanup := func() {
		if err := st.Close(); err != nil {
			log.Printf("WARNING: store close: %v", err)
		}
	}

	// Extra frameworks are optional — the built-in catalog always
	// works. A bad file is a warning, not a startup failure.
	if cfg.FrameworkDir != "" {
		loaded, errs := framework.LoadDir(cfg.FrameworkDir)
		for _, e := range errs {
			log.Printf("WARNING: framework load: %v", e)
		}
		if len(loaded) > 0 {
			log.Printf("loaded %d framework(s) from %s", len(loaded), cfg.FrameworkDir)
		}
	}

	sessions := tools.NewSessions()
	agg := readiness.New(st)

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"prepready",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register audit tools ---

	startTool := tools.NewStartTool(st, sessions, cfg)
	s.AddTool(startTool.Definition(), startTool.Handle)

	answerTool := tools.NewAnswerTool(sessions, cfg)
	s.AddTool(answerTool.Definition(), answerTool.Handle)

	markAllTool := tools.NewMarkAllTool(sessions, cfg)
	s.AddTool(markAllTool.Definition(), markAllTool.Handle)

	scoreTool := tools.NewScoreTool(sessions, cfg)
	s.AddTool(scoreTool.Definition(), scoreTool.Handle)

	saveTool := tools.NewSaveTool(st, sessions, cfg)
	s.AddTool(saveTool.Definition(), saveTool.Handle)

	loadPreviousTool := tools.NewLoadPreviousTool(st, sessions, cfg)
	s.AddTool(loadPreviousTool.Definition(), loadPreviousTool.Handle)

	// --- Register readiness and record tools ---

	readinessTool := tools.NewReadinessTool(agg, cfg)
	s.AddTool(readinessTool.Definition(), readinessTool.Handle)

	recordAddTool := tools.NewRecordAddTool(st, cfg)
	s.AddTool(recordAddTool.Definition(), recordAddTool.Handle)

	// --- Register corrective action tools ---

	actionOpenTool := tools.NewActionOpenTool(st, cfg)
	s.AddTool(actionOpenTool.Definition(), actionOpenTool.Handle)

	actionUpdateTool := tools.NewActionUpdateTool(st, cfg)
	s.AddTool(actionUpdateTool.Definition(), actionUpdateTool.Handle)

	actionListTool := tools.NewActionListTool(st, cfg)
	s.AddTool(actionListTool.Definition(), actionListTool.Handle)

	// --- Register prompts ---

	startPrompt := prompts.NewStartPrompt()
	s.AddPrompt(startPrompt.Definition(), startPrompt.Handle)

	statusPrompt := prompts.NewStatusPrompt()
	s.AddPrompt(statusPrompt.Definition(), statusPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(agg, cfg)
	s.AddResource(resourceHandler.ReadinessResource(), resourceHandler.HandleReadiness)

	return s, cleanup, nil
}

// noop is the default cleanup before the store is open.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to use PrepReady effectively.
func serverInstructions() string {
	return `You have access to PrepReady, a food safety compliance MCP server
for food businesses preparing for health inspections.

## WHEN TO ACTIVATE PrepReady

Proactively suggest PrepReady when the user:
- Mentions an upcoming health inspection, EHO visit, or audit
- Asks how compliant or "inspection ready" their food business is
- Wants to run a food safety self-assessment or checklist
- Reports a food safety problem (broken fridge, pest sighting, failed
  temperature check) — offer to open a corrective action

## THE TWO WORKFLOWS

1. SELF-AUDIT: audit_start opens (or resumes) today's audit against a
   framework. Record answers item by item with audit_answer, check the
   running score with audit_score, and persist with audit_save. Use
   audit_load_previous to review or restore an earlier audit.

2. READINESS: readiness_report runs ten record-keeping checks and
   returns a readiness score. Close gaps by adding records with
   record_add or resolving corrective actions with action_update.

## HOW TO RUN AN AUDIT WELL

- Ask about ONE checklist item at a time — never dump the whole list
- When something is non-compliant, ask how serious it is before setting
  severity (minor/major/critical)
- Record the user's own words as comments — they are audit evidence
- Items that genuinely don't apply to the business stay not_assessed
  with an explanatory comment — never mark them compliant
- Always call audit_save before ending the conversation — unsaved
  answers live only in memory

## SEVERITY GUIDANCE

- critical: immediate risk to food safety (no hot water, raw/cooked
  cross-contamination, active pest infestation)
- major: serious process failure (missing temperature records, untrained
  staff handling food)
- minor: housekeeping issues (incomplete labels, worn surfaces)

One critical non-compliance caps a tiered rating at two stars — treat
criticals as urgent and offer to open a corrective action for each.`
}
