// Package prompts implements MCP prompt handlers for PrepReady.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// StartPrompt handles the prepready-start MCP prompt.
// It guides the AI through running a full self-audit.
type StartPrompt struct{}

// NewStartPrompt creates a StartPrompt.
func NewStartPrompt() *StartPrompt {
	return &StartPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StartPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("prepready-start",
		mcp.WithPromptDescription(
			"Run a food safety self-audit. Walks through every checklist "+
				"item section by section, records answers, and saves the "+
				"scored result.",
		),
		mcp.WithArgument("framework",
			mcp.ArgumentDescription(
				"Audit framework key: 'eatsafe' (tiered star rating) or 'foodcheck' (percentage score). Default: eatsafe",
			),
		),
	)
}

// Handle processes the prepready-start prompt request.
func (p *StartPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	fwKey := "eatsafe"
	if args := req.Params.Arguments; args != nil {
		if f, ok := args["framework"]; ok && f != "" {
			fwKey = f
		}
	}

	return &mcp.GetPromptResult{
		Description: "Food Safety Self-Audit",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want to run a food safety self-audit against the %q framework.\n\n"+
						"Please:\n"+
						"1. Call `audit_start` with framework=%q to open today's audit "+
						"(it resumes automatically if one exists)\n"+
						"2. Walk me through the checklist one section at a time — for each "+
						"item, ask whether we comply, and record my answer with `audit_answer` "+
						"(include severity when something is non-compliant, and comments where "+
						"I give context)\n"+
						"3. If an item doesn't apply to my business, leave it not_assessed and note why in comments\n"+
						"4. After every section, show me the running score with `audit_score`\n"+
						"5. When we're done, call `audit_save` and summarize the result: the "+
						"rating, the non-compliances by severity, and what to fix first\n"+
						"6. For any critical or major non-compliance, offer to open a "+
						"corrective action with `action_open`",
					fwKey, fwKey,
				)),
			},
		},
	}, nil
}
