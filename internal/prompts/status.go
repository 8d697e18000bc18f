package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// StatusPrompt handles the prepready-status MCP prompt.
// It instructs the AI to gather and present inspection readiness.
type StatusPrompt struct{}

// NewStatusPrompt creates a StatusPrompt.
func NewStatusPrompt() *StatusPrompt {
	return &StatusPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StatusPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("prepready-status",
		mcp.WithPromptDescription(
			"Check inspection readiness. Shows the readiness score, which "+
				"of the ten checks pass, and what to fix before the next "+
				"health inspection.",
		),
	)
}

// Handle processes the prepready-status prompt request.
func (p *StatusPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Inspection Readiness Status",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please run `readiness_report` to check how prepared we are for a health inspection.\n\n" +
						"Then:\n" +
						"1. Show the readiness score and band prominently\n" +
						"2. List the failing or warning checks with their details\n" +
						"3. Tell me the fastest way to close each gap — which records to add " +
						"(`record_add`) or which corrective actions to resolve (`action_update`)\n" +
						"4. If a self-audit is overdue, offer to start one with `audit_start`",
				),
			},
		},
	}, nil
}
