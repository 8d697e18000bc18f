// Package resources implements MCP resource handlers for PrepReady.
//
// Resources provide read-only data that the host can consume for
// context. They use URI-based addressing (prepready://...) following
// MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/prepready/prepready/internal/config"
	"github.com/prepready/prepready/internal/readiness"
)

// Handler manages PrepReady resource endpoints.
type Handler struct {
	agg *readiness.Aggregator
	cfg config.Config
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(agg *readiness.Aggregator, cfg config.Config) *Handler {
	return &Handler{agg: agg, cfg: cfg}
}

// ReadinessResource returns the MCP resource definition for the
// inspection readiness report.
func (h *Handler) ReadinessResource() mcp.Resource {
	return mcp.NewResource(
		"prepready://readiness/status",
		"Inspection Readiness",
		mcp.WithResourceDescription("Current inspection readiness score and per-check breakdown"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleReadiness returns the readiness report for the configured
// organization as JSON.
func (h *Handler) HandleReadiness(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	report := h.agg.Run(ctx, h.cfg.DefaultOrg)

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling readiness report: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
