package oppserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oppbot/oppbot/internal/store"
)

type statsInput struct{}

func registerStats(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "opportunity_stats",
		Description: "Summarize the opportunity tracker: total count, breakdown by category and status, and how many deadlines fall within the next 7 days.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input statsInput) (*mcp.CallToolResult, store.Stats, error) {
		stats, err := deps.Store.Stats(ctx, deps.now())
		if err != nil {
			return nil, store.Stats{}, err
		}
		return nil, stats, nil
	})
}
