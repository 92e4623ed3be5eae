package oppserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oppbot/oppbot/internal/store"
)

type listInput struct {
	Status string `json:"status,omitempty" jsonschema:"Filter by status: new, applied, in_progress, completed, rejected (default: all)"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Maximum number of results, 1-200 (default: 50)"`
}

type listOutput struct {
	Opportunities []store.Opportunity `json:"opportunities"`
	Count         int                 `json:"count"`
}

func registerList(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "opportunity_list",
		Description: "List tracked opportunities ordered by priority score (highest first). Supports filtering by status and limiting result count.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input listInput) (*mcp.CallToolResult, listOutput, error) {
		opps, err := deps.Store.List(ctx, store.ListFilter{Status: input.Status, Limit: input.Limit})
		if err != nil {
			return nil, listOutput{}, err
		}
		if opps == nil {
			opps = []store.Opportunity{}
		}
		return nil, listOutput{Opportunities: opps, Count: len(opps)}, nil
	})
}
