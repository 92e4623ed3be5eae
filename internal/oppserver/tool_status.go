package oppserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oppbot/oppbot/internal/store"
)

type updateStatusInput struct {
	ID     int64  `json:"id" jsonschema:"Opportunity ID"`
	Status string `json:"status" jsonschema:"New status: new, applied, in_progress, completed, rejected"`
}

type updateStatusOutput struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

func registerUpdateStatus(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "opportunity_update_status",
		Description: "Move a tracked opportunity through its application workflow: new, applied, in_progress, completed, rejected.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input updateStatusInput) (*mcp.CallToolResult, updateStatusOutput, error) {
		if input.ID <= 0 {
			return nil, updateStatusOutput{}, fmt.Errorf("id is required")
		}
		if !store.ValidStatus(input.Status) {
			return nil, updateStatusOutput{}, fmt.Errorf("invalid status %q (valid: new, applied, in_progress, completed, rejected)", input.Status)
		}

		err := deps.Store.UpdateStatus(ctx, input.ID, store.Status(input.Status))
		if errors.Is(err, store.ErrNotFound) {
			return nil, updateStatusOutput{}, fmt.Errorf("opportunity %d not found", input.ID)
		}
		if err != nil {
			return nil, updateStatusOutput{}, err
		}
		return nil, updateStatusOutput{ID: input.ID, Status: input.Status}, nil
	})
}
