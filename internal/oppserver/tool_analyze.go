package oppserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oppbot/oppbot/internal/analyzer"
	"github.com/oppbot/oppbot/internal/store"
)

type analyzeInput struct {
	Text   string `json:"text" jsonschema:"Opportunity text to analyze (job posting, freelance gig, grant announcement, etc.)"`
	Source string `json:"source,omitempty" jsonschema:"Where the text came from: api, whatsapp, manual (default: api)"`
	Save   bool   `json:"save,omitempty" jsonschema:"Persist the analyzed opportunity to the tracker (default: false)"`
}

type analyzeOutput struct {
	ID       int64             `json:"id,omitempty"`
	Analysis analyzer.Analysis `json:"analysis"`
}

func registerAnalyze(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "opportunity_analyze",
		Description: "Analyze opportunity text: classify it (job, freelance, business, grant, competition, internship), extract deadline, requirements, contacts, compensation and location, and compute a 1-10 priority score. Optionally saves the result to the tracker.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input analyzeInput) (*mcp.CallToolResult, analyzeOutput, error) {
		if input.Text == "" {
			return nil, analyzeOutput{}, fmt.Errorf("text is required")
		}

		a := deps.Analyze(ctx, input.Text)
		out := analyzeOutput{Analysis: a}

		if input.Save {
			opp := store.New(input.Text, input.Source, a)
			id, err := deps.Store.Save(ctx, opp)
			if err != nil {
				return nil, analyzeOutput{}, fmt.Errorf("save failed: %w", err)
			}
			out.ID = id
			if deps.Notify != nil {
				opp.ID = id
				deps.Notify(opp)
			}
		}
		return nil, out, nil
	})
}
