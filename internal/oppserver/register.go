// Package oppserver exposes the opportunity tracker as MCP tools:
// opportunity_analyze, opportunity_list, opportunity_update_status,
// opportunity_stats.
package oppserver

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oppbot/oppbot/internal/analyzer"
	"github.com/oppbot/oppbot/internal/store"
)

// Deps injects the shared pipeline and storage into the tools.
type Deps struct {
	Store   store.Store
	Analyze func(ctx context.Context, text string) analyzer.Analysis
	Notify  func(opp store.Opportunity)
	Now     func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// RegisterTools registers all opportunity tools on the given MCP server.
func RegisterTools(server *mcp.Server, deps Deps) {
	registerAnalyze(server, deps)
	registerList(server, deps)
	registerUpdateStatus(server, deps)
	registerStats(server, deps)
}
