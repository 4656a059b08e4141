// Package mcp exposes the starmap query operations as MCP tools, so LLM
// agents can query the map over stdio.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/frontiermaps/starmap/pkg/engine"
)

func NewMCPServer(svc *engine.Service) *mcp.Server {
	service := NewService(svc)

	s := mcp.NewServer(&mcp.Implementation{
		Name:    "Starmap",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "starmap_nearest",
		Description: "Find the N nearest star systems within a radius of a system or a 3D point.",
	}, service.Nearest)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "starmap_path",
		Description: "Compute the minimum-fuel gate route between two systems (each jump costs 1).",
	}, service.Path)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "starmap_sweep",
		Description: "Plan a greedy survey tour visiting every system within a radius of a center.",
	}, service.Sweep)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "starmap_resolve",
		Description: "Resolve a system name (or name prefix) to ids and positions.",
	}, service.Resolve)

	return s
}
