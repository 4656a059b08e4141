package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/frontiermaps/starmap/pkg/engine"
)

// Service adapts the engine's query operations into MCP tool handlers.
// Results are rendered as short strings: the consumer is a language model,
// not a program.
type Service struct {
	svc *engine.Service
}

func NewService(svc *engine.Service) *Service {
	return &Service{svc: svc}
}

func (s *Service) nearestRequest(args NearestArgs) engine.NearestRequest {
	req := engine.NearestRequest{
		Radius: args.Radius,
		Count:  args.Count,
	}
	if req.Count == 0 {
		req.Count = 10
	}
	if args.UseOrigin {
		req.Origin = &engine.Point{X: args.X, Y: args.Y, Z: args.Z}
	} else {
		req.SystemName = args.SystemName
	}
	return req
}

// --- Tool Handlers ---

func (s *Service) Nearest(ctx context.Context, req *mcp.CallToolRequest, args NearestArgs) (*mcp.CallToolResult, NearestResult, error) {
	resp, err := s.svc.Current().Nearest(s.nearestRequest(args))
	if err != nil {
		return nil, NearestResult{}, err
	}

	out := make([]string, len(resp.Systems))
	for i, hit := range resp.Systems {
		out[i] = fmt.Sprintf("%s (%d) at distance %.2f", hit.Name, hit.ID, hit.Distance)
	}
	return nil, NearestResult{Systems: out}, nil
}

func (s *Service) Path(ctx context.Context, req *mcp.CallToolRequest, args PathArgs) (*mcp.CallToolResult, PathResult, error) {
	resp, err := s.svc.Current().Path(engine.PathRequest{StartID: args.StartID, EndID: args.EndID})
	if err != nil {
		if errors.Is(err, engine.ErrUnreachable) {
			return nil, PathResult{Found: false, Route: "no gate route connects these systems"}, nil
		}
		return nil, PathResult{}, err
	}

	names := make([]string, len(resp.Steps))
	for i, st := range resp.Steps {
		names[i] = st.Name
	}
	route := fmt.Sprintf("%s (%d jumps)", strings.Join(names, " -> "), resp.Cost)
	return nil, PathResult{Found: true, Route: route}, nil
}

func (s *Service) Sweep(ctx context.Context, req *mcp.CallToolRequest, args SweepArgs) (*mcp.CallToolResult, SweepResult, error) {
	sreq := engine.SweepRequest{Radius: args.Radius}
	if args.UseCenter {
		sreq.Center = &engine.Point{X: args.X, Y: args.Y, Z: args.Z}
	} else {
		sreq.SystemName = args.SystemName
	}

	resp, err := s.svc.Current().Sweep(sreq)
	if err != nil {
		return nil, SweepResult{}, err
	}

	order := make([]string, len(resp.Order))
	for i, stop := range resp.Order {
		order[i] = fmt.Sprintf("%s (%d)", stop.Name, stop.ID)
	}
	return nil, SweepResult{Order: order, TotalDistance: resp.TotalDistance}, nil
}

func (s *Service) Resolve(ctx context.Context, req *mcp.CallToolRequest, args ResolveArgs) (*mcp.CallToolResult, ResolveResult, error) {
	hits, err := s.svc.Current().Resolve(args.Name, args.Prefix, args.Limit)
	if err != nil {
		return nil, ResolveResult{}, err
	}

	out := make([]string, len(hits))
	for i, hit := range hits {
		out[i] = fmt.Sprintf("%s (%d) at [%.2f, %.2f, %.2f]", hit.Name, hit.ID,
			hit.Position.X, hit.Position.Y, hit.Position.Z)
	}
	return nil, ResolveResult{Systems: out}, nil
}
