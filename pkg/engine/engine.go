// Package engine provides the high-level, embeddable interface to the
// starmap query engine.
//
// An Engine is a caller-owned handle over one validated dataset generation:
// the catalog, the spatial index and the gate graph, all built once by Open
// and immutable afterwards. Every query is a pure in-memory computation and
// any number of them may run concurrently against the same handle. Loading
// new data means opening a new Engine; old handles stay valid until their
// last user drops them.
//
// Basic usage:
//
//	eng, err := engine.Open(engine.DemoDataset())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := eng.Nearest(engine.NearestRequest{...})
package engine

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/frontiermaps/starmap/pkg/core/gategraph"
	"github.com/frontiermaps/starmap/pkg/core/kdtree"
	"github.com/frontiermaps/starmap/pkg/core/starmap"
	"github.com/frontiermaps/starmap/pkg/core/sweep"
)

// Engine bundles one immutable dataset generation. Zero hidden globals: the
// only way to obtain one is Open, the only input is an explicit Dataset.
type Engine struct {
	catalog *starmap.Catalog
	tree    *kdtree.Tree
	graph   *gategraph.Graph
	tag     string
}

// Open validates the dataset and builds the catalog, the k-d tree and the
// gate graph. Construction runs to completion before the handle is
// returned, so queries never observe a partially built structure.
// Inconsistent data (duplicate ids, gates to unknown systems) fails the
// open with ErrDatasetInconsistent.
func Open(ds starmap.Dataset) (*Engine, error) {
	cat, err := starmap.NewCatalog(ds.Systems)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatasetInconsistent, err)
	}
	graph, err := gategraph.Build(cat, ds.Gates)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatasetInconsistent, err)
	}
	eng := &Engine{
		catalog: cat,
		tree:    kdtree.Build(cat),
		graph:   graph,
		tag:     ds.Tag,
	}
	slog.Info("dataset opened",
		"tag", ds.Tag,
		"systems", cat.Len(),
		"gates", graph.GateCount(),
	)
	return eng, nil
}

// Catalog exposes the read-only catalog of this generation.
func (e *Engine) Catalog() *starmap.Catalog { return e.catalog }

// Stats returns counts describing this generation.
func (e *Engine) Stats() Stats {
	return Stats{Tag: e.tag, Systems: e.catalog.Len(), Gates: e.graph.GateCount()}
}

// resolveOrigin turns the point-or-name pair of a request into a position.
func (e *Engine) resolveOrigin(pt *Point, name string) (Point, error) {
	switch {
	case pt != nil && name != "":
		return Point{}, fmt.Errorf("%w: origin point and system name are mutually exclusive", ErrInvalidArgument)
	case pt != nil:
		if math.IsNaN(pt.X) || math.IsNaN(pt.Y) || math.IsNaN(pt.Z) ||
			math.IsInf(pt.X, 0) || math.IsInf(pt.Y, 0) || math.IsInf(pt.Z, 0) {
			return Point{}, fmt.Errorf("%w: origin coordinates must be finite", ErrInvalidArgument)
		}
		return *pt, nil
	case name != "":
		sys, ok := e.catalog.ResolveName(name)
		if !ok {
			return Point{}, fmt.Errorf("%w: unknown system name %q", ErrNotFound, name)
		}
		return fromVec(sys.Pos), nil
	default:
		return Point{}, fmt.Errorf("%w: either an origin point or a system name is required", ErrInvalidArgument)
	}
}

// Nearest returns up to req.Count systems within req.Radius of the origin,
// ascending by distance then id.
func (e *Engine) Nearest(req NearestRequest) (NearestResponse, error) {
	origin, err := e.resolveOrigin(req.Origin, req.SystemName)
	if err != nil {
		return NearestResponse{}, err
	}
	if req.Count <= 0 {
		return NearestResponse{}, fmt.Errorf("%w: count must be positive, got %d", ErrInvalidArgument, req.Count)
	}
	if req.Radius < 0 {
		return NearestResponse{}, fmt.Errorf("%w: radius must be non-negative, got %g", ErrInvalidArgument, req.Radius)
	}

	hits, err := e.tree.NearestWithinRadius(origin.vec(), req.Radius, req.Count)
	if err != nil {
		return NearestResponse{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	resp := NearestResponse{Systems: make([]NearestHit, len(hits))}
	for i, h := range hits {
		sys := e.catalog.At(h.Index)
		resp.Systems[i] = NearestHit{
			ID:       sys.ID,
			Name:     sys.Name,
			Position: fromVec(sys.Pos),
			Distance: h.Distance,
		}
	}
	return resp, nil
}

// Path returns the minimum-fuel gate route between two system ids. A
// disconnected pair yields ErrUnreachable; unknown ids yield ErrNotFound.
func (e *Engine) Path(req PathRequest) (PathResponse, error) {
	if _, ok := e.catalog.IndexOfID(req.StartID); !ok {
		return PathResponse{}, fmt.Errorf("%w: unknown start system id %d", ErrNotFound, req.StartID)
	}
	if _, ok := e.catalog.IndexOfID(req.EndID); !ok {
		return PathResponse{}, fmt.Errorf("%w: unknown end system id %d", ErrNotFound, req.EndID)
	}

	steps, err := e.graph.FindPath(req.StartID, req.EndID)
	if err != nil {
		if err == gategraph.ErrNoRoute {
			return PathResponse{}, fmt.Errorf("%w: no gate route from %d to %d", ErrUnreachable, req.StartID, req.EndID)
		}
		return PathResponse{}, err
	}

	resp := PathResponse{Steps: make([]PathStep, len(steps))}
	for i, st := range steps {
		resp.Steps[i] = PathStep{ID: st.ID, Name: e.catalog.At(st.Index).Name, Cost: st.Cost}
	}
	resp.Cost = steps[len(steps)-1].Cost
	return resp, nil
}

// Sweep plans a greedy tour of every system within req.Radius of the
// center.
func (e *Engine) Sweep(req SweepRequest) (SweepResponse, error) {
	center, err := e.resolveOrigin(req.Center, req.SystemName)
	if err != nil {
		return SweepResponse{}, err
	}
	if req.Radius < 0 {
		return SweepResponse{}, fmt.Errorf("%w: radius must be non-negative, got %g", ErrInvalidArgument, req.Radius)
	}

	plan, err := sweep.PlanSweep(e.catalog, e.tree, center.vec(), req.Radius)
	if err != nil {
		return SweepResponse{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	resp := SweepResponse{
		Order:         make([]SweepStop, len(plan.Order)),
		TotalDistance: plan.TotalDistance,
	}
	for i, id := range plan.Order {
		sys, _ := e.catalog.ByID(id)
		resp.Order[i] = SweepStop{ID: id, Name: sys.Name}
	}
	return resp, nil
}

// Resolve looks up systems by exact name or, when prefix is true, by name
// prefix. Exact resolution of a duplicated name picks the lowest id.
func (e *Engine) Resolve(name string, prefix bool, limit int) ([]NearestHit, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}
	if prefix {
		if limit <= 0 {
			limit = 10
		}
		systems := e.catalog.SearchPrefix(name, limit)
		out := make([]NearestHit, len(systems))
		for i, sys := range systems {
			out[i] = NearestHit{ID: sys.ID, Name: sys.Name, Position: fromVec(sys.Pos)}
		}
		return out, nil
	}
	sys, ok := e.catalog.ResolveName(name)
	if !ok {
		return nil, fmt.Errorf("%w: unknown system name %q", ErrNotFound, name)
	}
	return []NearestHit{{ID: sys.ID, Name: sys.Name, Position: fromVec(sys.Pos)}}, nil
}
