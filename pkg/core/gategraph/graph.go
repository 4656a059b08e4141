// Package gategraph holds the jump-gate adjacency structure over a system
// catalog and the shortest-route search that runs on top of it.
//
// Gates are unweighted: every traversal costs exactly one unit of fuel, so
// the minimum-fuel route is the minimum-hop route.
package gategraph

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/frontiermaps/starmap/pkg/core/starmap"
)

// Graph is the immutable adjacency structure built once from a catalog and
// a directed gate list. Neighbours are stored as catalog indexes, sorted
// ascending and deduplicated, so traversal order is deterministic.
type Graph struct {
	cat *starmap.Catalog
	adj [][]int32

	// maxSpan is the longest gate in the graph, measured in space. It is the
	// constant that makes the route heuristic admissible: no single jump can
	// cover more distance than this, so remaining hops >= distance / maxSpan.
	maxSpan float64
}

// Build validates the gate list against the catalog and constructs the
// adjacency structure. A gate referencing an id absent from the catalog is
// a dataset consistency error and fails the build; nothing is dropped
// silently. The graph stores gates exactly as given and does not force
// symmetry, datasets are expected to list both directions themselves.
func Build(cat *starmap.Catalog, gates []starmap.Gate) (*Graph, error) {
	g := &Graph{
		cat: cat,
		adj: make([][]int32, cat.Len()),
	}

	for _, gate := range gates {
		from, ok := cat.IndexOfID(gate.From)
		if !ok {
			return nil, fmt.Errorf("gate %d->%d references unknown system id %d", gate.From, gate.To, gate.From)
		}
		to, ok := cat.IndexOfID(gate.To)
		if !ok {
			return nil, fmt.Errorf("gate %d->%d references unknown system id %d", gate.From, gate.To, gate.To)
		}
		g.adj[from] = append(g.adj[from], to)
	}

	for from, neighbours := range g.adj {
		sort.Slice(neighbours, func(i, j int) bool { return neighbours[i] < neighbours[j] })
		g.adj[from] = dedupSorted(neighbours)

		a := cat.At(int32(from)).Pos
		for _, to := range g.adj[from] {
			span := r3.Norm(r3.Sub(cat.At(to).Pos, a))
			if span > g.maxSpan {
				g.maxSpan = span
			}
		}
	}
	return g, nil
}

func dedupSorted(s []int32) []int32 {
	if len(s) < 2 {
		return s
	}
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// Catalog returns the catalog the graph was built over.
func (g *Graph) Catalog() *starmap.Catalog { return g.cat }

// GateCount returns the number of directed gates stored.
func (g *Graph) GateCount() int {
	n := 0
	for _, neighbours := range g.adj {
		n += len(neighbours)
	}
	return n
}

// MaxGateSpan returns the spatial length of the longest gate, or 0 for a
// graph without gates.
func (g *Graph) MaxGateSpan() float64 { return g.maxSpan }

// Neighbors returns the ids directly reachable from the given system id,
// in ascending id order of catalog index. Unknown ids are an error, not an
// empty set, so callers can distinguish "isolated" from "nonexistent".
func (g *Graph) Neighbors(id uint32) ([]uint32, error) {
	idx, ok := g.cat.IndexOfID(id)
	if !ok {
		return nil, fmt.Errorf("unknown system id %d", id)
	}
	out := make([]uint32, len(g.adj[idx]))
	for i, n := range g.adj[idx] {
		out[i] = g.cat.At(n).ID
	}
	return out, nil
}

// neighborIndexes is the allocation-free index-level view used by the
// pathfinder.
func (g *Graph) neighborIndexes(idx int32) []int32 { return g.adj[idx] }
