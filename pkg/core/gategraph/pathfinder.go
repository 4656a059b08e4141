package gategraph

import (
	"container/heap"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrNoRoute reports that the two systems are not connected by any chain of
// gates. It is a distinct outcome rather than a failure: the search ran to
// completion and proved the absence of a route.
var ErrNoRoute = errors.New("gategraph: no gate route between systems")

// PathStep is one system along a route, with the cumulative fuel cost paid
// to reach it. The first step always has cost 0.
type PathStep struct {
	Index int32
	ID    uint32
	Cost  int
}

// FindPath returns the minimum-fuel gate route between two system ids as an
// A*-style best-first search over the gate graph.
//
// The heuristic divides straight-line distance by the graph's longest gate
// span: no jump covers more space than that span, so the quotient never
// overstates the remaining hop count and the result is provably minimal.
// When the graph has no usable span the heuristic is zero and the search
// decays to uniform-cost expansion, trading speed for the same guarantee.
//
// FindPath(x, x) is a single-step route of cost 0. Unknown ids are rejected
// before the search starts; an exhausted frontier yields ErrNoRoute.
func (g *Graph) FindPath(startID, endID uint32) ([]PathStep, error) {
	start, ok := g.cat.IndexOfID(startID)
	if !ok {
		return nil, fmt.Errorf("unknown start system id %d", startID)
	}
	goal, ok := g.cat.IndexOfID(endID)
	if !ok {
		return nil, fmt.Errorf("unknown end system id %d", endID)
	}
	if start == goal {
		return []PathStep{{Index: start, ID: startID, Cost: 0}}, nil
	}

	n := g.cat.Len()
	const unvisited = int32(-1)
	gScore := make([]int32, n)
	cameFrom := make([]int32, n)
	for i := range gScore {
		gScore[i] = unvisited
		cameFrom[i] = unvisited
	}
	gScore[start] = 0

	goalPos := g.cat.At(goal).Pos

	open := make(frontier, 0, 64)
	heap.Push(&open, frontierEntry{
		index: start,
		id:    startID,
		g:     0,
		f:     g.heuristic(g.cat.At(start).Pos, goalPos),
	})

	for open.Len() > 0 {
		cur := heap.Pop(&open).(frontierEntry)
		if cur.index == goal {
			return g.reconstruct(cameFrom, goal), nil
		}
		if cur.g > gScore[cur.index] {
			continue // stale entry, a cheaper route was found meanwhile
		}

		tentative := cur.g + 1
		for _, nb := range g.neighborIndexes(cur.index) {
			if gScore[nb] != unvisited && gScore[nb] <= tentative {
				continue
			}
			gScore[nb] = tentative
			cameFrom[nb] = cur.index
			sys := g.cat.At(nb)
			heap.Push(&open, frontierEntry{
				index: nb,
				id:    sys.ID,
				g:     tentative,
				f:     float64(tentative) + g.heuristic(sys.Pos, goalPos),
			})
		}
	}

	return nil, ErrNoRoute
}

// heuristic estimates remaining hops from pos to goalPos without ever
// overestimating.
func (g *Graph) heuristic(pos, goalPos r3.Vec) float64 {
	if g.maxSpan <= 0 {
		return 0
	}
	return r3.Norm(r3.Sub(goalPos, pos)) / g.maxSpan
}

func (g *Graph) reconstruct(cameFrom []int32, goal int32) []PathStep {
	indexes := []int32{goal}
	for cur := cameFrom[goal]; cur >= 0; cur = cameFrom[cur] {
		indexes = append(indexes, cur)
	}

	steps := make([]PathStep, len(indexes))
	for i := range steps {
		idx := indexes[len(indexes)-1-i]
		steps[i] = PathStep{Index: idx, ID: g.cat.At(idx).ID, Cost: i}
	}
	return steps
}
