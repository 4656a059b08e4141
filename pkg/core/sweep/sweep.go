// Package sweep plans greedy survey tours: visit every system within a
// radius of a center point, always jumping to the nearest unvisited one.
//
// The tour is a nearest-neighbour approximation of the covering problem.
// It is intentionally not an optimal TSP tour; callers rely on the cheap,
// deterministic ordering, not on global minimality.
package sweep

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/frontiermaps/starmap/pkg/core/kdtree"
	"github.com/frontiermaps/starmap/pkg/core/starmap"
)

// Plan is the computed visit order and the distance travelled along it.
// TotalDistance sums the legs between consecutive visited systems; the
// initial approach from the center and any return trip are not counted.
type Plan struct {
	Order         []uint32
	TotalDistance float64
}

// PlanSweep gathers every system within radius of center through the
// spatial index and orders them greedily: starting from the center, the
// nearest unvisited candidate is visited next, ties broken by ascending
// system id. An empty candidate set yields an empty plan.
//
// A negative radius propagates the index's rejection; a zero radius is a
// valid empty query.
func PlanSweep(cat *starmap.Catalog, tree *kdtree.Tree, center r3.Vec, radius float64) (Plan, error) {
	// limit = catalog size so every qualifying system is returned.
	hits, err := tree.NearestWithinRadius(center, radius, cat.Len())
	if err != nil {
		return Plan{}, err
	}
	if len(hits) == 0 {
		return Plan{}, nil
	}

	type pending struct {
		index int32
		id    uint32
		pos   r3.Vec
	}
	remaining := make([]pending, len(hits))
	for i, h := range hits {
		remaining[i] = pending{index: h.Index, id: h.ID, pos: cat.At(h.Index).Pos}
	}

	plan := Plan{Order: make([]uint32, 0, len(remaining))}
	pos := center
	first := true

	for len(remaining) > 0 {
		bestAt := 0
		bestDist := r3.Norm(r3.Sub(remaining[0].pos, pos))
		for i := 1; i < len(remaining); i++ {
			d := r3.Norm(r3.Sub(remaining[i].pos, pos))
			if d < bestDist || (d == bestDist && remaining[i].id < remaining[bestAt].id) {
				bestAt, bestDist = i, d
			}
		}

		next := remaining[bestAt]
		remaining[bestAt] = remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]

		if !first {
			plan.TotalDistance += bestDist
		}
		first = false
		pos = next.pos
		plan.Order = append(plan.Order, next.id)
	}
	return plan, nil
}
