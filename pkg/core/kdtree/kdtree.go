package kdtree

import (
	"container/heap"
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/frontiermaps/starmap/pkg/core/starmap"
)

// ErrNegativeRadius is returned when a search is attempted with a negative
// radius. A negative radius is a caller bug, not an empty query, so it is
// rejected rather than clamped.
var ErrNegativeRadius = errors.New("kdtree: radius must be non-negative")

// node is one entry of the flat tree arena. Children are arena indexes so
// the whole tree lives in two contiguous allocations and can be shared
// between concurrent readers without pointer chasing.
type node struct {
	catIndex int32
	left     int32 // -1 when absent
	right    int32
	axis     uint8 // 0=x 1=y 2=z
}

// Tree is a balanced 3D k-d tree over the positions of a catalog. It is
// immutable after Build and safe for concurrent searches.
type Tree struct {
	cat   *starmap.Catalog
	nodes []node
	root  int32
}

// Build constructs the tree by recursive median split, cycling the split
// axis x->y->z by depth. Ties in the splitting coordinate are broken by
// ascending system id, so the tree shape is fully determined by the catalog
// contents. An empty catalog yields a valid empty tree.
func Build(cat *starmap.Catalog) *Tree {
	t := &Tree{
		cat:   cat,
		nodes: make([]node, 0, cat.Len()),
		root:  -1,
	}
	if cat.Len() == 0 {
		return t
	}

	order := make([]int32, cat.Len())
	for i := range order {
		order[i] = int32(i)
	}
	t.root = t.build(order, 0)
	return t
}

func axisCoord(p r3.Vec, axis uint8) float64 {
	switch axis {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}

// build recurses on halves of the index slice. Median splits halve the
// slice each level, so recursion depth is O(log n) regardless of input.
func (t *Tree) build(order []int32, depth int) int32 {
	if len(order) == 0 {
		return -1
	}
	axis := uint8(depth % 3)
	sort.Slice(order, func(i, j int) bool {
		a, b := t.cat.At(order[i]), t.cat.At(order[j])
		ca, cb := axisCoord(a.Pos, axis), axisCoord(b.Pos, axis)
		if ca != cb {
			return ca < cb
		}
		return a.ID < b.ID
	})
	mid := len(order) / 2

	id := int32(len(t.nodes))
	t.nodes = append(t.nodes, node{catIndex: order[mid], axis: axis, left: -1, right: -1})
	// The arena grows during recursion, so children are assigned after the
	// subtrees exist rather than in the append above.
	left := t.build(order[:mid], depth+1)
	right := t.build(order[mid+1:], depth+1)
	t.nodes[id].left = left
	t.nodes[id].right = right
	return id
}

// Len returns the number of indexed systems.
func (t *Tree) Len() int { return len(t.nodes) }

// NearestWithinRadius returns up to limit systems whose Euclidean distance
// to origin is at most radius, ordered by ascending distance with ties
// broken by ascending system id.
//
// A zero radius or non-positive limit yields an empty result; a negative
// radius returns ErrNegativeRadius. Comparisons run on squared distances
// throughout, the square root is taken only for the returned hits.
func (t *Tree) NearestWithinRadius(origin r3.Vec, radius float64, limit int) ([]Hit, error) {
	if radius < 0 {
		return nil, ErrNegativeRadius
	}
	if radius == 0 || limit <= 0 || t.root < 0 {
		return nil, nil
	}

	radius2 := radius * radius
	best := make(hitHeap, 0, limit)

	// Iterative traversal with an explicit stack: no recursion depth limit
	// and no per-query allocations beyond the stack and result heap.
	stack := make([]int32, 0, 64)
	stack = append(stack, t.root)

	for len(stack) > 0 {
		ni := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.nodes[ni]
		sys := t.cat.At(n.catIndex)
		d := r3.Sub(sys.Pos, origin)
		dist2 := r3.Norm2(d)

		if dist2 <= radius2 {
			best.offer(candidate{index: n.catIndex, id: sys.ID, dist2: dist2}, limit)
		}

		// bound is the tightest radius that can still change the result:
		// the query radius until the heap fills, the worst retained hit
		// afterwards. Equal axis distance must still descend so that id
		// tie-breaks stay reachable.
		bound := radius2
		if best.Len() == limit && best[0].dist2 < bound {
			bound = best[0].dist2
		}

		delta := axisCoord(origin, n.axis) - axisCoord(sys.Pos, n.axis)
		near, far := n.left, n.right
		if delta > 0 {
			near, far = n.right, n.left
		}
		// Far side first so the near side is explored first off the stack.
		if far >= 0 && delta*delta <= bound {
			stack = append(stack, far)
		}
		if near >= 0 {
			stack = append(stack, near)
		}
	}

	// Drain worst-first, then reverse into ascending order.
	hits := make([]Hit, best.Len())
	for i := best.Len() - 1; i >= 0; i-- {
		c := heap.Pop(&best).(candidate)
		hits[i] = Hit{Index: c.index, ID: c.id, Distance: math.Sqrt(c.dist2)}
	}
	return hits, nil
}
