// Package kdtree implements the build-once 3D spatial index used to answer
// radius-bounded nearest-neighbour queries over a system catalog.
//
// This file defines the bounded result heap used during a search. It is a
// max-heap over (squared distance, system id), built on Go's standard
// container/heap package: the root is always the worst hit collected so far,
// making it cheap to evict when a closer system is found.
package kdtree

import "container/heap"

// Hit is a single search result: the catalog index and id of the system plus
// its Euclidean distance to the query point.
type Hit struct {
	Index    int32
	ID       uint32
	Distance float64
}

// hitHeap orders hits worst-first: larger squared distance floats to the
// top, with larger id breaking ties so the eviction order mirrors the
// (distance asc, id asc) order of the final result list.
type hitHeap []candidate

type candidate struct {
	index int32
	id    uint32
	dist2 float64
}

func (h hitHeap) Len() int { return len(h) }

func (h hitHeap) Less(i, j int) bool {
	if h[i].dist2 != h[j].dist2 {
		return h[i].dist2 > h[j].dist2
	}
	return h[i].id > h[j].id
}

func (h hitHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *hitHeap) Push(x any) { *h = append(*h, x.(candidate)) }

func (h *hitHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// worse reports whether a would sort after b in the final result order.
func (a candidate) worse(b candidate) bool {
	if a.dist2 != b.dist2 {
		return a.dist2 > b.dist2
	}
	return a.id > b.id
}

// offer inserts c, evicting the current worst hit when the heap is full and
// c would sort before it.
func (h *hitHeap) offer(c candidate, limit int) {
	if h.Len() < limit {
		heap.Push(h, c)
		return
	}
	if (*h)[0].worse(c) {
		(*h)[0] = c
		heap.Fix(h, 0)
	}
}
