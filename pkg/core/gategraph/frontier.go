package gategraph

// frontier is the priority queue driving the route search, built on
// container/heap. Entries are ordered by f-score ascending; equal f-scores
// prefer the entry with more cost already paid (deeper along its route),
// then the lower system id, so expansion order is deterministic.
type frontier []frontierEntry

type frontierEntry struct {
	index int32
	id    uint32
	g     int32   // hops paid so far
	f     float64 // g + heuristic
}

func (q frontier) Len() int { return len(q) }

func (q frontier) Less(i, j int) bool {
	a, b := q[i], q[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.g != b.g {
		return a.g > b.g
	}
	return a.id < b.id
}

func (q frontier) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *frontier) Push(x any) { *q = append(*q, x.(frontierEntry)) }

func (q *frontier) Pop() any {
	old := *q
	n := len(old)
	x := old[n-1]
	*q = old[:n-1]
	return x
}
