package gategraph

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/frontiermaps/starmap/pkg/core/starmap"
)

func TestFindPathTrivial(t *testing.T) {
	cat := lineCatalog(t)
	g, _ := Build(cat, bothWays([2]uint32{1, 2}, [2]uint32{2, 3}))

	steps, err := g.FindPath(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(steps) != 1 || steps[0].ID != 2 || steps[0].Cost != 0 {
		t.Fatalf("FindPath(2,2) = %+v", steps)
	}
}

func TestFindPathLine(t *testing.T) {
	cat := lineCatalog(t)
	g, _ := Build(cat, bothWays([2]uint32{1, 2}, [2]uint32{2, 3}))

	steps, err := g.FindPath(1, 3)
	if err != nil {
		t.Fatal(err)
	}
	wantIDs := []uint32{1, 2, 3}
	if len(steps) != len(wantIDs) {
		t.Fatalf("route length %d, want %d", len(steps), len(wantIDs))
	}
	for i, st := range steps {
		if st.ID != wantIDs[i] || st.Cost != i {
			t.Fatalf("step %d = %+v", i, st)
		}
	}
}

func TestFindPathUnreachable(t *testing.T) {
	cat := lineCatalog(t)
	g, _ := Build(cat, bothWays([2]uint32{1, 2}, [2]uint32{2, 3}))

	if _, err := g.FindPath(1, 4); err != ErrNoRoute {
		t.Fatalf("FindPath(1,4) err = %v, want ErrNoRoute", err)
	}
}

func TestFindPathUnknownIDs(t *testing.T) {
	cat := lineCatalog(t)
	g, _ := Build(cat, nil)

	if _, err := g.FindPath(99, 1); err == nil || err == ErrNoRoute {
		t.Fatalf("unknown start err = %v", err)
	}
	if _, err := g.FindPath(1, 99); err == nil || err == ErrNoRoute {
		t.Fatalf("unknown end err = %v", err)
	}
}

// bfsCost is the reference: plain breadth-first search hop count, -1 when
// unreachable.
func bfsCost(g *Graph, startID, endID uint32) int {
	cat := g.Catalog()
	start, _ := cat.IndexOfID(startID)
	goal, _ := cat.IndexOfID(endID)

	dist := make([]int, cat.Len())
	for i := range dist {
		dist[i] = -1
	}
	dist[start] = 0
	queue := []int32{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == goal {
			return dist[cur]
		}
		for _, nb := range g.neighborIndexes(cur) {
			if dist[nb] < 0 {
				dist[nb] = dist[cur] + 1
				queue = append(queue, nb)
			}
		}
	}
	return -1
}

// randomGraph builds a connected-ish random graph: a spanning chain plus
// random extra gates, all bidirectional, positions random so the heuristic
// has real work to do.
func randomGraph(t testing.TB, n int, extra int, seed int64) *Graph {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))

	systems := make([]starmap.System, n)
	for i := range systems {
		systems[i] = starmap.System{
			ID:   uint32(i + 1),
			Name: "S",
			Pos: r3.Vec{
				X: rng.Float64() * 100,
				Y: rng.Float64() * 100,
				Z: rng.Float64() * 100,
			},
		}
	}
	cat, err := starmap.NewCatalog(systems)
	if err != nil {
		t.Fatal(err)
	}

	var gates []starmap.Gate
	add := func(a, b uint32) {
		gates = append(gates, starmap.Gate{From: a, To: b}, starmap.Gate{From: b, To: a})
	}
	for i := 1; i < n; i++ {
		add(uint32(i), uint32(i+1))
	}
	for i := 0; i < extra; i++ {
		a := uint32(rng.Intn(n) + 1)
		b := uint32(rng.Intn(n) + 1)
		if a != b {
			add(a, b)
		}
	}

	g, err := Build(cat, gates)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// A* with the gate-span heuristic must return exactly the BFS-optimal hop
// count for every pair.
func TestFindPathOptimality(t *testing.T) {
	g := randomGraph(t, 60, 80, 42)

	for start := uint32(1); start <= 60; start += 3 {
		for end := uint32(1); end <= 60; end += 5 {
			want := bfsCost(g, start, end)
			steps, err := g.FindPath(start, end)
			if want < 0 {
				if err != ErrNoRoute {
					t.Fatalf("FindPath(%d,%d) err = %v, want ErrNoRoute", start, end, err)
				}
				continue
			}
			if err != nil {
				t.Fatalf("FindPath(%d,%d): %v", start, end, err)
			}
			got := steps[len(steps)-1].Cost
			if got != want {
				t.Fatalf("FindPath(%d,%d) cost = %d, BFS says %d", start, end, got, want)
			}
			if got != len(steps)-1 {
				t.Fatalf("cost %d inconsistent with %d steps", got, len(steps))
			}
		}
	}
}

// Each consecutive pair along a returned route must be directly linked.
func TestFindPathFollowsGates(t *testing.T) {
	g := randomGraph(t, 40, 30, 7)

	steps, err := g.FindPath(1, 40)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(steps); i++ {
		nb, err := g.Neighbors(steps[i-1].ID)
		if err != nil {
			t.Fatal(err)
		}
		linked := false
		for _, id := range nb {
			if id == steps[i].ID {
				linked = true
				break
			}
		}
		if !linked {
			t.Fatalf("route jumps %d -> %d without a gate", steps[i-1].ID, steps[i].ID)
		}
	}
}

// Zero-heuristic graphs (no gates means no span) still work: the search
// degrades to uniform-cost expansion.
func TestFindPathZeroHeuristic(t *testing.T) {
	systems := []starmap.System{
		{ID: 1, Name: "A"},
		{ID: 2, Name: "B"},
		{ID: 3, Name: "C"},
	}
	cat, _ := starmap.NewCatalog(systems)
	// All systems at the origin: maxSpan is 0, heuristic must disable.
	g, err := Build(cat, bothWays([2]uint32{1, 2}, [2]uint32{2, 3}))
	if err != nil {
		t.Fatal(err)
	}
	if g.MaxGateSpan() != 0 {
		t.Fatalf("MaxGateSpan = %g, want 0", g.MaxGateSpan())
	}

	steps, err := g.FindPath(1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if steps[len(steps)-1].Cost != 2 {
		t.Fatalf("cost = %d, want 2", steps[len(steps)-1].Cost)
	}
}

func BenchmarkFindPath(b *testing.B) {
	g := randomGraph(b, 2000, 3000, 9)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := g.FindPath(1, 2000); err != nil {
			b.Fatal(err)
		}
	}
}
