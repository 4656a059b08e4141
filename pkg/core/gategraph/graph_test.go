package gategraph

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/frontiermaps/starmap/pkg/core/starmap"
)

func lineCatalog(t testing.TB) *starmap.Catalog {
	t.Helper()
	cat, err := starmap.NewCatalog([]starmap.System{
		{ID: 1, Name: "A", Pos: r3.Vec{X: 0, Y: 0, Z: 0}},
		{ID: 2, Name: "B", Pos: r3.Vec{X: 1, Y: 0, Z: 0}},
		{ID: 3, Name: "C", Pos: r3.Vec{X: 2, Y: 0, Z: 0}},
		{ID: 4, Name: "D", Pos: r3.Vec{X: 10, Y: 10, Z: 10}},
	})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return cat
}

func bothWays(pairs ...[2]uint32) []starmap.Gate {
	gates := make([]starmap.Gate, 0, 2*len(pairs))
	for _, p := range pairs {
		gates = append(gates, starmap.Gate{From: p[0], To: p[1]}, starmap.Gate{From: p[1], To: p[0]})
	}
	return gates
}

func TestBuildRejectsUnknownIDs(t *testing.T) {
	cat := lineCatalog(t)

	if _, err := Build(cat, []starmap.Gate{{From: 1, To: 99}}); err == nil {
		t.Fatal("gate to unknown id must fail the build")
	}
	if _, err := Build(cat, []starmap.Gate{{From: 99, To: 1}}); err == nil {
		t.Fatal("gate from unknown id must fail the build")
	}
}

func TestNeighbors(t *testing.T) {
	cat := lineCatalog(t)
	g, err := Build(cat, bothWays([2]uint32{1, 2}, [2]uint32{2, 3}))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	nb, err := g.Neighbors(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(nb) != 2 || nb[0] != 1 || nb[1] != 3 {
		t.Fatalf("Neighbors(2) = %v, want [1 3]", nb)
	}

	// Isolated system: empty set, not an error.
	nb, err = g.Neighbors(4)
	if err != nil || len(nb) != 0 {
		t.Fatalf("Neighbors(4) = %v, %v", nb, err)
	}

	if _, err := g.Neighbors(99); err == nil {
		t.Fatal("Neighbors must reject unknown ids")
	}
}

func TestBuildDeduplicatesGates(t *testing.T) {
	cat := lineCatalog(t)
	g, err := Build(cat, []starmap.Gate{
		{From: 1, To: 2}, {From: 1, To: 2}, {From: 1, To: 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	if g.GateCount() != 1 {
		t.Fatalf("GateCount = %d, want 1", g.GateCount())
	}
}

func TestMaxGateSpan(t *testing.T) {
	cat := lineCatalog(t)

	g, _ := Build(cat, nil)
	if g.MaxGateSpan() != 0 {
		t.Fatalf("empty graph span = %g, want 0", g.MaxGateSpan())
	}

	// Longest gate is B <-> D.
	g, _ = Build(cat, bothWays([2]uint32{1, 2}, [2]uint32{2, 4}))
	want := math.Sqrt(9*9 + 10*10 + 10*10)
	if math.Abs(g.MaxGateSpan()-want) > 1e-12 {
		t.Fatalf("MaxGateSpan = %g, want %g", g.MaxGateSpan(), want)
	}
}
