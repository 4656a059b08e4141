package starmap

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func testSystems() []System {
	return []System{
		{ID: 10, Name: "Vega", Pos: r3.Vec{X: 0, Y: 0, Z: 0}},
		{ID: 20, Name: "Altair", Pos: r3.Vec{X: 1, Y: 2, Z: 3}},
		{ID: 30, Name: "Deneb", Pos: r3.Vec{X: -4, Y: 5, Z: 0}},
	}
}

func TestNewCatalogRejectsDuplicateID(t *testing.T) {
	systems := testSystems()
	systems = append(systems, System{ID: 10, Name: "Vega II"})
	if _, err := NewCatalog(systems); err == nil {
		t.Fatal("expected duplicate id to be rejected")
	}
}

func TestCatalogLookups(t *testing.T) {
	cat, err := NewCatalog(testSystems())
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	if cat.Len() != 3 {
		t.Fatalf("Len = %d, want 3", cat.Len())
	}

	idx, ok := cat.IndexOfID(20)
	if !ok || cat.At(idx).Name != "Altair" {
		t.Fatalf("IndexOfID(20) = %d,%v", idx, ok)
	}

	if _, ok := cat.IndexOfID(99); ok {
		t.Fatal("IndexOfID(99) should not resolve")
	}

	sys, ok := cat.ByID(30)
	if !ok || sys.Name != "Deneb" {
		t.Fatalf("ByID(30) = %+v,%v", sys, ok)
	}
}

func TestResolveNameCaseInsensitive(t *testing.T) {
	cat, _ := NewCatalog(testSystems())

	for _, name := range []string{"Altair", "altair", "ALTAIR"} {
		sys, ok := cat.ResolveName(name)
		if !ok || sys.ID != 20 {
			t.Fatalf("ResolveName(%q) = %+v,%v", name, sys, ok)
		}
	}

	if _, ok := cat.ResolveName("Nowhere"); ok {
		t.Fatal("ResolveName should fail for unknown names")
	}
}

// Duplicate display names resolve to the lowest id, deterministically.
func TestResolveNameDuplicate(t *testing.T) {
	systems := []System{
		{ID: 7, Name: "Twin"},
		{ID: 3, Name: "Twin"},
		{ID: 5, Name: "Other"},
	}
	cat, err := NewCatalog(systems)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	sys, ok := cat.ResolveName("Twin")
	if !ok || sys.ID != 3 {
		t.Fatalf("ResolveName(Twin) = id %d, want 3", sys.ID)
	}
}

func TestSearchPrefix(t *testing.T) {
	systems := []System{
		{ID: 1, Name: "Nod A1"},
		{ID: 2, Name: "Nod A2"},
		{ID: 3, Name: "Nod B1"},
		{ID: 4, Name: "Other"},
	}
	cat, _ := NewCatalog(systems)

	got := cat.SearchPrefix("nod", 10)
	if len(got) != 3 {
		t.Fatalf("SearchPrefix(nod) returned %d systems, want 3", len(got))
	}
	// Ordered by folded name, then id.
	if got[0].ID != 1 || got[1].ID != 2 || got[2].ID != 3 {
		t.Fatalf("SearchPrefix order = %d,%d,%d", got[0].ID, got[1].ID, got[2].ID)
	}

	if got := cat.SearchPrefix("nod", 2); len(got) != 2 {
		t.Fatalf("limit ignored, got %d results", len(got))
	}
	if got := cat.SearchPrefix("nod", 0); got != nil {
		t.Fatal("non-positive limit should return nothing")
	}
	if got := cat.SearchPrefix("zzz", 5); len(got) != 0 {
		t.Fatal("unmatched prefix should return nothing")
	}
}

func TestDistanceHelpers(t *testing.T) {
	a := System{Pos: r3.Vec{X: 0, Y: 0, Z: 0}}
	b := System{Pos: r3.Vec{X: 3, Y: 4, Z: 0}}

	if d := a.Distance(b); d != 5 {
		t.Fatalf("Distance = %g, want 5", d)
	}
	if d := b.DistanceToPoint(r3.Vec{}); d != 5 {
		t.Fatalf("DistanceToPoint = %g, want 5", d)
	}
}
