package sweep

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/frontiermaps/starmap/pkg/core/kdtree"
	"github.com/frontiermaps/starmap/pkg/core/starmap"
)

func buildFixture(t testing.TB, systems []starmap.System) (*starmap.Catalog, *kdtree.Tree) {
	t.Helper()
	cat, err := starmap.NewCatalog(systems)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return cat, kdtree.Build(cat)
}

func TestPlanSweepLine(t *testing.T) {
	cat, tree := buildFixture(t, []starmap.System{
		{ID: 1, Name: "A", Pos: r3.Vec{X: 0, Y: 0, Z: 0}},
		{ID: 2, Name: "B", Pos: r3.Vec{X: 1, Y: 0, Z: 0}},
		{ID: 3, Name: "C", Pos: r3.Vec{X: 2, Y: 0, Z: 0}},
		{ID: 4, Name: "D", Pos: r3.Vec{X: 10, Y: 10, Z: 10}},
	})

	plan, err := PlanSweep(cat, tree, r3.Vec{}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(plan.Order) != 3 || plan.Order[0] != 1 || plan.Order[1] != 2 || plan.Order[2] != 3 {
		t.Fatalf("Order = %v, want [1 2 3]", plan.Order)
	}
	if math.Abs(plan.TotalDistance-2.0) > 1e-12 {
		t.Fatalf("TotalDistance = %g, want 2", plan.TotalDistance)
	}
}

func TestPlanSweepEmpty(t *testing.T) {
	cat, tree := buildFixture(t, []starmap.System{
		{ID: 1, Name: "A", Pos: r3.Vec{X: 50, Y: 0, Z: 0}},
	})

	plan, err := PlanSweep(cat, tree, r3.Vec{}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(plan.Order) != 0 || plan.TotalDistance != 0 {
		t.Fatalf("empty sweep = %+v", plan)
	}

	// Zero radius is a valid empty query.
	plan, err = PlanSweep(cat, tree, r3.Vec{X: 50}, 0)
	if err != nil || len(plan.Order) != 0 {
		t.Fatalf("zero radius sweep = %+v, %v", plan, err)
	}

	if _, err := PlanSweep(cat, tree, r3.Vec{}, -1); err == nil {
		t.Fatal("negative radius must be rejected")
	}
}

// Equidistant candidates are taken in ascending id order.
func TestPlanSweepTieBreak(t *testing.T) {
	cat, tree := buildFixture(t, []starmap.System{
		{ID: 5, Name: "E", Pos: r3.Vec{X: 1, Y: 0, Z: 0}},
		{ID: 2, Name: "B", Pos: r3.Vec{X: -1, Y: 0, Z: 0}},
		{ID: 9, Name: "I", Pos: r3.Vec{X: 0, Y: 1, Z: 0}},
	})

	plan, err := PlanSweep(cat, tree, r3.Vec{}, 2)
	if err != nil {
		t.Fatal(err)
	}
	// All three are 1 away from the center, so the lowest id (2) goes
	// first. From (-1,0,0), id 9 is closer than id 5.
	if len(plan.Order) != 3 || plan.Order[0] != 2 || plan.Order[1] != 9 || plan.Order[2] != 5 {
		t.Fatalf("Order = %v, want [2 9 5]", plan.Order)
	}
}

// The plan must visit every candidate exactly once and report the literal
// sum of the leg lengths between consecutive stops.
func TestPlanSweepPermutationAndDistance(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	systems := make([]starmap.System, 80)
	for i := range systems {
		systems[i] = starmap.System{
			ID:   uint32(i + 1),
			Name: "S",
			Pos: r3.Vec{
				X: rng.Float64()*40 - 20,
				Y: rng.Float64()*40 - 20,
				Z: rng.Float64()*40 - 20,
			},
		}
	}
	cat, tree := buildFixture(t, systems)

	center := r3.Vec{X: 2, Y: -3, Z: 4}
	const radius = 18.0
	plan, err := PlanSweep(cat, tree, center, radius)
	if err != nil {
		t.Fatal(err)
	}

	// Candidate set check against a linear scan.
	want := make(map[uint32]bool)
	for _, sys := range systems {
		if sys.DistanceToPoint(center) <= radius {
			want[sys.ID] = true
		}
	}
	if len(plan.Order) != len(want) {
		t.Fatalf("visited %d systems, candidate set has %d", len(plan.Order), len(want))
	}
	seen := make(map[uint32]bool)
	for _, id := range plan.Order {
		if !want[id] {
			t.Fatalf("visited %d outside the radius", id)
		}
		if seen[id] {
			t.Fatalf("visited %d twice", id)
		}
		seen[id] = true
	}

	// Distance check: literal sum of consecutive legs.
	var total float64
	for i := 1; i < len(plan.Order); i++ {
		a, _ := cat.ByID(plan.Order[i-1])
		b, _ := cat.ByID(plan.Order[i])
		total += a.Distance(b)
	}
	if math.Abs(total-plan.TotalDistance) > 1e-9 {
		t.Fatalf("TotalDistance = %g, legs sum to %g", plan.TotalDistance, total)
	}
}
