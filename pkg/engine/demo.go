package engine

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/frontiermaps/starmap/pkg/core/starmap"
)

// DemoDataset returns the tiny built-in fallback map: four systems on a
// line-plus-spur with three bidirectional gates. The daemon falls back to
// it when no bundle is configured or a load fails, so the query surface
// never hard-fails purely for lack of data.
func DemoDataset() starmap.Dataset {
	return starmap.Dataset{
		Tag: "demo",
		Systems: []starmap.System{
			{ID: 1, Name: "Alpha", Pos: r3.Vec{X: 0, Y: 0, Z: 0}},
			{ID: 2, Name: "Beacon", Pos: r3.Vec{X: 1, Y: 0, Z: 0}},
			{ID: 3, Name: "Cinder", Pos: r3.Vec{X: 2, Y: 0, Z: 0}},
			{ID: 4, Name: "Drift", Pos: r3.Vec{X: 0, Y: 2, Z: 0}},
		},
		Gates: []starmap.Gate{
			{From: 1, To: 2}, {From: 2, To: 1},
			{From: 2, To: 3}, {From: 3, To: 2},
			{From: 1, To: 4}, {From: 4, To: 1},
		},
	}
}
