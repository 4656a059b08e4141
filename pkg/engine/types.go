package engine

import "gonum.org/v1/gonum/spatial/r3"

// Point is the JSON wire form of a 3D position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (p Point) vec() r3.Vec { return r3.Vec{X: p.X, Y: p.Y, Z: p.Z} }

func fromVec(v r3.Vec) Point { return Point{X: v.X, Y: v.Y, Z: v.Z} }

// NearestRequest asks for the systems closest to an origin. Exactly one of
// Origin and SystemName must be set; a name resolves to that system's
// catalog position before the search runs.
type NearestRequest struct {
	Origin     *Point  `json:"origin,omitempty"`
	SystemName string  `json:"system_name,omitempty"`
	Radius     float64 `json:"radius"`
	Count      int     `json:"count"`
}

// NearestHit is one result system, with its distance to the origin.
type NearestHit struct {
	ID       uint32  `json:"id"`
	Name     string  `json:"name"`
	Position Point   `json:"position"`
	Distance float64 `json:"distance"`
}

// NearestResponse lists hits in ascending distance order, ties broken by
// ascending id, never more than the requested count.
type NearestResponse struct {
	Systems []NearestHit `json:"systems"`
}

// PathRequest asks for the minimum-fuel gate route between two system ids.
type PathRequest struct {
	StartID uint32 `json:"start_id"`
	EndID   uint32 `json:"end_id"`
}

// PathStep is one system along the route with the cumulative fuel cost
// paid to reach it.
type PathStep struct {
	ID   uint32 `json:"id"`
	Name string `json:"name"`
	Cost int    `json:"cost"`
}

// PathResponse is a complete route from start to end inclusive. Cost equals
// the number of gates traversed, i.e. len(Steps)-1.
type PathResponse struct {
	Steps []PathStep `json:"steps"`
	Cost  int        `json:"cost"`
}

// SweepRequest asks for a greedy survey tour of every system within Radius
// of a center. Exactly one of Center and SystemName must be set.
type SweepRequest struct {
	Center     *Point  `json:"center,omitempty"`
	SystemName string  `json:"system_name,omitempty"`
	Radius     float64 `json:"radius"`
}

// SweepStop is one visited system in tour order.
type SweepStop struct {
	ID   uint32 `json:"id"`
	Name string `json:"name"`
}

// SweepResponse is the visit order plus the summed length of the legs
// between consecutive stops.
type SweepResponse struct {
	Order         []SweepStop `json:"order"`
	TotalDistance float64     `json:"total_distance"`
}

// Stats describes the loaded dataset generation.
type Stats struct {
	Tag     string `json:"tag"`
	Systems int    `json:"systems"`
	Gates   int    `json:"gates"`
}
