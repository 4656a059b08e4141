// Package starmap defines the fundamental data types of the engine: the
// solar system record and the immutable catalog that every other component
// (spatial index, gate graph, sweep planner) references by index.
//
// A Catalog is built once from a Dataset and never mutated afterwards, which
// is what makes lock-free concurrent queries possible higher up the stack.
package starmap

import (
	"fmt"
	"strings"

	"github.com/tidwall/btree"
	"gonum.org/v1/gonum/spatial/r3"
)

// System is a single star system: a stable numeric id, a display name and a
// position in 3D space, in the coordinate units of the source dataset.
type System struct {
	ID   uint32 `json:"id" msgpack:"id"`
	Name string `json:"name" msgpack:"name"`
	Pos  r3.Vec `json:"pos" msgpack:"pos"`
}

// Distance returns the Euclidean distance between two systems.
func (s System) Distance(other System) float64 {
	return r3.Norm(r3.Sub(s.Pos, other.Pos))
}

// DistanceToPoint returns the Euclidean distance from the system to p.
func (s System) DistanceToPoint(p r3.Vec) float64 {
	return r3.Norm(r3.Sub(s.Pos, p))
}

// Gate is a directed jump connection between two system ids with a fixed
// traversal cost of 1. Datasets list each bidirectional gate twice, once per
// direction; the graph layer stores exactly what it is given.
type Gate struct {
	From uint32 `json:"from" msgpack:"from"`
	To   uint32 `json:"to" msgpack:"to"`
}

// Dataset is the raw, decoded form of a starmap bundle: the full system list
// plus the directed gate list. It is the single input accepted by the engine;
// validation happens when a Catalog and a gate graph are built from it.
type Dataset struct {
	// Tag identifies the provenance of the data (e.g. the upstream release
	// tag), surfaced through stats and health endpoints.
	Tag     string   `json:"tag" msgpack:"tag"`
	Systems []System `json:"systems" msgpack:"systems"`
	Gates   []Gate   `json:"gates" msgpack:"gates"`
}

// nameEntry is a key in the catalog's name index. Keys are folded to lower
// case so resolution is case-insensitive; the id component keeps entries with
// duplicate display names distinct and ordered.
type nameEntry struct {
	key   string
	id    uint32
	index int32
}

func nameLess(a, b nameEntry) bool {
	if a.key != b.key {
		return a.key < b.key
	}
	return a.id < b.id
}

// Catalog is the immutable, index-addressable collection of systems.
// Positions in the backing slice are the canonical indexes used by the
// k-d tree and the gate graph, so the slice order never changes after build.
type Catalog struct {
	systems []System
	byID    map[uint32]int32
	byName  *btree.BTreeG[nameEntry]
}

// NewCatalog builds a catalog from the given systems. The input slice is
// copied; duplicate ids are rejected because every downstream structure
// relies on the id->index mapping being unambiguous.
func NewCatalog(systems []System) (*Catalog, error) {
	c := &Catalog{
		systems: make([]System, len(systems)),
		byID:    make(map[uint32]int32, len(systems)),
		byName:  btree.NewBTreeG(nameLess),
	}
	copy(c.systems, systems)

	for i, sys := range c.systems {
		if _, dup := c.byID[sys.ID]; dup {
			return nil, fmt.Errorf("duplicate system id %d in catalog", sys.ID)
		}
		c.byID[sys.ID] = int32(i)
		c.byName.Set(nameEntry{key: strings.ToLower(sys.Name), id: sys.ID, index: int32(i)})
	}
	return c, nil
}

// Len returns the number of systems in the catalog.
func (c *Catalog) Len() int { return len(c.systems) }

// At returns the system at the given catalog index.
func (c *Catalog) At(index int32) System { return c.systems[index] }

// Systems returns the backing slice. Callers must treat it as read-only.
func (c *Catalog) Systems() []System { return c.systems }

// IndexOfID maps a system id to its catalog index.
func (c *Catalog) IndexOfID(id uint32) (int32, bool) {
	idx, ok := c.byID[id]
	return idx, ok
}

// ByID returns the system with the given id.
func (c *Catalog) ByID(id uint32) (System, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return System{}, false
	}
	return c.systems[idx], true
}

// ResolveName resolves a display name to a system, case-insensitively.
// When several systems share a name the one with the lowest id wins, so
// resolution is deterministic for a given catalog.
func (c *Catalog) ResolveName(name string) (System, bool) {
	key := strings.ToLower(name)
	var hit System
	found := false
	c.byName.Ascend(nameEntry{key: key}, func(e nameEntry) bool {
		if e.key != key {
			return false
		}
		hit = c.systems[e.index]
		found = true
		return false // lowest id is first in key order
	})
	return hit, found
}

// SearchPrefix returns up to limit systems whose name starts with prefix,
// case-insensitively, ordered by name then id. A non-positive limit returns
// an empty result.
func (c *Catalog) SearchPrefix(prefix string, limit int) []System {
	if limit <= 0 {
		return nil
	}
	key := strings.ToLower(prefix)
	out := make([]System, 0, limit)
	c.byName.Ascend(nameEntry{key: key}, func(e nameEntry) bool {
		if !strings.HasPrefix(e.key, key) {
			return false
		}
		out = append(out, c.systems[e.index])
		return len(out) < limit
	})
	return out
}
