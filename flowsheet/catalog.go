package flowsheet

import (
	"sort"

	"github.com/miladjahani/Sxoptim/types"
)

// Catalog maps scenario identifiers to topologies. Built once at startup and
// read-only afterwards; Clone before merging user definitions.
type Catalog struct {
	entries map[types.ScenarioID]*Topology
}

// scenarioTable defines the named circuits A-R as data: series circuits,
// series-parallel splits and raffinate-recycle variants over 2-4 extraction
// stages, with one stripping stage for odd letters and two for even ones.
var scenarioTable = map[types.ScenarioID]Topology{
	// series
	"A": {ExtractionStages: 2, StrippingStages: 1, OAExtraction: 1.0, OAStripping: 1.5},
	"B": {ExtractionStages: 2, StrippingStages: 2, OAExtraction: 1.0, OAStripping: 1.5},
	"C": {ExtractionStages: 3, StrippingStages: 1, OAExtraction: 1.0, OAStripping: 1.5},
	"D": {ExtractionStages: 3, StrippingStages: 2, OAExtraction: 1.0, OAStripping: 1.5},

	// series-parallel: part of the PLS skips stage 1
	"E": {ExtractionStages: 3, StrippingStages: 1, OAExtraction: 1.0, OAStripping: 1.5,
		Bypasses: []Bypass{{ToStage: 2, Fraction: 0.4}}},
	"F": {ExtractionStages: 3, StrippingStages: 2, OAExtraction: 1.0, OAStripping: 1.5,
		Bypasses: []Bypass{{ToStage: 2, Fraction: 0.4}}},

	// raffinate recycle ahead of the feed
	"G": {ExtractionStages: 3, StrippingStages: 1, OAExtraction: 1.0, OAStripping: 1.5, RaffinateRecycle: 0.10},
	"H": {ExtractionStages: 3, StrippingStages: 2, OAExtraction: 1.0, OAStripping: 1.5, RaffinateRecycle: 0.10},

	// series-parallel, deeper split
	"I": {ExtractionStages: 3, StrippingStages: 1, OAExtraction: 1.0, OAStripping: 1.5,
		Bypasses: []Bypass{{ToStage: 3, Fraction: 0.25}}},
	"J": {ExtractionStages: 3, StrippingStages: 2, OAExtraction: 1.0, OAStripping: 1.5,
		Bypasses: []Bypass{{ToStage: 3, Fraction: 0.25}}},

	// four-stage series
	"K": {ExtractionStages: 4, StrippingStages: 1, OAExtraction: 1.0, OAStripping: 1.5},
	"L": {ExtractionStages: 4, StrippingStages: 2, OAExtraction: 1.0, OAStripping: 1.5},

	// four-stage series-parallel
	"M": {ExtractionStages: 4, StrippingStages: 1, OAExtraction: 1.0, OAStripping: 1.5,
		Bypasses: []Bypass{{ToStage: 3, Fraction: 0.5}}},
	"N": {ExtractionStages: 4, StrippingStages: 2, OAExtraction: 1.0, OAStripping: 1.5,
		Bypasses: []Bypass{{ToStage: 3, Fraction: 0.5}}},

	// four-stage with raffinate recycle
	"O": {ExtractionStages: 4, StrippingStages: 1, OAExtraction: 1.0, OAStripping: 1.5, RaffinateRecycle: 0.15},
	"P": {ExtractionStages: 4, StrippingStages: 2, OAExtraction: 1.0, OAStripping: 1.5, RaffinateRecycle: 0.15},

	// four-stage double split
	"Q": {ExtractionStages: 4, StrippingStages: 1, OAExtraction: 1.0, OAStripping: 1.5,
		Bypasses: []Bypass{{ToStage: 2, Fraction: 0.25}, {ToStage: 3, Fraction: 0.25}}},
	"R": {ExtractionStages: 4, StrippingStages: 2, OAExtraction: 1.0, OAStripping: 1.5,
		Bypasses: []Bypass{{ToStage: 2, Fraction: 0.25}, {ToStage: 3, Fraction: 0.25}}},
}

// DefaultCatalog builds the catalog of the named scenarios. The table is
// validated through New, so a malformed entry fails loudly at startup.
func DefaultCatalog() *Catalog {
	c := &Catalog{entries: make(map[types.ScenarioID]*Topology, len(scenarioTable))}
	for id, t := range scenarioTable {
		topo, err := New(t)
		if err != nil {
			panic(err) // table is compiled in; reaching this is a programming error
		}
		c.entries[id] = topo
	}
	return c
}

// Get resolves a scenario identifier.
func (c *Catalog) Get(id types.ScenarioID) (*Topology, error) {
	t, ok := c.entries[id]
	if !ok {
		return nil, &types.UnknownScenarioError{ID: id}
	}
	return t, nil
}

// IDs lists the registered identifiers in order.
func (c *Catalog) IDs() []types.ScenarioID {
	ids := make([]types.ScenarioID, 0, len(c.entries))
	for id := range c.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Clone copies the catalog so user-supplied definitions can be merged without
// touching the shared default.
func (c *Catalog) Clone() *Catalog {
	cp := &Catalog{entries: make(map[types.ScenarioID]*Topology, len(c.entries))}
	for id, t := range c.entries {
		cp.entries[id] = t
	}
	return cp
}

// Put registers or replaces a topology. The topology must come from New.
func (c *Catalog) Put(id types.ScenarioID, t *Topology) {
	c.entries[id] = t
}
