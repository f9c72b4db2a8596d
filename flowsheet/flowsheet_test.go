package flowsheet

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miladjahani/Sxoptim/types"
)

// TestCatalogTotality: every identifier A-R resolves to a valid topology with
// at least one extraction stage.
func TestCatalogTotality(t *testing.T) {
	c := DefaultCatalog()
	ids := c.IDs()
	require.Len(t, ids, 18)

	for ch := 'A'; ch <= 'R'; ch++ {
		id := types.ScenarioID(string(ch))
		topo, err := c.Get(id)
		require.NoError(t, err, "scenario %s", id)
		assert.GreaterOrEqual(t, topo.ExtractionStages, 1, "scenario %s", id)
		assert.GreaterOrEqual(t, topo.StrippingStages, 1, "scenario %s", id)
		assert.Greater(t, topo.OAExtraction, 0.0, "scenario %s", id)
		assert.Greater(t, topo.OAStripping, 0.0, "scenario %s", id)
	}
}

// TestCatalogStageCounts pins the stage layout of the named set: odd letters
// one stripping stage, even letters two, extraction growing 2 to 4.
func TestCatalogStageCounts(t *testing.T) {
	c := DefaultCatalog()
	for i, ch := 0, 'A'; ch <= 'R'; i, ch = i+1, ch+1 {
		topo, err := c.Get(types.ScenarioID(string(ch)))
		require.NoError(t, err)
		wantStrip := 1 + i%2
		assert.Equal(t, wantStrip, topo.StrippingStages, "scenario %c", ch)
	}
	for _, tc := range []struct {
		id  types.ScenarioID
		ext int
	}{
		{"A", 2}, {"B", 2}, {"C", 3}, {"J", 3}, {"K", 4}, {"R", 4},
	} {
		topo, err := c.Get(tc.id)
		require.NoError(t, err)
		assert.Equal(t, tc.ext, topo.ExtractionStages, "scenario %s", tc.id)
	}
}

func TestCatalogUnknownScenario(t *testing.T) {
	c := DefaultCatalog()
	_, err := c.Get("Z")
	var unknown *types.UnknownScenarioError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, types.ScenarioID("Z"), unknown.ID)
}

// TestNewValidation rejects every malformed topology with a
// ConfigurationError.
func TestNewValidation(t *testing.T) {
	base := Topology{ExtractionStages: 3, StrippingStages: 1, OAExtraction: 1, OAStripping: 1.5}

	cases := map[string]func(Topology) Topology{
		"zero extraction stages": func(t Topology) Topology { t.ExtractionStages = 0; return t },
		"zero stripping stages":  func(t Topology) Topology { t.StrippingStages = 0; return t },
		"negative O/A":           func(t Topology) Topology { t.OAExtraction = -1; return t },
		"zero strip O/A":         func(t Topology) Topology { t.OAStripping = 0; return t },
		"bypass into stage 1":    func(t Topology) Topology { t.Bypasses = []Bypass{{ToStage: 1, Fraction: 0.3}}; return t },
		"bypass past last stage": func(t Topology) Topology { t.Bypasses = []Bypass{{ToStage: 4, Fraction: 0.3}}; return t },
		"bypass fraction 1":      func(t Topology) Topology { t.Bypasses = []Bypass{{ToStage: 2, Fraction: 1}}; return t },
		"bypasses take all flow": func(t Topology) Topology {
			t.Bypasses = []Bypass{{ToStage: 2, Fraction: 0.6}, {ToStage: 3, Fraction: 0.5}}
			return t
		},
		"full raffinate recycle": func(t Topology) Topology { t.RaffinateRecycle = 1; return t },
	}
	for name, mutate := range cases {
		_, err := New(mutate(base))
		var cfg *types.ConfigurationError
		assert.True(t, errors.As(err, &cfg), "%s: got %v", name, err)
	}

	topo, err := New(base)
	require.NoError(t, err)
	require.NotNil(t, topo)
}

// TestBypassInto distributes the feed across split stages.
func TestBypassInto(t *testing.T) {
	topo, err := New(Topology{
		ExtractionStages: 4,
		StrippingStages:  1,
		OAExtraction:     1,
		OAStripping:      1.5,
		Bypasses:         []Bypass{{ToStage: 2, Fraction: 0.25}, {ToStage: 3, Fraction: 0.25}},
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.5, topo.BypassInto(1), 1e-12)
	assert.InDelta(t, 0.25, topo.BypassInto(2), 1e-12)
	assert.InDelta(t, 0.25, topo.BypassInto(3), 1e-12)
	assert.Zero(t, topo.BypassInto(4))

	total := 0.0
	for i := 1; i <= topo.ExtractionStages; i++ {
		total += topo.BypassInto(i)
	}
	assert.True(t, math.Abs(total-1) < 1e-12, "splits must cover the whole feed")
}

// TestTopologyImmutable: the constructor copies routing so later mutation of
// the input cannot leak into a registered topology.
func TestTopologyImmutable(t *testing.T) {
	in := Topology{
		ExtractionStages: 3,
		StrippingStages:  1,
		OAExtraction:     1,
		OAStripping:      1.5,
		Bypasses:         []Bypass{{ToStage: 2, Fraction: 0.4}},
	}
	topo, err := New(in)
	require.NoError(t, err)

	in.Bypasses[0].Fraction = 0.9
	assert.InDelta(t, 0.4, topo.Bypasses[0].Fraction, 1e-12)
}

func TestCatalogCloneIsolation(t *testing.T) {
	c := DefaultCatalog()
	cp := c.Clone()

	topo, err := New(Topology{ExtractionStages: 5, StrippingStages: 2, OAExtraction: 1, OAStripping: 1.5})
	require.NoError(t, err)
	cp.Put("X", topo)

	_, err = cp.Get("X")
	assert.NoError(t, err)
	_, err = c.Get("X")
	assert.Error(t, err, "clone must not leak into the shared catalog")
}
