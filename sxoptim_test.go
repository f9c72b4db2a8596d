package sxoptim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miladjahani/Sxoptim/types"
)

func testFeed() types.FeedSpec {
	return types.FeedSpec{
		PLSCu:         2.0,
		PLSFlow:       100,
		ElectrolyteCu: 35,
		ExtractantVV:  10,
	}
}

// TestSimulateAllScenarios converges every named circuit on a typical heap
// leach feed.
func TestSimulateAllScenarios(t *testing.T) {
	p := NewPlant()
	for _, id := range p.Catalog.IDs() {
		prof, err := p.SimulatePlant(id, testFeed())
		require.NoError(t, err, "scenario %s", id)
		assert.True(t, prof.Converged, "scenario %s did not converge", id)
		assert.Equal(t, id, prof.Scenario)

		assert.Greater(t, prof.StrippingRatio, 0.0, "scenario %s", id)
		assert.LessOrEqual(t, prof.StrippingRatio, 1.0, "scenario %s", id)
		assert.Less(t, prof.RaffinateCu, prof.PLSCu, "scenario %s", id)
		assert.Greater(t, prof.LoadedOrganic, prof.StrippedOrganic, "scenario %s", id)
		assert.Greater(t, prof.RichElectrolyte, testFeed().ElectrolyteCu, "scenario %s", id)
	}
}

// TestOptimizeRoundTrip: simulating at the found concentration reproduces the
// target within tolerance.
func TestOptimizeRoundTrip(t *testing.T) {
	p := NewPlant()
	feed := testFeed()

	ref, err := p.SimulatePlant("C", feed)
	require.NoError(t, err)
	target := ref.StrippingRatio

	vv, prof, err := p.OptimizeForTarget(context.Background(), "C", feed, target)
	require.NoError(t, err)
	require.True(t, prof.Converged)
	assert.InDelta(t, target, prof.StrippingRatio, p.Config.RatioTol)

	feed.ExtractantVV = vv
	replay, err := p.SimulatePlant("C", feed)
	require.NoError(t, err)
	assert.InDelta(t, target, replay.StrippingRatio, p.Config.RatioTol)
}

func TestUnknownScenario(t *testing.T) {
	p := NewPlant()
	var unknown *types.UnknownScenarioError

	_, err := p.SimulatePlant("Z", testFeed())
	require.True(t, errors.As(err, &unknown))

	_, _, err = p.OptimizeForTarget(context.Background(), "Z", testFeed(), 0.5)
	require.True(t, errors.As(err, &unknown))
}

func TestUnreachableTarget(t *testing.T) {
	p := NewPlant()
	_, _, err := p.OptimizeForTarget(context.Background(), "C", testFeed(), 0.99)
	var unreachable *types.UnreachableTargetError
	require.True(t, errors.As(err, &unreachable), "got %v", err)
	assert.Less(t, unreachable.RatioMax, 0.99)
}

// TestProjectDiagram checks the series lengths: the equilibrium curve is
// sampled uniformly, the operating line has one segment per stage and the
// staircase alternates vertical and horizontal moves.
func TestProjectDiagram(t *testing.T) {
	p := NewPlant()
	prof, err := p.SimulatePlant("C", testFeed())
	require.NoError(t, err)

	proj, err := p.ProjectDiagram(prof)
	require.NoError(t, err)

	nExt := len(prof.Extraction)
	assert.Len(t, proj.EquilibriumCurve, p.Config.CurveSamples)
	assert.Len(t, proj.OperatingLine, nExt+1)
	assert.Len(t, proj.StageSteps, 2*nExt+1)
	assert.False(t, proj.Provisional)
}

func TestRecommend(t *testing.T) {
	p := NewPlant()
	recs, err := p.Recommend("C", testFeed())
	require.NoError(t, err)

	for _, r := range recs {
		assert.NotEmpty(t, r.Parameter)
		assert.NotEmpty(t, r.Message)
		assert.Equal(t, 5.0, r.ChangePct)
		assert.Greater(t, math.Abs(r.RecoveryDelta), 0.1)
	}
}
