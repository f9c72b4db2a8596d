// Package sxoptim is a digital twin of copper solvent-extraction circuits.
// Given a named circuit configuration and a leach-liquor feed it converges the
// countercurrent stage balances, reports circuit performance, searches for the
// extractant concentration meeting a target stripping ratio, and projects
// McCabe-Thiele diagram series for external renderers.
package sxoptim

import (
	"context"
	"fmt"
	"math"

	"github.com/miladjahani/Sxoptim/flowsheet"
	"github.com/miladjahani/Sxoptim/isotherm"
	"github.com/miladjahani/Sxoptim/mccabe"
	"github.com/miladjahani/Sxoptim/seeker"
	"github.com/miladjahani/Sxoptim/solver"
	"github.com/miladjahani/Sxoptim/types"
)

// Plant bundles the scenario catalog, the equilibrium model factory and the
// numeric configuration. The zero value is not usable; create with NewPlant
// and adjust fields before the first solve.
type Plant struct {
	Catalog  *flowsheet.Catalog
	ModelFor solver.ModelFactory
	Config   types.Config
}

// NewPlant creates a plant over the built-in catalog, the Lix984N model and
// default tolerances.
func NewPlant() *Plant {
	return &Plant{
		Catalog:  flowsheet.DefaultCatalog(),
		ModelFor: isotherm.Default,
		Config:   types.DefaultConfig(),
	}
}

// SimulatePlant runs plant mode: the extractant concentration is taken from
// the feed and a converged profile is returned. Callers must check
// Converged on the profile; structural input problems return an error.
func (p *Plant) SimulatePlant(id types.ScenarioID, feed types.FeedSpec) (*types.StageProfile, error) {
	topo, err := p.Catalog.Get(id)
	if err != nil {
		return nil, err
	}
	prof, err := solver.New(topo, p.ModelFor, p.Config).Solve(feed)
	if err != nil {
		return nil, err
	}
	prof.Scenario = id
	return prof, nil
}

// OptimizeForTarget runs optimization mode: the extractant concentration in
// the feed is ignored and searched for instead, so the achieved stripping
// ratio matches target within the configured tolerance.
func (p *Plant) OptimizeForTarget(ctx context.Context, id types.ScenarioID, feed types.FeedSpec, target float64) (float64, *types.StageProfile, error) {
	topo, err := p.Catalog.Get(id)
	if err != nil {
		return 0, nil, err
	}
	s := solver.New(topo, p.ModelFor, p.Config)
	vv, prof, err := seeker.New(s, p.Config).Seek(ctx, feed, target)
	if err != nil {
		return vv, prof, err
	}
	prof.Scenario = id
	return vv, prof, nil
}

// ProjectDiagram produces the McCabe-Thiele series for a profile.
func (p *Plant) ProjectDiagram(prof *types.StageProfile) (mccabe.Projection, error) {
	model, err := p.ModelFor(prof.ExtractantVV)
	if err != nil {
		return mccabe.Projection{}, err
	}
	return mccabe.Project(prof, model, p.Config), nil
}

// Recommendation reports how a small input change moves circuit recovery.
type Recommendation struct {
	Parameter     string
	ChangePct     float64 // applied perturbation, percent
	RecoveryDelta float64 // extraction recovery change, percentage points
	Message       string
}

// Recommend perturbs the main operating inputs by 5% and reports the
// extraction-recovery sensitivities that exceed a tenth of a point. An empty
// slice means the circuit is insensitive to small input changes.
func (p *Plant) Recommend(id types.ScenarioID, feed types.FeedSpec) ([]Recommendation, error) {
	base, err := p.SimulatePlant(id, feed)
	if err != nil {
		return nil, err
	}
	const delta = 0.05

	perturb := []struct {
		name  string
		apply func(types.FeedSpec) types.FeedSpec
	}{
		{"PLS copper", func(f types.FeedSpec) types.FeedSpec { f.PLSCu *= 1 + delta; return f }},
		{"extractant concentration", func(f types.FeedSpec) types.FeedSpec { f.ExtractantVV *= 1 + delta; return f }},
		{"PLS flow", func(f types.FeedSpec) types.FeedSpec { f.PLSFlow *= 1 + delta; return f }},
	}

	var recs []Recommendation
	for _, pr := range perturb {
		prof, err := p.SimulatePlant(id, pr.apply(feed))
		if err != nil {
			continue // a perturbation outside the valid range is not a recommendation
		}
		d := (prof.ExtractionRecovery - base.ExtractionRecovery) * 100
		if math.Abs(d) <= 0.1 {
			continue
		}
		direction := "raises"
		if d < 0 {
			direction = "lowers"
		}
		recs = append(recs, Recommendation{
			Parameter:     pr.name,
			ChangePct:     delta * 100,
			RecoveryDelta: d,
			Message: fmt.Sprintf("a %.0f%% increase in %s %s extraction recovery by about %.2f points",
				delta*100, pr.name, direction, math.Abs(d)),
		})
	}
	return recs, nil
}
