// Package mccabe projects converged stage profiles onto McCabe-Thiele
// coordinates: the equilibrium curve, the operating line through the actual
// stage streams, and the stage staircase between them. Projection is a pure
// transformation; rendering collaborators consume the emitted series.
package mccabe

import (
	"github.com/miladjahani/Sxoptim/isotherm"
	"github.com/miladjahani/Sxoptim/types"
)

// Projection is the diagram data for the extraction train of one profile.
type Projection struct {
	EquilibriumCurve []types.Point // dense samples of the loading isotherm
	OperatingLine    []types.Point // passing-stream pairs, raffinate end first
	StageSteps       []types.Point // staircase between operating line and curve

	// Provisional marks a projection built from a non-convergent profile:
	// the series show the best available values, not a converged balance.
	Provisional bool
}

// Project builds the diagram series for prof. The equilibrium curve spans
// [0, 1.1x] of the largest aqueous concentration seen, so the whole operating
// region is covered.
func Project(prof *types.StageProfile, model isotherm.Model, cfg types.Config) Projection {
	cfg = cfg.Norm()
	n := len(prof.Extraction)

	xmax := prof.PLSCu
	for _, st := range prof.Extraction {
		if st.AqueousIn.Copper > xmax {
			xmax = st.AqueousIn.Copper
		}
	}
	xmax *= 1.1

	curve := make([]types.Point, cfg.CurveSamples)
	for i := range curve {
		x := xmax * float64(i) / float64(cfg.CurveSamples-1)
		curve[i] = types.Point{Aqueous: x, Organic: model.Loading(x)}
	}

	// operating line: the streams passing each other at every stage boundary,
	// from (raffinate, stripped organic) up to (feed, loaded organic)
	op := make([]types.Point, 0, n+1)
	for i := n - 1; i >= 0; i-- {
		st := prof.Extraction[i]
		op = append(op, types.Point{Aqueous: st.AqueousOut.Copper, Organic: st.OrganicIn.Copper})
	}
	first := prof.Extraction[0]
	op = append(op, types.Point{Aqueous: first.AqueousIn.Copper, Organic: first.OrganicOut.Copper})

	// staircase: from the feed corner, horizontal to each stage's settled
	// point, vertical back down to the operating line
	steps := make([]types.Point, 0, 2*n+1)
	steps = append(steps, types.Point{Aqueous: first.AqueousIn.Copper, Organic: first.OrganicOut.Copper})
	for _, st := range prof.Extraction {
		steps = append(steps,
			types.Point{Aqueous: st.AqueousOut.Copper, Organic: st.OrganicOut.Copper},
			types.Point{Aqueous: st.AqueousOut.Copper, Organic: st.OrganicIn.Copper},
		)
	}

	return Projection{
		EquilibriumCurve: curve,
		OperatingLine:    op,
		StageSteps:       steps,
		Provisional:      !prof.Converged,
	}
}
