// Package solver computes converged stage profiles for countercurrent SX
// circuits. Countercurrent staging couples every stage to its neighbours, so
// each phase is solved by fixed-point sweeps over an indexed stage array, and
// the two phases are coupled through the circulating organic in an outer
// alternating loop.
package solver

import (
	"gonum.org/v1/gonum/floats"

	"github.com/miladjahani/Sxoptim/flowsheet"
	"github.com/miladjahani/Sxoptim/isotherm"
	"github.com/miladjahani/Sxoptim/types"
)

// ModelFactory builds an equilibrium model for an extractant concentration.
type ModelFactory func(vv float64) (isotherm.Model, error)

// CounterCurrent solves one topology. Instances are cheap and carry no state
// between runs; independent Solve calls may run concurrently.
type CounterCurrent struct {
	topo     *flowsheet.Topology
	modelFor ModelFactory
	cfg      types.Config
}

// New creates a solver for a validated topology.
func New(topo *flowsheet.Topology, modelFor ModelFactory, cfg types.Config) *CounterCurrent {
	return &CounterCurrent{topo: topo, modelFor: modelFor, cfg: cfg.Norm()}
}

// phase holds the sweep state of one stage sequence. Arrays are indexed in
// aqueous flow order for extraction and organic flow order for stripping, and
// kept warm across outer-loop iterations.
type phase struct {
	aqOut  []float64 // outgoing aqueous concentration per stage
	orgOut []float64 // outgoing organic concentration per stage
	deltas []float64 // per-sweep change scratch
}

func newPhase(n int, aq0, org0 float64) *phase {
	p := &phase{
		aqOut:  make([]float64, n),
		orgOut: make([]float64, n),
		deltas: make([]float64, 2*n),
	}
	for i := range p.aqOut {
		p.aqOut[i] = aq0
		p.orgOut[i] = org0
	}
	return p
}

// Solve computes a stage profile for the feed. A profile is returned even
// when the iteration budget runs out; callers must check Converged.
func (s *CounterCurrent) Solve(feed types.FeedSpec) (*types.StageProfile, error) {
	if err := feed.Validate(); err != nil {
		return nil, err
	}
	if feed.ExtractantVV <= 0 {
		return nil, &types.InvalidInputError{Field: "ExtractantVV", Value: feed.ExtractantVV, Reason: "extractant concentration must be positive"}
	}
	model, err := s.modelFor(feed.ExtractantVV)
	if err != nil {
		return nil, err
	}

	effExt := feed.MixerEffExt
	if effExt == 0 {
		effExt = s.cfg.DefaultMixerEff
	}
	effStrip := feed.MixerEffStrip
	if effStrip == 0 {
		effStrip = s.cfg.DefaultMixerEff
	}

	orgFlow := feed.PLSFlow * s.topo.OAExtraction
	elecFlow := feed.ElectrolyteFlow
	if elecFlow == 0 {
		elecFlow = orgFlow / s.topo.OAStripping
	}

	nExt, nStr := s.topo.ExtractionStages, s.topo.StrippingStages
	ext := newPhase(nExt, feed.PLSCu, model.Stripped(feed.ElectrolyteCu))
	str := newPhase(nStr, feed.ElectrolyteCu, model.Stripped(feed.ElectrolyteCu))

	// circulating organic and recycled raffinate estimates, refined by the
	// joint loop
	so := model.Stripped(feed.ElectrolyteCu)
	raff := feed.PLSCu

	converged := false
	totalSweeps := 0
	feedCu, feedFlow := feed.PLSCu, feed.PLSFlow
	for outer := 0; outer < s.cfg.MaxOuter; outer++ {
		// blend recycled raffinate into the fresh feed
		recFlow := s.topo.RaffinateRecycle * feed.PLSFlow
		feedFlow = feed.PLSFlow + recFlow
		feedCu = feed.PLSCu
		if recFlow > 0 {
			feedCu = (feed.PLSCu*feed.PLSFlow + raff*recFlow) / feedFlow
		}

		extOK, extSweeps := s.sweepExtraction(ext, model, feedCu, feedFlow, orgFlow, so, effExt)
		mlNew := ext.orgOut[0]

		strOK, strSweeps := s.sweepStripping(str, model, mlNew, feed.ElectrolyteCu, elecFlow, orgFlow, effStrip)
		soNew := str.orgOut[nStr-1]

		totalSweeps += extSweeps + strSweeps
		stable := abs(soNew-so) < s.cfg.SweepTol && abs(ext.aqOut[nExt-1]-raff) < s.cfg.SweepTol
		so, raff = soNew, ext.aqOut[nExt-1]
		if stable {
			converged = extOK && strOK
			break
		}
	}

	prof := s.buildProfile(feed, model, ext, str, feedCu, feedFlow, orgFlow, elecFlow)
	prof.Converged = converged
	prof.Sweeps = totalSweeps
	return prof, nil
}

// sweepExtraction runs fixed-point sweeps over the extraction stages until
// the largest stream change falls below the tolerance or the budget is spent.
// soIn is the stripped organic entering the last stage.
func (s *CounterCurrent) sweepExtraction(p *phase, model isotherm.Model, feedCu, feedFlow, orgFlow, soIn, eff float64) (converged bool, sweeps int) {
	n := len(p.aqOut)
	flow := s.aqFlows(n, feedFlow)

	for sweeps = 1; sweeps <= s.cfg.MaxSweeps; sweeps++ {
		stagesOK := true
		for i := 0; i < n; i++ {
			aqIn := feedCu
			if i > 0 {
				aqIn = p.aqOut[i-1]
				if bf := feedFlow * s.topo.BypassInto(i+1); bf > 0 {
					aqIn = (p.aqOut[i-1]*flow[i-1] + feedCu*bf) / flow[i]
				}
			}
			orgIn := soIn
			if i < n-1 {
				orgIn = p.orgOut[i+1]
			}
			aq, org, ok := solveStage(aqIn, orgIn, orgFlow/flow[i], eff, model.Loading, s.cfg.StageTol, s.cfg.MaxStageIter)
			stagesOK = stagesOK && ok
			p.deltas[2*i] = abs(aq - p.aqOut[i])
			p.deltas[2*i+1] = abs(org - p.orgOut[i])
			p.aqOut[i], p.orgOut[i] = aq, org
		}
		if floats.Max(p.deltas) < s.cfg.SweepTol {
			return stagesOK, sweeps
		}
	}
	return false, s.cfg.MaxSweeps
}

// sweepStripping runs fixed-point sweeps over the stripping stages, indexed
// in organic flow order: loaded organic enters stage 0, lean electrolyte
// enters the last stage.
func (s *CounterCurrent) sweepStripping(p *phase, model isotherm.Model, mlIn, leanCu, elecFlow, orgFlow, eff float64) (converged bool, sweeps int) {
	n := len(p.aqOut)
	r := orgFlow / elecFlow
	for sweeps = 1; sweeps <= s.cfg.MaxSweeps; sweeps++ {
		stagesOK := true
		for j := 0; j < n; j++ {
			orgIn := mlIn
			if j > 0 {
				orgIn = p.orgOut[j-1]
			}
			aqIn := leanCu
			if j < n-1 {
				aqIn = p.aqOut[j+1]
			}
			aq, org, ok := solveStage(aqIn, orgIn, r, eff, model.Stripped, s.cfg.StageTol, s.cfg.MaxStageIter)
			stagesOK = stagesOK && ok
			p.deltas[2*j] = abs(aq - p.aqOut[j])
			p.deltas[2*j+1] = abs(org - p.orgOut[j])
			p.aqOut[j], p.orgOut[j] = aq, org
		}
		if floats.Max(p.deltas) < s.cfg.SweepTol {
			return stagesOK, sweeps
		}
	}
	return false, s.cfg.MaxSweeps
}

// aqFlows returns the cumulative aqueous flow per extraction stage under
// series-parallel splits.
func (s *CounterCurrent) aqFlows(n int, feedFlow float64) []float64 {
	flow := make([]float64, n)
	flow[0] = feedFlow * s.topo.BypassInto(1)
	for i := 1; i < n; i++ {
		flow[i] = flow[i-1] + feedFlow*s.topo.BypassInto(i+1)
	}
	return flow
}

// buildProfile assembles the caller-owned profile from the final sweep state.
func (s *CounterCurrent) buildProfile(feed types.FeedSpec, model isotherm.Model, ext, str *phase, feedCu, feedFlow, orgFlow, elecFlow float64) *types.StageProfile {
	nExt, nStr := len(ext.aqOut), len(str.aqOut)

	prof := &types.StageProfile{
		Extraction:      make([]types.StageState, nExt),
		Stripping:       make([]types.StageState, nStr),
		ExtractantVV:    feed.ExtractantVV,
		MaxLoading:      model.MaxLoading(),
		PLSCu:           feedCu,
		RaffinateCu:     ext.aqOut[nExt-1],
		LoadedOrganic:   ext.orgOut[0],
		StrippedOrganic: str.orgOut[nStr-1],
		RichElectrolyte: str.aqOut[0],
	}

	flow := s.aqFlows(nExt, feedFlow)
	for i := 0; i < nExt; i++ {
		aqIn := feedCu
		if i > 0 {
			aqIn = ext.aqOut[i-1]
			if bf := feedFlow * s.topo.BypassInto(i+1); bf > 0 {
				aqIn = (ext.aqOut[i-1]*flow[i-1] + feedCu*bf) / flow[i]
			}
		}
		orgIn := prof.StrippedOrganic
		if i < nExt-1 {
			orgIn = ext.orgOut[i+1]
		}
		prof.Extraction[i] = types.StageState{
			Index:      i,
			AqueousIn:  types.Stream{Copper: aqIn, Flow: flow[i]},
			AqueousOut: types.Stream{Copper: ext.aqOut[i], Flow: flow[i]},
			OrganicIn:  types.Stream{Copper: orgIn, Flow: orgFlow},
			OrganicOut: types.Stream{Copper: ext.orgOut[i], Flow: orgFlow},
		}
	}

	for j := 0; j < nStr; j++ {
		orgIn := prof.LoadedOrganic
		if j > 0 {
			orgIn = str.orgOut[j-1]
		}
		aqIn := feed.ElectrolyteCu
		if j < nStr-1 {
			aqIn = str.aqOut[j+1]
		}
		prof.Stripping[j] = types.StageState{
			Index:      j,
			AqueousIn:  types.Stream{Copper: aqIn, Flow: elecFlow},
			AqueousOut: types.Stream{Copper: str.aqOut[j], Flow: elecFlow},
			OrganicIn:  types.Stream{Copper: orgIn, Flow: orgFlow},
			OrganicOut: types.Stream{Copper: str.orgOut[j], Flow: orgFlow},
		}
	}

	// ratios are reported raw: a value outside [0,1] means the balance did
	// not close and must stay visible to callers
	net := prof.LoadedOrganic - prof.StrippedOrganic
	if feed.PLSCu > 0 && feed.PLSFlow > 0 {
		prof.StrippingRatio = net * orgFlow / (feed.PLSCu * feed.PLSFlow)
	}
	if prof.PLSCu > 0 {
		prof.ExtractionRecovery = (prof.PLSCu - prof.RaffinateCu) / prof.PLSCu
	}
	if prof.LoadedOrganic > 0 {
		prof.StripRecovery = net / prof.LoadedOrganic
	}
	prof.NetTransfer = net / feed.ExtractantVV
	return prof
}
