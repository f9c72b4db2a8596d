package types

// StageProfile is the converged state of one circuit solve. Produced fresh by
// every solver invocation and owned by the caller.
type StageProfile struct {
	Scenario ScenarioID

	Extraction []StageState // aqueous flow order: PLS enters stage 0
	Stripping  []StageState // organic flow order: loaded organic enters stage 0

	ExtractantVV float64 // extractant concentration used, v/v%
	MaxLoading   float64 // AML, g/L

	PLSCu           float64 // blended aqueous feed after recycle, g/L
	RaffinateCu     float64 // aqueous leaving the last extraction stage, g/L
	LoadedOrganic   float64 // ML, organic leaving extraction, g/L
	StrippedOrganic float64 // SO, organic leaving stripping, g/L
	RichElectrolyte float64 // strip liquor leaving stripping, g/L

	// StrippingRatio is the fraction of the fresh feed copper recovered into
	// the strip liquor. By mass balance it equals the circuit copper recovery
	// at steady state, and it is monotone in extractant strength, which the
	// seeker's bracketing search depends on.
	StrippingRatio float64

	ExtractionRecovery float64 // per-pass aqueous recovery across extraction
	StripRecovery      float64 // per-pass organic recovery across stripping
	NetTransfer        float64 // (ML-SO)/vv, g/L per v/v%

	Converged bool // false when any sweep or the joint loop ran out of budget
	Sweeps    int  // total sweeps spent across both phases
}

// AqueousSeries returns the extraction-phase outgoing aqueous concentrations
// in stage order, feed side first.
func (p *StageProfile) AqueousSeries() []float64 {
	out := make([]float64, len(p.Extraction))
	for i, st := range p.Extraction {
		out[i] = st.AqueousOut.Copper
	}
	return out
}

// OrganicSeries returns the extraction-phase outgoing organic concentrations
// in stage order, feed side first.
func (p *StageProfile) OrganicSeries() []float64 {
	out := make([]float64, len(p.Extraction))
	for i, st := range p.Extraction {
		out[i] = st.OrganicOut.Copper
	}
	return out
}
