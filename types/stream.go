package types

// ScenarioID identifies one of the named circuit configurations.
type ScenarioID string

// Stream is one phase at one point of the circuit: a copper concentration
// (g/L) and a volumetric flow. Recomputed each sweep, never mutated after the
// profile is returned.
type Stream struct {
	Copper float64
	Flow   float64
}

// Point is an (aqueous, organic) concentration pair, used for equilibrium
// curve and operating line series.
type Point struct {
	Aqueous float64
	Organic float64
}

// StageState holds the four streams of one mixer-settler stage. Stages are
// kept in indexed arrays so the convergence sweep can update them in place.
type StageState struct {
	Index      int // position within the phase, aqueous flow order
	AqueousIn  Stream
	AqueousOut Stream
	OrganicIn  Stream
	OrganicOut Stream
}

// Transfer is the copper mass moved from aqueous to organic in this stage
// (negative during stripping).
func (s StageState) Transfer() float64 {
	return (s.OrganicOut.Copper - s.OrganicIn.Copper) * s.OrganicOut.Flow
}
