package types

// FeedSpec is one solver run's inputs: the pregnant leach solution, the lean
// electrolyte and the organic reagent strength. ExtractantVV is the plant-mode
// input; in optimization mode the seeker fills it in.
type FeedSpec struct {
	PLSCu   float64 // pregnant leach solution copper, g/L
	PLSFlow float64 // aqueous feed flow, m3/h

	ElectrolyteCu   float64 // lean electrolyte copper, g/L
	ElectrolyteFlow float64 // strip liquor flow, m3/h; 0 derives from the topology O/A

	ExtractantVV float64 // extractant concentration, v/v%

	MixerEffExt   float64 // extraction stage efficiency (0,1]; 0 uses the default
	MixerEffStrip float64 // stripping stage efficiency (0,1]; 0 uses the default
}

// Validate checks the structural inputs common to both modes. The extractant
// concentration is checked separately by the solver since the seeker supplies
// it per trial.
func (f FeedSpec) Validate() error {
	switch {
	case f.PLSCu < 0:
		return &InvalidInputError{Field: "PLSCu", Value: f.PLSCu, Reason: "concentration must not be negative"}
	case f.PLSFlow <= 0:
		return &InvalidInputError{Field: "PLSFlow", Value: f.PLSFlow, Reason: "flow must be positive"}
	case f.ElectrolyteCu < 0:
		return &InvalidInputError{Field: "ElectrolyteCu", Value: f.ElectrolyteCu, Reason: "concentration must not be negative"}
	case f.ElectrolyteFlow < 0:
		return &InvalidInputError{Field: "ElectrolyteFlow", Value: f.ElectrolyteFlow, Reason: "flow must not be negative"}
	case f.MixerEffExt < 0 || f.MixerEffExt > 1:
		return &InvalidInputError{Field: "MixerEffExt", Value: f.MixerEffExt, Reason: "efficiency must be in (0,1]"}
	case f.MixerEffStrip < 0 || f.MixerEffStrip > 1:
		return &InvalidInputError{Field: "MixerEffStrip", Value: f.MixerEffStrip, Reason: "efficiency must be in (0,1]"}
	}
	return nil
}
