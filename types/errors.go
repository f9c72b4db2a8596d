package types

import "fmt"

// ConfigurationError reports a malformed circuit topology.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("flowsheet configuration: %s: %s", e.Field, e.Reason)
}

// UnknownScenarioError reports a catalog lookup for an unregistered id.
type UnknownScenarioError struct {
	ID ScenarioID
}

func (e *UnknownScenarioError) Error() string {
	return fmt.Sprintf("unknown scenario %q", string(e.ID))
}

// InvalidInputError reports an out-of-range feed or extractant value. The
// solver raises it before iterating, never mid-sweep.
type InvalidInputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %s=%g: %s", e.Field, e.Value, e.Reason)
}

// UnreachableTargetError reports an optimization target outside the range the
// circuit can reach within the extractant search bounds.
type UnreachableTargetError struct {
	Target   float64
	MinVV    float64
	MaxVV    float64
	RatioMin float64 // achieved ratio at MinVV
	RatioMax float64 // achieved ratio at MaxVV
}

func (e *UnreachableTargetError) Error() string {
	return fmt.Sprintf("target ratio %.4f unreachable: circuit spans [%.4f, %.4f] over extractant [%g, %g] v/v%%",
		e.Target, e.RatioMin, e.RatioMax, e.MinVV, e.MaxVV)
}
