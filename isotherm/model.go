// Package isotherm implements copper solvent-extraction equilibrium models.
//
// A model maps an aqueous copper concentration to the organic-phase copper
// concentration at thermodynamic equilibrium, for the extraction side and the
// acid-suppressed stripping side. Models are pure values: safe to share across
// concurrent solver runs.
package isotherm

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Model defines the equilibrium relations one circuit solve needs.
type Model interface {

	// Loading computes the equilibrium organic copper for aqueous copper aq
	// under extraction conditions (leach liquor pH). Monotone and saturating.
	Loading(aq float64) float64

	// Stripped computes the equilibrium organic copper for aqueous copper aq
	// under stripping conditions (strong acid electrolyte). Monotone and
	// saturating, with a much lower capacity than Loading.
	Stripped(aq float64) float64

	// StripAqueous is the closed-form inverse of Stripped: the aqueous copper
	// in equilibrium with organic copper org on the stripping side.
	StripAqueous(org float64) float64

	// MaxLoading returns the saturation capacity (AML), g/L.
	MaxLoading() float64
}

// ParamModel extends Model with gosl-style parameter initialisation.
type ParamModel interface {
	Model
	Init(prms utl.Params) error
	GetPrms(example bool) utl.Params
}

// allocators holds model factories indexed by name
var allocators = map[string]func() ParamModel{}

// New allocates and initialises a named model.
func New(name string, prms utl.Params) (ParamModel, error) {
	alloc, ok := allocators[name]
	if !ok {
		return nil, chk.Err("isotherm model %q is not available", name)
	}
	m := alloc()
	if err := m.Init(prms); err != nil {
		return nil, err
	}
	return m, nil
}

// Default builds the Lix984N model for an extractant concentration in v/v%,
// with published parameters. This is the factory the facade wires into the
// solver unless the caller substitutes fitted plant values.
func Default(vv float64) (Model, error) {
	return New("lix984n", utl.Params{&utl.P{N: "vv", V: vv}})
}
