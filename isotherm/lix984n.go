package isotherm

import (
	"math"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Lix984N implements a single-site Langmuir loading isotherm for the Lix984N
// reagent:
//
//	y*(x)  = AML·x/(kd+x)        extraction side
//	ys*(x) = γ·AML·x/(kds+x)     stripping side (acid-suppressed capacity)
//	xs*(y) = kds·y/(γ·AML−y)     stripping inverse
//
// with AML = slope·vv the maximum loading in g/L for vv in v/v%. The default
// slope 0.517 g/L per v/v% and kd 2.5 g/L are the standard Lix984N fit; γ and
// kds represent equilibrium reversal against ~180 g/L H2SO4 lean electrolyte.
type Lix984N struct {

	// parameters
	vv    float64 // extractant concentration, v/v%
	slope float64 // maximum loading per v/v%, g/L
	kd    float64 // extraction half-loading concentration, g/L
	gamma float64 // strip capacity suppression factor
	kds   float64 // strip half-loading concentration, g/L

	// derived
	aml float64 // maximum loading, g/L
}

// add model to factory
func init() {
	allocators["lix984n"] = func() ParamModel { return new(Lix984N) }
}

// Init initialises the model from a parameter list.
func (o *Lix984N) Init(prms utl.Params) error {
	o.slope = 0.517
	o.kd = 2.5
	o.gamma = 0.16
	o.kds = 6.0
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "vv":
			o.vv = p.V
		case "slope":
			o.slope = p.V
		case "kd":
			o.kd = p.V
		case "gamma":
			o.gamma = p.V
		case "kds":
			o.kds = p.V
		default:
			return chk.Err("lix984n: parameter named %q is incorrect", p.N)
		}
	}
	if o.vv <= 0 {
		return chk.Err("lix984n: extractant concentration must be positive: vv=%g", o.vv)
	}
	if o.slope <= 0 || o.kd <= 0 || o.kds <= 0 {
		return chk.Err("lix984n: slope, kd and kds must be positive")
	}
	if o.gamma <= 0 || o.gamma >= 1 {
		return chk.Err("lix984n: gamma must be in (0,1): gamma=%g", o.gamma)
	}
	o.aml = o.slope * o.vv
	return nil
}

// GetPrms gets (an example of) parameters
func (o *Lix984N) GetPrms(example bool) utl.Params {
	if example {
		return utl.Params{
			&utl.P{N: "vv", V: 20},
			&utl.P{N: "slope", V: 0.517},
			&utl.P{N: "kd", V: 2.5},
			&utl.P{N: "gamma", V: 0.16},
			&utl.P{N: "kds", V: 6.0},
		}
	}
	return utl.Params{
		&utl.P{N: "vv", V: o.vv},
		&utl.P{N: "slope", V: o.slope},
		&utl.P{N: "kd", V: o.kd},
		&utl.P{N: "gamma", V: o.gamma},
		&utl.P{N: "kds", V: o.kds},
	}
}

// Loading computes the extraction-side equilibrium organic copper.
func (o *Lix984N) Loading(aq float64) float64 {
	if aq <= 0 {
		return 0
	}
	return o.aml * aq / (o.kd + aq)
}

// Stripped computes the stripping-side equilibrium organic copper.
func (o *Lix984N) Stripped(aq float64) float64 {
	if aq <= 0 {
		return 0
	}
	return o.gamma * o.aml * aq / (o.kds + aq)
}

// StripAqueous computes the aqueous copper in equilibrium with organic copper
// org on the stripping side. Above the strip capacity no finite aqueous
// concentration balances the organic, so +Inf is returned.
func (o *Lix984N) StripAqueous(org float64) float64 {
	if org <= 0 {
		return 0
	}
	ymax := o.gamma * o.aml
	if org >= ymax {
		return math.Inf(1)
	}
	return o.kds * org / (ymax - org)
}

// MaxLoading returns AML in g/L.
func (o *Lix984N) MaxLoading() float64 { return o.aml }
