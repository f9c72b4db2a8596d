// Package flowsheet describes countercurrent SX circuit configurations: stage
// counts, flow ratios and stream routing, plus the catalog of the named
// scenarios A-R. Topologies are immutable after construction and shared
// read-only across solver runs.
package flowsheet

import (
	"fmt"

	"github.com/miladjahani/Sxoptim/types"
)

// Bypass routes a fraction of the fresh aqueous feed past the leading
// extraction stages, entering at ToStage. This is the series-parallel
// arrangement used to push flow through large circuits at reduced O/A.
type Bypass struct {
	ToStage  int     `yaml:"to_stage"` // 1-based extraction stage the split enters, >= 2
	Fraction float64 `yaml:"fraction"` // fraction of the PLS flow diverted, (0,1)
}

// Topology is one circuit configuration. Construct with New so routing is
// validated once; solvers never clone it.
type Topology struct {
	ExtractionStages int     `yaml:"extraction"`
	StrippingStages  int     `yaml:"stripping"`
	OAExtraction     float64 `yaml:"oa_extraction"` // organic:aqueous ratio, extraction
	OAStripping      float64 `yaml:"oa_stripping"`  // organic:aqueous ratio, stripping

	Bypasses         []Bypass `yaml:"bypasses,omitempty"`
	RaffinateRecycle float64  `yaml:"raffinate_recycle,omitempty"` // fraction of raffinate blended back into the feed, [0,1)
}

// New validates t and returns an immutable copy.
func New(t Topology) (*Topology, error) {
	if t.ExtractionStages < 1 {
		return nil, &types.ConfigurationError{Field: "extraction", Reason: fmt.Sprintf("stage count must be positive: %d", t.ExtractionStages)}
	}
	if t.StrippingStages < 1 {
		return nil, &types.ConfigurationError{Field: "stripping", Reason: fmt.Sprintf("stage count must be positive: %d", t.StrippingStages)}
	}
	if t.OAExtraction <= 0 {
		return nil, &types.ConfigurationError{Field: "oa_extraction", Reason: fmt.Sprintf("flow ratio must be positive: %g", t.OAExtraction)}
	}
	if t.OAStripping <= 0 {
		return nil, &types.ConfigurationError{Field: "oa_stripping", Reason: fmt.Sprintf("flow ratio must be positive: %g", t.OAStripping)}
	}
	total := 0.0
	for i, b := range t.Bypasses {
		if b.ToStage < 2 || b.ToStage > t.ExtractionStages {
			return nil, &types.ConfigurationError{
				Field:  fmt.Sprintf("bypasses[%d].to_stage", i),
				Reason: fmt.Sprintf("stage %d outside [2, %d]", b.ToStage, t.ExtractionStages),
			}
		}
		if b.Fraction <= 0 || b.Fraction >= 1 {
			return nil, &types.ConfigurationError{
				Field:  fmt.Sprintf("bypasses[%d].fraction", i),
				Reason: fmt.Sprintf("fraction %g outside (0,1)", b.Fraction),
			}
		}
		total += b.Fraction
	}
	if total >= 1 {
		return nil, &types.ConfigurationError{Field: "bypasses", Reason: fmt.Sprintf("fractions sum to %g, no flow left for stage 1", total)}
	}
	if t.RaffinateRecycle < 0 || t.RaffinateRecycle >= 1 {
		return nil, &types.ConfigurationError{Field: "raffinate_recycle", Reason: fmt.Sprintf("fraction %g outside [0,1)", t.RaffinateRecycle)}
	}
	cp := t
	cp.Bypasses = append([]Bypass(nil), t.Bypasses...)
	return &cp, nil
}

// BypassInto returns the feed fraction entering extraction stage i (1-based).
// Stage 1 receives whatever the splits leave over.
func (t *Topology) BypassInto(i int) float64 {
	if i == 1 {
		f := 1.0
		for _, b := range t.Bypasses {
			f -= b.Fraction
		}
		return f
	}
	f := 0.0
	for _, b := range t.Bypasses {
		if b.ToStage == i {
			f += b.Fraction
		}
	}
	return f
}
