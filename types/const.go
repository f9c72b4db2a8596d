package types

// Default solver parameter definitions
var (
	SweepTol     = 1e-6 // sweep convergence tolerance (max stream change, g/L)
	StageTol     = 1e-9 // per-stage bracket width tolerance, g/L
	MaxStageIter = 48   // per-stage bisection budget; 48 halvings resolve a 50 g/L bracket below StageTol
	MaxSweeps    = 50   // phase sweep budget
	MaxOuter     = 60   // joint extraction/stripping loop budget
)

// Default seeker parameter definitions
var (
	RatioTol    = 1e-3  // stripping-ratio tolerance (0.1 percentage point)
	VVTol       = 1e-4  // extractant bracket width tolerance, v/v%
	MaxTrials   = 60    // root-finder trial budget
	SearchMinVV = 1.0   // extractant search lower bound, v/v%
	SearchMaxVV = 100.0 // extractant search upper bound, v/v%
)

// Default projection and feed parameter definitions
var (
	CurveSamples    = 64   // equilibrium curve sample count
	DefaultMixerEff = 0.95 // mixer-settler stage efficiency
)

// Config carries tolerances and budgets into solver, seeker and projector
// constructors. Zero values are replaced by the package defaults above.
type Config struct {
	SweepTol     float64
	StageTol     float64
	MaxStageIter int
	MaxSweeps    int
	MaxOuter     int

	RatioTol    float64
	VVTol       float64
	MaxTrials   int
	SearchMinVV float64
	SearchMaxVV float64

	CurveSamples    int
	DefaultMixerEff float64
}

// DefaultConfig builds a Config from the package defaults.
func DefaultConfig() Config {
	return Config{
		SweepTol:        SweepTol,
		StageTol:        StageTol,
		MaxStageIter:    MaxStageIter,
		MaxSweeps:       MaxSweeps,
		MaxOuter:        MaxOuter,
		RatioTol:        RatioTol,
		VVTol:           VVTol,
		MaxTrials:       MaxTrials,
		SearchMinVV:     SearchMinVV,
		SearchMaxVV:     SearchMaxVV,
		CurveSamples:    CurveSamples,
		DefaultMixerEff: DefaultMixerEff,
	}
}

// Norm fills zero fields with the package defaults.
func (c Config) Norm() Config {
	d := DefaultConfig()
	if c.SweepTol <= 0 {
		c.SweepTol = d.SweepTol
	}
	if c.StageTol <= 0 {
		c.StageTol = d.StageTol
	}
	if c.MaxStageIter <= 0 {
		c.MaxStageIter = d.MaxStageIter
	}
	if c.MaxSweeps <= 0 {
		c.MaxSweeps = d.MaxSweeps
	}
	if c.MaxOuter <= 0 {
		c.MaxOuter = d.MaxOuter
	}
	if c.RatioTol <= 0 {
		c.RatioTol = d.RatioTol
	}
	if c.VVTol <= 0 {
		c.VVTol = d.VVTol
	}
	if c.MaxTrials <= 0 {
		c.MaxTrials = d.MaxTrials
	}
	if c.SearchMinVV <= 0 {
		c.SearchMinVV = d.SearchMinVV
	}
	if c.SearchMaxVV <= 0 {
		c.SearchMaxVV = d.SearchMaxVV
	}
	if c.CurveSamples <= 0 {
		c.CurveSamples = d.CurveSamples
	}
	if c.DefaultMixerEff <= 0 {
		c.DefaultMixerEff = d.DefaultMixerEff
	}
	return c
}
