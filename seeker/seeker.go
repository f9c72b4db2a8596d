// Package seeker searches for the extractant concentration that produces a
// target stripping ratio. The achieved ratio is monotone increasing in the
// extractant concentration over the physical range, which lets a bracketing
// root-finder drive the circuit solver directly.
package seeker

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/miladjahani/Sxoptim/solver"
	"github.com/miladjahani/Sxoptim/types"
)

// TargetSeeker wraps one solver and its search settings. Independent seekers
// may run concurrently; the trials of one search are sequential because each
// bracket update depends on the previous trial.
type TargetSeeker struct {
	solver *solver.CounterCurrent
	cfg    types.Config
}

// New creates a seeker over a configured solver.
func New(s *solver.CounterCurrent, cfg types.Config) *TargetSeeker {
	return &TargetSeeker{solver: s, cfg: cfg.Norm()}
}

// Seek finds the extractant concentration (v/v%) whose achieved stripping
// ratio matches target within the configured tolerance. feed.ExtractantVV is
// ignored; every other field is used as-is for each trial. The returned
// profile belongs to the best trial; when the trial budget runs out it is
// flagged non-convergent rather than discarded. A target outside the range
// achievable across the search bounds fails with UnreachableTargetError.
func (ts *TargetSeeker) Seek(ctx context.Context, feed types.FeedSpec, target float64) (float64, *types.StageProfile, error) {
	if target <= 0 || target >= 1 {
		return 0, nil, &types.InvalidInputError{Field: "target", Value: target, Reason: "stripping ratio must be in (0,1)"}
	}
	if err := feed.Validate(); err != nil {
		return 0, nil, err
	}

	var (
		bestVV        float64
		bestProf      *types.StageProfile
		bestRes       = math.Inf(1)
		lastConverged bool
	)
	eval := func(vv float64) (float64, error) {
		f := feed
		f.ExtractantVV = vv
		prof, err := ts.solver.Solve(f)
		if err != nil {
			return 0, err
		}
		lastConverged = prof.Converged
		res := prof.StrippingRatio - target
		// a non-convergent trial still counts: it competes by its
		// best-effort ratio
		if math.Abs(res) < bestRes {
			bestVV, bestProf, bestRes = vv, prof, math.Abs(res)
		}
		slog.Debug("seek trial",
			"vv", vv,
			"ratio", prof.StrippingRatio,
			"target", target,
			"converged", prof.Converged,
		)
		return res, nil
	}

	lo, hi := ts.cfg.SearchMinVV, ts.cfg.SearchMaxVV
	fLo, err := eval(lo)
	if err != nil {
		return 0, nil, err
	}
	loOK := lastConverged
	fHi, err := eval(hi)
	if err != nil {
		return 0, nil, err
	}
	// a non-convergent endpoint ratio is best-effort only; it cannot certify
	// that the target sits inside the bracket
	if !loOK || !lastConverged {
		return 0, nil, fmt.Errorf("cannot certify search bracket: solver did not converge at the extractant bounds [%g, %g] v/v%%", lo, hi)
	}
	if fLo*fHi > 0 {
		return 0, nil, &types.UnreachableTargetError{
			Target:   target,
			MinVV:    lo,
			MaxVV:    hi,
			RatioMin: fLo + target,
			RatioMax: fHi + target,
		}
	}

	vv, _, converged, err := brent(ctx, eval, lo, hi, fLo, fHi, ts.cfg.VVTol, ts.cfg.RatioTol, ts.cfg.MaxTrials)
	if err != nil {
		return vv, bestProf, err
	}
	if !converged {
		// budget exhausted: hand back the best trial, flagged
		bestProf.Converged = false
		return bestVV, bestProf, nil
	}
	return bestVV, bestProf, nil
}
