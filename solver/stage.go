package solver

// solveStage finds the equilibrium-limited outlet streams of one
// mixer-settler stage.
//
// Eliminating the organic outlet from the stage balance leaves a scalar
// equation in the outgoing aqueous concentration,
//
//	g(x) = x + r·eff·(eq(x) − orgIn) − aqIn = 0
//
// where r is the local organic:aqueous flow ratio, eff the mixer efficiency
// and eq the equilibrium relation for the phase contact (extraction loading
// or acid stripping). g is strictly increasing because eq is monotone, so the
// root is unique, and [0, aqIn + r·orgIn] brackets it: the aqueous can at
// worst be stripped to zero or absorb the organic inventory whole. Bisection
// halves the bracket every step and cannot diverge; direct substitution on
// the same equation does whenever r·eff·eq'(x) exceeds one, which steep
// loading isotherms reach at low aqueous copper. ok reports whether the
// bracket shrank below tol within the iteration budget.
func solveStage(aqIn, orgIn, r, eff float64, eq func(float64) float64, tol float64, maxIter int) (aqOut, orgOut float64, ok bool) {
	c := r * eff
	g := func(x float64) float64 { return x + c*(eq(x)-orgIn) - aqIn }

	lo, hi := 0.0, aqIn+r*orgIn
	for it := 0; it < maxIter && hi-lo >= tol; it++ {
		if mid := 0.5 * (lo + hi); g(mid) < 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	aqOut = 0.5 * (lo + hi)
	orgOut = orgIn + eff*(eq(aqOut)-orgIn)
	return aqOut, orgOut, hi-lo < tol
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
