package seeker

import (
	"context"
	"math"
)

// eps is the double-precision machine epsilon.
const eps = 2.220446049250313e-16

// brent finds a root of f inside [a,b] using Brent's method: inverse
// quadratic interpolation where it is safe, secant or bisection otherwise.
// fa and fb are f at the endpoints and must straddle zero. Returns the last
// abscissa, its residual and whether |residual| <= ftol or the bracket shrank
// below xtol before the trial budget ran out. f evaluations are the expensive
// part (one circuit solve each), so the loop checks ctx between them.
func brent(ctx context.Context, f func(float64) (float64, error), a, b, fa, fb, xtol, ftol float64, maxIter int) (float64, float64, bool, error) {
	c, fc := a, fa
	d := b - a
	e := d
	for iter := 0; iter < maxIter; iter++ {
		if (fb > 0) == (fc > 0) {
			c, fc = a, fa
			d = b - a
			e = d
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}
		tol1 := 2*eps*math.Abs(b) + 0.5*xtol
		xm := 0.5 * (c - b)
		if math.Abs(fb) <= ftol {
			return b, fb, true, nil
		}
		if math.Abs(xm) <= tol1 || fb == 0 {
			return b, fb, math.Abs(fb) <= ftol, nil
		}
		if math.Abs(e) >= tol1 && math.Abs(fa) > math.Abs(fb) {
			// attempt interpolation
			var p, q, r float64
			s := fb / fa
			if a == c {
				p = 2 * xm * s
				q = 1 - s
			} else {
				q = fa / fc
				r = fb / fc
				p = s * (2*xm*q*(q-r) - (b-a)*(r-1))
				q = (q - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			if 2*p < math.Min(3*xm*q-math.Abs(tol1*q), math.Abs(e*q)) {
				e = d
				d = p / q
			} else {
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}
		a, fa = b, fb
		if math.Abs(d) > tol1 {
			b += d
		} else {
			b += math.Copysign(tol1, xm)
		}
		if err := ctx.Err(); err != nil {
			return b, fb, false, err
		}
		var err error
		fb, err = f(b)
		if err != nil {
			return b, fb, false, err
		}
	}
	return b, fb, false, nil
}
