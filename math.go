package spreader

import (
	"fmt"
	"math"
)

const (
	deg2rad = math.Pi / 180
	rad2deg = 180 / math.Pi
)

// Deg2rad converts degrees to radians.
func Deg2rad(a float64) float64 {
	return a * deg2rad
}

// Rad2deg converts radians to degrees.
func Rad2deg(a float64) float64 {
	return a * rad2deg
}

// bisect refines a root of f on [lo, hi] where f(lo) and f(hi) must have opposite
// signs. It returns the abscissa at which |hi-lo| has shrunk below tol, or an error
// if the interval does not bracket a sign change. Kept independent of any stepping
// loop so the exit refinement is testable on its own.
func bisect(f func(float64) float64, lo, hi, tol float64) (float64, error) {
	flo := f(lo)
	fhi := f(hi)
	if flo == 0 {
		return lo, nil
	}
	if fhi == 0 {
		return hi, nil
	}
	if (flo > 0) == (fhi > 0) {
		return 0, fmt.Errorf("bisect: no sign change on [%g, %g]", lo, hi)
	}
	for hi-lo > tol {
		mid := 0.5 * (lo + hi)
		fmid := f(mid)
		if fmid == 0 {
			return mid, nil
		}
		if (fmid > 0) == (flo > 0) {
			lo, flo = mid, fmid
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi), nil
}
