// Package unitcheck detects the classic metres-versus-nautical-miles
// unit mismatch between two files by looking for a ~1852 ratio on the
// first column of the first line (spec.md §4.8).
package unitcheck

import "math"

// Ratio is the metres-per-nautical-mile conversion factor.
const Ratio = 1852.0

// Tolerance is the fractional deviation from Ratio (or its inverse)
// still counted as a unit mismatch.
const Tolerance = 0.01

// Zero mirrors classify.Zero; duplicated to avoid a dependency on
// domain/classify from this leaf package.
const Zero = 1.0 / (1 << 23)

// Result reports whether a unit mismatch was detected on line 1.
type Result struct {
	Mismatch bool
	Ratio    float64
}

// Check compares the first-column values of line 1 in each file. It
// only evaluates the ratio when both values exceed Zero; a zero or
// near-zero reference value makes the ratio meaningless.
func Check(firstColumn1, firstColumn2 float64) Result {
	if math.Min(firstColumn1, firstColumn2) <= Zero {
		return Result{}
	}

	r := firstColumn1 / firstColumn2
	if withinTolerance(r) || withinTolerance(1/r) {
		return Result{Mismatch: true, Ratio: r}
	}
	return Result{}
}

func withinTolerance(r float64) bool {
	return math.Abs(r-Ratio)/Ratio < Tolerance
}
