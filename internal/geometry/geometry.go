// Package geometry implements the minimum-image convention for a periodic
// square cell of side L.
package geometry

import "math"

// Wrap folds u into [-L/2, L/2] under periodic boundaries of period L,
// using round-half-to-even (banker's rounding) at the half-integer case so
// that wrapping is reproducible bit-for-bit across runs. An exact
// half-period lands on whichever end the even rounding picks:
// Wrap(L/2, L) == L/2 and Wrap(1.5*L, L) == -L/2.
func Wrap(u, L float64) float64 {
	return u - L*math.RoundToEven(u/L)
}

// MinImage returns the minimum-image displacement (ax-bx, ay-by) under
// periodic boundaries of period L.
func MinImage(ax, ay, bx, by, L float64) (dx, dy float64) {
	return Wrap(ax-bx, L), Wrap(ay-by, L)
}

// MinImageDistSq returns the squared minimum-image distance between
// (ax,ay) and (bx,by).
func MinImageDistSq(ax, ay, bx, by, L float64) float64 {
	dx, dy := MinImage(ax, ay, bx, by, L)
	return dx*dx + dy*dy
}

// Scalars carries the derived quantities recomputed whenever the cell
// length L is (re)set.
type Scalars struct {
	L         float64
	RCellLen  float64 // 1/L
	CellLen_2 float64 // L/2
}

// NewScalars derives RCellLen and CellLen_2 from L.
func NewScalars(L float64) Scalars {
	return Scalars{L: L, RCellLen: 1.0 / L, CellLen_2: L / 2.0}
}
