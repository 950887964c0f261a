// Package relax turns a random, typically overlapping, disk placement
// into a non-overlapping hard-disk configuration. It is used exactly once,
// during initialisation, and its optimiser state does not outlive the
// call.
package relax

import "github.com/dormrod/hard-disk-monte-carlo/internal/geometry"

// pair is one repulsive interaction between particles i and j with cutoff
// sigma (the sum of their current inflated radii) and strength epsilon.
type pair struct {
	i, j       int
	sigmaSq    float64
	epsilon    float64
}

// potential is a half-Lennard-Jones repulsion: zero and C1 at separations
// >= sigma, growing smoothly and bounded below as the separation shrinks.
// Energy and force reference only the repulsive branch of the 12-6
// potential, shifted so both vanish at the cutoff.
type potential struct {
	L     float64
	pairs []pair
}

func newPotential(L float64) *potential {
	return &potential{L: L}
}

func (p *potential) setPairs(pairs []pair) {
	p.pairs = pairs
}

// energyGradient evaluates the total potential energy of configuration xy
// (packed as x0,y0,x1,y1,...) and accumulates its gradient into grad.
func (p *potential) energyGradient(xy, grad []float64) float64 {
	for i := range grad {
		grad[i] = 0
	}
	energy := 0.0
	for _, pr := range p.pairs {
		xi, yi := xy[2*pr.i], xy[2*pr.i+1]
		xj, yj := xy[2*pr.j], xy[2*pr.j+1]
		dx, dy := geometry.MinImage(xi, yi, xj, yj, p.L)
		rSq := dx*dx + dy*dy
		if rSq >= pr.sigmaSq || rSq == 0 {
			if rSq == 0 {
				// Degenerate coincident pair: push apart along an
				// arbitrary axis rather than evaluate 1/0.
				grad[2*pr.i] += 1
				grad[2*pr.j] -= 1
			}
			continue
		}

		sr2 := pr.sigmaSq / rSq
		sr6 := sr2 * sr2 * sr2
		sr12 := sr6 * sr6
		// Shifted-truncated repulsive LJ: e = eps*(sr12 - 2*sr6 + 1) for
		// r < sigma, 0 otherwise, so both e and de/dr vanish at r=sigma.
		energy += pr.epsilon * (sr12 - 2*sr6 + 1)

		// de/d(rSq) = eps*(-6*sr12 + 6*sr6)/rSq
		dEdRSq := pr.epsilon * 6 * (sr6 - sr12) / rSq
		gx := 2 * dEdRSq * dx
		gy := 2 * dEdRSq * dy
		grad[2*pr.i] += gx
		grad[2*pr.i+1] += gy
		grad[2*pr.j] -= gx
		grad[2*pr.j+1] -= gy
	}
	return energy
}
