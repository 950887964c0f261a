package relax

import (
	"fmt"

	"github.com/dormrod/hard-disk-monte-carlo/internal/geometry"
	"github.com/dormrod/hard-disk-monte-carlo/internal/rng"
)

const (
	maxAttempts   = 100
	scheduleSteps = 101
	optimiserIters = 10000
	optimiserInitStep = 0.5
	optimiserTol  = 1e-12
)

// Resolve generates a non-overlapping initial placement of n disks with
// radii r inside a periodic cell of side L, retrying the
// random-placement-then-inflation-schedule pipeline up to 100 times.
//
// It returns the resolved (x, y) coordinates, or an error if no attempt
// resolved all overlaps.
func Resolve(n int, r []float64, L float64, stream *rng.Stream) (x, y []float64, err error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		xTrial, yTrial := randomPositions(n, L, stream)
		resolved := runSchedule(xTrial, yTrial, r, L)
		if resolved {
			return xTrial, yTrial, nil
		}
	}
	return nil, nil, fmt.Errorf("relax: could not generate starting configuration after %d attempts", maxAttempts)
}

// randomPositions scatters n points uniformly at random inside the
// periodic cell, wrapped into [-L/2, L/2).
func randomPositions(n int, L float64, stream *rng.Stream) (x, y []float64) {
	x = make([]float64, n)
	y = make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = geometry.Wrap(stream.Uniform01()*L, L)
		y[i] = geometry.Wrap(stream.Uniform01()*L, L)
	}
	return x, y
}

// runSchedule inflates every pairwise cutoff sigma_ij over 101 steps,
// sigma_ij = k*0.01*(r_i+r_j) for k = 1..101, re-minimising the steepest-descent potential at each
// step, then reports whether the resulting placement is free of overlaps.
// x and y are updated in place.
func runSchedule(x, y, r []float64, L float64) bool {
	n := len(x)
	xy := make([]float64, 2*n)
	for i := 0; i < n; i++ {
		xy[2*i] = x[i]
		xy[2*i+1] = y[i]
	}

	pairs := make([]pair, 0, n*(n-1)/2)
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, pair{i: i, j: j, epsilon: 1.0})
		}
	}

	pot := newPotential(L)
	optimiser := newSteepestDescentArmijo(optimiserIters, optimiserInitStep, optimiserTol)

	for k := 1; k <= scheduleSteps; k++ {
		frac := float64(k) * 0.01
		for idx := range pairs {
			p := &pairs[idx]
			sigma := frac * (r[p.i] + r[p.j])
			p.sigmaSq = sigma * sigma
		}
		pot.setPairs(pairs)
		optimiser.minimise(pot, xy)
	}

	for i := 0; i < n; i++ {
		x[i] = geometry.Wrap(xy[2*i], L)
		y[i] = geometry.Wrap(xy[2*i+1], L)
	}

	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			rSum := r[i] + r[j]
			if geometry.MinImageDistSq(x[i], y[i], x[j], y[j], L) < rSum*rSum {
				return false
			}
		}
	}
	return true
}
