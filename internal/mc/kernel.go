// Package mc implements the Metropolis move kernel and its adaptive
// step-size calibration; the equilibration/production loops live in
// package driver.
package mc

import (
	"github.com/dormrod/hard-disk-monte-carlo/internal/configuration"
	"github.com/dormrod/hard-disk-monte-carlo/internal/geometry"
	"github.com/dormrod/hard-disk-monte-carlo/internal/rng"
)

// Kernel drives single-particle translation and pair-swap Metropolis
// attempts against a Configuration. Translation vs. swap is chosen once
// per attempt, not once per cycle, so a cycle's accept count mixes both
// move types under a single acceptance statistic -- this is deliberate
// (see DESIGN.md) and biases delta calibration when SwapProb is large.
type Kernel struct {
	Cfg         *configuration.Configuration
	Stream      *rng.Stream
	TransDelta  float64
	SwapProb    float64
	Accepted    int
}

// NewKernel constructs a Kernel over cfg with the given swap probability
// and an initial (pre-calibration) translation step.
func NewKernel(cfg *configuration.Configuration, stream *rng.Stream, swapProb, initDelta float64) *Kernel {
	return &Kernel{Cfg: cfg, Stream: stream, TransDelta: initDelta, SwapProb: swapProb}
}

// Cycle executes N move attempts and returns the number accepted.
func (k *Kernel) Cycle() int {
	accepted := 0
	n := k.Cfg.N
	for i := 0; i < n; i++ {
		if k.attempt() {
			accepted++
		}
	}
	k.Accepted += accepted
	return accepted
}

func (k *Kernel) attempt() bool {
	if k.Stream.Uniform01() < 1.0-k.SwapProb {
		return k.translationAttempt()
	}
	return k.swapAttempt()
}

// translationAttempt proposes moving a single randomly chosen particle by
// a uniform jitter of magnitude up to TransDelta in each dimension and
// accepts iff the proposal overlaps nothing else.
func (k *Kernel) translationAttempt() bool {
	cfg := k.Cfg
	i := k.Stream.UniformInt(cfg.N)
	xi := cfg.X[i] + k.TransDelta*(2*k.Stream.Uniform01()-1)
	yi := cfg.Y[i] + k.TransDelta*(2*k.Stream.Uniform01()-1)

	xi = geometry.Wrap(xi, cfg.L)
	yi = geometry.Wrap(yi, cfg.L)

	if overlapsAny(cfg, i, -1, xi, yi, cfg.R[i]) {
		return false
	}

	cfg.X[i], cfg.Y[i] = xi, yi
	return true
}

// swapAttempt proposes swapping the positions and radii of two distinct
// particles, each then jittered by the same translation step as a
// translation move, and accepts iff neither proposed disk overlaps the
// other or any third particle.
func (k *Kernel) swapAttempt() bool {
	cfg := k.Cfg
	i := k.Stream.UniformInt(cfg.N)
	j := i
	for j == i {
		j = k.Stream.UniformInt(cfg.N)
	}

	// Swap positions/radii into local proposal variables, then jitter.
	xi, yi, ri := cfg.X[j], cfg.Y[j], cfg.R[j]
	xj, yj, rj := cfg.X[i], cfg.Y[i], cfg.R[i]

	xi = geometry.Wrap(xi+k.TransDelta*(2*k.Stream.Uniform01()-1), cfg.L)
	yi = geometry.Wrap(yi+k.TransDelta*(2*k.Stream.Uniform01()-1), cfg.L)
	xj = geometry.Wrap(xj+k.TransDelta*(2*k.Stream.Uniform01()-1), cfg.L)
	yj = geometry.Wrap(yj+k.TransDelta*(2*k.Stream.Uniform01()-1), cfg.L)

	if geometry.MinImageDistSq(xi, yi, xj, yj, cfg.L) < (ri+rj)*(ri+rj) {
		return false
	}
	if overlapsAny(cfg, i, j, xi, yi, ri) {
		return false
	}
	if overlapsAny(cfg, i, j, xj, yj, rj) {
		return false
	}

	cfg.X[i], cfg.Y[i], cfg.R[i] = xi, yi, ri
	cfg.X[j], cfg.Y[j], cfg.R[j] = xj, yj, rj
	return true
}

// overlapsAny reports whether a proposed disk (px, py, pr) overlaps any
// particle in cfg other than skip1 and skip2.
func overlapsAny(cfg *configuration.Configuration, skip1, skip2 int, px, py, pr float64) bool {
	for k := 0; k < cfg.N; k++ {
		if k == skip1 || k == skip2 {
			continue
		}
		rSum := pr + cfg.R[k]
		if geometry.MinImageDistSq(px, py, cfg.X[k], cfg.Y[k], cfg.L) < rSum*rSum {
			return true
		}
	}
	return false
}
