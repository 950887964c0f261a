// Package rdf accumulates a binned pair-distance histogram and finalises it
// into the radial distribution function g(r).
package rdf

import (
	"math"

	"github.com/dormrod/hard-disk-monte-carlo/internal/configuration"
	"github.com/dormrod/hard-disk-monte-carlo/internal/geometry"
)

// Accumulator holds the running pair-distance histogram for one
// simulation. Bin width Delta and the cell's half-length H=L/2 determine
// the bin count: floor(H/Delta)+1.
type Accumulator struct {
	Delta           float64
	Hist            []int
	AnalysisConfigs int
}

// NewAccumulator allocates a histogram sized for cell half-length halfCellLen
// and bin width delta.
func NewAccumulator(halfCellLen, delta float64) *Accumulator {
	nBins := int(math.Floor(halfCellLen/delta)) + 1
	return &Accumulator{Delta: delta, Hist: make([]int, nBins)}
}

// Sample enumerates every unordered pair in cfg and bins those with
// minimum-image distance below L/2; pairs at or beyond L/2 are discarded
// to avoid periodic self-imaging bias. Each counted pair increments its
// bin by 2 (the symmetric i-j and j-i contribution).
func (a *Accumulator) Sample(cfg *configuration.Configuration) {
	half := cfg.CellLen_2
	for i := 0; i < cfg.N-1; i++ {
		for j := i + 1; j < cfg.N; j++ {
			dSq := geometry.MinImageDistSq(cfg.X[i], cfg.Y[i], cfg.X[j], cfg.Y[j], cfg.L)
			d := math.Sqrt(dSq)
			if d >= half {
				continue
			}
			bin := int(math.Floor(d / a.Delta))
			a.Hist[bin] += 2
		}
	}
	a.AnalysisConfigs++
}

// Result is one finalised (bin-centre, value) pair.
type Result struct {
	R, G float64
}

// Finalise produces g(r) if normalise is true (area-normalised against an
// ideal gas of density n/L^2), otherwise the raw bin counts. Bin centres
// are (i+0.5)*Delta.
func Finalise(hist []int, delta float64, n int, L float64, configs int, normalise bool) []Result {
	out := make([]Result, len(hist))
	norm := float64(n) * (float64(n) / (L * L)) * math.Pi * float64(configs)
	for i, count := range hist {
		center := delta * (float64(i) + 0.5)
		var g float64
		if normalise && configs > 0 {
			shellArea := math.Pow(float64(i+1)*delta, 2) - math.Pow(float64(i)*delta, 2)
			g = float64(count) / (norm * shellArea)
		} else {
			g = float64(count)
		}
		out[i] = Result{R: center, G: g}
	}
	return out
}
