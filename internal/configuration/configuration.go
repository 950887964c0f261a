// Package configuration owns the positions and radii of the simulated
// disks and the periodic cell they live in. It has no knowledge of the
// move kernel or any analysis: it is storage plus radius generation
// (drawing from the RNG stream only for polydisperse radii) and the
// packing-fraction-to-cell-length derivation.
package configuration

import (
	"fmt"
	"math"

	"github.com/dormrod/hard-disk-monte-carlo/internal/geometry"
	"github.com/dormrod/hard-disk-monte-carlo/internal/rng"
)

// Dispersity selects the radius-generation rule.
type Dispersity int

const (
	Mono Dispersity = iota
	Bi
	Poly
)

// Interaction selects the pair-interaction rule. Only Additive is
// implemented; the input parser recognises the NonAdditive tag and rejects
// it as not implemented.
type Interaction int

const (
	Additive Interaction = iota
	NonAdditive
)

// Configuration holds the (x, y, r) vectors of N disks and the periodic
// cell they occupy.
type Configuration struct {
	X, Y, R []float64
	N       int
	Phi     float64
	geometry.Scalars
}

// New allocates a Configuration for n disks at packing fraction phi, with
// radii generated according to disp and params. The cell length L is
// derived so that phi == sum(pi*r_i^2)/L^2.
//
// Mono params: [r0].
// Bi params:   [rSmall, rLarge, fracSmall].
// Poly params: [r0, sigma] (log-normal shape parameter sigma).
func New(n int, phi float64, disp Dispersity, params []float64, stream *rng.Stream) (*Configuration, error) {
	if n < 2 {
		return nil, fmt.Errorf("configuration: n must be at least 2, got %d", n)
	}

	r, err := generateRadii(n, disp, params, stream)
	if err != nil {
		return nil, err
	}

	areaSum := 0.0
	for _, ri := range r {
		areaSum += math.Pi * ri * ri
	}
	L := math.Sqrt(areaSum / phi)

	return &Configuration{
		X:       make([]float64, n),
		Y:       make([]float64, n),
		R:       r,
		N:       n,
		Phi:     phi,
		Scalars: geometry.NewScalars(L),
	}, nil
}

func generateRadii(n int, disp Dispersity, params []float64, stream *rng.Stream) ([]float64, error) {
	r := make([]float64, n)
	switch disp {
	case Mono:
		if len(params) < 1 {
			return nil, fmt.Errorf("configuration: mono dispersity requires 1 parameter (r0)")
		}
		for i := range r {
			r[i] = params[0]
		}
	case Bi:
		if len(params) < 3 {
			return nil, fmt.Errorf("configuration: bi dispersity requires 3 parameters (rSmall, rLarge, fracSmall)")
		}
		rSmall, rLarge, fracSmall := params[0], params[1], params[2]
		if rSmall <= 0 || rLarge <= 0 {
			return nil, fmt.Errorf("configuration: bi dispersity radii must be positive")
		}
		nSmall := int(math.Round(float64(n) * fracSmall))
		if nSmall < 1 {
			nSmall = 1
		}
		if nSmall > n-1 {
			nSmall = n - 1
		}
		for i := 0; i < n; i++ {
			if i < nSmall {
				r[i] = rSmall
			} else {
				r[i] = rLarge
			}
		}
	case Poly:
		if len(params) < 2 {
			return nil, fmt.Errorf("configuration: poly dispersity requires 2 parameters (r0, sigma)")
		}
		r0, sigma := params[0], params[1]
		if r0 <= 0 {
			return nil, fmt.Errorf("configuration: poly dispersity r0 must be positive")
		}
		correction := -0.5 * sigma * sigma
		for i := range r {
			z := stream.Normal()
			r[i] = r0 * math.Exp(sigma*z+correction)
		}
	default:
		return nil, fmt.Errorf("configuration: unknown dispersity code %d", disp)
	}
	return r, nil
}

// Set overwrites the position of disk i, wrapping each coordinate with
// geometry.Wrap.
func (c *Configuration) Set(i int, x, y float64) {
	c.X[i] = geometry.Wrap(x, c.L)
	c.Y[i] = geometry.Wrap(y, c.L)
}

// MinDistSq returns the squared minimum-image distance between disks i and
// j under this Configuration's cell.
func (c *Configuration) MinDistSq(i, j int) float64 {
	return geometry.MinImageDistSq(c.X[i], c.Y[i], c.X[j], c.Y[j], c.L)
}

// AnyOverlap scans every unordered pair and reports whether any two disks
// overlap (squared distance strictly less than the squared sum of radii;
// touching disks, where the two are equal, are not an overlap).
func (c *Configuration) AnyOverlap() bool {
	for i := 0; i < c.N-1; i++ {
		for j := i + 1; j < c.N; j++ {
			rSum := c.R[i] + c.R[j]
			if c.MinDistSq(i, j) < rSum*rSum {
				return true
			}
		}
	}
	return false
}

// MinRadius returns the smallest radius in the configuration.
func (c *Configuration) MinRadius() float64 {
	m := c.R[0]
	for _, ri := range c.R[1:] {
		if ri < m {
			m = ri
		}
	}
	return m
}
