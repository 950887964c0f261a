package voronoi

import (
	"testing"

	"github.com/dormrod/hard-disk-monte-carlo/internal/configuration"
	"github.com/dormrod/hard-disk-monte-carlo/internal/rng"
	geomvoronoi "github.com/dormrod/hard-disk-monte-carlo/internal/voronoi"
	"github.com/stretchr/testify/assert"
)

// squareLatticeConfig returns a Configuration whose N sites sit on a
// perfectly periodic n x n unit-spacing grid, so every cell under the
// standard Voronoi diagram has exactly four vertices.
func squareLatticeConfig(t *testing.T, n int) *configuration.Configuration {
	t.Helper()
	cfg, err := configuration.New(n*n, 0.01, configuration.Mono, []float64{0.01}, rng.New(1))
	assert.NoError(t, err)
	cfg.L = float64(n)
	cfg.CellLen_2 = cfg.L / 2
	cfg.RCellLen = 1 / cfg.L
	idx := 0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			cfg.X[idx] = -cfg.L/2 + float64(j) + 0.5
			cfg.Y[idx] = -cfg.L/2 + float64(i) + 0.5
			idx++
		}
	}
	return cfg
}

func TestSampleSizesSumToN(t *testing.T) {
	cfg := squareLatticeConfig(t, 6)
	a := NewAggregator(geomvoronoi.NewPlanarTessellator(), false)
	_, err := a.Sample(cfg)
	assert.NoError(t, err)

	total := 0
	for _, s := range a.Sizes {
		total += s
	}
	assert.Equal(t, cfg.N, total)
}

func TestSampleAdjacencyClosureIdentity(t *testing.T) {
	cfg := squareLatticeConfig(t, 6)
	a := NewAggregator(geomvoronoi.NewPlanarTessellator(), false)
	_, err := a.Sample(cfg)
	assert.NoError(t, err)

	for k := 0; k < MaxVertices; k++ {
		rowSum := 0
		for l := 0; l < MaxVertices; l++ {
			rowSum += a.Adjs[k][l]
		}
		assert.Equal(t, k*a.Sizes[k], rowSum, "row %d: sum_l Adjs[k][l] must equal k*Sizes[k]", k)
	}
}

func TestSampleAndAggregateClosureHoldsAcrossMultipleSnapshots(t *testing.T) {
	cfg := squareLatticeConfig(t, 6)
	a := NewAggregator(geomvoronoi.NewPlanarTessellator(), false)

	for i := 0; i < 3; i++ {
		_, err := a.Sample(cfg)
		assert.NoError(t, err)
	}

	total := 0
	for _, s := range a.Sizes {
		total += s
	}
	assert.Equal(t, 3*cfg.N, total)

	for k := 0; k < MaxVertices; k++ {
		rowSum := 0
		for l := 0; l < MaxVertices; l++ {
			rowSum += a.Adjs[k][l]
		}
		assert.Equal(t, k*a.Sizes[k], rowSum)
	}

	agg := a.Aggregate()
	sum := 0.0
	for _, p := range agg.SizeDist {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestSampleSquareLatticeSizeDistConcentratedAtFour(t *testing.T) {
	cfg := squareLatticeConfig(t, 6)
	a := NewAggregator(geomvoronoi.NewPlanarTessellator(), false)
	snap, err := a.Sample(cfg)
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, snap.SizeDist[4], 1e-9)
	assert.InDelta(t, 4.0, snap.K1, 1e-9)
}
