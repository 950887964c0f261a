package rdf

import (
	"testing"

	"github.com/dormrod/hard-disk-monte-carlo/internal/configuration"
	"github.com/dormrod/hard-disk-monte-carlo/internal/rng"
	"github.com/stretchr/testify/assert"
)

func TestNewAccumulatorBinCount(t *testing.T) {
	a := NewAccumulator(5.0, 0.5)
	assert.Equal(t, 11, len(a.Hist))
}

func TestSampleCountsJustInsideHalfCell(t *testing.T) {
	cfg, err := configuration.New(2, 0.01, configuration.Mono, []float64{0.1}, rng.New(1))
	assert.NoError(t, err)
	cfg.Set(0, 0, 0)
	cfg.Set(1, cfg.CellLen_2-1e-9, 0) // just inside half-cell
	a := NewAccumulator(cfg.CellLen_2, 0.05)
	a.Sample(cfg)
	total := 0
	for _, c := range a.Hist {
		total += c
	}
	assert.Equal(t, 2, total)
}

func TestSampleAtExactlyHalfCellNotCounted(t *testing.T) {
	cfg, err := configuration.New(2, 0.01, configuration.Mono, []float64{0.1}, rng.New(1))
	assert.NoError(t, err)
	cfg.Set(0, 0, 0)
	cfg.Set(1, cfg.CellLen_2, 0)
	a := NewAccumulator(cfg.CellLen_2, 0.05)
	a.Sample(cfg)
	total := 0
	for _, c := range a.Hist {
		total += c
	}
	assert.Equal(t, 0, total)
}

func TestFinaliseRawCounts(t *testing.T) {
	hist := []int{4, 8}
	res := Finalise(hist, 0.5, 10, 20, 3, false)
	assert.Equal(t, 4.0, res[0].G)
	assert.Equal(t, 8.0, res[1].G)
	assert.InDelta(t, 0.25, res[0].R, 1e-12)
	assert.InDelta(t, 0.75, res[1].R, 1e-12)
}

func TestFinaliseNormalisedNonNegative(t *testing.T) {
	hist := []int{0, 10, 20, 15, 12}
	res := Finalise(hist, 0.1, 50, 30, 100, true)
	for _, r := range res {
		assert.GreaterOrEqual(t, r.G, 0.0)
	}
}
