package mc

import (
	"math"
	"testing"

	"github.com/dormrod/hard-disk-monte-carlo/internal/configuration"
	"github.com/dormrod/hard-disk-monte-carlo/internal/rng"
	"github.com/stretchr/testify/assert"
)

func newTestConfig(t *testing.T, n int, phi float64, seed int64) *configuration.Configuration {
	t.Helper()
	stream := rng.New(seed)
	cfg, err := configuration.New(n, phi, configuration.Mono, []float64{0.5}, stream)
	assert.NoError(t, err)
	// Spread particles out over a square grid so a small delta never overlaps.
	side := int(math.Ceil(math.Sqrt(float64(n))))
	spacing := cfg.L / float64(side)
	for i := 0; i < n; i++ {
		cfg.Set(i, -cfg.CellLen_2+float64(i%side)*spacing, -cfg.CellLen_2+float64(i/side)*spacing)
	}
	return cfg
}

func TestCycleReturnsAtMostN(t *testing.T) {
	cfg := newTestConfig(t, 8, 0.02, 1)
	k := NewKernel(cfg, rng.New(2), 0, 1e-6)
	accepted := k.Cycle()
	assert.LessOrEqual(t, accepted, cfg.N)
	assert.GreaterOrEqual(t, accepted, 0)
}

func TestAcceptanceCounterNeverDecreases(t *testing.T) {
	cfg := newTestConfig(t, 8, 0.02, 1)
	k := NewKernel(cfg, rng.New(2), 0, 1e-6)
	prev := 0
	for i := 0; i < 20; i++ {
		k.Cycle()
		assert.GreaterOrEqual(t, k.Accepted, prev)
		prev = k.Accepted
	}
}

func TestVanishingDeltaAlwaysAccepted(t *testing.T) {
	cfg := newTestConfig(t, 8, 0.02, 1)
	k := NewKernel(cfg, rng.New(2), 0, 0)
	for i := 0; i < 50; i++ {
		accepted := k.Cycle()
		assert.Equal(t, cfg.N, accepted)
	}
}

func TestNoOverlapAfterManyCycles(t *testing.T) {
	cfg := newTestConfig(t, 12, 0.15, 3)
	k := NewKernel(cfg, rng.New(4), 0.2, 0.1)
	for i := 0; i < 200; i++ {
		k.Cycle()
		assert.False(t, cfg.AnyOverlap())
	}
}

func TestSwapPreservesRadiusMultisetUnderMono(t *testing.T) {
	cfg := newTestConfig(t, 10, 0.05, 5)
	before := append([]float64(nil), cfg.R...)
	k := NewKernel(cfg, rng.New(6), 1.0, 0.05)
	for i := 0; i < 100; i++ {
		k.Cycle()
	}
	assert.ElementsMatch(t, before, cfg.R)
}

func TestSwapProbZeroNeverInvokesSwap(t *testing.T) {
	cfg := newTestConfig(t, 6, 0.03, 7)
	before := append([]float64(nil), cfg.R...)
	k := NewKernel(cfg, rng.New(8), 0, 0.05)
	for i := 0; i < 500; i++ {
		k.Cycle()
	}
	assert.Equal(t, before, cfg.R)
}

func TestCoordinatesStayInCell(t *testing.T) {
	cfg := newTestConfig(t, 8, 0.05, 9)
	k := NewKernel(cfg, rng.New(10), 0.3, 0.2)
	for i := 0; i < 100; i++ {
		k.Cycle()
		for j := 0; j < cfg.N; j++ {
			assert.GreaterOrEqual(t, cfg.X[j], -cfg.CellLen_2)
			assert.Less(t, cfg.X[j], cfg.CellLen_2)
			assert.GreaterOrEqual(t, cfg.Y[j], -cfg.CellLen_2)
			assert.Less(t, cfg.Y[j], cfg.CellLen_2)
		}
	}
}
