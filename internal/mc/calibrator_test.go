package mc

import (
	"math"
	"testing"

	"github.com/dormrod/hard-disk-monte-carlo/internal/configuration"
	"github.com/dormrod/hard-disk-monte-carlo/internal/relax"
	"github.com/dormrod/hard-disk-monte-carlo/internal/rng"
	"github.com/stretchr/testify/assert"
)

func newRelaxedConfig(t *testing.T, n int, phi float64, seed int64) *configuration.Configuration {
	t.Helper()
	stream := rng.New(seed)
	cfg, err := configuration.New(n, phi, configuration.Mono, []float64{0.5}, stream)
	assert.NoError(t, err)
	x, y, err := relax.Resolve(cfg.N, cfg.R, cfg.L, stream)
	assert.NoError(t, err)
	copy(cfg.X, x)
	copy(cfg.Y, y)
	assert.False(t, cfg.AnyOverlap())
	return cfg
}

func TestCalibrateConvergesForModerateDensity(t *testing.T) {
	cfg := newRelaxedConfig(t, 50, 0.40, 11)
	k := NewKernel(cfg, rng.New(12), 0, cfg.CellLen_2)
	code, accProb := k.Calibrate(0.5)
	if code == Converged {
		assert.InDelta(t, 0.5, accProb, calibrationTol+1e-9)
	}
	assert.Greater(t, k.TransDelta, 0.0)
	assert.LessOrEqual(t, k.TransDelta, cfg.CellLen_2)
}

func TestCalibrateFlagsTooDenseAtHighPackingFraction(t *testing.T) {
	cfg := newRelaxedConfig(t, 50, 0.70, 13)
	k := NewKernel(cfg, rng.New(14), 0, cfg.CellLen_2)
	code, _ := k.Calibrate(0.5)
	assert.Equal(t, TooDense, code)
}

func TestBracketProbabilityInRangeAndDeltaFinite(t *testing.T) {
	cfg := newRelaxedConfig(t, 30, 0.25, 15)
	k := NewKernel(cfg, rng.New(16), 0, cfg.CellLen_2)
	deltaMin := 0.01 * cfg.MinRadius()
	deltaMax := cfg.CellLen_2
	_, prob := k.bracket(deltaMin, deltaMax, 0.5)
	assert.GreaterOrEqual(t, prob, 0.0)
	assert.LessOrEqual(t, prob, 1.0)
	assert.False(t, math.IsNaN(k.TransDelta))
}
