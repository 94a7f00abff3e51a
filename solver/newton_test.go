package solver

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/scencurve/config"
)

var settings = config.DefaultConfig.Solver

func TestNewton_Sqrt2(t *testing.T) {
	t.Parallel()

	res, err := Newton(func(x float64) float64 { return x*x - 2 }, 1, settings)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, res.Root, 1e-12)
	assert.LessOrEqual(t, res.Iterations, 10)
}

func TestNewton_ZeroSeed(t *testing.T) {
	t.Parallel()

	// Root at the seed: no step is taken.
	res, err := Newton(func(x float64) float64 { return 3 * x }, 0, settings)
	require.NoError(t, err)
	assert.Zero(t, res.Root)
	assert.Zero(t, res.Iterations)

	// Zero seed away from the root.
	res, err = Newton(func(x float64) float64 { return math.Exp(x) - 1.005 }, 0, settings)
	require.NoError(t, err)
	assert.InDelta(t, math.Log(1.005), res.Root, 1e-11)
}

func TestNewton_SequentialEvaluation(t *testing.T) {
	t.Parallel()

	// The objective mirrors calibration: it writes the trial into shared state
	// and reads it back.
	var shared float64
	f := func(x float64) float64 {
		shared = x
		return 10*shared - 0.05
	}
	res, err := Newton(f, 0.0525, settings)
	require.NoError(t, err)
	assert.LessOrEqual(t, math.Abs(res.Residual), settings.Tolerance)
	assert.InDelta(t, 0.005, res.Root, 1e-12)
	// The last evaluation is at the returned root.
	assert.Equal(t, res.Root, shared)
}

func TestNewton_Failures(t *testing.T) {
	t.Parallel()

	res, err := Newton(func(x float64) float64 { return x*x + 1 }, 0.3, settings)
	assert.True(t, errors.Is(err, ErrNoConvergence))
	assert.Greater(t, res.Residual, 0.0)

	_, err = Newton(func(float64) float64 { return 1 }, 0, settings)
	assert.True(t, errors.Is(err, ErrNoConvergence))
	assert.ErrorContains(t, err, "flat derivative")

	// Infinite slope on one side of the seed.
	res, err = Newton(func(x float64) float64 {
		if x > 0.5 {
			return math.Inf(1)
		}
		return 1
	}, 0.5, settings)
	assert.True(t, errors.Is(err, ErrNoConvergence))
	assert.ErrorContains(t, err, "derivative not finite")
	assert.Equal(t, 1.0, res.Residual)

	_, err = Newton(func(float64) float64 { return math.NaN() }, 0, settings)
	assert.True(t, errors.Is(err, ErrNoConvergence))

	short := settings
	short.MaxIterations = 1
	res, err = Newton(func(x float64) float64 { return x*x*x - 8 }, 100, short)
	assert.True(t, errors.Is(err, ErrNoConvergence))
	assert.Equal(t, 1, res.Iterations)
}
