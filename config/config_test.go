package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig, cfg)
}

func TestLoad_OverlaysYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calib.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
passes: 3
strategy: Spot
solver:
  max_iterations: 20
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Passes)
	assert.Equal(t, StrategySpot, cfg.Strategy)
	assert.Equal(t, 20, cfg.Solver.MaxIterations)
	// Untouched keys keep their defaults.
	assert.Equal(t, DefaultConfig.Solver.Tolerance, cfg.Solver.Tolerance)
	assert.Equal(t, DefaultConfig.SeedFactor, cfg.SeedFactor)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SCENCURVE_PASSES", "1")
	t.Setenv("SCENCURVE_STRATEGY", "spot")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Passes)
	assert.Equal(t, StrategySpot, cfg.Strategy)
}

func TestLoad_Rejects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("passes: 0\n"), 0o600))
	_, err := Load(path)
	assert.ErrorContains(t, err, "passes")

	require.NoError(t, os.WriteFile(path, []byte("passes: [\n"), 0o600))
	_, err = Load(path)
	assert.ErrorContains(t, err, "parse config")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, DefaultConfig.Validate())

	c := DefaultConfig
	c.Strategy = "par"
	assert.Error(t, c.Validate())

	c = DefaultConfig
	c.Solver.Step = 0
	assert.Error(t, c.Validate())

	c = DefaultConfig
	c.ForwardTenorYears = -1
	assert.Error(t, c.Validate())
}
