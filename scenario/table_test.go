package scenario

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/scencurve/config"
	"github.com/meenmo/scencurve/termstructure"
	"github.com/meenmo/scencurve/utils"
)

func yearly(n int) []time.Time {
	out := make([]time.Time, n)
	for i := range out {
		out[i] = time.Date(2020+i, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	return out
}

func TestSpreadTable(t *testing.T) {
	t.Parallel()

	dates := yearly(3)
	table := NewSpreadTable(dates)
	dates[0] = time.Time{}

	assert.Equal(t, 3, table.Len())
	assert.Equal(t, 2020, table.Date(0).Year())

	table.Set(1, 0.01)
	snap := table.Values()
	table.Set(1, 0.02)
	assert.Equal(t, []float64{0, 0.01, 0}, snap)
	assert.Equal(t, 0.02, table.Value(1))
}

func TestRunNode(t *testing.T) {
	t.Parallel()

	dates := yearly(40)
	base, err := termstructure.NewFlatZeroCurve(dates, 0.02, utils.ActAct, termstructure.Compounded, termstructure.Annual)
	require.NoError(t, err)

	targets := make([]float64, 36)
	targets[5] = 0.001
	targets[35] = 0.004
	run, err := newRun(base, targets, dates[0])
	require.NoError(t, err)

	node, err := run.Node(5)
	require.NoError(t, err)
	assert.Equal(t, Node{Index: 5, Date: dates[5], Anchor: dates[4], Target: 0.001}, node)

	node, err = run.Node(39)
	require.NoError(t, err)
	assert.Equal(t, 0.004, node.Target)

	_, err = run.Node(0)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	_, err = run.Node(40)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
}

func TestObjectiveWritesTrial(t *testing.T) {
	t.Parallel()

	dates := yearly(5)
	base, err := termstructure.NewFlatZeroCurve(dates, 0.02, utils.ActAct, termstructure.Compounded, termstructure.Annual)
	require.NoError(t, err)
	run, err := newRun(base, []float64{0, 0.01, 0.01, 0.01, 0.01}, dates[0])
	require.NoError(t, err)

	node, err := run.Node(2)
	require.NoError(t, err)
	obj := Objective{run: run, node: node, strategy: run.Strategy}

	r := obj.Eval(0.003)
	assert.Equal(t, 0.003, run.Table.Value(2))
	assert.Less(t, r, 0.0)
	assert.Greater(t, obj.Eval(0.05), 0.0)
}

func TestNewStrategy(t *testing.T) {
	t.Parallel()

	s, err := NewStrategy(config.DefaultConfig)
	require.NoError(t, err)
	assert.Equal(t, ForwardMatch{Tenor: 1, Compounding: termstructure.Compounded, Frequency: termstructure.Annual}, s)

	cfg := config.DefaultConfig
	cfg.Strategy = config.StrategySpot
	s, err = NewStrategy(cfg)
	require.NoError(t, err)
	assert.Equal(t, config.StrategySpot, s.Name())

	cfg.Strategy = "sideways"
	_, err = NewStrategy(cfg)
	assert.Error(t, err)

	cfg = config.DefaultConfig
	cfg.Compounding = "weird"
	_, err = NewStrategy(cfg)
	assert.Error(t, err)
}
