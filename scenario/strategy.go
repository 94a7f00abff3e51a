package scenario

import (
	"fmt"
	"time"

	"github.com/meenmo/scencurve/config"
	"github.com/meenmo/scencurve/termstructure"
	"github.com/meenmo/scencurve/utils"
)

// Node is one calibration point: the spread at Index is the free variable,
// Anchor is the date the forward strategy measures from (the previous node).
type Node struct {
	Index  int
	Date   time.Time
	Anchor time.Time
	Target float64
}

// Strategy is a rate-matching convention. Residual writes trial into the
// run's spread table at node.Index and returns scenario rate minus base rate
// minus the node target.
type Strategy interface {
	Name() string
	Residual(run *Run, node Node, trial float64) float64
}

// ForwardMatch matches the Tenor-year zero rate of curves implied at the
// node's anchor date.
type ForwardMatch struct {
	Tenor       float64
	Compounding termstructure.Compounding
	Frequency   termstructure.Frequency
}

func (ForwardMatch) Name() string { return config.StrategyForward }

func (m ForwardMatch) Residual(run *Run, node Node, trial float64) float64 {
	run.Table.Set(node.Index, trial)
	scen := run.Scenario.Implied(node.Anchor).ZeroRate(m.Tenor, m.Compounding, m.Frequency)
	base := run.Base.Implied(node.Anchor).ZeroRate(m.Tenor, m.Compounding, m.Frequency)
	return scen - base - node.Target
}

// SpotMatch matches zero rates at the node date, timed ACT/ACT from the
// valuation date.
type SpotMatch struct {
	Compounding termstructure.Compounding
	Frequency   termstructure.Frequency
}

func (SpotMatch) Name() string { return config.StrategySpot }

func (m SpotMatch) Residual(run *Run, node Node, trial float64) float64 {
	run.Table.Set(node.Index, trial)
	t := utils.YearFraction(run.Valuation, node.Date, utils.ActAct)
	scen := run.Scenario.ZeroRate(t, m.Compounding, m.Frequency)
	base := run.Base.ZeroRate(t, m.Compounding, m.Frequency)
	return scen - base - node.Target
}

// NewStrategy builds the strategy named in cfg.
func NewStrategy(cfg config.Config) (Strategy, error) {
	comp, err := termstructure.ParseCompounding(cfg.Compounding)
	if err != nil {
		return nil, err
	}
	freq := termstructure.Frequency(cfg.Frequency)
	switch cfg.Strategy {
	case config.StrategyForward:
		return ForwardMatch{Tenor: cfg.ForwardTenorYears, Compounding: comp, Frequency: freq}, nil
	case config.StrategySpot:
		return SpotMatch{Compounding: comp, Frequency: freq}, nil
	default:
		return nil, fmt.Errorf("NewStrategy: unknown strategy %q", cfg.Strategy)
	}
}

// Objective binds a strategy to one node of one run.
type Objective struct {
	run      *Run
	node     Node
	strategy Strategy
}

// Eval writes trial into the node and returns the residual.
func (o Objective) Eval(trial float64) float64 {
	return o.strategy.Residual(o.run, o.node, trial)
}
