// Package scenario calibrates scenario zero curves: a base curve plus zero
// spreads solved node by node so that the scenario curve sits a target spread
// away from the base curve at every horizon.
package scenario

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"

	"github.com/meenmo/scencurve/config"
	"github.com/meenmo/scencurve/solver"
	"github.com/meenmo/scencurve/termstructure"
	"github.com/meenmo/scencurve/utils"
)

const (
	// HorizonLimit is the last node with its own target; later nodes reuse
	// the schedule's final entry.
	HorizonLimit = 35
	// MaxNode is the last node index ever calibrated.
	MaxNode = 99
)

// Run is one calibration: inputs plus the live spread table and the scenario
// curve reading from it. Runs never share state.
type Run struct {
	ID        uuid.UUID
	Base      termstructure.NodeCurve
	Table     *SpreadTable
	Scenario  *termstructure.SpreadedCurve
	Targets   []float64
	Valuation time.Time
	Strategy  Strategy

	// PassResiduals holds the sum of squared node residuals after each pass.
	PassResiduals []float64

	cfg    config.Config
	logger *slog.Logger
}

// Option customises a calibration.
type Option func(*options)

type options struct {
	cfg      config.Config
	strategy Strategy
	logger   *slog.Logger
}

// WithConfig replaces config.DefaultConfig.
func WithConfig(cfg config.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithPasses overrides the number of sweeps.
func WithPasses(n int) Option {
	return func(o *options) { o.cfg.Passes = n }
}

// WithStrategy overrides the strategy named in the configuration.
func WithStrategy(s Strategy) Option {
	return func(o *options) { o.strategy = s }
}

// WithLogger sets the logger. Calibration is silent by default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Calibrate returns base plus the zero spreads that put the scenario curve
// targets[t] away from base at node t (targets[len-1] beyond HorizonLimit).
// Any node failure aborts the whole calibration.
func Calibrate(base termstructure.NodeCurve, targets []float64, valuation time.Time, opts ...Option) (*termstructure.SpreadedCurve, error) {
	run, err := CalibrateRun(base, targets, valuation, opts...)
	if err != nil {
		return nil, err
	}
	return run.Scenario, nil
}

// CalibrateRun is Calibrate returning the full run state.
func CalibrateRun(base termstructure.NodeCurve, targets []float64, valuation time.Time, opts ...Option) (*Run, error) {
	run, err := newRun(base, targets, valuation, opts...)
	if err != nil {
		return nil, err
	}
	if err := run.solve(); err != nil {
		return nil, err
	}
	return run, nil
}

func newRun(base termstructure.NodeCurve, targets []float64, valuation time.Time, opts ...Option) (*Run, error) {
	o := options{cfg: config.DefaultConfig}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("calibrate: %w", err)
	}
	if o.strategy == nil {
		s, err := NewStrategy(o.cfg)
		if err != nil {
			return nil, fmt.Errorf("calibrate: %w", err)
		}
		o.strategy = s
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if base == nil {
		return nil, fmt.Errorf("calibrate: %w", termstructure.ErrNilCurve)
	}
	dates := base.Dates()
	if err := validate(len(dates), targets); err != nil {
		return nil, err
	}

	run := &Run{
		ID:        uuid.New(),
		Base:      base,
		Table:     NewSpreadTable(dates),
		Targets:   append([]float64(nil), targets...),
		Valuation: valuation,
		Strategy:  o.strategy,
		cfg:       o.cfg,
	}
	run.logger = o.logger.With("run_id", run.ID.String())

	scen, err := termstructure.NewSpreadedCurve(base, run.Table, dates)
	if err != nil {
		return nil, fmt.Errorf("calibrate: %w", err)
	}
	run.Scenario = scen
	return run, nil
}

// LastNode is the highest node index calibrated for a curve with n dates.
func LastNode(n int) int {
	return min(MaxNode, n-1)
}

func validate(nDates int, targets []float64) error {
	if nDates < 2 {
		return fmt.Errorf("calibrate: base curve has %d dates, need at least 2: %w", nDates, ErrIndexOutOfRange)
	}
	if len(targets) == 0 {
		return fmt.Errorf("calibrate: empty target spread schedule: %w", ErrIndexOutOfRange)
	}
	if need := min(LastNode(nDates), HorizonLimit); len(targets) <= need {
		return fmt.Errorf("calibrate: target schedule has %d entries, node %d needs index %d: %w",
			len(targets), need, need, ErrIndexOutOfRange)
	}
	for i, s := range targets {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return fmt.Errorf("calibrate: target %d is %g: %w", i, s, ErrInvalidTarget)
		}
	}
	return nil
}

// TargetFor returns the effective target of node t.
func TargetFor(targets []float64, t int) (float64, error) {
	if len(targets) == 0 {
		return 0, fmt.Errorf("TargetFor: empty schedule: %w", ErrIndexOutOfRange)
	}
	if t > HorizonLimit {
		return targets[len(targets)-1], nil
	}
	if t < 0 || t >= len(targets) {
		return 0, fmt.Errorf("TargetFor: node %d outside schedule of %d: %w", t, len(targets), ErrIndexOutOfRange)
	}
	return targets[t], nil
}

// Node returns node t of the run.
func (r *Run) Node(t int) (Node, error) {
	if t < 1 || t >= r.Table.Len() {
		return Node{}, fmt.Errorf("Node: %d outside 1..%d: %w", t, r.Table.Len()-1, ErrIndexOutOfRange)
	}
	target, err := TargetFor(r.Targets, t)
	if err != nil {
		return Node{}, err
	}
	return Node{
		Index:  t,
		Date:   r.Table.Date(t),
		Anchor: r.Table.Date(t - 1),
		Target: target,
	}, nil
}

// solve runs the sweeps. Nodes are solved in ascending order and passes in
// sequence; each solve sees every spread written before it.
func (r *Run) solve() error {
	last := LastNode(r.Table.Len())
	r.logger.Info("calibration started",
		"strategy", r.Strategy.Name(),
		"passes", r.cfg.Passes,
		"nodes", last,
		"valuation", r.Valuation.Format(utils.DateLayout))

	for pass := 1; pass <= r.cfg.Passes; pass++ {
		for t := 1; t <= last; t++ {
			node, err := r.Node(t)
			if err != nil {
				return err
			}
			obj := Objective{run: r, node: node, strategy: r.Strategy}
			res, err := solver.Newton(obj.Eval, node.Target*r.cfg.SeedFactor, r.cfg.Solver)
			if err != nil {
				cerr := &ConvergenceError{
					Pass:       pass,
					Node:       t,
					Date:       node.Date,
					Target:     node.Target,
					Iterations: res.Iterations,
					Residual:   res.Residual,
					Err:        err,
				}
				r.logger.Error("node solve failed", "error", cerr)
				return cerr
			}
			r.Table.Set(t, res.Root)
			r.logger.Debug("node solved",
				"pass", pass,
				"node", t,
				"date", node.Date.Format(utils.DateLayout),
				"target", node.Target,
				"spread", res.Root,
				"iterations", res.Iterations)
		}

		residuals, err := r.Residuals()
		if err != nil {
			return err
		}
		ssr := floats.Dot(residuals, residuals)
		r.PassResiduals = append(r.PassResiduals, ssr)
		r.logger.Info("pass complete", "pass", pass, "ssr", ssr)
	}
	return nil
}

// Residuals evaluates every node's residual at the current spreads.
func (r *Run) Residuals() ([]float64, error) {
	last := LastNode(r.Table.Len())
	out := make([]float64, 0, last)
	for t := 1; t <= last; t++ {
		node, err := r.Node(t)
		if err != nil {
			return nil, err
		}
		// Writing the current value back leaves the table unchanged.
		out = append(out, r.Strategy.Residual(r, node, r.Table.Value(t)))
	}
	return out, nil
}

// IsConvergenceFailure reports whether err came from a node solve.
func IsConvergenceFailure(err error) bool {
	var cerr *ConvergenceError
	return errors.As(err, &cerr)
}
