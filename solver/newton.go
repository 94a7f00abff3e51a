// Package solver holds the scalar root finder used for per-node calibration.
package solver

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"

	"github.com/meenmo/scencurve/config"
)

// ErrNoConvergence is returned when Newton iteration cannot reach a root.
var ErrNoConvergence = errors.New("no convergence")

// Func is a scalar objective.
type Func func(x float64) float64

// Result describes the last Newton iterate. It is populated on failure too.
type Result struct {
	Root       float64
	Residual   float64
	Iterations int
}

// Newton solves f(x) = 0 from x0 using Newton-Raphson with a central
// finite-difference derivative.
//
// f is evaluated strictly sequentially: objectives that write their trial
// value into shared state rely on it.
func Newton(f Func, x0 float64, s config.Solver) (Result, error) {
	settings := &fd.Settings{
		Formula: fd.Central,
		Step:    s.Step,
	}

	x := x0
	fx := f(x)
	for iter := 0; ; iter++ {
		res := Result{Root: x, Residual: fx, Iterations: iter}
		if math.IsNaN(fx) || math.IsInf(fx, 0) {
			return res, fmt.Errorf("Newton: objective not finite at x=%g: %w", x, ErrNoConvergence)
		}
		if math.Abs(fx) <= s.Tolerance {
			return res, nil
		}
		if iter >= s.MaxIterations {
			return res, fmt.Errorf("Newton: %d iterations exhausted, residual %g: %w", iter, fx, ErrNoConvergence)
		}

		derivative := fd.Derivative(f, x, settings)
		if math.IsNaN(derivative) || math.IsInf(derivative, 0) {
			return res, fmt.Errorf("Newton: derivative not finite at x=%g: %w", x, ErrNoConvergence)
		}
		if math.Abs(derivative) < s.DerivativeThreshold {
			return res, fmt.Errorf("Newton: flat derivative %g at x=%g: %w", derivative, x, ErrNoConvergence)
		}

		delta := fx / derivative
		x -= delta
		fx = f(x)
		// A vanishing step only counts near a root.
		if math.Abs(delta) <= s.Tolerance*(1+math.Abs(x)) && math.Abs(fx) <= math.Sqrt(s.Tolerance) {
			return Result{Root: x, Residual: fx, Iterations: iter + 1}, nil
		}
	}
}
