package scenario

import (
	"errors"
	"fmt"
	"time"

	"github.com/meenmo/scencurve/utils"
)

var (
	// ErrIndexOutOfRange is returned when the base curve or the target
	// schedule is too short for the node range being calibrated.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrInvalidTarget is returned for non-finite target spreads.
	ErrInvalidTarget = errors.New("invalid target spread")
)

// ConvergenceError reports the node whose solve failed. It aborts the run.
type ConvergenceError struct {
	Pass       int
	Node       int
	Date       time.Time // date of the failed node
	Target     float64
	Iterations int
	Residual   float64
	Err        error
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("calibrate: pass %d node %d (%s) target %g: residual %g after %d iterations: %v",
		e.Pass, e.Node, e.Date.Format(utils.DateLayout), e.Target, e.Residual, e.Iterations, e.Err)
}

func (e *ConvergenceError) Unwrap() error { return e.Err }
