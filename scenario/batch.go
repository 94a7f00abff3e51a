package scenario

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/meenmo/scencurve/termstructure"
)

// CalibrateAll calibrates one scenario per target schedule against the same
// base curve. Each scenario gets its own spread table; the base curve is only
// read. workers <= 0 uses GOMAXPROCS. The first failure cancels the
// remaining scenarios and is returned.
func CalibrateAll(ctx context.Context, base termstructure.NodeCurve, schedules [][]float64, valuation time.Time, workers int, opts ...Option) ([]*termstructure.SpreadedCurve, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := make([]*termstructure.SpreadedCurve, len(schedules))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, targets := range schedules {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			curve, err := Calibrate(base, targets, valuation, opts...)
			if err != nil {
				return fmt.Errorf("scenario %d: %w", i, err)
			}
			out[i] = curve
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
