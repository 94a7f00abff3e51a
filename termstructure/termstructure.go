// Package termstructure implements the zero-coupon yield curves the scenario
// calibration consumes: an interpolated zero curve, forward-anchored implied
// views and live zero-spread overlays.
package termstructure

import (
	"errors"
	"time"

	"github.com/meenmo/scencurve/utils"
)

var (
	// ErrNilCurve is returned when a required curve argument is nil.
	ErrNilCurve = errors.New("nil curve")
	// ErrInvalidNodes is returned when curve node dates or values are unusable.
	ErrInvalidNodes = errors.New("invalid curve nodes")
)

// YieldCurve is a term structure queryable by time (years from ReferenceDate
// under DayCount) or by date.
type YieldCurve interface {
	ReferenceDate() time.Time
	DayCount() string
	Discount(t float64) float64
	ZeroRate(t float64, comp Compounding, freq Frequency) float64
	// Implied returns the same curve viewed from a later reference date.
	Implied(anchor time.Time) YieldCurve
}

// NodeCurve is a YieldCurve defined on an explicit date grid.
type NodeCurve interface {
	YieldCurve
	Dates() []time.Time
}

// SpreadSource exposes live, indexable spread values. Implementations are read
// on every curve query, so mutations are visible without rebuilding.
type SpreadSource interface {
	Len() int
	Value(i int) float64
}

// zeroTimeStep replaces t = 0 when converting a discount factor to a rate.
const zeroTimeStep = 1e-4

// TimeFromReference returns the curve time of d.
func TimeFromReference(c YieldCurve, d time.Time) float64 {
	return utils.YearFraction(c.ReferenceDate(), d, c.DayCount())
}

// DiscountAt returns the discount factor at date d.
func DiscountAt(c YieldCurve, d time.Time) float64 {
	return c.Discount(TimeFromReference(c, d))
}

// ZeroRateAt returns the zero rate to date d.
func ZeroRateAt(c YieldCurve, d time.Time, comp Compounding, freq Frequency) float64 {
	return c.ZeroRate(TimeFromReference(c, d), comp, freq)
}

// ForwardRate returns the rate implied between start and end.
func ForwardRate(c YieldCurve, start, end time.Time, comp Compounding, freq Frequency) float64 {
	t1 := TimeFromReference(c, start)
	t2 := TimeFromReference(c, end)
	if t2 == t1 {
		t2 = t1 + zeroTimeStep
	}
	return ImpliedRate(c.Discount(t2)/c.Discount(t1), t2-t1, comp, freq)
}

func zeroRate(c YieldCurve, t float64, comp Compounding, freq Frequency) float64 {
	if t == 0 {
		t = zeroTimeStep
	}
	return ImpliedRate(c.Discount(t), t, comp, freq)
}

var (
	_ NodeCurve  = (*ZeroCurve)(nil)
	_ NodeCurve  = (*SpreadedCurve)(nil)
	_ YieldCurve = (*ImpliedCurve)(nil)
)
