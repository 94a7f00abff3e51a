package termstructure

import (
	"fmt"
	"math"
	"time"
)

// SpreadedCurve is a base curve plus a continuously compounded zero spread
// interpolated linearly between node dates and held flat outside them.
// Spread values are read from the SpreadSource on every query.
type SpreadedCurve struct {
	base    YieldCurve
	spreads SpreadSource
	dates   []time.Time
	times   []float64
}

// NewSpreadedCurve overlays spreads, one per date, on base.
func NewSpreadedCurve(base YieldCurve, spreads SpreadSource, dates []time.Time) (*SpreadedCurve, error) {
	if base == nil {
		return nil, fmt.Errorf("NewSpreadedCurve: %w", ErrNilCurve)
	}
	if spreads == nil || len(dates) == 0 {
		return nil, fmt.Errorf("NewSpreadedCurve: no spread nodes: %w", ErrInvalidNodes)
	}
	if spreads.Len() != len(dates) {
		return nil, fmt.Errorf("NewSpreadedCurve: %d spreads for %d dates: %w", spreads.Len(), len(dates), ErrInvalidNodes)
	}
	if err := checkIncreasing(dates); err != nil {
		return nil, fmt.Errorf("NewSpreadedCurve: dates must be strictly increasing: %w", err)
	}
	c := &SpreadedCurve{
		base:    base,
		spreads: spreads,
		dates:   make([]time.Time, len(dates)),
		times:   make([]float64, len(dates)),
	}
	copy(c.dates, dates)
	for i, d := range dates {
		c.times[i] = TimeFromReference(base, d)
	}
	return c, nil
}

// Base returns the curve the spreads are applied to.
func (c *SpreadedCurve) Base() YieldCurve { return c.base }

func (c *SpreadedCurve) ReferenceDate() time.Time { return c.base.ReferenceDate() }

func (c *SpreadedCurve) DayCount() string { return c.base.DayCount() }

// Dates returns a copy of the spread node dates.
func (c *SpreadedCurve) Dates() []time.Time {
	out := make([]time.Time, len(c.dates))
	copy(out, c.dates)
	return out
}

func (c *SpreadedCurve) Discount(t float64) float64 {
	return c.base.Discount(t) * math.Exp(-c.Spread(t)*t)
}

func (c *SpreadedCurve) ZeroRate(t float64, comp Compounding, freq Frequency) float64 {
	return zeroRate(c, t, comp, freq)
}

func (c *SpreadedCurve) Implied(anchor time.Time) YieldCurve {
	return NewImpliedCurve(c, anchor)
}

// Spread returns the interpolated zero spread at t.
func (c *SpreadedCurve) Spread(t float64) float64 {
	n := len(c.times)
	if n == 1 || t <= c.times[0] {
		return c.spreads.Value(0)
	}
	if t >= c.times[n-1] {
		return c.spreads.Value(n - 1)
	}
	i := segment(c.times, t)
	s1, s2 := c.spreads.Value(i), c.spreads.Value(i+1)
	return s1 + (s2-s1)*(t-c.times[i])/(c.times[i+1]-c.times[i])
}
