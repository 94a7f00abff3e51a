package termstructure

import (
	"fmt"
	"math"
	"time"

	"github.com/meenmo/scencurve/utils"
)

// ZeroCurve is an immutable zero curve on a date grid. The first date is the
// reference date. Input rates are converted to continuous compounding and
// interpolated linearly in curve time; past the last node the curve
// extrapolates with a flat instantaneous forward.
type ZeroCurve struct {
	dates    []time.Time
	times    []float64
	zeros    []float64 // continuous
	dayCount string
}

// NewZeroCurve builds a zero curve from rates quoted under (comp, freq).
func NewZeroCurve(dates []time.Time, rates []float64, dayCount string, comp Compounding, freq Frequency) (*ZeroCurve, error) {
	if len(dates) < 2 {
		return nil, fmt.Errorf("NewZeroCurve: need at least 2 dates, got %d: %w", len(dates), ErrInvalidNodes)
	}
	if len(rates) != len(dates) {
		return nil, fmt.Errorf("NewZeroCurve: %d rates for %d dates: %w", len(rates), len(dates), ErrInvalidNodes)
	}
	if err := checkIncreasing(dates); err != nil {
		return nil, fmt.Errorf("NewZeroCurve: dates must be strictly increasing: %w", err)
	}
	dc, err := utils.NormalizeDayCount(dayCount)
	if err != nil {
		return nil, fmt.Errorf("NewZeroCurve: %w", err)
	}

	c := &ZeroCurve{
		dates:    make([]time.Time, len(dates)),
		times:    make([]float64, len(dates)),
		zeros:    make([]float64, len(dates)),
		dayCount: dc,
	}
	copy(c.dates, dates)
	for i, d := range dates {
		c.times[i] = utils.YearFraction(dates[0], d, dc)
		t := c.times[i]
		if t == 0 {
			t = zeroTimeStep
		}
		if math.IsNaN(rates[i]) || math.IsInf(rates[i], 0) {
			return nil, fmt.Errorf("NewZeroCurve: rate %d is not finite: %w", i, ErrInvalidNodes)
		}
		c.zeros[i] = ImpliedRate(DiscountFactor(rates[i], t, comp, freq), t, Continuous, NoFrequency)
	}
	return c, nil
}

// NewFlatZeroCurve quotes the same rate on every date.
func NewFlatZeroCurve(dates []time.Time, rate float64, dayCount string, comp Compounding, freq Frequency) (*ZeroCurve, error) {
	rates := make([]float64, len(dates))
	for i := range rates {
		rates[i] = rate
	}
	return NewZeroCurve(dates, rates, dayCount, comp, freq)
}

func (c *ZeroCurve) ReferenceDate() time.Time { return c.dates[0] }

func (c *ZeroCurve) DayCount() string { return c.dayCount }

// Dates returns a copy of the node dates.
func (c *ZeroCurve) Dates() []time.Time {
	out := make([]time.Time, len(c.dates))
	copy(out, c.dates)
	return out
}

// Times returns the node times in years from the reference date.
func (c *ZeroCurve) Times() []float64 {
	out := make([]float64, len(c.times))
	copy(out, c.times)
	return out
}

func (c *ZeroCurve) Discount(t float64) float64 {
	return math.Exp(-c.zeroYield(t) * t)
}

func (c *ZeroCurve) ZeroRate(t float64, comp Compounding, freq Frequency) float64 {
	return zeroRate(c, t, comp, freq)
}

func (c *ZeroCurve) Implied(anchor time.Time) YieldCurve {
	return NewImpliedCurve(c, anchor)
}

// zeroYield is the continuously compounded zero rate at t.
func (c *ZeroCurve) zeroYield(t float64) float64 {
	n := len(c.times)
	if t <= c.times[0] {
		return c.zeros[0]
	}
	tMax := c.times[n-1]
	if t <= tMax {
		return linear(c.times, c.zeros, segment(c.times, t), t)
	}
	zMax := c.zeros[n-1]
	slope := (c.zeros[n-1] - c.zeros[n-2]) / (c.times[n-1] - c.times[n-2])
	instFwdMax := zMax + tMax*slope
	return (zMax*tMax + instFwdMax*(t-tMax)) / t
}
