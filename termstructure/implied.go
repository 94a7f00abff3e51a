package termstructure

import "time"

// ImpliedCurve views a curve from a later reference date: discount factors
// are rescaled so that the anchor date discounts to one. The underlying curve
// is read on every query.
type ImpliedCurve struct {
	base   YieldCurve
	anchor time.Time
	offset float64
}

// NewImpliedCurve anchors base at anchor.
func NewImpliedCurve(base YieldCurve, anchor time.Time) *ImpliedCurve {
	return &ImpliedCurve{
		base:   base,
		anchor: anchor,
		offset: TimeFromReference(base, anchor),
	}
}

func (c *ImpliedCurve) ReferenceDate() time.Time { return c.anchor }

func (c *ImpliedCurve) DayCount() string { return c.base.DayCount() }

func (c *ImpliedCurve) Discount(t float64) float64 {
	return c.base.Discount(c.offset+t) / c.base.Discount(c.offset)
}

func (c *ImpliedCurve) ZeroRate(t float64, comp Compounding, freq Frequency) float64 {
	return zeroRate(c, t, comp, freq)
}

func (c *ImpliedCurve) Implied(anchor time.Time) YieldCurve {
	return NewImpliedCurve(c.base, anchor)
}
