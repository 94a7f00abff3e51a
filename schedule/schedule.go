// Package schedule generates the ordered date grids that calibration nodes and
// base curves are built on.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/meenmo/scencurve/calendar"
	"github.com/meenmo/scencurve/utils"
)

// Rule is the direction in which dates are generated.
type Rule string

const (
	// Forward rolls from the effective date towards termination.
	Forward Rule = "Forward"
	// Backward rolls from termination back to the effective date.
	Backward Rule = "Backward"
)

// ErrInvalidParams is returned when schedule parameters cannot produce a grid.
var ErrInvalidParams = errors.New("invalid schedule parameters")

// Params holds the date-generation conventions.
type Params struct {
	Effective             time.Time
	Termination           time.Time
	TenorMonths           int
	Calendar              calendar.CalendarID
	Convention            calendar.BusinessDayConvention
	TerminationConvention calendar.BusinessDayConvention
	Rule                  Rule
	EndOfMonth            bool
}

// DefaultParams returns annual US-calendar Following/Forward parameters with
// end-of-month rolling, the conventions used for scenario node grids.
func DefaultParams(effective, termination time.Time) Params {
	return Params{
		Effective:             effective,
		Termination:           termination,
		TenorMonths:           12,
		Calendar:              calendar.USD,
		Convention:            calendar.Following,
		TerminationConvention: calendar.Following,
		Rule:                  Forward,
		EndOfMonth:            true,
	}
}

// Schedule is an ordered, strictly increasing sequence of dates.
type Schedule struct {
	dates []time.Time
}

// New wraps explicit dates. They must be strictly increasing.
func New(dates []time.Time) (Schedule, error) {
	for i := 1; i < len(dates); i++ {
		if !dates[i].After(dates[i-1]) {
			return Schedule{}, fmt.Errorf("schedule.New: date %s is not after %s: %w",
				dates[i].Format(utils.DateLayout), dates[i-1].Format(utils.DateLayout), ErrInvalidParams)
		}
	}
	out := make([]time.Time, len(dates))
	copy(out, dates)
	return Schedule{dates: out}, nil
}

// Dates returns a copy of the schedule dates.
func (s Schedule) Dates() []time.Time {
	out := make([]time.Time, len(s.dates))
	copy(out, s.dates)
	return out
}

// Len returns the number of dates.
func (s Schedule) Len() int { return len(s.dates) }

// At returns the i-th date.
func (s Schedule) At(i int) time.Time { return s.dates[i] }

// Generate builds a schedule from p.
func Generate(p Params) (Schedule, error) {
	if p.Effective.IsZero() || p.Termination.IsZero() {
		return Schedule{}, fmt.Errorf("schedule.Generate: effective and termination dates are required: %w", ErrInvalidParams)
	}
	if !p.Termination.After(p.Effective) {
		return Schedule{}, fmt.Errorf("schedule.Generate: termination %s not after effective %s: %w",
			p.Termination.Format(utils.DateLayout), p.Effective.Format(utils.DateLayout), ErrInvalidParams)
	}
	if p.TenorMonths <= 0 {
		return Schedule{}, fmt.Errorf("schedule.Generate: tenor must be positive, got %d months: %w", p.TenorMonths, ErrInvalidParams)
	}
	if p.Calendar == "" {
		p.Calendar = calendar.NONE
	}
	if p.Rule == "" {
		p.Rule = Forward
	}

	var unadjusted []time.Time
	var seed time.Time
	switch p.Rule {
	case Forward:
		seed = p.Effective
		unadjusted = forwardDates(p)
	case Backward:
		seed = p.Termination
		unadjusted = backwardDates(p)
	default:
		return Schedule{}, fmt.Errorf("schedule.Generate: unknown rule %q: %w", p.Rule, ErrInvalidParams)
	}

	eom := p.EndOfMonth && calendar.IsEndOfMonth(p.Calendar, seed)
	last := len(unadjusted) - 1
	dates := make([]time.Time, 0, len(unadjusted))
	for i, d := range unadjusted {
		var adj time.Time
		switch {
		case i == 0:
			adj = calendar.Adjust(p.Calendar, d, p.Convention)
		case eom:
			adj = calendar.LastBusinessDayOfMonth(p.Calendar, d)
		case i == last:
			adj = calendar.Adjust(p.Calendar, d, p.TerminationConvention)
		default:
			adj = calendar.Adjust(p.Calendar, d, p.Convention)
		}
		// Adjustment can collapse a short stub onto its neighbour.
		if len(dates) > 0 && !adj.After(dates[len(dates)-1]) {
			continue
		}
		dates = append(dates, adj)
	}
	return Schedule{dates: dates}, nil
}

// forwardDates rolls each date from the effective date rather than from its
// predecessor so month-end clipping does not drift.
func forwardDates(p Params) []time.Time {
	dates := []time.Time{p.Effective}
	for i := 1; ; i++ {
		d := utils.AddMonth(p.Effective, i*p.TenorMonths)
		if !d.Before(p.Termination) {
			break
		}
		dates = append(dates, d)
	}
	return append(dates, p.Termination)
}

func backwardDates(p Params) []time.Time {
	dates := []time.Time{p.Termination}
	for i := 1; ; i++ {
		d := utils.AddMonth(p.Termination, -i*p.TenorMonths)
		if !d.After(p.Effective) {
			break
		}
		dates = append([]time.Time{d}, dates...)
	}
	return append([]time.Time{p.Effective}, dates...)
}
