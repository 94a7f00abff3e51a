package scenario

import (
	"time"
)

// SpreadTable is the mutable calibration state: one zero-spread value per
// base-curve date. Its length and indices are fixed for the life of a run.
// The scenario curve holds the table itself, so Set is visible immediately.
type SpreadTable struct {
	dates  []time.Time
	values []float64
}

// NewSpreadTable returns a zero-valued table aligned to dates.
func NewSpreadTable(dates []time.Time) *SpreadTable {
	t := &SpreadTable{
		dates:  make([]time.Time, len(dates)),
		values: make([]float64, len(dates)),
	}
	copy(t.dates, dates)
	return t
}

// Len returns the number of nodes.
func (t *SpreadTable) Len() int { return len(t.values) }

// Value returns the spread at node i.
func (t *SpreadTable) Value(i int) float64 { return t.values[i] }

// Set writes the spread at node i.
func (t *SpreadTable) Set(i int, v float64) { t.values[i] = v }

// Date returns the date of node i.
func (t *SpreadTable) Date(i int) time.Time { return t.dates[i] }

// Values returns a snapshot of all spreads.
func (t *SpreadTable) Values() []float64 {
	out := make([]float64, len(t.values))
	copy(out, t.values)
	return out
}
