package termstructure

import (
	"sort"
	"time"
)

// segment returns i such that times[i] <= t <= times[i+1], or the nearest
// boundary segment when t is outside the grid.
func segment(times []float64, t float64) int {
	if len(times) < 2 {
		panic("segment: need at least 2 nodes")
	}
	// First index with times[i] >= t.
	idx := sort.SearchFloat64s(times, t)
	if idx <= 0 {
		return 0
	}
	if idx >= len(times) {
		return len(times) - 2
	}
	return idx - 1
}

// linear interpolates ys over xs on segment i.
func linear(xs, ys []float64, i int, x float64) float64 {
	x1, x2 := xs[i], xs[i+1]
	if x2 == x1 {
		return ys[i]
	}
	return ys[i] + (ys[i+1]-ys[i])*(x-x1)/(x2-x1)
}

func checkIncreasing(dates []time.Time) error {
	for i := 1; i < len(dates); i++ {
		if !dates[i].After(dates[i-1]) {
			return ErrInvalidNodes
		}
	}
	return nil
}
