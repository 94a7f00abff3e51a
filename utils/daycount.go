package utils

import (
	"fmt"
	"strings"
	"time"
)

// Day count identifiers accepted by YearFraction.
const (
	Act360    = "ACT/360"
	Act365F   = "ACT/365F"
	ActAct    = "ACT/ACT"
	Thirty360 = "30/360"
)

// YearFraction computes year fraction between two dates using the specified day count convention.
// Supported conventions: ACT/360, ACT/365F, ACT/ACT (ISDA), 30E/360, 30/360
func YearFraction(start, end time.Time, convention string) float64 {
	switch convention {
	case Act360:
		return Days(start, end) / 360.0
	case Act365F:
		return Days(start, end) / 365.0
	case ActAct, "ACT/ACT ISDA":
		return actActISDA(start, end)
	case "30E/360", Thirty360:
		// 30E/360 ISDA (Eurobond basis)
		// D1 and D2 are capped at 30
		d1 := start.Day()
		if d1 > 30 {
			d1 = 30
		}
		d2 := end.Day()
		if d2 > 30 {
			d2 = 30
		}
		y1, m1 := start.Year(), int(start.Month())
		y2, m2 := end.Year(), int(end.Month())
		return float64(360*(y2-y1)+30*(m2-m1)+(d2-d1)) / 360.0
	default:
		return Days(start, end) / 365.0
	}
}

// NormalizeDayCount validates a day count name and returns its canonical form.
func NormalizeDayCount(name string) (string, error) {
	switch strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), " ", "")) {
	case "", "ACT/ACT", "ACTUAL/ACTUAL", "ACT/ACTISDA":
		return ActAct, nil
	case "ACT/365F", "ACT/365", "ACTUAL/365FIXED":
		return Act365F, nil
	case "ACT/360", "ACTUAL/360":
		return Act360, nil
	case "30/360", "30E/360", "THIRTY360":
		return Thirty360, nil
	default:
		return "", fmt.Errorf("NormalizeDayCount: unsupported day count %q", name)
	}
}

// actActISDA splits the period at year boundaries and divides each piece by
// the length of its own year.
func actActISDA(start, end time.Time) float64 {
	if start.Equal(end) {
		return 0
	}
	if end.Before(start) {
		return -actActISDA(end, start)
	}
	y1, y2 := start.Year(), end.Year()
	if y1 == y2 {
		return Days(start, end) / daysInYear(y1)
	}
	startNext := time.Date(y1+1, time.January, 1, 0, 0, 0, 0, start.Location())
	endFirst := time.Date(y2, time.January, 1, 0, 0, 0, 0, end.Location())
	return Days(start, startNext)/daysInYear(y1) +
		float64(y2-y1-1) +
		Days(endFirst, end)/daysInYear(y2)
}

func daysInYear(y int) float64 {
	if y%4 == 0 && (y%100 != 0 || y%400 == 0) {
		return 366
	}
	return 365
}
