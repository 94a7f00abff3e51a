package calendar

import "time"

// isUSSettlementHoliday follows the US settlement calendar: federal holidays,
// moved to Monday when on Sunday and to Friday when on Saturday.
func isUSSettlementHoliday(t time.Time) bool {
	y, m, d, w := t.Year(), t.Month(), t.Day(), t.Weekday()

	switch {
	// New Year's Day; a Saturday holiday is observed on Friday Dec 31.
	case m == time.January && (d == 1 || (d == 2 && w == time.Monday)):
		return true
	case m == time.December && d == 31 && w == time.Friday:
		return true
	// Martin Luther King's birthday
	case y >= 1983 && m == time.January && isNthWeekday(t, time.Monday, 3):
		return true
	// Washington's birthday
	case m == time.February && isNthWeekday(t, time.Monday, 3):
		return true
	// Memorial Day
	case m == time.May && w == time.Monday && d > 24:
		return true
	// Juneteenth
	case y >= 2022 && m == time.June && isObserved(d, w, 19):
		return true
	case m == time.July && isObserved(d, w, 4):
		return true
	// Labor Day
	case m == time.September && isNthWeekday(t, time.Monday, 1):
		return true
	// Columbus Day
	case m == time.October && isNthWeekday(t, time.Monday, 2):
		return true
	// Veterans' Day
	case m == time.November && isObserved(d, w, 11):
		return true
	// Thanksgiving
	case m == time.November && isNthWeekday(t, time.Thursday, 4):
		return true
	case m == time.December && isObserved(d, w, 25):
		return true
	}
	return false
}

func isTargetHoliday(t time.Time) bool {
	m, d := t.Month(), t.Day()
	if (m == time.January && d == 1) ||
		(m == time.May && d == 1) ||
		(m == time.December && (d == 25 || d == 26)) {
		return true
	}
	easter := easterSunday(t.Year())
	return sameDay(t, easter.AddDate(0, 0, -2)) || sameDay(t, easter.AddDate(0, 0, 1))
}

// isObserved reports whether a fixed-date holiday on day falls on (d, w)
// after weekend observance.
func isObserved(d int, w time.Weekday, day int) bool {
	return d == day || (d == day+1 && w == time.Monday) || (d == day-1 && w == time.Friday)
}

func isNthWeekday(t time.Time, w time.Weekday, n int) bool {
	return t.Weekday() == w && (t.Day()-1)/7 == n-1
}

// easterSunday uses the anonymous Gregorian algorithm.
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
