package calendar

import (
	"fmt"
	"strings"
	"time"
)

// CalendarID identifies a holiday calendar.
type CalendarID string

const (
	// NONE treats every day as a business day.
	NONE     CalendarID = "NONE"
	WEEKENDS CalendarID = "WEEKENDS"
	USD      CalendarID = "USD"
	TARGET   CalendarID = "TARGET"
)

// BusinessDayConvention selects how a non-business day is rolled.
type BusinessDayConvention string

const (
	Unadjusted        BusinessDayConvention = "Unadjusted"
	Following         BusinessDayConvention = "Following"
	ModifiedFollowing BusinessDayConvention = "ModifiedFollowing"
	Preceding         BusinessDayConvention = "Preceding"
	ModifiedPreceding BusinessDayConvention = "ModifiedPreceding"
)

// ParseCalendar maps a user-facing name to a CalendarID.
func ParseCalendar(name string) (CalendarID, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "NONE", "NULL":
		return NONE, nil
	case "WEEKENDS", "WEEKENDSONLY":
		return WEEKENDS, nil
	case "USD", "US", "UNITEDSTATES":
		return USD, nil
	case "TARGET", "EUR":
		return TARGET, nil
	default:
		return "", fmt.Errorf("ParseCalendar: unknown calendar %q", name)
	}
}

// ParseConvention maps a user-facing name to a BusinessDayConvention.
func ParseConvention(name string) (BusinessDayConvention, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "")) {
	case "unadjusted", "none":
		return Unadjusted, nil
	case "", "following", "f":
		return Following, nil
	case "modifiedfollowing", "mf":
		return ModifiedFollowing, nil
	case "preceding", "p":
		return Preceding, nil
	case "modifiedpreceding", "mp":
		return ModifiedPreceding, nil
	default:
		return "", fmt.Errorf("ParseConvention: unknown business day convention %q", name)
	}
}

func isHoliday(cal CalendarID, t time.Time) bool {
	switch cal {
	case USD:
		return isUSSettlementHoliday(t)
	case TARGET:
		return isTargetHoliday(t)
	default:
		return false
	}
}

// IsBusinessDay checks weekends and holiday rules.
func IsBusinessDay(cal CalendarID, t time.Time) bool {
	if cal == NONE {
		return true
	}
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	return !isHoliday(cal, t)
}

// Adjust rolls t onto a business day using conv.
func Adjust(cal CalendarID, t time.Time, conv BusinessDayConvention) time.Time {
	switch conv {
	case Unadjusted:
		return t
	case Following:
		return rollForward(cal, t)
	case ModifiedFollowing:
		adj := rollForward(cal, t)
		if adj.Month() != t.Month() {
			return rollBackward(cal, t)
		}
		return adj
	case Preceding:
		return rollBackward(cal, t)
	case ModifiedPreceding:
		adj := rollBackward(cal, t)
		if adj.Month() != t.Month() {
			return rollForward(cal, t)
		}
		return adj
	default:
		return rollForward(cal, t)
	}
}

func rollForward(cal CalendarID, t time.Time) time.Time {
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

func rollBackward(cal CalendarID, t time.Time) time.Time {
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, -1)
	}
	return t
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// LastBusinessDayOfMonth returns the last business day of the month containing t.
func LastBusinessDayOfMonth(cal CalendarID, t time.Time) time.Time {
	last := time.Date(t.Year(), t.Month(), daysInMonth(t.Year(), t.Month()), 0, 0, 0, 0, t.Location())
	return rollBackward(cal, last)
}

// IsEndOfMonth checks if t is the last business day of its month.
func IsEndOfMonth(cal CalendarID, t time.Time) bool {
	return t.Equal(LastBusinessDayOfMonth(cal, t))
}
