package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestUSSettlementHolidays(t *testing.T) {
	t.Parallel()

	holidays := []time.Time{
		date(2024, time.January, 1),
		date(2024, time.January, 15),  // MLK
		date(2024, time.February, 19), // Washington
		date(2024, time.May, 27),      // Memorial
		date(2024, time.June, 19),     // Juneteenth
		date(2024, time.July, 4),
		date(2024, time.September, 2),
		date(2024, time.October, 14),
		date(2024, time.November, 11),
		date(2024, time.November, 28),
		date(2024, time.December, 25),
		date(2021, time.December, 31), // New Year 2022 on Saturday
		date(2020, time.July, 3),      // July 4th on Saturday
		date(2022, time.December, 26), // Christmas on Sunday
	}
	for _, h := range holidays {
		assert.False(t, IsBusinessDay(USD, h), h.Format("2006-01-02"))
	}

	assert.True(t, IsBusinessDay(USD, date(2019, time.June, 19)), "Juneteenth before 2022")
	assert.True(t, IsBusinessDay(USD, date(2024, time.May, 20)))
}

func TestTargetEaster(t *testing.T) {
	t.Parallel()

	assert.Equal(t, date(2024, time.March, 31), easterSunday(2024))
	assert.Equal(t, date(2025, time.April, 20), easterSunday(2025))
	assert.False(t, IsBusinessDay(TARGET, date(2025, time.April, 18)))
	assert.False(t, IsBusinessDay(TARGET, date(2025, time.April, 21)))
	assert.False(t, IsBusinessDay(TARGET, date(2025, time.December, 26)))
	assert.True(t, IsBusinessDay(TARGET, date(2025, time.April, 22)))
}

func TestAdjust(t *testing.T) {
	t.Parallel()

	sat := date(2024, time.August, 31)
	assert.Equal(t, date(2024, time.September, 3), Adjust(USD, sat, Following)) // Labor Day Monday
	assert.Equal(t, date(2024, time.August, 30), Adjust(USD, sat, ModifiedFollowing))
	assert.Equal(t, date(2024, time.August, 30), Adjust(USD, sat, Preceding))
	assert.Equal(t, sat, Adjust(USD, sat, Unadjusted))
	assert.Equal(t, sat, Adjust(NONE, sat, Following))

	sun := date(2024, time.September, 1)
	assert.Equal(t, date(2024, time.September, 2), Adjust(WEEKENDS, sun, ModifiedPreceding))
}

func TestEndOfMonthAndHolidayRoll(t *testing.T) {
	t.Parallel()

	assert.Equal(t, date(2024, time.August, 30), LastBusinessDayOfMonth(USD, date(2024, time.August, 5)))
	assert.True(t, IsEndOfMonth(USD, date(2019, time.September, 30)))
	assert.False(t, IsEndOfMonth(USD, date(2019, time.September, 27)))

	assert.Equal(t, date(2024, time.July, 5), Adjust(USD, date(2024, time.July, 4), Following))
}

func TestParse(t *testing.T) {
	t.Parallel()

	cal, err := ParseCalendar("UnitedStates")
	require.NoError(t, err)
	assert.Equal(t, USD, cal)

	_, err = ParseCalendar("mars")
	assert.Error(t, err)

	conv, err := ParseConvention("Modified Following")
	require.NoError(t, err)
	assert.Equal(t, ModifiedFollowing, conv)

	_, err = ParseConvention("sideways")
	assert.Error(t, err)
}
