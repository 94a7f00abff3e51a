package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestYearFractionActActISDA(t *testing.T) {
	t.Parallel()

	// Same-year periods use the year's own length.
	assert.InDelta(t, 182.0/366.0, YearFraction(d(2020, time.January, 1), d(2020, time.July, 1), ActAct), 1e-15)
	// Anniversaries of January 1st are whole years.
	assert.InDelta(t, 3.0, YearFraction(d(2020, time.January, 1), d(2023, time.January, 1), ActAct), 1e-15)
	// ISDA reference example: 2003-11-01 to 2004-05-01.
	assert.InDelta(t, 61.0/365.0+121.0/366.0, YearFraction(d(2003, time.November, 1), d(2004, time.May, 1), ActAct), 1e-15)
	assert.InDelta(t, -1.0, YearFraction(d(2021, time.January, 1), d(2020, time.January, 1), ActAct), 1e-15)
	assert.Zero(t, YearFraction(d(2021, time.March, 3), d(2021, time.March, 3), ActAct))
}

func TestYearFractionOtherConventions(t *testing.T) {
	t.Parallel()

	start, end := d(2025, time.January, 31), d(2025, time.July, 31)
	assert.InDelta(t, 181.0/360.0, YearFraction(start, end, Act360), 1e-15)
	assert.InDelta(t, 181.0/365.0, YearFraction(start, end, Act365F), 1e-15)
	assert.InDelta(t, 0.5, YearFraction(start, end, Thirty360), 1e-15)
}

func TestNormalizeDayCount(t *testing.T) {
	t.Parallel()

	dc, err := NormalizeDayCount("Actual/Actual")
	require.NoError(t, err)
	assert.Equal(t, ActAct, dc)

	dc, err = NormalizeDayCount("")
	require.NoError(t, err)
	assert.Equal(t, ActAct, dc)

	_, err = NormalizeDayCount("BUS/252")
	assert.Error(t, err)
}

func TestAddMonthAndParseDate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, d(2025, time.February, 28), AddMonth(d(2025, time.January, 31), 1))
	assert.Equal(t, d(2026, time.September, 30), AddMonth(d(2025, time.September, 30), 12))

	got, err := ParseDate(" 2019-09-30 ")
	require.NoError(t, err)
	assert.Equal(t, d(2019, time.September, 30), got)

	_, err = ParseDate("30/09/2019")
	assert.Error(t, err)
}
