package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToEpochDays(t *testing.T) {
	cases := []struct {
		date Date
		days int64
	}{
		{Date{1970, 1, 1}, 0},
		{Date{1970, 1, 2}, 1},
		{Date{1969, 12, 31}, -1},
		{Date{1972, 1, 1}, 730},
		{Date{2012, 6, 30}, 15521},
		{Date{1600, 2, 29}, -135081},
		{Date{-1, 12, 31}, -719529},
	}
	for _, c := range cases {
		assert.Equal(t, c.days, c.date.ToEpochDays(), "days for %v", c.date)
	}
}

func TestFromEpochDaysRoundTrip(t *testing.T) {
	dates := []Date{
		{1970, 1, 1},
		{1969, 12, 31},
		{2000, 2, 29},
		{1900, 2, 28},
		{2016, 12, 31},
		{1972, 6, 30},
		{-44, 3, 15},
		{9999, 12, 31},
	}
	for _, d := range dates {
		require.True(t, d.Valid(), "%v should be valid", d)
		got := FromEpochDays(d.ToEpochDays())
		assert.Equal(t, d, got)
	}
}

func TestFromEpochDaysSweep(t *testing.T) {
	// Consecutive epoch days decode to consecutive valid dates.
	prev := FromEpochDays(-1000)
	for days := int64(-999); days < 1000; days++ {
		d := FromEpochDays(days)
		require.True(t, d.Valid(), "day %d -> %v", days, d)
		require.Equal(t, days, d.ToEpochDays())
		if d.Day == 1 {
			assert.Equal(t, DaysIn(prev.Year, prev.Month), prev.Day)
		} else {
			assert.Equal(t, prev.Day+1, d.Day)
		}
		prev = d
	}
}

func TestIsLeapYear(t *testing.T) {
	assert.True(t, IsLeapYear(2000))
	assert.True(t, IsLeapYear(2012))
	assert.True(t, IsLeapYear(1600))
	assert.False(t, IsLeapYear(1900))
	assert.False(t, IsLeapYear(2013))
	assert.False(t, IsLeapYear(100))
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 29, DaysIn(2000, 2))
	assert.Equal(t, 28, DaysIn(1900, 2))
	assert.Equal(t, 31, DaysIn(2024, 1))
	assert.Equal(t, 30, DaysIn(2024, 4))
}

func TestValid(t *testing.T) {
	assert.True(t, Date{2012, 6, 30}.Valid())
	assert.True(t, Date{2000, 2, 29}.Valid())
	assert.False(t, Date{1900, 2, 29}.Valid())
	assert.False(t, Date{2012, 13, 1}.Valid())
	assert.False(t, Date{2012, 0, 1}.Valid())
	assert.False(t, Date{2012, 6, 31}.Valid())
	assert.False(t, Date{2012, 6, 0}.Valid())
	assert.False(t, Date{MaxYear + 1, 1, 1}.Valid())
	assert.False(t, Date{MinYear - 1, 1, 1}.Valid())
}

func TestString(t *testing.T) {
	assert.Equal(t, "2016-12-31", Date{2016, 12, 31}.String())
	assert.Equal(t, "0044-03-15", Date{44, 3, 15}.String())
	assert.Equal(t, "-000044-03-15", Date{-44, 3, 15}.String())
}
