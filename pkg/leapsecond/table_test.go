package leapsecond

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BYTE-6D65/timescale/pkg/calendar"
)

// POSIX second of 2012-06-30T23:59:59Z, the second before the 2012 leap
// second. 24 leap seconds had accumulated by then.
const (
	june2012End   int64 = 1341100799
	june2012Shift int64 = 24
)

func TestBuiltin(t *testing.T) {
	table := Builtin()
	assert.True(t, table.IsEnabled())
	assert.False(t, table.SupportsNegative())
	assert.Equal(t, 27, table.Count())
	assert.Len(t, table.Events(), 27)

	// Shared instance.
	assert.Same(t, table, Builtin())
}

func TestEnhance(t *testing.T) {
	table := Builtin()

	cases := []struct {
		posix, utc int64
	}{
		{0, 0},                    // before the first event
		{78796799, 78796799},      // final second of 1972-06-30, event not yet effective
		{78796800, 78796801},      // first second of 1972-07-01
		{june2012End, june2012End + june2012Shift},
		{june2012End + 1, june2012End + 1 + june2012Shift + 1},
		{1483228800, 1483228827}, // first second after the 2016 event
	}
	for _, c := range cases {
		got, err := table.Enhance(c.posix)
		require.NoError(t, err)
		assert.Equal(t, c.utc, got, "enhance(%d)", c.posix)
	}
}

func TestStrip(t *testing.T) {
	table := Builtin()

	// Inside the inserted 2012 leap second.
	posix, leap, err := table.Strip(june2012End + june2012Shift + 1)
	require.NoError(t, err)
	assert.Equal(t, june2012End, posix)
	assert.True(t, leap)

	// Just before it.
	posix, leap, err = table.Strip(june2012End + june2012Shift)
	require.NoError(t, err)
	assert.Equal(t, june2012End, posix)
	assert.False(t, leap)

	// Just after it.
	posix, leap, err = table.Strip(june2012End + june2012Shift + 2)
	require.NoError(t, err)
	assert.Equal(t, june2012End+1, posix)
	assert.False(t, leap)

	// Before any event.
	posix, leap, err = table.Strip(1000)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), posix)
	assert.False(t, leap)
}

func TestStripEnhanceRoundTrip(t *testing.T) {
	table := Builtin()
	for _, utc := range []int64{0, 78796800, 1341100823, 1341100825, 1483228826, 1483228900, 2000000000} {
		posix, leap, err := table.Strip(utc)
		require.NoError(t, err)
		if leap {
			// Inserted seconds have no POSIX image of their own.
			continue
		}
		back, err := table.Enhance(posix)
		require.NoError(t, err)
		assert.Equal(t, utc, back, "round trip of %d", utc)
	}
}

func TestIsPositiveLeapSecond(t *testing.T) {
	table := Builtin()
	assert.True(t, table.IsPositiveLeapSecond(june2012End+june2012Shift+1)) // 1341100824
	assert.False(t, table.IsPositiveLeapSecond(june2012End+june2012Shift))
	assert.False(t, table.IsPositiveLeapSecond(june2012End+june2012Shift+2))
	assert.True(t, table.IsPositiveLeapSecond(1483228826)) // the 2016-12-31 second
	assert.False(t, table.IsPositiveLeapSecond(0))
}

func TestHasPositiveEventAt(t *testing.T) {
	table := Builtin()
	assert.True(t, table.HasPositiveEventAt(june2012End))
	assert.True(t, table.HasPositiveEventAt(1483228799))
	assert.False(t, table.HasPositiveEventAt(june2012End+1))
	assert.False(t, table.HasPositiveEventAt(0))
}

func TestDisabled(t *testing.T) {
	table := Disabled()
	assert.False(t, table.IsEnabled())
	assert.False(t, table.SupportsNegative())
	assert.Zero(t, table.Count())
	assert.Nil(t, table.Events())

	_, err := table.Enhance(0)
	assert.ErrorIs(t, err, ErrDisabled)

	_, _, err = table.Strip(0)
	assert.ErrorIs(t, err, ErrDisabled)

	assert.False(t, table.IsPositiveLeapSecond(1341100824))
	assert.False(t, table.HasPositiveEventAt(june2012End))
}

func TestNewValidation(t *testing.T) {
	_, err := New([]Event{{Date: calendar.Date{Year: 1999, Month: 1, Day: 1}, Shift: 2}})
	assert.Error(t, err)

	_, err = New([]Event{{Date: calendar.Date{Year: 1999, Month: 2, Day: 30}, Shift: 1}})
	assert.Error(t, err)

	_, err = New([]Event{{Date: calendar.Date{Year: 1971, Month: 12, Day: 31}, Shift: 1}})
	assert.Error(t, err)

	_, err = New([]Event{
		{Date: calendar.Date{Year: 1999, Month: 1, Day: 1}, Shift: 1},
		{Date: calendar.Date{Year: 1998, Month: 1, Day: 1}, Shift: 1},
	})
	assert.Error(t, err)

	table, err := New(nil)
	require.NoError(t, err)
	assert.True(t, table.IsEnabled())
	assert.Zero(t, table.Count())
}

// negativeTable is the builtin list plus a hypothetical removed second
// at the end of 2029-06-30 (POSIX second 1877558399).
func negativeTable(t *testing.T) *Table {
	t.Helper()
	events := append(Builtin().Events(), Event{
		Date:  calendar.Date{Year: 2029, Month: 6, Day: 30},
		Shift: -1,
	})
	table, err := New(events)
	require.NoError(t, err)
	return table
}

func TestNegativeLeapSecond(t *testing.T) {
	table := negativeTable(t)
	assert.True(t, table.SupportsNegative())

	const removed int64 = 1877558399 // 2029-06-30T23:59:59, the removed second

	// The removed second's enhance value is claimed by the next POSIX
	// second: the strip(enhance(p)) round trip overshoots by one. This
	// asymmetry is the documented contract for negative leap seconds.
	utc, err := table.Enhance(removed)
	require.NoError(t, err)
	assert.Equal(t, removed+27, utc)

	posix, leap, err := table.Strip(utc)
	require.NoError(t, err)
	assert.False(t, leap)
	assert.Equal(t, removed+1, posix)
	assert.Greater(t, posix, removed)

	// After the event the cumulative shift is back to 26.
	utc, err = table.Enhance(removed + 2)
	require.NoError(t, err)
	assert.Equal(t, removed+2+26, utc)

	posix, leap, err = table.Strip(removed + 2 + 26)
	require.NoError(t, err)
	assert.False(t, leap)
	assert.Equal(t, removed+2, posix)

	// No inserted second exists at the negative event.
	assert.False(t, table.IsPositiveLeapSecond(removed+27))
	assert.False(t, table.HasPositiveEventAt(removed))
}
