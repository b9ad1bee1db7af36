package leapsecond

import (
	"sync"

	"github.com/BYTE-6D65/timescale/pkg/calendar"
)

// builtinEvents lists every leap second announced by the IERS, keyed by
// the UTC day at whose end the second was inserted. All shifts to date
// have been positive.
var builtinEvents = []Event{
	{Date: calendar.Date{Year: 1972, Month: 6, Day: 30}, Shift: 1},
	{Date: calendar.Date{Year: 1972, Month: 12, Day: 31}, Shift: 1},
	{Date: calendar.Date{Year: 1973, Month: 12, Day: 31}, Shift: 1},
	{Date: calendar.Date{Year: 1974, Month: 12, Day: 31}, Shift: 1},
	{Date: calendar.Date{Year: 1975, Month: 12, Day: 31}, Shift: 1},
	{Date: calendar.Date{Year: 1976, Month: 12, Day: 31}, Shift: 1},
	{Date: calendar.Date{Year: 1977, Month: 12, Day: 31}, Shift: 1},
	{Date: calendar.Date{Year: 1978, Month: 12, Day: 31}, Shift: 1},
	{Date: calendar.Date{Year: 1979, Month: 12, Day: 31}, Shift: 1},
	{Date: calendar.Date{Year: 1981, Month: 6, Day: 30}, Shift: 1},
	{Date: calendar.Date{Year: 1982, Month: 6, Day: 30}, Shift: 1},
	{Date: calendar.Date{Year: 1983, Month: 6, Day: 30}, Shift: 1},
	{Date: calendar.Date{Year: 1985, Month: 6, Day: 30}, Shift: 1},
	{Date: calendar.Date{Year: 1987, Month: 12, Day: 31}, Shift: 1},
	{Date: calendar.Date{Year: 1989, Month: 12, Day: 31}, Shift: 1},
	{Date: calendar.Date{Year: 1990, Month: 12, Day: 31}, Shift: 1},
	{Date: calendar.Date{Year: 1992, Month: 6, Day: 30}, Shift: 1},
	{Date: calendar.Date{Year: 1993, Month: 6, Day: 30}, Shift: 1},
	{Date: calendar.Date{Year: 1994, Month: 6, Day: 30}, Shift: 1},
	{Date: calendar.Date{Year: 1995, Month: 12, Day: 31}, Shift: 1},
	{Date: calendar.Date{Year: 1997, Month: 6, Day: 30}, Shift: 1},
	{Date: calendar.Date{Year: 1998, Month: 12, Day: 31}, Shift: 1},
	{Date: calendar.Date{Year: 2005, Month: 12, Day: 31}, Shift: 1},
	{Date: calendar.Date{Year: 2008, Month: 12, Day: 31}, Shift: 1},
	{Date: calendar.Date{Year: 2012, Month: 6, Day: 30}, Shift: 1},
	{Date: calendar.Date{Year: 2015, Month: 6, Day: 30}, Shift: 1},
	{Date: calendar.Date{Year: 2016, Month: 12, Day: 31}, Shift: 1},
}

var builtinOnce = sync.OnceValue(func() *Table {
	t, err := New(builtinEvents)
	if err != nil {
		// The builtin list is ordered and validated by its tests.
		panic("leapsecond: builtin table invalid: " + err.Error())
	}
	return t
})

// Builtin returns the table of officially announced leap seconds. The
// table is built once and shared; it is immutable.
func Builtin() *Table {
	return builtinOnce()
}
