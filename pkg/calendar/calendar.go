// Package calendar converts between epoch days and proleptic Gregorian
// civil dates. It is the date collaborator for the rest of the library:
// the leap-second table is keyed by UTC calendar days, and the CLI needs
// to render epoch seconds as dates. Nothing here knows about time zones,
// leap seconds, or time-of-day.
package calendar

import "fmt"

// Year range supported by the library. Seconds derived from these bounds
// define the representable range of an Instant.
const (
	MinYear = -999999999
	MaxYear = 999999999
)

// Date is a civil calendar day (proleptic Gregorian).
type Date struct {
	Year  int
	Month int // 1..12
	Day   int // 1..31
}

var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeapYear reports whether year has a February 29 in the proleptic
// Gregorian calendar.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysIn returns the number of days in the given month of the given year.
func DaysIn(year, month int) int {
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return daysInMonth[month-1]
}

// Valid reports whether d names an actual calendar day within the
// supported year range.
func (d Date) Valid() bool {
	if d.Year < MinYear || d.Year > MaxYear {
		return false
	}
	if d.Month < 1 || d.Month > 12 {
		return false
	}
	return d.Day >= 1 && d.Day <= DaysIn(d.Year, d.Month)
}

func (d Date) String() string {
	if d.Year < 0 {
		return fmt.Sprintf("-%06d-%02d-%02d", -d.Year, d.Month, d.Day)
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// ToEpochDays returns the number of days between d and 1970-01-01
// (negative for earlier dates). The caller must ensure d.Valid().
func (d Date) ToEpochDays() int64 {
	y := int64(d.Year)
	if d.Month <= 2 {
		y--
	}
	era := y / 400
	if y < 0 && y%400 != 0 {
		era--
	}
	yoe := y - era*400 // [0, 399]
	m := int64(d.Month)
	var shift int64
	if m > 2 {
		shift = -3
	} else {
		shift = 9
	}
	doy := (153*(m+shift)+2)/5 + int64(d.Day) - 1 // [0, 365]
	doe := yoe*365 + yoe/4 - yoe/100 + doy        // [0, 146096]
	return era*146097 + doe - 719468
}

// FromEpochDays is the inverse of ToEpochDays.
func FromEpochDays(days int64) Date {
	z := days + 719468
	era := z / 146097
	if z < 0 && z%146097 != 0 {
		era--
	}
	doe := z - era*146097                                  // [0, 146096]
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365 // [0, 399]
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100) // [0, 365]
	mp := (5*doy + 2) / 153                  // [0, 11]
	day := int(doy - (153*mp+2)/5 + 1)       // [1, 31]
	var month int
	if mp < 10 {
		month = int(mp + 3)
	} else {
		month = int(mp - 9)
	}
	if month <= 2 {
		y++
	}
	return Date{Year: int(y), Month: month, Day: day}
}
