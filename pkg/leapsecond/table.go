// Package leapsecond maintains the registry of UTC leap-second events
// and answers the two transforms the rest of the library is built on:
// "enhance" (POSIX seconds -> UTC elapsed seconds, adding the cumulative
// shift) and "strip" (the inverse). An inserted leap second has no POSIX
// representation of its own; strip maps it back to the last POSIX second
// of its day and reports the fact through a flag.
package leapsecond

import (
	"errors"
	"fmt"
	"sort"

	"github.com/BYTE-6D65/timescale/pkg/calendar"
	"github.com/BYTE-6D65/timescale/pkg/scale"
)

// ErrDisabled is returned by every non-POSIX operation performed against
// a disabled table. Callers that only ever deal in POSIX time never see it.
var ErrDisabled = errors.New("leapsecond: leap-second support disabled")

// Event is one leap-second insertion (or, rarely, removal). Date is the
// UTC day at whose end the event takes effect: a +1 shift inserts
// 23:59:60 after that day's 23:59:59.
type Event struct {
	Date  calendar.Date
	Shift int // +1 or -1
}

type entry struct {
	// posixEnd is the last POSIX second of the event's day.
	posixEnd int64
	shift    int
	// totalAfter is the cumulative shift once this event has taken effect.
	totalAfter int64
}

// Table is an immutable, ordered leap-second registry. The zero value
// is unusable; build one with New, Builtin or Disabled. A disabled
// table rejects every operation that needs leap-second data, so callers
// on non-POSIX scales fail fast instead of silently degrading.
type Table struct {
	entries  []entry
	events   []Event
	enabled  bool
	negative bool
}

// Disabled returns a table with leap-second support switched off.
func Disabled() *Table {
	return &Table{}
}

// New builds a table from events, which must be strictly ordered by date
// with shifts of +1 or -1. The earliest admissible event day is
// 1972-06-30 (UTC is undefined before 1972).
func New(events []Event) (*Table, error) {
	t := &Table{
		entries: make([]entry, 0, len(events)),
		events:  make([]Event, len(events)),
		enabled: true,
	}
	copy(t.events, events)

	var total int64
	var prevEnd int64
	for i, ev := range events {
		if ev.Shift != 1 && ev.Shift != -1 {
			return nil, fmt.Errorf("leapsecond: event %s has shift %d, want +1 or -1", ev.Date, ev.Shift)
		}
		if !ev.Date.Valid() {
			return nil, fmt.Errorf("leapsecond: invalid event date %v", ev.Date)
		}
		end := (ev.Date.ToEpochDays()+1)*86400 - 1
		if end < scale.UTCEpochPosix {
			return nil, fmt.Errorf("leapsecond: event %s predates 1972-01-01", ev.Date)
		}
		if i > 0 && end <= prevEnd {
			return nil, fmt.Errorf("leapsecond: event %s out of order", ev.Date)
		}
		prevEnd = end
		total += int64(ev.Shift)
		if ev.Shift < 0 {
			t.negative = true
		}
		t.entries = append(t.entries, entry{posixEnd: end, shift: ev.Shift, totalAfter: total})
	}
	return t, nil
}

// IsEnabled reports whether this table carries leap-second data at all.
func (t *Table) IsEnabled() bool {
	return t != nil && t.enabled
}

// SupportsNegative reports whether the table contains a removed second.
// When true, Strip(Enhance(p)) > p for the removed POSIX second; callers
// must not assume round-trip fidelity.
func (t *Table) SupportsNegative() bool {
	return t.IsEnabled() && t.negative
}

// Events returns a copy of the event list the table was built from.
func (t *Table) Events() []Event {
	if !t.IsEnabled() {
		return nil
	}
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}

// Count returns the number of registered events.
func (t *Table) Count() int {
	if !t.IsEnabled() {
		return 0
	}
	return len(t.entries)
}

// Enhance converts POSIX seconds to UTC elapsed seconds by adding the
// cumulative shift of every event strictly before posixSeconds. For the
// final POSIX second of a positive-leap day the result lands just before
// the inserted second; the inserted second itself is reachable only via
// the leap flag on an Instant.
func (t *Table) Enhance(posixSeconds int64) (int64, error) {
	if !t.IsEnabled() {
		return 0, ErrDisabled
	}
	return scale.AddChecked(posixSeconds, t.shiftBefore(posixSeconds))
}

// shiftBefore returns the cumulative shift of all events whose boundary
// second is strictly before posixSeconds.
func (t *Table) shiftBefore(posixSeconds int64) int64 {
	// First index whose boundary is >= posixSeconds.
	i := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].posixEnd >= posixSeconds
	})
	if i == 0 {
		return 0
	}
	return t.entries[i-1].totalAfter
}

// Strip converts UTC elapsed seconds back to POSIX seconds. If
// utcSeconds falls inside an inserted leap second, the returned POSIX
// second is the last second of the preceding day and leap is true.
func (t *Table) Strip(utcSeconds int64) (posixSeconds int64, leap bool, err error) {
	if !t.IsEnabled() {
		return 0, false, ErrDisabled
	}
	for i := len(t.entries) - 1; i >= 0; i-- {
		e := t.entries[i]
		boundary := e.posixEnd + e.totalAfter
		if utcSeconds > boundary {
			return utcSeconds - e.totalAfter, false, nil
		}
		if utcSeconds == boundary && e.shift > 0 {
			return e.posixEnd, true, nil
		}
		// A removed second's UTC value belongs to an earlier region.
	}
	return utcSeconds, false, nil
}

// IsPositiveLeapSecond reports whether utcSeconds is a registered
// inserted second.
func (t *Table) IsPositiveLeapSecond(utcSeconds int64) bool {
	if !t.IsEnabled() {
		return false
	}
	for i := len(t.entries) - 1; i >= 0; i-- {
		e := t.entries[i]
		boundary := e.posixEnd + e.totalAfter
		if utcSeconds > boundary {
			return false
		}
		if utcSeconds == boundary {
			return e.shift > 0
		}
	}
	return false
}

// HasPositiveEventAt reports whether a positive leap second is inserted
// directly after the given POSIX second. This is the validity check for
// the leap flag carried by an Instant or a decoded wire value.
func (t *Table) HasPositiveEventAt(posixSeconds int64) bool {
	if !t.IsEnabled() {
		return false
	}
	i := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].posixEnd >= posixSeconds
	})
	return i < len(t.entries) && t.entries[i].posixEnd == posixSeconds && t.entries[i].shift > 0
}
