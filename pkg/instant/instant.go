// Package instant implements the library's central value type: an
// immutable point on the time axis held as POSIX seconds plus a
// nanosecond fraction, with an explicit marker for instants that denote
// an inserted (positive) leap second. The marker is needed because an
// inserted second has no POSIX representation: 23:59:60 shares its POSIX
// second with the preceding 23:59:59.
//
// All leap-second-aware operations take the table to consult as an
// explicit argument. An Instant never captures a table reference, so a
// value is just three words and equality is plain value equality.
package instant

import (
	"fmt"

	"github.com/BYTE-6D65/timescale/pkg/leapsecond"
	"github.com/BYTE-6D65/timescale/pkg/scale"
)

const (
	// NanosPerSecond is the fraction modulus.
	NanosPerSecond = 1_000_000_000

	// MinSeconds and MaxSeconds bound PosixSeconds to the supported
	// calendar range (years -999999999 through 999999999).
	MinSeconds int64 = -31557014135683200
	MaxSeconds int64 = 31556889832780799
)

// Instant is an immutable point in time. The zero value is the POSIX
// epoch 1970-01-01T00:00:00Z.
type Instant struct {
	sec  int64
	nano int32
	leap bool
}

// Zero is the shared POSIX epoch instant. FromPosix(0, 0) returns it.
var Zero = Instant{}

// Min and Max are the earliest and latest representable instants.
var (
	Min = Instant{sec: MinSeconds}
	Max = Instant{sec: MaxSeconds, nano: NanosPerSecond - 1}
)

// FromPosix builds an instant from POSIX seconds and a nanosecond
// fraction in [0, 1e9). No leap-second table is involved.
func FromPosix(seconds int64, nano int) (Instant, error) {
	if nano < 0 || nano >= NanosPerSecond {
		return Zero, fmt.Errorf("%w: nanosecond %d", ErrRange, nano)
	}
	if seconds < MinSeconds || seconds > MaxSeconds {
		return Zero, fmt.Errorf("%w: posix seconds %d", ErrRange, seconds)
	}
	if seconds == 0 && nano == 0 {
		return Zero, nil
	}
	return Instant{sec: seconds, nano: int32(nano)}, nil
}

// Normalize builds an instant from POSIX seconds and an arbitrary
// fraction, carrying whole seconds out of the fraction in either
// direction so that seconds*1e9+fraction is preserved exactly and the
// stored fraction lands in [0, 1e9). Subtraction results with negative
// fractions funnel through here.
func Normalize(seconds, fraction int64) (Instant, error) {
	carry := fraction / NanosPerSecond
	frac := fraction % NanosPerSecond
	if frac < 0 {
		carry--
		frac += NanosPerSecond
	}
	sec, err := scale.AddChecked(seconds, carry)
	if err != nil {
		return Zero, err
	}
	return FromPosix(sec, int(frac))
}

// Of builds an instant from an elapsed-seconds reading on the given
// scale. Non-POSIX scales consult the table; a disabled table or a
// reading before the scale's defined start is an error, never a
// silent fallback.
func Of(elapsed int64, nano int, sc scale.Scale, table *leapsecond.Table) (Instant, error) {
	switch sc {
	case scale.POSIX:
		return FromPosix(elapsed, nano)
	case scale.UTC:
		return fromUTCElapsed(elapsed, nano, table)
	case scale.TAI:
		utc, err := scale.TAIToUTC(elapsed)
		if err != nil {
			return Zero, err
		}
		return fromUTCElapsed(utc, nano, table)
	case scale.GPS:
		utc, err := scale.GPSToUTC(elapsed)
		if err != nil {
			return Zero, err
		}
		return fromUTCElapsed(utc, nano, table)
	default:
		return Zero, fmt.Errorf("instant: unknown scale %v", sc)
	}
}

// FromUTC builds an instant from UTC elapsed seconds.
func FromUTC(elapsed int64, nano int, table *leapsecond.Table) (Instant, error) {
	return Of(elapsed, nano, scale.UTC, table)
}

// FromTAI builds an instant from a TAI reading (1972-01-01 onward).
func FromTAI(elapsed int64, nano int, table *leapsecond.Table) (Instant, error) {
	return Of(elapsed, nano, scale.TAI, table)
}

// FromGPS builds an instant from a GPS reading (1980-01-06 onward).
func FromGPS(elapsed int64, nano int, table *leapsecond.Table) (Instant, error) {
	return Of(elapsed, nano, scale.GPS, table)
}

func fromUTCElapsed(utc int64, nano int, table *leapsecond.Table) (Instant, error) {
	if nano < 0 || nano >= NanosPerSecond {
		return Zero, fmt.Errorf("%w: nanosecond %d", ErrRange, nano)
	}
	posix, leap, err := table.Strip(utc)
	if err != nil {
		return Zero, err
	}
	if posix < MinSeconds || posix > MaxSeconds {
		return Zero, fmt.Errorf("%w: posix seconds %d", ErrRange, posix)
	}
	return Instant{sec: posix, nano: int32(nano), leap: leap}, nil
}

// PosixSeconds returns the stored POSIX seconds. For an instant marking
// an inserted leap second this is the POSIX second the leap second
// shares with 23:59:59.
func (m Instant) PosixSeconds() int64 {
	return m.sec
}

// Nanosecond returns the stored fraction. The fraction is
// scale-invariant by construction; use the Nanosecond query with a
// scale argument when the scale's validity window must be enforced.
func (m Instant) Nanosecond() int {
	return int(m.nano)
}

// LeapFlagged reports whether the raw positive-leap marker is set,
// regardless of table configuration. Most callers want IsLeapSecond.
func (m Instant) LeapFlagged() bool {
	return m.leap
}

// IsLeapSecond reports whether this instant denotes an inserted leap
// second under the given table. A flag carried by a previously built or
// deserialized value goes inert when consulted against a disabled table.
func (m Instant) IsLeapSecond(table *leapsecond.Table) bool {
	return m.leap && table.IsEnabled()
}

// ElapsedTime returns the instant's seconds reading on the given scale.
// POSIX needs no table. UTC folds in the cumulative shift and the leap
// marker. TAI and GPS additionally apply their fixed deltas and reject
// instants before the scale's start.
func (m Instant) ElapsedTime(sc scale.Scale, table *leapsecond.Table) (int64, error) {
	switch sc {
	case scale.POSIX:
		return m.sec, nil
	case scale.UTC:
		return m.utcSeconds(table)
	case scale.TAI:
		utc, err := m.utcSeconds(table)
		if err != nil {
			return 0, err
		}
		return scale.UTCToTAI(utc)
	case scale.GPS:
		utc, err := m.utcSeconds(table)
		if err != nil {
			return 0, err
		}
		return scale.UTCToGPS(utc)
	default:
		return 0, fmt.Errorf("instant: unknown scale %v", sc)
	}
}

// NanosecondOn returns the fraction after enforcing the scale's
// validity window (the fraction itself is identical on every scale).
func (m Instant) NanosecondOn(sc scale.Scale, table *leapsecond.Table) (int, error) {
	if sc != scale.POSIX {
		if _, err := m.ElapsedTime(sc, table); err != nil {
			return 0, err
		}
	}
	return int(m.nano), nil
}

func (m Instant) utcSeconds(table *leapsecond.Table) (int64, error) {
	utc, err := table.Enhance(m.sec)
	if err != nil {
		return 0, err
	}
	if m.leap {
		return scale.AddChecked(utc, 1)
	}
	return utc, nil
}

// Compare orders instants on the UTC axis: by POSIX second, then by the
// leap marker (the inserted second follows every fraction of the second
// it shares a POSIX value with), then by fraction. The marker
// participates: a leap-flagged instant strictly exceeds the unflagged
// instant at the same POSIX second.
func (m Instant) Compare(o Instant) int {
	switch {
	case m.sec < o.sec:
		return -1
	case m.sec > o.sec:
		return 1
	case m.leap != o.leap:
		if o.leap {
			return -1
		}
		return 1
	case m.nano < o.nano:
		return -1
	case m.nano > o.nano:
		return 1
	default:
		return 0
	}
}

// Before reports whether m is strictly earlier than o.
func (m Instant) Before(o Instant) bool { return m.Compare(o) < 0 }

// After reports whether m is strictly later than o.
func (m Instant) After(o Instant) bool { return m.Compare(o) > 0 }

// Equal reports value equality including the leap marker. The marker is
// part of the value, not of any table: two instants differing only in
// the marker are never equal, whatever the process's leap configuration.
func (m Instant) Equal(o Instant) bool {
	return m == o
}

func (m Instant) String() string {
	if m.leap {
		return fmt.Sprintf("POSIX:%d.%09dL", m.sec, m.nano)
	}
	return fmt.Sprintf("POSIX:%d.%09d", m.sec, m.nano)
}
