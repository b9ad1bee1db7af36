package instant

import (
	"fmt"
	"math"

	"github.com/BYTE-6D65/timescale/pkg/leapsecond"
	"github.com/BYTE-6D65/timescale/pkg/scale"
)

// Unit selects the granularity of an arithmetic amount.
type Unit int

const (
	Seconds Unit = iota
	Nanoseconds
)

func (u Unit) String() string {
	switch u {
	case Seconds:
		return "SECONDS"
	case Nanoseconds:
		return "NANOSECONDS"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(u))
	}
}

// PlusPosix adds an amount of plain POSIX time: every day is 86400
// seconds and no leap-second table is consulted. Always legal for any
// instant. The result carries no leap marker; POSIX arithmetic operates
// on the POSIX projection, where an inserted second does not exist.
func (m Instant) PlusPosix(amount int64, unit Unit) (Instant, error) {
	switch unit {
	case Seconds:
		sec, err := scale.AddChecked(m.sec, amount)
		if err != nil {
			return Zero, err
		}
		return FromPosix(sec, int(m.nano))
	case Nanoseconds:
		sec, err := scale.AddChecked(m.sec, amount/NanosPerSecond)
		if err != nil {
			return Zero, err
		}
		return Normalize(sec, int64(m.nano)+amount%NanosPerSecond)
	default:
		return Zero, fmt.Errorf("instant: unknown unit %v", unit)
	}
}

// MinusPosix subtracts an amount of plain POSIX time.
func (m Instant) MinusPosix(amount int64, unit Unit) (Instant, error) {
	if amount == math.MinInt64 {
		return Zero, ErrOverflow
	}
	return m.PlusPosix(-amount, unit)
}

// PlusSI adds an amount of SI time: the operation runs on the UTC
// elapsed axis, so it advances through inserted leap seconds instead of
// skipping them. Both the instant and the result must lie at or after
// the UTC epoch (1972-01-01); SI durations are undefined earlier. That
// is a hard domain boundary, not a rounding choice.
func (m Instant) PlusSI(amount int64, unit Unit, table *leapsecond.Table) (Instant, error) {
	if m.sec < scale.UTCEpochPosix {
		return Zero, fmt.Errorf("%w: SI arithmetic before 1972-01-01", ErrScaleDomain)
	}
	utc, err := m.utcSeconds(table)
	if err != nil {
		return Zero, err
	}

	nano := int64(m.nano)
	carry := amount
	if unit == Nanoseconds {
		carry = amount / NanosPerSecond
		nano += amount % NanosPerSecond
		if nano < 0 {
			nano += NanosPerSecond
			carry--
		} else if nano >= NanosPerSecond {
			nano -= NanosPerSecond
			carry++
		}
	} else if unit != Seconds {
		return Zero, fmt.Errorf("instant: unknown unit %v", unit)
	}

	newUTC, err := scale.AddChecked(utc, carry)
	if err != nil {
		return Zero, err
	}
	if newUTC < scale.UTCEpochPosix {
		return Zero, fmt.Errorf("%w: SI arithmetic result before 1972-01-01", ErrScaleDomain)
	}
	return fromUTCElapsed(newUTC, int(nano), table)
}

// MinusSI subtracts an amount of SI time, with the same domain boundary
// as PlusSI.
func (m Instant) MinusSI(amount int64, unit Unit, table *leapsecond.Table) (Instant, error) {
	if amount == math.MinInt64 {
		return Zero, ErrOverflow
	}
	return m.PlusSI(-amount, unit, table)
}

// StepForward returns the next representable instant: one SI nanosecond
// later when the instant sits at or after the UTC epoch and the table is
// enabled, otherwise one POSIX nanosecond later. ok is false when no
// successor exists within the representable range.
func (m Instant) StepForward(table *leapsecond.Table) (Instant, bool) {
	var next Instant
	var err error
	if m.sec >= scale.UTCEpochPosix && table.IsEnabled() {
		next, err = m.PlusSI(1, Nanoseconds, table)
	} else {
		next, err = m.PlusPosix(1, Nanoseconds)
	}
	if err != nil {
		return Zero, false
	}
	return next, true
}

// StepBackward is the inverse of StepForward; ok is false when no
// predecessor exists.
func (m Instant) StepBackward(table *leapsecond.Table) (Instant, bool) {
	var prev Instant
	var err error
	if m.sec >= scale.UTCEpochPosix && table.IsEnabled() {
		prev, err = m.MinusSI(1, Nanoseconds, table)
	} else {
		prev, err = m.MinusPosix(1, Nanoseconds)
	}
	if err != nil {
		return Zero, false
	}
	return prev, true
}
