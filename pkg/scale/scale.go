// Package scale defines the supported time scales and the pure
// elapsed-time conversions between them. Elapsed times are int64 second
// counts sharing the 1970-01-01 POSIX epoch numbering: POSIX ignores
// leap seconds, UTC includes the cumulative leap-second shift, TAI reads
// UTC+10 and GPS reads UTC minus its 1980-01-06 anchor. Conversions that
// need the leap-second table itself (POSIX<->UTC) live in pkg/leapsecond;
// everything here is a fixed-delta shift plus a domain check.
package scale

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Scale identifies a time scale.
type Scale int

const (
	POSIX Scale = iota // seconds since 1970-01-01, every day 86400s
	UTC                // POSIX plus cumulative leap-second shift
	TAI                // atomic time, UTC+10s, defined from 1972-01-01
	GPS                // UTC anchored to zero at 1980-01-06
)

const (
	// UTCEpochPosix is 1972-01-01T00:00:00Z in POSIX seconds (2*365 days
	// after the POSIX epoch). UTC, and with it TAI and SI-second
	// arithmetic, is undefined before this point.
	UTCEpochPosix int64 = 63072000

	// TAIDelta is TAI-UTC at the UTC epoch. TAI has no leap seconds, so
	// in UTC-elapsed numbering the delta stays constant.
	TAIDelta int64 = 10

	// GPSEpochUTC is 1980-01-06T00:00:00Z in UTC elapsed seconds
	// (POSIX 315964800 plus the 9 leap seconds inserted by then).
	GPSEpochUTC int64 = 315964809
)

func (s Scale) String() string {
	switch s {
	case POSIX:
		return "POSIX"
	case UTC:
		return "UTC"
	case TAI:
		return "TAI"
	case GPS:
		return "GPS"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(s))
	}
}

// Parse converts a scale name (case-insensitive) to a Scale.
func Parse(name string) (Scale, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "POSIX":
		return POSIX, nil
	case "UTC":
		return UTC, nil
	case "TAI":
		return TAI, nil
	case "GPS":
		return GPS, nil
	default:
		return 0, fmt.Errorf("unknown time scale %q", name)
	}
}

// All lists the supported scales in display order.
func All() []Scale {
	return []Scale{POSIX, UTC, TAI, GPS}
}

// ErrOverflow is returned when a checked integer operation would leave
// the int64 range.
var ErrOverflow = errors.New("scale: arithmetic overflow")

// ErrBeforeScaleStart is returned when an elapsed time predates the
// scale's defined start (1972-01-01 for UTC/TAI, 1980-01-06 for GPS).
var ErrBeforeScaleStart = errors.New("scale: instant predates scale start")

// AddChecked returns a+b or ErrOverflow.
func AddChecked(a, b int64) (int64, error) {
	s := a + b
	if (b > 0 && s < a) || (b < 0 && s > a) {
		return 0, ErrOverflow
	}
	return s, nil
}

// SubChecked returns a-b or ErrOverflow.
func SubChecked(a, b int64) (int64, error) {
	d := a - b
	if (b < 0 && d < a) || (b > 0 && d > a) {
		return 0, ErrOverflow
	}
	return d, nil
}

// MulChecked returns a*b or ErrOverflow.
func MulChecked(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	// -MinInt64 is unrepresentable and the quotient check below cannot
	// see it: MinInt64 * -1 wraps back to MinInt64 exactly.
	if (a == math.MinInt64 && b == -1) || (b == math.MinInt64 && a == -1) {
		return 0, ErrOverflow
	}
	p := a * b
	if p/b != a {
		return 0, ErrOverflow
	}
	return p, nil
}

// UTCToTAI converts a UTC elapsed time to TAI. TAI is undefined before
// the UTC epoch.
func UTCToTAI(utc int64) (int64, error) {
	if utc < UTCEpochPosix {
		return 0, fmt.Errorf("%w: TAI starts 1972-01-01", ErrBeforeScaleStart)
	}
	return AddChecked(utc, TAIDelta)
}

// TAIToUTC is the inverse of UTCToTAI.
func TAIToUTC(tai int64) (int64, error) {
	utc, err := SubChecked(tai, TAIDelta)
	if err != nil {
		return 0, err
	}
	if utc < UTCEpochPosix {
		return 0, fmt.Errorf("%w: TAI starts 1972-01-01", ErrBeforeScaleStart)
	}
	return utc, nil
}

// UTCToGPS converts a UTC elapsed time to GPS. GPS is undefined before
// 1980-01-06.
func UTCToGPS(utc int64) (int64, error) {
	if utc < GPSEpochUTC {
		return 0, fmt.Errorf("%w: GPS starts 1980-01-06", ErrBeforeScaleStart)
	}
	return SubChecked(utc, GPSEpochUTC)
}

// GPSToUTC is the inverse of UTCToGPS. Negative GPS readings are
// rejected rather than mapped before the GPS epoch.
func GPSToUTC(gps int64) (int64, error) {
	if gps < 0 {
		return 0, fmt.Errorf("%w: GPS starts 1980-01-06", ErrBeforeScaleStart)
	}
	return AddChecked(gps, GPSEpochUTC)
}
