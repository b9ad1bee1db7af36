// Package tz defines the timezone-offset collaborator contract. The
// core never computes UTC offsets itself; rule-database lookup is an
// external service plugged in as a function of the instant.
package tz

import "github.com/BYTE-6D65/timescale/pkg/instant"

// OffsetFunc returns the local UTC offset in signed seconds that applies
// at the given instant.
type OffsetFunc func(instant.Instant) int

// Fixed returns an OffsetFunc with a constant offset, e.g. Fixed(3600)
// for UTC+01:00.
func Fixed(seconds int) OffsetFunc {
	return func(instant.Instant) int { return seconds }
}

// UTC is the zero-offset function.
var UTC OffsetFunc = Fixed(0)
