package instant

import (
	"errors"

	"github.com/BYTE-6D65/timescale/pkg/scale"
)

var (
	// ErrRange reports a nanosecond outside [0, 1e9) or a seconds value
	// outside the supported calendar range. Inputs are rejected, never
	// clamped.
	ErrRange = errors.New("instant: value out of range")

	// ErrScaleDomain reports an operation on a scale before that scale
	// is defined: TAI before 1972-01-01, GPS before 1980-01-06, or SI
	// arithmetic on an instant before the UTC epoch.
	ErrScaleDomain = scale.ErrBeforeScaleStart

	// ErrOverflow reports checked integer arithmetic leaving the int64
	// range. Distinct from ErrRange: the operation itself wrapped, not
	// merely produced an out-of-bounds instant.
	ErrOverflow = scale.ErrOverflow

	// ErrLeapConfig reports a leap flag that the active leap-second
	// table cannot account for, e.g. a serialized instant moved between
	// processes with differing tables.
	ErrLeapConfig = errors.New("instant: leap flag has no registered leap-second event")
)
