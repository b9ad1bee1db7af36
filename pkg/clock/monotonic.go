package clock

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/BYTE-6D65/timescale/pkg/instant"
	"github.com/BYTE-6D65/timescale/pkg/leapsecond"
	"github.com/BYTE-6D65/timescale/pkg/scale"
	"github.com/BYTE-6D65/timescale/pkg/telemetry"
)

// calibrationAttempts bounds the wall-clock reads performed while
// hunting for a millisecond-boundary crossing. Bounded retry, never an
// unbounded spin.
const calibrationAttempts = 10

// Calibration is one immutable anchoring of a tick source to the wall
// clock. OffsetNanos is utcNanosAtCalibration - tickAtCalibration, so
// utcNanos(now) = OffsetNanos + ticks(now).
type Calibration struct {
	ID          uuid.UUID
	OffsetNanos int64
	Wall        time.Time // wall-clock reading the anchor was taken from
	Attempts    int       // wall-clock reads spent finding the boundary
}

// MonotonicClock reads a monotonic tick counter calibrated once against
// the OS wall clock and produces UTC instants. Between calibrations the
// clock is immune to wall-clock jumps; Recalibrate and SynchronizeWith
// re-anchor explicitly, acknowledging a possible discontinuity.
//
// The calibration is published behind an atomic pointer, so Recalibrate
// may be called concurrently with reads.
type MonotonicClock struct {
	id      string
	ticks   TickSource
	table   *leapsecond.Table
	metrics *telemetry.Metrics

	calibration atomic.Pointer[Calibration]
}

// NewMonotonicClock creates a calibrated monotonic clock. The table must
// be enabled: this clock hands out UTC instants and cannot degrade to
// POSIX silently. metrics may be nil.
func NewMonotonicClock(id string, ticks TickSource, table *leapsecond.Table, metrics *telemetry.Metrics) (*MonotonicClock, error) {
	if !table.IsEnabled() {
		return nil, fmt.Errorf("clock: monotonic mode needs leap-second data: %w", leapsecond.ErrDisabled)
	}
	c := &MonotonicClock{id: id, ticks: ticks, table: table, metrics: metrics}
	if _, err := c.Recalibrate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Now returns the current instant on the UTC scale.
func (c *MonotonicClock) Now() (instant.Instant, error) {
	cal := c.calibration.Load()
	utcNanos, err := scale.AddChecked(cal.OffsetNanos, c.ticks.Ticks())
	if err != nil {
		c.metrics.RecordScaleError(scale.UTC.String())
		return instant.Zero, err
	}
	sec := utcNanos / int64(time.Second)
	nano := utcNanos % int64(time.Second)
	if nano < 0 {
		sec--
		nano += int64(time.Second)
	}
	m, err := instant.FromUTC(sec, int(nano), c.table)
	if err != nil {
		c.metrics.RecordScaleError(scale.UTC.String())
		return instant.Zero, err
	}
	c.metrics.RecordRead("monotonic")
	return m, nil
}

// LastCalibration returns the calibration currently in effect.
func (c *MonotonicClock) LastCalibration() Calibration {
	return *c.calibration.Load()
}

// Recalibrate re-anchors the tick source against the wall clock and
// publishes the new calibration atomically. The new anchor may introduce
// a discontinuity relative to instants produced before the call.
func (c *MonotonicClock) Recalibrate() (Calibration, error) {
	cal, err := c.calibrate()
	if err != nil {
		return Calibration{}, err
	}
	c.calibration.Store(&cal)
	c.metrics.RecordCalibration(c.id, float64(cal.OffsetNanos)/float64(time.Second))
	return cal, nil
}

// SynchronizeWith re-anchors this clock so that its readings agree with
// other's current reading, instead of with the OS wall clock.
func (c *MonotonicClock) SynchronizeWith(other Clock) (Calibration, error) {
	m, err := other.Now()
	if err != nil {
		return Calibration{}, err
	}
	utc, err := m.ElapsedTime(scale.UTC, c.table)
	if err != nil {
		return Calibration{}, err
	}
	utcNanos, err := utcNanosOf(utc, m.Nanosecond())
	if err != nil {
		return Calibration{}, err
	}
	offset, err := scale.SubChecked(utcNanos, c.ticks.Ticks())
	if err != nil {
		return Calibration{}, err
	}
	cal := Calibration{ID: uuid.New(), OffsetNanos: offset, Wall: time.Now(), Attempts: 0}
	c.calibration.Store(&cal)
	c.metrics.RecordCalibration(c.id, float64(offset)/float64(time.Second))
	return cal, nil
}

// calibrate reads the wall clock up to calibrationAttempts times looking
// for a millisecond rollover, so the paired tick reading sits as close
// as possible to a millisecond boundary. If no rollover is observed the
// final pair is used as-is.
func (c *MonotonicClock) calibrate() (Calibration, error) {
	first := time.Now()
	wallMs := first.UnixMilli()
	tick := c.ticks.Ticks()
	attempts := 1

	for ; attempts < calibrationAttempts; attempts++ {
		next := time.Now()
		nextTick := c.ticks.Ticks()
		if next.UnixMilli() != wallMs {
			wallMs = next.UnixMilli()
			tick = nextTick
			first = next
			break
		}
	}

	utcSec, err := c.table.Enhance(wallMs / 1000)
	if err != nil {
		return Calibration{}, err
	}
	utcNanos, err := utcNanosOf(utcSec, int(wallMs%1000)*int(time.Millisecond))
	if err != nil {
		return Calibration{}, err
	}
	offset, err := scale.SubChecked(utcNanos, tick)
	if err != nil {
		return Calibration{}, err
	}
	return Calibration{ID: uuid.New(), OffsetNanos: offset, Wall: first, Attempts: attempts}, nil
}

func utcNanosOf(utcSec int64, nano int) (int64, error) {
	n, err := scale.MulChecked(utcSec, int64(time.Second))
	if err != nil {
		return 0, err
	}
	return scale.AddChecked(n, int64(nano))
}
