// Package clock produces Instants from the operating system's clocks.
// Two modes are provided: SystemClock reads the wall clock directly and
// yields POSIX instants (subject to OS time jumps), MonotonicClock reads
// a monotonic tick counter calibrated once against the wall clock and
// yields UTC instants that keep advancing smoothly between calibrations.
package clock

import (
	"sync/atomic"
	"time"

	"github.com/BYTE-6D65/timescale/pkg/instant"
	"github.com/BYTE-6D65/timescale/pkg/scale"
	"github.com/BYTE-6D65/timescale/pkg/telemetry"
)

// Clock produces an Instant approximating "now".
type Clock interface {
	Now() (instant.Instant, error)
}

// TickSource is a monotonic nanosecond counter from an arbitrary epoch.
// Using int64 provides ~292 years of range with nanosecond precision.
type TickSource interface {
	Ticks() int64
}

// SystemTicks uses the Go runtime's monotonic clock, anchored at
// creation to provide a stable base.
type SystemTicks struct {
	epoch time.Time
}

// NewSystemTicks creates a tick source anchored at the current time.
func NewSystemTicks() *SystemTicks {
	return &SystemTicks{epoch: time.Now()}
}

// Ticks returns nanoseconds elapsed since the anchor.
func (s *SystemTicks) Ticks() int64 {
	// time.Since reads the monotonic clock internally.
	return time.Since(s.epoch).Nanoseconds()
}

// ManualTicks is a TickSource driven by the caller, for deterministic
// tests and simulations.
type ManualTicks struct {
	now atomic.Int64
}

// NewManualTicks creates a manual tick source starting at start.
func NewManualTicks(start int64) *ManualTicks {
	m := &ManualTicks{}
	m.now.Store(start)
	return m
}

// Ticks returns the current manual reading.
func (m *ManualTicks) Ticks() int64 {
	return m.now.Load()
}

// Advance moves the reading forward (or backward, for fault injection).
func (m *ManualTicks) Advance(d time.Duration) {
	m.now.Add(d.Nanoseconds())
}

// Set replaces the reading outright.
func (m *ManualTicks) Set(ticks int64) {
	m.now.Store(ticks)
}

// SystemClock is the plain mode: each read consults the OS wall clock at
// millisecond precision and returns a POSIX instant. Reads follow OS
// time adjustments, including backward jumps.
type SystemClock struct {
	metrics *telemetry.Metrics
}

// NewSystemClock creates a plain wall-clock instant source. metrics may
// be nil.
func NewSystemClock(metrics *telemetry.Metrics) *SystemClock {
	return &SystemClock{metrics: metrics}
}

// Now returns the current wall-clock time as a POSIX instant.
func (c *SystemClock) Now() (instant.Instant, error) {
	ms := time.Now().UnixMilli()
	m, err := instant.Normalize(ms/1000, (ms%1000)*int64(time.Millisecond))
	if err != nil {
		c.metrics.RecordScaleError(scale.POSIX.String())
		return instant.Zero, err
	}
	c.metrics.RecordRead("plain")
	return m, nil
}
