package clock

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/BYTE-6D65/timescale/pkg/leapsecond"
	"github.com/BYTE-6D65/timescale/pkg/scale"
	"github.com/BYTE-6D65/timescale/pkg/telemetry"
)

func utcTotalNanos(t *testing.T, c Clock, table *leapsecond.Table) int64 {
	t.Helper()
	m, err := c.Now()
	if err != nil {
		t.Fatalf("Now() error: %v", err)
	}
	utc, err := m.ElapsedTime(scale.UTC, table)
	if err != nil {
		t.Fatalf("ElapsedTime(UTC) error: %v", err)
	}
	return utc*time.Second.Nanoseconds() + int64(m.Nanosecond())
}

func TestMonotonicClock_RequiresLeapData(t *testing.T) {
	_, err := NewMonotonicClock("test", NewManualTicks(0), leapsecond.Disabled(), nil)
	if !errors.Is(err, leapsecond.ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}

func TestMonotonicClock_Now(t *testing.T) {
	table := leapsecond.Builtin()
	clk, err := NewMonotonicClock("test", NewManualTicks(0), table, nil)
	if err != nil {
		t.Fatalf("NewMonotonicClock error: %v", err)
	}

	m, err := clk.Now()
	if err != nil {
		t.Fatalf("Now() error: %v", err)
	}

	wall := time.Now().Unix()
	utc, err := m.ElapsedTime(scale.UTC, table)
	if err != nil {
		t.Fatalf("ElapsedTime(UTC) error: %v", err)
	}
	// 27 leap seconds separate contemporary POSIX and UTC readings.
	diff := utc - 27 - wall
	if diff < -2 || diff > 2 {
		t.Errorf("UTC reading %d too far from wall clock %d", utc, wall)
	}
}

func TestMonotonicClock_TracksTicksExactly(t *testing.T) {
	table := leapsecond.Builtin()
	ticks := NewManualTicks(0)
	clk, err := NewMonotonicClock("test", ticks, table, nil)
	if err != nil {
		t.Fatalf("NewMonotonicClock error: %v", err)
	}

	before := utcTotalNanos(t, clk, table)
	ticks.Advance(2 * time.Second)
	after := utcTotalNanos(t, clk, table)

	if got := after - before; got != (2 * time.Second).Nanoseconds() {
		t.Errorf("advanced %dns on the UTC axis, want exactly 2s", got)
	}

	// The wall clock moving has no effect between calibrations: reading
	// twice with frozen ticks yields the identical instant.
	m1, _ := clk.Now()
	time.Sleep(5 * time.Millisecond)
	m2, _ := clk.Now()
	if !m1.Equal(m2) {
		t.Errorf("readings with frozen ticks differ: %v vs %v", m1, m2)
	}
}

func TestMonotonicClock_Recalibrate(t *testing.T) {
	table := leapsecond.Builtin()
	clk, err := NewMonotonicClock("test", NewSystemTicks(), table, nil)
	if err != nil {
		t.Fatalf("NewMonotonicClock error: %v", err)
	}

	first := clk.LastCalibration()
	if first.Attempts < 1 || first.Attempts > calibrationAttempts {
		t.Errorf("Attempts = %d, want 1..%d", first.Attempts, calibrationAttempts)
	}

	second, err := clk.Recalibrate()
	if err != nil {
		t.Fatalf("Recalibrate error: %v", err)
	}
	if second.ID == first.ID {
		t.Error("recalibration should mint a new id")
	}
	if got := clk.LastCalibration(); got.ID != second.ID {
		t.Error("LastCalibration should return the newest calibration")
	}
}

func TestMonotonicClock_CountsConversionFailures(t *testing.T) {
	table := leapsecond.Builtin()
	metrics := telemetry.InitMetrics(prometheus.NewRegistry())

	ticks := NewManualTicks(0)
	clk, err := NewMonotonicClock("test", ticks, table, metrics)
	if err != nil {
		t.Fatalf("NewMonotonicClock error: %v", err)
	}

	// The calibration offset for a contemporary wall clock is positive,
	// so adding MaxInt64 ticks overflows the UTC nanosecond total.
	ticks.Set(math.MaxInt64)
	if _, err := clk.Now(); !errors.Is(err, scale.ErrOverflow) {
		t.Fatalf("Now() error = %v, want ErrOverflow", err)
	}

	if got := testutil.ToFloat64(metrics.ScaleErrors.WithLabelValues("UTC")); got != 1 {
		t.Errorf("UTC conversion error count = %v, want 1", got)
	}
}

func TestMonotonicClock_SynchronizeWith(t *testing.T) {
	table := leapsecond.Builtin()

	refTicks := NewManualTicks(0)
	ref, err := NewMonotonicClock("ref", refTicks, table, nil)
	if err != nil {
		t.Fatalf("NewMonotonicClock error: %v", err)
	}

	ticks := NewManualTicks(500)
	clk, err := NewMonotonicClock("follower", ticks, table, nil)
	if err != nil {
		t.Fatalf("NewMonotonicClock error: %v", err)
	}

	if _, err := clk.SynchronizeWith(ref); err != nil {
		t.Fatalf("SynchronizeWith error: %v", err)
	}

	// With both tick sources frozen the clocks agree exactly.
	m1, err := ref.Now()
	if err != nil {
		t.Fatalf("ref.Now() error: %v", err)
	}
	m2, err := clk.Now()
	if err != nil {
		t.Fatalf("clk.Now() error: %v", err)
	}
	if !m1.Equal(m2) {
		t.Errorf("clocks disagree after synchronization: %v vs %v", m1, m2)
	}
}
