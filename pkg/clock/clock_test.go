package clock

import (
	"testing"
	"time"
)

func TestSystemTicks_Advance(t *testing.T) {
	ticks := NewSystemTicks()

	t1 := ticks.Ticks()
	time.Sleep(10 * time.Millisecond)
	t2 := ticks.Ticks()

	if t2 <= t1 {
		t.Error("tick source should advance monotonically")
	}
	if t2-t1 < (10 * time.Millisecond).Nanoseconds() {
		t.Errorf("expected at least 10ms of ticks, got %dns", t2-t1)
	}
}

func TestManualTicks(t *testing.T) {
	ticks := NewManualTicks(100)

	if got := ticks.Ticks(); got != 100 {
		t.Errorf("Ticks() = %d, want 100", got)
	}

	ticks.Advance(time.Second)
	if got := ticks.Ticks(); got != 100+time.Second.Nanoseconds() {
		t.Errorf("Ticks() after advance = %d", got)
	}

	ticks.Set(42)
	if got := ticks.Ticks(); got != 42 {
		t.Errorf("Ticks() after set = %d, want 42", got)
	}
}

func TestSystemClock_Now(t *testing.T) {
	clk := NewSystemClock(nil)

	m, err := clk.Now()
	if err != nil {
		t.Fatalf("Now() error: %v", err)
	}

	wall := time.Now().Unix()
	diff := m.PosixSeconds() - wall
	if diff < -2 || diff > 2 {
		t.Errorf("Now() = %d, wall clock = %d", m.PosixSeconds(), wall)
	}

	// Plain mode reads at millisecond precision.
	if m.Nanosecond()%int(time.Millisecond) != 0 {
		t.Errorf("Nanosecond() = %d, want a millisecond multiple", m.Nanosecond())
	}
}
