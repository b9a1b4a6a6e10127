package budget

import (
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestRemaining(t *testing.T) {
	tests := []struct {
		name    string
		total   time.Duration
		elapsed time.Duration
		want    time.Duration
	}{
		{"nothing elapsed", 60 * time.Second, 0, 60 * time.Second},
		{"partially spent", 60 * time.Second, 15 * time.Second, 45 * time.Second},
		{"exactly spent", 60 * time.Second, 60 * time.Second, 0},
		{"overspent", 60 * time.Second, 90 * time.Second, 0},
		{"zero budget", 0, time.Second, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Remaining(tt.total, tt.elapsed); got != tt.want {
				t.Fatalf("Remaining(%v, %v) = %v, want %v", tt.total, tt.elapsed, got, tt.want)
			}
		})
	}
}

func TestTracker_RemainingNeverNegative(t *testing.T) {
	clock := newFakeClock()
	tracker := NewTracker(10*time.Second, clock)

	for step := 0; step < 30; step++ {
		elapsed := time.Duration(step) * time.Second
		want := 10*time.Second - elapsed
		if want < 0 {
			want = 0
		}
		if got := tracker.Remaining(); got != want {
			t.Fatalf("after %v: remaining = %v, want %v", elapsed, got, want)
		}
		clock.Advance(time.Second)
	}
	if !tracker.Exhausted() {
		t.Fatalf("expected tracker to be exhausted")
	}
}

func TestTracker_Lap(t *testing.T) {
	clock := newFakeClock()
	tracker := NewTracker(time.Minute, clock)

	clock.Advance(2 * time.Second)
	if got := tracker.Lap(); got != 2*time.Second {
		t.Fatalf("first lap = %v, want 2s", got)
	}
	clock.Advance(500 * time.Millisecond)
	if got := tracker.Lap(); got != 500*time.Millisecond {
		t.Fatalf("second lap = %v, want 500ms", got)
	}
	if got := tracker.Elapsed(); got != 2500*time.Millisecond {
		t.Fatalf("elapsed = %v, want 2.5s", got)
	}
}

func TestTracker_FormatElapsed(t *testing.T) {
	clock := newFakeClock()
	tracker := NewTracker(time.Minute, clock)
	clock.Advance(1234567 * time.Microsecond)

	if got := tracker.FormatElapsed(); got != "1.2346" {
		t.Fatalf("FormatElapsed() = %q, want 1.2346", got)
	}
	if got := FormatSeconds(0); got != "0.0000" {
		t.Fatalf("FormatSeconds(0) = %q", got)
	}
}

func TestNewTracker_DefaultsToSystemClock(t *testing.T) {
	tracker := NewTracker(time.Hour, nil)
	if tracker.Remaining() <= 0 {
		t.Fatalf("expected positive remaining budget")
	}
	if tracker.Total() != time.Hour {
		t.Fatalf("expected total 1h, got %v", tracker.Total())
	}
}
