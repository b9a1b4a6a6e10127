package budget

import (
	"testing"
	"time"
)

func TestIntervals_UnknownName(t *testing.T) {
	intervals := NewIntervals(newFakeClock())
	if intervals.Check("missing") {
		t.Fatalf("expected unregistered interval to report false")
	}
}

func TestIntervals_FiresOncePerPeriod(t *testing.T) {
	clock := newFakeClock()
	intervals := NewIntervals(clock)
	intervals.Register("stats", 10*time.Second)

	if intervals.Check("stats") {
		t.Fatalf("expected no fire right after registration")
	}

	clock.Advance(9 * time.Second)
	if intervals.Check("stats") {
		t.Fatalf("expected no fire before the period elapsed")
	}

	clock.Advance(time.Second)
	if !intervals.Check("stats") {
		t.Fatalf("expected fire once the period elapsed")
	}
	if intervals.Check("stats") {
		t.Fatalf("expected the interval to reset after firing")
	}

	clock.Advance(25 * time.Second)
	if !intervals.Check("stats") {
		t.Fatalf("expected fire after a long gap")
	}
}

func TestIntervals_IndependentNames(t *testing.T) {
	clock := newFakeClock()
	intervals := NewIntervals(clock)
	intervals.Register("fast", time.Second)
	intervals.Register("slow", time.Minute)

	clock.Advance(2 * time.Second)
	if !intervals.Check("fast") {
		t.Fatalf("expected fast interval to fire")
	}
	if intervals.Check("slow") {
		t.Fatalf("expected slow interval to stay quiet")
	}
}

func TestIntervals_ReRegisterResets(t *testing.T) {
	clock := newFakeClock()
	intervals := NewIntervals(clock)
	intervals.Register("job", 5*time.Second)
	clock.Advance(4 * time.Second)
	intervals.Register("job", 5*time.Second)
	clock.Advance(4 * time.Second)

	if intervals.Check("job") {
		t.Fatalf("expected re-registration to restart the period")
	}
}
