// Package budget tracks the wall-clock allowance shared by the external
// checks of one validation run.
package budget

import (
	"fmt"
	"time"
)

// Clock supplies the current instant. Readings from time.Now carry a
// monotonic component, so differences are immune to wall-clock adjustments.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the process clock.
func SystemClock() Clock { return systemClock{} }

// Tracker measures elapsed time since its creation against a fixed total.
type Tracker struct {
	clock   Clock
	total   time.Duration
	start   time.Time
	lastLap time.Time
}

// NewTracker starts a tracker for the given total budget.
func NewTracker(total time.Duration, clock Clock) *Tracker {
	if clock == nil {
		clock = SystemClock()
	}
	now := clock.Now()
	return &Tracker{
		clock:   clock,
		total:   total,
		start:   now,
		lastLap: now,
	}
}

// Total returns the configured budget.
func (t *Tracker) Total() time.Duration {
	return t.total
}

// Elapsed returns the time spent since the tracker started.
func (t *Tracker) Elapsed() time.Duration {
	return t.clock.Now().Sub(t.start)
}

// Remaining returns the unspent part of the budget, never negative.
func (t *Tracker) Remaining() time.Duration {
	return Remaining(t.total, t.Elapsed())
}

// Exhausted reports whether nothing is left of the budget.
func (t *Tracker) Exhausted() bool {
	return t.Remaining() == 0
}

// Lap returns the time since the previous Lap call (or since start) and
// resets the lap mark.
func (t *Tracker) Lap() time.Duration {
	now := t.clock.Now()
	d := now.Sub(t.lastLap)
	t.lastLap = now
	return d
}

// FormatElapsed renders the elapsed time in seconds with four decimals.
func (t *Tracker) FormatElapsed() string {
	return FormatSeconds(t.Elapsed())
}

// Remaining computes max(0, total-elapsed).
func Remaining(total, elapsed time.Duration) time.Duration {
	if left := total - elapsed; left > 0 {
		return left
	}
	return 0
}

// FormatSeconds renders d as seconds with four fractional digits.
func FormatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.4f", d.Seconds())
}
