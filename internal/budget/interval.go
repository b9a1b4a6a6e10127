package budget

import (
	"sync"
	"time"
)

type interval struct {
	period    time.Duration
	lastFired time.Time
}

// Intervals gates recurring work by name. It is independent of any
// validation budget and safe for concurrent use.
type Intervals struct {
	clock   Clock
	mu      sync.Mutex
	entries map[string]*interval
}

// NewIntervals creates an empty interval registry.
func NewIntervals(clock Clock) *Intervals {
	if clock == nil {
		clock = SystemClock()
	}
	return &Intervals{
		clock:   clock,
		entries: make(map[string]*interval),
	}
}

// Register stores period for name and starts counting from now. Registering
// an existing name replaces it.
func (i *Intervals) Register(name string, period time.Duration) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.entries[name] = &interval{period: period, lastFired: i.clock.Now()}
}

// Check returns true and resets the interval when at least one period has
// passed since registration or the last true result. Unknown names return false.
func (i *Intervals) Check(name string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	entry, ok := i.entries[name]
	if !ok {
		return false
	}
	now := i.clock.Now()
	if now.Sub(entry.lastFired) >= entry.period {
		entry.lastFired = now
		return true
	}
	return false
}
