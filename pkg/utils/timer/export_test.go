package timer

import "time"

// NewWithClock returns a timer reading the given clock.
func NewWithClock(now func() time.Time) Timer {
	return &timer{now: now}
}
