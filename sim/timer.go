package sim

import "time"

// ticker is a polled repeating fixed-interval timer. It accumulates frame
// deltas and fires at most once per advance call, carrying any remainder into
// the next cycle so long frames do not drift the schedule.
type ticker struct {
	interval time.Duration
	acc      time.Duration
}

// advance adds dt to the accumulator and reports whether the interval elapsed.
func (t *ticker) advance(dt time.Duration) bool {
	t.acc += dt
	if t.acc < t.interval {
		return false
	}
	t.acc %= t.interval
	return true
}

func (t *ticker) reset() {
	t.acc = 0
}
