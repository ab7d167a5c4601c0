package resize

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period after the last resize event before the
// coordinator lays tables out again.
const DefaultDelay = 100 * time.Millisecond

// Debouncer runs a function once a burst of triggers has gone quiet for the
// configured delay. Each Trigger cancels the pending run and schedules a new
// one; only the trailing trigger of a burst fires.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	pending int
}

// NewDebouncer creates a debouncer. A non-positive delay selects DefaultDelay.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay}
}

// Delay returns the quiet period.
func (d *Debouncer) Delay() time.Duration { return d.delay }

// Trigger schedules fn after the delay, replacing any pending run. fn runs on
// its own goroutine and receives the number of triggers the run covers.
func (d *Debouncer) Trigger(fn func(coalesced int)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	d.pending++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// A timer that was already firing when Stop was called still runs.
		if gen != d.gen {
			d.mu.Unlock()
			return
		}
		n := d.pending
		d.pending = 0
		d.timer = nil
		d.mu.Unlock()
		fn(n)
	})
}

// Pending reports whether a run is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop cancels the pending run, if any.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	d.pending = 0
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
