// Package debounce coalesces rapid successive triggers into bounded evaluations.
package debounce

import (
	"sync"
	"time"
)

// Debouncer runs the most recent function once the trigger stream has been
// quiet for the configured interval. Earlier pending functions are dropped.
type Debouncer struct {
	interval time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a debouncer with the given quiet interval
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Trigger schedules fn to run after the quiet interval, replacing any
// previously scheduled function that has not fired yet
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, fn)
}

// Stop cancels any pending function
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Throttler runs at most one function per interval. The first trigger fires
// immediately; triggers arriving inside the interval replace a single trailing
// call that fires when the interval elapses.
type Throttler struct {
	interval time.Duration

	mu       sync.Mutex
	lastRun  time.Time
	trailing *time.Timer
}

// NewThrottler creates a throttler with the given minimum interval
func NewThrottler(interval time.Duration) *Throttler {
	return &Throttler{interval: interval}
}

// Trigger runs fn now if the interval has elapsed since the last run,
// otherwise schedules it as the trailing call
func (t *Throttler) Trigger(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(t.lastRun)
	if elapsed >= t.interval {
		t.lastRun = now
		go fn()
		return
	}

	if t.trailing != nil {
		t.trailing.Stop()
	}
	t.trailing = time.AfterFunc(t.interval-elapsed, func() {
		t.mu.Lock()
		t.lastRun = time.Now()
		t.trailing = nil
		t.mu.Unlock()
		fn()
	})
}

// Stop cancels any pending trailing call
func (t *Throttler) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.trailing != nil {
		t.trailing.Stop()
		t.trailing = nil
	}
}
