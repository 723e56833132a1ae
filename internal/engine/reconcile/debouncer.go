package reconcile

import (
	"sync"
	"time"
)

// Debouncer runs a callback once after a quiet window. Each Trigger restarts
// the window; Cancel drops the pending run.
type Debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	gen      uint64
	window   time.Duration
	callback func()
}

// NewDebouncer creates a new debouncer with the given window and callback.
func NewDebouncer(window time.Duration, callback func()) *Debouncer {
	return &Debouncer{
		window:   window,
		callback: callback,
	}
}

// Trigger schedules the callback, replacing any pending run.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.window, func() { d.fire(gen) })
}

// Cancel drops the pending run. It reports whether one was pending.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer == nil {
		return false
	}
	d.timer.Stop()
	d.timer = nil
	d.gen++
	return true
}

// Pending reports whether a run is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// fire runs the callback unless the run was superseded or cancelled after
// the timer had already expired.
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	if d.callback != nil {
		d.callback()
	}
}

// Flush runs a pending callback immediately and synchronously. It reports
// whether a run was pending.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	if d.timer == nil {
		d.mu.Unlock()
		return false
	}
	if !d.timer.Stop() {
		// Timer already fired, let it complete rather than running twice.
		d.mu.Unlock()
		return false
	}
	d.timer = nil
	d.gen++
	d.mu.Unlock()

	if d.callback != nil {
		d.callback()
	}
	return true
}
