package preview

import (
	"sync"
	"time"
)

// DefaultDelay is how long input must stay unchanged before a preview
// request fires.
const DefaultDelay = 500 * time.Millisecond

// Debouncer runs a callback only after a quiet period: each Trigger cancels
// the previously scheduled callback, so at most one fires per settled pause.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a Debouncer; a non-positive delay falls back to
// DefaultDelay.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn after the delay, cancelling any not-yet-fired
// predecessor. fn runs on a timer goroutine.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Cancel stops any pending callback.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
