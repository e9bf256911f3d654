package wizard

import (
	"sync"
	"time"
)

// debouncer coalesces bursts of calls into one, firing the last function
// after a quiet period. Search-as-you-type inputs run through this so a
// keystroke burst costs one backend lookup.
type debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay}
}

func (d *debouncer) Do(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	if d.delay <= 0 {
		go fn()
		return
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
