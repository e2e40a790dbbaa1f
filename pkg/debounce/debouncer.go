// Package debounce collapses a burst of search-text changes into a single
// dispatch carrying the latest text, once a quiet period has elapsed.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period used by search sessions.
const DefaultDelay = time.Second

// Option configures a Debouncer.
type Option func(*Debouncer)

// WithExecutor routes timer callbacks through exec, typically to run them on
// the caller's event loop instead of the timer goroutine. The pending check
// happens inside the routed callback, so a change processed by the loop
// before it still cancels the dispatch.
func WithExecutor(exec func(func())) Option {
	return func(d *Debouncer) { d.exec = exec }
}

// Debouncer is either idle or holds one pending dispatch. Each change
// bumps a generation counter; a timer only dispatches if its generation is
// still current when it fires.
type Debouncer struct {
	delay    time.Duration
	dispatch func(keyword string)
	clear    func()
	exec     func(func())

	mu      sync.Mutex
	gen     uint64
	timer   *time.Timer
	pending string
	armed   bool
}

// New returns an idle Debouncer. dispatch is called with the latest text
// after delay without changes; clear is called when the text becomes empty.
// Either callback may be nil.
func New(delay time.Duration, dispatch func(keyword string), clear func(), opts ...Option) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	d := &Debouncer{
		delay:    delay,
		dispatch: dispatch,
		clear:    clear,
		exec:     func(fn func()) { fn() },
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Changed records new search text. Non-empty text replaces any pending
// dispatch and restarts the quiet period. Empty text cancels the pending
// dispatch and calls clear before returning.
func (d *Debouncer) Changed(text string) {
	d.mu.Lock()
	d.resetLocked()
	if text == "" {
		d.mu.Unlock()
		if d.clear != nil {
			d.clear()
		}
		return
	}

	gen := d.gen
	d.pending = text
	d.armed = true
	d.timer = time.AfterFunc(d.delay, func() {
		d.exec(func() { d.fire(gen) })
	})
	d.mu.Unlock()
}

// Pending reports the text waiting to be dispatched, if any.
func (d *Debouncer) Pending() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending, d.armed
}

// Cancel drops the pending dispatch, if any, without calling clear.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	d.resetLocked()
	d.mu.Unlock()
}

func (d *Debouncer) resetLocked() {
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = ""
	d.armed = false
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || !d.armed {
		d.mu.Unlock()
		return
	}
	keyword := d.pending
	d.pending = ""
	d.armed = false
	d.timer = nil
	d.mu.Unlock()

	if d.dispatch != nil {
		d.dispatch(keyword)
	}
}
