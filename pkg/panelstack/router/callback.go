package router

import "go.uber.org/atomic"

// DismissCallback is a one-shot "on dismissed" hook registered through
// Store.Dismiss. It runs at most once. A callback that is overwritten by a
// later Dismiss, or dropped by DismissAll, is discarded and never runs.
type DismissCallback struct {
	fn   func()
	used atomic.Bool
}

func newDismissCallback(fn func()) *DismissCallback {
	if fn == nil {
		return nil
	}
	return &DismissCallback{fn: fn}
}

// fire runs the callback unless it already ran or was discarded.
func (c *DismissCallback) fire() bool {
	if c == nil || !c.used.CompareAndSwap(false, true) {
		return false
	}
	c.fn()
	return true
}

// discard prevents the callback from ever running.
func (c *DismissCallback) discard() {
	if c != nil {
		c.used.Store(true)
	}
}

// Consumed reports whether the callback ran or was discarded.
func (c *DismissCallback) Consumed() bool {
	return c == nil || c.used.Load()
}
