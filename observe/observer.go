package observe

import (
	"sync"
	"sync/atomic"

	"github.com/svgkit/inline/dom"
)

// DefaultThreshold is the fraction of a target's area that must be
// visible before a watcher triggers.
const DefaultThreshold = 0.1

// Target is anything with rendered geometry.
type Target interface {
	Bounds() dom.Rect
}

// Observer reports visibility changes for registered targets. The
// callback receives the fraction of the target's area currently
// visible, in [0, 1]. The returned stop function unregisters the
// target; calling it more than once is safe.
type Observer interface {
	Observe(t Target, fn func(ratio float64)) (stop func())
}

// Watcher drives one target from Watching to Triggered. It fires its
// callback exactly once, on the first visibility report at or above
// the threshold, and unregisters itself before invoking the callback
// so a duplicate report cannot retrigger it.
type Watcher struct {
	threshold float64
	fired     atomic.Bool

	mu   sync.Mutex
	stop func()
	fn   func()
}

// Watch registers el with obs and returns the running watcher. A
// threshold of 0 means DefaultThreshold. There is no timeout: a target
// that never becomes visible never fires.
func Watch(obs Observer, el Target, threshold float64, fn func()) *Watcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	w := &Watcher{threshold: threshold, fn: fn}
	stop := obs.Observe(el, w.report)

	// Observers may report synchronously during Observe, before the
	// stop function is known; unregister here in that case.
	w.mu.Lock()
	if w.fired.Load() {
		w.mu.Unlock()
		stop()
		return w
	}
	w.stop = stop
	w.mu.Unlock()
	return w
}

// report is the observer callback.
func (w *Watcher) report(ratio float64) {
	if ratio < w.threshold {
		return
	}
	if !w.fired.CompareAndSwap(false, true) {
		return
	}
	w.Stop()
	w.fn()
}

// Triggered reports whether the watcher has fired.
func (w *Watcher) Triggered() bool {
	return w.fired.Load()
}

// Stop unregisters the watcher without firing it. Safe to call
// repeatedly and after the watcher has triggered.
func (w *Watcher) Stop() {
	w.mu.Lock()
	stop := w.stop
	w.stop = nil
	w.mu.Unlock()
	if stop != nil {
		stop()
	}
}
