package observe

import (
	"sync"

	"github.com/svgkit/inline/dom"
)

// Immediate is an Observer that reports every target as fully visible
// the moment it is registered. It drives eager, whole-document
// inlining where no layout information exists.
type Immediate struct{}

// Observe reports ratio 1 synchronously and registers nothing.
func (Immediate) Observe(t Target, fn func(ratio float64)) (stop func()) {
	fn(1)
	return func() {}
}

// Viewport is a geometric Observer. Embedders that know element layout
// give it a visible rectangle; every call to Update (for example on
// scroll) recomputes each registered target's visible fraction and
// reports it.
type Viewport struct {
	mu      sync.Mutex
	rect    dom.Rect
	nextID  int
	targets map[int]*registration
}

type registration struct {
	target Target
	fn     func(ratio float64)
}

// NewViewport creates a viewport covering rect.
func NewViewport(rect dom.Rect) *Viewport {
	return &Viewport{rect: rect, targets: make(map[int]*registration)}
}

// Observe registers a target. The target's current visibility is
// reported on the next Update, not at registration time.
func (v *Viewport) Observe(t Target, fn func(ratio float64)) (stop func()) {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.targets[id] = &registration{target: t, fn: fn}
	v.mu.Unlock()

	return func() {
		v.mu.Lock()
		delete(v.targets, id)
		v.mu.Unlock()
	}
}

// Update recomputes and reports visibility for all registered targets
// against the current viewport rectangle.
func (v *Viewport) Update() {
	v.mu.Lock()
	regs := make([]*registration, 0, len(v.targets))
	for _, r := range v.targets {
		regs = append(regs, r)
	}
	rect := v.rect
	v.mu.Unlock()

	// Callbacks run outside the lock: a triggered watcher will call
	// back into stop().
	for _, r := range regs {
		r.fn(ratio(rect, r.target.Bounds()))
	}
}

// Scroll moves the viewport by (dx, dy) and reports the new
// visibility of every registered target.
func (v *Viewport) Scroll(dx, dy float64) {
	v.mu.Lock()
	v.rect.X += dx
	v.rect.Y += dy
	v.mu.Unlock()
	v.Update()
}

// SetRect replaces the viewport rectangle (for example on resize) and
// reports the new visibility of every registered target.
func (v *Viewport) SetRect(rect dom.Rect) {
	v.mu.Lock()
	v.rect = rect
	v.mu.Unlock()
	v.Update()
}

// ratio returns the fraction of bounds visible inside viewport.
func ratio(viewport, bounds dom.Rect) float64 {
	area := bounds.Area()
	if area == 0 {
		return 0
	}
	return viewport.Intersect(bounds).Area() / area
}
