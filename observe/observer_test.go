package observe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/svgkit/inline/dom"
)

type fixedTarget struct {
	rect dom.Rect
}

func (f fixedTarget) Bounds() dom.Rect { return f.rect }

func TestImmediate(t *testing.T) {
	fired := 0
	w := Watch(Immediate{}, fixedTarget{dom.Rect{W: 10, H: 10}}, 0, func() { fired++ })
	assert.Equal(t, 1, fired)
	assert.True(t, w.Triggered())
}

func TestWatcherAtMostOnce(t *testing.T) {
	fired := 0
	w := &Watcher{threshold: DefaultThreshold, fn: func() { fired++ }}

	// Duplicate reports above the threshold must not retrigger.
	w.report(1)
	w.report(1)
	assert.Equal(t, 1, fired)
	assert.True(t, w.Triggered())
}

func TestWatcherThreshold(t *testing.T) {
	fired := 0
	w := &Watcher{threshold: DefaultThreshold, fn: func() { fired++ }}

	w.report(0)
	w.report(0.05)
	assert.Equal(t, 0, fired)
	assert.False(t, w.Triggered())

	w.report(0.1)
	assert.Equal(t, 1, fired)
}

func TestViewportVisibility(t *testing.T) {
	t.Run("never visible never fires", func(t *testing.T) {
		vp := NewViewport(dom.Rect{W: 100, H: 100})
		fired := 0
		Watch(vp, fixedTarget{dom.Rect{X: 0, Y: 500, W: 10, H: 10}}, 0, func() { fired++ })

		vp.Update()
		vp.Scroll(0, 50)
		assert.Equal(t, 0, fired)
	})

	t.Run("fires when scrolled into view", func(t *testing.T) {
		vp := NewViewport(dom.Rect{W: 100, H: 100})
		fired := 0
		Watch(vp, fixedTarget{dom.Rect{X: 0, Y: 150, W: 10, H: 10}}, 0, func() { fired++ })

		vp.Update()
		assert.Equal(t, 0, fired)

		vp.Scroll(0, 60)
		assert.Equal(t, 1, fired)

		// Further scrolling cannot retrigger: the watcher detached.
		vp.Scroll(0, -60)
		vp.Scroll(0, 60)
		assert.Equal(t, 1, fired)
	})

	t.Run("partial visibility honors threshold", func(t *testing.T) {
		vp := NewViewport(dom.Rect{W: 100, H: 100})
		fired := 0
		// 5% of the target inside the viewport: below the 10% default.
		Watch(vp, fixedTarget{dom.Rect{X: 0, Y: 95, W: 10, H: 100}}, 0, func() { fired++ })

		vp.Update()
		assert.Equal(t, 0, fired)

		// 20% visible.
		vp.Scroll(0, 15)
		assert.Equal(t, 1, fired)
	})

	t.Run("zero-area target reports not visible", func(t *testing.T) {
		vp := NewViewport(dom.Rect{W: 100, H: 100})
		fired := 0
		Watch(vp, fixedTarget{}, 0, func() { fired++ })
		vp.Update()
		assert.Equal(t, 0, fired)
	})
}

func TestWatcherStop(t *testing.T) {
	vp := NewViewport(dom.Rect{W: 100, H: 100})
	fired := 0
	w := Watch(vp, fixedTarget{dom.Rect{X: 10, Y: 10, W: 10, H: 10}}, 0, func() { fired++ })

	w.Stop()
	w.Stop() // idempotent

	vp.Update()
	assert.Equal(t, 0, fired)
	assert.False(t, w.Triggered())
}
