package dom

import "golang.org/x/net/html"

// Rect is an axis-aligned rectangle in document coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Area returns the rectangle's area. Degenerate rectangles have area 0.
func (r Rect) Area() float64 {
	if r.W <= 0 || r.H <= 0 {
		return 0
	}
	return r.W * r.H
}

// Intersect returns the overlapping region of r and other. The result
// has zero area when the rectangles do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x1 := max(r.X, other.X)
	y1 := max(r.Y, other.Y)
	x2 := min(r.X+r.W, other.X+other.W)
	y2 := min(r.Y+r.H, other.Y+other.H)
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// Element is the capability set a placeholder must provide: dataset
// style attributes, CSS classes, rendered geometry, and attachment to
// a parent it can be swapped out of.
type Element interface {
	// Attr returns the named attribute value and whether it is present.
	Attr(name string) (string, bool)

	// SetAttr sets the named attribute, replacing any existing value.
	SetAttr(name, value string)

	// RemoveAttr deletes the named attribute. Missing attributes are
	// a no-op.
	RemoveAttr(name string)

	// AddClass adds a CSS class to the element's class list.
	AddClass(name string)

	// RemoveClass removes a CSS class from the element's class list.
	RemoveClass(name string)

	// Bounds reports the element's rendered rectangle. Implementations
	// without layout information may derive it from width/height
	// attributes; a zero rectangle means the size is unknown.
	Bounds() Rect

	// Detached reports whether the element has no parent node.
	Detached() bool

	// Replace swaps the element for n at the same sibling position.
	// It reports false, without mutating anything, when the element is
	// detached.
	Replace(n *html.Node) bool
}
