package dom

import (
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// NodeElement adapts a single node of a parsed HTML document to the
// Element interface using goquery for attribute and class surgery.
type NodeElement struct {
	sel    *goquery.Selection
	node   *html.Node
	bounds *Rect
}

// FromSelection wraps the first node of sel. It returns nil when the
// selection is empty.
func FromSelection(sel *goquery.Selection) *NodeElement {
	if sel == nil || sel.Length() == 0 {
		return nil
	}
	first := sel.First()
	return &NodeElement{sel: first, node: first.Nodes[0]}
}

// FromNode wraps a bare html node, typically one obtained outside a
// goquery document.
func FromNode(n *html.Node) *NodeElement {
	if n == nil {
		return nil
	}
	return FromSelection(goquery.NewDocumentFromNode(n).Selection)
}

// Node returns the underlying html node.
func (e *NodeElement) Node() *html.Node {
	return e.node
}

// SetBounds records explicit layout geometry for the element.
// Embedders that run layout call this; without it Bounds falls back
// to the width/height attributes.
func (e *NodeElement) SetBounds(r Rect) {
	e.bounds = &r
}

// Attr returns the named attribute value and whether it is present.
func (e *NodeElement) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

// SetAttr sets the named attribute on the element.
func (e *NodeElement) SetAttr(name, value string) {
	e.sel.SetAttr(name, value)
}

// RemoveAttr deletes the named attribute.
func (e *NodeElement) RemoveAttr(name string) {
	e.sel.RemoveAttr(name)
}

// AddClass adds a CSS class.
func (e *NodeElement) AddClass(name string) {
	e.sel.AddClass(name)
}

// RemoveClass removes a CSS class.
func (e *NodeElement) RemoveClass(name string) {
	e.sel.RemoveClass(name)
}

// HasClass reports whether the element carries the CSS class.
func (e *NodeElement) HasClass(name string) bool {
	return e.sel.HasClass(name)
}

// Bounds returns explicit geometry when set, otherwise a rectangle at
// the origin sized by the width/height attributes.
func (e *NodeElement) Bounds() Rect {
	if e.bounds != nil {
		return *e.bounds
	}
	var r Rect
	if w, ok := e.sel.Attr("width"); ok {
		r.W = parseDimension(w)
	}
	if h, ok := e.sel.Attr("height"); ok {
		r.H = parseDimension(h)
	}
	return r
}

// Detached reports whether the element has been removed from its tree.
func (e *NodeElement) Detached() bool {
	return e.node.Parent == nil
}

// Replace swaps the element for n in the document, keeping n at the
// element's previous sibling position. Detached elements are left
// untouched.
func (e *NodeElement) Replace(n *html.Node) bool {
	if e.Detached() || n == nil {
		return false
	}
	e.sel.ReplaceWithNodes(n)
	return true
}

func parseDimension(s string) float64 {
	// Strips a trailing "px"; other CSS units are not meaningful as
	// rendered pixels and parse to 0.
	if len(s) > 2 && s[len(s)-2:] == "px" {
		s = s[:len(s)-2]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
