package sanitize

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoRoot is returned when the fetched markup contains no element
// node to inline.
var ErrNoRoot = errors.New("no root element in markup")

// Attr is a name/value attribute pair.
type Attr struct {
	Name  string
	Value string
}

// Rules configures one inlining pass.
type Rules struct {
	// RemoveAttrs lists attribute names stripped from the root.
	RemoveAttrs []string

	// AddAttrs lists attributes set on the root after removal.
	AddAttrs []Attr

	// RemoveScripts deletes script descendants and strips on*
	// event-handler attributes from the root.
	RemoveScripts bool

	// Strict widens on* stripping to every descendant element, not
	// just the root. Off by default: the historical behavior only
	// sanitized the root's own event attributes.
	Strict bool

	// Width and Height, when non-empty, are written onto the root as
	// the final step.
	Width  string
	Height string

	// Policy, when set, runs an allow-list pass over the raw markup
	// before parsing.
	Policy *bluemonday.Policy
}

// Inline parses markup, applies r, and returns the sanitized root
// element as a detached node.
func Inline(markup string, r Rules) (*html.Node, error) {
	if r.Policy != nil {
		markup = r.Policy.Sanitize(markup)
	}

	root, err := parseRoot(markup)
	if err != nil {
		return nil, err
	}

	removeAttributes(root, r.RemoveAttrs)
	if r.RemoveScripts {
		removeScripts(root)
		stripEventAttrs(root)
		if r.Strict {
			walkElements(root, stripEventAttrs)
		}
	}
	for _, a := range r.AddAttrs {
		setAttr(root, a.Name, a.Value)
	}
	if r.Width != "" {
		setAttr(root, "width", r.Width)
	}
	if r.Height != "" {
		setAttr(root, "height", r.Height)
	}
	return root, nil
}

// Render serializes a node back to markup.
func Render(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return buf.String(), nil
}

// parseRoot parses markup as a body fragment and detaches its first
// element node.
func parseRoot(markup string) (*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div"}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			if n.Parent != nil {
				n.Parent.RemoveChild(n)
			}
			return n, nil
		}
	}
	return nil, ErrNoRoot
}

// removeAttributes strips each named attribute from n. Missing names
// are no-ops.
func removeAttributes(n *html.Node, names []string) {
	if len(names) == 0 {
		return
	}
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		drop[strings.TrimSpace(name)] = true
	}
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if !drop[a.Key] {
			kept = append(kept, a)
		}
	}
	n.Attr = kept
}

// removeScripts deletes every script element under n.
func removeScripts(n *html.Node) {
	var scripts []*html.Node
	walkElements(n, func(c *html.Node) {
		if strings.EqualFold(c.Data, "script") {
			scripts = append(scripts, c)
		}
	})
	for _, s := range scripts {
		s.Parent.RemoveChild(s)
	}
}

// stripEventAttrs removes attributes whose name starts with "on",
// case-insensitively, from n.
func stripEventAttrs(n *html.Node) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		key := strings.ToLower(a.Key)
		if strings.HasPrefix(key, "on") {
			continue
		}
		kept = append(kept, a)
	}
	n.Attr = kept
}

// setAttr sets an attribute on n, replacing any existing value.
func setAttr(n *html.Node, name, value string) {
	for i, a := range n.Attr {
		if a.Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

// walkElements calls fn for every element node below n in document
// order.
func walkElements(n *html.Node, fn func(*html.Node)) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			fn(c)
		}
		walkElements(c, fn)
	}
}
