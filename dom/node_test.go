package dom

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func parseDoc(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

func TestNodeElementAttributes(t *testing.T) {
	doc := parseDoc(t, `<body><img id="a" data-src="/icon.svg" width="64"></body>`)
	el := FromSelection(doc.Find("#a"))
	require.NotNil(t, el)

	t.Run("read", func(t *testing.T) {
		src, ok := el.Attr("data-src")
		assert.True(t, ok)
		assert.Equal(t, "/icon.svg", src)

		_, ok = el.Attr("missing")
		assert.False(t, ok)
	})

	t.Run("write and remove", func(t *testing.T) {
		el.SetAttr("data-x", "1")
		v, ok := el.Attr("data-x")
		assert.True(t, ok)
		assert.Equal(t, "1", v)

		el.RemoveAttr("data-x")
		_, ok = el.Attr("data-x")
		assert.False(t, ok)

		// Removing a missing attribute is a no-op.
		el.RemoveAttr("data-x")
	})

	t.Run("classes", func(t *testing.T) {
		el.AddClass("loading")
		assert.True(t, el.HasClass("loading"))
		el.RemoveClass("loading")
		assert.False(t, el.HasClass("loading"))
	})
}

func TestNodeElementBounds(t *testing.T) {
	t.Run("from attributes", func(t *testing.T) {
		doc := parseDoc(t, `<body><img id="a" width="64" height="32"></body>`)
		el := FromSelection(doc.Find("#a"))
		assert.Equal(t, Rect{W: 64, H: 32}, el.Bounds())
	})

	t.Run("px suffix", func(t *testing.T) {
		doc := parseDoc(t, `<body><img id="a" width="24px" height="24px"></body>`)
		el := FromSelection(doc.Find("#a"))
		assert.Equal(t, Rect{W: 24, H: 24}, el.Bounds())
	})

	t.Run("explicit geometry wins", func(t *testing.T) {
		doc := parseDoc(t, `<body><img id="a" width="64"></body>`)
		el := FromSelection(doc.Find("#a"))
		el.SetBounds(Rect{X: 10, Y: 20, W: 100, H: 50})
		assert.Equal(t, Rect{X: 10, Y: 20, W: 100, H: 50}, el.Bounds())
	})

	t.Run("unknown size", func(t *testing.T) {
		doc := parseDoc(t, `<body><img id="a"></body>`)
		el := FromSelection(doc.Find("#a"))
		assert.Zero(t, el.Bounds().Area())
	})
}

func TestNodeElementReplace(t *testing.T) {
	svg := &html.Node{Type: html.ElementNode, Data: "svg"}

	t.Run("keeps sibling position", func(t *testing.T) {
		doc := parseDoc(t, `<body><span>before</span><img id="a"><span>after</span></body>`)
		el := FromSelection(doc.Find("#a"))

		assert.True(t, el.Replace(svg))

		out, err := doc.Find("body").Html()
		require.NoError(t, err)
		assert.Equal(t, `<span>before</span><svg></svg><span>after</span>`, out)
		assert.Equal(t, 0, doc.Find("#a").Length())
	})

	t.Run("detached element is untouched", func(t *testing.T) {
		doc := parseDoc(t, `<body><img id="a"></body>`)
		el := FromSelection(doc.Find("#a"))
		doc.Find("#a").Remove()

		assert.True(t, el.Detached())
		assert.False(t, el.Replace(svg))
	})

	t.Run("nil replacement", func(t *testing.T) {
		doc := parseDoc(t, `<body><img id="a"></body>`)
		el := FromSelection(doc.Find("#a"))
		assert.False(t, el.Replace(nil))
	})
}

func TestFromNode(t *testing.T) {
	n := &html.Node{Type: html.ElementNode, DataAtom: atom.Img, Data: "img"}
	el := FromNode(n)
	require.NotNil(t, el)
	el.SetAttr("data-src", "/x.svg")
	v, _ := el.Attr("data-src")
	assert.Equal(t, "/x.svg", v)
	assert.True(t, el.Detached())
}

func TestRectIntersect(t *testing.T) {
	vp := Rect{X: 0, Y: 0, W: 100, H: 100}

	t.Run("partial overlap", func(t *testing.T) {
		got := vp.Intersect(Rect{X: 50, Y: 50, W: 100, H: 100})
		assert.Equal(t, Rect{X: 50, Y: 50, W: 50, H: 50}, got)
	})

	t.Run("disjoint", func(t *testing.T) {
		got := vp.Intersect(Rect{X: 200, Y: 0, W: 10, H: 10})
		assert.Zero(t, got.Area())
	})

	t.Run("contained", func(t *testing.T) {
		inner := Rect{X: 10, Y: 10, W: 20, H: 20}
		assert.Equal(t, inner, vp.Intersect(inner))
	})
}
