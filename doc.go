/*
Package inline defers loading of SVG images until their placeholder
elements become visible, then replaces each placeholder with the
fetched, sanitized SVG markup as a first-class node of the document
tree.

# Pipeline

Each placeholder runs an independent pipeline: a visibility watcher
fires once when enough of the element enters the viewport, the SVG
source named by the element's data-src attribute is fetched, the
response is sanitized and transformed, and the placeholder is swapped
for the resulting SVG node at the same sibling position. Every
placeholder is processed at most once; failures are terminal for that
element and leave it in place with the loading class removed.

# Placeholder attributes

	data-src             SVG source URL (required)
	data-remove-attrs    comma-separated attribute names to strip
	data-add-attrs       "name: value" pairs to set on the SVG root
	data-set-size        copy the placeholder's width/height onto the SVG
	data-remove-scripts  delete script content and root on* handlers

# Usage

	doc, _ := goquery.NewDocumentFromReader(r)
	w := inline.NewAll(doc, "img[data-src$='.svg']", nil)
	w.Start()
	w.Wait()

With the default options every placeholder is treated as visible
immediately. Embedders that track layout pass an observe.Viewport and
feed it scroll updates instead.
*/
package inline
