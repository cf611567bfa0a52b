// Package dom models the small slice of document-object-model
// capability the inliner needs: reading and writing attributes and
// classes on a placeholder, knowing its rendered bounds, and swapping
// it for another node while preserving sibling position.
//
// The concrete implementation is backed by goquery selections over
// golang.org/x/net/html trees, but the Element interface is
// deliberately narrow so tests and embedders can supply lightweight
// fakes instead of a full parsed document.
package dom
