// Package observe provides visibility detection for lazily loaded
// elements. An Observer reports how much of a target is visible; a
// Watcher turns those reports into a single trigger once the visible
// fraction reaches a threshold, then detaches.
//
// Viewport is the geometric observer for embedders that track layout
// and scrolling; Immediate treats every target as fully visible and is
// used for eager, whole-document inlining.
package observe
