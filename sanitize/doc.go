// Package sanitize turns fetched SVG markup into a DOM-safe node.
//
// Inline is a pure boundary: text and rules in, a detached sanitized
// node or an error out. It never touches the live document, so the
// scheduling code around it stays unchanged if the sanitization
// strategy is swapped for a stricter one (Rules.Policy already allows
// an allow-list pass via bluemonday).
//
// Transformation steps run in a fixed order: parse, remove attributes,
// remove scripts, add attributes, set size. Removal precedes addition
// so an added attribute cannot be stripped by the same rule set, and
// sizing runs last so it cannot be clobbered by attribute surgery.
package sanitize
