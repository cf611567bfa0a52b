package sanitize

import (
	"regexp"
	"strings"
)

// addPairPattern matches one "name: value" pair: loose lexical tokens
// of word characters, digits, hyphens, and whitespace around a colon,
// with asterisks additionally allowed in the value.
var addPairPattern = regexp.MustCompile(`([\w\d\s-]+):([\w\d\s*-]+)`)

// ParseRemoveList parses a comma-separated list of attribute names,
// trimming whitespace around each. Empty input yields nil.
func ParseRemoveList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var names []string
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// ParseAddList parses a "name: value, name: value" attribute string.
// Malformed input that matches no pairs yields nil rather than an
// error; the pipeline treats it as a no-op.
func ParseAddList(s string) []Attr {
	matches := addPairPattern.FindAllStringSubmatch(s, -1)
	if matches == nil {
		return nil
	}
	var attrs []Attr
	for _, m := range matches {
		name := strings.TrimSpace(m[1])
		value := strings.TrimSpace(m[2])
		if name == "" {
			continue
		}
		attrs = append(attrs, Attr{Name: name, Value: value})
	}
	return attrs
}
