// Package session parses the YAML session-metadata blob embedded in an
// .ibt file into a loose, schema-free tree.
//
// Session info varies across iRacing releases; a tagged-variant tree
// (map / list / scalar) keeps the decoder forward-compatible with
// fields this package has never seen. Callers needing a specific field
// perform their own lookup-and-cast against the returned Node.
package session

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrorPolicy controls how Parse behaves when the YAML blob fails to parse.
type ErrorPolicy int

const (
	// OnErrorFail returns the parse error (default).
	OnErrorFail ErrorPolicy = iota
	// OnErrorEmpty returns an empty Node instead of an error.
	OnErrorEmpty
)

// ErrMalformed is the sentinel Parse's error wraps on a YAML parse
// failure. Callers outside this package match against it with
// errors.Is; ibt re-wraps it as errs.ErrSessionInfoMalformed.
var ErrMalformed = errors.New("session info malformed")

// Node is a loose, string-keyed tree parsed from the session info YAML.
// It is one of: map[string]any, []any, string, float64, int, bool, or nil,
// mirroring gopkg.in/yaml.v3's default unmarshal-into-any shape.
type Node struct {
	value any
}

// Parse strips trailing NUL padding from raw, decodes it as UTF-8 YAML,
// and returns the parsed tree. On a malformed blob, policy determines
// whether Parse returns an error wrapping ErrMalformed or an empty Node.
func Parse(raw []byte, policy ErrorPolicy) (Node, error) {
	trimmed := bytes.TrimRight(raw, "\x00")

	var v any
	if err := yaml.Unmarshal(trimmed, &v); err != nil {
		if policy == OnErrorEmpty {
			return Node{}, nil
		}

		return Node{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return Node{value: v}, nil
}

// Map returns the node's value as a map[string]any, and false if the
// node is not a map.
func (n Node) Map() (map[string]any, bool) {
	m, ok := n.value.(map[string]any)
	return m, ok
}

// List returns the node's value as a []any, and false if the node is
// not a list.
func (n Node) List() ([]any, bool) {
	l, ok := n.value.([]any)
	return l, ok
}

// String returns the node's value stringified. Scalars are formatted
// with fmt.Sprint; maps and lists return "".
func (n Node) String() string {
	switch n.value.(type) {
	case map[string]any, []any, nil:
		return ""
	default:
		return fmt.Sprint(n.value)
	}
}

// Lookup walks a dotted path of map keys (e.g. "WeekendInfo.TrackName")
// and returns the resulting Node, or false if any segment is missing or
// not a map.
func (n Node) Lookup(path ...string) (Node, bool) {
	cur := n
	for _, key := range path {
		m, ok := cur.Map()
		if !ok {
			return Node{}, false
		}

		v, ok := m[key]
		if !ok {
			return Node{}, false
		}

		cur = Node{value: v}
	}

	return cur, true
}

// IsZero reports whether the node holds no parsed value.
func (n Node) IsZero() bool {
	return n.value == nil
}

// Raw returns the node's underlying value, for callers (e.g. a JSON
// encoder) that need the whole tree rather than a single lookup.
func (n Node) Raw() any {
	return n.value
}

// ID derives the stable session identifier "{SubSessionID}-{SessionID}"
// from the top-level WeekendInfo map. A missing side becomes an empty
// string; if both are missing the result is "-".
func (n Node) ID() string {
	sub, _ := n.Lookup("WeekendInfo", "SubSessionID")
	ses, _ := n.Lookup("WeekendInfo", "SessionID")

	return sub.String() + "-" + ses.String()
}
