package datamodel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/canopyhq/canopy/pkg/domain"
)

// Model manages the data tree for one surface and resolves path references.
//
// The tree is a nested map from path segment to scalar or sub-map, rooted at
// "/". Paths are "/"-delimited; empty segments are ignored, so "", "/" and
// "//a" normalize consistently.
type Model struct {
	data map[string]any
}

// New creates an empty model.
func New() *Model {
	return &Model{data: make(map[string]any)}
}

// FromTree creates a model view over an existing tree (no copy). The caller
// owns isolation; surfaces hand out deep copies via Surface.Clone.
func FromTree(tree map[string]any) *Model {
	if tree == nil {
		tree = make(map[string]any)
	}
	return &Model{data: tree}
}

// Tree returns the underlying tree.
func (m *Model) Tree() map[string]any {
	return m.data
}

// Update applies a dataModelUpdate payload. If path is empty or "/", the
// entire tree is replaced with the converted contents (keys absent from
// contents are lost). A non-root path replaces only the subtree at that
// path; siblings are untouched. The asymmetry is part of the protocol.
func (m *Model) Update(path string, contents []domain.DataModelEntry) {
	converted := contentsToTree(contents)

	if segments := splitPath(path); len(segments) == 0 {
		m.data = converted
	} else {
		m.setAtPath(segments, converted)
	}
}

// Get returns the value reached by walking the path segments, or def if any
// segment is missing or an intermediate node is not traversable.
func (m *Model) Get(path string, def any) any {
	current := any(m.data)
	for _, segment := range splitPath(path) {
		node, ok := current.(map[string]any)
		if !ok {
			return def
		}
		current, ok = node[segment]
		if !ok {
			return def
		}
	}
	return current
}

// Clear resets the tree to empty.
func (m *Model) Clear() {
	m.data = make(map[string]any)
}

// Resolve turns a bound value into its display string:
//
//   - bare string/number/boolean literals as-is (numbers in canonical
//     decimal, booleans lowercase)
//   - tagged literals ({"literalString"}, {"literalNumber"}, {"literalBoolean"})
//   - {"path": ...} references looked up in the tree; a missing or nil
//     target yields def, never the string "null"
//
// Anything else falls back to stringifying the raw value, or def when the
// raw value is empty or absent.
func (m *Model) Resolve(value domain.Value, def string) string {
	if value == nil {
		return def
	}

	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return formatNumber(v)
	case int:
		return strconv.Itoa(v)
	case map[string]any:
		if s, ok := v["literalString"]; ok {
			if str, ok := s.(string); ok {
				return str
			}
		}
		if n, ok := v["literalNumber"]; ok {
			if f, ok := toFloat(n); ok {
				return formatNumber(f)
			}
		}
		if b, ok := v["literalBoolean"]; ok {
			if bl, ok := b.(bool); ok {
				return strconv.FormatBool(bl)
			}
		}
		if p, ok := v["path"]; ok {
			if path, ok := p.(string); ok {
				if resolved := m.Get(path, nil); resolved != nil {
					return stringify(resolved)
				}
				return def
			}
		}
		if len(v) == 0 {
			return def
		}
	}

	if s := stringify(value); s != "" {
		return s
	}
	return def
}

// contentsToTree converts a wire contents list into a nested tree. Entries
// with an empty key, or with no value variant set, are dropped silently.
func contentsToTree(contents []domain.DataModelEntry) map[string]any {
	tree := make(map[string]any)
	for _, entry := range contents {
		if entry.Key == "" {
			continue
		}
		switch {
		case entry.ValueString != nil:
			tree[entry.Key] = *entry.ValueString
		case entry.ValueNumber != nil:
			tree[entry.Key] = *entry.ValueNumber
		case entry.ValueBoolean != nil:
			tree[entry.Key] = *entry.ValueBoolean
		case entry.ValueMap != nil:
			tree[entry.Key] = contentsToTree(entry.ValueMap)
		}
	}
	return tree
}

// setAtPath writes value at the given segments, creating intermediate maps.
// An intermediate scalar that would be traversed further is overwritten
// with a fresh map, keeping the tree valid.
func (m *Model) setAtPath(segments []string, value any) {
	current := m.data
	for _, segment := range segments[:len(segments)-1] {
		next, ok := current[segment].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[segment] = next
		}
		current = next
	}
	current[segments[len(segments)-1]] = value
}

func splitPath(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return formatNumber(t)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
