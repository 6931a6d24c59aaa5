// Package resource shapes domain models into JSON-ready maps according to the
// requested field selection and relation depth.
package resource

import "worklog/internal/query"

// Model is implemented by every entity the API serializes.
type Model interface {
	// Attributes returns the serializable attributes keyed by field name.
	Attributes() map[string]any
	// Related returns relations that have been loaded, keyed by relation name.
	Related() map[string]Model
}

// Shape serializes m. The root resource is level 1; relations are embedded
// while the next level does not exceed depth. Field selection applies to the
// root only, embedded relations are rendered in full. id is always kept.
func Shape(m Model, fields query.Fields, depth int) map[string]any {
	return shape(m, fields, 1, depth)
}

// ShapeAll serializes a list with Shape.
func ShapeAll[T Model](items []T, fields query.Fields, depth int) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		out = append(out, Shape(it, fields, depth))
	}
	return out
}

func shape(m Model, fields query.Fields, level, depth int) map[string]any {
	attrs := m.Attributes()
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		if k == "id" || fields.Includes(k) {
			out[k] = v
		}
	}
	if level >= depth {
		return out
	}
	for name, rel := range m.Related() {
		if rel == nil {
			continue
		}
		out[name] = shape(rel, query.Fields{All: true}, level+1, depth)
	}
	return out
}
