package schema

import (
	"time"

	"github.com/goccy/go-yaml"
)

// dateLayout is the layout used to render date values in snapshots.
const dateLayout = "2006-01-02"

// Element is one materialized instance of a schema type. Its storage is
// partitioned by field shape: scalar values, repeated scalar lists,
// nested elements, and repeated nested elements.
//
// Elements are not safe for concurrent mutation; the interpreter drives
// each one from a single goroutine per run.
type Element struct {
	def *Type

	scalars  map[string]any
	lists    map[string][]any
	children map[string]*Element
	repeats  map[string][]*Element
}

func newElement(def *Type) *Element {
	return &Element{
		def:      def,
		scalars:  make(map[string]any),
		lists:    make(map[string][]any),
		children: make(map[string]*Element),
		repeats:  make(map[string][]*Element),
	}
}

// TypeName returns the declared name of the element's type.
func (e *Element) TypeName() string {
	return e.def.Name
}

// Scalar returns the value of a scalar field and whether it is set.
func (e *Element) Scalar(field string) (any, bool) {
	v, ok := e.scalars[field]

	return v, ok
}

// List returns the entries of a repeated scalar field.
func (e *Element) List(field string) []any {
	return e.lists[field]
}

// Child returns the nested element of a non-repeated complex field.
func (e *Element) Child(field string) (*Element, bool) {
	c, ok := e.children[field]

	return c, ok
}

// Children returns the nested elements of a repeated complex field.
func (e *Element) Children(field string) []*Element {
	return e.repeats[field]
}

// MarshalYAML renders the element as an ordered mapping: the type name
// first, then every populated field in declaration order.
func (e *Element) MarshalYAML() (any, error) {
	return e.Snapshot(), nil
}

// Snapshot converts the element and everything below it into plain YAML
// mapping values, preserving field declaration order and skipping unset
// fields.
func (e *Element) Snapshot() yaml.MapSlice {
	out := yaml.MapSlice{{Key: "type", Value: e.def.Name}}

	for _, f := range e.def.Fields {
		switch {
		case f.Scalar() && f.Repeated:
			if list, ok := e.lists[f.Name]; ok {
				values := make([]any, len(list))
				for i, v := range list {
					values[i] = renderScalar(v)
				}

				out = append(out, yaml.MapItem{Key: f.Name, Value: values})
			}

		case f.Scalar():
			if v, ok := e.scalars[f.Name]; ok {
				out = append(out, yaml.MapItem{
					Key:   f.Name,
					Value: renderScalar(v),
				})
			}

		case f.Repeated:
			if nested, ok := e.repeats[f.Name]; ok && len(nested) > 0 {
				values := make([]any, len(nested))
				for i, c := range nested {
					values[i] = c.Snapshot()
				}

				out = append(out, yaml.MapItem{Key: f.Name, Value: values})
			}

		default:
			if c, ok := e.children[f.Name]; ok {
				out = append(out, yaml.MapItem{
					Key:   f.Name,
					Value: c.Snapshot(),
				})
			}
		}
	}

	return out
}

func renderScalar(v any) any {
	if date, ok := v.(time.Time); ok {
		return date.Format(dateLayout)
	}

	return v
}
