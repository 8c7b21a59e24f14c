package schema

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/edl/log"
)

// Kind names for scalar fields. Any other field type must name a
// declared type in the same schema.
const (
	KindString  = "string"
	KindCode    = "code"
	KindBoolean = "boolean"
	KindInteger = "integer"
	KindDecimal = "decimal"
	KindDate    = "date"
)

var scalarKinds = []string{
	KindString,
	KindCode,
	KindBoolean,
	KindInteger,
	KindDecimal,
	KindDate,
}

// Schema is the document shape of a schema file.
type Schema struct {
	Types []*Type `yaml:"types"`
}

// Type declares one instantiable element type. Root types are eligible
// for the output bundle when declared at the top level of a statement.
type Type struct {
	Name   string   `yaml:"name"`
	Root   bool     `yaml:"root"`
	Fields []*Field `yaml:"fields"`
}

// Field declares one field of a type. Type is either a scalar kind or
// the name of another declared type; Enum restricts a scalar field to a
// fixed value set.
type Field struct {
	Name     string   `yaml:"name"`
	Type     string   `yaml:"type"`
	Repeated bool     `yaml:"repeated"`
	Enum     []string `yaml:"enum"`
}

// Scalar reports whether the field holds scalar values rather than
// nested elements.
func (f *Field) Scalar() bool {
	return slices.Contains(scalarKinds, f.Type)
}

// Field returns the named field declaration, or nil.
func (t *Type) Field(name string) *Field {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}

	return nil
}

// Registry holds the validated type declarations of one schema and
// resolves type names during interpretation. A Registry is immutable
// after construction and safe for concurrent use.
type Registry struct {
	types  map[string]*Type
	names  []string
	logger log.Logger
}

// Option configures a [Registry].
type Option func(*Registry)

// WithLogger sets the structured logger used by the registry and the
// providers created from it.
func WithLogger(logger log.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// Load reads and parses a schema file.
func Load(path string, opts ...Option) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}

	return Parse(data, opts...)
}

// Parse builds a [Registry] from YAML schema text, validating that type
// names are unique, field types resolve, and enums appear only on
// scalar fields.
func Parse(data []byte, opts ...Option) (*Registry, error) {
	var doc Schema

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	r := &Registry{
		types: make(map[string]*Type, len(doc.Types)),
	}

	for _, opt := range opts {
		opt(r)
	}

	for _, t := range doc.Types {
		if t.Name == "" {
			return nil, fmt.Errorf("schema declares a type without a name")
		}

		if _, ok := r.types[t.Name]; ok {
			return nil, fmt.Errorf("duplicate type '%s'", t.Name)
		}

		r.types[t.Name] = t
		r.names = append(r.names, t.Name)
	}

	slices.Sort(r.names)

	for _, t := range doc.Types {
		for _, f := range t.Fields {
			if err := r.validateField(t, f); err != nil {
				return nil, err
			}
		}
	}

	r.logger.Debug("schema loaded",
		slog.Int("types", len(r.names)))

	return r, nil
}

func (r *Registry) validateField(t *Type, f *Field) error {
	if f.Name == "" {
		return fmt.Errorf("type '%s' declares a field without a name", t.Name)
	}

	if f.Scalar() {
		if len(f.Enum) > 0 && f.Type != KindString && f.Type != KindCode {
			return fmt.Errorf(
				"field '%s.%s' declares an enum on a non-text kind '%s'",
				t.Name, f.Name, f.Type)
		}

		return nil
	}

	if len(f.Enum) > 0 {
		return fmt.Errorf(
			"field '%s.%s' declares an enum on a complex type '%s'",
			t.Name, f.Name, f.Type)
	}

	if _, ok := r.types[f.Type]; !ok {
		return fmt.Errorf(
			"field '%s.%s' references undeclared type '%s'",
			t.Name, f.Name, f.Type)
	}

	return nil
}

// Type returns the named type declaration.
func (r *Registry) Type(name string) (*Type, bool) {
	t, ok := r.types[name]

	return t, ok
}

// Names returns all declared type names in sorted order.
func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}
