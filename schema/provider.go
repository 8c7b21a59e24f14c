package schema

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/edl/lang"
	"github.com/ardnew/edl/log"
)

const indexOutOfOrderError = "index out of order " +
	"(must start at '0' and must not skip positions)."

// Provider binds the language runtime to a [Registry]: it instantiates
// elements by declared type name and dispatches field access by the
// declared field shape. It implements [lang.Provider] and is safe for
// concurrent use because all mutable state lives on the elements it
// creates.
type Provider struct {
	reg    *Registry
	logger log.Logger
}

// NewProvider creates a Provider over the given registry.
func NewProvider(reg *Registry) *Provider {
	return &Provider{
		reg:    reg,
		logger: reg.logger,
	}
}

// Instantiate creates a fresh element of the named type.
func (p *Provider) Instantiate(typeName string) (any, error) {
	def, ok := p.reg.Type(typeName)
	if !ok {
		return nil, fmt.Errorf("unknown element type '%s'.%s",
			typeName, suggest(typeName, p.reg.Names()))
	}

	p.logger.Trace("instantiating element",
		slog.String("type", typeName))

	return newElement(def), nil
}

// Addressable reports whether object is a schema element.
func (p *Provider) Addressable(object any) bool {
	_, ok := object.(*Element)

	return ok
}

// Emittable reports whether object is an instance of a root type.
func (p *Provider) Emittable(object any) bool {
	e, ok := object.(*Element)

	return ok && e.def.Root
}

// ReadField returns the value of the named field at index. Complex
// fields instantiate their nested element on first access; repeated
// fields enforce the sequential-index rule.
func (p *Provider) ReadField(object any, field string, index int) (any, error) {
	e := object.(*Element)

	f := e.def.Field(field)
	if f == nil {
		return nil, p.unknownField(e.def, field)
	}

	switch {
	case f.Scalar() && f.Repeated:
		list := e.lists[field]
		if index >= len(list) {
			return nil, errors.New(indexOutOfOrderError)
		}

		return list[index], nil

	case f.Scalar():
		v, ok := e.scalars[field]
		if !ok {
			return nil, fmt.Errorf("field '%s' of '%s' has no value.",
				field, e.def.Name)
		}

		return v, nil

	case f.Repeated:
		list := e.repeats[field]

		switch {
		case index < len(list):
			return list[index], nil

		case index == len(list):
			def, _ := p.reg.Type(f.Type)
			child := newElement(def)
			e.repeats[field] = append(list, child)

			return child, nil

		default:
			return nil, errors.New(indexOutOfOrderError)
		}

	default:
		if index != 0 {
			return nil, fmt.Errorf("field '%s' of '%s' is not repeated.",
				field, e.def.Name)
		}

		if child, ok := e.children[field]; ok {
			return child, nil
		}

		def, _ := p.reg.Type(f.Type)
		child := newElement(def)
		e.children[field] = child

		return child, nil
	}
}

// AssignPrimitiveListEntry appends value to a repeated scalar field.
func (p *Provider) AssignPrimitiveListEntry(object any, field string, value any) (any, error) {
	e := object.(*Element)

	f := e.def.Field(field)
	if f == nil {
		return nil, p.unknownField(e.def, field)
	}

	if !f.Scalar() || !f.Repeated || len(f.Enum) > 0 {
		return nil, lang.ErrNotApplicable
	}

	v, err := coerceScalar(f, value)
	if err != nil {
		return nil, err
	}

	e.lists[field] = append(e.lists[field], v)

	return object, nil
}

// AssignEnumeratedValue matches value against the field's enumerated
// value set, case-insensitively, and stores the canonical spelling.
func (p *Provider) AssignEnumeratedValue(object any, field string, value any) (any, error) {
	e := object.(*Element)

	f := e.def.Field(field)
	if f == nil {
		return nil, p.unknownField(e.def, field)
	}

	if len(f.Enum) == 0 {
		return nil, lang.ErrNotApplicable
	}

	text, ok := value.(string)
	if !ok {
		return nil, lang.ErrNotApplicable
	}

	for _, allowed := range f.Enum {
		if strings.EqualFold(text, allowed) {
			if f.Repeated {
				e.lists[field] = append(e.lists[field], allowed)
			} else {
				e.scalars[field] = allowed
			}

			return object, nil
		}
	}

	return nil, fmt.Errorf("'%s' is not a valid value for '%s'.%s",
		text, field, suggest(text, f.Enum))
}

// AssignIndexedCollection replaces or appends value in a repeated field
// at index, enforcing the sequential-index rule.
func (p *Provider) AssignIndexedCollection(object any, field string, index int, value any) (any, error) {
	e := object.(*Element)

	f := e.def.Field(field)
	if f == nil {
		return nil, p.unknownField(e.def, field)
	}

	if !f.Repeated {
		return nil, lang.ErrNotApplicable
	}

	if f.Scalar() {
		v, err := coerceScalar(f, value)
		if err != nil {
			return nil, err
		}

		list := e.lists[field]

		switch {
		case index < len(list):
			list[index] = v

		case index == len(list):
			list = append(list, v)

		default:
			return nil, errors.New(indexOutOfOrderError)
		}

		e.lists[field] = list

		return object, nil
	}

	child, ok := value.(*Element)
	if !ok || child.def.Name != f.Type {
		return nil, fmt.Errorf(
			"value does not match field '%s' of type '%s'.", field, f.Type)
	}

	list := e.repeats[field]

	switch {
	case index < len(list):
		list[index] = child

	case index == len(list):
		list = append(list, child)

	default:
		return nil, errors.New(indexOutOfOrderError)
	}

	e.repeats[field] = list

	return object, nil
}

// AssignDate interprets value as a date and assigns it to a date field.
func (p *Provider) AssignDate(object any, field string, value any) (any, error) {
	e := object.(*Element)

	f := e.def.Field(field)
	if f == nil {
		return nil, p.unknownField(e.def, field)
	}

	if f.Type != KindDate || f.Repeated {
		return nil, lang.ErrNotApplicable
	}

	date, ok := value.(time.Time)
	if !ok {
		text, isText := value.(string)
		if !isText {
			return nil, lang.ErrNotApplicable
		}

		parsed, err := lang.ParseDate(text, "")
		if err != nil {
			return nil, err
		}

		date = parsed
	}

	e.scalars[field] = date

	return object, nil
}

// AssignDirect assigns value by the field's declared shape: nested
// elements to complex fields, strings and booleans to their scalar
// kinds. Integer, decimal, and date kinds are left to their dedicated
// strategies.
func (p *Provider) AssignDirect(object any, field string, value any) (any, error) {
	e := object.(*Element)

	f := e.def.Field(field)
	if f == nil {
		return nil, p.unknownField(e.def, field)
	}

	if f.Repeated || len(f.Enum) > 0 {
		return nil, lang.ErrNotApplicable
	}

	if !f.Scalar() {
		child, ok := value.(*Element)
		if !ok {
			return nil, lang.ErrNotApplicable
		}

		if child.def.Name != f.Type {
			return nil, fmt.Errorf(
				"value does not match field '%s' of type '%s'.",
				field, f.Type)
		}

		e.children[field] = child

		return object, nil
	}

	switch f.Type {
	case KindString, KindCode:
		if text, ok := value.(string); ok {
			e.scalars[field] = text

			return object, nil
		}

	case KindBoolean:
		switch v := value.(type) {
		case bool:
			e.scalars[field] = v

			return object, nil

		case string:
			parsed, err := lang.ParseBool(v)
			if err != nil {
				return nil, err
			}

			e.scalars[field] = parsed

			return object, nil
		}
	}

	return nil, lang.ErrNotApplicable
}

// AssignInteger assigns an integer value to an integer field.
func (p *Provider) AssignInteger(object any, field string, value int) (any, error) {
	e := object.(*Element)

	f := e.def.Field(field)
	if f == nil {
		return nil, p.unknownField(e.def, field)
	}

	if f.Type != KindInteger || f.Repeated {
		return nil, lang.ErrNotApplicable
	}

	e.scalars[field] = value

	return object, nil
}

// AssignDecimal assigns a decimal value to a decimal field.
func (p *Provider) AssignDecimal(object any, field string, value float64) (any, error) {
	e := object.(*Element)

	f := e.def.Field(field)
	if f == nil {
		return nil, p.unknownField(e.def, field)
	}

	if f.Type != KindDecimal || f.Repeated {
		return nil, lang.ErrNotApplicable
	}

	e.scalars[field] = value

	return object, nil
}

func (p *Provider) unknownField(t *Type, field string) error {
	names := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		names[i] = f.Name
	}

	return fmt.Errorf("unknown field '%s' on type '%s'.%s",
		field, t.Name, suggest(field, names))
}

// coerceScalar converts value to the field's scalar kind. Raw strings
// are parsed; typed values must already match.
func coerceScalar(f *Field, value any) (any, error) {
	switch f.Type {
	case KindString, KindCode:
		if s, ok := value.(string); ok {
			return s, nil
		}

	case KindBoolean:
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			return lang.ParseBool(v)
		}

	case KindInteger:
		switch v := value.(type) {
		case int:
			return v, nil
		case string:
			n, err := lang.ParseInteger(v)
			if err != nil {
				return nil, fmt.Errorf(
					"impossible to interpret '%s' as 'integer' value.", v)
			}

			return n, nil
		}

	case KindDecimal:
		switch v := value.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		case string:
			d, err := lang.ParseDecimal(v)
			if err != nil {
				return nil, fmt.Errorf(
					"impossible to interpret '%s' as 'decimal' value.", v)
			}

			return d, nil
		}

	case KindDate:
		switch v := value.(type) {
		case time.Time:
			return v, nil
		case string:
			return lang.ParseDate(v, "")
		}
	}

	return nil, fmt.Errorf("impossible to interpret value as '%s'.", f.Type)
}

// suggest renders a "did you mean" hint from the closest fuzzy match,
// or nothing when no candidate resembles the input.
func suggest(input string, candidates []string) string {
	matches := fuzzy.Find(input, candidates)
	if len(matches) == 0 {
		return ""
	}

	return fmt.Sprintf(" did you mean '%s'?", matches[0].Str)
}

