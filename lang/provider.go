package lang

import "errors"

// ErrNotApplicable is returned by a [Provider] assignment method to signal
// that its strategy does not apply to the given field, letting the
// interpreter try the next strategy in the cascade. Any other error is a
// hard failure of the strategy.
var ErrNotApplicable = errors.New("assignment strategy does not apply")

// Provider is the external capability that binds the language to a
// concrete object model. It instantiates domain objects by type name and
// reads or writes their fields: scalars, nested objects, and repeatable
// lists. The core is agnostic about how a provider dispatches; runtime
// introspection, generated bindings, or a schema registry all work.
//
// Indexed operations must enforce the sequential-index rule: access must
// start at 0 and each new index must be exactly the current entry count.
type Provider interface {
	// Instantiate creates a fresh object of the named type.
	Instantiate(typeName string) (any, error)

	// Addressable reports whether object supports field access.
	Addressable(object any) bool

	// Emittable reports whether object is a kind eligible for the output
	// bundle when produced at the top level of a statement.
	Emittable(object any) bool

	// ReadField returns the value of the named field at index,
	// instantiating nested objects on first access.
	ReadField(object any, field string, index int) (any, error)

	// AssignPrimitiveListEntry appends value to a repeatable scalar field
	// whose entries the object manages itself.
	AssignPrimitiveListEntry(object any, field string, value any) (any, error)

	// AssignEnumeratedValue matches value against the field's enumerated
	// ("required") value set.
	AssignEnumeratedValue(object any, field string, value any) (any, error)

	// AssignIndexedCollection replaces or appends value in a repeatable
	// field at index.
	AssignIndexedCollection(object any, field string, index int, value any) (any, error)

	// AssignDate interprets value as a date and assigns it. The value is
	// either an already-coerced [time.Time] or a raw string to coerce.
	AssignDate(object any, field string, value any) (any, error)

	// AssignDirect assigns value by the field's declared shape.
	AssignDirect(object any, field string, value any) (any, error)

	// AssignInteger assigns an integer value.
	AssignInteger(object any, field string, value int) (any, error)

	// AssignDecimal assigns a decimal value.
	AssignDecimal(object any, field string, value float64) (any, error)
}
