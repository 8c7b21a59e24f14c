package lang

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/ardnew/edl/log"
)

const (
	scopeResolutionError = "unexpected error in scope resolution; this should not happen."
	onlyElementsError    = "tried to access a field on an invalid element."
	fieldInvalidError    = "the field doesn't exist or the element type doesn't match."
)

// Bundle is the result of one interpretation run: the root objects
// materialized at the top level of statements, ordered by ascending
// canonical path.
type Bundle struct {
	Entries []BundleEntry
}

// BundleEntry is one root object together with the canonical path that
// identifies it.
type BundleEntry struct {
	Path   string
	Object any
}

// Len returns the number of entries in the bundle.
func (b *Bundle) Len() int {
	return len(b.Entries)
}

// Interpreter evaluates statements against a shared identity cache and
// root registry, consulting a [Provider] to create objects and access
// their fields. Runtime failures are caught per statement and recorded as
// diagnostics, after which evaluation continues with the next statement;
// any runtime diagnostic forces the final bundle empty.
//
// An Interpreter owns its caches and must not be shared across runs: each
// run gets a fresh instance.
type Interpreter struct {
	provider Provider
	errors   *Reporter
	logger   log.Logger

	paths PathTable
	cache map[string]any // identity cache: canonical path -> object
	roots map[string]any // root registry: level-0 emittable results
	level int
}

// NewInterpreter creates an Interpreter for one run. The returned
// interpreter owns the path table that a [Resolver] must populate before
// [Interpreter.Interpret] is called.
func NewInterpreter(provider Provider, errors *Reporter, logger log.Logger) *Interpreter {
	return &Interpreter{
		provider: provider,
		errors:   errors,
		logger:   logger,
		paths:    make(PathTable),
		cache:    make(map[string]any),
		roots:    make(map[string]any),
	}
}

// Paths returns the path table owned by this interpreter, for a
// [Resolver] to populate.
func (in *Interpreter) Paths() PathTable {
	return in.paths
}

// Interpret evaluates each statement in source order. Every statement is
// attempted regardless of earlier failures, so one run surfaces as many
// runtime errors as possible; but if any diagnostic was recorded the
// returned bundle is empty.
func (in *Interpreter) Interpret(statements []Stmt) *Bundle {
	in.logger.Debug("starting interpretation",
		slog.Int("statements", len(statements)))

	for _, stmt := range statements {
		if err := in.execute(stmt); err != nil {
			re := &runtimeError{}
			if errors.As(err, &re) {
				in.errors.RuntimeToken(re.token, re.message)

				continue
			}

			in.errors.Runtime(0, err.Error())
		}
	}

	bundle := &Bundle{}

	if in.errors.HasErrors() {
		in.logger.Debug("returning empty bundle due to errors")

		return bundle
	}

	for _, path := range slices.Sorted(maps.Keys(in.roots)) {
		bundle.Entries = append(bundle.Entries, BundleEntry{
			Path:   path,
			Object: in.roots[path],
		})
	}

	in.logger.Debug("interpretation complete",
		slog.Int("entries", len(bundle.Entries)))

	return bundle
}

func (in *Interpreter) execute(stmt Stmt) error {
	switch s := stmt.(type) {
	case *ExprStmt:
		_, err := in.evaluate(s.Expr)

		return err

	default:
		return fmt.Errorf("unknown statement type %T", stmt)
	}
}

func (in *Interpreter) evaluate(expr Expr) (any, error) {
	switch e := expr.(type) {
	case *Element:
		return in.evalElement(e)

	case *Get:
		return in.evalGet(e)

	case *Set:
		return in.evalSet(e)

	case *Literal:
		return in.evalLiteral(e)

	case *Date:
		return in.evalDate(e)

	default:
		return nil, fmt.Errorf("unknown expression type %T", expr)
	}
}

// evaluateDeeper evaluates an assignment value one nesting level below its
// enclosing Set.
func (in *Interpreter) evaluateDeeper(expr Expr) (any, error) {
	in.level++
	defer func() { in.level-- }()

	return in.evaluate(expr)
}

// evalElement returns the object an element expression denotes,
// instantiating and caching it on first use. The same canonical path
// always yields the same instance, across statements.
func (in *Interpreter) evalElement(expr *Element) (any, error) {
	path, ok := in.paths[expr]
	if !ok || path == "" {
		return nil, newRuntimeError(expr.Name, scopeResolutionError)
	}

	if result, ok := in.cache[path]; ok {
		in.logger.Trace("element already instantiated",
			slog.String("path", path))

		return result, nil
	}

	result, err := in.provider.Instantiate(expr.Name.Lexeme)
	if err != nil {
		return nil, newRuntimeError(expr.Name, err.Error())
	}

	in.logger.Trace("instantiated new element",
		slog.String("type", expr.Name.Lexeme),
		slog.String("path", path))

	in.cache[path] = result

	if in.level == 0 && in.provider.Emittable(result) {
		in.roots[path] = result
	}

	return result, nil
}

func (in *Interpreter) evalGet(expr *Get) (any, error) {
	object, err := in.evaluate(expr.Object)
	if err != nil {
		return nil, err
	}

	index, err := in.evalIndex(expr.Index)
	if err != nil {
		return nil, err
	}

	path, ok := in.paths[expr]
	if !ok {
		return nil, newRuntimeError(expr.Field, scopeResolutionError)
	}

	if result, ok := in.cache[path]; ok {
		in.logger.Trace("field is cached",
			slog.String("path", path))

		return result, nil
	}

	if !in.provider.Addressable(object) {
		return nil, newRuntimeError(expr.Field, onlyElementsError)
	}

	result, err := in.provider.ReadField(object, expr.Field.Lexeme, index)
	if err != nil {
		return nil, newRuntimeError(expr.Field, err.Error())
	}

	in.cache[path] = result

	return result, nil
}

func (in *Interpreter) evalSet(expr *Set) (any, error) {
	object, err := in.evaluate(expr.Object)
	if err != nil {
		return nil, err
	}

	value, err := in.evaluateDeeper(expr.Value)
	if err != nil {
		return nil, err
	}

	index, err := in.evalIndex(expr.Index)
	if err != nil {
		return nil, err
	}

	if !in.provider.Addressable(object) {
		return nil, newRuntimeError(expr.Field, onlyElementsError)
	}

	field := expr.Field.Lexeme

	// A value with a concrete coerced type gets one matching typed
	// assignment attempt; on failure it falls through to the generic
	// cascade with everything else.
	switch v := value.(type) {
	case time.Time:
		if result, err := in.provider.AssignDate(object, field, v); err == nil {
			return result, nil
		}

	case bool:
		if result, err := in.provider.AssignDirect(object, field, v); err == nil {
			return result, nil
		}

	case float64:
		if result, err := in.provider.AssignDecimal(object, field, v); err == nil {
			return result, nil
		}

	case int:
		if result, err := in.provider.AssignInteger(object, field, v); err == nil {
			return result, nil
		}
	}

	result, err := in.assignCascade(object, field, index, expr.Index != nil, value)
	if err != nil {
		re := &runtimeError{}
		if errors.As(err, &re) {
			return nil, err
		}

		return nil, newRuntimeError(expr.Field, err.Error())
	}

	return result, nil
}

// assignCascade tries the generic assignment strategies in fixed priority
// order; the first success wins. A strategy answering [ErrNotApplicable]
// passes to the next; any other provider failure is a hard runtime error.
//
// An assignment with an explicit index bypasses the appending list
// strategy: the statement named a position, so only the indexed
// collection strategy may honor it.
func (in *Interpreter) assignCascade(object any, field string, index int, indexed bool, value any) (any, error) {
	if !indexed {
		if result, err := in.provider.AssignPrimitiveListEntry(object, field, value); !errors.Is(err, ErrNotApplicable) {
			return result, err
		}
	}

	if result, err := in.provider.AssignEnumeratedValue(object, field, value); !errors.Is(err, ErrNotApplicable) {
		return result, err
	}

	if result, err := in.provider.AssignIndexedCollection(object, field, index, value); !errors.Is(err, ErrNotApplicable) {
		return result, err
	}

	if result, err := in.provider.AssignDate(object, field, value); !errors.Is(err, ErrNotApplicable) {
		return result, err
	}

	if result, err := in.provider.AssignDirect(object, field, value); !errors.Is(err, ErrNotApplicable) {
		return result, err
	}

	if text, ok := value.(string); ok {
		if n, err := ParseInteger(text); err == nil {
			if result, err := in.provider.AssignInteger(object, field, n); err == nil {
				return result, nil
			}
		}

		if f, err := ParseDecimal(text); err == nil {
			if result, err := in.provider.AssignDecimal(object, field, f); err == nil {
				return result, nil
			}
		}
	}

	return nil, errors.New(fieldInvalidError)
}

// evalLiteral coerces an explicitly annotated literal immediately; an
// unannotated literal stays a raw string for the enclosing assignment to
// interpret.
func (in *Interpreter) evalLiteral(expr *Literal) (any, error) {
	if expr.Type == TypeNone {
		return expr.Value, nil
	}

	text := fmt.Sprintf("%v", expr.Value)

	switch expr.Type {
	case TypeBoolean:
		value, err := ParseBool(text)
		if err != nil {
			return nil, newRuntimeError(expr.Token, err.Error())
		}

		return value, nil

	case TypeInteger:
		value, err := ParseInteger(text)
		if err != nil {
			return nil, newRuntimeError(expr.Token, fmt.Sprintf(
				"impossible to interpret '%s' as 'integer' value.", text))
		}

		return value, nil

	case TypeDecimal:
		value, err := ParseDecimal(text)
		if err != nil {
			return nil, newRuntimeError(expr.Token, fmt.Sprintf(
				"impossible to interpret '%s' as 'decimal' value.", text))
		}

		return value, nil

	default:
		return expr.Value, nil
	}
}

func (in *Interpreter) evalDate(expr *Date) (any, error) {
	date, err := ParseDate(expr.Value, expr.Format)
	if err != nil {
		return nil, newRuntimeError(expr.Token, err.Error())
	}

	return date, nil
}

// evalIndex evaluates an index expression, defaulting to 0 when absent.
func (in *Interpreter) evalIndex(index Expr) (int, error) {
	if index == nil {
		return 0, nil
	}

	value, err := in.evaluate(index)
	if err != nil {
		return 0, err
	}

	n, ok := value.(int)
	if !ok {
		return 0, fmt.Errorf("index must be an integer, got %T", value)
	}

	return n, nil
}
