package lang

import (
	"fmt"
	"log/slog"

	"github.com/ardnew/edl/log"
)

// Resolver is the static pre-pass over the AST that computes the canonical
// identity path of every node before evaluation begins. It produces no
// side effects other than populating the path table owned by the
// interpreter.
//
// A path concatenates one "<name><matcher-or-index>." segment per node on
// the walk from the statement root, and is the unique key identifying the
// run-time object a node evaluates to for the lifetime of one run.
type Resolver struct {
	paths  PathTable
	logger log.Logger
}

// PathTable maps AST nodes to their canonical identity paths.
type PathTable map[Expr]string

// NewResolver creates a Resolver recording paths into the given table,
// which is owned by the interpreter that will consume it.
func NewResolver(paths PathTable, logger log.Logger) *Resolver {
	return &Resolver{
		paths:  paths,
		logger: logger,
	}
}

// Resolve walks every statement once, recording the canonical path of each
// expression node. Each statement starts from a fresh, empty accumulator.
func (r *Resolver) Resolve(statements []Stmt) {
	r.logger.Debug("starting static analysis")

	for _, stmt := range statements {
		switch s := stmt.(type) {
		case *ExprStmt:
			r.resolve(s.Expr, "", 0)
		}
	}

	r.logger.Debug("static analysis complete",
		slog.Int("paths", len(r.paths)))
}

// resolve computes the path of expr given the accumulated path of
// everything to its left and the current nesting level, records it, and
// returns the accumulator for nodes to its right.
func (r *Resolver) resolve(expr Expr, path string, level int) string {
	switch e := expr.(type) {
	case *Element:
		// An element evaluated inside an assignment value (level > 0)
		// does not extend the path: it resolves to the accumulator as-is
		// and is invisible to the root registry. A resource declared in
		// that position cannot later be addressed as a root object.
		if level != 0 {
			r.record(e, path)

			return path
		}

		path += e.Name.Lexeme + matcherText(e.Matcher) + "."
		r.record(e, path)

		return path

	case *Get:
		path = r.resolve(e.Object, path, level)
		path += e.Field.Lexeme + indexText(e.Index) + "."
		r.record(e, path)

		return path

	case *Set:
		path = r.resolve(e.Object, path, level)
		path += e.Field.Lexeme + indexText(e.Index) + "."

		// The assignment value evaluates one nesting level deeper.
		r.resolve(e.Value, path, level+1)

		return path

	case *Literal:
		r.record(e, path)

		return path

	case *Date:
		return path

	default:
		return path
	}
}

func (r *Resolver) record(expr Expr, path string) {
	r.logger.Trace("resolved path",
		slog.String("path", path))

	r.paths[expr] = path
}

// matcherText normalizes a matcher literal to its path segment. A numeric
// matcher 1 and a string matcher "1" produce the same segment, and an
// absent matcher defaults to "0".
func matcherText(matcher Expr) string {
	lit, ok := matcher.(*Literal)
	if !ok {
		return "0"
	}

	return fmt.Sprintf("%v", lit.Value)
}

// indexText normalizes an index literal to its path segment, defaulting to
// "0" when absent.
func indexText(index Expr) string {
	lit, ok := index.(*Literal)
	if !ok {
		return "0"
	}

	return fmt.Sprintf("%v", lit.Value)
}
