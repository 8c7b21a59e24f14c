package lang

// Expr is the closed set of expression nodes produced by the parser.
// The only implementations are [*Element], [*Get], [*Set], [*Literal], and
// [*Date]; consumers switch exhaustively over them.
type Expr interface {
	expr()
}

// Element references a declarable element instance by type name, optionally
// disambiguated by a bracketed matcher literal: Patient["mother"].
type Element struct {
	Name    Token
	Matcher Expr // nil or *Literal; absent matcher defaults to "0"
}

// Get reads a field from the object an expression evaluates to, optionally
// at an index: Patient.name[0].
type Get struct {
	Object Expr
	Field  Token
	Index  Expr // nil or *Literal; absent index defaults to 0
}

// Set assigns a value to a field on the object an expression evaluates to,
// optionally at an index: Patient.name[0].family = "Doe".
type Set struct {
	Object Expr
	Field  Token
	Value  Expr
	Index  Expr // nil or *Literal; absent index defaults to 0
}

// Literal is a string or number literal. Type is non-zero only when the
// source carried an explicit annotation ("10" as integer); otherwise the
// value is a plain string whose interpretation is deferred to the
// enclosing assignment.
type Literal struct {
	Token Token // the value token, for diagnostics
	Value any   // string or int
	Type  Type
}

// Date is a date literal with an optional explicit layout:
// ("12-03-1998" as date => "02-01-2006").
type Date struct {
	Token  Token  // the value token, for diagnostics
	Value  string // raw date text
	Format string // explicit layout, empty to guess
}

func (*Element) expr() {}
func (*Get) expr()     {}
func (*Set) expr()     {}
func (*Literal) expr() {}
func (*Date) expr()    {}

// Stmt is the closed set of statement nodes. The grammar currently has a
// single statement form wrapping one expression.
type Stmt interface {
	stmt()
}

// ExprStmt is an expression statement: expression ';'.
type ExprStmt struct {
	Expr Expr
}

func (*ExprStmt) stmt() {}

// Type tags a [Literal] with its explicitly annotated type.
type Type int

const (
	// TypeNone marks an unannotated literal deferred for guessing during
	// assignment.
	TypeNone Type = iota

	// TypeBoolean marks a literal annotated "as boolean".
	TypeBoolean

	// TypeInteger marks a literal annotated "as integer".
	TypeInteger

	// TypeDecimal marks a literal annotated "as decimal".
	TypeDecimal
)

// String returns a string representation of the annotated type.
func (t Type) String() string {
	switch t {
	case TypeNone:
		return "None"

	case TypeBoolean:
		return "Boolean"

	case TypeInteger:
		return "Integer"

	case TypeDecimal:
		return "Decimal"

	default:
		return "Unknown"
	}
}
