package lang

// Kind discriminates the token types produced by the [Lexer].
type Kind int

const (
	// Single-character tokens.
	KindDot Kind = iota
	KindSemicolon
	KindLeftParen
	KindRightParen
	KindLeftBracket
	KindRightBracket

	// One or two character tokens.
	KindEqual
	KindArrow

	// Literals.
	KindString
	KindNumber

	// Names. Elements begin uppercase, identifiers lowercase.
	KindElement
	KindIdentifier

	// Keywords.
	KindAs
	KindBoolean
	KindInteger
	KindDecimal
	KindDate

	KindEOF
)

// String returns the token kind name.
func (k Kind) String() string {
	switch k {
	case KindDot:
		return "Dot"
	case KindSemicolon:
		return "Semicolon"
	case KindLeftParen:
		return "LeftParen"
	case KindRightParen:
		return "RightParen"
	case KindLeftBracket:
		return "LeftBracket"
	case KindRightBracket:
		return "RightBracket"
	case KindEqual:
		return "Equal"
	case KindArrow:
		return "Arrow"
	case KindString:
		return "String"
	case KindNumber:
		return "Number"
	case KindElement:
		return "Element"
	case KindIdentifier:
		return "Identifier"
	case KindAs:
		return "As"
	case KindBoolean:
		return "Boolean"
	case KindInteger:
		return "Integer"
	case KindDecimal:
		return "Decimal"
	case KindDate:
		return "Date"
	case KindEOF:
		return "EOF"
	default:
		return "Unknown"
	}
}

// Token is one lexeme with its literal value and source line.
type Token struct {
	Kind    Kind
	Lexeme  string
	Literal any // string for strings/names, int for numbers, else nil
	Line    int
}

// String renders the token for tracing.
func (t Token) String() string {
	return t.Kind.String() + " '" + t.Lexeme + "'"
}
