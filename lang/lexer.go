package lang

import (
	"log/slog"
	"strconv"

	"github.com/ardnew/edl/log"
)

const (
	unterminatedStringError = "unterminated string."
	unexpectedCharError     = "unexpected character."
)

var keywords = map[string]Kind{
	"as":      KindAs,
	"boolean": KindBoolean,
	"integer": KindInteger,
	"decimal": KindDecimal,
	"date":    KindDate,
}

// Lexer scans a source listing and produces the token list consumed by
// the [Parser]. Lexical errors are recorded as static diagnostics on the
// reporter; scanning always continues to the end of the source.
type Lexer struct {
	errors *Reporter
	logger log.Logger
	source []rune
	tokens []Token

	start   int
	current int
	line    int
}

// NewLexer creates a Lexer over source, recording diagnostics on errors.
func NewLexer(source string, errors *Reporter, logger log.Logger) *Lexer {
	return &Lexer{
		errors: errors,
		logger: logger,
		source: []rune(source),
		line:   1,
	}
}

// ScanTokens scans the entire source and returns the tokens found, always
// terminated by an EOF token.
func (l *Lexer) ScanTokens() []Token {
	l.logger.Debug("starting token scan")

	for !l.atEnd() {
		l.start = l.current
		l.scanToken()
	}

	l.tokens = append(l.tokens, Token{Kind: KindEOF, Line: l.line})

	l.logger.Debug("token scan complete",
		slog.Int("tokens", len(l.tokens)))

	return l.tokens
}

func (l *Lexer) scanToken() {
	switch c := l.advance(); c {
	case ' ', '\r', '\t':
		// Ignore whitespace.

	case '\n':
		l.line++

	case '.':
		l.addToken(KindDot)

	case '=':
		if l.match('>') {
			l.addToken(KindArrow)
		} else {
			l.addToken(KindEqual)
		}

	case ';':
		l.addToken(KindSemicolon)

	case '(':
		l.addToken(KindLeftParen)

	case ')':
		l.addToken(KindRightParen)

	case '[':
		l.addToken(KindLeftBracket)

	case ']':
		l.addToken(KindRightBracket)

	case '"':
		l.string()

	case '/':
		if l.match('/') {
			// A comment runs to the end of the line.
			for l.peek() != '\n' && !l.atEnd() {
				l.advance()
			}
		} else {
			l.errors.Static(l.line, unexpectedCharError)
		}

	default:
		switch {
		case isDigit(c):
			l.number()

		case isUppercase(c):
			l.element()

		case isAlpha(c):
			l.identifier()

		default:
			l.errors.Static(l.line, unexpectedCharError)
		}
	}
}

// string scans a quoted literal. Strings carry no escape sequences and
// may not span lines.
func (l *Lexer) string() {
	for l.peek() != '"' && !l.atEnd() {
		l.advance()
	}

	if l.atEnd() {
		l.errors.Static(l.line, unterminatedStringError)

		return
	}

	// The closing quote.
	l.advance()

	value := string(l.source[l.start+1 : l.current-1])
	l.addLiteral(KindString, value)
}

func (l *Lexer) number() {
	for isDigit(l.peek()) {
		l.advance()
	}

	value, err := strconv.Atoi(string(l.source[l.start:l.current]))
	if err != nil {
		l.errors.Static(l.line, unexpectedCharError)

		return
	}

	l.addLiteral(KindNumber, value)
}

// element scans an element name. Elements begin with an uppercase letter.
func (l *Lexer) element() {
	for isAlpha(l.peek()) {
		l.advance()
	}

	l.addToken(KindElement)
}

// identifier scans a field name or keyword. Identifiers begin with a
// lowercase letter.
func (l *Lexer) identifier() {
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}

	kind, ok := keywords[string(l.source[l.start:l.current])]
	if !ok {
		kind = KindIdentifier
	}

	l.addToken(kind)
}

func (l *Lexer) advance() rune {
	c := l.source[l.current]
	l.current++

	return c
}

func (l *Lexer) peek() rune {
	if l.atEnd() {
		return 0
	}

	return l.source[l.current]
}

func (l *Lexer) match(expected rune) bool {
	if l.atEnd() || l.source[l.current] != expected {
		return false
	}

	l.current++

	return true
}

func (l *Lexer) atEnd() bool {
	return l.current >= len(l.source)
}

func (l *Lexer) addToken(kind Kind) {
	l.addLiteral(kind, nil)
}

func (l *Lexer) addLiteral(kind Kind, literal any) {
	l.tokens = append(l.tokens, Token{
		Kind:    kind,
		Lexeme:  string(l.source[l.start:l.current]),
		Literal: literal,
		Line:    l.line,
	})
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isUppercase(c rune) bool {
	return c >= 'A' && c <= 'Z'
}

func isAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || isUppercase(c)
}

func isAlphaNumeric(c rune) bool {
	return isAlpha(c) || isDigit(c)
}
