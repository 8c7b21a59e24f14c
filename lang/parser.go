package lang

import (
	"log/slog"

	"github.com/ardnew/edl/log"
)

// bailout is the sentinel panic raised on a structural violation. It is
// caught at the statement boundary so the parser can synchronize to the
// next ';' and keep reporting independent errors instead of cascading
// from the first one.
type bailout struct{}

// Parser consumes the token list produced by the [Lexer] and builds the
// statement list. It never fails outward: structural violations are
// recorded as static diagnostics and the offending statement is skipped.
type Parser struct {
	errors  *Reporter
	logger  log.Logger
	tokens  []Token
	current int
}

// NewParser creates a Parser over tokens, recording diagnostics on errors.
func NewParser(tokens []Token, errors *Reporter, logger log.Logger) *Parser {
	return &Parser{
		errors: errors,
		logger: logger,
		tokens: tokens,
	}
}

// Parse consumes all tokens and returns the statements successfully
// parsed. A statement that fails to parse contributes no node.
func (p *Parser) Parse() []Stmt {
	p.logger.Debug("starting parse",
		slog.Int("tokens", len(p.tokens)))

	statements := make([]Stmt, 0, len(p.tokens)/4+1)

	for !p.atEnd() {
		if stmt := p.statement(); stmt != nil {
			statements = append(statements, stmt)
		}
	}

	p.logger.Debug("parse complete",
		slog.Int("statements", len(statements)))

	return statements
}

// statement parses: expression ';'. On a structural violation it recovers
// from the bailout panic, synchronizes past the next ';', and returns nil.
func (p *Parser) statement() (stmt Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}

			p.synchronize()

			stmt = nil
		}
	}()

	expr := p.expression()
	p.consume(KindSemicolon, "expect ';' after expression.")

	return &ExprStmt{Expr: expr}
}

func (p *Parser) expression() Expr {
	return p.assignment()
}

// assignment parses: deref ('=' primitive)?. The assignment target must be
// a Get node; any other shape is an "invalid assignment target" error.
func (p *Parser) assignment() Expr {
	expr := p.deref()

	if p.match(KindEqual) {
		equals := p.previous()
		value := p.primitive()

		if get, ok := expr.(*Get); ok {
			return &Set{
				Object: get.Object,
				Field:  get.Field,
				Value:  value,
				Index:  get.Index,
			}
		}

		p.errors.StaticToken(equals, "invalid assignment target.")
	}

	return expr
}

// primitive parses the right-hand side of an assignment: a parenthesized
// type annotation, or any plain assignable expression.
func (p *Parser) primitive() Expr {
	if p.match(KindLeftParen) {
		return p.typed()
	}

	return p.assignment()
}

// typed parses: STRING 'as' (boolean|integer|decimal|date ('=>' STRING)?) ')'.
func (p *Parser) typed() Expr {
	text := p.consume(KindString, "expect a string after '('.")
	p.consume(KindAs, "expect 'as' after type value.")

	var value Expr

	switch p.advance().Kind {
	case KindBoolean:
		value = &Literal{Token: text, Value: text.Literal, Type: TypeBoolean}

	case KindInteger:
		value = &Literal{Token: text, Value: text.Literal, Type: TypeInteger}

	case KindDecimal:
		value = &Literal{Token: text, Value: text.Literal, Type: TypeDecimal}

	case KindDate:
		date := &Date{Token: text, Value: text.Literal.(string)}
		if p.match(KindArrow) {
			format := p.consume(KindString, "expect format after '=>'.")
			date.Format = format.Literal.(string)
		}

		value = date

	default:
		p.errors.StaticToken(p.peek(), "expect a valid type keyword.")
		panic(bailout{})
	}

	p.consume(KindRightParen, "expect ')' after type definition.")

	return value
}

// deref parses: receiver ('.' IDENTIFIER ('[' NUMBER ']')?)*.
func (p *Parser) deref() Expr {
	expr := p.receiver()

	for p.match(KindDot) {
		if !p.check(KindIdentifier) {
			p.errors.StaticToken(p.peek(), "expect a field after '.'.")

			continue
		}

		name := p.consume(KindIdentifier, "expect identifier.")

		var index Expr

		if p.match(KindLeftBracket) {
			index = p.number()
			p.consume(KindRightBracket, "expect ']' after index.")
		}

		expr = &Get{Object: expr, Field: name, Index: index}
	}

	return expr
}

func (p *Parser) receiver() Expr {
	if p.check(KindElement) {
		return p.declaration()
	}

	return p.string()
}

// declaration parses: ELEMENT ('[' (NUMBER|STRING) ']')?.
func (p *Parser) declaration() Expr {
	name := p.consume(KindElement, "expect element name.")

	var matcher Expr

	if p.match(KindLeftBracket) {
		matcher = p.matcher()
		p.consume(KindRightBracket, "expect ']' after position matcher.")
	}

	return &Element{Name: name, Matcher: matcher}
}

func (p *Parser) matcher() Expr {
	if p.match(KindNumber, KindString) {
		return &Literal{Token: p.previous(), Value: p.previous().Literal}
	}

	p.errors.StaticToken(p.peek(), "expect an integer number or a string.")
	panic(bailout{})
}

func (p *Parser) string() Expr {
	str := p.consume(KindString, "expect a string.")

	return &Literal{Token: str, Value: str.Literal}
}

func (p *Parser) number() Expr {
	num := p.consume(KindNumber, "expect a number.")

	return &Literal{Token: num, Value: num.Literal}
}

func (p *Parser) match(kinds ...Kind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()

			return true
		}
	}

	return false
}

// consume advances past a token of the expected kind, or reports a static
// diagnostic and bails out of the current statement. Continuing after a
// missed token would only cascade errors; synchronize puts the parser back
// at the next statement.
func (p *Parser) consume(kind Kind, message string) Token {
	if p.check(kind) {
		return p.advance()
	}

	p.errors.StaticToken(p.peek(), message)
	panic(bailout{})
}

// synchronize skips tokens until the start of the next statement.
func (p *Parser) synchronize() {
	p.advance()

	for !p.atEnd() {
		// The token after a ';' begins a new statement.
		if p.previous().Kind == KindSemicolon {
			return
		}

		p.advance()
	}
}

func (p *Parser) advance() Token {
	if !p.atEnd() {
		p.current++
	}

	return p.previous()
}

func (p *Parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *Parser) check(kind Kind) bool {
	if p.atEnd() {
		return false
	}

	return p.peek().Kind == kind
}

func (p *Parser) atEnd() bool {
	return p.peek().Kind == KindEOF
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}
