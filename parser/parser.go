// Package parser implements a Pratt parser for the formula sublanguage:
// a single expression combining arithmetic, calls, string/number/bool
// literals, and cell references.
package parser

import (
	"fmt"

	"spanleaf/ast"
	"spanleaf/lexer"
	"spanleaf/token"
)

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	errors []ParseError

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

const (
	_ int = iota
	LOWEST
	SUM
	PRODUCT
	PREFIX
)

var precedences = map[token.TokenType]int{
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.ASTERISK: PRODUCT,
	token.SLASH:    PRODUCT,
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.NUMBER:    p.parseNumberLiteral,
		token.TRUE:      p.parseBoolLiteral,
		token.FALSE:     p.parseBoolLiteral,
		token.STRING:    p.parseTextLiteral,
		token.MINUS:     p.parsePrefixExpression,
		token.LPAREN:    p.parseGroupedExpression,
		token.IDENT:     p.parseIdentLed,
		token.LBRACKET:  p.parseBareCellDeref,
		token.AMPERSAND: p.parseCellRefExpression,
	}

	p.infixParseFns = map[token.TokenType]infixParseFn{
		token.PLUS:     p.parseInfixExpression,
		token.MINUS:    p.parseInfixExpression,
		token.ASTERISK: p.parseInfixExpression,
		token.SLASH:    p.parseInfixExpression,
	}

	p.nextToken()
	p.nextToken()

	return p
}

// Parse parses a formula body (the text following a leading "=", which
// the caller has already stripped) into an expression tree.
func Parse(input string) (ast.Expression, []ParseError) {
	p := New(lexer.New(input))
	expr := p.parseExpression(LOWEST)
	if !p.peekTokenIs(token.EOF) {
		p.addError(p.peekToken, fmt.Sprintf("unexpected trailing input starting with %q", p.peekToken.Literal))
	}
	return expr, p.errors
}

func (p *Parser) Errors() []ParseError {
	return p.errors
}

func (p *Parser) addError(tok token.Token, msg string) {
	p.errors = append(p.errors, ParseError{Message: msg, Token: tok})
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.addError(p.curToken, fmt.Sprintf("unexpected token %q", p.curToken.Literal))
		return nil
	}
	leftExp := prefix()

	for !p.peekTokenIs(token.EOF) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
	}

	return leftExp
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	tok := p.curToken
	value, err := lexer.ParseNumber(tok.Literal)
	if err != nil {
		p.addError(tok, fmt.Sprintf("could not parse %q as a number", tok.Literal))
		return nil
	}
	return &ast.NumberLiteral{Token: tok, Value: value}
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	return &ast.BoolLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parseTextLiteral() ast.Expression {
	return &ast.TextLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expression := &ast.PrefixExpression{Token: p.curToken, Operator: p.curToken.Literal}
	p.nextToken()
	expression.Right = p.parseExpression(PREFIX)
	return expression
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expression := &ast.InfixExpression{Token: p.curToken, Operator: p.curToken.Literal, Left: left}
	precedence := p.curPrecedence()
	p.nextToken()
	expression.Right = p.parseExpression(precedence)
	return expression
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	exp := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return exp
}

// parseIdentLed handles an IDENT in atom position, which per the
// grammar is only ever the start of a call or the sheet name of a
// rawRef — a bare identifier is not itself a valid atom.
func (p *Parser) parseIdentLed() ast.Expression {
	tok := p.curToken
	name := p.curToken.Literal

	switch p.peekToken.Type {
	case token.LPAREN:
		p.nextToken() // consume ident, curToken == '('
		args := p.parseExpressionList(token.RPAREN)
		return &ast.CallExpression{Token: tok, Function: name, Arguments: args}
	case token.LBRACKET:
		ref := p.parseRawRef()
		if ref == nil {
			return nil
		}
		return &ast.CellDerefExpression{Token: tok, Ref: ref}
	default:
		p.addError(p.peekToken, fmt.Sprintf("expected '(' or '[' after identifier %q", name))
		return nil
	}
}

// parseBareCellDeref handles a '[' in atom position: a rawRef with no
// leading sheet identifier, dereferenced by default.
func (p *Parser) parseBareCellDeref() ast.Expression {
	tok := p.curToken
	ref := p.parseRawRef()
	if ref == nil {
		return nil
	}
	return &ast.CellDerefExpression{Token: tok, Ref: ref}
}

// parseCellRefExpression handles a leading '&': the reference form,
// yielding the Ref value itself rather than dereferencing it.
func (p *Parser) parseCellRefExpression() ast.Expression {
	tok := p.curToken
	p.nextToken() // consume '&'
	ref := p.parseRawRef()
	if ref == nil {
		return nil
	}
	ref.Token = tok
	return ref
}

// parseRawRef parses `ident? '[' expr ',' expr ']'`. curToken must be
// positioned at the leading IDENT (if any) or at the '['.
func (p *Parser) parseRawRef() *ast.CellRefExpression {
	tok := p.curToken

	var sheet *ast.SheetNameExpression
	if p.curTokenIs(token.IDENT) {
		sheet = &ast.SheetNameExpression{Token: p.curToken, Name: p.curToken.Literal}
		if !p.expectPeek(token.LBRACKET) {
			return nil
		}
	}
	if !p.curTokenIs(token.LBRACKET) {
		p.addError(p.curToken, "expected '[' to start a cell reference")
		return nil
	}

	p.nextToken() // consume '['
	row := p.parseExpression(LOWEST)
	if !p.expectPeek(token.COMMA) {
		return nil
	}
	p.nextToken() // consume ','
	col := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}

	return &ast.CellRefExpression{Token: tok, Sheet: sheet, Row: row, Col: col}
}

// parseExpressionList parses a comma-separated, optionally
// trailing-comma-terminated list of expressions up to (and consuming)
// end.
func (p *Parser) parseExpressionList(end token.TokenType) []ast.Expression {
	var list []ast.Expression

	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}

	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))

	for p.peekTokenIs(token.COMMA) {
		p.nextToken() // consume ','
		if p.peekTokenIs(end) {
			p.nextToken() // trailing comma: "sum(2, 3, 4,)"
			return list
		}
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}

	if !p.expectPeek(end) {
		return nil
	}
	return list
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.TokenType) {
	p.addError(p.peekToken, fmt.Sprintf("expected next token to be %s, got %s instead", t, p.peekToken.Type))
}
