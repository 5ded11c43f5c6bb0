// Package ast defines the expression-tree node types produced by the
// formula parser (spanleaf/parser) and walked by the evaluator
// (spanleaf/spreadsheet).
package ast

import "spanleaf/token"

// Node is any AST node; TokenLiteral reports the literal text of the
// token the node was built from, mainly useful for error messages.
type Node interface {
	TokenLiteral() string
}

// Expression is every node in this grammar — a formula body is a
// single expression, with no statements.
type Expression interface {
	Node
	expressionNode()
}

// NumberLiteral is a decimal or scientific-notation numeric literal.
type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (n *NumberLiteral) expressionNode()      {}
func (n *NumberLiteral) TokenLiteral() string { return n.Token.Literal }

// TextLiteral is a single-quoted string literal, named after the
// Value variant it evaluates to rather than the token ("STRING").
type TextLiteral struct {
	Token token.Token
	Value string
}

func (t *TextLiteral) expressionNode()      {}
func (t *TextLiteral) TokenLiteral() string { return t.Token.Literal }

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	Token token.Token
	Value bool
}

func (b *BoolLiteral) expressionNode()      {}
func (b *BoolLiteral) TokenLiteral() string { return b.Token.Literal }

// PrefixExpression is a run of one or more unary `-` applied to an
// atom, folded right-to-left into nested nodes.
type PrefixExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (p *PrefixExpression) expressionNode()      {}
func (p *PrefixExpression) TokenLiteral() string { return p.Token.Literal }

// InfixExpression is a binary `+ - * /` application.
type InfixExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (i *InfixExpression) expressionNode()      {}
func (i *InfixExpression) TokenLiteral() string { return i.Token.Literal }

// CallExpression is `ident '(' args ')'`.
type CallExpression struct {
	Token     token.Token
	Function  string
	Arguments []Expression
}

func (c *CallExpression) expressionNode()      {}
func (c *CallExpression) TokenLiteral() string { return c.Token.Literal }

// SheetNameExpression is the bare identifier that may precede a `[…]`
// reference, naming the target sheet. It only ever appears as the
// Sheet field of a CellRefExpression, the left side of a reference.
type SheetNameExpression struct {
	Token token.Token
	Name  string
}

func (s *SheetNameExpression) expressionNode()      {}
func (s *SheetNameExpression) TokenLiteral() string { return s.Token.Literal }

// CellRefExpression is `rawRef := ident? '[' expr ',' expr ']'`: the
// reference-producing form (the target of a `&` prefix, or the operand
// of an implicit CellDerefExpression).
type CellRefExpression struct {
	Token token.Token
	Sheet *SheetNameExpression // nil: resolves against the current sheet
	Row   Expression
	Col   Expression
}

func (c *CellRefExpression) expressionNode()      {}
func (c *CellRefExpression) TokenLiteral() string { return c.Token.Literal }

// CellDerefExpression is the default, un-prefixed `[…]` form: it
// dereferences the wrapped CellRefExpression to the target cell's
// value instead of yielding the Ref itself.
type CellDerefExpression struct {
	Token token.Token
	Ref   *CellRefExpression
}

func (c *CellDerefExpression) expressionNode()      {}
func (c *CellDerefExpression) TokenLiteral() string { return c.Token.Literal }
