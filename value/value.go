// Package value defines the tagged-union Value type that every cell in
// a sheet holds, along with the partial arithmetic it supports. It sits
// below spanleaf/spreadsheet: a Sheet stores Values, an Engine produces
// them, but neither the Value type nor its conversions need to know
// about sheets or engines.
package value

import (
	"fmt"

	"spanleaf/ast"
)

// Kind names the variant of a Value, mainly for error messages and
// builtin predicates (is_blank, is_formula).
type Kind string

const (
	EmptyKind   Kind = "EMPTY"
	BoolKind    Kind = "BOOL"
	NumberKind  Kind = "NUMBER"
	TextKind    Kind = "TEXT"
	RefKind     Kind = "REF"
	FormulaKind Kind = "FORMULA"
)

// Value is the tagged union every cell holds: Empty, Bool, Number,
// Text, Ref, or Formula. The interface carries only identification
// (Kind), display (Inspect) and equality (Equal); the operators switch
// on the concrete type.
type Value interface {
	Kind() Kind
	Inspect() string
	Equal(Value) bool
}

// Empty is the value of a cell that has never been written, or that
// has been explicitly cleared. It is the identity element for +, -, *,
// / against every other kind.
type Empty struct{}

func (Empty) Kind() Kind           { return EmptyKind }
func (Empty) Inspect() string      { return "" }
func (e Empty) Equal(o Value) bool { return Equal(e, o) }

// Bool is a boolean literal or the result of a logical builtin.
type Bool struct {
	Value bool
}

func (Bool) Kind() Kind { return BoolKind }
func (b Bool) Inspect() string {
	if b.Value {
		return "true"
	}
	return "false"
}
func (b Bool) Equal(o Value) bool { return Equal(b, o) }

// Number is an IEEE-754 double. Equality is bitwise, so NaN is never
// equal to anything, including itself.
type Number struct {
	Value float64
}

func (Number) Kind() Kind          { return NumberKind }
func (n Number) Inspect() string   { return fmt.Sprintf("%g", n.Value) }
func (n Number) Equal(o Value) bool { return Equal(n, o) }

// Text is a string literal or the result of text concatenation.
type Text struct {
	Value string
}

func (Text) Kind() Kind        { return TextKind }
func (t Text) Inspect() string { return t.Value }
func (t Text) Equal(o Value) bool { return Equal(t, o) }

// CellIdx is a zero-based (row, col) coordinate within a sheet. It is
// defined here, rather than in spreadsheet, so that Ref (and the Engine
// that allocates SheetIdx values) can share one vocabulary without a
// package cycle: spreadsheet.Engine depends on value, never the reverse.
type CellIdx struct {
	Row uint64
	Col uint64
}

// Less orders CellIdx lexicographically by (row, col).
func (c CellIdx) Less(o CellIdx) bool {
	if c.Row != o.Row {
		return c.Row < o.Row
	}
	return c.Col < o.Col
}

// SheetIdx identifies a sheet within an Engine. Engines hand these out
// from a monotonically increasing counter; nothing about the type
// itself enforces that, it's just an opaque handle.
type SheetIdx uint64

// Ref is a reference to a cell, produced by the `&sheet[row, col]` form.
// is_formula resolves a reference argument to the named cell's raw
// contents; the arithmetic operators below never dereference a Ref, and
// is_blank treats it as an ordinary non-Empty value.
type Ref struct {
	Sheet SheetIdx
	Cell  CellIdx
}

func (Ref) Kind() Kind { return RefKind }
func (r Ref) Inspect() string {
	return fmt.Sprintf("&sheet#%d[%d, %d]", r.Sheet, r.Cell.Row, r.Cell.Col)
}
func (r Ref) Equal(o Value) bool { return Equal(r, o) }

// Formula is an unevaluated formula body: the source text after the
// leading "=" plus its already-parsed expression tree, kept together so
// a formula cell can be both re-displayed (its Source) and re-evaluated
// (its Expr) without reparsing. Formula is never equal to any Value,
// including another Formula with identical source — equality would
// require deep AST comparison, and two formulas with the same text can
// still evaluate to different things once their sheet changes.
type Formula struct {
	Source string
	Expr   ast.Expression
}

func (Formula) Kind() Kind        { return FormulaKind }
func (f Formula) Inspect() string { return "=" + f.Source }
func (f Formula) Equal(o Value) bool { return Equal(f, o) }

// Equal implements value equality: Empty equals only Empty,
// Bool/Number/Text/Ref compare their payload (Number bitwise, so NaN
// never equals anything), and Formula is never equal to anything.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Empty:
		_, ok := b.(Empty)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av.Value == bv.Value
	case Number:
		bv, ok := b.(Number)
		return ok && av.Value == bv.Value
	case Text:
		bv, ok := b.(Text)
		return ok && av.Value == bv.Value
	case Ref:
		bv, ok := b.(Ref)
		return ok && av.Sheet == bv.Sheet && av.Cell == bv.Cell
	default:
		return false
	}
}
