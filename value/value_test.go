package value

import (
	"math"
	"testing"

	"spanleaf/ast"
)

func TestEmptyIsIdentityForArithmetic(t *testing.T) {
	n := Number{Value: 7}
	cases := []struct {
		name string
		fn   func(a, b Value) (Value, error)
	}{
		{"Add", Add},
		{"Mul", Mul},
		{"Div", Div},
	}
	for _, c := range cases {
		got, err := c.fn(Empty{}, n)
		if err != nil || !Equal(got, n) {
			t.Fatalf("%s(Empty, 7): got %v, %v", c.name, got, err)
		}
		got, err = c.fn(n, Empty{})
		if err != nil || !Equal(got, n) {
			t.Fatalf("%s(7, Empty): got %v, %v", c.name, got, err)
		}
	}

	got, err := Sub(Empty{}, n)
	if err != nil || !Equal(got, n) {
		t.Fatalf("Sub(Empty, 7): expected 7 unchanged (no implicit negation), got %v, %v", got, err)
	}
	got, err = Sub(n, Empty{})
	if err != nil || !Equal(got, n) {
		t.Fatalf("Sub(7, Empty): got %v, %v", got, err)
	}
}

func TestNumberArithmetic(t *testing.T) {
	a, b := Number{Value: 3}, Number{Value: 4}

	if sum, err := Add(a, b); err != nil || sum.(Number).Value != 7 {
		t.Fatalf("3 + 4: got %v, %v", sum, err)
	}
	if diff, err := Sub(a, b); err != nil || diff.(Number).Value != -1 {
		t.Fatalf("3 - 4: got %v, %v", diff, err)
	}
	if prod, err := Mul(a, b); err != nil || prod.(Number).Value != 12 {
		t.Fatalf("3 * 4: got %v, %v", prod, err)
	}
	if quot, err := Div(b, a); err != nil || quot.(Number).Value != 4.0/3.0 {
		t.Fatalf("4 / 3: got %v, %v", quot, err)
	}
}

func TestDivByZeroFollowsIEEE754(t *testing.T) {
	got, err := Div(Number{Value: 1}, Number{Value: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsInf(got.(Number).Value, 1) {
		t.Fatalf("expected +Inf, got %v", got)
	}
}

func TestTextConcatenation(t *testing.T) {
	got, err := Add(Text{Value: "foo"}, Text{Value: "bar"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.(Text).Value != "foobar" {
		t.Fatalf("got %q", got.(Text).Value)
	}
}

func TestTextDoesNotSubtractMultiplyOrDivide(t *testing.T) {
	a, b := Text{Value: "x"}, Text{Value: "y"}
	for _, fn := range []func(a, b Value) (Value, error){Sub, Mul, Div} {
		if _, err := fn(a, b); KindOf(err) != OperationUnavailable {
			t.Fatalf("expected OperationUnavailable, got %v", err)
		}
	}
}

func TestMixedKindArithmeticIsUnavailable(t *testing.T) {
	_, err := Add(Number{Value: 1}, Text{Value: "x"})
	if KindOf(err) != OperationUnavailable {
		t.Fatalf("expected OperationUnavailable, got %v", err)
	}
}

func TestNegation(t *testing.T) {
	if got, err := Neg(Number{Value: 5}); err != nil || got.(Number).Value != -5 {
		t.Fatalf("got %v, %v", got, err)
	}
	if got, err := Neg(Bool{Value: true}); err != nil || got.(Bool).Value != false {
		t.Fatalf("got %v, %v", got, err)
	}
	if got, err := Neg(Empty{}); err != nil {
		t.Fatalf("got %v, %v", got, err)
	} else if _, ok := got.(Empty); !ok {
		t.Fatalf("expected Empty, got %v", got)
	}
	if _, err := Neg(Text{Value: "x"}); KindOf(err) != OperationUnavailable {
		t.Fatalf("expected OperationUnavailable, got %v", err)
	}
}

func TestEqualityByKind(t *testing.T) {
	if !Equal(Empty{}, Empty{}) {
		t.Fatalf("Empty should equal Empty")
	}
	if Equal(Empty{}, Number{Value: 0}) {
		t.Fatalf("Empty should not equal Number(0)")
	}
	if !Equal(Number{Value: 3}, Number{Value: 3}) {
		t.Fatalf("3 should equal 3")
	}
	if !Equal(Text{Value: "a"}, Text{Value: "a"}) {
		t.Fatalf("equal text should be equal")
	}
	if Equal(Bool{Value: true}, Bool{Value: false}) {
		t.Fatalf("true should not equal false")
	}
}

func TestNumberEqualityIsBitwiseNaNNeverEqual(t *testing.T) {
	nan := Number{Value: math.NaN()}
	if Equal(nan, nan) {
		t.Fatalf("NaN must not equal itself")
	}
}

func TestFormulaNeverEqualEvenToItself(t *testing.T) {
	f := Formula{Source: "1+1", Expr: &ast.NumberLiteral{Value: 2}}
	if Equal(f, f) {
		t.Fatalf("a Formula must never compare equal, even to itself")
	}
}

func TestCellIdxOrdering(t *testing.T) {
	a := CellIdx{Row: 0, Col: 5}
	b := CellIdx{Row: 1, Col: 0}
	if !a.Less(b) {
		t.Fatalf("row 0 should sort before row 1 regardless of column")
	}
	c := CellIdx{Row: 2, Col: 1}
	d := CellIdx{Row: 2, Col: 3}
	if !c.Less(d) {
		t.Fatalf("within the same row, lower column should sort first")
	}
}

func TestFromGoConvertsLiterals(t *testing.T) {
	cases := []struct {
		in   any
		kind Kind
	}{
		{nil, EmptyKind},
		{true, BoolKind},
		{3.5, NumberKind},
		{7, NumberKind},
		{"plain text", TextKind},
	}
	for _, c := range cases {
		got, err := FromGo(c.in)
		if err != nil {
			t.Fatalf("FromGo(%v): unexpected error %v", c.in, err)
		}
		if got.Kind() != c.kind {
			t.Fatalf("FromGo(%v): got kind %v, want %v", c.in, got.Kind(), c.kind)
		}
	}
}

func TestFromGoParsesLeadingEqualsAsFormula(t *testing.T) {
	got, err := FromGo("=1+2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, ok := got.(Formula)
	if !ok {
		t.Fatalf("expected a Formula, got %T", got)
	}
	if f.Source != "1+2" {
		t.Fatalf("expected source to drop the leading '=', got %q", f.Source)
	}
	if f.Expr == nil {
		t.Fatalf("expected a parsed expression")
	}
}

func TestFromGoRejectsMalformedFormula(t *testing.T) {
	_, err := FromGo("=1 +")
	if KindOf(err) != InvalidFormula {
		t.Fatalf("expected InvalidFormula, got %v", err)
	}
}

func TestFromGoRejectsUnsupportedType(t *testing.T) {
	_, err := FromGo(struct{}{})
	if KindOf(err) != OperationUnavailable {
		t.Fatalf("expected OperationUnavailable, got %v", err)
	}
}
