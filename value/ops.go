package value

import "fmt"

// Add implements `+`: Empty is the identity on either side, two
// Numbers sum, two Texts concatenate, anything else is unavailable.
func Add(a, b Value) (Value, error) {
	if _, ok := a.(Empty); ok {
		return b, nil
	}
	if _, ok := b.(Empty); ok {
		return a, nil
	}
	if an, ok := a.(Number); ok {
		if bn, ok := b.(Number); ok {
			return Number{Value: an.Value + bn.Value}, nil
		}
	}
	if at, ok := a.(Text); ok {
		if bt, ok := b.(Text); ok {
			return Text{Value: at.Value + bt.Value}, nil
		}
	}
	return nil, unavailable("+", a, b)
}

// Sub implements `-`: Empty is the identity on either side — notably
// `[empty] - 3` is `3`, not `-3`; Empty never triggers an implicit
// negation, it just drops out of the expression. Beyond that, only
// Number - Number is defined.
func Sub(a, b Value) (Value, error) {
	if _, ok := a.(Empty); ok {
		return b, nil
	}
	if _, ok := b.(Empty); ok {
		return a, nil
	}
	if an, ok := a.(Number); ok {
		if bn, ok := b.(Number); ok {
			return Number{Value: an.Value - bn.Value}, nil
		}
	}
	return nil, unavailable("-", a, b)
}

// Mul implements `*`: Empty is the identity, Number * Number is
// defined, everything else is unavailable.
func Mul(a, b Value) (Value, error) {
	if _, ok := a.(Empty); ok {
		return b, nil
	}
	if _, ok := b.(Empty); ok {
		return a, nil
	}
	if an, ok := a.(Number); ok {
		if bn, ok := b.(Number); ok {
			return Number{Value: an.Value * bn.Value}, nil
		}
	}
	return nil, unavailable("*", a, b)
}

// Div implements `/`: Empty is the identity, Number / Number is
// defined and follows IEEE-754 (division by zero yields ±Inf or NaN,
// not an error — DivideByZero is reserved for builtins that choose to
// raise it explicitly).
func Div(a, b Value) (Value, error) {
	if _, ok := a.(Empty); ok {
		return b, nil
	}
	if _, ok := b.(Empty); ok {
		return a, nil
	}
	if an, ok := a.(Number); ok {
		if bn, ok := b.(Number); ok {
			return Number{Value: an.Value / bn.Value}, nil
		}
	}
	return nil, unavailable("/", a, b)
}

// Neg implements unary `-`: negating Empty is still Empty, negating a
// Bool flips it, negating a Number flips its sign; everything else is
// unavailable.
func Neg(a Value) (Value, error) {
	switch v := a.(type) {
	case Empty:
		return Empty{}, nil
	case Bool:
		return Bool{Value: !v.Value}, nil
	case Number:
		return Number{Value: -v.Value}, nil
	default:
		return nil, NewError(OperationUnavailable, fmt.Sprintf("unary - is not defined for %s", a.Kind()))
	}
}

func unavailable(op string, a, b Value) error {
	return NewError(OperationUnavailable, fmt.Sprintf("%s is not defined between %s and %s", op, a.Kind(), b.Kind()))
}
