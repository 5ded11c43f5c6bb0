package value

import (
	"fmt"

	"spanleaf/parser"
)

// FromGo converts a Go value written into a cell — typically a literal
// from calling code, rarely a Value that's already been produced by
// evaluation — into the Value it represents. A string with a leading
// "=" is parsed as a Formula; any parse failure is reported as
// InvalidFormula rather than surfaced as a raw parser error, so callers
// only ever see value.Error out of this package.
func FromGo(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Empty{}, nil
	case Value:
		return x, nil
	case bool:
		return Bool{Value: x}, nil
	case string:
		return parseCellString(x)
	case float32:
		return Number{Value: float64(x)}, nil
	case float64:
		return Number{Value: x}, nil
	case int:
		return Number{Value: float64(x)}, nil
	case int8:
		return Number{Value: float64(x)}, nil
	case int16:
		return Number{Value: float64(x)}, nil
	case int32:
		return Number{Value: float64(x)}, nil
	case int64:
		return Number{Value: float64(x)}, nil
	case uint:
		return Number{Value: float64(x)}, nil
	case uint8:
		return Number{Value: float64(x)}, nil
	case uint16:
		return Number{Value: float64(x)}, nil
	case uint32:
		return Number{Value: float64(x)}, nil
	case uint64:
		return Number{Value: float64(x)}, nil
	default:
		return nil, NewError(OperationUnavailable, fmt.Sprintf("cannot convert %T to a cell value", v))
	}
}

func parseCellString(s string) (Value, error) {
	if len(s) == 0 || s[0] != '=' {
		return Text{Value: s}, nil
	}
	body := s[1:]
	expr, errs := parser.Parse(body)
	if len(errs) > 0 {
		return nil, NewError(InvalidFormula, parser.FormatParseErrors(errs, body))
	}
	return Formula{Source: body, Expr: expr}, nil
}
