package spreadsheet

import (
	"fmt"
	"math"

	"spanleaf/ast"
	"spanleaf/value"
)

// builtinFn is the shape of every entry in the function registry. It
// receives the call's argument expressions unevaluated, rather than
// already-evaluated Values, because one builtin (is_formula) needs to
// inspect a referenced cell's raw, undereferenced state — something a
// CellDeref's normal evaluation already discards by resolving straight
// through to the target's computed Value. Every other builtin just
// evaluates its own arguments and ignores this distinction.
type builtinFn func(ctx *evalContext, args []ast.Expression) (value.Value, error)

// functions is the registry Call dispatches through; built once at
// package init rather than per-Evaluator, since it holds no state. It
// is assigned in init rather than in its declaration because the
// builtins it holds reach evalCall, which reads it, and Go rejects that
// as an initialization cycle.
var functions map[string]builtinFn

func init() { functions = builtinTable }

var builtinTable = map[string]builtinFn{
	"sum":        builtinSum,
	"average":    builtinAverage,
	"power":      builtinPower,
	"abs":        builtinAbs,
	"true":       builtinTrue,
	"false":      builtinFalse,
	"is_blank":   builtinIsBlank,
	"is_formula": builtinIsFormula,
	"min":        builtinMin,
	"max":        builtinMax,
	"count":      builtinCount,
}

func evalCall(ctx *evalContext, node *ast.CallExpression) (value.Value, error) {
	fn, ok := functions[node.Function]
	if !ok {
		return nil, value.NewError(value.FunctionNotAvailable, fmt.Sprintf("unknown function %q", node.Function))
	}
	return fn(ctx, node.Arguments)
}

func evalArgs(ctx *evalContext, args []ast.Expression) ([]value.Value, error) {
	vals := make([]value.Value, len(args))
	for i, a := range args {
		v, err := evalExpr(ctx, a)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

// builtinSum folds `+` over its arguments starting from Empty, so a
// run of Empty cells contributes nothing and a single Number argument
// passes through unchanged.
func builtinSum(ctx *evalContext, args []ast.Expression) (value.Value, error) {
	vals, err := evalArgs(ctx, args)
	if err != nil {
		return nil, err
	}
	return foldAdd(vals)
}

func foldAdd(vals []value.Value) (value.Value, error) {
	var acc value.Value = value.Empty{}
	for _, v := range vals {
		next, err := value.Add(acc, v)
		if err != nil {
			return nil, err
		}
		acc = next
	}
	return acc, nil
}

// builtinAverage is sum/count over a nonempty argument list, and
// Number(0) when called with no arguments at all — note this is a
// count of *arguments*, not of non-Empty ones, so average(1, [empty])
// is 0.5, matching sum's empty-as-identity fold.
func builtinAverage(ctx *evalContext, args []ast.Expression) (value.Value, error) {
	if len(args) == 0 {
		return value.Number{Value: 0}, nil
	}
	vals, err := evalArgs(ctx, args)
	if err != nil {
		return nil, err
	}
	sum, err := foldAdd(vals)
	if err != nil {
		return nil, err
	}
	return value.Div(sum, value.Number{Value: float64(len(vals))})
}

func builtinPower(ctx *evalContext, args []ast.Expression) (value.Value, error) {
	if len(args) < 2 {
		return nil, value.NewError(value.InsufficientArgs, "power needs exactly 2 arguments")
	}
	if len(args) > 2 {
		return nil, value.NewError(value.TooManyArgs, "power needs exactly 2 arguments")
	}
	vals, err := evalArgs(ctx, args)
	if err != nil {
		return nil, err
	}
	base, ok := vals[0].(value.Number)
	if !ok {
		return nil, value.NewError(value.RefMustBeNumber, fmt.Sprintf("power's base must be a number, got %s", vals[0].Kind()))
	}
	exp, ok := vals[1].(value.Number)
	if !ok {
		return nil, value.NewError(value.RefMustBeNumber, fmt.Sprintf("power's exponent must be a number, got %s", vals[1].Kind()))
	}
	return value.Number{Value: math.Pow(base.Value, exp.Value)}, nil
}

func builtinAbs(ctx *evalContext, args []ast.Expression) (value.Value, error) {
	if len(args) < 1 {
		return nil, value.NewError(value.InsufficientArgs, "abs needs exactly 1 argument")
	}
	if len(args) > 1 {
		return nil, value.NewError(value.TooManyArgs, "abs needs exactly 1 argument")
	}
	vals, err := evalArgs(ctx, args)
	if err != nil {
		return nil, err
	}
	n, ok := vals[0].(value.Number)
	if !ok {
		return nil, value.NewError(value.RefMustBeNumber, fmt.Sprintf("abs's argument must be a number, got %s", vals[0].Kind()))
	}
	return value.Number{Value: math.Abs(n.Value)}, nil
}

func builtinTrue(ctx *evalContext, args []ast.Expression) (value.Value, error) {
	if len(args) > 0 {
		return nil, value.NewError(value.TooManyArgs, "true takes no arguments")
	}
	return value.Bool{Value: true}, nil
}

func builtinFalse(ctx *evalContext, args []ast.Expression) (value.Value, error) {
	if len(args) > 0 {
		return nil, value.NewError(value.TooManyArgs, "false takes no arguments")
	}
	return value.Bool{Value: false}, nil
}

// builtinIsBlank reports whether its argument is Empty. Unlike
// is_formula below, this needs no special-casing for a cell reference:
// a CellDeref already resolves straight through to Empty when the
// target cell is blank, so the generic evaluation path is enough.
func builtinIsBlank(ctx *evalContext, args []ast.Expression) (value.Value, error) {
	if len(args) == 0 {
		return nil, value.NewError(value.InsufficientArgs, "is_blank needs exactly 1 argument")
	}
	if len(args) > 1 {
		return nil, value.NewError(value.TooManyArgs, "is_blank needs exactly 1 argument")
	}
	v, err := evalExpr(ctx, args[0])
	if err != nil {
		return nil, err
	}
	return value.Bool{Value: v.Kind() == value.EmptyKind}, nil
}

// builtinIsFormula reports whether the cell a reference names
// currently holds an unevaluated formula. Unlike is_blank, this cannot
// be answered from the argument's ordinary evaluated Value: a
// CellDeref always resolves straight through to the formula's computed
// result (never the Formula itself — that's the whole point of
// dereferencing). So a CellRef or CellDeref argument is special-cased
// to consult the target's raw, undereferenced contents via GetRaw.
func builtinIsFormula(ctx *evalContext, args []ast.Expression) (value.Value, error) {
	if len(args) == 0 {
		return nil, value.NewError(value.InsufficientArgs, "is_formula needs exactly 1 argument")
	}
	if len(args) > 1 {
		return nil, value.NewError(value.TooManyArgs, "is_formula needs exactly 1 argument")
	}

	var refNode *ast.CellRefExpression
	switch n := args[0].(type) {
	case *ast.CellDerefExpression:
		refNode = n.Ref
	case *ast.CellRefExpression:
		refNode = n
	}
	if refNode != nil {
		ref, err := evalCellRef(ctx, refNode)
		if err != nil {
			return nil, err
		}
		raw := ctx.engine.GetRaw(ref.Sheet, ref.Cell)
		return value.Bool{Value: raw.Value.Kind() == value.FormulaKind}, nil
	}

	v, err := evalExpr(ctx, args[0])
	if err != nil {
		return nil, err
	}
	return value.Bool{Value: v.Kind() == value.FormulaKind}, nil
}

// builtinMin and builtinMax fold over non-Empty numeric arguments,
// matching sum's empty-safe behavior: an all-empty or zero-length
// argument list yields Empty rather than an error.
func builtinMin(ctx *evalContext, args []ast.Expression) (value.Value, error) {
	return foldExtreme(ctx, args, func(a, b float64) bool { return a < b })
}

func builtinMax(ctx *evalContext, args []ast.Expression) (value.Value, error) {
	return foldExtreme(ctx, args, func(a, b float64) bool { return a > b })
}

func foldExtreme(ctx *evalContext, args []ast.Expression, better func(a, b float64) bool) (value.Value, error) {
	vals, err := evalArgs(ctx, args)
	if err != nil {
		return nil, err
	}
	var best *float64
	for _, v := range vals {
		if _, isEmpty := v.(value.Empty); isEmpty {
			continue
		}
		n, ok := v.(value.Number)
		if !ok {
			return nil, value.NewError(value.RefMustBeNumber, fmt.Sprintf("expected a number, got %s", v.Kind()))
		}
		if best == nil || better(n.Value, *best) {
			val := n.Value
			best = &val
		}
	}
	if best == nil {
		return value.Empty{}, nil
	}
	return value.Number{Value: *best}, nil
}

// builtinCount returns the number of non-Empty arguments.
func builtinCount(ctx *evalContext, args []ast.Expression) (value.Value, error) {
	vals, err := evalArgs(ctx, args)
	if err != nil {
		return nil, err
	}
	n := 0
	for _, v := range vals {
		if _, isEmpty := v.(value.Empty); !isEmpty {
			n++
		}
	}
	return value.Number{Value: float64(n)}, nil
}
