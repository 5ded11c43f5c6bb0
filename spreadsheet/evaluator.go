package spreadsheet

import (
	"fmt"
	"math"

	"spanleaf/ast"
	"spanleaf/value"
)

// maxRecursionDepth bounds how many CellDeref re-entries into the
// Engine a single Get call chain may make before failing with
// MaxRecursionReached. It is orthogonal to cycle detection — a cycle
// is caught by the calculating sentinel well within this bound.
const maxRecursionDepth = 32

// evalContext threads the state a single expression evaluation needs:
// which engine and sheet it's running against, the dependency list
// being accumulated for the cell under evaluation, and the current
// recursion depth. This formula language has no bindings or control
// flow, so the context collapses to just these four fields.
type evalContext struct {
	engine *Engine
	sheet  value.SheetIdx
	deps   []cellKey
	depth  int
}

// evalExpr walks expr and returns the Value it denotes, recursing into
// the Engine for every cell dereference it encounters.
func evalExpr(ctx *evalContext, expr ast.Expression) (value.Value, error) {
	switch node := expr.(type) {
	case *ast.NumberLiteral:
		return value.Number{Value: node.Value}, nil

	case *ast.TextLiteral:
		return value.Text{Value: node.Value}, nil

	case *ast.BoolLiteral:
		return value.Bool{Value: node.Value}, nil

	case *ast.SheetNameExpression:
		return value.Text{Value: node.Name}, nil

	case *ast.PrefixExpression:
		right, err := evalExpr(ctx, node.Right)
		if err != nil {
			return nil, err
		}
		switch node.Operator {
		case "-":
			return value.Neg(right)
		default:
			return nil, value.NewError(value.OperationUnavailable, fmt.Sprintf("unknown unary operator %q", node.Operator))
		}

	case *ast.InfixExpression:
		left, err := evalExpr(ctx, node.Left)
		if err != nil {
			return nil, err
		}
		right, err := evalExpr(ctx, node.Right)
		if err != nil {
			return nil, err
		}
		switch node.Operator {
		case "+":
			return value.Add(left, right)
		case "-":
			return value.Sub(left, right)
		case "*":
			return value.Mul(left, right)
		case "/":
			return value.Div(left, right)
		default:
			return nil, value.NewError(value.OperationUnavailable, fmt.Sprintf("unknown binary operator %q", node.Operator))
		}

	case *ast.CallExpression:
		return evalCall(ctx, node)

	case *ast.CellRefExpression:
		ref, err := evalCellRef(ctx, node)
		if err != nil {
			return nil, err
		}
		return ref, nil

	case *ast.CellDerefExpression:
		ref, err := evalCellRef(ctx, node.Ref)
		if err != nil {
			return nil, err
		}
		result, err := ctx.engine.get(ref.Sheet, ref.Cell, ctx.depth+1)
		if err != nil {
			return nil, err
		}
		return result.Value, nil

	default:
		return nil, value.NewError(value.OperationUnavailable, fmt.Sprintf("cannot evaluate node of type %T", expr))
	}
}

// evalCellRef evaluates a CellRefExpression to the Ref it denotes,
// recording the target as a dependency of the cell under evaluation —
// this happens whether the reference is used bare (&sheet[r,c]) or as
// the operand of a dereference, since both need the target resolved.
func evalCellRef(ctx *evalContext, node *ast.CellRefExpression) (value.Ref, error) {
	rowVal, err := evalExpr(ctx, node.Row)
	if err != nil {
		return value.Ref{}, err
	}
	rowNum, ok := rowVal.(value.Number)
	if !ok {
		return value.Ref{}, value.NewError(value.RefMustBeNumber, fmt.Sprintf("row must be a number, got %s", rowVal.Kind()))
	}

	colVal, err := evalExpr(ctx, node.Col)
	if err != nil {
		return value.Ref{}, err
	}
	colNum, ok := colVal.(value.Number)
	if !ok {
		return value.Ref{}, value.NewError(value.RefMustBeNumber, fmt.Sprintf("col must be a number, got %s", colVal.Kind()))
	}

	sheet := ctx.sheet
	if node.Sheet != nil {
		name := node.Sheet.Name
		found, ok := ctx.engine.sheetByName(name)
		if !ok {
			return value.Ref{}, value.NewError(value.SheetNotFound, fmt.Sprintf("no sheet named %q", name))
		}
		sheet = found
	}

	cell := value.CellIdx{
		Row: truncateToward0(rowNum.Value),
		Col: truncateToward0(colNum.Value),
	}

	ref := value.Ref{Sheet: sheet, Cell: cell}
	ctx.deps = append(ctx.deps, cellKey{Sheet: sheet, Cell: cell})
	return ref, nil
}

// truncateToward0 converts a formula-computed row/col number to a
// CellIdx coordinate, truncating any fractional part toward zero and
// clamping negatives to 0 since CellIdx is unsigned — a formula
// computing a negative index has no valid cell to name, and 0 is the
// nearest valid one.
func truncateToward0(f float64) uint64 {
	truncated := math.Trunc(f)
	if truncated < 0 {
		return 0
	}
	return uint64(truncated)
}
