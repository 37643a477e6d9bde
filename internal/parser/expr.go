package parser

import (
	"fmt"
	"regexp"

	"github.com/pingcap/tidb/pkg/parser/ast"
	"github.com/pingcap/tidb/pkg/parser/opcode"

	"minidb/internal/core"
)

// datePattern recognizes date literals, which arrive from the grammar as
// quoted strings.
var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// lowerExpr converts a WHERE expression into the engine's predicate tree.
func lowerExpr(node ast.ExprNode) (core.Expr, error) {
	switch node := node.(type) {
	case *ast.BinaryOperationExpr:
		switch node.Op {
		case opcode.LogicAnd:
			left, err := lowerExpr(node.L)
			if err != nil {
				return nil, err
			}
			right, err := lowerExpr(node.R)
			if err != nil {
				return nil, err
			}
			return core.AndExpr{Terms: []core.Expr{left, right}}, nil
		case opcode.LogicOr:
			left, err := lowerExpr(node.L)
			if err != nil {
				return nil, err
			}
			right, err := lowerExpr(node.R)
			if err != nil {
				return nil, err
			}
			return core.OrExpr{Terms: []core.Expr{left, right}}, nil
		}
		op, ok := compareOps[node.Op]
		if !ok {
			return nil, fmt.Errorf("unsupported operator %s", node.Op)
		}
		left, err := lowerOperand(node.L)
		if err != nil {
			return nil, err
		}
		right, err := lowerOperand(node.R)
		if err != nil {
			return nil, err
		}
		return core.CompareExpr{Left: left, Op: op, Right: right}, nil

	case *ast.UnaryOperationExpr:
		if node.Op != opcode.Not && node.Op != opcode.Not2 {
			return nil, fmt.Errorf("unsupported operator %s", node.Op)
		}
		term, err := lowerExpr(node.V)
		if err != nil {
			return nil, err
		}
		return core.NotExpr{Term: term}, nil

	case *ast.IsNullExpr:
		colExpr, ok := node.Expr.(*ast.ColumnNameExpr)
		if !ok {
			return nil, fmt.Errorf("IS NULL on a non-column expression")
		}
		return core.NullTestExpr{
			Table:  colExpr.Name.Table.L,
			Column: colExpr.Name.Name.L,
			Negate: node.Not,
		}, nil

	case *ast.ParenthesesExpr:
		return lowerExpr(node.Expr)
	}
	return nil, fmt.Errorf("unsupported predicate %T", node)
}

var compareOps = map[opcode.Op]core.CompareOp{
	opcode.EQ: core.OpEQ,
	opcode.NE: core.OpNE,
	opcode.LT: core.OpLT,
	opcode.GT: core.OpGT,
	opcode.LE: core.OpLE,
	opcode.GE: core.OpGE,
}

// lowerOperand converts one side of a comparison: a column reference or a
// literal value.
func lowerOperand(node ast.ExprNode) (core.Operand, error) {
	if colExpr, ok := node.(*ast.ColumnNameExpr); ok {
		return core.Operand{Column: &core.ColumnRef{
			Table:  colExpr.Name.Table.L,
			Column: colExpr.Name.Name.L,
		}}, nil
	}
	v, err := lowerLiteral(node)
	if err != nil {
		return core.Operand{}, err
	}
	return core.Operand{Value: v}, nil
}

// lowerLiteral converts a literal expression into a scalar value. A quoted
// string in YYYY-MM-DD shape is a date literal; a date-shaped string naming
// an impossible day is rejected as a grammar error.
func lowerLiteral(node ast.ExprNode) (core.Value, error) {
	switch node := node.(type) {
	case ast.ValueExpr:
		switch raw := node.GetValue().(type) {
		case nil:
			return core.Null(), nil
		case int64:
			return core.Int(raw), nil
		case uint64:
			return core.Int(int64(raw)), nil
		case string:
			if datePattern.MatchString(raw) {
				return core.ParseDate(raw)
			}
			return core.Text(raw), nil
		}
		return core.Null(), fmt.Errorf("unsupported literal %v", node.GetValue())

	case *ast.UnaryOperationExpr:
		if node.Op != opcode.Minus {
			return core.Null(), fmt.Errorf("unsupported literal operator %s", node.Op)
		}
		v, err := lowerLiteral(node.V)
		if err != nil {
			return core.Null(), err
		}
		if v.Kind() != core.KindInt {
			return core.Null(), fmt.Errorf("cannot negate %s literal", v.Kind())
		}
		return core.Int(-v.Int()), nil

	case *ast.ParenthesesExpr:
		return lowerLiteral(node.Expr)
	}
	return core.Null(), fmt.Errorf("expected a literal, got %T", node)
}
