package engine

import (
	"fmt"

	"minidb/internal/core"
)

// env is the row environment of one predicate evaluation: table name or
// alias to the current row of that table.
type env map[string]core.Row

// evalExpr evaluates a predicate tree with Kleene three-valued logic.
func evalExpr(e core.Expr, rows env) (core.Tri, error) {
	switch e := e.(type) {
	case core.AndExpr:
		result := core.TriTrue
		for _, term := range e.Terms {
			t, err := evalExpr(term, rows)
			if err != nil {
				return core.TriUnknown, err
			}
			result = result.And(t)
		}
		return result, nil

	case core.OrExpr:
		result := core.TriFalse
		for _, term := range e.Terms {
			t, err := evalExpr(term, rows)
			if err != nil {
				return core.TriUnknown, err
			}
			result = result.Or(t)
		}
		return result, nil

	case core.NotExpr:
		t, err := evalExpr(e.Term, rows)
		if err != nil {
			return core.TriUnknown, err
		}
		return t.Not(), nil

	case core.CompareExpr:
		return evalCompare(e, rows)

	case core.NullTestExpr:
		v, err := resolveColumn(e.Table, e.Column, rows)
		if err != nil {
			return core.TriUnknown, err
		}
		return core.TriOf(v.IsNull() != e.Negate), nil
	}
	return core.TriUnknown, fmt.Errorf("engine: unknown predicate node %T", e)
}

func evalCompare(e core.CompareExpr, rows env) (core.Tri, error) {
	left, err := resolveOperand(e.Left, rows)
	if err != nil {
		return core.TriUnknown, err
	}
	right, err := resolveOperand(e.Right, rows)
	if err != nil {
		return core.TriUnknown, err
	}
	if left.IsNull() || right.IsNull() {
		return core.TriUnknown, nil
	}
	cmp, err := core.Compare(left, right)
	if err != nil {
		return core.TriUnknown, faultWhereIncomparable
	}
	switch e.Op {
	case core.OpEQ:
		return core.TriOf(cmp == 0), nil
	case core.OpNE:
		return core.TriOf(cmp != 0), nil
	case core.OpLT:
		return core.TriOf(cmp < 0), nil
	case core.OpGT:
		return core.TriOf(cmp > 0), nil
	case core.OpLE:
		return core.TriOf(cmp <= 0), nil
	default:
		return core.TriOf(cmp >= 0), nil
	}
}

func resolveOperand(op core.Operand, rows env) (core.Value, error) {
	if op.Column == nil {
		return op.Value, nil
	}
	return resolveColumn(op.Column.Table, op.Column.Column, rows)
}

// resolveColumn finds the value of a column reference in the environment. An
// unqualified name must occur in exactly one table; a qualified name requires
// the table to be in scope and the column to exist there.
func resolveColumn(table, column string, rows env) (core.Value, error) {
	if table == "" {
		found := ""
		for name, row := range rows {
			if _, ok := row[column]; ok {
				if found != "" {
					return core.Null(), faultWhereAmbiguous
				}
				found = name
			}
		}
		if found == "" {
			return core.Null(), faultWhereColumnNotExist
		}
		return rows[found][column], nil
	}
	row, ok := rows[table]
	if !ok {
		return core.Null(), faultWhereTableNotSpecified
	}
	v, ok := row[column]
	if !ok {
		return core.Null(), faultWhereColumnNotExist
	}
	return v, nil
}
