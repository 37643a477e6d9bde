package parser

import (
	"fmt"

	"github.com/pingcap/tidb/pkg/parser/ast"

	"minidb/internal/core"
)

func (p *Parser) lowerInsert(stmt *ast.InsertStmt) (core.Query, error) {
	if stmt.IsReplace || stmt.Setlist {
		return nil, fmt.Errorf("unsupported insert form")
	}
	table, _, err := singleTable(stmt.Table)
	if err != nil {
		return nil, err
	}
	q := core.InsertQuery{Table: table}
	if stmt.Columns != nil {
		q.Columns = make([]string, 0, len(stmt.Columns))
		for _, col := range stmt.Columns {
			q.Columns = append(q.Columns, col.Name.L)
		}
	}
	if len(stmt.Lists) != 1 {
		return nil, fmt.Errorf("expected one VALUES row, got %d", len(stmt.Lists))
	}
	for _, expr := range stmt.Lists[0] {
		v, err := lowerLiteral(expr)
		if err != nil {
			return nil, err
		}
		q.Values = append(q.Values, v)
	}
	return q, nil
}

func (p *Parser) lowerDelete(stmt *ast.DeleteStmt) (core.Query, error) {
	table, alias, err := singleTable(stmt.TableRefs)
	if err != nil {
		return nil, err
	}
	if alias != "" {
		return nil, fmt.Errorf("unsupported table alias in delete")
	}
	q := core.DeleteQuery{Table: table}
	if stmt.Where != nil {
		q.Where, err = lowerExpr(stmt.Where)
		if err != nil {
			return nil, err
		}
	}
	return q, nil
}

func (p *Parser) lowerUpdate(stmt *ast.UpdateStmt) (core.Query, error) {
	table, alias, err := singleTable(stmt.TableRefs)
	if err != nil {
		return nil, err
	}
	if alias != "" {
		return nil, fmt.Errorf("unsupported table alias in update")
	}
	if len(stmt.List) != 1 {
		return nil, fmt.Errorf("expected one assignment, got %d", len(stmt.List))
	}
	assign := stmt.List[0]
	value, err := lowerLiteral(assign.Expr)
	if err != nil {
		return nil, err
	}
	q := core.UpdateQuery{Table: table, Column: assign.Column.Name.L, Value: value}
	if stmt.Where != nil {
		q.Where, err = lowerExpr(stmt.Where)
		if err != nil {
			return nil, err
		}
	}
	return q, nil
}

func (p *Parser) lowerSelect(stmt *ast.SelectStmt) (core.Query, error) {
	if stmt.Distinct || stmt.GroupBy != nil || stmt.Having != nil || stmt.OrderBy != nil || stmt.Limit != nil {
		return nil, fmt.Errorf("unsupported select clause")
	}
	if stmt.From == nil {
		return nil, fmt.Errorf("select without FROM")
	}

	q := core.SelectQuery{}
	refs, err := flattenFrom(stmt.From.TableRefs)
	if err != nil {
		return nil, err
	}
	q.From = refs

	if stmt.Fields != nil {
		for _, field := range stmt.Fields.Fields {
			if field.WildCard != nil {
				// A bare * expands to every column; qualified stars are
				// outside the surface.
				if field.WildCard.Table.L != "" || len(stmt.Fields.Fields) != 1 {
					return nil, fmt.Errorf("unsupported select wildcard")
				}
				break
			}
			colExpr, ok := field.Expr.(*ast.ColumnNameExpr)
			if !ok {
				return nil, fmt.Errorf("unsupported select expression %T", field.Expr)
			}
			q.Fields = append(q.Fields, core.SelectField{
				Table:  colExpr.Name.Table.L,
				Column: colExpr.Name.Name.L,
				Alias:  field.AsName.L,
			})
		}
	}

	if stmt.Where != nil {
		q.Where, err = lowerExpr(stmt.Where)
		if err != nil {
			return nil, err
		}
	}
	return q, nil
}

// singleTable unwraps a refs clause that must name exactly one table.
func singleTable(refs *ast.TableRefsClause) (table, alias string, err error) {
	if refs == nil || refs.TableRefs == nil || refs.TableRefs.Right != nil {
		return "", "", fmt.Errorf("expected a single table")
	}
	source, ok := refs.TableRefs.Left.(*ast.TableSource)
	if !ok {
		return "", "", fmt.Errorf("expected a single table")
	}
	name, ok := source.Source.(*ast.TableName)
	if !ok {
		return "", "", fmt.Errorf("expected a plain table name")
	}
	return name.Name.L, source.AsName.L, nil
}

// flattenFrom walks the join tree of a comma-separated FROM list left to
// right, producing the table references in source order. Explicit JOIN
// syntax is outside the surface; the comma list parses as nested cross
// joins, which is the only join shape accepted here.
func flattenFrom(join *ast.Join) ([]core.TableRef, error) {
	if join == nil {
		return nil, fmt.Errorf("empty FROM clause")
	}
	if join.On != nil || join.Tp == ast.LeftJoin || join.Tp == ast.RightJoin {
		return nil, fmt.Errorf("unsupported join")
	}

	var refs []core.TableRef
	var walk func(node ast.ResultSetNode) error
	walk = func(node ast.ResultSetNode) error {
		switch node := node.(type) {
		case *ast.Join:
			if node.On != nil || node.Tp == ast.LeftJoin || node.Tp == ast.RightJoin {
				return fmt.Errorf("unsupported join")
			}
			if err := walk(node.Left); err != nil {
				return err
			}
			if node.Right != nil {
				return walk(node.Right)
			}
			return nil
		case *ast.TableSource:
			name, ok := node.Source.(*ast.TableName)
			if !ok {
				return fmt.Errorf("unsupported table source %T", node.Source)
			}
			refs = append(refs, core.TableRef{Table: name.Name.L, Alias: node.AsName.L})
			return nil
		}
		return fmt.Errorf("unsupported FROM node %T", node)
	}
	if err := walk(join); err != nil {
		return nil, err
	}
	return refs, nil
}
